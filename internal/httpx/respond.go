// Package httpx carries the uniform response envelope and the request body
// shim shared by every handler.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/habib-153/oddlogy-server/internal/apperror"
)

// Envelope is the uniform response shape for both success and failure.
type Envelope struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{
		Success:    status < 400,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, message, nil)
}

// WriteServiceError translates a service error into the envelope. Typed
// application errors surface their own message; anything else is logged and
// masked as a 500.
func WriteServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperror.Error); ok {
		WriteError(w, appErr.Status, appErr.Message)
		return
	}
	logrus.WithError(err).Error("unhandled service error")
	WriteError(w, http.StatusInternalServerError, "Something went wrong")
}
