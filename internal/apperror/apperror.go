// Package apperror defines the typed application error carried from the
// service layer up to the HTTP response writer.
package apperror

import "net/http"

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// StatusOf returns the HTTP status for err, defaulting to 500 for anything
// that is not an *Error.
func StatusOf(err error) int {
	if e, ok := err.(*Error); ok {
		return e.Status
	}
	return http.StatusInternalServerError
}
