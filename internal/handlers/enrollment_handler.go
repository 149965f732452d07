package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/habib-153/oddlogy-server/internal/httpx"
	"github.com/habib-153/oddlogy-server/internal/middleware"
	"github.com/habib-153/oddlogy-server/internal/services"
)

type EnrollmentHandler struct {
	service *services.EnrollmentService
}

func NewEnrollmentHandler(service *services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

func (h *EnrollmentHandler) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	var input services.CreateEnrollmentInput
	if err := httpx.DecodeBody(r, &input); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validateStruct(input); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}

	enrollment, err := h.service.Create(r.Context(), middleware.UserID(r), input)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, "Enrollment request submitted successfully", enrollment)
}

func (h *EnrollmentHandler) GetEnrollments(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	enrollments, err := h.service.List(r.Context(), params.Get("status"), params.Get("courseId"))
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Enrollments retrieved successfully", enrollments)
}

func (h *EnrollmentHandler) UpdateEnrollmentStatus(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateEnrollmentStatusInput
	if err := httpx.DecodeBody(r, &input); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validateStruct(input); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}

	enrollment, err := h.service.UpdateStatus(r.Context(),
		mux.Vars(r)["enrollmentId"], middleware.UserID(r), input)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Enrollment status updated successfully", enrollment)
}
