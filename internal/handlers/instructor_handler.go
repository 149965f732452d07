package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/habib-153/oddlogy-server/internal/httpx"
	"github.com/habib-153/oddlogy-server/internal/middleware"
	"github.com/habib-153/oddlogy-server/internal/services"
)

type InstructorHandler struct {
	service *services.InstructorService
}

func NewInstructorHandler(service *services.InstructorService) *InstructorHandler {
	return &InstructorHandler{service: service}
}

func (h *InstructorHandler) GetInstructors(w http.ResponseWriter, r *http.Request) {
	instructors, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Instructors retrieved successfully", instructors)
}

func (h *InstructorHandler) GetInstructorByID(w http.ResponseWriter, r *http.Request) {
	instructor, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Instructor retrieved successfully", instructor)
}

func (h *InstructorHandler) UpdateInstructor(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateInstructorInput
	if err := httpx.DecodeBody(r, &input); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	instructor, err := h.service.Update(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Instructor updated successfully", instructor)
}

func (h *InstructorHandler) DeleteInstructor(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Instructor deleted successfully", nil)
}

// GetMyCourses serves the instructor dashboard: the authenticated
// instructor's courses with modules and approved students joined in.
func (h *InstructorHandler) GetMyCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.MyCourses(r.Context(), middleware.UserEmail(r))
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Courses retrieved successfully", courses)
}
