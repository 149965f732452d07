package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/habib-153/oddlogy-server/internal/httpx"
	"github.com/habib-153/oddlogy-server/internal/services"
)

type ModuleHandler struct {
	service *services.ModuleService
}

func NewModuleHandler(service *services.ModuleService) *ModuleHandler {
	return &ModuleHandler{service: service}
}

func (h *ModuleHandler) CreateModule(w http.ResponseWriter, r *http.Request) {
	var input services.CreateModuleInput
	if err := httpx.DecodeBody(r, &input); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validateStruct(input); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}

	module, err := h.service.Create(r.Context(), input)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, "Module created successfully", module)
}

func (h *ModuleHandler) GetModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Modules retrieved successfully", modules)
}

func (h *ModuleHandler) GetModuleByID(w http.ResponseWriter, r *http.Request) {
	module, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Module retrieved successfully", module)
}

func (h *ModuleHandler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateModuleInput
	if err := httpx.DecodeBody(r, &input); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	module, err := h.service.Update(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Module updated successfully", module)
}

func (h *ModuleHandler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Module deleted successfully", nil)
}

func (h *ModuleHandler) GetModulesByCourse(w http.ResponseWriter, r *http.Request) {
	modules, err := h.service.ByCourse(r.Context(), mux.Vars(r)["courseId"])
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "Modules retrieved successfully", modules)
}
