package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/santrikita/tpq-backend-go/internal/domain/halaqah"
	"github.com/santrikita/tpq-backend-go/internal/handler/http/response"
)

type HalaqahHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type halaqahHandlerImpl struct {
	halaqahService halaqah.HalaqahService
}

func NewHalaqahHandler(halaqahService halaqah.HalaqahService) HalaqahHandler {
	return &halaqahHandlerImpl{halaqahService: halaqahService}
}

func (h *halaqahHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req halaqah.CreateHalaqahRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.halaqahService.CreateHalaqah(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Halaqah created", result)
}

func (h *halaqahHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Halaqah ID is required", nil)
		return
	}

	result, err := h.halaqahService.GetHalaqah(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *halaqahHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	result, err := h.halaqahService.ListHalaqah(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *halaqahHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Halaqah ID is required", nil)
		return
	}

	var req halaqah.UpdateHalaqahRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.halaqahService.UpdateHalaqah(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *halaqahHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Halaqah ID is required", nil)
		return
	}

	if err := h.halaqahService.DeleteHalaqah(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Halaqah deleted", nil)
}
