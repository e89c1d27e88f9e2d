package handler

import (
	"context"
	"net/http"

	"membership-api/internal/model"
)

type spaceService interface {
	Create(ctx context.Context, name string) (model.Space, error)
	FindByName(ctx context.Context, name string) (model.Space, error)
}

type SpaceHandler struct {
	service spaceService
}

func NewSpaceHandler(service spaceService) *SpaceHandler {
	return &SpaceHandler{service: service}
}

func (h *SpaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateSpaceRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	space, err := h.service.Create(r.Context(), payload.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, space)
}

func (h *SpaceHandler) FindByName(w http.ResponseWriter, r *http.Request) {
	space, err := h.service.FindByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, space)
}
