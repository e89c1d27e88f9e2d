package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"membership-api/internal/model"
)

type memberService interface {
	List(ctx context.Context) ([]model.Member, error)
	Get(ctx context.Context, id string) (model.Member, error)
	Create(ctx context.Context, req model.CreateMemberRequest) (model.Member, error)
	Update(ctx context.Context, id string, patch model.UpdateMemberRequest) (model.Member, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, name string, lastname string) ([]model.MemberSummary, error)
}

type MemberHandler struct {
	service memberService
}

func NewMemberHandler(service memberService) *MemberHandler {
	return &MemberHandler{service: service}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, members)
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, member)
}

// Search matches members by name and/or lastname prefix, taken from the
// query string.
func (h *MemberHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	members, err := h.service.Search(r.Context(), query.Get("name"), query.Get("lastname"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, members)
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateMemberRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	member, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, member)
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.UpdateMemberRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	member, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, member)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
}
