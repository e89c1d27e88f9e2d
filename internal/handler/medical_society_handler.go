package handler

import (
	"context"
	"net/http"

	"membership-api/internal/model"
)

type medicalSocietyService interface {
	List(ctx context.Context) ([]model.MedicalSociety, error)
	Create(ctx context.Context, name string, emergencyPhone string) (model.MedicalSociety, error)
}

type MedicalSocietyHandler struct {
	service medicalSocietyService
}

func NewMedicalSocietyHandler(service medicalSocietyService) *MedicalSocietyHandler {
	return &MedicalSocietyHandler{service: service}
}

func (h *MedicalSocietyHandler) List(w http.ResponseWriter, r *http.Request) {
	societies, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, societies)
}

func (h *MedicalSocietyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateMedicalSocietyRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	society, err := h.service.Create(r.Context(), payload.Name, payload.EmergencyPhone)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, society)
}
