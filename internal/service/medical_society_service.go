package service

import (
	"context"
	"errors"
	"strings"

	"membership-api/internal/model"
	"membership-api/pkg/apierror"
)

type medicalSocietyStore interface {
	List(ctx context.Context) ([]model.MedicalSociety, error)
	Create(ctx context.Context, name string, emergencyPhone string) (model.MedicalSociety, error)
}

type MedicalSocietyService struct {
	societies medicalSocietyStore
}

func NewMedicalSocietyService(societies medicalSocietyStore) *MedicalSocietyService {
	return &MedicalSocietyService{societies: societies}
}

func (s *MedicalSocietyService) List(ctx context.Context) ([]model.MedicalSociety, error) {
	societies, err := s.societies.List(ctx)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindDatabaseError, "list medical societies", err)
	}
	return societies, nil
}

func (s *MedicalSocietyService) Create(ctx context.Context, name string, emergencyPhone string) (model.MedicalSociety, error) {
	name = strings.TrimSpace(name)
	emergencyPhone = strings.TrimSpace(emergencyPhone)
	if name == "" || emergencyPhone == "" {
		return model.MedicalSociety{}, apierror.New(apierror.KindBadRequest, "name and emergency_phone are required", "")
	}

	society, err := s.societies.Create(ctx, name, emergencyPhone)
	if errors.Is(err, model.ErrMedicalSocietyExists) {
		return model.MedicalSociety{}, apierror.New(apierror.KindAlreadyExists, "medical society already exists", name)
	}
	if err != nil {
		return model.MedicalSociety{}, apierror.Wrap(apierror.KindDatabaseError, "create medical society", err)
	}
	return society, nil
}
