package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"membership-api/internal/model"
	"membership-api/pkg/apierror"
)

type memberStore interface {
	List(ctx context.Context) ([]model.Member, error)
	FindByID(ctx context.Context, id string) (model.Member, error)
	Create(ctx context.Context, m model.Member) (model.Member, error)
	Update(ctx context.Context, m model.Member) (model.Member, error)
	Delete(ctx context.Context, id string) error
	SearchByName(ctx context.Context, name string, lastname string) ([]model.MemberSummary, error)
}

type MemberService struct {
	members memberStore
}

func NewMemberService(members memberStore) *MemberService {
	return &MemberService{members: members}
}

func (s *MemberService) List(ctx context.Context) ([]model.Member, error) {
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindDatabaseError, "list members", err)
	}
	return members, nil
}

func (s *MemberService) Get(ctx context.Context, id string) (model.Member, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.Member{}, memberNotFound(id)
	}

	member, err := s.members.FindByID(ctx, id)
	if err != nil {
		return model.Member{}, mapMemberError(err, id, "find member")
	}
	return member, nil
}

func (s *MemberService) Create(ctx context.Context, req model.CreateMemberRequest) (model.Member, error) {
	member := model.Member{
		Name:             strings.TrimSpace(req.Name),
		Lastname:         strings.TrimSpace(req.Lastname),
		CI:               strings.TrimSpace(req.CI),
		BirthDate:        req.BirthDate,
		Phone:            strings.TrimSpace(req.Phone),
		TutorName:        req.TutorName,
		TutorLastname:    req.TutorLastname,
		TutorPhone:       req.TutorPhone,
		Observation:      req.Observation,
		MedicalSocietyID: strings.TrimSpace(req.MedicalSocietyID),
		Address:          strings.TrimSpace(req.Address),
	}

	if err := validateMember(member); err != nil {
		return model.Member{}, err
	}

	created, err := s.members.Create(ctx, member)
	if err != nil {
		return model.Member{}, mapMemberError(err, "", "create member")
	}
	return created, nil
}

// Update applies the non-nil fields of patch to the stored member.
func (s *MemberService) Update(ctx context.Context, id string, patch model.UpdateMemberRequest) (model.Member, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return model.Member{}, err
	}

	member.Apply(patch)
	if err := validateMember(member); err != nil {
		return model.Member{}, err
	}

	updated, err := s.members.Update(ctx, member)
	if err != nil {
		return model.Member{}, mapMemberError(err, id, "update member")
	}
	return updated, nil
}

func (s *MemberService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return memberNotFound(id)
	}

	if err := s.members.Delete(ctx, id); err != nil {
		return mapMemberError(err, id, "delete member")
	}
	return nil
}

func (s *MemberService) Search(ctx context.Context, name string, lastname string) ([]model.MemberSummary, error) {
	name = strings.TrimSpace(name)
	lastname = strings.TrimSpace(lastname)
	if name == "" && lastname == "" {
		return nil, apierror.New(apierror.KindBadRequest, "name or lastname is required", "")
	}

	members, err := s.members.SearchByName(ctx, name, lastname)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindDatabaseError, "search members", err)
	}
	return members, nil
}

func validateMember(m model.Member) error {
	required := []struct {
		field string
		value string
	}{
		{"name", m.Name},
		{"lastname", m.Lastname},
		{"ci", m.CI},
		{"phone", m.Phone},
		{"medical_society_id", m.MedicalSocietyID},
		{"address", m.Address},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return apierror.New(apierror.KindBadRequest, r.field+" is required", r.field)
		}
	}

	if !m.BirthDate.Valid {
		return apierror.New(apierror.KindBadRequest, "birth_date is required", "birth_date")
	}
	if _, err := uuid.Parse(m.MedicalSocietyID); err != nil {
		return apierror.New(apierror.KindBadRequest, "medical_society_id must be a UUID", "medical_society_id")
	}

	return nil
}

func mapMemberError(err error, id string, op string) error {
	switch {
	case errors.Is(err, model.ErrMemberNotFound):
		return memberNotFound(id)
	case errors.Is(err, model.ErrMedicalSocietyNotFound):
		return apierror.New(apierror.KindBadRequest, "medical society does not exist", "medical_society_id")
	default:
		return apierror.Wrap(apierror.KindDatabaseError, op, err)
	}
}

func memberNotFound(id string) error {
	return apierror.New(apierror.KindNotFound, "member not found", id)
}
