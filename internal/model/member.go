package model

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type Member struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Lastname         string      `json:"lastname"`
	CI               string      `json:"ci"`
	BirthDate        pgtype.Date `json:"birth_date"`
	Phone            string      `json:"phone"`
	TutorName        *string     `json:"tutor_name"`
	TutorLastname    *string     `json:"tutor_lastname"`
	TutorPhone       *string     `json:"tutor_phone"`
	Observation      *string     `json:"observation"`
	MedicalSocietyID string      `json:"medical_society_id"`
	Address          string      `json:"address"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Apply copies every non-nil field of the patch onto m.
func (m *Member) Apply(patch UpdateMemberRequest) {
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Lastname != nil {
		m.Lastname = *patch.Lastname
	}
	if patch.CI != nil {
		m.CI = *patch.CI
	}
	if patch.BirthDate != nil {
		m.BirthDate = *patch.BirthDate
	}
	if patch.Phone != nil {
		m.Phone = *patch.Phone
	}
	if patch.TutorName != nil {
		m.TutorName = patch.TutorName
	}
	if patch.TutorLastname != nil {
		m.TutorLastname = patch.TutorLastname
	}
	if patch.TutorPhone != nil {
		m.TutorPhone = patch.TutorPhone
	}
	if patch.Observation != nil {
		m.Observation = patch.Observation
	}
	if patch.MedicalSocietyID != nil {
		m.MedicalSocietyID = *patch.MedicalSocietyID
	}
	if patch.Address != nil {
		m.Address = *patch.Address
	}
}

// MemberSummary is the row shape returned by name searches.
type MemberSummary struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Lastname  string      `json:"lastname"`
	CI        string      `json:"ci"`
	BirthDate pgtype.Date `json:"birth_date"`
}
