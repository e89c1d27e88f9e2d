package model

import "github.com/jackc/pgx/v5/pgtype"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateSpaceRequest struct {
	Name string `json:"name"`
}

type CreateMedicalSocietyRequest struct {
	Name           string `json:"name"`
	EmergencyPhone string `json:"emergency_phone"`
}

type CreateMemberRequest struct {
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
}

// UpdateMemberRequest is a partial update: nil fields are left untouched.
type UpdateMemberRequest struct {
	Name             *string      `json:"name"`
	Lastname         *string      `json:"lastname"`
	CI               *string      `json:"ci"`
	BirthDate        *pgtype.Date `json:"birth_date"`
	Phone            *string      `json:"phone"`
	TutorName        *string      `json:"tutor_name"`
	TutorLastname    *string      `json:"tutor_lastname"`
	TutorPhone       *string      `json:"tutor_phone"`
	Observation      *string      `json:"observation"`
	MedicalSocietyID *string      `json:"medical_society_id"`
	Address          *string      `json:"address"`
}
