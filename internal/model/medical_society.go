package model

import "time"

type MedicalSociety struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	EmergencyPhone string    `json:"emergency_phone"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
