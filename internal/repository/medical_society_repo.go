package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"membership-api/internal/model"
)

type MedicalSocietyRepository struct {
	pool *pgxpool.Pool
}

func NewMedicalSocietyRepository(pool *pgxpool.Pool) *MedicalSocietyRepository {
	return &MedicalSocietyRepository{pool: pool}
}

func (r *MedicalSocietyRepository) List(ctx context.Context) ([]model.MedicalSociety, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, name, emergency_phone, created_at, updated_at
		 FROM medical_society ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list medical societies: %w", err)
	}
	defer rows.Close()

	societies := make([]model.MedicalSociety, 0)
	for rows.Next() {
		var s model.MedicalSociety
		if err := rows.Scan(&s.ID, &s.Name, &s.EmergencyPhone, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan medical society: %w", err)
		}
		societies = append(societies, s)
	}
	return societies, rows.Err()
}

func (r *MedicalSocietyRepository) Create(ctx context.Context, name string, emergencyPhone string) (model.MedicalSociety, error) {
	now := time.Now().UTC()

	var s model.MedicalSociety
	err := r.pool.QueryRow(ctx,
		`INSERT INTO medical_society (name, emergency_phone, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id::text, name, emergency_phone, created_at, updated_at`,
		name, emergencyPhone, now, now).
		Scan(&s.ID, &s.Name, &s.EmergencyPhone, &s.CreatedAt, &s.UpdatedAt)
	if isUniqueViolation(err) {
		return model.MedicalSociety{}, model.ErrMedicalSocietyExists
	}
	if err != nil {
		return model.MedicalSociety{}, fmt.Errorf("create medical society: %w", err)
	}
	return s, nil
}
