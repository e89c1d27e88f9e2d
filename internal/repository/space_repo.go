package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"membership-api/internal/model"
)

type SpaceRepository struct {
	pool *pgxpool.Pool
}

func NewSpaceRepository(pool *pgxpool.Pool) *SpaceRepository {
	return &SpaceRepository{pool: pool}
}

func (r *SpaceRepository) Create(ctx context.Context, name string) (model.Space, error) {
	now := time.Now().UTC()

	var s model.Space
	err := r.pool.QueryRow(ctx,
		`INSERT INTO space (name, created_at, updated_at)
		 VALUES ($1, $2, $3)
		 RETURNING id::text, name, created_at, updated_at`,
		name, now, now).
		Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if isUniqueViolation(err) {
		return model.Space{}, model.ErrSpaceAlreadyExists
	}
	if err != nil {
		return model.Space{}, fmt.Errorf("create space: %w", err)
	}
	return s, nil
}

func (r *SpaceRepository) FindByName(ctx context.Context, name string) (model.Space, error) {
	var s model.Space
	err := r.pool.QueryRow(ctx,
		`SELECT id::text, name, created_at, updated_at FROM space WHERE name = $1`, name).
		Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Space{}, model.ErrSpaceNotFound
	}
	if err != nil {
		return model.Space{}, fmt.Errorf("find space by name: %w", err)
	}
	return s, nil
}
