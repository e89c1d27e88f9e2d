package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"membership-api/internal/model"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindByEmail matches the email exactly; callers trim it beforehand.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT id::text, name, rolename, email, password, created_at, updated_at
		 FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Role, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

// Create inserts u and fills its generated id. A duplicate email yields
// model.ErrUserAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, rolename, email, password, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id::text`,
		u.Name, u.Role, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if isUniqueViolation(err) {
		return model.ErrUserAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
