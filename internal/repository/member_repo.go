package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"membership-api/internal/model"
)

const memberColumns = `id::text, name, lastname, ci, birth_date, phone, tutor_name, tutor_lastname,
	tutor_phone, observation, medical_society_id::text, address, created_at, updated_at`

type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

func scanMember(row pgx.Row) (model.Member, error) {
	var m model.Member
	err := row.Scan(&m.ID, &m.Name, &m.Lastname, &m.CI, &m.BirthDate, &m.Phone,
		&m.TutorName, &m.TutorLastname, &m.TutorPhone, &m.Observation,
		&m.MedicalSocietyID, &m.Address, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *MemberRepository) List(ctx context.Context) ([]model.Member, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+memberColumns+` FROM members ORDER BY lastname, name`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := make([]model.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (model.Member, error) {
	m, err := scanMember(r.pool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
		return model.Member{}, model.ErrMemberNotFound
	}
	if err != nil {
		return model.Member{}, fmt.Errorf("find member by id: %w", err)
	}
	return m, nil
}

// Create inserts m and returns the stored row. An unknown medical society
// yields model.ErrMedicalSocietyNotFound.
func (r *MemberRepository) Create(ctx context.Context, m model.Member) (model.Member, error) {
	now := time.Now().UTC()

	created, err := scanMember(r.pool.QueryRow(ctx,
		`INSERT INTO members (name, lastname, ci, birth_date, phone, tutor_name, tutor_lastname,
		                      tutor_phone, observation, medical_society_id, address, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+memberColumns,
		m.Name, m.Lastname, m.CI, m.BirthDate, m.Phone, m.TutorName, m.TutorLastname,
		m.TutorPhone, m.Observation, m.MedicalSocietyID, m.Address, now, now))
	if isForeignKeyViolation(err) || isInvalidText(err) {
		return model.Member{}, model.ErrMedicalSocietyNotFound
	}
	if err != nil {
		return model.Member{}, fmt.Errorf("create member: %w", err)
	}
	return created, nil
}

func (r *MemberRepository) Update(ctx context.Context, m model.Member) (model.Member, error) {
	updated, err := scanMember(r.pool.QueryRow(ctx,
		`UPDATE members
		 SET name = $1, lastname = $2, ci = $3, birth_date = $4, phone = $5, tutor_name = $6,
		     tutor_lastname = $7, tutor_phone = $8, observation = $9, medical_society_id = $10,
		     address = $11, updated_at = $12
		 WHERE id = $13
		 RETURNING `+memberColumns,
		m.Name, m.Lastname, m.CI, m.BirthDate, m.Phone, m.TutorName, m.TutorLastname,
		m.TutorPhone, m.Observation, m.MedicalSocietyID, m.Address, time.Now().UTC(), m.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Member{}, model.ErrMemberNotFound
	}
	if isForeignKeyViolation(err) || isInvalidText(err) {
		return model.Member{}, model.ErrMedicalSocietyNotFound
	}
	if err != nil {
		return model.Member{}, fmt.Errorf("update member: %w", err)
	}
	return updated, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if isInvalidText(err) {
		return model.ErrMemberNotFound
	}
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMemberNotFound
	}
	return nil
}

// SearchByName matches name and/or lastname by case-insensitive prefix. Empty
// arguments are ignored; at least one must be set.
func (r *MemberRepository) SearchByName(ctx context.Context, name string, lastname string) ([]model.MemberSummary, error) {
	var (
		conditions []string
		args       []any
	)
	if name != "" {
		args = append(args, prefixPattern(name))
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if lastname != "" {
		args = append(args, prefixPattern(lastname))
		conditions = append(conditions, fmt.Sprintf("lastname ILIKE $%d", len(args)))
	}
	if len(conditions) == 0 {
		return nil, model.ErrInvalidInput
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id::text, name, lastname, ci, birth_date FROM members
		 WHERE `+strings.Join(conditions, " AND ")+`
		 ORDER BY lastname, name`, args...)
	if err != nil {
		return nil, fmt.Errorf("search members: %w", err)
	}
	defer rows.Close()

	members := make([]model.MemberSummary, 0)
	for rows.Next() {
		var m model.MemberSummary
		if err := rows.Scan(&m.ID, &m.Name, &m.Lastname, &m.CI, &m.BirthDate); err != nil {
			return nil, fmt.Errorf("scan member summary: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func prefixPattern(s string) string {
	return likeEscaper.Replace(s) + "%"
}
