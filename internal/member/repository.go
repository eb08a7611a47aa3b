package member

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repoTimeout = 5 * time.Second

const memberColumns = `id, email, first_name, last_name, phone, is_admin, avatar_path, created_at, updated_at, deleted_at`

// Repository provides access to member records. Deleted members are
// soft-deleted: the row stays, reads filter on deleted_at IS NULL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new member repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get fetches a live member by id.
func (r *Repository) Get(ctx context.Context, memberID uuid.UUID) (Member, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1 AND deleted_at IS NULL;`

	row := r.pool.QueryRow(ctx, query, memberID)
	m, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, ErrMemberNotFound
		}
		return Member{}, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

// Update mutates the profile fields that are set in the input.
func (r *Repository) Update(ctx context.Context, memberID uuid.UUID, input UpdateInput) (Member, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
UPDATE members
SET first_name = COALESCE($2, first_name),
    last_name  = COALESCE($3, last_name),
    phone      = COALESCE($4, phone),
    updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL
RETURNING ` + memberColumns + `;`

	row := r.pool.QueryRow(ctx, query, memberID, input.FirstName, input.LastName, input.Phone)
	m, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, ErrMemberNotFound
		}
		return Member{}, fmt.Errorf("update member: %w", err)
	}
	return m, nil
}

// List returns live members ordered by creation time, newest first.
func (r *Repository) List(ctx context.Context, page Page) ([]Member, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT ` + memberColumns + `
FROM members
WHERE deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $1 OFFSET $2;`

	rows, err := r.pool.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	return collectMembers(rows)
}

// SearchByName performs a case-insensitive substring search over first
// and last name.
func (r *Repository) SearchByName(ctx context.Context, term string, page Page) ([]Member, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT ` + memberColumns + `
FROM members
WHERE deleted_at IS NULL
  AND (first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%')
ORDER BY last_name NULLS LAST, first_name NULLS LAST
LIMIT $2 OFFSET $3;`

	rows, err := r.pool.Query(ctx, query, term, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("search members: %w", err)
	}
	defer rows.Close()

	return collectMembers(rows)
}

// SoftDelete marks the member as deleted without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, memberID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
UPDATE members
SET deleted_at = NOW(), updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL;`

	tag, err := r.pool.Exec(ctx, query, memberID)
	if err != nil {
		return fmt.Errorf("soft delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func scanMember(row pgx.Row) (Member, error) {
	var m Member
	err := row.Scan(
		&m.ID,
		&m.Email,
		&m.FirstName,
		&m.LastName,
		&m.Phone,
		&m.IsAdmin,
		&m.AvatarPath,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.DeletedAt,
	)
	return m, err
}

func collectMembers(rows pgx.Rows) ([]Member, error) {
	var members []Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}
