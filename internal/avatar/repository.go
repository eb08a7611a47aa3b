package avatar

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

// Repository provides access to avatar metadata storage.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new avatar repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Upsert writes avatar metadata for a member, replacing any previous row,
// and mirrors the object path onto the member record. Both writes happen
// in one transaction so readers never observe a half-updated member.
func (r *Repository) Upsert(ctx context.Context, a Avatar) (Avatar, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Avatar{}, fmt.Errorf("begin avatar upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
INSERT INTO avatars (member_id, object_path, content_type, size_bytes)
VALUES ($1, $2, $3, $4)
ON CONFLICT (member_id) DO UPDATE SET
    object_path = EXCLUDED.object_path,
    content_type = EXCLUDED.content_type,
    size_bytes = EXCLUDED.size_bytes,
    updated_at = NOW()
RETURNING member_id, object_path, content_type, size_bytes, created_at, updated_at;`

	var stored Avatar
	row := tx.QueryRow(ctx, query, a.MemberID, a.ObjectPath, a.ContentType, a.SizeBytes)
	if err := row.Scan(&stored.MemberID, &stored.ObjectPath, &stored.ContentType, &stored.SizeBytes, &stored.CreatedAt, &stored.UpdatedAt); err != nil {
		return Avatar{}, fmt.Errorf("upsert avatar: %w", err)
	}

	markQuery := `UPDATE members SET avatar_path = $2, updated_at = NOW() WHERE id = $1;`
	if _, err := tx.Exec(ctx, markQuery, a.MemberID, a.ObjectPath); err != nil {
		return Avatar{}, fmt.Errorf("mark member avatar: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Avatar{}, fmt.Errorf("commit avatar upsert: %w", err)
	}

	return stored, nil
}

// Get fetches avatar metadata for a member.
func (r *Repository) Get(ctx context.Context, memberID uuid.UUID) (Avatar, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT member_id, object_path, content_type, size_bytes, created_at, updated_at
FROM avatars
WHERE member_id = $1;`

	var a Avatar
	err := r.pool.QueryRow(ctx, query, memberID).Scan(
		&a.MemberID,
		&a.ObjectPath,
		&a.ContentType,
		&a.SizeBytes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Avatar{}, ErrAvatarNotFound
		}
		return Avatar{}, fmt.Errorf("get avatar: %w", err)
	}

	return a, nil
}

// Delete removes the avatar row and clears the member's path marker,
// returning the deleted metadata for object-store cleanup.
func (r *Repository) Delete(ctx context.Context, memberID uuid.UUID) (Avatar, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Avatar{}, fmt.Errorf("begin avatar delete: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
DELETE FROM avatars
WHERE member_id = $1
RETURNING member_id, object_path, content_type, size_bytes, created_at, updated_at;`

	var a Avatar
	err = tx.QueryRow(ctx, query, memberID).Scan(
		&a.MemberID,
		&a.ObjectPath,
		&a.ContentType,
		&a.SizeBytes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Avatar{}, ErrAvatarNotFound
		}
		return Avatar{}, fmt.Errorf("delete avatar: %w", err)
	}

	markQuery := `UPDATE members SET avatar_path = NULL, updated_at = NOW() WHERE id = $1;`
	if _, err := tx.Exec(ctx, markQuery, memberID); err != nil {
		return Avatar{}, fmt.Errorf("clear member avatar: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Avatar{}, fmt.Errorf("commit avatar delete: %w", err)
	}

	return a, nil
}
