package maillog

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

const logColumns = `id, member_id, recipient, subject, body, status, sent_at`

// Repository provides access to email log records.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new email log repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts one log entry.
func (r *Repository) Create(ctx context.Context, input CreateInput) (EmailLog, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
INSERT INTO email_logs (member_id, recipient, subject, body, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + logColumns + `;`

	row := r.pool.QueryRow(ctx, query, input.MemberID, input.Recipient, input.Subject, input.Body, input.Status)
	entry, err := scanEmailLog(row)
	if err != nil {
		return EmailLog{}, fmt.Errorf("create email log: %w", err)
	}
	return entry, nil
}

// Get fetches one log entry by id.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (EmailLog, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `SELECT ` + logColumns + ` FROM email_logs WHERE id = $1;`

	entry, err := scanEmailLog(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return EmailLog{}, ErrEmailLogNotFound
		}
		return EmailLog{}, fmt.Errorf("get email log: %w", err)
	}
	return entry, nil
}

// ListByMember returns mail addressed to one member, newest first.
func (r *Repository) ListByMember(ctx context.Context, memberID uuid.UUID, page Page) ([]EmailLog, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT ` + logColumns + `
FROM email_logs
WHERE member_id = $1
ORDER BY sent_at DESC
LIMIT $2 OFFSET $3;`

	rows, err := r.pool.Query(ctx, query, memberID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list email logs by member: %w", err)
	}
	defer rows.Close()

	return collectEmailLogs(rows)
}

// ListSystem returns mail with no owning member, newest first.
func (r *Repository) ListSystem(ctx context.Context, page Page) ([]EmailLog, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT ` + logColumns + `
FROM email_logs
WHERE member_id IS NULL
ORDER BY sent_at DESC
LIMIT $1 OFFSET $2;`

	rows, err := r.pool.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list system email logs: %w", err)
	}
	defer rows.Close()

	return collectEmailLogs(rows)
}

// ListInRange returns mail sent inside [from, to], newest first.
func (r *Repository) ListInRange(ctx context.Context, from, to time.Time, page Page) ([]EmailLog, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT ` + logColumns + `
FROM email_logs
WHERE sent_at >= $1 AND sent_at <= $2
ORDER BY sent_at DESC
LIMIT $3 OFFSET $4;`

	rows, err := r.pool.Query(ctx, query, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list email logs in range: %w", err)
	}
	defer rows.Close()

	return collectEmailLogs(rows)
}

// Search performs a case-insensitive substring search over recipient
// and subject.
func (r *Repository) Search(ctx context.Context, term string, page Page) ([]EmailLog, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT ` + logColumns + `
FROM email_logs
WHERE recipient ILIKE '%' || $1 || '%' OR subject ILIKE '%' || $1 || '%'
ORDER BY sent_at DESC
LIMIT $2 OFFSET $3;`

	rows, err := r.pool.Query(ctx, query, term, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("search email logs: %w", err)
	}
	defer rows.Close()

	return collectEmailLogs(rows)
}

func scanEmailLog(row pgx.Row) (EmailLog, error) {
	var e EmailLog
	err := row.Scan(
		&e.ID,
		&e.MemberID,
		&e.Recipient,
		&e.Subject,
		&e.Body,
		&e.Status,
		&e.SentAt,
	)
	return e, err
}

func collectEmailLogs(rows pgx.Rows) ([]EmailLog, error) {
	var entries []EmailLog
	for rows.Next() {
		e, err := scanEmailLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan email log: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate email logs: %w", err)
	}
	return entries, nil
}
