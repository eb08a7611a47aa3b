package booking

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

const bookingColumns = `id, member_id, purpose, visit_date, party_size, notes, created_at, updated_at, deleted_at`

// Repository provides access to booking records.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new booking repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a booking for the member.
func (r *Repository) Create(ctx context.Context, memberID uuid.UUID, input CreateInput) (Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
INSERT INTO bookings (member_id, purpose, visit_date, party_size, notes)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + bookingColumns + `;`

	row := r.pool.QueryRow(ctx, query, memberID, input.Purpose, input.VisitDate, input.PartySize, input.Notes)
	b, err := scanBooking(row)
	if err != nil {
		return Booking{}, fmt.Errorf("create booking: %w", err)
	}
	return b, nil
}

// Get fetches one live booking, scoped to its owner.
func (r *Repository) Get(ctx context.Context, memberID, bookingID uuid.UUID) (Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT ` + bookingColumns + `
FROM bookings
WHERE id = $1 AND member_id = $2 AND deleted_at IS NULL;`

	row := r.pool.QueryRow(ctx, query, bookingID, memberID)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, ErrBookingNotFound
		}
		return Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// ListByMember returns the member's live bookings, upcoming first.
func (r *Repository) ListByMember(ctx context.Context, memberID uuid.UUID, page Page) ([]Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT ` + bookingColumns + `
FROM bookings
WHERE member_id = $1 AND deleted_at IS NULL
ORDER BY visit_date DESC
LIMIT $2 OFFSET $3;`

	rows, err := r.pool.Query(ctx, query, memberID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// ListInRange returns all live bookings whose visit date falls inside
// [from, to], across members.
func (r *Repository) ListInRange(ctx context.Context, from, to time.Time, page Page) ([]Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT ` + bookingColumns + `
FROM bookings
WHERE deleted_at IS NULL AND visit_date >= $1 AND visit_date <= $2
ORDER BY visit_date
LIMIT $3 OFFSET $4;`

	rows, err := r.pool.Query(ctx, query, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings in range: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// Cancel soft-deletes a booking, scoped to its owner.
func (r *Repository) Cancel(ctx context.Context, memberID, bookingID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
UPDATE bookings
SET deleted_at = NOW(), updated_at = NOW()
WHERE id = $1 AND member_id = $2 AND deleted_at IS NULL;`

	tag, err := r.pool.Exec(ctx, query, bookingID, memberID)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID,
		&b.MemberID,
		&b.Purpose,
		&b.VisitDate,
		&b.PartySize,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.DeletedAt,
	)
	return b, err
}

func collectBookings(rows pgx.Rows) ([]Booking, error) {
	var bookings []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}
