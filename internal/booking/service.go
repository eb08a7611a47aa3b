package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultPageLimit = 25
	maxPageLimit     = 100
	maxPartySize     = 50
)

type bookingStore interface {
	Create(ctx context.Context, memberID uuid.UUID, input CreateInput) (Booking, error)
	Get(ctx context.Context, memberID, bookingID uuid.UUID) (Booking, error)
	ListByMember(ctx context.Context, memberID uuid.UUID, page Page) ([]Booking, error)
	ListInRange(ctx context.Context, from, to time.Time, page Page) ([]Booking, error)
	Cancel(ctx context.Context, memberID, bookingID uuid.UUID) error
}

// Service manages booking lifecycle operations.
type Service struct {
	repo    bookingStore
	nowFunc func() time.Time
}

// NewService constructs a booking service.
func NewService(repo bookingStore) *Service {
	return &Service{repo: repo, nowFunc: time.Now}
}

// Create validates and records a new booking.
func (s *Service) Create(ctx context.Context, memberID uuid.UUID, input CreateInput) (Booking, error) {
	input.Purpose = strings.TrimSpace(input.Purpose)
	if input.Purpose == "" {
		return Booking{}, fmt.Errorf("%w: purpose required", ErrInvalidBooking)
	}
	if input.VisitDate.IsZero() || input.VisitDate.Before(s.nowFunc()) {
		return Booking{}, fmt.Errorf("%w: visit date must be in the future", ErrInvalidBooking)
	}
	if input.PartySize < 1 || input.PartySize > maxPartySize {
		return Booking{}, fmt.Errorf("%w: party size must be between 1 and %d", ErrInvalidBooking, maxPartySize)
	}

	return s.repo.Create(ctx, memberID, input)
}

// Get returns one of the member's bookings.
func (s *Service) Get(ctx context.Context, memberID, bookingID uuid.UUID) (Booking, error) {
	return s.repo.Get(ctx, memberID, bookingID)
}

// ListByMember returns a page of the member's bookings.
func (s *Service) ListByMember(ctx context.Context, memberID uuid.UUID, page Page) ([]Booking, error) {
	return s.repo.ListByMember(ctx, memberID, clampPage(page))
}

// ListInRange returns bookings across members within the date range.
func (s *Service) ListInRange(ctx context.Context, from, to time.Time, page Page) ([]Booking, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", ErrInvalidBooking)
	}
	return s.repo.ListInRange(ctx, from, to, clampPage(page))
}

// Cancel soft-deletes the member's booking.
func (s *Service) Cancel(ctx context.Context, memberID, bookingID uuid.UUID) error {
	return s.repo.Cancel(ctx, memberID, bookingID)
}

func clampPage(page Page) Page {
	if page.Limit <= 0 {
		page.Limit = defaultPageLimit
	}
	if page.Limit > maxPageLimit {
		page.Limit = maxPageLimit
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return page
}
