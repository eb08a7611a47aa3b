package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newTestService(repo *fakeBookingStore) *Service {
	s := NewService(repo)
	s.nowFunc = fixedNow
	return s
}

func TestCreateBooking(t *testing.T) {
	repo := newFakeBookingStore()
	service := newTestService(repo)

	memberID := uuid.New()
	b, err := service.Create(context.Background(), memberID, CreateInput{
		Purpose:   "  Guided tour  ",
		VisitDate: fixedNow().Add(48 * time.Hour),
		PartySize: 4,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if b.Purpose != "Guided tour" {
		t.Fatalf("expected trimmed purpose, got %q", b.Purpose)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected booking stored, got %d", len(repo.records))
	}
}

func TestCreateRejectsPastVisitDate(t *testing.T) {
	service := newTestService(newFakeBookingStore())

	_, err := service.Create(context.Background(), uuid.New(), CreateInput{
		Purpose:   "Tour",
		VisitDate: fixedNow().Add(-time.Hour),
		PartySize: 2,
	})
	if !errors.Is(err, ErrInvalidBooking) {
		t.Fatalf("expected ErrInvalidBooking, got %v", err)
	}
}

func TestCreateRejectsEmptyPurpose(t *testing.T) {
	service := newTestService(newFakeBookingStore())

	_, err := service.Create(context.Background(), uuid.New(), CreateInput{
		Purpose:   "   ",
		VisitDate: fixedNow().Add(time.Hour),
		PartySize: 2,
	})
	if !errors.Is(err, ErrInvalidBooking) {
		t.Fatalf("expected ErrInvalidBooking, got %v", err)
	}
}

func TestCreateRejectsBadPartySize(t *testing.T) {
	service := newTestService(newFakeBookingStore())

	for _, size := range []int{0, -1, maxPartySize + 1} {
		_, err := service.Create(context.Background(), uuid.New(), CreateInput{
			Purpose:   "Tour",
			VisitDate: fixedNow().Add(time.Hour),
			PartySize: size,
		})
		if !errors.Is(err, ErrInvalidBooking) {
			t.Fatalf("expected ErrInvalidBooking for party size %d, got %v", size, err)
		}
	}
}

func TestListInRangeRejectsInvertedRange(t *testing.T) {
	service := newTestService(newFakeBookingStore())

	from := fixedNow()
	to := from.Add(-time.Hour)
	if _, err := service.ListInRange(context.Background(), from, to, Page{}); !errors.Is(err, ErrInvalidBooking) {
		t.Fatalf("expected ErrInvalidBooking, got %v", err)
	}
}

func TestCancelUnknownBooking(t *testing.T) {
	service := newTestService(newFakeBookingStore())

	if err := service.Cancel(context.Background(), uuid.New(), uuid.New()); err != ErrBookingNotFound {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

// --- fakes ---

type fakeBookingStore struct {
	records map[uuid.UUID]Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{records: make(map[uuid.UUID]Booking)}
}

func (f *fakeBookingStore) Create(ctx context.Context, memberID uuid.UUID, input CreateInput) (Booking, error) {
	b := Booking{
		ID:        uuid.New(),
		MemberID:  memberID,
		Purpose:   input.Purpose,
		VisitDate: input.VisitDate,
		PartySize: input.PartySize,
		Notes:     input.Notes,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.records[b.ID] = b
	return b, nil
}

func (f *fakeBookingStore) Get(ctx context.Context, memberID, bookingID uuid.UUID) (Booking, error) {
	b, ok := f.records[bookingID]
	if !ok || b.MemberID != memberID {
		return Booking{}, ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingStore) ListByMember(ctx context.Context, memberID uuid.UUID, page Page) ([]Booking, error) {
	var out []Booking
	for _, b := range f.records {
		if b.MemberID == memberID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) ListInRange(ctx context.Context, from, to time.Time, page Page) ([]Booking, error) {
	var out []Booking
	for _, b := range f.records {
		if !b.VisitDate.Before(from) && !b.VisitDate.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) Cancel(ctx context.Context, memberID, bookingID uuid.UUID) error {
	b, ok := f.records[bookingID]
	if !ok || b.MemberID != memberID {
		return ErrBookingNotFound
	}
	delete(f.records, bookingID)
	return nil
}
