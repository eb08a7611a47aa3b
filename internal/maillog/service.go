package maillog

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200

	// StatusSent and StatusFailed are the recognized delivery outcomes.
	StatusSent   = "sent"
	StatusFailed = "failed"
)

type logStore interface {
	Create(ctx context.Context, input CreateInput) (EmailLog, error)
	Get(ctx context.Context, id uuid.UUID) (EmailLog, error)
	ListByMember(ctx context.Context, memberID uuid.UUID, page Page) ([]EmailLog, error)
	ListSystem(ctx context.Context, page Page) ([]EmailLog, error)
	ListInRange(ctx context.Context, from, to time.Time, page Page) ([]EmailLog, error)
	Search(ctx context.Context, term string, page Page) ([]EmailLog, error)
}

// Filter selects which slice of the email log to return. The fields are
// applied in priority order: search term, system-only, member, date range.
type Filter struct {
	Search     string
	SystemOnly bool
	MemberID   *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// Service exposes email log recording and querying.
type Service struct {
	repo logStore
}

// NewService constructs an email log service.
func NewService(repo logStore) *Service {
	return &Service{repo: repo}
}

// Record validates and stores a log entry for an already-sent email.
func (s *Service) Record(ctx context.Context, input CreateInput) (EmailLog, error) {
	input.Recipient = strings.TrimSpace(input.Recipient)
	if _, err := mail.ParseAddress(input.Recipient); err != nil {
		return EmailLog{}, fmt.Errorf("%w: bad recipient address", ErrInvalidEmailLog)
	}

	input.Subject = strings.TrimSpace(input.Subject)
	if input.Subject == "" {
		return EmailLog{}, fmt.Errorf("%w: subject required", ErrInvalidEmailLog)
	}

	switch input.Status {
	case "":
		input.Status = StatusSent
	case StatusSent, StatusFailed:
	default:
		return EmailLog{}, fmt.Errorf("%w: unknown status %q", ErrInvalidEmailLog, input.Status)
	}

	return s.repo.Create(ctx, input)
}

// Get returns one log entry.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (EmailLog, error) {
	return s.repo.Get(ctx, id)
}

// List applies the filter and returns a page of log entries.
func (s *Service) List(ctx context.Context, filter Filter, page Page) ([]EmailLog, error) {
	page = clampPage(page)

	if term := strings.TrimSpace(filter.Search); term != "" {
		return s.repo.Search(ctx, term, page)
	}
	if filter.SystemOnly {
		return s.repo.ListSystem(ctx, page)
	}
	if filter.MemberID != nil {
		return s.repo.ListByMember(ctx, *filter.MemberID, page)
	}
	if filter.From != nil || filter.To != nil {
		from, to := rangeBounds(filter)
		if to.Before(from) {
			return nil, fmt.Errorf("%w: range end before start", ErrInvalidEmailLog)
		}
		return s.repo.ListInRange(ctx, from, to, page)
	}

	// No filter: the full log, newest first, is just an unbounded range.
	return s.repo.ListInRange(ctx, time.Time{}, farFuture(), page)
}

func rangeBounds(filter Filter) (time.Time, time.Time) {
	from := time.Time{}
	if filter.From != nil {
		from = *filter.From
	}
	to := farFuture()
	if filter.To != nil {
		to = *filter.To
	}
	return from, to
}

func farFuture() time.Time {
	return time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
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
