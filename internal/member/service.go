package member

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

const (
	defaultPageLimit = 25
	maxPageLimit     = 100
)

type memberStore interface {
	Get(ctx context.Context, memberID uuid.UUID) (Member, error)
	Update(ctx context.Context, memberID uuid.UUID, input UpdateInput) (Member, error)
	List(ctx context.Context, page Page) ([]Member, error)
	SearchByName(ctx context.Context, term string, page Page) ([]Member, error)
	SoftDelete(ctx context.Context, memberID uuid.UUID) error
}

type avatarURLResolver interface {
	Resolve(memberID uuid.UUID, avatarPath *string) (string, bool)
}

// Service exposes member profile and admin operations.
type Service struct {
	repo     memberStore
	resolver avatarURLResolver
}

// NewService constructs a member service.
func NewService(repo memberStore, resolver avatarURLResolver) *Service {
	return &Service{repo: repo, resolver: resolver}
}

// Profile returns the member with the avatar URL resolved. Members without
// a stored avatar simply have no URL; that is not an error.
func (s *Service) Profile(ctx context.Context, memberID uuid.UUID) (Profile, error) {
	m, err := s.repo.Get(ctx, memberID)
	if err != nil {
		return Profile{}, err
	}
	return s.toProfile(m), nil
}

// UpdateProfile applies the mutable fields and returns the fresh profile.
func (s *Service) UpdateProfile(ctx context.Context, memberID uuid.UUID, input UpdateInput) (Profile, error) {
	m, err := s.repo.Update(ctx, memberID, input)
	if err != nil {
		return Profile{}, err
	}
	return s.toProfile(m), nil
}

// List returns a page of member profiles, optionally filtered by a
// case-insensitive name search.
func (s *Service) List(ctx context.Context, search string, page Page) ([]Profile, error) {
	page = clampPage(page)
	search = strings.TrimSpace(search)

	var (
		members []Member
		err     error
	)
	if search != "" {
		members, err = s.repo.SearchByName(ctx, search, page)
	} else {
		members, err = s.repo.List(ctx, page)
	}
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(members))
	for _, m := range members {
		profiles = append(profiles, s.toProfile(m))
	}
	return profiles, nil
}

// Delete soft-deletes the member.
func (s *Service) Delete(ctx context.Context, memberID uuid.UUID) error {
	return s.repo.SoftDelete(ctx, memberID)
}

func (s *Service) toProfile(m Member) Profile {
	p := Profile{Member: m}
	if url, ok := s.resolver.Resolve(m.ID, m.AvatarPath); ok {
		p.AvatarURL = &url
	}
	return p
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
