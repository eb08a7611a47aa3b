package member

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestProfileResolvesAvatarURL(t *testing.T) {
	repo := newFakeMemberStore()
	service := NewService(repo, fakeResolver{})

	path := "avatars/some-object"
	m := repo.add(Member{Email: "with@example.com", AvatarPath: &path})

	profile, err := service.Profile(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if profile.AvatarURL == nil {
		t.Fatalf("expected avatar URL for member with stored avatar")
	}
	if !strings.Contains(*profile.AvatarURL, m.ID.String()) {
		t.Fatalf("avatar URL missing member id: %s", *profile.AvatarURL)
	}
}

func TestProfileWithoutAvatarHasNoURL(t *testing.T) {
	repo := newFakeMemberStore()
	service := NewService(repo, fakeResolver{})

	m := repo.add(Member{Email: "without@example.com"})

	profile, err := service.Profile(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if profile.AvatarURL != nil {
		t.Fatalf("expected no avatar URL, got %s", *profile.AvatarURL)
	}
}

func TestProfileNotFound(t *testing.T) {
	service := NewService(newFakeMemberStore(), fakeResolver{})

	if _, err := service.Profile(context.Background(), uuid.New()); err != ErrMemberNotFound {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestListUsesSearchWhenTermPresent(t *testing.T) {
	repo := newFakeMemberStore()
	service := NewService(repo, fakeResolver{})

	if _, err := service.List(context.Background(), "  mueller  ", Page{}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.lastSearchTerm != "mueller" {
		t.Fatalf("expected trimmed search term, got %q", repo.lastSearchTerm)
	}

	if _, err := service.List(context.Background(), "   ", Page{}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if !repo.listCalled {
		t.Fatalf("expected blank search to fall back to plain listing")
	}
}

func TestListClampsPageLimit(t *testing.T) {
	repo := newFakeMemberStore()
	service := NewService(repo, fakeResolver{})

	if _, err := service.List(context.Background(), "", Page{Limit: 10_000, Offset: -5}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.lastPage.Limit != maxPageLimit {
		t.Fatalf("expected limit clamped to %d, got %d", maxPageLimit, repo.lastPage.Limit)
	}
	if repo.lastPage.Offset != 0 {
		t.Fatalf("expected negative offset clamped to 0, got %d", repo.lastPage.Offset)
	}
}

// --- fakes ---

type fakeResolver struct{}

func (fakeResolver) Resolve(memberID uuid.UUID, avatarPath *string) (string, bool) {
	if memberID == uuid.Nil || avatarPath == nil || *avatarPath == "" {
		return "", false
	}
	return "/api/upload/profile-picture/" + memberID.String() + "?t=1", true
}

type fakeMemberStore struct {
	members        map[uuid.UUID]Member
	lastSearchTerm string
	lastPage       Page
	listCalled     bool
}

func newFakeMemberStore() *fakeMemberStore {
	return &fakeMemberStore{members: make(map[uuid.UUID]Member)}
}

func (f *fakeMemberStore) add(m Member) Member {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	f.members[m.ID] = m
	return m
}

func (f *fakeMemberStore) Get(ctx context.Context, memberID uuid.UUID) (Member, error) {
	m, ok := f.members[memberID]
	if !ok {
		return Member{}, ErrMemberNotFound
	}
	return m, nil
}

func (f *fakeMemberStore) Update(ctx context.Context, memberID uuid.UUID, input UpdateInput) (Member, error) {
	m, ok := f.members[memberID]
	if !ok {
		return Member{}, ErrMemberNotFound
	}
	if input.FirstName != nil {
		m.FirstName = input.FirstName
	}
	if input.LastName != nil {
		m.LastName = input.LastName
	}
	if input.Phone != nil {
		m.Phone = input.Phone
	}
	f.members[memberID] = m
	return m, nil
}

func (f *fakeMemberStore) List(ctx context.Context, page Page) ([]Member, error) {
	f.listCalled = true
	f.lastPage = page
	var out []Member
	for _, m := range f.members {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMemberStore) SearchByName(ctx context.Context, term string, page Page) ([]Member, error) {
	f.lastSearchTerm = term
	f.lastPage = page
	return nil, nil
}

func (f *fakeMemberStore) SoftDelete(ctx context.Context, memberID uuid.UUID) error {
	if _, ok := f.members[memberID]; !ok {
		return ErrMemberNotFound
	}
	delete(f.members, memberID)
	return nil
}
