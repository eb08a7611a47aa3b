package avatar

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestResolveAbsentWithoutAvatarPath(t *testing.T) {
	resolver := NewURLResolver("/api/upload/profile-picture/")

	if url, ok := resolver.Resolve(uuid.New(), nil); ok {
		t.Fatalf("expected absent URL for nil avatar path, got %q", url)
	}

	empty := ""
	if url, ok := resolver.Resolve(uuid.New(), &empty); ok {
		t.Fatalf("expected absent URL for empty avatar path, got %q", url)
	}
}

func TestResolveAbsentWithoutMemberID(t *testing.T) {
	resolver := NewURLResolver("/api/upload/profile-picture/")
	path := "avatars/x"

	if url, ok := resolver.Resolve(uuid.Nil, &path); ok {
		t.Fatalf("expected absent URL for nil member id, got %q", url)
	}
}

func TestResolvePresentWithBothFields(t *testing.T) {
	resolver := NewURLResolver("/api/upload/profile-picture/")
	memberID := uuid.New()
	path := "avatars/" + memberID.String()

	url, ok := resolver.Resolve(memberID, &path)
	if !ok {
		t.Fatalf("expected URL to be resolved")
	}
	if !strings.HasPrefix(url, "/api/upload/profile-picture/"+memberID.String()+"?t=") {
		t.Fatalf("unexpected URL shape: %q", url)
	}
}

func TestResolveRecomputesCacheBuster(t *testing.T) {
	memberID := uuid.New()
	path := "avatars/" + memberID.String()

	// Inject a clock so the two calls are guaranteed distinct timestamps.
	ts := time.UnixMilli(1000)
	resolver := URLResolver{basePath: "/api/upload/profile-picture/", now: func() time.Time {
		ts = ts.Add(time.Millisecond)
		return ts
	}}

	first, ok := resolver.Resolve(memberID, &path)
	if !ok {
		t.Fatalf("expected first URL")
	}
	second, ok := resolver.Resolve(memberID, &path)
	if !ok {
		t.Fatalf("expected second URL")
	}

	if first == second {
		t.Fatalf("expected distinct cache-busting URLs")
	}

	prefix := fmt.Sprintf("/api/upload/profile-picture/%s?t=", memberID.String())
	if !strings.HasPrefix(first, prefix) || !strings.HasPrefix(second, prefix) {
		t.Fatalf("URLs differ outside the t parameter: %q vs %q", first, second)
	}
}

func TestNewURLResolverNormalizesBasePath(t *testing.T) {
	resolver := NewURLResolver("/api/upload/profile-picture")
	memberID := uuid.New()
	path := "avatars/" + memberID.String()

	url, ok := resolver.Resolve(memberID, &path)
	if !ok {
		t.Fatalf("expected URL to be resolved")
	}
	if strings.Contains(url, "picture"+memberID.String()) {
		t.Fatalf("base path missing separator: %q", url)
	}
}
