package avatar

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// URLResolver manufactures the public, cache-busted URL for a member's
// profile picture.
type URLResolver struct {
	basePath string
	now      func() time.Time
}

// NewURLResolver builds a resolver serving URLs under basePath.
func NewURLResolver(basePath string) URLResolver {
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return URLResolver{basePath: basePath, now: time.Now}
}

// Resolve returns the avatar URL for a member, or false when no URL should
// be exposed. Both the identifier and the avatar-path marker must be set;
// a partially initialized record resolves to absent rather than an error.
// The timestamp query parameter is recomputed on every call so clients
// never serve a stale image from their HTTP cache after an overwrite.
func (r URLResolver) Resolve(memberID uuid.UUID, avatarPath *string) (string, bool) {
	if memberID == uuid.Nil || avatarPath == nil || *avatarPath == "" {
		return "", false
	}

	return fmt.Sprintf("%s%s?t=%d", r.basePath, memberID.String(), r.now().UnixMilli()), true
}
