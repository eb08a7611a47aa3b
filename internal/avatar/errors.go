package avatar

import "errors"

var (
	// ErrAvatarNotFound signals that the member has no stored profile picture.
	ErrAvatarNotFound = errors.New("avatar not found")
	// ErrInvalidMember indicates a missing or nil member identifier.
	ErrInvalidMember = errors.New("invalid member id")
)
