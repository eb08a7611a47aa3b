package member

import "errors"

var (
	// ErrMemberNotFound signals that the member could not be located or is deleted.
	ErrMemberNotFound = errors.New("member not found")
)
