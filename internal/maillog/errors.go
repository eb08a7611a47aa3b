package maillog

import "errors"

var (
	// ErrEmailLogNotFound signals that the log entry could not be located.
	ErrEmailLogNotFound = errors.New("email log not found")
	// ErrInvalidEmailLog indicates the entry failed validation.
	ErrInvalidEmailLog = errors.New("invalid email log")
)
