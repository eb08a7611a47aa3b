package maillog

import (
	"time"

	"github.com/google/uuid"
)

// EmailLog records one outbound email. MemberID is nil for system mail
// that is not addressed to a particular member.
type EmailLog struct {
	ID        uuid.UUID  `json:"id"`
	MemberID  *uuid.UUID `json:"member_id,omitempty"`
	Recipient string     `json:"recipient"`
	Subject   string     `json:"subject"`
	Body      *string    `json:"body,omitempty"`
	Status    string     `json:"status"`
	SentAt    time.Time  `json:"sent_at"`
}

// CreateInput carries the fields for recording a sent email.
type CreateInput struct {
	MemberID  *uuid.UUID
	Recipient string
	Subject   string
	Body      *string
	Status    string
}

// Page bounds a listing request.
type Page struct {
	Offset int
	Limit  int
}
