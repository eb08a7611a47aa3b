package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking represents one planned museum visit by a member.
type Booking struct {
	ID        uuid.UUID  `json:"id"`
	MemberID  uuid.UUID  `json:"member_id"`
	Purpose   string     `json:"purpose"`
	VisitDate time.Time  `json:"visit_date"`
	PartySize int        `json:"party_size"`
	Notes     *string    `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// CreateInput carries the fields needed to book a visit.
type CreateInput struct {
	Purpose   string
	VisitDate time.Time
	PartySize int
	Notes     *string
}

// Page bounds a listing request.
type Page struct {
	Offset int
	Limit  int
}
