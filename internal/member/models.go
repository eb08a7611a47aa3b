package member

import (
	"time"

	"github.com/google/uuid"
)

// Member represents a museum association member.
type Member struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	FirstName  *string    `json:"first_name,omitempty"`
	LastName   *string    `json:"last_name,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	IsAdmin    bool       `json:"is_admin"`
	AvatarPath *string    `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"-"`
}

// Profile is a Member projection with the resolved avatar URL attached.
type Profile struct {
	Member
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// UpdateInput carries the mutable profile fields. Nil means "unchanged".
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

// Page bounds a listing request.
type Page struct {
	Offset int
	Limit  int
}
