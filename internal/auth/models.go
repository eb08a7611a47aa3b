package auth

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a member's login identity.
type Account struct {
	ID           uuid.UUID
	Email        string
	FirstName    *string
	LastName     *string
	IsAdmin      bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SafeAccount removes sensitive fields for response payloads.
func (a Account) SafeAccount() Account {
	a.PasswordHash = ""
	return a
}

// TokenPair bundles access and refresh tokens.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}
