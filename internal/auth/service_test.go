package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pborkovic/bunkermuseum-members/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
		BcryptCost:         4,
	}
}

func TestRegisterSuccess(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testAuthConfig())

	result, err := service.Register(context.Background(), RegisterInput{
		Email:    "member@example.com",
		Password: "StrongPass1!",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if result.Account.PasswordHash != "" {
		t.Fatalf("expected password hash to be stripped from response")
	}
	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Fatalf("expected tokens to be issued")
	}
	if len(store.accounts) != 1 {
		t.Fatalf("expected account stored; got %d", len(store.accounts))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testAuthConfig())

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "member@example.com",
		Password: "StrongPass1!",
	})
	if err != nil {
		t.Fatalf("initial registration returned error: %v", err)
	}

	_, err = service.Register(context.Background(), RegisterInput{
		Email:    "member@example.com",
		Password: "AnotherPass2!",
	})
	if err == nil || err != ErrEmailAlreadyExists {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testAuthConfig())

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "member@example.com",
		Password: "StrongPass1!",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	result, err := service.Login(context.Background(), LoginInput{
		Email:    "member@example.com",
		Password: "StrongPass1!",
	})
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}

	if result.Tokens.AccessToken == "" {
		t.Fatalf("expected access token")
	}

	claims, err := service.ValidateAccessToken(result.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if claims.Email != "member@example.com" {
		t.Fatalf("unexpected email claim: %s", claims.Email)
	}
}

func TestLoginInvalidPassword(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testAuthConfig())

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "member@example.com",
		Password: "StrongPass1!",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	_, err = service.Login(context.Background(), LoginInput{
		Email:    "member@example.com",
		Password: "WrongPass99",
	})
	if err == nil || err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	service := NewService(newMemoryStore(), testAuthConfig())

	if _, err := service.ValidateAccessToken("not-a-jwt"); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := service.ValidateAccessToken(""); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}

// memoryStore implements accountStore for tests.
type memoryStore struct {
	accounts      map[string]Account
	refreshTokens map[string]time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts:      make(map[string]Account),
		refreshTokens: make(map[string]time.Time),
	}
}

func (m *memoryStore) CreateAccount(ctx context.Context, email, passwordHash string, firstName, lastName *string) (Account, error) {
	if _, ok := m.accounts[email]; ok {
		return Account{}, ErrEmailAlreadyExists
	}
	account := Account{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.accounts[email] = account
	return account, nil
}

func (m *memoryStore) FindAccountByEmail(ctx context.Context, email string) (Account, error) {
	account, ok := m.accounts[email]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return account, nil
}

func (m *memoryStore) StoreRefreshToken(ctx context.Context, memberID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	m.refreshTokens[tokenHash] = expiresAt
	return nil
}

func (m *memoryStore) RevokeToken(ctx context.Context, memberID uuid.UUID, tokenHash string) error {
	delete(m.refreshTokens, tokenHash)
	return nil
}
