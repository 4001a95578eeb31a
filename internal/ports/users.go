package ports

// Package ports defines interfaces (hexagonal ports) for the auth core.
// Implementations live in internal/auth and internal/data; orchestration
// in internal/service.

import (
	"context"
	"errors"
	"time"

	"github.com/proseware/auth-api/internal/domain/user"
)

// Shared sentinel errors returned by UserStore implementations.
var (
	// ErrUserNotFound is returned when no user matches the given key.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when creating or updating to an email
	// that already belongs to another user.
	ErrEmailTaken = errors.New("email already taken")
)

// UserStore persists and retrieves user records. Implementations must
// enforce email uniqueness and provide per-record write atomicity; the
// core never requires cross-record transactions.
type UserStore interface {
	// Create inserts a new user. Returns ErrEmailTaken when the email
	// is already registered.
	Create(ctx context.Context, u user.User) error

	// FindByID returns the user with the given id, or ErrUserNotFound.
	FindByID(ctx context.Context, id string) (user.User, error)

	// FindByEmail returns the user with the given normalized email,
	// or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (user.User, error)

	// Update overwrites the stored record for u.ID. Returns
	// ErrUserNotFound when the id does not resolve and ErrEmailTaken
	// when the new email belongs to another user.
	Update(ctx context.Context, u user.User) error
}

// PasswordHasher performs one-way salted hashing and constant-time
// verification of raw credentials.
type PasswordHasher interface {
	// Hash derives a self-contained encoded hash (salt and parameters
	// embedded) from the raw password.
	Hash(raw string) (string, error)

	// Verify reports whether raw matches the encoded hash. It returns
	// false on mismatch, never an error.
	Verify(raw, encoded string) bool
}

// TokenIssuer mints and verifies signed, time-limited session tokens.
type TokenIssuer interface {
	// Issue signs a token naming subjectID, valid until the returned
	// expiry.
	Issue(subjectID string) (token string, expiresAt time.Time, err error)

	// Verify checks signature and expiry and returns the subject id.
	// Failures are auth.ErrTokenInvalid or auth.ErrTokenExpired.
	Verify(token string) (subjectID string, err error)
}
