package user

// Package user contains domain-level types for user accounts.
// It is pure and free of framework/adapter concerns.

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/proseware/auth-api/internal/errors"
)

const (
	maxNameLen  = 255
	maxEmailLen = 320

	// MinPasswordLen is the minimum accepted raw password length.
	MinPasswordLen = 6
)

// User is the persisted user record. PasswordHash is never empty on a
// stored user and never leaves the service layer.
type User struct {
	ID           string    `json:"id"            db:"id"`
	Name         string    `json:"name"          db:"name"`
	Email        string    `json:"email"         db:"email"`
	PasswordHash string    `json:"password_hash" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"    db:"updated_at"`
}

// PublicUser is the user representation safe for transmission:
// the password hash is stripped.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the transmission-safe view of the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// NormalizeEmail lowercases and trims an email for use as a login key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that the email parses as an address and fits the store.
func ValidateEmail(email string) error {
	e := NormalizeEmail(email)
	if e == "" {
		return apperrors.ValidationField("email", "email is required")
	}
	if utf8.RuneCountInString(e) > maxEmailLen {
		return apperrors.ValidationField("email", "email cannot exceed 320 characters")
	}
	if _, err := mail.ParseAddress(e); err != nil {
		return apperrors.ValidationField("email", "email is not a valid address")
	}
	return nil
}

// ValidateName checks the display name.
func ValidateName(name string) error {
	n := strings.TrimSpace(name)
	if n == "" {
		return apperrors.ValidationField("name", "name is required")
	}
	if utf8.RuneCountInString(n) > maxNameLen {
		return apperrors.ValidationField("name", "name cannot exceed 255 characters")
	}
	return nil
}

// ValidatePassword checks a raw password before hashing.
func ValidatePassword(raw string) error {
	if raw == "" {
		return apperrors.ValidationField("password", "password is required")
	}
	if utf8.RuneCountInString(raw) < MinPasswordLen {
		return apperrors.ValidationField("password", "password must be at least 6 characters")
	}
	return nil
}

// RegisterRequest contains fields to create a new user.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks all registration fields.
func (r *RegisterRequest) Validate() error {
	if err := ValidateName(r.Name); err != nil {
		return err
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	return ValidatePassword(r.Password)
}

// ProfileUpdate is a partial update to the current user. Empty fields
// keep their stored values; a non-empty Password is re-hashed before
// persistence.
type ProfileUpdate struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// Validate checks only the fields present in the patch.
func (p *ProfileUpdate) Validate() error {
	if p.Name != "" {
		if err := ValidateName(p.Name); err != nil {
			return err
		}
	}
	if p.Email != "" {
		if err := ValidateEmail(p.Email); err != nil {
			return err
		}
	}
	if p.Password != "" {
		if err := ValidatePassword(p.Password); err != nil {
			return err
		}
	}
	return nil
}
