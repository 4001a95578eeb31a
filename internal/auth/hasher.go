package auth

// Package auth implements the credential core: password hashing and
// session token issuance/verification.

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/proseware/auth-api/internal/ports"
)

var _ ports.PasswordHasher = (*BcryptHasher)(nil)

// BcryptHasher hashes passwords with bcrypt. Each Hash call generates a
// fresh random salt; the cost and salt are embedded in the encoded hash.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given work factor.
// Out-of-range costs fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash derives a salted one-way hash of the raw password.
func (h *BcryptHasher) Hash(raw string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(out), nil
}

// Verify recomputes the hash using the embedded salt and parameters and
// compares in constant time. Mismatch and malformed hashes both report
// false.
func (h *BcryptHasher) Verify(raw, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(raw)) == nil
}
