package config

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// minSecretLength is the minimum accepted JWT signing secret length in
// bytes outside of development mode. HS256 keys shorter than the hash
// output add no security margin.
const minSecretLength = 32

// AuthConfig groups token signing and password hashing configuration.
type AuthConfig struct {
	// JWTSecret is the symmetric key used to sign session tokens.
	// Required; must be at least 32 bytes outside development mode.
	JWTSecret string `env:"JWT_SECRET"`

	// TokenTTL is the validity window for issued session tokens and
	// the max-age of the session cookie. Default is 15 days.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"360h"`

	// BcryptCost is the bcrypt work factor used when hashing passwords.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.TokenTTL <= 0 {
		a.TokenTTL = 360 * time.Hour
	}
}

// Validate fails fast on configuration that would weaken the auth core.
// Development mode relaxes the secret length floor but still requires a
// non-empty secret.
func (a *AuthConfig) Validate(isDev bool) error {
	if a.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if !isDev && len(a.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes, got %d", minSecretLength, len(a.JWTSecret))
	}
	if a.BcryptCost < bcrypt.MinCost || a.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, a.BcryptCost)
	}
	return nil
}
