package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/proseware/auth-api/internal/ports"
)

// Token verification failures. Expiry is reported separately so callers
// can log the distinction; both map to the same client-facing 401.
var (
	// ErrTokenInvalid is returned for malformed tokens, bad signatures,
	// and unexpected signing methods.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired is returned when the signature verifies but the
	// validity window has passed.
	ErrTokenExpired = errors.New("token expired")
)

var _ ports.TokenIssuer = (*TokenService)(nil)

// Claims carries the registered claims plus the authorized user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenService issues and verifies HS256-signed session tokens. The
// signing secret is process-wide configuration passed in at startup;
// verification is pure and side-effect-free.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service with the given signing secret
// and validity window.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// TTL returns the configured validity window. The HTTP layer uses it
// for the cookie max-age.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token naming subjectID, valid for the configured window.
func (s *TokenService) Issue(subjectID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: subjectID,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature and expiry and returns the subject id.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	if !token.Valid || claims.UserID == "" {
		return "", ErrTokenInvalid
	}
	return claims.UserID, nil
}
