package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/proseware/auth-api/internal/domain/user"
	apperrors "github.com/proseware/auth-api/internal/errors"
	"github.com/proseware/auth-api/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Store  ports.UserStore
	Hasher ports.PasswordHasher
}

// UserService orchestrates the credential flows: registration, login,
// and profile read/update. Token issuance and cookie handling live in
// the HTTP layer.
type UserService struct {
	store  ports.UserStore
	hasher ports.PasswordHasher
	now    func() time.Time
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{
		store:  opts.Store,
		hasher: opts.Hasher,
		now:    time.Now,
	}
}

// Register creates a new user account. Duplicate emails fail with a
// Conflict error; the returned view never carries the password hash.
func (s *UserService) Register(ctx context.Context, req user.RegisterRequest) (user.PublicUser, error) {
	if err := req.Validate(); err != nil {
		return user.PublicUser{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return user.PublicUser{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "hash password")
	}

	now := s.now().UTC()
	u := user.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        user.NormalizeEmail(req.Email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, ports.ErrEmailTaken) {
			return user.PublicUser{}, apperrors.Conflict("User already exists")
		}
		return user.PublicUser{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "create user")
	}

	return u.Public(), nil
}

// Login verifies credentials and returns the public view. A missing
// user and a password mismatch produce the same Unauthorized error so
// responses cannot be used to enumerate accounts.
func (s *UserService) Login(ctx context.Context, email, password string) (user.PublicUser, error) {
	u, err := s.store.FindByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return user.PublicUser{}, apperrors.Unauthorized("Invalid email or password")
		}
		return user.PublicUser{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "find user")
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return user.PublicUser{}, apperrors.Unauthorized("Invalid email or password")
	}

	return u.Public(), nil
}

// Profile returns the public view of the user with the given id.
func (s *UserService) Profile(ctx context.Context, id string) (user.PublicUser, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return user.PublicUser{}, apperrors.NotFound("User not found")
		}
		return user.PublicUser{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "find user")
	}
	return u.Public(), nil
}

// UpdateProfile applies a partial update to the user with the given id.
// Empty patch fields keep their stored values. A non-empty password is
// routed through the hasher before persistence; this is the only write
// path that re-hashes, so unrelated profile updates never touch the
// stored hash.
func (s *UserService) UpdateProfile(ctx context.Context, id string, patch user.ProfileUpdate) (user.PublicUser, error) {
	if err := patch.Validate(); err != nil {
		return user.PublicUser{}, err
	}

	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return user.PublicUser{}, apperrors.NotFound("User not found")
		}
		return user.PublicUser{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "find user")
	}

	if patch.Name != "" {
		u.Name = patch.Name
	}
	if patch.Email != "" {
		u.Email = user.NormalizeEmail(patch.Email)
	}
	if patch.Password != "" {
		hash, hashErr := s.hasher.Hash(patch.Password)
		if hashErr != nil {
			return user.PublicUser{}, apperrors.Wrap(hashErr, apperrors.ErrCodeInternal, "hash password")
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, ports.ErrUserNotFound):
			return user.PublicUser{}, apperrors.NotFound("User not found")
		case errors.Is(err, ports.ErrEmailTaken):
			return user.PublicUser{}, apperrors.Conflict("User already exists")
		default:
			return user.PublicUser{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, fmt.Sprintf("update user %s", id))
		}
	}

	return u.Public(), nil
}
