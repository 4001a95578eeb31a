package redisstore

// Package redisstore implements the UserStore port on Redis. Users are
// stored as JSON documents keyed by id, with a separate email index key
// claimed via SETNX to enforce uniqueness.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/proseware/auth-api/internal/domain/user"
	"github.com/proseware/auth-api/internal/ports"
)

const (
	userKeyPrefix  = "user:"
	emailKeyPrefix = "user:email:"
)

var _ ports.UserStore = (*UserStore)(nil)

// UserStore provides user CRUD on Redis.
type UserStore struct {
	client redis.UniversalClient
}

// NewUserStore creates a new Redis-backed user store.
func NewUserStore(client redis.UniversalClient) *UserStore {
	return &UserStore{client: client}
}

func userKey(id string) string     { return userKeyPrefix + id }
func emailKey(email string) string { return emailKeyPrefix + email }

// Create inserts a new user record. The email index key is claimed
// first; losing the claim means the email is already registered.
func (s *UserStore) Create(ctx context.Context, u user.User) error {
	if u.ID == "" {
		return errors.New("user ID cannot be empty")
	}

	claimed, err := s.client.SetNX(ctx, emailKey(u.Email), u.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("claim email: %w", err)
	}
	if !claimed {
		return ports.ErrEmailTaken
	}

	if err := s.writeDoc(ctx, u); err != nil {
		// Roll back the email claim so a failed create can be retried.
		s.client.Del(ctx, emailKey(u.Email))
		return err
	}
	return nil
}

// FindByID returns the user with the given id.
func (s *UserStore) FindByID(ctx context.Context, id string) (user.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return user.User{}, ports.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("redis get: %w", err)
	}

	var u user.User
	if unmarshalErr := json.Unmarshal([]byte(data), &u); unmarshalErr != nil {
		return user.User{}, fmt.Errorf("unmarshal user: %w", unmarshalErr)
	}
	return u, nil
}

// FindByEmail resolves the email index and loads the document.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (user.User, error) {
	id, err := s.client.Get(ctx, emailKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return user.User{}, ports.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("redis get: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update overwrites the stored record for u.ID, moving the email index
// when the email changed.
func (s *UserStore) Update(ctx context.Context, u user.User) error {
	prev, err := s.FindByID(ctx, u.ID)
	if err != nil {
		return err
	}

	if prev.Email != u.Email {
		claimed, claimErr := s.client.SetNX(ctx, emailKey(u.Email), u.ID, 0).Result()
		if claimErr != nil {
			return fmt.Errorf("claim email: %w", claimErr)
		}
		if !claimed {
			return ports.ErrEmailTaken
		}
	}

	if err := s.writeDoc(ctx, u); err != nil {
		if prev.Email != u.Email {
			s.client.Del(ctx, emailKey(u.Email))
		}
		return err
	}

	if prev.Email != u.Email {
		s.client.Del(ctx, emailKey(prev.Email))
	}
	return nil
}

func (s *UserStore) writeDoc(ctx context.Context, u user.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if setErr := s.client.Set(ctx, userKey(u.ID), data, 0).Err(); setErr != nil {
		return fmt.Errorf("redis set: %w", setErr)
	}
	return nil
}
