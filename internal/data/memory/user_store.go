package memory

// Package memory provides an in-process UserStore for development mode
// and tests. It enforces the same email-uniqueness contract as the
// persistent stores.

import (
	"context"
	"sync"

	"github.com/proseware/auth-api/internal/domain/user"
	"github.com/proseware/auth-api/internal/ports"
)

var _ ports.UserStore = (*UserStore)(nil)

// UserStore keeps user records in memory, keyed by id with an email
// index. Safe for concurrent use.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]user.User
	byEmail map[string]string // email -> id
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]user.User),
		byEmail: make(map[string]string),
	}
}

func (s *UserStore) Create(_ context.Context, u user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[u.Email]; exists {
		return ports.ErrEmailTaken
	}
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return user.User{}, ports.ErrUserNotFound
	}
	return u, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return user.User{}, ports.ErrUserNotFound
	}
	return s.byID[id], nil
}

func (s *UserStore) Update(_ context.Context, u user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.byID[u.ID]
	if !ok {
		return ports.ErrUserNotFound
	}
	if owner, exists := s.byEmail[u.Email]; exists && owner != u.ID {
		return ports.ErrEmailTaken
	}

	if prev.Email != u.Email {
		delete(s.byEmail, prev.Email)
		s.byEmail[u.Email] = u.ID
	}
	s.byID[u.ID] = u
	return nil
}

// Len reports the number of stored users. Test helper.
func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
