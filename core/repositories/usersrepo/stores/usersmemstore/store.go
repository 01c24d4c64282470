// Package usersmemstore implements the usersrepo.Storer interface with an in
// process map.
package usersmemstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jrazmi/todolist/core/repositories"
	"github.com/jrazmi/todolist/core/repositories/usersrepo"
	"github.com/jrazmi/todolist/sdk/logger"
)

// Store holds the user collection in memory.
type Store struct {
	log   *logger.Logger
	mu    sync.RWMutex
	users map[string]usersrepo.User
}

// NewStore creates a new in-memory user store.
func NewStore(log *logger.Logger) *Store {
	return &Store{
		log:   log,
		users: make(map[string]usersrepo.User),
	}
}

// Create allocates an id and stores the user. Usernames are unique, matching
// the constraint the relational schema declares.
func (s *Store) Create(ctx context.Context, input usersrepo.CreateUser) (usersrepo.User, error) {
	user := usersrepo.User{
		UserID:       uuid.NewString(),
		Username:     input.Username,
		PasswordHash: input.PasswordHash,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return usersrepo.User{}, usersrepo.ErrUniqueUsername
		}
	}

	s.users[user.UserID] = user

	return user, nil
}

// QueryByID returns the user with the given id.
func (s *Store) QueryByID(ctx context.Context, userID string) (usersrepo.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return usersrepo.User{}, repositories.ErrNotFound
	}

	return user, nil
}

// QueryByUsername returns the user with the given username.
func (s *Store) QueryByUsername(ctx context.Context, username string) (usersrepo.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}

	return usersrepo.User{}, repositories.ErrNotFound
}
