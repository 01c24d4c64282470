// Package usersrepo provides business access to user accounts. Declared for
// store implementations to build against; no routes are registered for it.
package usersrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrazmi/todolist/sdk/logger"
)

// ErrUniqueUsername reports a create whose username is already taken. The
// users table declares username unique; stores without that constraint
// enforce it themselves.
var ErrUniqueUsername = errors.New("username already exists")

// Storer defines the data storage interface for User.
type Storer interface {
	Create(ctx context.Context, input CreateUser) (User, error)
	QueryByID(ctx context.Context, userID string) (User, error)
	QueryByUsername(ctx context.Context, username string) (User, error)
}

// Repository provides access to user storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new User repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Create adds a new user.
func (r *Repository) Create(ctx context.Context, input CreateUser) (User, error) {
	user, err := r.storer.Create(ctx, input)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// QueryByID returns the user with the given id.
func (r *Repository) QueryByID(ctx context.Context, userID string) (User, error) {
	user, err := r.storer.QueryByID(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("query user [%s]: %w", userID, err)
	}
	return user, nil
}

// QueryByUsername returns the user with the given username.
func (r *Repository) QueryByUsername(ctx context.Context, username string) (User, error) {
	user, err := r.storer.QueryByUsername(ctx, username)
	if err != nil {
		return User{}, fmt.Errorf("query user by username [%s]: %w", username, err)
	}
	return user, nil
}
