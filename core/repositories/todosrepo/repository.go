// Package todosrepo provides business access to todo records, independent of
// the backing store.
package todosrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jrazmi/todolist/sdk/logger"
)

// ErrEmptyText reports a create or update whose text is empty after trimming.
// The bridge validates request payloads first; this guards callers that reach
// the repository directly.
var ErrEmptyText = errors.New("todo text cannot be empty")

// Storer defines the complete data storage interface for Todo.
type Storer interface {
	Create(ctx context.Context, input CreateTodo) (Todo, error)
	QueryByID(ctx context.Context, todoID string) (Todo, error)
	List(ctx context.Context) ([]Todo, error)
	Update(ctx context.Context, todoID string, updates UpdateTodo) (Todo, error)
	Delete(ctx context.Context, todoID string) error
}

// Repository provides access to todo storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Todo repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Create adds a new todo. Text is trimmed; an empty result is rejected before
// the store is called.
func (r *Repository) Create(ctx context.Context, input CreateTodo) (Todo, error) {
	input.Text = strings.TrimSpace(input.Text)
	if input.Text == "" {
		return Todo{}, ErrEmptyText
	}

	todo, err := r.storer.Create(ctx, input)
	if err != nil {
		return Todo{}, fmt.Errorf("create todo: %w", err)
	}

	r.log.Debug(ctx, "created todo", "todo_id", todo.TodoID)
	return todo, nil
}

// QueryByID returns the todo with the given id.
func (r *Repository) QueryByID(ctx context.Context, todoID string) (Todo, error) {
	todo, err := r.storer.QueryByID(ctx, todoID)
	if err != nil {
		return Todo{}, fmt.Errorf("query todo [%s]: %w", todoID, err)
	}
	return todo, nil
}

// List returns all todos ordered by creation time, most recent first.
func (r *Repository) List(ctx context.Context) ([]Todo, error) {
	todos, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Update applies a partial update to the todo with the given id. Only text
// and completed can change.
func (r *Repository) Update(ctx context.Context, todoID string, updates UpdateTodo) (Todo, error) {
	if updates.Text != nil {
		trimmed := strings.TrimSpace(*updates.Text)
		if trimmed == "" {
			return Todo{}, ErrEmptyText
		}
		updates.Text = &trimmed
	}

	todo, err := r.storer.Update(ctx, todoID, updates)
	if err != nil {
		return Todo{}, fmt.Errorf("update todo [%s]: %w", todoID, err)
	}

	r.log.Debug(ctx, "updated todo", "todo_id", todo.TodoID)
	return todo, nil
}

// Delete removes the todo with the given id. Deleting an id that is already
// gone reports repositories.ErrNotFound; the end state is the same either way.
func (r *Repository) Delete(ctx context.Context, todoID string) error {
	if err := r.storer.Delete(ctx, todoID); err != nil {
		return fmt.Errorf("delete todo [%s]: %w", todoID, err)
	}

	r.log.Debug(ctx, "deleted todo", "todo_id", todoID)
	return nil
}
