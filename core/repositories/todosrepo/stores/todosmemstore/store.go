// Package todosmemstore implements the todosrepo.Storer interface with an in
// process map. Used for tests and single node deployments with no durability
// requirements.
package todosmemstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrazmi/todolist/core/repositories"
	"github.com/jrazmi/todolist/core/repositories/todosrepo"
	"github.com/jrazmi/todolist/sdk/logger"
)

// Store holds the todo collection in memory. All mutating operations take the
// write lock so interleaved partial updates to the same record cannot mix
// field merging.
type Store struct {
	log   *logger.Logger
	mu    sync.RWMutex
	todos map[string]todosrepo.Todo
}

// NewStore creates a new in-memory todo store.
func NewStore(log *logger.Logger) *Store {
	return &Store{
		log:   log,
		todos: make(map[string]todosrepo.Todo),
	}
}

// Create allocates an id and creation time and stores the todo.
func (s *Store) Create(ctx context.Context, input todosrepo.CreateTodo) (todosrepo.Todo, error) {
	todo := todosrepo.Todo{
		TodoID:    uuid.NewString(),
		Text:      input.Text,
		Completed: input.Completed,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.todos[todo.TodoID] = todo

	return todo, nil
}

// QueryByID returns the todo with the given id.
func (s *Store) QueryByID(ctx context.Context, todoID string) (todosrepo.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todo, ok := s.todos[todoID]
	if !ok {
		return todosrepo.Todo{}, repositories.ErrNotFound
	}

	return todo, nil
}

// List returns all todos ordered by creation time descending. Ties are broken
// by id so the ordering is deterministic.
func (s *Store) List(ctx context.Context) ([]todosrepo.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]todosrepo.Todo, 0, len(s.todos))
	for _, todo := range s.todos {
		todos = append(todos, todo)
	}

	sort.Slice(todos, func(i, j int) bool {
		if !todos[i].CreatedAt.Equal(todos[j].CreatedAt) {
			return todos[i].CreatedAt.After(todos[j].CreatedAt)
		}
		return todos[i].TodoID > todos[j].TodoID
	})

	return todos, nil
}

// Update merges the non-nil fields onto the existing record under the write
// lock. There is no upsert; a missing id reports not found.
func (s *Store) Update(ctx context.Context, todoID string, updates todosrepo.UpdateTodo) (todosrepo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[todoID]
	if !ok {
		return todosrepo.Todo{}, repositories.ErrNotFound
	}

	if updates.Text != nil {
		todo.Text = *updates.Text
	}
	if updates.Completed != nil {
		todo.Completed = *updates.Completed
	}

	s.todos[todoID] = todo

	return todo, nil
}

// Delete removes the todo with the given id, reporting not found when nothing
// was removed.
func (s *Store) Delete(ctx context.Context, todoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.todos[todoID]; !ok {
		return repositories.ErrNotFound
	}

	delete(s.todos, todoID)

	return nil
}
