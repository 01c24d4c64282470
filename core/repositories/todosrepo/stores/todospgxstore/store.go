// Package todospgxstore implements the todosrepo.Storer interface against
// PostgreSQL using pgx.
package todospgxstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/todolist/core/repositories"
	"github.com/jrazmi/todolist/core/repositories/todosrepo"
	"github.com/jrazmi/todolist/infrastructure/postgresdb"
	"github.com/jrazmi/todolist/sdk/logger"
)

// Store provides database access for todos.
type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

// NewStore creates a new todo pgx store.
func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

// Create inserts a new todo. The store owns id and creation time.
func (s *Store) Create(ctx context.Context, input todosrepo.CreateTodo) (todosrepo.Todo, error) {
	todo := todosrepo.Todo{
		TodoID:    uuid.NewString(),
		Text:      input.Text,
		Completed: input.Completed,
		CreatedAt: time.Now().UTC(),
	}

	const query = `
		INSERT INTO todos
			(todo_id, text, completed, created_at)
		VALUES
			($1, $2, $3, $4)`

	if _, err := s.pool.Exec(ctx, query, todo.TodoID, todo.Text, todo.Completed, todo.CreatedAt); err != nil {
		return todosrepo.Todo{}, translate(err)
	}

	return todo, nil
}

// QueryByID returns the todo with the given id.
func (s *Store) QueryByID(ctx context.Context, todoID string) (todosrepo.Todo, error) {
	const query = `
		SELECT
			todo_id, text, completed, created_at
		FROM
			todos
		WHERE
			todo_id = $1`

	rows, err := s.pool.Query(ctx, query, todoID)
	if err != nil {
		return todosrepo.Todo{}, translate(err)
	}

	todo, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[todosrepo.Todo])
	if err != nil {
		return todosrepo.Todo{}, translate(err)
	}

	return todo, nil
}

// List returns all todos ordered by creation time descending, ties broken by
// id for deterministic ordering.
func (s *Store) List(ctx context.Context) ([]todosrepo.Todo, error) {
	const query = `
		SELECT
			todo_id, text, completed, created_at
		FROM
			todos
		ORDER BY
			created_at DESC, todo_id DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, translate(err)
	}

	todos, err := pgx.CollectRows(rows, pgx.RowToStructByName[todosrepo.Todo])
	if err != nil {
		return nil, translate(err)
	}

	if todos == nil {
		todos = []todosrepo.Todo{}
	}

	return todos, nil
}

// Update applies the non-nil fields in a single statement so the merge is
// atomic at the database. Only text and completed are touched.
func (s *Store) Update(ctx context.Context, todoID string, updates todosrepo.UpdateTodo) (todosrepo.Todo, error) {
	const query = `
		UPDATE todos SET
			text      = COALESCE($2, text),
			completed = COALESCE($3, completed)
		WHERE
			todo_id = $1
		RETURNING
			todo_id, text, completed, created_at`

	rows, err := s.pool.Query(ctx, query, todoID, updates.Text, updates.Completed)
	if err != nil {
		return todosrepo.Todo{}, translate(err)
	}

	todo, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[todosrepo.Todo])
	if err != nil {
		return todosrepo.Todo{}, translate(err)
	}

	return todo, nil
}

// Delete removes the todo with the given id, reporting not found when no row
// was removed.
func (s *Store) Delete(ctx context.Context, todoID string) error {
	const query = `
		DELETE FROM
			todos
		WHERE
			todo_id = $1`

	tag, err := s.pool.Exec(ctx, query, todoID)
	if err != nil {
		return translate(err)
	}

	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// translate maps driver level errors onto the repository error taxonomy.
func translate(err error) error {
	err = postgresdb.HandlePgError(err)

	switch {
	case errors.Is(err, postgresdb.ErrDBNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, postgresdb.ErrDBUnavailable):
		return repositories.ErrStorageUnavailable
	default:
		return err
	}
}
