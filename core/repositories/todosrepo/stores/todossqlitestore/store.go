// Package todossqlitestore implements the todosrepo.Storer interface against
// an embedded SQLite database. A single file (or :memory:) backend for
// deployments that want durability without running a database server.
package todossqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jrazmi/todolist/core/repositories"
	"github.com/jrazmi/todolist/core/repositories/todosrepo"
	"github.com/jrazmi/todolist/infrastructure/sqlitedb"
	"github.com/jrazmi/todolist/sdk/logger"
)

// storedTimeLayout is a fixed-width RFC3339 rendering. The fraction keeps its
// trailing zeros so the TEXT column sorts in timestamp order; RFC3339Nano
// trims them, which breaks lexicographic ordering when one fraction is a
// prefix of another.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store provides database access for todos.
type Store struct {
	log *logger.Logger
	db  *sql.DB
}

// NewStore creates a new todo sqlite store and bootstraps its table. The
// embedded backend carries its own schema rather than an external migration
// step.
func NewStore(log *logger.Logger, db *sql.DB) (*Store, error) {
	const schema = `
		CREATE TABLE IF NOT EXISTS todos (
			todo_id    TEXT PRIMARY KEY,
			text       TEXT NOT NULL,
			completed  INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`

	if _, err := db.Exec(schema); err != nil {
		return nil, translate(err)
	}

	return &Store{
		log: log,
		db:  db,
	}, nil
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
			(?, ?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query, todo.TodoID, todo.Text, todo.Completed, todo.CreatedAt.Format(storedTimeLayout)); err != nil {
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
			todo_id = ?`

	return s.scanOne(s.db.QueryRowContext(ctx, query, todoID))
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

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	todos := []todosrepo.Todo{}
	for rows.Next() {
		var todo todosrepo.Todo
		var createdAt string
		if err := rows.Scan(&todo.TodoID, &todo.Text, &todo.Completed, &createdAt); err != nil {
			return nil, translate(err)
		}
		todo.CreatedAt, err = time.Parse(storedTimeLayout, createdAt)
		if err != nil {
			return nil, translate(err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}

	return todos, nil
}

// Update applies the non-nil fields in a single statement so the merge is
// atomic at the database. Only text and completed are touched.
func (s *Store) Update(ctx context.Context, todoID string, updates todosrepo.UpdateTodo) (todosrepo.Todo, error) {
	const query = `
		UPDATE todos SET
			text      = COALESCE(?, text),
			completed = COALESCE(?, completed)
		WHERE
			todo_id = ?
		RETURNING
			todo_id, text, completed, created_at`

	return s.scanOne(s.db.QueryRowContext(ctx, query, updates.Text, updates.Completed, todoID))
}

// Delete removes the todo with the given id, reporting not found when no row
// was removed.
func (s *Store) Delete(ctx context.Context, todoID string) error {
	const query = `
		DELETE FROM
			todos
		WHERE
			todo_id = ?`

	res, err := s.db.ExecContext(ctx, query, todoID)
	if err != nil {
		return translate(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return translate(err)
	}
	if n == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

func (s *Store) scanOne(row *sql.Row) (todosrepo.Todo, error) {
	var todo todosrepo.Todo
	var createdAt string

	if err := row.Scan(&todo.TodoID, &todo.Text, &todo.Completed, &createdAt); err != nil {
		return todosrepo.Todo{}, translate(err)
	}

	var err error
	todo.CreatedAt, err = time.Parse(storedTimeLayout, createdAt)
	if err != nil {
		return todosrepo.Todo{}, translate(err)
	}

	return todo, nil
}

// translate maps driver level errors onto the repository error taxonomy.
func translate(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return repositories.ErrNotFound
	case sqlitedb.IsUnavailable(err):
		return repositories.ErrStorageUnavailable
	default:
		return err
	}
}
