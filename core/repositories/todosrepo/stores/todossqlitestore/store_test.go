package todossqlitestore_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jrazmi/todolist/core/repositories"
	"github.com/jrazmi/todolist/core/repositories/todosrepo"
	"github.com/jrazmi/todolist/core/repositories/todosrepo/stores/todossqlitestore"
	"github.com/jrazmi/todolist/infrastructure/sqlitedb"
	"github.com/jrazmi/todolist/sdk/logger"
	"github.com/jrazmi/todolist/sdk/validation"
)

func newTestStore(t *testing.T) (*todossqlitestore.Store, *sql.DB) {
	t.Helper()

	db, err := sqlitedb.Open(sqlitedb.Options{
		Path:        ":memory:",
		BusyTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("opening sqlite: %s", err)
	}
	t.Cleanup(func() { db.Close() })

	log := logger.NewDefault(logger.WithOutput(io.Discard))
	store, err := todossqlitestore.NewStore(log, db)
	if err != nil {
		t.Fatalf("creating store: %s", err)
	}

	return store, db
}

func TestCreateQueryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	created, err := store.Create(ctx, todosrepo.CreateTodo{Text: "buy milk"})
	if err != nil {
		t.Fatalf("creating todo: %s", err)
	}
	if created.TodoID == "" {
		t.Error("expected a generated id")
	}

	got, err := store.QueryByID(ctx, created.TodoID)
	if err != nil {
		t.Fatalf("querying todo: %s", err)
	}
	if got.Text != "buy milk" || got.Completed {
		t.Errorf("got %+v, want text %q and incomplete", got, "buy milk")
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("got created_at %s, want %s", got.CreatedAt, created.CreatedAt)
	}
}

func TestQueryByIDNotFound(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, err := store.QueryByID(ctx, "missing")
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestListOrdering(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	for _, text := range []string{"first", "second", "third"} {
		if _, err := store.Create(ctx, todosrepo.CreateTodo{Text: text}); err != nil {
			t.Fatalf("creating todo %q: %s", text, err)
		}
		// Distinct creation timestamps keep the ordering assertion stable.
		time.Sleep(2 * time.Millisecond)
	}

	todos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("listing todos: %s", err)
	}

	want := []string{"third", "second", "first"}
	if len(todos) != len(want) {
		t.Fatalf("got %d todos, want %d", len(todos), len(want))
	}
	for i, todo := range todos {
		if todo.Text != want[i] {
			t.Errorf("position %d: got %q, want %q", i, todo.Text, want[i])
		}
	}
}

func TestListOrderingUnevenFractions(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)

	// Fractions that trim to different widths (.9 vs .95) sort backwards as
	// text unless the stored rendering is fixed width.
	const layout = "2006-01-02T15:04:05.000000000Z07:00"
	earlier := time.Date(2026, 1, 1, 0, 0, 0, 900_000_000, time.UTC)
	later := time.Date(2026, 1, 1, 0, 0, 0, 950_000_000, time.UTC)

	const insert = `
		INSERT INTO todos
			(todo_id, text, completed, created_at)
		VALUES
			(?, ?, ?, ?)`

	if _, err := db.ExecContext(ctx, insert, "a-earlier", "earlier", false, earlier.Format(layout)); err != nil {
		t.Fatalf("inserting earlier row: %s", err)
	}
	if _, err := db.ExecContext(ctx, insert, "b-later", "later", false, later.Format(layout)); err != nil {
		t.Fatalf("inserting later row: %s", err)
	}

	todos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("listing todos: %s", err)
	}
	if len(todos) != 2 {
		t.Fatalf("got %d todos, want 2", len(todos))
	}
	if todos[0].Text != "later" || todos[1].Text != "earlier" {
		t.Fatalf("ordering violated: got [%s %s], want [later earlier]", todos[0].Text, todos[1].Text)
	}
}

func TestCreateStoresFixedWidthTimestamp(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)

	created, err := store.Create(ctx, todosrepo.CreateTodo{Text: "clocked"})
	if err != nil {
		t.Fatalf("creating todo: %s", err)
	}

	var stored string
	if err := db.QueryRowContext(ctx, "SELECT created_at FROM todos WHERE todo_id = ?", created.TodoID).Scan(&stored); err != nil {
		t.Fatalf("reading raw created_at: %s", err)
	}

	dot := strings.IndexByte(stored, '.')
	z := strings.IndexByte(stored, 'Z')
	if dot < 0 || z < 0 || z-dot-1 != 9 {
		t.Fatalf("stored created_at %q does not carry a fixed 9 digit fraction", stored)
	}
}

func TestUpdatePartial(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	created, err := store.Create(ctx, todosrepo.CreateTodo{Text: "write report"})
	if err != nil {
		t.Fatalf("creating todo: %s", err)
	}

	updated, err := store.Update(ctx, created.TodoID, todosrepo.UpdateTodo{
		Completed: validation.BoolPtr(true),
	})
	if err != nil {
		t.Fatalf("updating todo: %s", err)
	}
	if !updated.Completed {
		t.Error("expected todo to be completed")
	}
	if updated.Text != "write report" {
		t.Errorf("text changed to %q", updated.Text)
	}

	updated, err = store.Update(ctx, created.TodoID, todosrepo.UpdateTodo{
		Text: validation.StringPtr("file report"),
	})
	if err != nil {
		t.Fatalf("updating todo: %s", err)
	}
	if updated.Text != "file report" {
		t.Errorf("got text %q, want %q", updated.Text, "file report")
	}
	if !updated.Completed {
		t.Error("completed flag was reset")
	}
}

func TestUpdateMissing(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, err := store.Update(ctx, "missing", todosrepo.UpdateTodo{
		Completed: validation.BoolPtr(true),
	})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	created, err := store.Create(ctx, todosrepo.CreateTodo{Text: "ephemeral"})
	if err != nil {
		t.Fatalf("creating todo: %s", err)
	}

	if err := store.Delete(ctx, created.TodoID); err != nil {
		t.Fatalf("deleting todo: %s", err)
	}
	if err := store.Delete(ctx, created.TodoID); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("got %v on second delete, want ErrNotFound", err)
	}
}

func TestStatusCheck(t *testing.T) {
	ctx := context.Background()
	_, db := newTestStore(t)

	if err := sqlitedb.StatusCheck(ctx, db); err != nil {
		t.Fatalf("status check: %s", err)
	}
}
