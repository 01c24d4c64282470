package todosmemstore_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/jrazmi/todolist/core/repositories"
	"github.com/jrazmi/todolist/core/repositories/todosrepo"
	"github.com/jrazmi/todolist/core/repositories/todosrepo/stores/todosmemstore"
	"github.com/jrazmi/todolist/sdk/logger"
	"github.com/jrazmi/todolist/sdk/validation"
)

func newTestStore() *todosmemstore.Store {
	log := logger.NewDefault(logger.WithOutput(io.Discard))
	return todosmemstore.NewStore(log)
}

func TestCreateAndQuery(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	created, err := store.Create(ctx, todosrepo.CreateTodo{Text: "buy milk"})
	if err != nil {
		t.Fatalf("creating todo: %s", err)
	}

	if created.TodoID == "" {
		t.Error("expected a generated id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}
	if created.Completed {
		t.Error("expected new todo to be incomplete")
	}

	got, err := store.QueryByID(ctx, created.TodoID)
	if err != nil {
		t.Fatalf("querying todo: %s", err)
	}
	if got != created {
		t.Errorf("got %+v, want %+v", got, created)
	}
}

func TestQueryByIDNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	_, err := store.QueryByID(ctx, "missing")
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestListOrdering(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		if _, err := store.Create(ctx, todosrepo.CreateTodo{Text: text}); err != nil {
			t.Fatalf("creating todo %q: %s", text, err)
		}
	}

	todos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("listing todos: %s", err)
	}
	if len(todos) != 3 {
		t.Fatalf("got %d todos, want 3", len(todos))
	}

	// Most recently created first.
	want := []string{"third", "second", "first"}
	for i, todo := range todos {
		if todo.Text != want[i] {
			t.Errorf("position %d: got %q, want %q", i, todo.Text, want[i])
		}
	}
}

func TestListEmpty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	todos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("listing todos: %s", err)
	}
	if todos == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(todos) != 0 {
		t.Fatalf("got %d todos, want 0", len(todos))
	}
}

func TestUpdatePartial(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	created, err := store.Create(ctx, todosrepo.CreateTodo{Text: "write report"})
	if err != nil {
		t.Fatalf("creating todo: %s", err)
	}

	// Completing the todo must not touch the text.
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

	// Changing the text must not reset the completed flag.
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

	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("creation time changed on update")
	}
}

func TestConcurrentPartialUpdates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	created, err := store.Create(ctx, todosrepo.CreateTodo{Text: "draft"})
	if err != nil {
		t.Fatalf("creating todo: %s", err)
	}

	// Racing single-field updates against the same record must not mix the
	// field merging; both writes have to land.
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := store.Update(ctx, created.TodoID, todosrepo.UpdateTodo{
				Text: validation.StringPtr("revised"),
			}); err != nil {
				t.Errorf("updating text: %s", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := store.Update(ctx, created.TodoID, todosrepo.UpdateTodo{
				Completed: validation.BoolPtr(true),
			}); err != nil {
				t.Errorf("updating completed: %s", err)
			}
		}()
	}
	wg.Wait()

	got, err := store.QueryByID(ctx, created.TodoID)
	if err != nil {
		t.Fatalf("querying todo: %s", err)
	}
	if got.Text != "revised" {
		t.Errorf("got text %q, want %q", got.Text, "revised")
	}
	if !got.Completed {
		t.Error("completed update was lost")
	}
}

func TestUpdateMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	_, err := store.Update(ctx, "missing", todosrepo.UpdateTodo{
		Completed: validation.BoolPtr(true),
	})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	created, err := store.Create(ctx, todosrepo.CreateTodo{Text: "ephemeral"})
	if err != nil {
		t.Fatalf("creating todo: %s", err)
	}

	if err := store.Delete(ctx, created.TodoID); err != nil {
		t.Fatalf("deleting todo: %s", err)
	}

	if _, err := store.QueryByID(ctx, created.TodoID); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("got %v after delete, want ErrNotFound", err)
	}

	// Deleting again reports not found but leaves the store unchanged.
	if err := store.Delete(ctx, created.TodoID); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("got %v on second delete, want ErrNotFound", err)
	}
}
