package usersmemstore_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/jrazmi/todolist/core/repositories"
	"github.com/jrazmi/todolist/core/repositories/usersrepo"
	"github.com/jrazmi/todolist/core/repositories/usersrepo/stores/usersmemstore"
	"github.com/jrazmi/todolist/sdk/logger"
)

func newTestStore() *usersmemstore.Store {
	log := logger.NewDefault(logger.WithOutput(io.Discard))
	return usersmemstore.NewStore(log)
}

func TestCreateAndQuery(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	created, err := store.Create(ctx, usersrepo.CreateUser{
		Username:     "alice",
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("creating user: %s", err)
	}
	if created.UserID == "" {
		t.Error("expected a generated id")
	}

	byID, err := store.QueryByID(ctx, created.UserID)
	if err != nil {
		t.Fatalf("querying by id: %s", err)
	}
	if byID != created {
		t.Errorf("got %+v, want %+v", byID, created)
	}

	byName, err := store.QueryByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("querying by username: %s", err)
	}
	if byName.UserID != created.UserID {
		t.Errorf("got user %q, want %q", byName.UserID, created.UserID)
	}
}

func TestCreateRejectsDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	if _, err := store.Create(ctx, usersrepo.CreateUser{Username: "alice", PasswordHash: "x"}); err != nil {
		t.Fatalf("creating user: %s", err)
	}

	_, err := store.Create(ctx, usersrepo.CreateUser{Username: "alice", PasswordHash: "y"})
	if !errors.Is(err, usersrepo.ErrUniqueUsername) {
		t.Fatalf("got %v, want ErrUniqueUsername", err)
	}
}

func TestQueryMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	if _, err := store.QueryByID(ctx, "missing"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("query by id: got %v, want ErrNotFound", err)
	}
	if _, err := store.QueryByUsername(ctx, "nobody"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("query by username: got %v, want ErrNotFound", err)
	}
}
