// Package todosrepobridge contains the HTTP handlers for the todo entity. It
// validates request payloads against the embedded JSON schemas before any
// repository call and translates repository errors into HTTP status codes.
package todosrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrazmi/todolist/bridge/scaffolding/errs"
	"github.com/jrazmi/todolist/core/repositories"
	"github.com/jrazmi/todolist/core/repositories/todosrepo"
	"github.com/jrazmi/todolist/infrastructure/web"
)

type bridge struct {
	todosRepository *todosrepo.Repository
}

func newBridge(todosRepository *todosrepo.Repository) *bridge {
	return &bridge{
		todosRepository: todosRepository,
	}
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	todos, err := b.todosRepository.List(ctx)
	if err != nil {
		return translate(err)
	}

	return web.NewJSONResponse(MarshalListToBridge(todos))
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	todoID := web.Param(r, "todo_id")

	todo, err := b.todosRepository.QueryByID(ctx, todoID)
	if err != nil {
		return translate(err)
	}

	return web.NewJSONResponse(MarshalToBridge(todo))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input CreateTodoInput
	if err := web.Decode(r, &input); err != nil {
		return decodeError(err)
	}

	todo, err := b.todosRepository.Create(ctx, MarshalCreateToRepository(input))
	if err != nil {
		return translate(err)
	}

	return web.NewJSONResponseWithStatus(MarshalToBridge(todo), http.StatusCreated)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	todoID := web.Param(r, "todo_id")

	var input UpdateTodoInput
	if err := web.Decode(r, &input); err != nil {
		return decodeError(err)
	}

	todo, err := b.todosRepository.Update(ctx, todoID, MarshalUpdateToRepository(input))
	if err != nil {
		return translate(err)
	}

	return web.NewJSONResponse(MarshalToBridge(todo))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	todoID := web.Param(r, "todo_id")

	if err := b.todosRepository.Delete(ctx, todoID); err != nil {
		return translate(err)
	}

	return web.NewJSONResponseWithStatus(struct{}{}, http.StatusNoContent)
}

// decodeError maps request decoding failures to a 400. Schema violations
// already carry their field errors; anything else (empty body, read failure)
// becomes a plain invalid-argument error.
func decodeError(err error) *errs.Error {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return errs.Newf(errs.InvalidArgument, "decode: %s", err)
}

// translate maps errors coming out of the repository into bridge errors. The
// repository is never reached on validation failures, so anything else that
// is not absence or a transient backend failure stays internal.
func translate(err error) *errs.Error {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return errs.Newf(errs.NotFound, "todo not found")

	case errors.Is(err, repositories.ErrStorageUnavailable):
		return errs.Newf(errs.Unavailable, "storage unavailable, retry later")

	case errors.Is(err, todosrepo.ErrEmptyText):
		return errs.NewFieldErrors("validation failed", []errs.FieldError{
			{Field: "text", Err: todosrepo.ErrEmptyText.Error()},
		})

	default:
		return errs.Newf(errs.InternalOnlyLog, "todosrepobridge: %s", err)
	}
}
