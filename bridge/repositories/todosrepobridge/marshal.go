package todosrepobridge

import (
	"github.com/jrazmi/todolist/core/repositories/todosrepo"
	"github.com/jrazmi/todolist/sdk/validation"
)

// MarshalToBridge converts a core model to the wire model.
func MarshalToBridge(todo todosrepo.Todo) Todo {
	return Todo{
		ID:        todo.TodoID,
		Text:      todo.Text,
		Completed: todo.Completed,
		CreatedAt: validation.FormatTimeToString(todo.CreatedAt),
	}
}

// MarshalListToBridge converts a list of core models to wire models. An empty
// list stays an empty array on the wire, never null.
func MarshalListToBridge(todos []todosrepo.Todo) []Todo {
	bridgeTodos := make([]Todo, len(todos))
	for i, todo := range todos {
		bridgeTodos[i] = MarshalToBridge(todo)
	}
	return bridgeTodos
}

// MarshalCreateToRepository converts bridge create input to repository input.
func MarshalCreateToRepository(input CreateTodoInput) todosrepo.CreateTodo {
	return todosrepo.CreateTodo{
		Text:      input.Text,
		Completed: input.Completed,
	}
}

// MarshalUpdateToRepository converts bridge update input to repository input.
// Only the whitelisted fields cross the boundary.
func MarshalUpdateToRepository(input UpdateTodoInput) todosrepo.UpdateTodo {
	return todosrepo.UpdateTodo{
		Text:      input.Text,
		Completed: input.Completed,
	}
}
