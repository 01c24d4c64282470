package todosrepo

import "time"

// Todo is the persisted todo item.
type Todo struct {
	TodoID    string    `db:"todo_id"`
	Text      string    `db:"text"`
	Completed bool      `db:"completed"`
	CreatedAt time.Time `db:"created_at"`
}

// CreateTodo contains the fields a caller provides when creating a todo. The
// store owns id and creation time.
type CreateTodo struct {
	Text      string
	Completed bool
}

// UpdateTodo contains the fields a partial update may change. Nil fields are
// left untouched; id and creation time can never change.
type UpdateTodo struct {
	Text      *string
	Completed *bool
}
