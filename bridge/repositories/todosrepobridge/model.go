package todosrepobridge

import (
	"encoding/json"
	"strings"

	"github.com/jrazmi/todolist/bridge/scaffolding/errs"
)

// Todo is the wire representation of a todo item.
type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

// CreateTodoInput is the request model for creating a todo.
type CreateTodoInput struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Decode implements the web Decoder interface. The payload is checked
// against the create schema before it is bound, so unknown fields and type
// mismatches are rejected without touching the store.
func (c *CreateTodoInput) Decode(data []byte) error {
	if err := validateAgainstSchema(createSchema, data); err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

// Validate catches what the schema cannot: text that is whitespace only.
func (c CreateTodoInput) Validate() error {
	var fields errs.FieldErrors
	if strings.TrimSpace(c.Text) == "" {
		fields.Add("text", errEmptyText)
	}
	return fields.ToError()
}

// UpdateTodoInput is the request model for a partial update. Nil fields are
// left unchanged.
type UpdateTodoInput struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// Decode implements the web Decoder interface. Only whitelisted fields pass
// the update schema, guarding against field injection from the request body.
func (u *UpdateTodoInput) Decode(data []byte) error {
	if err := validateAgainstSchema(updateSchema, data); err != nil {
		return err
	}
	return json.Unmarshal(data, u)
}

// Validate catches what the schema cannot: text that is whitespace only.
func (u UpdateTodoInput) Validate() error {
	var fields errs.FieldErrors
	if u.Text != nil && strings.TrimSpace(*u.Text) == "" {
		fields.Add("text", errEmptyText)
	}
	return fields.ToError()
}
