package todosrepobridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jrazmi/todolist/bridge/scaffolding/errs"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var errEmptyText = errors.New("text cannot be empty")

const createSchemaDoc = `{
	"type": "object",
	"required": ["text"],
	"additionalProperties": false,
	"properties": {
		"text": {"type": "string", "minLength": 1},
		"completed": {"type": "boolean"}
	}
}`

const updateSchemaDoc = `{
	"type": "object",
	"minProperties": 1,
	"additionalProperties": false,
	"properties": {
		"text": {"type": "string", "minLength": 1},
		"completed": {"type": "boolean"}
	}
}`

var (
	createSchema = mustCompile("create.json", createSchemaDoc)
	updateSchema = mustCompile("update.json", updateSchemaDoc)
)

func mustCompile(name, doc string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(doc)); err != nil {
		panic(err)
	}
	return compiler.MustCompile(name)
}

// validateAgainstSchema checks the raw payload against the schema and maps
// schema violations to itemized field errors.
func validateAgainstSchema(schema *jsonschema.Schema, data []byte) error {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return errs.Newf(errs.InvalidArgument, "malformed json: %s", err)
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return errs.Newf(errs.InvalidArgument, "invalid payload: %s", err)
		}

		var fields errs.FieldErrors
		collectSchemaFieldErrors(ve, &fields)
		if fieldsErr := fields.ToError(); fieldsErr != nil {
			return fieldsErr
		}
		return errs.Newf(errs.InvalidArgument, "invalid payload: %s", ve.Message)
	}

	return nil
}

// collectSchemaFieldErrors walks the validation error tree and records the
// leaf causes, keyed by the JSON pointer of the offending value.
func collectSchemaFieldErrors(ve *jsonschema.ValidationError, fields *errs.FieldErrors) {
	if ve == nil {
		return
	}

	if len(ve.Causes) == 0 {
		fields.Add(fieldFromLocation(ve.InstanceLocation, ve.Message), errors.New(ve.Message))
		return
	}

	for _, cause := range ve.Causes {
		collectSchemaFieldErrors(cause, fields)
	}
}

// fieldFromLocation derives the field name from the instance location. Errors
// at the document root (missing properties, unknown properties) name the
// field mentioned in the message when there is one.
func fieldFromLocation(location, message string) string {
	if location != "" {
		return strings.TrimPrefix(location, "/")
	}

	if idx := strings.Index(message, "'"); idx >= 0 {
		rest := message[idx+1:]
		if end := strings.Index(rest, "'"); end >= 0 {
			return rest[:end]
		}
	}

	return "body"
}
