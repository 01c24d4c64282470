package errs

// FieldError is used to indicate an error with a specific request field.
type FieldError struct {
	Field string `json:"field"`
	Err   string `json:"error"`
}

// FieldErrors collects field errors while a request model is validated.
type FieldErrors []FieldError

// Add appends a field error to the collection.
func (fe *FieldErrors) Add(field string, err error) {
	*fe = append(*fe, FieldError{
		Field: field,
		Err:   err.Error(),
	})
}

// ToError converts the collection into an *Error, or nil when empty.
func (fe FieldErrors) ToError() error {
	if len(fe) == 0 {
		return nil
	}
	return NewFieldErrors("validation failed", fe)
}
