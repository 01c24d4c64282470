// Package errs provides types and support related to web error functionality.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrCode represents an error code in the system.
type ErrCode struct {
	value int
}

// Value returns the integer value of the error code.
func (ec ErrCode) Value() int {
	return ec.value
}

// Set of error codes the bridge layer works with.
var (
	OK              = ErrCode{value: 0}
	InvalidArgument = ErrCode{value: 3}
	NotFound        = ErrCode{value: 5}
	Internal        = ErrCode{value: 13}
	Unavailable     = ErrCode{value: 14}

	// InternalOnlyLog marks errors whose detail is logged but replaced with
	// a generic message before reaching the client.
	InternalOnlyLog = ErrCode{value: 100}
)

var httpStatusByCode = map[int]int{
	OK.value:              http.StatusOK,
	InvalidArgument.value: http.StatusBadRequest,
	NotFound.value:        http.StatusNotFound,
	Internal.value:        http.StatusInternalServerError,
	Unavailable.value:     http.StatusServiceUnavailable,
	InternalOnlyLog.value: http.StatusInternalServerError,
}

// Error represents an error in the system.
type Error struct {
	Code     ErrCode      `json:"-"`
	Message  string       `json:"message"`
	Fields   []FieldError `json:"errors,omitempty"`
	FuncName string       `json:"-"`
	FileName string       `json:"-"`
}

// New constructs an error based on an app error.
func New(code ErrCode, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  err.Error(),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Newf constructs an error based on an error message.
func Newf(code ErrCode, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, v...),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// NewFieldErrors constructs a validation error carrying itemized field issues.
func NewFieldErrors(message string, fields []FieldError) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     InvalidArgument,
		Message:  message,
		Fields:   fields,
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Encode implements the web Encoder interface so the error middleware can
// return errors directly as response bodies.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json; charset=utf-8", err
}

// HTTPStatus implements the web httpStatus interface.
func (e *Error) HTTPStatus() int {
	if status, ok := httpStatusByCode[e.Code.Value()]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsError tests the concrete error is of the Error type.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// GetError returns a copy of the Error pointer, or a generic internal error
// when err is not an *Error.
func GetError(err error) *Error {
	var e *Error
	if !errors.As(err, &e) {
		return &Error{Code: Internal, Message: "Internal Server Error"}
	}
	return e
}
