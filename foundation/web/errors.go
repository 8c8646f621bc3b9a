package web

import (
	"reflect"
	"strings"
)

// FieldError is used to indicate an error with a specific request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Error is used to pass an error during the request through the
// application with web specific context.
type Error struct {
	Err    error
	Status int
	Fields []FieldError
}

// NewRequestError wraps a provided error with an HTTP status code. This
// function should be used when handlers encounter expected errors.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// RequiredFields reports the listed struct fields of v that hold their zero
// value. v must be a struct or a pointer to one.
func RequiredFields(v any, fields ...string) []FieldError {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil
	}

	var errs []FieldError
	for _, name := range fields {
		f := rv.FieldByName(name)
		if !f.IsValid() {
			continue
		}
		if f.IsZero() || (f.Kind() == reflect.Pointer && f.Elem().Kind() == reflect.String && strings.TrimSpace(f.Elem().String()) == "") ||
			(f.Kind() == reflect.String && strings.TrimSpace(f.String()) == "") {
			errs = append(errs, FieldError{Field: jsonName(rv.Type(), name), Error: "required"})
		}
	}

	return errs
}

func jsonName(t reflect.Type, field string) string {
	sf, ok := t.FieldByName(field)
	if !ok {
		return field
	}

	tag := strings.Split(sf.Tag.Get("json"), ",")[0]
	if tag == "" || tag == "-" {
		return field
	}

	return tag
}
