package web

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/gin-gonic/gin"
)

// Context carries the gin context together with the request scoped
// context.Context that repositories receive. Middleware may replace Ctx.
type Context struct {
	*gin.Context
	Ctx context.Context

	queryErrs []FieldError
	paramErrs []FieldError
}

// Respond converts a Go value to JSON and sends it to the client.
func (c *Context) Respond(data any, status int) error {
	if status == http.StatusNoContent {
		c.Status(status)
		return nil
	}

	c.JSON(status, data)

	return nil
}

// RespondError sends an error response back to the client. Errors that are
// not *Error are treated as unhandled and logged.
func (c *Context) RespondError(err error) error {
	var webErr *Error
	if errors.As(err, &webErr) {
		if webErr.Status >= http.StatusInternalServerError {
			log.Printf("web: %s %s: %v", c.Request.Method, c.Request.URL.Path, webErr.Err)
		}

		body := gin.H{
			"message": webErr.Err.Error(),
			"status":  false,
		}
		if len(webErr.Fields) > 0 {
			body["fields"] = webErr.Fields
		}

		c.AbortWithStatusJSON(webErr.Status, body)
		return nil
	}

	log.Printf("web: %s %s: unhandled error: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"message": http.StatusText(http.StatusInternalServerError),
		"status":  false,
	})

	return nil
}

// RespondFile writes raw bytes as an attachment.
func (c *Context) RespondFile(data []byte, contentType, filename string) error {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)

	return nil
}

// BindFunc decodes the request body into data and checks that the listed
// struct fields are set.
func (c *Context) BindFunc(data any, requiredFields ...string) error {
	if err := c.ShouldBind(data); err != nil && !errors.Is(err, io.EOF) {
		return &Error{
			Err:    errors.New("invalid request body"),
			Status: http.StatusBadRequest,
			Fields: []FieldError{{Field: "body", Error: err.Error()}},
		}
	}

	if fields := RequiredFields(data, requiredFields...); len(fields) > 0 {
		return &Error{
			Err:    errors.New("validation failed"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// GetQueryFunc returns a pointer to the parsed query value, or nil when the
// key is absent. Parse failures are collected and reported by ValidQuery.
func (c *Context) GetQueryFunc(kind reflect.Kind, key string) any {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil
	}

	switch kind {
	case reflect.String:
		return &value
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, FieldError{Field: key, Error: "must be an integer"})
			return nil
		}
		return &v
	case reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			c.queryErrs = append(c.queryErrs, FieldError{Field: key, Error: "must be a number"})
			return nil
		}
		return &v
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, FieldError{Field: key, Error: "must be a boolean"})
			return nil
		}
		return &v
	}

	c.queryErrs = append(c.queryErrs, FieldError{Field: key, Error: "unsupported type"})
	return nil
}

// GetQueryTime accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func (c *Context) GetQueryTime(key string) *time.Time {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil
	}

	t, err := ParseTime(value)
	if err != nil {
		c.queryErrs = append(c.queryErrs, FieldError{Field: key, Error: "must be a date"})
		return nil
	}

	return &t
}

// GetQueryUntil reads the end of a range as an exclusive bound. A plain
// YYYY-MM-DD date becomes midnight of the following day so the whole day is
// covered; a timestamp is used as is.
func (c *Context) GetQueryUntil(key string) *time.Time {
	t := c.GetQueryTime(key)
	if t == nil {
		return nil
	}

	if _, err := time.Parse(time.RFC3339, strings.TrimSpace(c.Query(key))); err != nil {
		next := time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location())
		return &next
	}

	return t
}

// ValidQuery reports the errors collected by GetQueryFunc and GetQueryTime.
func (c *Context) ValidQuery() error {
	if len(c.queryErrs) == 0 {
		return nil
	}

	return &Error{
		Err:    errors.New("invalid query parameters"),
		Status: http.StatusBadRequest,
		Fields: c.queryErrs,
	}
}

// GetParam returns the path parameter as the requested kind. Only string
// and int are supported.
func (c *Context) GetParam(kind reflect.Kind, key string) any {
	value := strings.TrimSpace(c.Param(key))

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrs = append(c.paramErrs, FieldError{Field: key, Error: "must be an integer"})
		}
		return v
	default:
		if value == "" {
			c.paramErrs = append(c.paramErrs, FieldError{Field: key, Error: "required"})
		}
		return value
	}
}

// ValidParam reports the errors collected by GetParam.
func (c *Context) ValidParam() error {
	if len(c.paramErrs) == 0 {
		return nil
	}

	return &Error{
		Err:    errors.New("invalid path parameters"),
		Status: http.StatusBadRequest,
		Fields: c.paramErrs,
	}
}

// ParseTime parses an RFC 3339 timestamp or a full-date.
func ParseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	d, err := date.ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}

	return d.Time, nil
}
