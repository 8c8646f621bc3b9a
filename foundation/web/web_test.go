package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type createRequest struct {
	Name    string     `json:"name"`
	Address *string    `json:"address"`
	Start   time.Time  `json:"startDate"`
	Rate    float64    `json:"hourlyRate"`
	Tags    []string   `json:"tags"`
	End     *time.Time `json:"endDate"`
}

func TestRequiredFields(t *testing.T) {
	blank := "  "
	addr := "Main St"

	tests := []struct {
		name string
		in   createRequest
		want []string
	}{
		{"all set", createRequest{Name: "x", Address: &addr, Start: time.Now(), Rate: 1, Tags: []string{"a"}}, nil},
		{"zero values", createRequest{}, []string{"name", "address", "startDate", "hourlyRate", "tags"}},
		{"blank strings", createRequest{Name: " ", Address: &blank, Start: time.Now(), Rate: 1, Tags: []string{"a"}}, []string{"name", "address"}},
	}

	for _, tt := range tests {
		var got []string
		for _, f := range RequiredFields(&tt.in, "Name", "Address", "Start", "Rate", "Tags", "Missing") {
			got = append(got, f.Field)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := NewApp()
	app.Get("/known", func(c *Context) error {
		return c.RespondError(&Error{
			Err:    errors.New("validation failed"),
			Status: http.StatusBadRequest,
			Fields: []FieldError{{Field: "name", Error: "required"}},
		})
	})
	app.Get("/wrapped", func(c *Context) error {
		return c.RespondError(errors.Wrap(NewRequestError(errors.New("gone"), http.StatusNotFound), "loading"))
	})
	app.Get("/unknown", func(c *Context) error {
		return c.RespondError(errors.New("db exploded"))
	})

	tests := []struct {
		path    string
		want    int
		message string
		fields  int
	}{
		{"/known", http.StatusBadRequest, "validation failed", 1},
		{"/wrapped", http.StatusNotFound, "gone", 0},
		{"/unknown", http.StatusInternalServerError, "Internal Server Error", 0},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

		var body struct {
			Message string       `json:"message"`
			Status  bool         `json:"status"`
			Fields  []FieldError `json:"fields"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decoding: %v", tt.path, err)
		}
		if w.Code != tt.want || body.Message != tt.message || body.Status || len(body.Fields) != tt.fields {
			t.Fatalf("%s: %d %s", tt.path, w.Code, w.Body.String())
		}
	}
}

func TestQueryParsing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type result struct {
		Limit  *int       `json:"limit"`
		Active *bool      `json:"active"`
		Search *string    `json:"search"`
		From   *time.Time `json:"from"`
	}

	app := NewApp()
	app.Get("/list", func(c *Context) error {
		var r result
		r.Limit, _ = c.GetQueryFunc(reflect.Int, "limit").(*int)
		r.Active, _ = c.GetQueryFunc(reflect.Bool, "active").(*bool)
		r.Search, _ = c.GetQueryFunc(reflect.String, "search").(*string)
		r.From = c.GetQueryTime("from")
		if err := c.ValidQuery(); err != nil {
			return c.RespondError(err)
		}
		return c.Respond(r, http.StatusOK)
	})

	tests := []struct {
		query string
		want  int
		body  string
	}{
		{"", http.StatusOK, `{"limit":null,"active":null,"search":null,"from":null}`},
		{"?limit=5&active=true&search=%20ana%20&from=2024-01-02", http.StatusOK, `{"limit":5,"active":true,"search":"ana","from":"2024-01-02T00:00:00Z"}`},
		{"?limit=five", http.StatusBadRequest, `"field":"limit"`},
		{"?from=2024-13-40", http.StatusBadRequest, `"field":"from"`},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/list"+tt.query, nil))

		if w.Code != tt.want || !strings.Contains(w.Body.String(), tt.body) {
			t.Fatalf("%q: %d %s", tt.query, w.Code, w.Body.String())
		}
	}
}

func TestMiddlewareOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var order []string
	mark := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(c *Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	app := NewApp(mark("app"))
	app.Get("/", func(c *Context) error {
		order = append(order, "handler")
		return c.Respond(nil, http.StatusNoContent)
	}, mark("route-1"), mark("route-2"))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if want := []string{"app", "route-1", "route-2", "handler"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	if w.Code != http.StatusNoContent {
		t.Fatalf("status %d", w.Code)
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("missing %s", RequestIDHeader)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"2024-03-01T09:30:00Z", time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), false},
		{"03/01/2024", time.Time{}, true},
	}

	for _, tt := range tests {
		got, err := ParseTime(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseTime(%q) error = %v", tt.in, err)
		}
		if !tt.wantErr && !got.Equal(tt.want) {
			t.Fatalf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
