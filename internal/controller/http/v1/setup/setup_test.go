package setup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cafeshift/backend/foundation/web"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		checks map[string]Check
		want   int
		body   string
	}{
		{"no checks", nil, http.StatusOK, `"status":"ok"`},
		{"all up", map[string]Check{"postgres": ok, "redis": ok}, http.StatusOK, `"status":"ok"`},
		{"redis down", map[string]Check{"postgres": ok, "redis": down}, http.StatusServiceUnavailable, `"redis":"connection refused"`},
	}

	for _, tt := range tests {
		app := web.NewApp()
		app.Get("/health", NewController(nil, tt.checks).Health)

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		if w.Code != tt.want || !strings.Contains(w.Body.String(), tt.body) {
			t.Fatalf("%s: %d %s", tt.name, w.Code, w.Body.String())
		}
	}
}
