package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type sessions map[string]auth.Claims

func (s sessions) Save(_ context.Context, id string, c auth.Claims, _ time.Duration) error {
	s[id] = c
	return nil
}

func (s sessions) Load(_ context.Context, id string) (auth.Claims, error) {
	c, ok := s[id]
	if !ok {
		return auth.Claims{}, auth.ErrSessionNotFound
	}
	return c, nil
}

func (s sessions) Delete(_ context.Context, id string) error {
	delete(s, id)
	return nil
}

// downSessions fails like an unreachable redis.
type downSessions struct{ sessions }

func (downSessions) Load(context.Context, string) (auth.Claims, error) {
	return auth.Claims{}, errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")
}

func TestAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	store := sessions{}
	a, err := auth.New(key, store, auth.Config{})
	if err != nil {
		t.Fatalf("auth.New() error: %v", err)
	}

	employee := auth.Claims{UserId: "u1", Role: auth.RoleEmployee, BranchId: "b1"}
	access, _, err := a.GenerateTokens(employee)
	if err != nil {
		t.Fatalf("GenerateTokens() error: %v", err)
	}
	sid, err := a.NewSession(context.Background(), employee)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}

	app := web.NewApp()
	handler := func(c *web.Context) error {
		claims, ok := auth.FromContext(c.Ctx)
		if !ok {
			return c.RespondError(web.NewRequestError(auth.ErrUnauthenticated, http.StatusUnauthorized))
		}
		return c.Respond(map[string]any{"data": claims.UserId, "status": true}, http.StatusOK)
	}
	app.Get("/any", handler, Authenticate(a))
	app.Get("/manager", handler, Authenticate(a, auth.RoleManager))

	tests := []struct {
		name   string
		path   string
		header string
		cookie string
		want   int
	}{
		{"no credentials", "/any", "", "", http.StatusUnauthorized},
		{"bad header", "/any", "Token abc", "", http.StatusUnauthorized},
		{"bad token", "/any", "Bearer abc", "", http.StatusUnauthorized},
		{"bearer", "/any", "Bearer " + access, "", http.StatusOK},
		{"session", "/any", "", sid, http.StatusOK},
		{"unknown session", "/any", "", "nope", http.StatusUnauthorized},
		{"wrong role", "/manager", "Bearer " + access, "", http.StatusForbidden},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		if tt.cookie != "" {
			req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: tt.cookie})
		}
		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)

		if w.Code != tt.want {
			t.Fatalf("%s: status = %d, want %d (%s)", tt.name, w.Code, tt.want, w.Body.String())
		}
	}
}

func TestAuthenticateSessionStoreDown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	a, err := auth.New(key, downSessions{sessions{}}, auth.Config{})
	if err != nil {
		t.Fatalf("auth.New() error: %v", err)
	}

	called := false
	app := web.NewApp()
	app.Get("/any", func(c *web.Context) error {
		called = true
		return c.Respond(map[string]any{"status": true}, http.StatusOK)
	}, Authenticate(a))

	req := httptest.NewRequest(http.MethodGet, "/any", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "sid"})
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError || called {
		t.Fatalf("status = %d, handler called = %v (%s)", w.Code, called, w.Body.String())
	}
}

func TestAllowOrigin(t *testing.T) {
	allow := AllowOrigin([]string{"https://cafe.example.com"})

	tests := map[string]bool{
		"https://cafe.example.com": true,
		"http://localhost:5173":    true,
		"http://192.168.1.20:3000": true,
		"http://10.0.0.4:8080":     true,
		"http://172.20.1.1:80":     true,
		"http://172.32.1.1:80":     false,
		"https://evil.example.com": false,
		"http://192.168.1.20":      false,
	}

	for origin, want := range tests {
		if got := allow(origin); got != want {
			t.Fatalf("AllowOrigin(%q)=%v, want %v", origin, got, want)
		}
	}
}
