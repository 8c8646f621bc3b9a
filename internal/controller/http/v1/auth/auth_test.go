package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/auth"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
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

type users map[string]entity.User

func (u users) GetByUsername(_ context.Context, username string) (entity.User, error) {
	for _, v := range u {
		if v.Username == username {
			return v, nil
		}
	}
	return entity.User{}, web.NewRequestError(errors.New("invalid credentials"), http.StatusUnauthorized)
}

func (u users) GetByID(_ context.Context, id string) (entity.User, error) {
	v, ok := u[id]
	if !ok {
		return entity.User{}, web.NewRequestError(errors.New("user not found"), http.StatusNotFound)
	}
	return v, nil
}

func setup(t *testing.T) (*web.App, sessions) {
	t.Helper()
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

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	repo := users{
		"u1": {BasicEntity: entity.BasicEntity{ID: "u1"}, Username: "ana", Password: string(hash), Role: entity.RoleManager, BranchID: "b1", IsActive: true},
		"u2": {BasicEntity: entity.BasicEntity{ID: "u2"}, Username: "ben", Password: string(hash), Role: entity.RoleEmployee, BranchID: "b1"},
	}

	uc := NewController(repo, a, false)
	app := web.NewApp()
	app.Post("/login", uc.SignIn)
	app.Post("/logout", uc.SignOut)
	app.Get("/me", uc.Me, middleware.Authenticate(a))

	return app, store
}

func TestSignIn(t *testing.T) {
	app, store := setup(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"ok", `{"username":"ana","password":"secret1"}`, http.StatusOK},
		{"wrong password", `{"username":"ana","password":"nope"}`, http.StatusUnauthorized},
		{"unknown user", `{"username":"zed","password":"secret1"}`, http.StatusUnauthorized},
		{"inactive", `{"username":"ben","password":"secret1"}`, http.StatusUnauthorized},
		{"missing password", `{"username":"ana"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)

		if w.Code != tt.want {
			t.Fatalf("%s: status %d, want %d: %s", tt.name, w.Code, tt.want, w.Body.String())
		}
	}

	if len(store) != 1 {
		t.Fatalf("sessions = %d, want 1", len(store))
	}
}

func TestSessionRoundTrip(t *testing.T) {
	app, store := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"ana","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	var body struct {
		Data struct {
			User        entity.User `json:"user"`
			AccessToken string      `json:"access_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding login: %v", err)
	}
	if body.Data.AccessToken == "" || body.Data.User.ID != "u1" {
		t.Fatalf("login body = %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("login leaks the password hash: %s", w.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			cookie = c
		}
	}
	if cookie == nil || !cookie.HttpOnly {
		t.Fatalf("session cookie = %+v", cookie)
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	app.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("me: status %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	app.ServeHTTP(w, req)
	if w.Code != http.StatusOK || len(store) != 0 {
		t.Fatalf("logout: status %d, sessions %d", w.Code, len(store))
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	app.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: status %d", w.Code)
	}
}
