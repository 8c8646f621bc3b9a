package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
)

type memSessions struct {
	mu   sync.Mutex
	data map[string]Claims
}

func (m *memSessions) Save(_ context.Context, id string, claims Claims, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string]Claims{}
	}
	m.data[id] = claims
	return nil
}

func (m *memSessions) Load(_ context.Context, id string) (Claims, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.data[id]
	if !ok {
		return Claims{}, ErrSessionNotFound
	}
	return c, nil
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

func newAuth(t *testing.T) *Auth {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	a, err := New(key, &memSessions{}, Config{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return a
}

func TestTokens(t *testing.T) {
	a := newAuth(t)
	claims := Claims{UserId: "u1", Username: "ana", Role: RoleManager, BranchId: "b1"}

	access, refresh, err := a.GenerateTokens(claims)
	if err != nil {
		t.Fatalf("GenerateTokens() error: %v", err)
	}

	got, err := a.ValidateToken(access)
	if err != nil {
		t.Fatalf("ValidateToken() error: %v", err)
	}
	if got.UserId != "u1" || !got.IsManager() || got.BranchId != "b1" {
		t.Fatalf("claims = %+v", got)
	}

	if _, err := a.ValidateToken(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access token: %v", err)
	}

	renewed, err := a.Refresh(access, refresh)
	if err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if renewed.UserId != "u1" || renewed.Type != "" {
		t.Fatalf("refreshed claims = %+v", renewed)
	}

	if _, err := a.Refresh(refresh, access); err == nil {
		t.Fatalf("swapped tokens should not refresh")
	}
}

func TestRefreshExpiredAccess(t *testing.T) {
	a := newAuth(t)
	a.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	access, refresh, err := a.GenerateTokens(Claims{UserId: "u1", Role: RoleEmployee})
	if err != nil {
		t.Fatalf("GenerateTokens() error: %v", err)
	}

	if _, err := a.ValidateToken(access); err == nil {
		t.Fatalf("expired access token validated")
	}
	if _, err := a.Refresh(access, refresh); err != nil {
		t.Fatalf("Refresh() with expired access token: %v", err)
	}
}

func TestAuthorized(t *testing.T) {
	tests := []struct {
		role  string
		roles []string
		want  bool
	}{
		{RoleEmployee, nil, true},
		{RoleEmployee, []string{RoleManager}, false},
		{RoleManager, []string{RoleManager}, true},
		{RoleEmployee, []string{RoleManager, RoleEmployee}, true},
	}

	for _, tt := range tests {
		if got := (Claims{Role: tt.role}).Authorized(tt.roles...); got != tt.want {
			t.Fatalf("Authorized(%q, %v)=%v, want %v", tt.role, tt.roles, got, tt.want)
		}
	}
}

func TestSessions(t *testing.T) {
	a := newAuth(t)
	ctx := context.Background()

	id, err := a.NewSession(ctx, Claims{UserId: "u1", Role: RoleEmployee})
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}

	claims, err := a.Session(ctx, id)
	if err != nil || claims.UserId != "u1" {
		t.Fatalf("Session() = %+v, %v", claims, err)
	}

	if err := a.EndSession(ctx, id); err != nil {
		t.Fatalf("EndSession() error: %v", err)
	}
	if _, err := a.Session(ctx, id); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("ended session still loads: %v", err)
	}
}
