// Package auth issues and validates RS256 tokens and browser sessions.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"log"
	"os"
	"time"

	"cafeshift/backend/internal/entity"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	RoleEmployee = entity.RoleEmployee
	RoleManager  = entity.RoleManager
)

const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

// SessionCookie is the name of the browser session cookie.
const SessionCookie = "cafe.sid"

// ctxKey represents the type of value for the context key.
type ctxKey int

// Key is used to store/retrieve a Claims value from a context.Context.
const Key ctxKey = 1

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient permissions")
	ErrInvalidToken    = errors.New("invalid token")
)

// Claims represents the authorization claims transmitted via a JWT or kept
// in a session.
type Claims struct {
	jwt.StandardClaims
	UserId   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	BranchId string `json:"branch_id"`
	Type     string `json:"type,omitempty"`
}

// Authorized returns true if the claims has at least one of the provided
// roles. No roles means any authenticated user.
func (c Claims) Authorized(roles ...string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, has := range roles {
		if c.Role == has {
			return true
		}
	}
	return false
}

// IsManager reports whether the claims belong to a manager.
func (c Claims) IsManager() bool {
	return c.Role == RoleManager
}

// FromContext returns the claims stored by the authentication middleware.
func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(Key).(Claims)
	return claims, ok
}

// Config holds the lifetimes used by Auth.
type Config struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	SessionTTL time.Duration
}

// Auth is used to authenticate clients. It can generate a token for a set of
// user claims and recreate the claims by parsing the token, and it keeps
// server side sessions for browser clients.
type Auth struct {
	privateKey *rsa.PrivateKey
	algorithm  string
	sessions   SessionStore
	cfg        Config
	now        func() time.Time
}

// New creates an *Auth for use.
func New(privateKey *rsa.PrivateKey, sessions SessionStore, cfg Config) (*Auth, error) {
	if privateKey == nil {
		return nil, errors.New("private key cannot be nil")
	}
	if sessions == nil {
		return nil, errors.New("session store cannot be nil")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = time.Hour
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}

	return &Auth{
		privateKey: privateKey,
		algorithm:  "RS256",
		sessions:   sessions,
		cfg:        cfg,
		now:        time.Now,
	}, nil
}

// LoadPrivateKey reads a PEM encoded RSA key. When the file does not exist a
// fresh key is generated; tokens signed with it die with the process.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("auth: %s not found, generating an ephemeral signing key", path)
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			return nil, errors.Wrap(err, "generating private key")
		}
		return key, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading private key")
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing private key")
	}

	return key, nil
}

// GenerateTokens signs an access and a refresh token for the claims.
func (a *Auth) GenerateTokens(claims Claims) (accessToken, refreshToken string, err error) {
	now := a.now()

	access := claims
	access.Type = TokenAccess
	access.StandardClaims = jwt.StandardClaims{
		Subject:   claims.UserId,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(a.cfg.AccessTTL).Unix(),
	}

	refresh := claims
	refresh.Type = TokenRefresh
	refresh.StandardClaims = jwt.StandardClaims{
		Id:        uuid.NewString(),
		Subject:   claims.UserId,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(a.cfg.RefreshTTL).Unix(),
	}

	if accessToken, err = a.sign(access); err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}
	if refreshToken, err = a.sign(refresh); err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return accessToken, refreshToken, nil
}

func (a *Auth) sign(claims Claims) (string, error) {
	method := jwt.GetSigningMethod(a.algorithm)
	token := jwt.NewWithClaims(method, claims)

	return token.SignedString(a.privateKey)
}

// ValidateToken recreates the claims that were used to generate an access
// token. It verifies the signature and the expiry.
func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	claims, err := a.parse(tokenStr)
	if err != nil {
		return Claims{}, err
	}
	if claims.Type != TokenAccess {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// Refresh validates a refresh token and the access token it belongs to. The
// access token may be expired but must carry a valid signature.
func (a *Auth) Refresh(accessToken, refreshToken string) (Claims, error) {
	refresh, err := a.parse(refreshToken)
	if err != nil {
		return Claims{}, err
	}
	if refresh.Type != TokenRefresh {
		return Claims{}, ErrInvalidToken
	}

	access, err := a.parse(accessToken)
	if err != nil {
		var vErr *jwt.ValidationError
		if !errors.As(err, &vErr) || vErr.Errors != jwt.ValidationErrorExpired {
			return Claims{}, err
		}
	}
	if access.UserId != refresh.UserId {
		return Claims{}, ErrInvalidToken
	}

	refresh.Type = ""
	refresh.StandardClaims = jwt.StandardClaims{}

	return refresh, nil
}

// parse returns the claims even when the only validation failure is expiry,
// together with the *jwt.ValidationError so callers can decide.
func (a *Auth) parse(tokenStr string) (Claims, error) {
	var claims Claims

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != a.algorithm {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return &a.privateKey.PublicKey, nil
	}

	token, err := jwt.ParseWithClaims(tokenStr, &claims, keyFunc)
	if err != nil {
		return claims, err
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// NewSession stores the claims under a new random session id.
func (a *Auth) NewSession(ctx context.Context, claims Claims) (string, error) {
	id := uuid.NewString()
	claims.Type = ""
	claims.StandardClaims = jwt.StandardClaims{}

	if err := a.sessions.Save(ctx, id, claims, a.cfg.SessionTTL); err != nil {
		return "", errors.Wrap(err, "saving session")
	}

	return id, nil
}

// Session loads the claims of a session.
func (a *Auth) Session(ctx context.Context, id string) (Claims, error) {
	return a.sessions.Load(ctx, id)
}

// EndSession removes a session. Unknown ids are not an error.
func (a *Auth) EndSession(ctx context.Context, id string) error {
	return a.sessions.Delete(ctx, id)
}

// SessionTTL is the lifetime of sessions and their cookie.
func (a *Auth) SessionTTL() time.Duration {
	return a.cfg.SessionTTL
}
