package middleware

import (
	"net/http"
	"strings"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/auth"

	"github.com/pkg/errors"
)

// Authenticate accepts either the browser session cookie or a Bearer access
// token. With roles given the caller must hold one of them.
func Authenticate(a *auth.Auth, roles ...string) web.Middleware {
	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(c *web.Context) error {
			claims, err := identify(c, a)
			if err != nil {
				var webErr *web.Error
				if errors.As(err, &webErr) {
					return c.RespondError(err)
				}
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			// check role inside session/token data
			if !claims.Authorized(roles...) {
				return c.RespondError(web.NewRequestError(auth.ErrForbidden, http.StatusForbidden))
			}

			// Add claims to the context so that they can be retrieved later.
			c.WithValue(auth.Key, claims)

			// Call the next handler.
			return handler(c)
		}

		return h
	}

	return m
}

func identify(c *web.Context, a *auth.Auth) (auth.Claims, error) {
	if sid, err := c.Cookie(auth.SessionCookie); err == nil && sid != "" {
		claims, err := a.Session(c.Ctx, sid)
		if err == nil {
			return claims, nil
		}
		if !errors.Is(err, auth.ErrSessionNotFound) {
			return auth.Claims{}, web.NewRequestError(errors.Wrap(err, "loading session"), http.StatusInternalServerError)
		}
	}

	// Expecting: Bearer <token>
	authStr := c.Request.Header.Get("authorization")
	if authStr == "" {
		return auth.Claims{}, auth.ErrUnauthenticated
	}

	parts := strings.Split(authStr, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return auth.Claims{}, errors.New("expected authorization header format: Bearer <token>")
	}

	// Validate the token is signed by us.
	claims, err := a.ValidateToken(parts[1])
	if err != nil {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	return claims, nil
}
