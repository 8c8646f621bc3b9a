package auth

import (
	"net/http"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/auth"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres/user"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = errors.New("invalid credentials")

type Controller struct {
	user         User
	auth         *auth.Auth
	secureCookie bool
}

func NewController(user User, a *auth.Auth, secureCookie bool) *Controller {
	return &Controller{user: user, auth: a, secureCookie: secureCookie}
}

func claimsOf(u entity.User) auth.Claims {
	return auth.Claims{
		UserId:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		BranchId: u.BranchID,
	}
}

// SignIn starts a cookie session and also hands out a token pair for
// clients that do not keep cookies.
func (uc Controller) SignIn(c *web.Context) error {
	var data user.SignInRequest

	if err := c.BindFunc(&data, "Username", "Password"); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.GetByUsername(c.Ctx, data.Username)
	if err != nil {
		return c.RespondError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(detail.Password), []byte(data.Password)); err != nil {
		return c.RespondError(web.NewRequestError(errInvalidCredentials, http.StatusUnauthorized))
	}
	if !detail.IsActive {
		return c.RespondError(web.NewRequestError(errors.New("account is inactive"), http.StatusUnauthorized))
	}

	claims := claimsOf(detail)

	sessionID, err := uc.auth.NewSession(c.Ctx, claims)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	accessToken, refreshToken, err := uc.auth.GenerateTokens(claims)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, sessionID, int(uc.auth.SessionTTL().Seconds()), "/", "", uc.secureCookie, true)

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"user":          detail,
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) SignOut(c *web.Context) error {
	if id, err := c.Cookie(auth.SessionCookie); err == nil && id != "" {
		if err := uc.auth.EndSession(c.Ctx, id); err != nil {
			return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", uc.secureCookie, true)

	return c.Respond(map[string]interface{}{
		"data":   "Logged out successfully",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Me(c *web.Context) error {
	claims, ok := auth.FromContext(c.Ctx)
	if !ok {
		return c.RespondError(web.NewRequestError(auth.ErrUnauthenticated, http.StatusUnauthorized))
	}

	detail, err := uc.user.GetByID(c.Ctx, claims.UserId)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   detail,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) RefreshToken(c *web.Context) error {
	var data user.RefreshTokenRequest

	if err := c.BindFunc(&data, "AccessToken", "RefreshToken"); err != nil {
		return c.RespondError(err)
	}

	claims, err := uc.auth.Refresh(data.AccessToken, data.RefreshToken)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	// role or branch may have changed since the pair was issued
	detail, err := uc.user.GetByID(c.Ctx, claims.UserId)
	if err != nil || !detail.IsActive {
		return c.RespondError(web.NewRequestError(auth.ErrInvalidToken, http.StatusUnauthorized))
	}

	accessToken, refreshToken, err := uc.auth.GenerateTokens(claimsOf(detail))
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "generating new tokens"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"status": true,
	}, http.StatusOK)
}
