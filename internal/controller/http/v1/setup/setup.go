package setup

import (
	"context"
	"net/http"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/repository/postgres/setup"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

type Controller struct {
	setup  Setup
	checks map[string]Check
}

func NewController(setup Setup, checks map[string]Check) *Controller {
	return &Controller{setup, checks}
}

func (uc Controller) Status(c *web.Context) error {
	complete, err := uc.setup.IsComplete(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   map[string]bool{"isSetupComplete": complete},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request setup.CreateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.setup.Complete(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

// Health answers 503 when one of the checks fails.
func (uc Controller) Health(c *web.Context) error {
	status, code := "ok", http.StatusOK
	failed := map[string]string{}

	for name, check := range uc.checks {
		if err := check(c.Ctx); err != nil {
			failed[name] = err.Error()
			status, code = "unavailable", http.StatusServiceUnavailable
		}
	}

	data := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if len(failed) > 0 {
		data["failed"] = failed
	}

	return c.Respond(map[string]interface{}{
		"data":   data,
		"status": code == http.StatusOK,
	}, code)
}
