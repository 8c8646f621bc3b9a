package timeoff

import (
	"context"
	"net/http"
	"reflect"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres/timeoff"
)

type Controller struct {
	timeOff TimeOff
}

func NewController(timeOff TimeOff) *Controller {
	return &Controller{timeOff}
}

func (uc Controller) GetList(c *web.Context) error {
	list, err := uc.timeOff.GetList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   len(list),
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request timeoff.CreateRequest

	if err := c.BindFunc(&request, "StartDate", "EndDate", "Type", "Reason"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.timeOff.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) Approve(c *web.Context) error {
	return uc.decide(c, uc.timeOff.Approve)
}

func (uc Controller) Reject(c *web.Context) error {
	return uc.decide(c, uc.timeOff.Reject)
}

func (uc Controller) decide(c *web.Context, fn func(context.Context, string) (entity.TimeOffRequest, error)) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := fn(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Balance(c *web.Context) error {
	response, err := uc.timeOff.Balance(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}
