package shift

import (
	"context"
	"net/http"
	"reflect"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres/shift"
)

type Controller struct {
	shift Shift
}

func NewController(shift Shift) *Controller {
	return &Controller{shift}
}

func filterFrom(c *web.Context) shift.Filter {
	var filter shift.Filter

	filter.StartDate = c.GetQueryTime("startDate")
	filter.EndDate = c.GetQueryUntil("endDate")
	if userID, ok := c.GetQueryFunc(reflect.String, "userId").(*string); ok {
		filter.UserID = userID
	}

	return filter
}

func (uc Controller) GetList(c *web.Context) error {
	filter := filterFrom(c)

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.shift.GetList(c.Ctx, filter)
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

func (uc Controller) GetBranchList(c *web.Context) error {
	filter := filterFrom(c)

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.shift.GetBranchList(c.Ctx, filter)
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

func (uc Controller) GetDetailById(c *web.Context) error {
	return uc.byID(c, uc.shift.GetDetailById)
}

func (uc Controller) Create(c *web.Context) error {
	var request shift.CreateRequest

	if err := c.BindFunc(&request, "UserID", "StartTime", "EndTime", "Position"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.shift.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request shift.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	response, err := uc.shift.UpdateColumns(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.shift.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) ClockIn(c *web.Context) error {
	return uc.byID(c, uc.shift.ClockIn)
}

func (uc Controller) ClockOut(c *web.Context) error {
	return uc.byID(c, uc.shift.ClockOut)
}

func (uc Controller) byID(c *web.Context, fn func(context.Context, string) (entity.Shift, error)) error {
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
