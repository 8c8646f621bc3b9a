package approval

import (
	"net/http"
	"reflect"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/repository/postgres/approval"
)

type Controller struct {
	approval Approval
}

func NewController(approval Approval) *Controller {
	return &Controller{approval}
}

func (uc Controller) GetPending(c *web.Context) error {
	list, err := uc.approval.GetPending(c.Ctx)
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

func (uc Controller) Respond(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request approval.RespondRequest

	if err := c.BindFunc(&request, "Status"); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	response, err := uc.approval.Respond(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}
