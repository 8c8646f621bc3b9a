package notification

import (
	"net/http"
	"reflect"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/repository/postgres/notification"
)

type Controller struct {
	notification Notification
}

func NewController(notification Notification) *Controller {
	return &Controller{notification}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter notification.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if unread, ok := c.GetQueryFunc(reflect.Bool, "unreadOnly").(*bool); ok {
		filter.UnreadOnly = unread
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, unread, err := uc.notification.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results":     list,
			"count":       len(list),
			"unreadCount": unread,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) MarkRead(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.notification.MarkRead(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) MarkAllRead(c *web.Context) error {
	count, err := uc.notification.MarkAllRead(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   map[string]int{"updatedCount": count},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.notification.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "Notification deleted successfully",
		"status": true,
	}, http.StatusOK)
}
