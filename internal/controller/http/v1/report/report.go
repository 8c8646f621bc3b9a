package report

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/repository/postgres/report"

	"github.com/pkg/errors"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Controller struct {
	report Report
}

func NewController(report Report) *Controller {
	return &Controller{report}
}

// respond runs a report without parameters and wraps its result.
func respond[T any](c *web.Context, fn func(context.Context) (T, error)) error {
	response, err := fn(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Payroll(c *web.Context) error {
	return respond(c, uc.report.Payroll)
}

func (uc Controller) Attendance(c *web.Context) error {
	return respond(c, uc.report.Attendance)
}

func (uc Controller) Shifts(c *web.Context) error {
	return respond(c, uc.report.Shifts)
}

func (uc Controller) Employees(c *web.Context) error {
	return respond(c, uc.report.Employees)
}

func (uc Controller) DashboardStats(c *web.Context) error {
	return respond(c, uc.report.DashboardStats)
}

func (uc Controller) EmployeeStatus(c *web.Context) error {
	return respond(c, uc.report.EmployeeStatus)
}

func (uc Controller) Performance(c *web.Context) error {
	return respond(c, uc.report.Performance)
}

// Hours answers JSON unless ?format=xlsx is given.
func (uc Controller) Hours(c *web.Context) error {
	var filter report.HoursFilter

	filter.StartDate = c.GetQueryTime("startDate")
	filter.EndDate = c.GetQueryTime("endDate")
	if employeeID, ok := c.GetQueryFunc(reflect.String, "employeeId").(*string); ok {
		filter.EmployeeID = employeeID
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	switch format := c.Query("format"); format {
	case "", "json":
	case "xlsx":
		data, err := uc.report.HoursExport(c.Ctx, filter)
		if err != nil {
			return c.RespondError(err)
		}
		return c.RespondFile(data, xlsxContentType, fmt.Sprintf("hours_report_%s.xlsx", time.Now().Format("2006-01-02")))
	default:
		return c.RespondError(web.NewRequestError(errors.Errorf("unsupported format %q", format), http.StatusBadRequest))
	}

	response, err := uc.report.Hours(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}
