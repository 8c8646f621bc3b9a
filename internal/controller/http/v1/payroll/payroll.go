package payroll

import (
	"context"
	"fmt"
	"net/http"
	"reflect"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres/payroll"
	"cafeshift/backend/internal/service/payslip"

	"github.com/pkg/errors"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Controller struct {
	payroll Payroll
}

func NewController(payroll Payroll) *Controller {
	return &Controller{payroll}
}

func (uc Controller) Process(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.payroll.Process(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetOwnEntries(c *web.Context) error {
	list, err := uc.payroll.GetOwnEntries(c.Ctx)
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

func (uc Controller) GetPeriods(c *web.Context) error {
	list, err := uc.payroll.GetPeriods(c.Ctx)
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

func (uc Controller) GetCurrentPeriod(c *web.Context) error {
	response, err := uc.payroll.GetCurrentPeriod(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) CreatePeriod(c *web.Context) error {
	var request payroll.CreatePeriodRequest

	if err := c.BindFunc(&request, "StartDate", "EndDate"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.payroll.CreatePeriod(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) GetBranchEntries(c *web.Context) error {
	var filter payroll.Filter

	if periodID, ok := c.GetQueryFunc(reflect.String, "periodId").(*string); ok {
		filter.PeriodID = periodID
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.payroll.GetBranchEntries(c.Ctx, filter)
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

func (uc Controller) Approve(c *web.Context) error {
	return uc.transition(c, uc.payroll.Approve)
}

func (uc Controller) MarkPaid(c *web.Context) error {
	return uc.transition(c, uc.payroll.MarkPaid)
}

func (uc Controller) transition(c *web.Context, fn func(context.Context, string) (entity.PayrollEntry, error)) error {
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

// GetPayslip answers JSON unless ?format=pdf is given.
func (uc Controller) GetPayslip(c *web.Context) error {
	entryID := c.GetParam(reflect.String, "entryId").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	switch format := c.Query("format"); format {
	case "", "json":
	case "pdf":
		data, err := uc.payroll.GetPayslipPDF(c.Ctx, entryID)
		if err != nil {
			return c.RespondError(err)
		}
		return c.RespondFile(data, payslip.ContentType, fmt.Sprintf("payslip_%s.pdf", entryID))
	default:
		return c.RespondError(web.NewRequestError(errors.Errorf("unsupported format %q", format), http.StatusBadRequest))
	}

	response, err := uc.payroll.GetPayslip(c.Ctx, entryID)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Send(c *web.Context) error {
	entryID := c.GetParam(reflect.String, "entryId").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.payroll.Send(c.Ctx, entryID); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "Payslip sent successfully",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Export(c *web.Context) error {
	periodID, ok := c.GetQueryFunc(reflect.String, "periodId").(*string)
	if !ok {
		return c.RespondError(&web.Error{
			Err:    errors.New("invalid query parameters"),
			Status: http.StatusBadRequest,
			Fields: []web.FieldError{{Field: "periodId", Error: "required"}},
		})
	}

	data, err := uc.payroll.Export(c.Ctx, *periodID)
	if err != nil {
		return c.RespondError(err)
	}

	return c.RespondFile(data, xlsxContentType, fmt.Sprintf("payroll_%s.xlsx", *periodID))
}
