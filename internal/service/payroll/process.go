package payroll

import (
	"context"
	"time"

	"cafeshift/backend/internal/entity"

	"github.com/pkg/errors"
)

var (
	ErrPeriodNotFound    = errors.New("payroll period not found")
	ErrPeriodNotOpen     = errors.New("payroll period is not open")
	ErrPeriodForbidden   = errors.New("payroll period belongs to another branch")
	ErrInvalidTransition = errors.New("invalid payroll entry transition")
)

// Store is what Process needs from persistence. Implementations are expected
// to run every call inside one transaction.
type Store interface {
	// LockPeriod loads the period and holds it until the transaction ends.
	LockPeriod(ctx context.Context, id string) (entity.PayrollPeriod, error)
	ActiveEmployees(ctx context.Context, branchID string) ([]entity.User, error)
	// ShiftsStartingBetween returns shifts whose scheduled start lies in
	// [from, to].
	ShiftsStartingBetween(ctx context.Context, userID string, from, to time.Time) ([]entity.Shift, error)
	CreateEntry(ctx context.Context, entry *entity.PayrollEntry) error
	Notify(ctx context.Context, n *entity.Notification) error
	ClosePeriod(ctx context.Context, id string, totalHours, totalPay float64) error
}

// Result summarizes one processing run.
type Result struct {
	PeriodID   string
	Entries    []entity.PayrollEntry
	TotalHours float64
	TotalPay   float64
}

// Processor turns an open period into payroll entries.
type Processor struct {
	Currency string
	NewID    func() string
	Now      func() time.Time
}

// Process creates one pending entry and one notification per active employee
// with shifts in the period, then closes the period with its totals.
// branchID, when not empty, must match the period's branch.
func (p Processor) Process(ctx context.Context, store Store, periodID, branchID string) (Result, error) {
	period, err := store.LockPeriod(ctx, periodID)
	if err != nil {
		return Result{}, err
	}
	if branchID != "" && period.BranchID != branchID {
		return Result{}, ErrPeriodForbidden
	}
	if period.Status != entity.PeriodOpen {
		return Result{}, ErrPeriodNotOpen
	}

	employees, err := store.ActiveEmployees(ctx, period.BranchID)
	if err != nil {
		return Result{}, errors.Wrap(err, "selecting employees")
	}

	result := Result{PeriodID: period.ID}
	for _, employee := range employees {
		shifts, err := store.ShiftsStartingBetween(ctx, employee.ID, period.StartDate, period.EndDate)
		if err != nil {
			return Result{}, errors.Wrapf(err, "selecting shifts of %s", employee.ID)
		}
		if len(shifts) == 0 {
			continue
		}

		pay := ComputeForPeriod(period, shifts, employee.HourlyRate)

		entry := entity.PayrollEntry{
			BasicEntity:     entity.BasicEntity{ID: p.NewID(), CreatedAt: p.Now()},
			UserID:          employee.ID,
			PayrollPeriodID: period.ID,
			TotalHours:      pay.TotalHours,
			RegularHours:    pay.RegularHours,
			OvertimeHours:   pay.OvertimeHours,
			GrossPay:        pay.GrossPay,
			Deductions:      pay.Deductions,
			NetPay:          pay.NetPay,
			Status:          entity.EntryPending,
		}
		if err := store.CreateEntry(ctx, &entry); err != nil {
			return Result{}, errors.Wrapf(err, "creating entry for %s", employee.ID)
		}

		n, err := p.slipNotification(period, entry)
		if err != nil {
			return Result{}, err
		}
		if err := store.Notify(ctx, &n); err != nil {
			return Result{}, errors.Wrapf(err, "notifying %s", employee.ID)
		}

		result.Entries = append(result.Entries, entry)
		result.TotalHours += pay.TotalHours
		result.TotalPay += pay.GrossPay
	}

	if err := store.ClosePeriod(ctx, period.ID, result.TotalHours, result.TotalPay); err != nil {
		return Result{}, errors.Wrap(err, "closing period")
	}

	return result, nil
}

func (p Processor) slipNotification(period entity.PayrollPeriod, entry entity.PayrollEntry) (entity.Notification, error) {
	data, err := SlipData(entry)
	if err != nil {
		return entity.Notification{}, err
	}

	return entity.Notification{
		BasicEntity: entity.BasicEntity{ID: p.NewID(), CreatedAt: p.Now()},
		UserID:      entry.UserID,
		Type:        entity.NotificationPayroll,
		Title:       "Payroll Slip Available",
		Message:     SlipMessage(period, entry.NetPay, p.Currency),
		Data:        data,
	}, nil
}
