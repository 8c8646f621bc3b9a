package payroll

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/auth"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/pkg/repository/postgresql"
	"cafeshift/backend/internal/repository/postgres"
	"cafeshift/backend/internal/service/excel"
	"cafeshift/backend/internal/service/ledger"
	"cafeshift/backend/internal/service/payroll"
	"cafeshift/backend/internal/service/payslip"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Repository struct {
	*postgresql.Database
	currency string
}

func NewRepository(database *postgresql.Database, currency string) *Repository {
	return &Repository{Database: database, currency: currency}
}

// Process turns an open period of the caller's branch into pending entries
// and closes it. The whole run is one transaction holding the period row.
func (r Repository) Process(ctx context.Context, periodID string) (ProcessResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return ProcessResponse{}, err
	}

	processor := payroll.Processor{
		Currency: r.currency,
		NewID:    postgres.NewID,
		Now:      time.Now,
	}

	var result payroll.Result
	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		result, err = processor.Process(ctx, txStore{tx: tx}, periodID, claims.BranchId)
		return err
	})

	switch {
	case errors.Is(err, payroll.ErrPeriodNotFound):
		return ProcessResponse{}, web.NewRequestError(payroll.ErrPeriodNotFound, http.StatusNotFound)
	case errors.Is(err, payroll.ErrPeriodForbidden):
		return ProcessResponse{}, web.NewRequestError(payroll.ErrPeriodForbidden, http.StatusForbidden)
	case errors.Is(err, payroll.ErrPeriodNotOpen):
		return ProcessResponse{}, web.NewRequestError(payroll.ErrPeriodNotOpen, http.StatusBadRequest)
	case err != nil:
		return ProcessResponse{}, web.NewRequestError(errors.Wrap(err, "processing payroll"), http.StatusInternalServerError)
	}

	return ProcessResponse{
		Message:        fmt.Sprintf("Payroll processed successfully for %d employees", len(result.Entries)),
		PeriodID:       result.PeriodID,
		EntriesCreated: len(result.Entries),
		TotalHours:     payroll.Money(result.TotalHours),
		TotalPay:       payroll.Money(result.TotalPay),
	}, nil
}

// GetOwnEntries lists the caller's entries, newest first.
func (r Repository) GetOwnEntries(ctx context.Context) ([]entity.PayrollEntry, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	list := []entity.PayrollEntry{}
	err = r.NewSelect().Model(&list).Where("user_id = ?", claims.UserId).Order("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting payroll entries"), http.StatusInternalServerError)
	}

	return list, nil
}

func (r Repository) GetPeriods(ctx context.Context) ([]entity.PayrollPeriod, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return nil, err
	}

	list := []entity.PayrollPeriod{}
	err = r.NewSelect().Model(&list).Where("branch_id = ?", claims.BranchId).Order("start_date DESC").Scan(ctx)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting payroll periods"), http.StatusInternalServerError)
	}

	return list, nil
}

// GetCurrentPeriod returns the latest open period of the caller's branch, or
// nil when there is none.
func (r Repository) GetCurrentPeriod(ctx context.Context) (*entity.PayrollPeriod, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	var period entity.PayrollPeriod
	err = r.NewSelect().
		Model(&period).
		Where("branch_id = ?", claims.BranchId).
		Where("status = ?", entity.PeriodOpen).
		Order("start_date DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting current period"), http.StatusInternalServerError)
	}

	return &period, nil
}

func (r Repository) CreatePeriod(ctx context.Context, request CreatePeriodRequest) (entity.PayrollPeriod, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return entity.PayrollPeriod{}, err
	}

	if err := r.ValidateStruct(&request, "StartDate", "EndDate"); err != nil {
		return entity.PayrollPeriod{}, err
	}
	if !request.EndDate.After(request.StartDate) {
		return entity.PayrollPeriod{}, web.NewRequestError(errors.New("end date must be after start date"), http.StatusBadRequest)
	}

	response := entity.PayrollPeriod{
		BasicEntity: entity.BasicEntity{ID: postgres.NewID(), CreatedAt: time.Now()},
		BranchID:    claims.BranchId,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
		Status:      entity.PeriodOpen,
	}

	if _, err := r.NewInsert().Model(&response).Exec(ctx); err != nil {
		return entity.PayrollPeriod{}, web.NewRequestError(errors.Wrap(err, "creating payroll period"), http.StatusInternalServerError)
	}

	return response, nil
}

// GetBranchEntries lists the entries of the branch's active employees,
// optionally for one period.
func (r Repository) GetBranchEntries(ctx context.Context, filter Filter) ([]EntryResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return nil, err
	}

	return r.branchEntries(ctx, claims.BranchId, filter, true)
}

func (r Repository) Approve(ctx context.Context, id string) (entity.PayrollEntry, error) {
	return r.transition(ctx, id, payroll.ActionApprove)
}

func (r Repository) MarkPaid(ctx context.Context, id string) (entity.PayrollEntry, error) {
	return r.transition(ctx, id, payroll.ActionPay)
}

func (r Repository) transition(ctx context.Context, id, action string) (entity.PayrollEntry, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return entity.PayrollEntry{}, err
	}

	var entry entity.PayrollEntry
	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&entry).
			Where("id = ?", id).
			Where("user_id IN (SELECT id FROM users WHERE branch_id = ?)", claims.BranchId).
			For("UPDATE").
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return postgres.ErrNotFound
		}
		if err != nil {
			return errors.Wrap(err, "selecting payroll entry")
		}

		next, err := payroll.NextEntryStatus(entry.Status, action)
		if err != nil {
			return err
		}

		entry.Status = next
		_, err = tx.NewUpdate().Model(&entry).Column("status").WherePK().Exec(ctx)
		return errors.Wrap(err, "updating payroll entry")
	})

	switch {
	case errors.Is(err, postgres.ErrNotFound):
		return entity.PayrollEntry{}, web.NewRequestError(errors.New("payroll entry not found"), http.StatusNotFound)
	case errors.Is(err, payroll.ErrInvalidTransition):
		return entity.PayrollEntry{}, web.NewRequestError(err, http.StatusBadRequest)
	case err != nil:
		return entity.PayrollEntry{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	return entry, nil
}

// GetPayslip returns the slip of an entry owned by the caller, or of any
// entry of the caller's branch for managers.
func (r Repository) GetPayslip(ctx context.Context, entryID string) (payslip.Payslip, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return payslip.Payslip{}, err
	}

	entry, employee, period, err := r.entryDetail(ctx, entryID)
	if err != nil {
		return payslip.Payslip{}, err
	}
	if entry.UserID != claims.UserId && !(claims.IsManager() && employee.BranchID == claims.BranchId) {
		return payslip.Payslip{}, web.NewRequestError(errors.New("payroll entry not found"), http.StatusNotFound)
	}

	var branch entity.Branch
	if err := r.NewSelect().Model(&branch).Where("id = ?", employee.BranchID).Scan(ctx); err != nil {
		return payslip.Payslip{}, postgres.NotFound(err, "branch")
	}

	return payslip.Payslip{
		EntryID:         entry.ID,
		EmployeeID:      employee.ID,
		EmployeeName:    employee.FullName(),
		Position:        employee.Position,
		BranchName:      branch.Name,
		PeriodStart:     period.StartDate,
		PeriodEnd:       period.EndDate,
		HourlyRate:      employee.HourlyRate,
		TotalHours:      entry.TotalHours,
		RegularHours:    entry.RegularHours,
		OvertimeHours:   entry.OvertimeHours,
		GrossPay:        entry.GrossPay,
		Deductions:      entry.Deductions,
		NetPay:          entry.NetPay,
		Status:          entry.Status,
		Verified:        entry.Verified,
		BlockchainHash:  entry.BlockchainHash,
		BlockNumber:     entry.BlockNumber,
		TransactionHash: entry.TransactionHash,
		GeneratedAt:     time.Now(),
	}, nil
}

// GetPayslipPDF renders the same slip as a PDF.
func (r Repository) GetPayslipPDF(ctx context.Context, entryID string) ([]byte, error) {
	slip, err := r.GetPayslip(ctx, entryID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := payslip.Render(&buf, slip, r.currency); err != nil {
		return nil, web.NewRequestError(err, http.StatusInternalServerError)
	}

	return buf.Bytes(), nil
}

// Send notifies the employee about their slip. Nothing else changes.
func (r Repository) Send(ctx context.Context, entryID string) error {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return err
	}

	entry, employee, _, err := r.entryDetail(ctx, entryID)
	if err != nil {
		return err
	}
	if employee.BranchID != claims.BranchId {
		return web.NewRequestError(auth.ErrForbidden, http.StatusForbidden)
	}

	message := fmt.Sprintf("Your payslip has been sent by your manager. Net Pay: %s%s", r.currency, payroll.Money(entry.NetPay))
	data := map[string]any{"entryId": entry.ID, "netPay": payroll.Money(entry.NetPay)}
	if _, err := postgres.Notify(ctx, r.DB, entry.UserID, entity.NotificationPayroll, "Payslip Sent", message, data); err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return nil
}

// Export renders the entries of one period of the caller's branch.
func (r Repository) Export(ctx context.Context, periodID string) ([]byte, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return nil, err
	}

	var period entity.PayrollPeriod
	err = r.NewSelect().Model(&period).Where("id = ?", periodID).Where("branch_id = ?", claims.BranchId).Scan(ctx)
	if err != nil {
		return nil, postgres.NotFound(err, "payroll period")
	}

	entries, err := r.branchEntries(ctx, claims.BranchId, Filter{PeriodID: &periodID}, false)
	if err != nil {
		return nil, err
	}

	rows := make([]excel.PayrollRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, excel.PayrollRow{
			EmployeeName:  e.Employee.FirstName + " " + e.Employee.LastName,
			Position:      e.Employee.Position,
			HourlyRate:    e.Employee.HourlyRate,
			TotalHours:    e.TotalHours,
			RegularHours:  e.RegularHours,
			OvertimeHours: e.OvertimeHours,
			GrossPay:      e.GrossPay,
			Deductions:    e.Deductions,
			NetPay:        e.NetPay,
			Status:        e.Status,
			Verified:      e.Verified,
		})
	}

	data, err := excel.PayrollWorkbook(period, rows)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "exporting payroll"), http.StatusInternalServerError)
	}

	return data, nil
}

// LedgerRecord is the hashed view of an entry; the blockchain endpoints share
// it.
func LedgerRecord(entry entity.PayrollEntry, employee entity.User, period entity.PayrollPeriod) ledger.Record {
	return ledger.Record{
		EntryID:       entry.ID,
		EmployeeID:    employee.ID,
		EmployeeName:  employee.FullName(),
		PeriodStart:   period.StartDate,
		PeriodEnd:     period.EndDate,
		TotalHours:    entry.TotalHours,
		RegularHours:  entry.RegularHours,
		OvertimeHours: entry.OvertimeHours,
		HourlyRate:    employee.HourlyRate,
		GrossPay:      entry.GrossPay,
		Deductions:    entry.Deductions,
		NetPay:        entry.NetPay,
	}
}

func (r Repository) entryDetail(ctx context.Context, entryID string) (entity.PayrollEntry, entity.User, entity.PayrollPeriod, error) {
	var (
		entry    entity.PayrollEntry
		employee entity.User
		period   entity.PayrollPeriod
	)

	if err := r.NewSelect().Model(&entry).Where("id = ?", entryID).Scan(ctx); err != nil {
		return entry, employee, period, postgres.NotFound(err, "payroll entry")
	}
	if err := r.NewSelect().Model(&employee).Where("id = ?", entry.UserID).Scan(ctx); err != nil {
		return entry, employee, period, postgres.NotFound(err, "employee")
	}
	if err := r.NewSelect().Model(&period).Where("id = ?", entry.PayrollPeriodID).Scan(ctx); err != nil {
		return entry, employee, period, postgres.NotFound(err, "payroll period")
	}

	return entry, employee, period, nil
}

func (r Repository) branchEntries(ctx context.Context, branchID string, filter Filter, activeOnly bool) ([]EntryResponse, error) {
	users, err := postgres.BranchUsers(ctx, r.DB, branchID)
	if err != nil {
		return nil, web.NewRequestError(err, http.StatusInternalServerError)
	}

	byID := make(map[string]entity.User, len(users))
	ids := make([]string, 0, len(users))
	for _, u := range users {
		if activeOnly && !u.IsActive {
			continue
		}
		byID[u.ID] = u
		ids = append(ids, u.ID)
	}

	list := []EntryResponse{}
	if len(ids) == 0 {
		return list, nil
	}

	var entries []entity.PayrollEntry
	q := r.NewSelect().Model(&entries).Where("user_id IN (?)", bun.In(ids))
	if filter.PeriodID != nil {
		q.Where("payroll_period_id = ?", *filter.PeriodID)
	}
	if err := q.Order("created_at DESC").Scan(ctx); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting payroll entries"), http.StatusInternalServerError)
	}

	for _, e := range entries {
		u := byID[e.UserID]
		list = append(list, EntryResponse{
			PayrollEntry: e,
			Employee: Employee{
				ID:         u.ID,
				FirstName:  u.FirstName,
				LastName:   u.LastName,
				Position:   u.Position,
				Email:      u.Email,
				HourlyRate: u.HourlyRate,
			},
		})
	}

	return list, nil
}
