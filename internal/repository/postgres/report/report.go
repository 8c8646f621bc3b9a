// Package report serves the read-only aggregates behind the reports,
// dashboard and hours pages.
package report

import (
	"context"
	"net/http"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/auth"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/pkg/repository/postgresql"
	"cafeshift/backend/internal/repository/postgres"
	"cafeshift/backend/internal/service/excel"
	"cafeshift/backend/internal/service/workforce"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
	now func() time.Time
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database, now: time.Now}
}

// Payroll is the gross pay of the branch's entries created this month.
func (r Repository) Payroll(ctx context.Context) (PayrollResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return PayrollResponse{}, err
	}

	from, to := workforce.MonthRange(r.now())

	var total float64
	err = r.NewSelect().
		Table("payroll_entries").
		ColumnExpr("COALESCE(SUM(gross_pay), 0)").
		Where("user_id IN (SELECT id FROM users WHERE branch_id = ?)", claims.BranchId).
		Where("created_at >= ?", from).
		Where("created_at < ?", to).
		Scan(ctx, &total)
	if err != nil {
		return PayrollResponse{}, web.NewRequestError(errors.Wrap(err, "summing payroll"), http.StatusInternalServerError)
	}

	return PayrollResponse{TotalPayroll: workforce.Round(total, 2)}, nil
}

// Attendance is the scheduled hours of this month's shifts.
func (r Repository) Attendance(ctx context.Context) (AttendanceResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return AttendanceResponse{}, err
	}

	shifts, err := r.monthShifts(ctx, claims.BranchId)
	if err != nil {
		return AttendanceResponse{}, err
	}

	return AttendanceResponse{TotalHours: workforce.Round(workforce.ScheduledHours(shifts), 2)}, nil
}

func (r Repository) Shifts(ctx context.Context) (ShiftsResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return ShiftsResponse{}, err
	}

	shifts, err := r.monthShifts(ctx, claims.BranchId)
	if err != nil {
		return ShiftsResponse{}, err
	}

	return ShiftsResponse{
		TotalShifts:     len(shifts),
		CompletedShifts: workforce.CountStatus(shifts, entity.ShiftCompleted),
		MissedShifts:    workforce.CountStatus(shifts, entity.ShiftMissed),
		CancelledShifts: workforce.CountStatus(shifts, entity.ShiftCancelled),
	}, nil
}

func (r Repository) Employees(ctx context.Context) (EmployeesResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return EmployeesResponse{}, err
	}

	users, err := postgres.BranchUsers(ctx, r.DB, claims.BranchId)
	if err != nil {
		return EmployeesResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	active := 0
	for _, u := range users {
		if u.IsActive {
			active++
		}
	}

	return EmployeesResponse{
		ActiveCount:   active,
		TotalCount:    len(users),
		InactiveCount: len(users) - active,
	}, nil
}

// DashboardStats summarizes today's shifts of the branch.
func (r Repository) DashboardStats(ctx context.Context) (StatsResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return StatsResponse{}, err
	}

	from, to := workforce.DayRange(r.now())
	shifts, err := postgres.ShiftsByBranch(ctx, r.DB, claims.BranchId, from, to)
	if err != nil {
		return StatsResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	users, err := postgres.BranchUsers(ctx, r.DB, claims.BranchId)
	if err != nil {
		return StatsResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}
	rates := make(map[string]float64, len(users))
	for _, u := range users {
		rates[u.ID] = u.HourlyRate
	}

	stats := DashboardStats{
		ClockedIn: workforce.CountStatus(shifts, entity.ShiftInProgress),
		Revenue:   workforce.EstimatedRevenue(shifts, rates),
	}
	for _, s := range shifts {
		if workforce.IsLate(s) {
			stats.Late++
		}
	}

	return StatsResponse{Stats: stats}, nil
}

// EmployeeStatus lists every active employee with where they stand today.
func (r Repository) EmployeeStatus(ctx context.Context) (EmployeeStatusResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return EmployeeStatusResponse{}, err
	}

	users, err := postgres.BranchUsers(ctx, r.DB, claims.BranchId)
	if err != nil {
		return EmployeeStatusResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	from, to := workforce.DayRange(r.now())
	shifts, err := postgres.ShiftsByBranch(ctx, r.DB, claims.BranchId, from, to)
	if err != nil {
		return EmployeeStatusResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	// first shift of the day per employee
	today := make(map[string]*entity.Shift)
	for i := range shifts {
		if _, ok := today[shifts[i].UserID]; !ok {
			today[shifts[i].UserID] = &shifts[i]
		}
	}

	list := []EmployeeStatus{}
	for _, u := range users {
		if !u.IsActive {
			continue
		}
		status, info := workforce.Status(today[u.ID])
		list = append(list, EmployeeStatus{
			User:       StatusUser{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Position: u.Position},
			Status:     status,
			StatusInfo: info,
		})
	}

	return EmployeeStatusResponse{EmployeeStatus: list}, nil
}

// Performance is the caller's own six month chart and current month.
func (r Repository) Performance(ctx context.Context) (PerformanceResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return PerformanceResponse{}, err
	}

	var user entity.User
	if err := r.NewSelect().Model(&user).Where("id = ?", claims.UserId).Scan(ctx); err != nil {
		return PerformanceResponse{}, postgres.NotFound(err, "user")
	}

	now := r.now()
	monthStart, monthEnd := workforce.MonthRange(now)
	from := monthStart.AddDate(0, -5, 0)

	var shifts []entity.Shift
	err = r.NewSelect().
		Model(&shifts).
		Where("user_id = ?", user.ID).
		Where("start_time >= ?", from).
		Where("start_time < ?", monthEnd).
		Scan(ctx)
	if err != nil {
		return PerformanceResponse{}, web.NewRequestError(errors.Wrap(err, "selecting shifts"), http.StatusInternalServerError)
	}

	var current []entity.Shift
	for _, s := range shifts {
		if !s.StartTime.Before(monthStart) {
			current = append(current, s)
		}
	}

	hours := workforce.ScheduledHours(current)
	completed := workforce.CountStatus(current, entity.ShiftCompleted)
	var rate float64
	if len(current) > 0 {
		rate = float64(completed) / float64(len(current)) * 100
	}

	return PerformanceResponse{
		MonthlyData: workforce.MonthlyHours(shifts, user.HourlyRate, now),
		CurrentMonth: CurrentMonth{
			Hours:           workforce.Round(hours, 2),
			Sales:           workforce.Round(hours*user.HourlyRate*workforce.RevenueFactor, 2),
			ShiftsCompleted: completed,
			TotalShifts:     len(current),
			CompletionRate:  workforce.Round(rate, 1),
		},
	}, nil
}

// Hours builds the hours report. Managers see their branch, optionally one
// employee; everyone else only sees themselves. The range defaults to the
// current month and the end date is inclusive.
func (r Repository) Hours(ctx context.Context, filter HoursFilter) (workforce.HoursReport, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return workforce.HoursReport{}, err
	}

	start, end := workforce.MonthRange(r.now())
	end = end.AddDate(0, 0, -1)
	if filter.StartDate != nil {
		start = *filter.StartDate
	}
	if filter.EndDate != nil {
		end = *filter.EndDate
	}
	if end.Before(start) {
		return workforce.HoursReport{}, web.NewRequestError(errors.New("end date must not be before start date"), http.StatusBadRequest)
	}

	users, err := postgres.BranchUsers(ctx, r.DB, claims.BranchId)
	if err != nil {
		return workforce.HoursReport{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	employeeID := filter.EmployeeID
	if !claims.IsManager() {
		employeeID = &claims.UserId
	}

	var employees []entity.User
	for _, u := range users {
		if employeeID != nil && u.ID != *employeeID {
			continue
		}
		if employeeID == nil && !u.IsActive {
			continue
		}
		employees = append(employees, u)
	}
	if employeeID != nil && len(employees) == 0 {
		return workforce.HoursReport{}, web.NewRequestError(errors.New("employee not found"), http.StatusNotFound)
	}

	from, _ := workforce.DayRange(start)
	_, to := workforce.DayRange(end)
	shifts, err := postgres.ShiftsByBranch(ctx, r.DB, claims.BranchId, from, to)
	if err != nil {
		return workforce.HoursReport{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	return workforce.BuildHoursReport(employees, shifts, start, end), nil
}

// HoursExport is the hours report as a workbook.
func (r Repository) HoursExport(ctx context.Context, filter HoursFilter) ([]byte, error) {
	report, err := r.Hours(ctx, filter)
	if err != nil {
		return nil, err
	}

	data, err := excel.HoursWorkbook(report)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "exporting hours"), http.StatusInternalServerError)
	}

	return data, nil
}

func (r Repository) monthShifts(ctx context.Context, branchID string) ([]entity.Shift, error) {
	from, to := workforce.MonthRange(r.now())
	shifts, err := postgres.ShiftsByBranch(ctx, r.DB, branchID, from, to)
	if err != nil {
		return nil, web.NewRequestError(err, http.StatusInternalServerError)
	}
	return shifts, nil
}
