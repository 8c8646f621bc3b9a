package report

import (
	"context"

	"cafeshift/backend/internal/repository/postgres/report"
	"cafeshift/backend/internal/service/workforce"
)

type Report interface {
	Payroll(ctx context.Context) (report.PayrollResponse, error)
	Attendance(ctx context.Context) (report.AttendanceResponse, error)
	Shifts(ctx context.Context) (report.ShiftsResponse, error)
	Employees(ctx context.Context) (report.EmployeesResponse, error)
	DashboardStats(ctx context.Context) (report.StatsResponse, error)
	EmployeeStatus(ctx context.Context) (report.EmployeeStatusResponse, error)
	Performance(ctx context.Context) (report.PerformanceResponse, error)
	Hours(ctx context.Context, filter report.HoursFilter) (workforce.HoursReport, error)
	HoursExport(ctx context.Context, filter report.HoursFilter) ([]byte, error)
}
