package report

import (
	"time"

	"cafeshift/backend/internal/service/workforce"
)

type HoursFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	EmployeeID *string
}

type PayrollResponse struct {
	TotalPayroll float64 `json:"totalPayroll"`
}

type AttendanceResponse struct {
	TotalHours float64 `json:"totalHours"`
}

type ShiftsResponse struct {
	TotalShifts     int `json:"totalShifts"`
	CompletedShifts int `json:"completedShifts"`
	MissedShifts    int `json:"missedShifts"`
	CancelledShifts int `json:"cancelledShifts"`
}

type EmployeesResponse struct {
	ActiveCount   int `json:"activeCount"`
	TotalCount    int `json:"totalCount"`
	InactiveCount int `json:"inactiveCount"`
}

type DashboardStats struct {
	ClockedIn int     `json:"clockedIn"`
	OnBreak   int     `json:"onBreak"`
	Late      int     `json:"late"`
	Revenue   float64 `json:"revenue"`
}

type StatsResponse struct {
	Stats DashboardStats `json:"stats"`
}

type StatusUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Position  string `json:"position"`
}

type EmployeeStatus struct {
	User       StatusUser `json:"user"`
	Status     string     `json:"status"`
	StatusInfo string     `json:"statusInfo"`
}

type EmployeeStatusResponse struct {
	EmployeeStatus []EmployeeStatus `json:"employeeStatus"`
}

type CurrentMonth struct {
	Hours           float64 `json:"hours"`
	Sales           float64 `json:"sales"`
	ShiftsCompleted int     `json:"shiftsCompleted"`
	TotalShifts     int     `json:"totalShifts"`
	CompletionRate  float64 `json:"completionRate"`
}

type PerformanceResponse struct {
	MonthlyData  []workforce.MonthHours `json:"monthlyData"`
	CurrentMonth CurrentMonth           `json:"currentMonth"`
}
