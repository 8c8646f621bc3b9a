package workforce

import (
	"testing"
	"time"

	"cafeshift/backend/internal/entity"
)

func at(month time.Month, d, hour, min int) time.Time {
	return time.Date(2024, month, d, hour, min, 0, 0, time.UTC)
}

func withStatus(status string) entity.Shift {
	return entity.Shift{StartTime: at(3, 1, 9, 0), EndTime: at(3, 1, 17, 0), Status: status}
}

func TestPerformanceRating(t *testing.T) {
	cases := []struct {
		name   string
		shifts []entity.Shift
		want   float64
	}{
		{"no shifts", nil, 5},
		{"perfect attendance", []entity.Shift{withStatus("completed"), withStatus("completed")}, 5},
		{"one of four missed", []entity.Shift{withStatus("completed"), withStatus("completed"), withStatus("completed"), withStatus("missed")}, 4.5},
		{"all missed", []entity.Shift{withStatus("missed"), withStatus("missed")}, 3},
		{"scheduled only", []entity.Shift{withStatus("scheduled")}, 5},
		{"one of three missed", []entity.Shift{withStatus("scheduled"), withStatus("scheduled"), withStatus("missed")}, 4.3},
	}

	for _, tt := range cases {
		if got := PerformanceRating(tt.shifts); got != tt.want {
			t.Fatalf("%s: PerformanceRating()=%v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAveragePerformance(t *testing.T) {
	got := AveragePerformance(map[string][]entity.Shift{
		"a": {withStatus("completed"), withStatus("completed")},
		"b": {withStatus("completed"), withStatus("missed")},
		"c": nil,
	})
	if got != 3.8 {
		t.Fatalf("AveragePerformance()=%v, want 3.8", got)
	}

	if got := AveragePerformance(nil); got != 0 {
		t.Fatalf("AveragePerformance(nil)=%v, want 0", got)
	}
}

func TestIsLate(t *testing.T) {
	s := entity.Shift{StartTime: at(3, 1, 9, 0), EndTime: at(3, 1, 17, 0)}
	if IsLate(s) {
		t.Fatalf("shift without clock-in is not late")
	}

	onTime := at(3, 1, 9, 15)
	s.ActualStartTime = &onTime
	if IsLate(s) {
		t.Fatalf("15 minutes is still on time")
	}

	late := at(3, 1, 9, 16)
	s.ActualStartTime = &late
	if !IsLate(s) {
		t.Fatalf("16 minutes must be late")
	}
}

func TestEstimatedRevenue(t *testing.T) {
	shifts := []entity.Shift{
		{UserID: "a", StartTime: at(3, 1, 9, 0), EndTime: at(3, 1, 13, 0), Status: "completed"},
		{UserID: "b", StartTime: at(3, 1, 9, 0), EndTime: at(3, 1, 17, 0), Status: "in-progress"},
		{UserID: "c", StartTime: at(3, 1, 9, 0), EndTime: at(3, 1, 11, 0), Status: "completed"},
	}
	rates := map[string]float64{"a": 10, "b": 20, "c": 12.5}

	if got := EstimatedRevenue(shifts, rates); got != 195 {
		t.Fatalf("EstimatedRevenue()=%v, want 195", got)
	}
}

func TestStatus(t *testing.T) {
	if status, _ := Status(nil); status != "Off Duty" {
		t.Fatalf("nil shift status = %q", status)
	}

	s := withStatus("scheduled")
	status, info := Status(&s)
	if status != "Scheduled" || info != "9:00 AM - 5:00 PM" {
		t.Fatalf("scheduled = %q %q", status, info)
	}

	in := at(3, 1, 9, 5)
	s.Status = "in-progress"
	s.ActualStartTime = &in
	if status, info := Status(&s); status != "Clocked In" || info != "Since 9:05 AM" {
		t.Fatalf("in-progress = %q %q", status, info)
	}
}

func TestLeaveBalance(t *testing.T) {
	requests := []entity.TimeOffRequest{
		{Type: "vacation", Status: "approved", StartDate: at(2, 5, 0, 0), EndDate: at(2, 9, 0, 0)},
		{Type: "vacation", Status: "pending", StartDate: at(3, 5, 0, 0), EndDate: at(3, 9, 0, 0)},
		{Type: "sick", Status: "approved", StartDate: at(4, 1, 0, 0), EndDate: at(4, 1, 0, 0)},
		{Type: "personal", Status: "rejected", StartDate: at(4, 2, 0, 0), EndDate: at(4, 3, 0, 0)},
		{Type: "vacation", Status: "approved", StartDate: time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC), EndDate: at(1, 2, 0, 0)},
	}

	b := LeaveBalance(requests, 2024)

	if b.Vacation != 10 || b.Sick != 9 || b.Personal != 5 {
		t.Fatalf("balance = %+v", b)
	}
	if b.Used["vacation"] != 5 || b.Used["sick"] != 1 || b.Used["personal"] != 0 {
		t.Fatalf("used = %+v", b.Used)
	}
	if b.Allowance["vacation"] != 15 || b.Allowance["sick"] != 10 || b.Allowance["personal"] != 5 {
		t.Fatalf("allowance = %+v", b.Allowance)
	}
}

func TestBuildHoursReport(t *testing.T) {
	employees := []entity.User{
		{BasicEntity: entity.BasicEntity{ID: "a"}, FirstName: "Ana", LastName: "Cruz", HourlyRate: 10},
		{BasicEntity: entity.BasicEntity{ID: "b"}, FirstName: "Ben", LastName: "Reyes", HourlyRate: 20},
	}
	shifts := []entity.Shift{
		{UserID: "a", StartTime: at(3, 2, 9, 0), EndTime: at(3, 2, 13, 0)},
		{UserID: "a", StartTime: at(3, 2, 15, 0), EndTime: at(3, 2, 17, 0)},
		{UserID: "a", StartTime: at(3, 1, 9, 0), EndTime: at(3, 1, 12, 30)},
	}

	r := BuildHoursReport(employees, shifts, at(3, 1, 0, 0), at(3, 7, 0, 0))

	if r.StartDate != "2024-03-01" || r.EndDate != "2024-03-07" {
		t.Fatalf("range = %s..%s", r.StartDate, r.EndDate)
	}
	if len(r.Employees) != 2 {
		t.Fatalf("employees = %d", len(r.Employees))
	}

	ana := r.Employees[0]
	if ana.TotalHours != 9.5 || ana.TotalShifts != 3 || ana.EstimatedPay != 95 {
		t.Fatalf("ana = %+v", ana)
	}
	if len(ana.HoursByDay) != 2 || ana.HoursByDay[0].Date != "2024-03-01" || ana.HoursByDay[1].Hours != 6 {
		t.Fatalf("ana by day = %+v", ana.HoursByDay)
	}

	if r.Employees[1].TotalHours != 0 || len(r.Employees[1].HoursByDay) != 0 {
		t.Fatalf("ben = %+v", r.Employees[1])
	}
	if r.Summary.TotalHours != 9.5 || r.Summary.TotalShifts != 3 || r.Summary.EmployeeCount != 2 || r.Summary.TotalPay != 95 {
		t.Fatalf("summary = %+v", r.Summary)
	}
}

func TestMonthlyHours(t *testing.T) {
	now := at(6, 15, 12, 0)
	shifts := []entity.Shift{
		{StartTime: at(1, 10, 9, 0), EndTime: at(1, 10, 17, 0)},
		{StartTime: at(6, 1, 9, 0), EndTime: at(6, 1, 13, 0)},
		{StartTime: time.Date(2023, 12, 1, 9, 0, 0, 0, time.UTC), EndTime: time.Date(2023, 12, 1, 17, 0, 0, 0, time.UTC)},
	}

	months := MonthlyHours(shifts, 10, now)
	if len(months) != 6 || months[0].Name != "Jan" || months[5].Name != "Jun" {
		t.Fatalf("months = %+v", months)
	}
	if months[0].Hours != 8 || months[0].Sales != 240 {
		t.Fatalf("january = %+v", months[0])
	}
	if months[5].Hours != 4 {
		t.Fatalf("june = %+v", months[5])
	}
}
