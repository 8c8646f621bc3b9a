// Package workforce holds the scheduling arithmetic behind the employee,
// dashboard and time off endpoints.
package workforce

import (
	"math"
	"sort"
	"time"

	"cafeshift/backend/internal/entity"
)

const (
	// LateAfter is how far past the scheduled start a clock-in counts as late.
	LateAfter = 15 * time.Minute
	// RevenueFactor estimates sales as a multiple of labor cost.
	RevenueFactor = 3.0
)

// Yearly time off allowances in days.
var Allowances = map[string]int{
	entity.LeaveVacation: 15,
	entity.LeaveSick:     10,
	entity.LeavePersonal: 5,
}

// Round rounds v to the given number of decimals.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// MonthRange returns the first instant of t's month and the first instant of
// the next month.
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// DayRange returns midnight of t and midnight of the following day.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// ScheduledHours sums the scheduled length of the shifts.
func ScheduledHours(shifts []entity.Shift) float64 {
	var total float64
	for _, s := range shifts {
		total += s.ScheduledHours()
	}
	return total
}

// CountStatus counts shifts in the given status.
func CountStatus(shifts []entity.Shift, status string) int {
	n := 0
	for _, s := range shifts {
		if s.Status == status {
			n++
		}
	}
	return n
}

// PerformanceRating is 5 minus two points scaled by the share of missed
// shifts, 5 with perfect attendance or no shifts, clamped to [0, 5] and
// rounded to one decimal.
func PerformanceRating(shifts []entity.Shift) float64 {
	total := len(shifts)
	if total == 0 {
		return 5
	}

	completed := CountStatus(shifts, entity.ShiftCompleted)
	if completed == total {
		return 5
	}

	missed := CountStatus(shifts, entity.ShiftMissed)
	rating := 5 - float64(missed)/float64(total)*2

	return Round(math.Max(0, math.Min(5, rating)), 1)
}

// AveragePerformance averages completed/total×5 over the employees that have
// shifts, rounded to one decimal. Zero when nobody has shifts.
func AveragePerformance(shiftsByEmployee map[string][]entity.Shift) float64 {
	var sum float64
	n := 0
	for _, shifts := range shiftsByEmployee {
		if len(shifts) == 0 {
			continue
		}
		sum += float64(CountStatus(shifts, entity.ShiftCompleted)) / float64(len(shifts)) * 5
		n++
	}
	if n == 0 {
		return 0
	}
	return Round(sum/float64(n), 1)
}

// IsLate reports a clock-in more than LateAfter past the scheduled start.
func IsLate(s entity.Shift) bool {
	if s.ActualStartTime == nil {
		return false
	}
	return s.ActualStartTime.Sub(s.StartTime) > LateAfter
}

// EstimatedRevenue is the revenue estimate of the completed shifts, given
// each employee's hourly rate.
func EstimatedRevenue(shifts []entity.Shift, rates map[string]float64) float64 {
	var revenue float64
	for _, s := range shifts {
		if s.Status != entity.ShiftCompleted {
			continue
		}
		rate, ok := rates[s.UserID]
		if !ok {
			continue
		}
		revenue += s.ScheduledHours() * rate * RevenueFactor
	}
	return Round(revenue, 2)
}

const clock = "3:04 PM"

// Status describes where an employee stands today given their shift, which
// may be nil.
func Status(s *entity.Shift) (status, info string) {
	if s == nil {
		return "Off Duty", ""
	}

	switch s.Status {
	case entity.ShiftInProgress:
		if s.ActualStartTime != nil {
			return "Clocked In", "Since " + s.ActualStartTime.Format(clock)
		}
		return "Clocked In", ""
	case entity.ShiftCompleted:
		if s.ActualStartTime != nil && s.ActualEndTime != nil {
			return "Completed", "Worked " + s.ActualStartTime.Format(clock) + " - " + s.ActualEndTime.Format(clock)
		}
		return "Completed", ""
	case entity.ShiftScheduled:
		return "Scheduled", s.StartTime.Format(clock) + " - " + s.EndTime.Format(clock)
	}

	return "Off Duty", ""
}

// Balance is the remaining time off per type for one year.
type Balance struct {
	Vacation  int            `json:"vacation"`
	Sick      int            `json:"sick"`
	Personal  int            `json:"personal"`
	Used      map[string]int `json:"used"`
	Allowance map[string]int `json:"allowance"`
}

// LeaveBalance counts the inclusive days of approved requests that start in
// year and subtracts them from the allowances.
func LeaveBalance(requests []entity.TimeOffRequest, year int) Balance {
	used := map[string]int{
		entity.LeaveVacation: 0,
		entity.LeaveSick:     0,
		entity.LeavePersonal: 0,
	}

	for _, r := range requests {
		if r.Status != entity.LeaveApproved || r.StartDate.Year() != year {
			continue
		}
		if _, ok := used[r.Type]; ok {
			used[r.Type] += r.Days()
		}
	}

	allowance := make(map[string]int, len(Allowances))
	for k, v := range Allowances {
		allowance[k] = v
	}

	return Balance{
		Vacation:  allowance[entity.LeaveVacation] - used[entity.LeaveVacation],
		Sick:      allowance[entity.LeaveSick] - used[entity.LeaveSick],
		Personal:  allowance[entity.LeavePersonal] - used[entity.LeavePersonal],
		Used:      used,
		Allowance: allowance,
	}
}

// DayHours is the worked time of one calendar day.
type DayHours struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// EmployeeHours is one row of the hours report.
type EmployeeHours struct {
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName"`
	Position     string     `json:"position"`
	HourlyRate   float64    `json:"hourlyRate"`
	TotalHours   float64    `json:"totalHours"`
	TotalShifts  int        `json:"totalShifts"`
	EstimatedPay float64    `json:"estimatedPay"`
	HoursByDay   []DayHours `json:"hoursByDay"`
}

type HoursSummary struct {
	TotalHours    float64 `json:"totalHours"`
	TotalPay      float64 `json:"totalPay"`
	TotalShifts   int     `json:"totalShifts"`
	EmployeeCount int     `json:"employeeCount"`
}

type HoursReport struct {
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Employees []EmployeeHours `json:"employees"`
	Summary   HoursSummary    `json:"summary"`
}

// BuildHoursReport groups the shifts by employee and scheduled start day.
// Employees without shifts are listed with zero hours.
func BuildHoursReport(employees []entity.User, shifts []entity.Shift, start, end time.Time) HoursReport {
	byUser := make(map[string][]entity.Shift)
	for _, s := range shifts {
		byUser[s.UserID] = append(byUser[s.UserID], s)
	}

	report := HoursReport{
		StartDate: start.Format(time.DateOnly),
		EndDate:   end.Format(time.DateOnly),
		Employees: make([]EmployeeHours, 0, len(employees)),
	}

	for _, u := range employees {
		row := EmployeeHours{
			EmployeeID:   u.ID,
			EmployeeName: u.FullName(),
			Position:     u.Position,
			HourlyRate:   u.HourlyRate,
			HoursByDay:   []DayHours{},
		}

		days := make(map[string]float64)
		for _, s := range byUser[u.ID] {
			h := s.WorkedHours()
			days[s.StartTime.Format(time.DateOnly)] += h
			row.TotalHours += h
			row.TotalShifts++
		}

		keys := make([]string, 0, len(days))
		for k := range days {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			row.HoursByDay = append(row.HoursByDay, DayHours{Date: k, Hours: Round(days[k], 2)})
		}

		row.TotalHours = Round(row.TotalHours, 2)
		row.EstimatedPay = Round(row.TotalHours*u.HourlyRate, 2)

		report.Employees = append(report.Employees, row)
		report.Summary.TotalHours += row.TotalHours
		report.Summary.TotalPay += row.EstimatedPay
		report.Summary.TotalShifts += row.TotalShifts
	}

	report.Summary.TotalHours = Round(report.Summary.TotalHours, 2)
	report.Summary.TotalPay = Round(report.Summary.TotalPay, 2)
	report.Summary.EmployeeCount = len(report.Employees)

	return report
}

// MonthHours is one month of the personal performance chart.
type MonthHours struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
	Sales float64 `json:"sales"`
}

// MonthlyHours buckets scheduled hours into the six months ending with now's
// month, oldest first.
func MonthlyHours(shifts []entity.Shift, rate float64, now time.Time) []MonthHours {
	first, _ := MonthRange(now)
	first = first.AddDate(0, -5, 0)

	out := make([]MonthHours, 6)
	for i := range out {
		out[i].Name = first.AddDate(0, i, 0).Format("Jan")
	}

	for _, s := range shifts {
		start := s.StartTime.In(now.Location())
		i := (start.Year()-first.Year())*12 + int(start.Month()) - int(first.Month())
		if i < 0 || i >= len(out) {
			continue
		}
		out[i].Hours += s.ScheduledHours()
	}

	for i := range out {
		out[i].Sales = Round(out[i].Hours*rate*RevenueFactor, 2)
		out[i].Hours = Round(out[i].Hours, 2)
	}

	return out
}
