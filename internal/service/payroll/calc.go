// Package payroll computes pay for a payroll period and drives the period
// and entry state changes.
package payroll

import (
	"math"
	"time"

	"cafeshift/backend/internal/entity"
)

const (
	RegularHoursPerWeek = 40.0
	OvertimeMultiplier  = 1.5
	DeductionRate       = 0.15
)

const week = 7 * 24 * time.Hour

// Pay is the result of a pay computation for one employee.
type Pay struct {
	TotalHours    float64
	RegularHours  float64
	OvertimeHours float64
	GrossPay      float64
	Deductions    float64
	NetPay        float64
}

// RegularHoursCap scales the weekly regular allowance to the period length,
// counting fractional weeks.
func RegularHoursCap(start, end time.Time) float64 {
	return RegularHoursPerWeek * float64(end.Sub(start)) / float64(week)
}

// TotalHours sums the worked hours of the shifts.
func TotalHours(shifts []entity.Shift) float64 {
	var total float64
	for _, s := range shifts {
		total += s.WorkedHours()
	}
	return total
}

// Compute splits totalHours at regularCap and prices both parts.
func Compute(totalHours, regularCap, rate float64) Pay {
	regular := math.Min(totalHours, regularCap)
	overtime := math.Max(0, totalHours-regularCap)

	gross := regular*rate + overtime*rate*OvertimeMultiplier
	deductions := gross * DeductionRate

	return Pay{
		TotalHours:    totalHours,
		RegularHours:  regular,
		OvertimeHours: overtime,
		GrossPay:      gross,
		Deductions:    deductions,
		NetPay:        gross - deductions,
	}
}

// ComputeForPeriod prices the shifts of one employee for a period.
func ComputeForPeriod(period entity.PayrollPeriod, shifts []entity.Shift, rate float64) Pay {
	return Compute(TotalHours(shifts), RegularHoursCap(period.StartDate, period.EndDate), rate)
}
