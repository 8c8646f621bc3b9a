package payroll

import (
	"time"

	"cafeshift/backend/internal/entity"
)

type Filter struct {
	PeriodID *string
}

type CreatePeriodRequest struct {
	StartDate time.Time `json:"startDate" form:"startDate"`
	EndDate   time.Time `json:"endDate"   form:"endDate"`
}

type ProcessResponse struct {
	Message        string `json:"message"`
	PeriodID       string `json:"periodId"`
	EntriesCreated int    `json:"entriesCreated"`
	TotalHours     string `json:"totalHours"`
	TotalPay       string `json:"totalPay"`
}

// Employee is the part of a user shown next to payroll entries.
type Employee struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Position   string  `json:"position"`
	Email      string  `json:"email"`
	HourlyRate float64 `json:"hourlyRate"`
}

type EntryResponse struct {
	entity.PayrollEntry
	Employee Employee `json:"employee"`
}
