package entity

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	PeriodOpen   = "open"
	PeriodClosed = "closed"
	PeriodPaid   = "paid"

	EntryPending  = "pending"
	EntryApproved = "approved"
	EntryPaid     = "paid"
)

type PayrollPeriod struct {
	bun.BaseModel `bun:"table:payroll_periods"`

	BasicEntity
	BranchID   string    `json:"branchId"   bun:"branch_id"`
	StartDate  time.Time `json:"startDate"  bun:"start_date"`
	EndDate    time.Time `json:"endDate"    bun:"end_date"`
	Status     string    `json:"status"     bun:"status"`
	TotalHours float64   `json:"totalHours" bun:"total_hours"`
	TotalPay   float64   `json:"totalPay"   bun:"total_pay"`
}

type PayrollEntry struct {
	bun.BaseModel `bun:"table:payroll_entries"`

	BasicEntity
	UserID          string  `json:"userId"          bun:"user_id"`
	PayrollPeriodID string  `json:"payrollPeriodId" bun:"payroll_period_id"`
	TotalHours      float64 `json:"totalHours"      bun:"total_hours"`
	RegularHours    float64 `json:"regularHours"    bun:"regular_hours"`
	OvertimeHours   float64 `json:"overtimeHours"   bun:"overtime_hours"`
	GrossPay        float64 `json:"grossPay"        bun:"gross_pay"`
	Deductions      float64 `json:"deductions"      bun:"deductions"`
	NetPay          float64 `json:"netPay"          bun:"net_pay"`
	Status          string  `json:"status"          bun:"status"`
	BlockchainHash  *string `json:"blockchainHash"  bun:"blockchain_hash"`
	BlockNumber     *int64  `json:"blockNumber"     bun:"block_number"`
	TransactionHash *string `json:"transactionHash" bun:"transaction_hash"`
	Verified        bool    `json:"verified"        bun:"verified"`
}
