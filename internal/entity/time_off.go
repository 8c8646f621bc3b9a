package entity

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	LeaveVacation = "vacation"
	LeaveSick     = "sick"
	LeavePersonal = "personal"

	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

type TimeOffRequest struct {
	bun.BaseModel `bun:"table:time_off_requests"`

	BasicEntity
	UserID      string     `json:"userId"      bun:"user_id"`
	StartDate   time.Time  `json:"startDate"   bun:"start_date"`
	EndDate     time.Time  `json:"endDate"     bun:"end_date"`
	Type        string     `json:"type"        bun:"type"`
	Reason      string     `json:"reason"      bun:"reason"`
	Status      string     `json:"status"      bun:"status"`
	RequestedAt time.Time  `json:"requestedAt" bun:"requested_at"`
	ApprovedAt  *time.Time `json:"approvedAt"  bun:"approved_at"`
	ApprovedBy  *string    `json:"approvedBy"  bun:"approved_by"`
}

// Days is the inclusive number of calendar days the request covers.
func (r TimeOffRequest) Days() int {
	start := time.Date(r.StartDate.Year(), r.StartDate.Month(), r.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(r.EndDate.Year(), r.EndDate.Month(), r.EndDate.Day(), 0, 0, 0, 0, time.UTC)

	return int(end.Sub(start).Hours()/24) + 1
}
