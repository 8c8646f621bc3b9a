package entity

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	ShiftScheduled  = "scheduled"
	ShiftInProgress = "in-progress"
	ShiftCompleted  = "completed"
	ShiftMissed     = "missed"
	ShiftCancelled  = "cancelled"
)

type Shift struct {
	bun.BaseModel `bun:"table:shifts"`

	BasicEntity
	UserID           string     `json:"userId"           bun:"user_id"`
	BranchID         string     `json:"branchId"         bun:"branch_id"`
	StartTime        time.Time  `json:"startTime"        bun:"start_time"`
	EndTime          time.Time  `json:"endTime"          bun:"end_time"`
	Position         string     `json:"position"         bun:"position"`
	IsRecurring      bool       `json:"isRecurring"      bun:"is_recurring"`
	RecurringPattern *string    `json:"recurringPattern" bun:"recurring_pattern"`
	Status           string     `json:"status"           bun:"status"`
	ActualStartTime  *time.Time `json:"actualStartTime"  bun:"actual_start_time"`
	ActualEndTime    *time.Time `json:"actualEndTime"    bun:"actual_end_time"`
}

// WorkedHours uses the actual clock times when present and the scheduled
// times otherwise.
func (s Shift) WorkedHours() float64 {
	start, end := s.StartTime, s.EndTime
	if s.ActualStartTime != nil {
		start = *s.ActualStartTime
	}
	if s.ActualEndTime != nil {
		end = *s.ActualEndTime
	}

	return end.Sub(start).Hours()
}

// ScheduledHours ignores the actual clock times.
func (s Shift) ScheduledHours() float64 {
	return s.EndTime.Sub(s.StartTime).Hours()
}
