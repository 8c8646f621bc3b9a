package shift

import (
	"time"

	"cafeshift/backend/internal/entity"
)

type Filter struct {
	StartDate *time.Time
	// EndDate is exclusive.
	EndDate *time.Time
	UserID    *string
}

type CreateRequest struct {
	UserID           string    `json:"userId"           form:"userId"`
	StartTime        time.Time `json:"startTime"        form:"startTime"`
	EndTime          time.Time `json:"endTime"          form:"endTime"`
	Position         string    `json:"position"         form:"position"`
	RecurringPattern *string   `json:"recurringPattern" form:"recurringPattern"`
}

type UpdateRequest struct {
	ID               string     `json:"-"`
	UserID           *string    `json:"userId"           form:"userId"`
	StartTime        *time.Time `json:"startTime"        form:"startTime"`
	EndTime          *time.Time `json:"endTime"          form:"endTime"`
	Position         *string    `json:"position"         form:"position"`
	Status           *string    `json:"status"           form:"status"`
	RecurringPattern *string    `json:"recurringPattern" form:"recurringPattern"`
	ActualStartTime  *time.Time `json:"actualStartTime"  form:"actualStartTime"`
	ActualEndTime    *time.Time `json:"actualEndTime"    form:"actualEndTime"`
}

// GetBranchListResponse is a shift together with its employee.
type GetBranchListResponse struct {
	entity.Shift
	User *entity.User `json:"user"`
}
