package timeoff

import (
	"time"

	"cafeshift/backend/internal/entity"
)

type CreateRequest struct {
	StartDate time.Time `json:"startDate" form:"startDate"`
	EndDate   time.Time `json:"endDate"   form:"endDate"`
	Type      string    `json:"type"      form:"type"`
	Reason    string    `json:"reason"    form:"reason"`
}

// GetListResponse is a request with the employee who made it.
type GetListResponse struct {
	entity.TimeOffRequest
	User *entity.User `json:"user"`
}
