package shifttrade

import (
	"cafeshift/backend/internal/entity"
)

type CreateRequest struct {
	ShiftID  string  `json:"shiftId"  form:"shiftId"`
	Reason   string  `json:"reason"   form:"reason"`
	Urgency  *string `json:"urgency"  form:"urgency"`
	Notes    *string `json:"notes"    form:"notes"`
	ToUserID *string `json:"toUserId" form:"toUserId"`
}

// GetListResponse is a trade with the shift and the user offering it.
type GetListResponse struct {
	entity.ShiftTrade
	Shift    *entity.Shift `json:"shift"`
	FromUser *entity.User  `json:"fromUser"`
}
