package approval

import (
	"cafeshift/backend/internal/entity"
)

type RespondRequest struct {
	ID     string  `json:"-"`
	Status string  `json:"status" form:"status"`
	Reason *string `json:"reason" form:"reason"`
}

// GetListResponse is an approval with the user who asked for it.
type GetListResponse struct {
	entity.Approval
	Requester *entity.User `json:"requester"`
}
