package setup

import (
	"cafeshift/backend/internal/entity"
)

type BranchRequest struct {
	Name    string  `json:"name"    form:"name"`
	Address string  `json:"address" form:"address"`
	Phone   *string `json:"phone"   form:"phone"`
}

type ManagerRequest struct {
	Username   string  `json:"username"   form:"username"`
	Password   string  `json:"password"   form:"password"`
	FirstName  string  `json:"firstName"  form:"firstName"`
	LastName   string  `json:"lastName"   form:"lastName"`
	Email      string  `json:"email"      form:"email"`
	HourlyRate float64 `json:"hourlyRate" form:"hourlyRate"`
}

type CreateRequest struct {
	Branch  BranchRequest  `json:"branch"`
	Manager ManagerRequest `json:"manager"`
}

type CreateResponse struct {
	Branch  entity.Branch `json:"branch"`
	Manager entity.User   `json:"manager"`
}
