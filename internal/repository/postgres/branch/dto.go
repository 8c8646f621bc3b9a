package branch

type CreateRequest struct {
	Name    string  `json:"name"    form:"name"`
	Address string  `json:"address" form:"address"`
	Phone   *string `json:"phone"   form:"phone"`
}

type UpdateRequest struct {
	ID       string  `json:"-"`
	Name     *string `json:"name"     form:"name"`
	Address  *string `json:"address"  form:"address"`
	Phone    *string `json:"phone"    form:"phone"`
	IsActive *bool   `json:"isActive" form:"isActive"`
}
