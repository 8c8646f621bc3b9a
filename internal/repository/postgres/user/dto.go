package user

import (
	"mime/multipart"
)

type Filter struct {
	Limit    *int
	Offset   *int
	Page     *int
	Search   *string
	IsActive *bool
	Role     *string
}

type SignInRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type RefreshTokenRequest struct {
	AccessToken  string `json:"access_token"  form:"access_token"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type CreateRequest struct {
	Username   string  `json:"username"   form:"username"`
	Password   string  `json:"password"   form:"password"`
	FirstName  string  `json:"firstName"  form:"firstName"`
	LastName   string  `json:"lastName"   form:"lastName"`
	Email      string  `json:"email"      form:"email"`
	Role       *string `json:"role"       form:"role"`
	Position   string  `json:"position"   form:"position"`
	HourlyRate float64 `json:"hourlyRate" form:"hourlyRate"`
	BranchID   *string `json:"branchId"   form:"branchId"`
	IsActive   *bool   `json:"isActive"   form:"isActive"`
}

type UpdateRequest struct {
	ID         string   `json:"-"`
	Username   *string  `json:"username"   form:"username"`
	Password   *string  `json:"password"   form:"password"`
	FirstName  *string  `json:"firstName"  form:"firstName"`
	LastName   *string  `json:"lastName"   form:"lastName"`
	Email      *string  `json:"email"      form:"email"`
	Role       *string  `json:"role"       form:"role"`
	Position   *string  `json:"position"   form:"position"`
	HourlyRate *float64 `json:"hourlyRate" form:"hourlyRate"`
	IsActive   *bool    `json:"isActive"   form:"isActive"`
}

type BulkRequest struct {
	EmployeeIDs []string `json:"employeeIds" form:"employeeIds"`
}

type ExcelRequest struct {
	File *multipart.FileHeader `form:"file"`
}

type StatisticsResponse struct {
	TotalEmployees        int     `json:"totalEmployees"`
	ActiveEmployees       int     `json:"activeEmployees"`
	TotalHoursThisMonth   float64 `json:"totalHoursThisMonth"`
	TotalPayrollThisMonth float64 `json:"totalPayrollThisMonth"`
	AveragePerformance    float64 `json:"averagePerformance"`
}

type PerformanceResponse struct {
	EmployeeID      string  `json:"employeeId"`
	EmployeeName    string  `json:"employeeName"`
	Rating          float64 `json:"rating"`
	HoursThisMonth  float64 `json:"hoursThisMonth"`
	ShiftsThisMonth int     `json:"shiftsThisMonth"`
}

type ImportResponse struct {
	CreatedCount int   `json:"createdCount"`
	RejectedRows []int `json:"rejectedRows"`
}
