package entity

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	BasicEntity
	Username           string     `json:"username"           bun:"username"`
	Password           string     `json:"-"                  bun:"password"`
	FirstName          string     `json:"firstName"          bun:"first_name"`
	LastName           string     `json:"lastName"           bun:"last_name"`
	Email              string     `json:"email"              bun:"email"`
	Role               string     `json:"role"               bun:"role"`
	Position           string     `json:"position"           bun:"position"`
	HourlyRate         float64    `json:"hourlyRate"         bun:"hourly_rate"`
	BranchID           string     `json:"branchId"           bun:"branch_id"`
	IsActive           bool       `json:"isActive"           bun:"is_active"`
	BlockchainVerified bool       `json:"blockchainVerified" bun:"blockchain_verified"`
	BlockchainHash     *string    `json:"blockchainHash"     bun:"blockchain_hash"`
	VerifiedAt         *time.Time `json:"verifiedAt"         bun:"verified_at"`
}

// FullName joins the first and last name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
