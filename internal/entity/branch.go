package entity

import (
	"github.com/uptrace/bun"
)

type Branch struct {
	bun.BaseModel `bun:"table:branches"`

	BasicEntity
	Name     string  `json:"name"     bun:"name"`
	Address  string  `json:"address"  bun:"address"`
	Phone    *string `json:"phone"    bun:"phone"`
	IsActive bool    `json:"isActive" bun:"is_active"`
}
