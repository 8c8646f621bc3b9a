package entity

import (
	"time"
)

// BasicEntity holds the columns every table shares.
type BasicEntity struct {
	ID        string    `json:"id"        bun:"id,pk"`
	CreatedAt time.Time `json:"createdAt" bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
