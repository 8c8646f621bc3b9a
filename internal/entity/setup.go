package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type SetupStatus struct {
	bun.BaseModel `bun:"table:setup_status"`

	ID               int        `json:"id"               bun:"id,pk"`
	IsSetupComplete  bool       `json:"isSetupComplete"  bun:"is_setup_complete"`
	SetupCompletedAt *time.Time `json:"setupCompletedAt" bun:"setup_completed_at"`
}
