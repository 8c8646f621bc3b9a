package entity

import (
	"encoding/json"

	"github.com/uptrace/bun"
)

const (
	NotificationPayroll      = "payroll"
	NotificationSchedule     = "schedule"
	NotificationAnnouncement = "announcement"
	NotificationSystem       = "system"
)

type Notification struct {
	bun.BaseModel `bun:"table:notifications"`

	BasicEntity
	UserID  string          `json:"userId"  bun:"user_id"`
	Type    string          `json:"type"    bun:"type"`
	Title   string          `json:"title"   bun:"title"`
	Message string          `json:"message" bun:"message"`
	IsRead  bool            `json:"isRead"  bun:"is_read"`
	Data    json.RawMessage `json:"data"    bun:"data,type:jsonb,nullzero"`
}
