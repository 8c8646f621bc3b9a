package entity

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	TradePending  = "pending"
	TradeApproved = "approved"
	TradeRejected = "rejected"
)

type ShiftTrade struct {
	bun.BaseModel `bun:"table:shift_trades"`

	BasicEntity
	ShiftID     string     `json:"shiftId"     bun:"shift_id"`
	FromUserID  string     `json:"fromUserId"  bun:"from_user_id"`
	ToUserID    *string    `json:"toUserId"    bun:"to_user_id"`
	Reason      string     `json:"reason"      bun:"reason"`
	Status      string     `json:"status"      bun:"status"`
	Urgency     string     `json:"urgency"     bun:"urgency"`
	Notes       *string    `json:"notes"       bun:"notes"`
	RequestedAt time.Time  `json:"requestedAt" bun:"requested_at"`
	ApprovedAt  *time.Time `json:"approvedAt"  bun:"approved_at"`
	ApprovedBy  *string    `json:"approvedBy"  bun:"approved_by"`
}
