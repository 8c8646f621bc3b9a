package entity

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

const (
	ApprovalShiftTrade     = "shift_trade"
	ApprovalLeaveRequest   = "leave_request"
	ApprovalTimeCorrection = "time_correction"

	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type Approval struct {
	bun.BaseModel `bun:"table:approvals"`

	BasicEntity
	Type        string          `json:"type"        bun:"type"`
	RequestID   string          `json:"requestId"   bun:"request_id"`
	RequestedBy string          `json:"requestedBy" bun:"requested_by"`
	ApprovedBy  *string         `json:"approvedBy"  bun:"approved_by"`
	Status      string          `json:"status"      bun:"status"`
	Reason      *string         `json:"reason"      bun:"reason"`
	RequestData json.RawMessage `json:"requestData" bun:"request_data,type:jsonb,nullzero"`
	RequestedAt time.Time       `json:"requestedAt" bun:"requested_at"`
	RespondedAt *time.Time      `json:"respondedAt" bun:"responded_at"`
}
