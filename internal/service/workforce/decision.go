package workforce

import (
	"cafeshift/backend/internal/entity"

	"github.com/pkg/errors"
)

var (
	ErrAlreadyResolved = errors.New("request has already been processed")
	ErrInvalidDecision = errors.New("status must be approved or rejected")
	ErrNoTaker         = errors.New("shift trade has no employee taking the shift")
	ErrOwnTrade        = errors.New("cannot take your own shift")
)

// CheckDecision accepts only the two answers a manager can give.
func CheckDecision(status string) error {
	if status != entity.ApprovalApproved && status != entity.ApprovalRejected {
		return ErrInvalidDecision
	}
	return nil
}

// CheckPending fails for requests that were already answered. Approvals,
// trades and time off requests share the "pending" status.
func CheckPending(status string) error {
	if status != entity.ApprovalPending {
		return ErrAlreadyResolved
	}
	return nil
}

// CheckTake reports whether userID may volunteer for the trade.
func CheckTake(trade entity.ShiftTrade, userID string) error {
	if err := CheckPending(trade.Status); err != nil {
		return err
	}
	if trade.FromUserID == userID {
		return ErrOwnTrade
	}
	return nil
}

// Notice is a notification a decision sends.
type Notice struct {
	UserID  string
	Title   string
	Message string
}

// TradeOutcome is what a manager's answer does to a trade.
type TradeOutcome struct {
	// AssignTo is the new owner of the shift, empty when the shift stays.
	AssignTo string
	Notices  []Notice
}

// DecideTrade checks a manager's answer against the trade and returns its
// effects. when is the shift start as shown to the employees.
func DecideTrade(trade entity.ShiftTrade, status, when string) (TradeOutcome, error) {
	if err := CheckDecision(status); err != nil {
		return TradeOutcome{}, err
	}
	if err := CheckPending(trade.Status); err != nil {
		return TradeOutcome{}, err
	}

	if status == entity.TradeRejected {
		return TradeOutcome{Notices: []Notice{{
			UserID:  trade.FromUserID,
			Title:   "Shift Trade Rejected",
			Message: "Your request to trade the shift on " + when + " was rejected",
		}}}, nil
	}

	if trade.ToUserID == nil || *trade.ToUserID == "" {
		return TradeOutcome{}, ErrNoTaker
	}

	return TradeOutcome{
		AssignTo: *trade.ToUserID,
		Notices: []Notice{
			{UserID: trade.FromUserID, Title: "Shift Trade Approved", Message: "Your shift on " + when + " has been traded"},
			{UserID: *trade.ToUserID, Title: "Shift Assigned", Message: "You have been assigned the shift on " + when},
		},
	}, nil
}

// DecideLeave checks a manager's answer against a time off request and
// returns the notification title for the employee.
func DecideLeave(request entity.TimeOffRequest, status string) (string, error) {
	if err := CheckDecision(status); err != nil {
		return "", err
	}
	if err := CheckPending(request.Status); err != nil {
		return "", err
	}

	if status == entity.LeaveRejected {
		return "Time Off Request Rejected", nil
	}
	return "Time Off Request Approved", nil
}
