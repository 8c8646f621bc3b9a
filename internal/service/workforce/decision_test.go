package workforce

import (
	"reflect"
	"testing"

	"cafeshift/backend/internal/entity"
)

func TestCheckDecision(t *testing.T) {
	cases := map[string]error{
		"approved":  nil,
		"rejected":  nil,
		"pending":   ErrInvalidDecision,
		"cancelled": ErrInvalidDecision,
		"":          ErrInvalidDecision,
	}

	for status, want := range cases {
		if err := CheckDecision(status); err != want {
			t.Fatalf("CheckDecision(%q)=%v, want %v", status, err, want)
		}
	}
}

func TestCheckTake(t *testing.T) {
	cases := []struct {
		name  string
		trade entity.ShiftTrade
		user  string
		want  error
	}{
		{"open trade", entity.ShiftTrade{Status: "pending", FromUserID: "ana"}, "ben", nil},
		{"own trade", entity.ShiftTrade{Status: "pending", FromUserID: "ana"}, "ana", ErrOwnTrade},
		{"approved", entity.ShiftTrade{Status: "approved", FromUserID: "ana"}, "ben", ErrAlreadyResolved},
		{"rejected", entity.ShiftTrade{Status: "rejected", FromUserID: "ana"}, "ben", ErrAlreadyResolved},
	}

	for _, tt := range cases {
		if err := CheckTake(tt.trade, tt.user); err != tt.want {
			t.Fatalf("%s: CheckTake()=%v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestDecideTrade(t *testing.T) {
	ben := "ben"
	empty := ""
	when := "Mar 1, 9:00 AM"

	cases := []struct {
		name   string
		trade  entity.ShiftTrade
		status string
		want   TradeOutcome
		err    error
	}{
		{
			name:   "approved with taker",
			trade:  entity.ShiftTrade{Status: "pending", FromUserID: "ana", ToUserID: &ben},
			status: "approved",
			want: TradeOutcome{AssignTo: "ben", Notices: []Notice{
				{UserID: "ana", Title: "Shift Trade Approved", Message: "Your shift on " + when + " has been traded"},
				{UserID: "ben", Title: "Shift Assigned", Message: "You have been assigned the shift on " + when},
			}},
		},
		{
			name:   "rejected keeps the shift",
			trade:  entity.ShiftTrade{Status: "pending", FromUserID: "ana", ToUserID: &ben},
			status: "rejected",
			want: TradeOutcome{Notices: []Notice{
				{UserID: "ana", Title: "Shift Trade Rejected", Message: "Your request to trade the shift on " + when + " was rejected"},
			}},
		},
		{
			name:   "rejected without taker",
			trade:  entity.ShiftTrade{Status: "pending", FromUserID: "ana"},
			status: "rejected",
			want: TradeOutcome{Notices: []Notice{
				{UserID: "ana", Title: "Shift Trade Rejected", Message: "Your request to trade the shift on " + when + " was rejected"},
			}},
		},
		{"approved without taker", entity.ShiftTrade{Status: "pending", FromUserID: "ana"}, "approved", TradeOutcome{}, ErrNoTaker},
		{"blank taker", entity.ShiftTrade{Status: "pending", FromUserID: "ana", ToUserID: &empty}, "approved", TradeOutcome{}, ErrNoTaker},
		{"already approved", entity.ShiftTrade{Status: "approved", FromUserID: "ana", ToUserID: &ben}, "approved", TradeOutcome{}, ErrAlreadyResolved},
		{"already rejected", entity.ShiftTrade{Status: "rejected", FromUserID: "ana", ToUserID: &ben}, "rejected", TradeOutcome{}, ErrAlreadyResolved},
		{"bad status", entity.ShiftTrade{Status: "pending", FromUserID: "ana", ToUserID: &ben}, "maybe", TradeOutcome{}, ErrInvalidDecision},
	}

	for _, tt := range cases {
		got, err := DecideTrade(tt.trade, tt.status, when)
		if err != tt.err {
			t.Fatalf("%s: error %v, want %v", tt.name, err, tt.err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%s: got %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestDecideLeave(t *testing.T) {
	cases := []struct {
		name    string
		current string
		status  string
		title   string
		err     error
	}{
		{"approve pending", "pending", "approved", "Time Off Request Approved", nil},
		{"reject pending", "pending", "rejected", "Time Off Request Rejected", nil},
		{"approve approved", "approved", "approved", "", ErrAlreadyResolved},
		{"reject approved", "approved", "rejected", "", ErrAlreadyResolved},
		{"approve rejected", "rejected", "approved", "", ErrAlreadyResolved},
		{"bad status", "pending", "pending", "", ErrInvalidDecision},
	}

	for _, tt := range cases {
		title, err := DecideLeave(entity.TimeOffRequest{Status: tt.current}, tt.status)
		if err != tt.err || title != tt.title {
			t.Fatalf("%s: DecideLeave()=(%q, %v), want (%q, %v)", tt.name, title, err, tt.title, tt.err)
		}
	}
}
