package payroll

import (
	"cafeshift/backend/internal/entity"

	"github.com/pkg/errors"
)

const (
	ActionApprove = "approve"
	ActionPay     = "pay"
)

// entryTransitions maps an action to the status it requires and the status it
// leads to. Entries only move forward.
var entryTransitions = map[string]struct{ from, to string }{
	ActionApprove: {from: entity.EntryPending, to: entity.EntryApproved},
	ActionPay:     {from: entity.EntryApproved, to: entity.EntryPaid},
}

// NextEntryStatus returns the status an entry in status from reaches by
// action, or ErrInvalidTransition.
func NextEntryStatus(from, action string) (string, error) {
	t, ok := entryTransitions[action]
	if !ok || t.from != from {
		return "", errors.Wrapf(ErrInvalidTransition, "cannot %s an entry that is %s", action, from)
	}
	return t.to, nil
}
