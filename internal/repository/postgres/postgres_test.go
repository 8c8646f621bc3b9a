package postgres

import (
	"net/http"
	"testing"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/service/workforce"

	"github.com/pkg/errors"
)

func TestDecisionError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"unknown request", ErrNotFound, http.StatusNotFound, "approval not found"},
		{"answered twice", ErrAlreadyResolved, http.StatusBadRequest, "request has already been processed"},
		{"wrapped answered", errors.Wrap(workforce.ErrAlreadyResolved, "deciding trade"), http.StatusBadRequest, "deciding trade: request has already been processed"},
		{"no taker", workforce.ErrNoTaker, http.StatusBadRequest, "shift trade has no employee taking the shift"},
		{"invalid status", workforce.ErrInvalidDecision, http.StatusBadRequest, "status must be approved or rejected"},
		{"own trade", workforce.ErrOwnTrade, http.StatusBadRequest, "cannot take your own shift"},
		{"database", errors.New("connection reset"), http.StatusInternalServerError, "connection reset"},
	}

	for _, tt := range tests {
		var webErr *web.Error
		if !errors.As(DecisionError(tt.err, "approval"), &webErr) {
			t.Fatalf("%s: not a request error", tt.name)
		}
		if webErr.Status != tt.status || webErr.Error() != tt.message {
			t.Fatalf("%s: got %d %q, want %d %q", tt.name, webErr.Status, webErr.Error(), tt.status, tt.message)
		}
	}

	if DecisionError(nil, "approval") != nil {
		t.Fatalf("nil error should stay nil")
	}
}
