package approval

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres"
	"cafeshift/backend/internal/repository/postgres/approval"
	"cafeshift/backend/internal/service/workforce"

	"github.com/gin-gonic/gin"
)

// fakeApproval answers like the repository: it checks the status, then looks
// up the approval and applies its outcome.
type fakeApproval struct {
	Approval
	outcome error
	got     approval.RespondRequest
}

func (f *fakeApproval) Respond(_ context.Context, request approval.RespondRequest) (entity.Approval, error) {
	f.got = request
	if err := workforce.CheckDecision(request.Status); err != nil {
		return entity.Approval{}, postgres.DecisionError(err, "approval")
	}
	if f.outcome != nil {
		return entity.Approval{}, postgres.DecisionError(f.outcome, "approval")
	}
	return entity.Approval{BasicEntity: entity.BasicEntity{ID: request.ID}, Status: request.Status}, nil
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		body    string
		outcome error
		want    int
		message string
	}{
		{"approved", `{"status":"approved"}`, nil, http.StatusOK, `"status":"approved"`},
		{"rejected with reason", `{"status":"rejected","reason":"short staffed"}`, nil, http.StatusOK, `"status":"rejected"`},
		{"invalid status", `{"status":"maybe"}`, nil, http.StatusBadRequest, "status must be approved or rejected"},
		{"missing status", `{}`, nil, http.StatusBadRequest, `"field":"status"`},
		{"unknown approval", `{"status":"approved"}`, postgres.ErrNotFound, http.StatusNotFound, "approval not found"},
		{"already answered", `{"status":"approved"}`, workforce.ErrAlreadyResolved, http.StatusBadRequest, "already been processed"},
		{"trade without taker", `{"status":"approved"}`, workforce.ErrNoTaker, http.StatusBadRequest, "no employee taking the shift"},
	}

	for _, tt := range tests {
		f := &fakeApproval{outcome: tt.outcome}
		app := web.NewApp()
		app.Put("/approvals/:id", NewController(f).Respond)

		r := httptest.NewRequest(http.MethodPut, "/approvals/a1", strings.NewReader(tt.body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		app.ServeHTTP(w, r)

		if w.Code != tt.want || !strings.Contains(w.Body.String(), tt.message) {
			t.Fatalf("%s: %d %s", tt.name, w.Code, w.Body.String())
		}
		if w.Code == http.StatusOK && f.got.ID != "a1" {
			t.Fatalf("%s: id %q, want a1", tt.name, f.got.ID)
		}
	}
}
