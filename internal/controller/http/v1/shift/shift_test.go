package shift

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres/shift"

	"github.com/gin-gonic/gin"
)

type fakeShift struct {
	Shift
	filter shift.Filter
}

func (f *fakeShift) GetList(_ context.Context, filter shift.Filter) ([]entity.Shift, error) {
	f.filter = filter
	return nil, nil
}

func (f *fakeShift) GetBranchList(_ context.Context, filter shift.Filter) ([]shift.GetBranchListResponse, error) {
	f.filter = filter
	return nil, nil
}

// inRange mirrors the repository's [StartDate, EndDate) condition.
func inRange(f shift.Filter, start time.Time) bool {
	if f.StartDate != nil && start.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && !start.Before(*f.EndDate) {
		return false
	}
	return true
}

func TestListRange(t *testing.T) {
	gin.SetMode(gin.TestMode)

	lastDay := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)
	nextDay := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		path    string
		want    int
		shift   time.Time
		covered bool
	}{
		{"last day included", "/shifts?startDate=2024-01-01&endDate=2024-01-07", http.StatusOK, lastDay, true},
		{"next day excluded", "/shifts?startDate=2024-01-01&endDate=2024-01-07", http.StatusOK, nextDay, false},
		{"branch last day", "/shifts/branch?startDate=2024-01-01&endDate=2024-01-07", http.StatusOK, lastDay, true},
		{"timestamp bound", "/shifts?endDate=2024-01-07T09:00:00Z", http.StatusOK, lastDay, false},
		{"first day", "/shifts?startDate=2024-01-07&endDate=2024-01-07", http.StatusOK, lastDay, true},
		{"bad date", "/shifts?endDate=soon", http.StatusBadRequest, lastDay, true},
	}

	for _, tt := range tests {
		f := &fakeShift{}
		uc := NewController(f)
		app := web.NewApp()
		app.Get("/shifts", uc.GetList)
		app.Get("/shifts/branch", uc.GetBranchList)

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

		if w.Code != tt.want {
			t.Fatalf("%s: status %d %s", tt.name, w.Code, w.Body.String())
		}
		if w.Code != http.StatusOK {
			continue
		}
		if got := inRange(f.filter, tt.shift); got != tt.covered {
			t.Fatalf("%s: shift at %s covered=%v, want %v (filter %v..%v)", tt.name, tt.shift, got, tt.covered, f.filter.StartDate, f.filter.EndDate)
		}
	}
}
