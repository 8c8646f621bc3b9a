package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/repository/postgres/report"
	"cafeshift/backend/internal/service/workforce"

	"github.com/gin-gonic/gin"
)

type fakeReport struct {
	Report
	filter report.HoursFilter
}

func (f *fakeReport) Hours(_ context.Context, filter report.HoursFilter) (workforce.HoursReport, error) {
	f.filter = filter
	return workforce.HoursReport{}, nil
}

func (f *fakeReport) HoursExport(_ context.Context, filter report.HoursFilter) ([]byte, error) {
	f.filter = filter
	return []byte("xlsx"), nil
}

func (f *fakeReport) Shifts(context.Context) (report.ShiftsResponse, error) {
	return report.ShiftsResponse{TotalShifts: 3, CompletedShifts: 2}, nil
}

func TestHours(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		query       string
		want        int
		contentType string
	}{
		{"json", "?startDate=2024-01-01&endDate=2024-01-07&employeeId=u1", http.StatusOK, "application/json"},
		{"xlsx", "?format=xlsx&startDate=2024-01-01", http.StatusOK, xlsxContentType},
		{"bad date", "?startDate=yesterday", http.StatusBadRequest, "application/json"},
		{"bad format", "?format=csv", http.StatusBadRequest, "application/json"},
	}

	for _, tt := range tests {
		f := &fakeReport{}
		app := web.NewApp()
		app.Get("/hours", NewController(f).Hours)

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hours"+tt.query, nil))

		if w.Code != tt.want {
			t.Fatalf("%s: status %d: %s", tt.name, w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); len(ct) < len(tt.contentType) || ct[:len(tt.contentType)] != tt.contentType {
			t.Fatalf("%s: content type %q", tt.name, ct)
		}
		if tt.name == "json" {
			want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			if f.filter.StartDate == nil || !f.filter.StartDate.Equal(want) || f.filter.EmployeeID == nil || *f.filter.EmployeeID != "u1" {
				t.Fatalf("filter = %+v", f.filter)
			}
		}
	}
}

func TestShifts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := web.NewApp()
	app.Get("/shifts", NewController(&fakeReport{}).Shifts)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/shifts", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if want := `{"data":{"totalShifts":3,"completedShifts":2,"missedShifts":0,"cancelledShifts":0},"status":true}`; w.Body.String() != want {
		t.Fatalf("body = %s", w.Body.String())
	}
}
