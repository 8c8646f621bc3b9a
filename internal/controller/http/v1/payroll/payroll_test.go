package payroll

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/repository/postgres/payroll"
	"cafeshift/backend/internal/service/payslip"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// fakePayroll implements the calls under test; the rest panic.
type fakePayroll struct {
	Payroll
	processErr error
	exported   string
}

func (f *fakePayroll) Process(_ context.Context, periodID string) (payroll.ProcessResponse, error) {
	if f.processErr != nil {
		return payroll.ProcessResponse{}, f.processErr
	}
	return payroll.ProcessResponse{PeriodID: periodID, EntriesCreated: 2, TotalHours: "34.00", TotalPay: "560.00"}, nil
}

func (f *fakePayroll) GetPayslip(_ context.Context, entryID string) (payslip.Payslip, error) {
	return payslip.Payslip{EntryID: entryID, NetPay: 306}, nil
}

func (f *fakePayroll) GetPayslipPDF(_ context.Context, _ string) ([]byte, error) {
	return []byte("%PDF-1.3"), nil
}

func (f *fakePayroll) Export(_ context.Context, periodID string) ([]byte, error) {
	f.exported = periodID
	return []byte("xlsx"), nil
}

func newApp(f *fakePayroll) *web.App {
	gin.SetMode(gin.TestMode)
	uc := NewController(f)

	app := web.NewApp()
	app.Post("/periods/:id/process", uc.Process)
	app.Get("/payslip/:entryId", uc.GetPayslip)
	app.Get("/export", uc.Export)
	return app
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		body string
	}{
		{"ok", nil, http.StatusOK, `"totalPay":"560.00"`},
		{"closed", web.NewRequestError(errors.New("payroll period is not open"), http.StatusBadRequest), http.StatusBadRequest, "not open"},
		{"other branch", web.NewRequestError(errors.New("forbidden"), http.StatusForbidden), http.StatusForbidden, `"status":false`},
		{"unhandled", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		app := newApp(&fakePayroll{processErr: tt.err})

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/periods/p1/process", nil))

		if w.Code != tt.want || !strings.Contains(w.Body.String(), tt.body) {
			t.Fatalf("%s: %d %s", tt.name, w.Code, w.Body.String())
		}
	}
}

func TestGetPayslipFormat(t *testing.T) {
	app := newApp(&fakePayroll{})

	tests := []struct {
		query       string
		want        int
		contentType string
	}{
		{"", http.StatusOK, "application/json"},
		{"?format=pdf", http.StatusOK, payslip.ContentType},
		{"?format=csv", http.StatusBadRequest, "application/json"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payslip/e1"+tt.query, nil))

		if w.Code != tt.want {
			t.Fatalf("%q: status %d: %s", tt.query, w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
			t.Fatalf("%q: content type %q, want %q", tt.query, ct, tt.contentType)
		}
	}
}

func TestExportRequiresPeriod(t *testing.T) {
	f := &fakePayroll{}
	app := newApp(f)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("without periodId: status %d", w.Code)
	}

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export?periodId=p9", nil))
	if w.Code != http.StatusOK || f.exported != "p9" {
		t.Fatalf("with periodId: status %d, exported %q", w.Code, f.exported)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "payroll_p9.xlsx") {
		t.Fatalf("content disposition %q", cd)
	}
}
