package payslip

import (
	"bytes"
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	tx := "0xabc123"
	block := int64(4)

	cases := []struct {
		name string
		slip Payslip
	}{
		{"not stored", Payslip{EntryID: "e1", EmployeeName: "Ana Cruz", BranchName: "Main", NetPay: 306}},
		{"stored", Payslip{EntryID: "e2", EmployeeName: "Ben Reyes", BranchName: "Main", NetPay: 170, TransactionHash: &tx, BlockNumber: &block}},
	}

	for _, tt := range cases {
		tt.slip.PeriodStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		tt.slip.PeriodEnd = time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
		tt.slip.GeneratedAt = time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)

		var buf bytes.Buffer
		if err := Render(&buf, tt.slip, "₱"); err != nil {
			t.Fatalf("%s: Render() error: %v", tt.name, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
			t.Fatalf("%s: output is not a PDF", tt.name)
		}
	}
}

func TestPdfCurrency(t *testing.T) {
	cases := map[string]string{"₱": "PHP ", "$": "$", "£": "£", "₿": ""}
	for in, want := range cases {
		if got := pdfCurrency(in); got != want {
			t.Fatalf("pdfCurrency(%q)=%q, want %q", in, got, want)
		}
	}
}
