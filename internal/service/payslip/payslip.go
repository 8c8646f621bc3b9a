// Package payslip renders a payroll entry as a one page PDF.
package payslip

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const ContentType = "application/pdf"

// Payslip is everything printed on a slip. It doubles as the JSON payslip
// response.
type Payslip struct {
	EntryID         string    `json:"entryId"`
	EmployeeID      string    `json:"employeeId"`
	EmployeeName    string    `json:"employeeName"`
	Position        string    `json:"position"`
	BranchName      string    `json:"branchName"`
	PeriodStart     time.Time `json:"periodStart"`
	PeriodEnd       time.Time `json:"periodEnd"`
	HourlyRate      float64   `json:"hourlyRate"`
	TotalHours      float64   `json:"totalHours"`
	RegularHours    float64   `json:"regularHours"`
	OvertimeHours   float64   `json:"overtimeHours"`
	GrossPay        float64   `json:"grossPay"`
	Deductions      float64   `json:"deductions"`
	NetPay          float64   `json:"netPay"`
	Status          string    `json:"status"`
	Verified        bool      `json:"verified"`
	BlockchainHash  *string   `json:"blockchainHash"`
	BlockNumber     *int64    `json:"blockNumber"`
	TransactionHash *string   `json:"transactionHash"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// The core PDF fonts only cover Latin-1.
var currencyCodes = map[string]string{
	"₱": "PHP ",
	"€": "EUR ",
	"₹": "INR ",
	"₩": "KRW ",
}

func pdfCurrency(symbol string) string {
	if code, ok := currencyCodes[symbol]; ok {
		return code
	}
	for _, r := range symbol {
		if r > 0xFF {
			return ""
		}
	}
	return symbol
}

// Render writes the slip as PDF. When the entry has a ledger transaction
// hash a QR code of it is printed for verification.
func Render(w io.Writer, p Payslip, currency string) error {
	cur := pdfCurrency(currency)
	money := func(v float64) string { return fmt.Sprintf("%s%.2f", cur, v) }

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Payslip "+p.EntryID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(p.BranchName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Payslip", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(60, 8, label, "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, tr(value), "B", 1, "L", false, 0, "")
	}

	row("Employee", p.EmployeeName)
	row("Position", p.Position)
	row("Period", p.PeriodStart.Format("Jan 2, 2006")+" - "+p.PeriodEnd.Format("Jan 2, 2006"))
	row("Status", p.Status)
	pdf.Ln(4)

	row("Hourly rate", money(p.HourlyRate))
	row("Regular hours", fmt.Sprintf("%.2f", p.RegularHours))
	row("Overtime hours", fmt.Sprintf("%.2f", p.OvertimeHours))
	row("Total hours", fmt.Sprintf("%.2f", p.TotalHours))
	row("Gross pay", money(p.GrossPay))
	row("Deductions", money(p.Deductions))

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(60, 10, "Net pay", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, money(p.NetPay), "", 1, "L", false, 0, "")

	if p.TransactionHash != nil && *p.TransactionHash != "" {
		png, err := qrcode.Encode(*p.TransactionHash, qrcode.Medium, 256)
		if err != nil {
			return errors.Wrap(err, "encoding qr code")
		}

		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("tx", opts, bytes.NewReader(png))
		pdf.Ln(6)
		y := pdf.GetY()
		pdf.ImageOptions("tx", 10, y, 40, 40, false, opts, 0, "")

		pdf.SetXY(55, y+4)
		pdf.SetFont("Helvetica", "", 8)
		pdf.MultiCell(0, 5, "Ledger transaction\n"+*p.TransactionHash, "", "L", false)
		if p.BlockNumber != nil {
			pdf.SetX(55)
			pdf.CellFormat(0, 5, fmt.Sprintf("Block #%d", *p.BlockNumber), "", 1, "L", false, 0, "")
		}
		pdf.SetY(y + 44)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 6, "Generated "+p.GeneratedAt.Format(time.RFC1123), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "rendering payslip")
	}

	return nil
}
