// Package excel writes the spreadsheet exports and reads employee imports.
package excel

import (
	"fmt"
	"time"

	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/service/workforce"

	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is one worksheet: a header row followed by data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// Write builds a workbook from the sheets and returns its bytes.
func Write(sheets ...Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				return nil, fmt.Errorf("error naming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, fmt.Errorf("error creating sheet: %w", err)
		}

		headers := make([]any, len(s.Headers))
		for j, h := range s.Headers {
			headers[j] = h
		}
		if err := f.SetSheetRow(s.Name, "A1", &headers); err != nil {
			return nil, fmt.Errorf("error writing headers: %w", err)
		}

		// Populate rows with data starting from the second row
		for j, row := range s.Rows {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return nil, err
			}
			row := row
			if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
				return nil, fmt.Errorf("error writing row %d: %w", j+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error saving file: %w", err)
	}

	return buf.Bytes(), nil
}

// PayrollRow is one payroll entry with its employee, as exported.
type PayrollRow struct {
	EmployeeName  string
	Position      string
	HourlyRate    float64
	TotalHours    float64
	RegularHours  float64
	OvertimeHours float64
	GrossPay      float64
	Deductions    float64
	NetPay        float64
	Status        string
	Verified      bool
}

// PayrollWorkbook exports the entries of one period.
func PayrollWorkbook(period entity.PayrollPeriod, rows []PayrollRow) ([]byte, error) {
	sheet := Sheet{
		Name: "Payroll",
		Headers: []string{"Employee", "Position", "Hourly Rate", "Total Hours", "Regular Hours",
			"Overtime Hours", "Gross Pay", "Deductions", "Net Pay", "Status", "Verified"},
	}

	var gross, net float64
	for _, r := range rows {
		sheet.Rows = append(sheet.Rows, []any{
			r.EmployeeName, r.Position, r.HourlyRate, r.TotalHours, r.RegularHours,
			r.OvertimeHours, r.GrossPay, r.Deductions, r.NetPay, r.Status, r.Verified,
		})
		gross += r.GrossPay
		net += r.NetPay
	}

	summary := Sheet{
		Name:    "Summary",
		Headers: []string{"Period Start", "Period End", "Status", "Entries", "Total Gross", "Total Net"},
		Rows: [][]any{{
			period.StartDate.Format(time.DateOnly), period.EndDate.Format(time.DateOnly),
			period.Status, len(rows), workforce.Round(gross, 2), workforce.Round(net, 2),
		}},
	}

	return Write(sheet, summary)
}

// HoursWorkbook exports an hours report, one row per employee and day.
func HoursWorkbook(report workforce.HoursReport) ([]byte, error) {
	totals := Sheet{
		Name:    "Employees",
		Headers: []string{"Employee", "Position", "Hourly Rate", "Total Hours", "Shifts", "Estimated Pay"},
	}
	daily := Sheet{
		Name:    "Daily",
		Headers: []string{"Employee", "Date", "Hours"},
	}

	for _, e := range report.Employees {
		totals.Rows = append(totals.Rows, []any{e.EmployeeName, e.Position, e.HourlyRate, e.TotalHours, e.TotalShifts, e.EstimatedPay})
		for _, d := range e.HoursByDay {
			daily.Rows = append(daily.Rows, []any{e.EmployeeName, d.Date, d.Hours})
		}
	}
	totals.Rows = append(totals.Rows, []any{"Total", "", "", report.Summary.TotalHours, report.Summary.TotalShifts, report.Summary.TotalPay})

	return Write(totals, daily)
}

// EmployeesWorkbook exports employees with the same columns the import reads,
// minus the password.
func EmployeesWorkbook(users []entity.User) ([]byte, error) {
	sheet := Sheet{
		Name:    EmployeeSheet,
		Headers: []string{"Username", "First Name", "Last Name", "Email", "Password", "Role", "Position", "Hourly Rate", "Active"},
	}

	for _, u := range users {
		sheet.Rows = append(sheet.Rows, []any{u.Username, u.FirstName, u.LastName, u.Email, "", u.Role, u.Position, u.HourlyRate, u.IsActive})
	}

	return Write(sheet)
}
