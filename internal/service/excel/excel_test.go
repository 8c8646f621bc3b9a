package excel

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"cafeshift/backend/internal/entity"

	"github.com/xuri/excelize/v2"
)

func TestReadEmployees(t *testing.T) {
	data, err := Write(Sheet{
		Name:    EmployeeSheet,
		Headers: []string{"Username", "First Name", "Last Name", "Email", "Password", "Role", "Position", "Hourly Rate"},
		Rows: [][]any{
			{"ana", "Ana", "Cruz", "ana@example.com", "secret1", "employee", "Barista", 15.5},        // 2 ok
			{"ｂｅｎ", "Ben", "Reyes", "BEN@example.com", "secret2", "", "Cashier", 12},               // 3 ok, normalized
			{"carl", "Carl", "Tan", "not-an-email", "secret3", "employee", "Barista", 12},          // 4 bad email
			{"dina", "Dina", "Lim", "dina@example.com", "secret4", "employee", "Barista", "abc"},   // 5 bad rate
			{"ana", "Ana", "Dup", "ana2@example.com", "secret5", "employee", "Barista", 15},        // 6 duplicate in file
			{"taken", "Tom", "Go", "tom@example.com", "secret6", "employee", "Barista", 15},        // 7 exists already
			{"eve", "Eve", "Sy", "eve@example.com", "short", "employee", "Barista", 15},            // 8 short password
			{"fay", "Fay", "Uy", "fay@example.com", "secret7", "owner", "Barista", 15},             // 9 unknown role
			{"gil", "Gil"},                                                                         // 10 incomplete
			{"hal", "Hal", "Ong", "hal@example.com", "secret8", "manager", "Shift Lead", 20},       // 11 ok
		},
	})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	existing := map[string]struct{}{"taken": {}}
	users, rejected, err := ReadEmployees(bytes.NewReader(data), existing, map[string]struct{}{})
	if err != nil {
		t.Fatalf("ReadEmployees() error: %v", err)
	}

	var names []string
	for _, u := range users {
		names = append(names, u.Username)
	}
	if want := []string{"ana", "ben", "hal"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("imported %v, want %v", names, want)
	}
	if want := []int{4, 5, 6, 7, 8, 9, 10}; !reflect.DeepEqual(rejected, want) {
		t.Fatalf("rejected %v, want %v", rejected, want)
	}

	if users[0].HourlyRate != 15.5 {
		t.Fatalf("hourly rate = %v", users[0].HourlyRate)
	}
	if users[1].Email != "ben@example.com" || users[1].Role != entity.RoleEmployee {
		t.Fatalf("ben = %+v", users[1])
	}
	if users[2].Role != entity.RoleManager || users[2].Row != 11 {
		t.Fatalf("hal = %+v", users[2])
	}
}

func TestPayrollWorkbook(t *testing.T) {
	period := entity.PayrollPeriod{
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		Status:    entity.PeriodClosed,
	}
	data, err := PayrollWorkbook(period, []PayrollRow{
		{EmployeeName: "Ana Cruz", TotalHours: 24, GrossPay: 360, Deductions: 54, NetPay: 306, Status: "pending"},
		{EmployeeName: "Ben Reyes", TotalHours: 10, GrossPay: 200, Deductions: 30, NetPay: 170, Status: "approved"},
	})
	if err != nil {
		t.Fatalf("PayrollWorkbook() error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Payroll")
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if len(rows) != 3 || rows[1][0] != "Ana Cruz" || rows[2][9] != "approved" {
		t.Fatalf("payroll rows = %v", rows)
	}

	total, err := f.GetCellValue("Summary", "E2")
	if err != nil || total != "560" {
		t.Fatalf("summary gross = %q, %v", total, err)
	}
}
