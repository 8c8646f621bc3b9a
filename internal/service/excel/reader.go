package excel

import (
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"cafeshift/backend/internal/entity"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// EmployeeSheet is the worksheet the import reads. When it is missing the
// first sheet is used.
const EmployeeSheet = "Employees"

// Import columns, in order.
const (
	colUsername = iota
	colFirstName
	colLastName
	colEmail
	colPassword
	colRole
	colPosition
	colHourlyRate
	importColumns
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// EmployeeRow is a validated import row.
type EmployeeRow struct {
	Row        int
	Username   string
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Role       string
	Position   string
	HourlyRate float64
}

// ReadEmployees validates the rows of an employee workbook. Rows that are
// incomplete, malformed or clash with existing or earlier usernames/emails
// are reported by their 1-based row number.
func ReadEmployees(r io.Reader, existingUsernames, existingEmails map[string]struct{}) ([]EmployeeRow, []int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Printf("excel: close error: %v", closeErr)
		}
	}()

	sheetName := EmployeeSheet
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx == -1 {
		sheetName = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading rows: %w", err)
	}

	var users []EmployeeRow
	var incompleteRows []int
	localUsernames := make(map[string]int)
	localEmails := make(map[string]int)

	for i, row := range rows {
		rowNumber := i + 1
		if i == 0 {
			continue // header
		}
		if isBlank(row) {
			continue
		}
		if len(row) < importColumns {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}

		username := normalize(row[colUsername])
		email := strings.ToLower(normalize(row[colEmail]))
		password := strings.TrimSpace(row[colPassword])
		firstName := strings.TrimSpace(row[colFirstName])
		lastName := strings.TrimSpace(row[colLastName])
		role := strings.ToLower(normalize(row[colRole]))
		position := strings.TrimSpace(row[colPosition])

		if username == "" || firstName == "" || lastName == "" || email == "" || password == "" || position == "" {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}
		if role == "" {
			role = entity.RoleEmployee
		}
		if role != entity.RoleEmployee && role != entity.RoleManager {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}
		if len(password) < 6 || !isHalfWidth(password) {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}
		if !emailRegex.MatchString(email) {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}

		rate, err := strconv.ParseFloat(strings.TrimSpace(row[colHourlyRate]), 64)
		if err != nil || rate <= 0 {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}

		if _, exists := existingUsernames[username]; exists {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}
		if _, exists := existingEmails[email]; exists {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}
		if _, exists := localUsernames[username]; exists {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}
		if _, exists := localEmails[email]; exists {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}

		localUsernames[username] = rowNumber
		localEmails[email] = rowNumber

		users = append(users, EmployeeRow{
			Row:        rowNumber,
			Username:   username,
			FirstName:  firstName,
			LastName:   lastName,
			Email:      email,
			Password:   password,
			Role:       role,
			Position:   position,
			HourlyRate: rate,
		})
	}

	return users, incompleteRows, nil
}

// normalize folds full-width and compatibility characters (NFKC) and trims.
func normalize(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

// isHalfWidth checks if a string contains only half-width characters.
func isHalfWidth(s string) bool {
	for _, r := range norm.NFC.String(s) {
		if r >= '\uFF01' && r <= '\uFF60' || r >= '\uFFE0' && r <= '\uFFEF' {
			return false
		}
	}
	return true
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
