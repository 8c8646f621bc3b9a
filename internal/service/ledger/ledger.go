// Package ledger produces the tamper-evidence hashes kept next to payroll
// entries. Records are hashed individually; there is no chain and no
// consensus.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Record is the hashed view of a payroll entry. Field order is part of the
// hash.
type Record struct {
	EntryID       string    `json:"entryId"`
	EmployeeID    string    `json:"employeeId"`
	EmployeeName  string    `json:"employeeName"`
	PeriodStart   time.Time `json:"periodStart"`
	PeriodEnd     time.Time `json:"periodEnd"`
	TotalHours    float64   `json:"totalHours"`
	RegularHours  float64   `json:"regularHours"`
	OvertimeHours float64   `json:"overtimeHours"`
	HourlyRate    float64   `json:"hourlyRate"`
	GrossPay      float64   `json:"grossPay"`
	Deductions    float64   `json:"deductions"`
	NetPay        float64   `json:"netPay"`
}

// Receipt is what storing a record yields.
type Receipt struct {
	EntryID         string    `json:"payrollEntryId"`
	BlockchainHash  string    `json:"blockchainHash"`
	BlockNumber     int64     `json:"blockNumber"`
	TransactionHash string    `json:"transactionHash"`
	Timestamp       time.Time `json:"timestamp"`
}

// Verification compares a stored hash with a fresh one.
type Verification struct {
	EntryID      string `json:"payrollEntryId"`
	Valid        bool   `json:"valid"`
	StoredHash   string `json:"storedHash"`
	ComputedHash string `json:"computedHash"`
}

// Hash returns the hex SHA-256 of the record's JSON encoding. Times are
// normalized to UTC so the hash does not depend on the reader's zone.
func Hash(r Record) (string, error) {
	r.PeriodStart = r.PeriodStart.UTC()
	r.PeriodEnd = r.PeriodEnd.UTC()

	data, err := json.Marshal(r)
	if err != nil {
		return "", errors.Wrap(err, "encoding ledger record")
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// TransactionHash binds a record hash to its block number and a nonce.
func TransactionHash(recordHash string, blockNumber int64, nonce string) string {
	sum := sha256.Sum256([]byte(recordHash + strconv.FormatInt(blockNumber, 10) + nonce))
	return "0x" + hex.EncodeToString(sum[:])
}

// Seal hashes r and assigns it to blockNumber.
func Seal(r Record, blockNumber int64, nonce string, now time.Time) (Receipt, error) {
	h, err := Hash(r)
	if err != nil {
		return Receipt{}, err
	}

	return Receipt{
		EntryID:         r.EntryID,
		BlockchainHash:  h,
		BlockNumber:     blockNumber,
		TransactionHash: TransactionHash(h, blockNumber, nonce),
		Timestamp:       now,
	}, nil
}

// Verify recomputes the hash of r and compares it with stored.
func Verify(r Record, stored string) (Verification, error) {
	h, err := Hash(r)
	if err != nil {
		return Verification{}, err
	}

	return Verification{
		EntryID:      r.EntryID,
		Valid:        h == stored,
		StoredHash:   stored,
		ComputedHash: h,
	}, nil
}

// IdentityHash is the hash stored on user records:
// SHA-256 of "username-firstName-lastName-email".
func IdentityHash(username, firstName, lastName, email string) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{username, firstName, lastName, email}, "-")))
	return hex.EncodeToString(sum[:])
}
