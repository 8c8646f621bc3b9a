package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"
)

func record() Record {
	return Record{
		EntryID:      "entry-1",
		EmployeeID:   "user-1",
		EmployeeName: "Ana Cruz",
		PeriodStart:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:    time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		TotalHours:   24,
		RegularHours: 24,
		HourlyRate:   15,
		GrossPay:     360,
		Deductions:   54,
		NetPay:       306,
	}
}

func TestHashIsStable(t *testing.T) {
	a, err := Hash(record())
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}

	r := record()
	loc := time.FixedZone("PHT", 8*60*60)
	r.PeriodStart = r.PeriodStart.In(loc)
	r.PeriodEnd = r.PeriodEnd.In(loc)

	b, err := Hash(r)
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}

	if a != b {
		t.Fatalf("hash depends on time zone: %s != %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("hash length = %d, want 64", len(a))
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	receipt, err := Seal(record(), 7, "nonce", time.Now())
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	v, err := Verify(record(), receipt.BlockchainHash)
	if err != nil || !v.Valid {
		t.Fatalf("untouched record must verify, got %+v, %v", v, err)
	}

	tampered := record()
	tampered.NetPay = 999
	v, err = Verify(tampered, receipt.BlockchainHash)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if v.Valid {
		t.Fatalf("tampered record verified")
	}
	if v.ComputedHash == v.StoredHash {
		t.Fatalf("computed hash should differ from stored hash")
	}
}

func TestTransactionHashDependsOnBlockAndNonce(t *testing.T) {
	h, _ := Hash(record())

	a := TransactionHash(h, 1, "n1")
	if !strings.HasPrefix(a, "0x") || len(a) != 66 {
		t.Fatalf("unexpected transaction hash %q", a)
	}
	if a == TransactionHash(h, 2, "n1") {
		t.Fatalf("block number does not change the transaction hash")
	}
	if a == TransactionHash(h, 1, "n2") {
		t.Fatalf("nonce does not change the transaction hash")
	}
}

func TestIdentityHash(t *testing.T) {
	sum := sha256.Sum256([]byte("ana-Ana-Cruz-ana@example.com"))
	want := hex.EncodeToString(sum[:])

	if got := IdentityHash("ana", "Ana", "Cruz", "ana@example.com"); got != want {
		t.Fatalf("IdentityHash()=%s, want %s", got, want)
	}
}
