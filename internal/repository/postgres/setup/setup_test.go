package setup

import (
	"testing"
	"time"

	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/service/ledger"
)

func TestNewManager(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	m := ManagerRequest{
		Username:   "  maria ",
		FirstName:  "Maria ",
		LastName:   " Santos",
		Email:      " Maria.Santos@Cafe.PH ",
		HourlyRate: 150,
	}

	got := newManager(m, "b1", "bcrypt", now)

	if got.Username != "maria" || got.Email != "maria.santos@cafe.ph" || got.FirstName != "Maria" || got.LastName != "Santos" {
		t.Fatalf("stored identity not normalized: %q %q %q %q", got.Username, got.FirstName, got.LastName, got.Email)
	}

	want := ledger.IdentityHash(got.Username, got.FirstName, got.LastName, got.Email)
	if got.BlockchainHash == nil || *got.BlockchainHash != want {
		t.Fatalf("hash does not match the stored row: got %v, want %s", got.BlockchainHash, want)
	}
	if raw := ledger.IdentityHash(m.Username, m.FirstName, m.LastName, m.Email); *got.BlockchainHash == raw {
		t.Fatalf("hash was taken over the raw input")
	}

	if got.Role != entity.RoleManager || got.Position != "Store Manager" || got.BranchID != "b1" || !got.IsActive || !got.BlockchainVerified {
		t.Fatalf("unexpected manager: %+v", got)
	}
}
