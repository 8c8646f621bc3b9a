package blockchain

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/auth"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/pkg/repository/postgresql"
	"cafeshift/backend/internal/repository/postgres"
	"cafeshift/backend/internal/repository/postgres/payroll"
	"cafeshift/backend/internal/service/ledger"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// blockLock serializes block number assignment across transactions.
const blockLock = 7341

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

type sealed struct {
	entry    entity.PayrollEntry
	employee entity.User
	period   entity.PayrollPeriod
}

func (r Repository) Store(ctx context.Context, request StoreRequest) (StoreResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return StoreResponse{}, err
	}

	if err := r.ValidateStruct(&request, "PayrollEntryID"); err != nil {
		return StoreResponse{}, err
	}

	records, err := r.branchRecords(ctx, r.DB, claims.BranchId, []string{request.PayrollEntryID})
	if err != nil {
		return StoreResponse{}, err
	}
	if len(records) == 0 {
		return StoreResponse{}, web.NewRequestError(errors.New("payroll entry not found"), http.StatusNotFound)
	}

	receipts, err := r.seal(ctx, records)
	if err != nil {
		return StoreResponse{}, err
	}

	return StoreResponse{
		Message:          "Payroll record stored on blockchain successfully",
		BlockchainRecord: receipts[0],
	}, nil
}

func (r Repository) StoreBatch(ctx context.Context, request BatchStoreRequest) (BatchStoreResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return BatchStoreResponse{}, err
	}

	if request.PayrollEntryIDs == nil {
		return BatchStoreResponse{}, web.NewRequestError(errors.New("payrollEntryIds must be an array"), http.StatusBadRequest)
	}

	records, err := r.branchRecords(ctx, r.DB, claims.BranchId, request.PayrollEntryIDs)
	if err != nil {
		return BatchStoreResponse{}, err
	}
	if len(records) == 0 {
		return BatchStoreResponse{}, web.NewRequestError(errors.New("no valid payroll entries found"), http.StatusNotFound)
	}

	receipts, err := r.seal(ctx, records)
	if err != nil {
		return BatchStoreResponse{}, err
	}

	return BatchStoreResponse{
		Message:     fmt.Sprintf("%d payroll records stored on blockchain successfully", len(receipts)),
		StoredCount: len(receipts),
		Results:     receipts,
	}, nil
}

// Verify recomputes the hash of a stored entry from its current columns.
func (r Repository) Verify(ctx context.Context, request VerifyRequest) (VerifyResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return VerifyResponse{}, err
	}

	if err := r.ValidateStruct(&request, "PayrollEntryID"); err != nil {
		return VerifyResponse{}, err
	}

	records, err := r.branchRecords(ctx, r.DB, claims.BranchId, []string{request.PayrollEntryID})
	if err != nil {
		return VerifyResponse{}, err
	}
	if len(records) == 0 {
		return VerifyResponse{}, web.NewRequestError(errors.New("payroll entry not found"), http.StatusNotFound)
	}

	rec := records[0]
	if rec.entry.BlockchainHash == nil {
		return VerifyResponse{}, web.NewRequestError(errors.New("payroll entry not stored on blockchain"), http.StatusBadRequest)
	}

	v, err := ledger.Verify(payroll.LedgerRecord(rec.entry, rec.employee, rec.period), *rec.entry.BlockchainHash)
	if err != nil {
		return VerifyResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	return VerifyResponse{Message: "Payroll record verification completed", Verification: v}, nil
}

// GetRecord finds a stored entry by transaction hash. Employees only see
// their own records, managers those of their branch.
func (r Repository) GetRecord(ctx context.Context, transactionHash string) (RecordResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return RecordResponse{}, err
	}

	var entry entity.PayrollEntry
	err = r.NewSelect().Model(&entry).Where("transaction_hash = ?", transactionHash).Scan(ctx)
	if err != nil {
		return RecordResponse{}, postgres.NotFound(err, "blockchain record")
	}

	records, err := r.branchRecords(ctx, r.DB, claims.BranchId, []string{entry.ID})
	if err != nil {
		return RecordResponse{}, err
	}
	if len(records) == 0 || (!claims.IsManager() && entry.UserID != claims.UserId) {
		return RecordResponse{}, web.NewRequestError(errors.New("blockchain record not found"), http.StatusNotFound)
	}

	rec := records[0]
	return RecordResponse{
		TransactionHash: transactionHash,
		BlockNumber:     deref(rec.entry.BlockNumber),
		BlockchainHash:  derefString(rec.entry.BlockchainHash),
		Verified:        rec.entry.Verified,
		Record:          payroll.LedgerRecord(rec.entry, rec.employee, rec.period),
	}, nil
}

// seal hashes each record, gives it the next block number and writes the
// receipt back to the entry.
func (r Repository) seal(ctx context.Context, records []sealed) ([]ledger.Receipt, error) {
	receipts := make([]ledger.Receipt, 0, len(records))

	err := r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(?)", blockLock); err != nil {
			return errors.Wrap(err, "locking block counter")
		}

		var last int64
		err := tx.NewSelect().
			Table("payroll_entries").
			ColumnExpr("COALESCE(MAX(block_number), 0)").
			Scan(ctx, &last)
		if err != nil {
			return errors.Wrap(err, "selecting last block number")
		}

		for _, rec := range records {
			last++
			receipt, err := ledger.Seal(payroll.LedgerRecord(rec.entry, rec.employee, rec.period), last, postgres.NewID(), time.Now())
			if err != nil {
				return err
			}

			_, err = tx.NewUpdate().
				Table("payroll_entries").
				Set("blockchain_hash = ?", receipt.BlockchainHash).
				Set("block_number = ?", receipt.BlockNumber).
				Set("transaction_hash = ?", receipt.TransactionHash).
				Set("verified = true").
				Where("id = ?", rec.entry.ID).
				Exec(ctx)
			if err != nil {
				return errors.Wrap(err, "updating payroll entry")
			}

			receipts = append(receipts, receipt)
		}

		return nil
	})
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "storing payroll records"), http.StatusInternalServerError)
	}

	return receipts, nil
}

// branchRecords loads the requested entries that belong to employees of the
// branch, with what their hash covers. Unknown ids are skipped.
func (r Repository) branchRecords(ctx context.Context, db bun.IDB, branchID string, ids []string) ([]sealed, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var entries []entity.PayrollEntry
	err := db.NewSelect().
		Model(&entries).
		Where("id IN (?)", bun.In(ids)).
		Where("user_id IN (SELECT id FROM users WHERE branch_id = ?)", branchID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting payroll entries"), http.StatusInternalServerError)
	}

	out := make([]sealed, 0, len(entries))
	for _, e := range entries {
		rec := sealed{entry: e}
		if err := db.NewSelect().Model(&rec.employee).Where("id = ?", e.UserID).Scan(ctx); err != nil {
			return nil, postgres.NotFound(err, "employee")
		}
		if err := db.NewSelect().Model(&rec.period).Where("id = ?", e.PayrollPeriodID).Scan(ctx); err != nil {
			return nil, postgres.NotFound(err, "payroll period")
		}
		out = append(out, rec)
	}

	return out, nil
}

func deref(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
