package payroll

import (
	"context"
	"database/sql"
	"time"

	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres"
	"cafeshift/backend/internal/service/payroll"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// txStore runs the payroll processor's reads and writes on one transaction.
type txStore struct {
	tx bun.Tx
}

var _ payroll.Store = txStore{}

func (s txStore) LockPeriod(ctx context.Context, id string) (entity.PayrollPeriod, error) {
	var period entity.PayrollPeriod
	err := s.tx.NewSelect().Model(&period).Where("id = ?", id).For("UPDATE").Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.PayrollPeriod{}, payroll.ErrPeriodNotFound
	}
	if err != nil {
		return entity.PayrollPeriod{}, errors.Wrap(err, "locking payroll period")
	}

	return period, nil
}

func (s txStore) ActiveEmployees(ctx context.Context, branchID string) ([]entity.User, error) {
	var users []entity.User
	err := s.tx.NewSelect().
		Model(&users).
		Where("branch_id = ?", branchID).
		Where("is_active = true").
		Order("created_at ASC").
		Scan(ctx)

	return users, err
}

func (s txStore) ShiftsStartingBetween(ctx context.Context, userID string, from, to time.Time) ([]entity.Shift, error) {
	var shifts []entity.Shift
	err := s.tx.NewSelect().
		Model(&shifts).
		Where("user_id = ?", userID).
		Where("start_time >= ?", from).
		Where("start_time <= ?", to).
		Scan(ctx)

	return shifts, err
}

// CreateEntry reports a second entry for the same employee and period as
// the period no longer being open.
func (s txStore) CreateEntry(ctx context.Context, entry *entity.PayrollEntry) error {
	_, err := s.tx.NewInsert().Model(entry).Exec(ctx)
	if postgres.IsUniqueViolation(err) {
		return payroll.ErrPeriodNotOpen
	}

	return err
}

func (s txStore) Notify(ctx context.Context, n *entity.Notification) error {
	_, err := s.tx.NewInsert().Model(n).Exec(ctx)
	return err
}

func (s txStore) ClosePeriod(ctx context.Context, id string, totalHours, totalPay float64) error {
	_, err := s.tx.NewUpdate().
		Table("payroll_periods").
		Set("status = ?", entity.PeriodClosed).
		Set("total_hours = ?", totalHours).
		Set("total_pay = ?", totalPay).
		Where("id = ?", id).
		Exec(ctx)

	return err
}
