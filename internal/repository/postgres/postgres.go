// Package postgres holds what the resource repositories share: sentinel
// errors and the notification/approval writes that several of them perform
// inside their own transactions.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/service/workforce"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyResolved = workforce.ErrAlreadyResolved
)

// NewID returns a new primary key.
func NewID() string {
	return uuid.NewString()
}

// IsUniqueViolation reports a duplicate key error from postgres.
func IsUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}

// NotFound converts sql.ErrNoRows into a 404 and anything else into a 500.
func NotFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return web.NewRequestError(errors.Errorf("%s not found", what), http.StatusNotFound)
	}
	return web.NewRequestError(errors.Wrapf(err, "selecting %s", what), http.StatusInternalServerError)
}

// DecisionError maps the outcome of answering a request to a response:
// unknown requests are 404, refused transitions 400 and anything else 500.
func DecisionError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return web.NewRequestError(errors.Errorf("%s not found", what), http.StatusNotFound)
	case errors.Is(err, workforce.ErrAlreadyResolved),
		errors.Is(err, workforce.ErrInvalidDecision),
		errors.Is(err, workforce.ErrNoTaker),
		errors.Is(err, workforce.ErrOwnTrade):
		return web.NewRequestError(err, http.StatusBadRequest)
	default:
		return web.NewRequestError(err, http.StatusInternalServerError)
	}
}

// Notify inserts a notification. db may be a transaction.
func Notify(ctx context.Context, db bun.IDB, userID, kind, title, message string, data any) (entity.Notification, error) {
	n := entity.Notification{
		BasicEntity: entity.BasicEntity{ID: NewID(), CreatedAt: time.Now()},
		UserID:      userID,
		Type:        kind,
		Title:       title,
		Message:     message,
	}

	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return entity.Notification{}, errors.Wrap(err, "encoding notification data")
		}
		n.Data = raw
	}

	if _, err := db.NewInsert().Model(&n).Exec(ctx); err != nil {
		return entity.Notification{}, errors.Wrap(err, "creating notification")
	}

	return n, nil
}

// NotifyManagers sends the same notification to every active manager of a
// branch.
func NotifyManagers(ctx context.Context, db bun.IDB, branchID, kind, title, message string, data any) error {
	var managerIDs []string
	err := db.NewSelect().
		Table("users").
		Column("id").
		Where("branch_id = ?", branchID).
		Where("role = ?", "manager").
		Where("is_active = true").
		Scan(ctx, &managerIDs)
	if err != nil {
		return errors.Wrap(err, "selecting branch managers")
	}

	for _, id := range managerIDs {
		if _, err := Notify(ctx, db, id, kind, title, message, data); err != nil {
			return err
		}
	}

	return nil
}

// CreateApproval records a pending approval for a request.
func CreateApproval(ctx context.Context, db bun.IDB, kind, requestID, requestedBy string, data any) (entity.Approval, error) {
	now := time.Now()
	a := entity.Approval{
		BasicEntity: entity.BasicEntity{ID: NewID(), CreatedAt: now},
		Type:        kind,
		RequestID:   requestID,
		RequestedBy: requestedBy,
		Status:      entity.ApprovalPending,
		RequestedAt: now,
	}

	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return entity.Approval{}, errors.Wrap(err, "encoding approval data")
		}
		a.RequestData = raw
	}

	if _, err := db.NewInsert().Model(&a).Exec(ctx); err != nil {
		return entity.Approval{}, errors.Wrap(err, "creating approval")
	}

	return a, nil
}

// ResolveApproval closes the pending approval that points at a request, if
// there is one.
func ResolveApproval(ctx context.Context, db bun.IDB, kind, requestID, status, managerID string, reason *string) error {
	q := db.NewUpdate().
		Table("approvals").
		Set("status = ?", status).
		Set("approved_by = ?", managerID).
		Set("responded_at = ?", time.Now()).
		Where("type = ?", kind).
		Where("request_id = ?", requestID).
		Where("status = ?", entity.ApprovalPending)
	if reason != nil {
		q.Set("reason = ?", *reason)
	}

	if _, err := q.Exec(ctx); err != nil {
		return errors.Wrap(err, "resolving approval")
	}

	return nil
}

// ShiftsByBranch returns the shifts of a branch's users whose scheduled start
// lies in [from, to).
func ShiftsByBranch(ctx context.Context, db bun.IDB, branchID string, from, to time.Time) ([]entity.Shift, error) {
	var shifts []entity.Shift
	err := db.NewSelect().
		Model(&shifts).
		Where("user_id IN (SELECT id FROM users WHERE branch_id = ?)", branchID).
		Where("start_time >= ?", from).
		Where("start_time < ?", to).
		Order("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "selecting branch shifts")
	}

	return shifts, nil
}

// BranchUsers returns every user of a branch, active or not.
func BranchUsers(ctx context.Context, db bun.IDB, branchID string) ([]entity.User, error) {
	var users []entity.User
	err := db.NewSelect().
		Model(&users).
		Where("branch_id = ?", branchID).
		Order("first_name ASC", "last_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "selecting branch users")
	}

	return users, nil
}
