package shifttrade

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/pkg/repository/postgresql"
	"cafeshift/backend/internal/repository/postgres"
	"cafeshift/backend/internal/service/workforce"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

var urgencies = map[string]bool{"low": true, "normal": true, "high": true, "urgent": true}

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetAvailable lists the pending trades of the caller's branch.
func (r Repository) GetAvailable(ctx context.Context) ([]GetListResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	var trades []entity.ShiftTrade
	err = r.NewSelect().
		Model(&trades).
		Where("status = ?", entity.TradePending).
		Where("shift_id IN (SELECT id FROM shifts WHERE branch_id = ?)", claims.BranchId).
		Order("requested_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting shift trades"), http.StatusInternalServerError)
	}

	return r.withDetails(ctx, trades)
}

// GetOwn lists the trades the caller offered or took.
func (r Repository) GetOwn(ctx context.Context) ([]GetListResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	var trades []entity.ShiftTrade
	err = r.NewSelect().
		Model(&trades).
		Where("from_user_id = ?", claims.UserId).
		WhereOr("to_user_id = ?", claims.UserId).
		Order("requested_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting shift trades"), http.StatusInternalServerError)
	}

	return r.withDetails(ctx, trades)
}

// Create offers one of the caller's shifts. Managers of the branch get an
// approval request and a notification.
func (r Repository) Create(ctx context.Context, request CreateRequest) (entity.ShiftTrade, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return entity.ShiftTrade{}, err
	}

	if err := r.ValidateStruct(&request, "ShiftID", "Reason"); err != nil {
		return entity.ShiftTrade{}, err
	}

	urgency := "normal"
	if request.Urgency != nil && *request.Urgency != "" {
		urgency = strings.ToLower(*request.Urgency)
		if !urgencies[urgency] {
			return entity.ShiftTrade{}, web.NewRequestError(errors.New("invalid urgency"), http.StatusBadRequest)
		}
	}

	var shift entity.Shift
	if err := r.NewSelect().Model(&shift).Where("id = ?", request.ShiftID).Scan(ctx); err != nil {
		return entity.ShiftTrade{}, postgres.NotFound(err, "shift")
	}
	if shift.UserID != claims.UserId {
		return entity.ShiftTrade{}, web.NewRequestError(errors.New("you can only trade your own shifts"), http.StatusForbidden)
	}

	if request.ToUserID != nil {
		if *request.ToUserID == claims.UserId {
			return entity.ShiftTrade{}, web.NewRequestError(errors.New("cannot trade a shift with yourself"), http.StatusBadRequest)
		}
		exists, err := r.NewSelect().Table("users").
			Where("id = ?", *request.ToUserID).
			Where("branch_id = ?", claims.BranchId).
			Where("is_active = true").
			Exists(ctx)
		if err != nil {
			return entity.ShiftTrade{}, web.NewRequestError(errors.Wrap(err, "selecting employee"), http.StatusInternalServerError)
		}
		if !exists {
			return entity.ShiftTrade{}, web.NewRequestError(errors.New("employee not found"), http.StatusNotFound)
		}
	}

	now := time.Now()
	trade := entity.ShiftTrade{
		BasicEntity: entity.BasicEntity{ID: postgres.NewID(), CreatedAt: now},
		ShiftID:     shift.ID,
		FromUserID:  claims.UserId,
		ToUserID:    request.ToUserID,
		Reason:      strings.TrimSpace(request.Reason),
		Status:      entity.TradePending,
		Urgency:     urgency,
		Notes:       request.Notes,
		RequestedAt: now,
	}

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&trade).Exec(ctx); err != nil {
			return errors.Wrap(err, "creating shift trade")
		}

		data := map[string]any{
			"tradeId":   trade.ID,
			"shiftId":   shift.ID,
			"startTime": shift.StartTime,
			"endTime":   shift.EndTime,
			"reason":    trade.Reason,
		}
		if _, err := postgres.CreateApproval(ctx, tx, entity.ApprovalShiftTrade, trade.ID, claims.UserId, data); err != nil {
			return err
		}

		message := claims.Username + " wants to trade the shift on " + shift.StartTime.Format("Jan 2, 3:04 PM")
		return postgres.NotifyManagers(ctx, tx, claims.BranchId, entity.NotificationSchedule, "New Shift Trade Request", message, data)
	})
	if err != nil {
		return entity.ShiftTrade{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	return trade, nil
}

// Take volunteers the caller for a pending trade. A manager still has to
// approve it.
func (r Repository) Take(ctx context.Context, id string) (entity.ShiftTrade, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return entity.ShiftTrade{}, err
	}

	var trade entity.ShiftTrade
	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&trade).
			Where("id = ?", id).
			Where("shift_id IN (SELECT id FROM shifts WHERE branch_id = ?)", claims.BranchId).
			For("UPDATE").
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return postgres.ErrNotFound
		}
		if err != nil {
			return errors.Wrap(err, "selecting shift trade")
		}

		if err := workforce.CheckTake(trade, claims.UserId); err != nil {
			return err
		}

		trade.ToUserID = &claims.UserId
		res, err := tx.NewUpdate().Model(&trade).
			Column("to_user_id").
			WherePK().
			Where("status = ?", entity.TradePending).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "updating shift trade")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return postgres.ErrAlreadyResolved
		}
		return nil
	})

	if err != nil {
		return entity.ShiftTrade{}, postgres.DecisionError(err, "trade")
	}

	return trade, nil
}

// Decide applies a manager's answer to a pending trade inside db, which is
// expected to be a transaction. Approving reassigns the shift.
func Decide(ctx context.Context, db bun.IDB, tradeID, branchID, status, managerID string) (entity.ShiftTrade, error) {
	var trade entity.ShiftTrade
	err := db.NewSelect().Model(&trade).Where("id = ?", tradeID).For("UPDATE").Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ShiftTrade{}, postgres.ErrNotFound
	}
	if err != nil {
		return entity.ShiftTrade{}, errors.Wrap(err, "selecting shift trade")
	}

	var shift entity.Shift
	if err := db.NewSelect().Model(&shift).Where("id = ?", trade.ShiftID).Scan(ctx); err != nil {
		return entity.ShiftTrade{}, errors.Wrap(err, "selecting shift")
	}
	if shift.BranchID != branchID {
		return entity.ShiftTrade{}, postgres.ErrNotFound
	}

	when := shift.StartTime.Format("Jan 2, 3:04 PM")
	outcome, err := workforce.DecideTrade(trade, status, when)
	if err != nil {
		return entity.ShiftTrade{}, err
	}

	now := time.Now()
	trade.Status = status
	trade.ApprovedBy = &managerID
	trade.ApprovedAt = &now
	if _, err := db.NewUpdate().Model(&trade).Column("status", "approved_by", "approved_at").WherePK().Exec(ctx); err != nil {
		return entity.ShiftTrade{}, errors.Wrap(err, "updating shift trade")
	}

	data := map[string]string{"tradeId": trade.ID, "shiftId": shift.ID, "status": status}

	if outcome.AssignTo != "" {
		if _, err := db.NewUpdate().Table("shifts").
			Set("user_id = ?", outcome.AssignTo).
			Where("id = ?", shift.ID).
			Exec(ctx); err != nil {
			return entity.ShiftTrade{}, errors.Wrap(err, "reassigning shift")
		}
	}

	for _, n := range outcome.Notices {
		if _, err := postgres.Notify(ctx, db, n.UserID, entity.NotificationSchedule, n.Title, n.Message, data); err != nil {
			return entity.ShiftTrade{}, err
		}
	}

	return trade, nil
}

func (r Repository) withDetails(ctx context.Context, trades []entity.ShiftTrade) ([]GetListResponse, error) {
	list := make([]GetListResponse, 0, len(trades))
	if len(trades) == 0 {
		return list, nil
	}

	shiftIDs := make([]string, 0, len(trades))
	userIDs := make([]string, 0, len(trades))
	for _, t := range trades {
		shiftIDs = append(shiftIDs, t.ShiftID)
		userIDs = append(userIDs, t.FromUserID)
	}

	var shifts []entity.Shift
	if err := r.NewSelect().Model(&shifts).Where("id IN (?)", bun.In(shiftIDs)).Scan(ctx); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting shifts"), http.StatusInternalServerError)
	}
	var users []entity.User
	if err := r.NewSelect().Model(&users).Where("id IN (?)", bun.In(userIDs)).Scan(ctx); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting users"), http.StatusInternalServerError)
	}

	shiftByID := make(map[string]entity.Shift, len(shifts))
	for _, s := range shifts {
		shiftByID[s.ID] = s
	}
	userByID := make(map[string]entity.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	for _, t := range trades {
		item := GetListResponse{ShiftTrade: t}
		if s, ok := shiftByID[t.ShiftID]; ok {
			item.Shift = &s
		}
		if u, ok := userByID[t.FromUserID]; ok {
			item.FromUser = &u
		}
		list = append(list, item)
	}

	return list, nil
}
