package approval

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/auth"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/pkg/repository/postgresql"
	"cafeshift/backend/internal/repository/postgres"
	"cafeshift/backend/internal/repository/postgres/shifttrade"
	"cafeshift/backend/internal/repository/postgres/timeoff"
	"cafeshift/backend/internal/service/workforce"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetPending lists the pending approvals requested by users of the caller's
// branch, oldest first.
func (r Repository) GetPending(ctx context.Context) ([]GetListResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return nil, err
	}

	var approvals []entity.Approval
	err = r.NewSelect().
		Model(&approvals).
		Where("status = ?", entity.ApprovalPending).
		Where("requested_by IN (SELECT id FROM users WHERE branch_id = ?)", claims.BranchId).
		Order("requested_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting approvals"), http.StatusInternalServerError)
	}

	users, err := postgres.BranchUsers(ctx, r.DB, claims.BranchId)
	if err != nil {
		return nil, web.NewRequestError(err, http.StatusInternalServerError)
	}
	byID := make(map[string]entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	list := make([]GetListResponse, 0, len(approvals))
	for _, a := range approvals {
		item := GetListResponse{Approval: a}
		if u, ok := byID[a.RequestedBy]; ok {
			item.Requester = &u
		}
		list = append(list, item)
	}

	return list, nil
}

// Respond records the manager's answer and applies it to the request the
// approval points at.
func (r Repository) Respond(ctx context.Context, request RespondRequest) (entity.Approval, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return entity.Approval{}, err
	}

	if err := workforce.CheckDecision(request.Status); err != nil {
		return entity.Approval{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	var response entity.Approval
	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(&response).Where("id = ?", request.ID).For("UPDATE").Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return postgres.ErrNotFound
		}
		if err != nil {
			return errors.Wrap(err, "selecting approval")
		}

		inBranch, err := tx.NewSelect().Table("users").
			Where("id = ?", response.RequestedBy).
			Where("branch_id = ?", claims.BranchId).
			Exists(ctx)
		if err != nil {
			return errors.Wrap(err, "selecting requester")
		}
		if !inBranch {
			return postgres.ErrNotFound
		}
		if err := workforce.CheckPending(response.Status); err != nil {
			return err
		}

		now := time.Now()
		response.Status = request.Status
		response.Reason = request.Reason
		response.ApprovedBy = &claims.UserId
		response.RespondedAt = &now
		if _, err := tx.NewUpdate().Model(&response).
			Column("status", "reason", "approved_by", "responded_at").
			WherePK().
			Exec(ctx); err != nil {
			return errors.Wrap(err, "updating approval")
		}

		switch response.Type {
		case entity.ApprovalShiftTrade:
			_, err = shifttrade.Decide(ctx, tx, response.RequestID, claims.BranchId, request.Status, claims.UserId)
		case entity.ApprovalLeaveRequest:
			_, err = timeoff.Decide(ctx, tx, response.RequestID, claims.BranchId, request.Status, claims.UserId)
		}
		return err
	})

	if err != nil {
		return entity.Approval{}, postgres.DecisionError(err, "approval")
	}

	return response, nil
}
