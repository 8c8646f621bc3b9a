package timeoff

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/auth"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/pkg/repository/postgresql"
	"cafeshift/backend/internal/repository/postgres"
	"cafeshift/backend/internal/service/workforce"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

var leaveTypes = map[string]bool{
	entity.LeaveVacation: true,
	entity.LeaveSick:     true,
	entity.LeavePersonal: true,
}

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetList returns every request of the branch to managers and the caller's
// own requests to employees.
func (r Repository) GetList(ctx context.Context) ([]GetListResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	var requests []entity.TimeOffRequest
	q := r.NewSelect().Model(&requests)
	if claims.IsManager() {
		q.Where("user_id IN (SELECT id FROM users WHERE branch_id = ?)", claims.BranchId)
	} else {
		q.Where("user_id = ?", claims.UserId)
	}
	if err := q.Order("requested_at DESC").Scan(ctx); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting time off requests"), http.StatusInternalServerError)
	}

	users, err := postgres.BranchUsers(ctx, r.DB, claims.BranchId)
	if err != nil {
		return nil, web.NewRequestError(err, http.StatusInternalServerError)
	}
	byID := make(map[string]entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	list := make([]GetListResponse, 0, len(requests))
	for _, req := range requests {
		item := GetListResponse{TimeOffRequest: req}
		if u, ok := byID[req.UserID]; ok {
			item.User = &u
		}
		list = append(list, item)
	}

	return list, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (entity.TimeOffRequest, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return entity.TimeOffRequest{}, err
	}

	if err := r.ValidateStruct(&request, "StartDate", "EndDate", "Type", "Reason"); err != nil {
		return entity.TimeOffRequest{}, err
	}
	kind := strings.ToLower(request.Type)
	if !leaveTypes[kind] {
		return entity.TimeOffRequest{}, web.NewRequestError(errors.New("type must be vacation, sick or personal"), http.StatusBadRequest)
	}
	if request.EndDate.Before(request.StartDate) {
		return entity.TimeOffRequest{}, web.NewRequestError(errors.New("end date cannot be before start date"), http.StatusBadRequest)
	}

	now := time.Now()
	response := entity.TimeOffRequest{
		BasicEntity: entity.BasicEntity{ID: postgres.NewID(), CreatedAt: now},
		UserID:      claims.UserId,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
		Type:        kind,
		Reason:      strings.TrimSpace(request.Reason),
		Status:      entity.LeavePending,
		RequestedAt: now,
	}

	var employee entity.User
	if err := r.NewSelect().Model(&employee).Where("id = ?", claims.UserId).Scan(ctx); err != nil {
		return entity.TimeOffRequest{}, postgres.NotFound(err, "user")
	}

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&response).Exec(ctx); err != nil {
			return errors.Wrap(err, "creating time off request")
		}

		data := map[string]any{
			"requestId":  response.ID,
			"employeeId": claims.UserId,
			"type":       kind,
			"startDate":  response.StartDate,
			"endDate":    response.EndDate,
		}
		if _, err := postgres.CreateApproval(ctx, tx, entity.ApprovalLeaveRequest, response.ID, claims.UserId, data); err != nil {
			return err
		}

		message := fmt.Sprintf("%s has requested time off from %s to %s (%s)",
			employee.FullName(), response.StartDate.Format("Jan 2"), response.EndDate.Format("Jan 2, 2006"), kind)
		return postgres.NotifyManagers(ctx, tx, claims.BranchId, entity.NotificationSchedule, "New Time Off Request", message, data)
	})
	if err != nil {
		return entity.TimeOffRequest{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	return response, nil
}

// Approve and Reject answer a pending request and close its approval.
func (r Repository) Approve(ctx context.Context, id string) (entity.TimeOffRequest, error) {
	return r.respond(ctx, id, entity.LeaveApproved)
}

func (r Repository) Reject(ctx context.Context, id string) (entity.TimeOffRequest, error) {
	return r.respond(ctx, id, entity.LeaveRejected)
}

func (r Repository) respond(ctx context.Context, id, status string) (entity.TimeOffRequest, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return entity.TimeOffRequest{}, err
	}

	var response entity.TimeOffRequest
	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		if response, err = Decide(ctx, tx, id, claims.BranchId, status, claims.UserId); err != nil {
			return err
		}
		return postgres.ResolveApproval(ctx, tx, entity.ApprovalLeaveRequest, id, status, claims.UserId, nil)
	})

	if err != nil {
		return entity.TimeOffRequest{}, postgres.DecisionError(err, "time off request")
	}

	return response, nil
}

// Balance is the caller's remaining time off this year.
func (r Repository) Balance(ctx context.Context) (workforce.Balance, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return workforce.Balance{}, err
	}

	var requests []entity.TimeOffRequest
	err = r.NewSelect().Model(&requests).
		Where("user_id = ?", claims.UserId).
		Where("status = ?", entity.LeaveApproved).
		Scan(ctx)
	if err != nil {
		return workforce.Balance{}, web.NewRequestError(errors.Wrap(err, "selecting time off requests"), http.StatusInternalServerError)
	}

	return workforce.LeaveBalance(requests, time.Now().Year()), nil
}

// Decide answers a pending request inside db, which is expected to be a
// transaction, and notifies the employee.
func Decide(ctx context.Context, db bun.IDB, id, branchID, status, managerID string) (entity.TimeOffRequest, error) {
	var request entity.TimeOffRequest
	err := db.NewSelect().Model(&request).Where("id = ?", id).For("UPDATE").Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.TimeOffRequest{}, postgres.ErrNotFound
	}
	if err != nil {
		return entity.TimeOffRequest{}, errors.Wrap(err, "selecting time off request")
	}

	inBranch, err := db.NewSelect().Table("users").
		Where("id = ?", request.UserID).
		Where("branch_id = ?", branchID).
		Exists(ctx)
	if err != nil {
		return entity.TimeOffRequest{}, errors.Wrap(err, "selecting employee")
	}
	if !inBranch {
		return entity.TimeOffRequest{}, postgres.ErrNotFound
	}
	title, err := workforce.DecideLeave(request, status)
	if err != nil {
		return entity.TimeOffRequest{}, err
	}

	now := time.Now()
	request.Status = status
	request.ApprovedBy = &managerID
	request.ApprovedAt = &now
	if _, err := db.NewUpdate().Model(&request).Column("status", "approved_by", "approved_at").WherePK().Exec(ctx); err != nil {
		return entity.TimeOffRequest{}, errors.Wrap(err, "updating time off request")
	}

	message := fmt.Sprintf("Your time off request from %s to %s has been %s",
		request.StartDate.Format("Jan 2"), request.EndDate.Format("Jan 2, 2006"), status)
	data := map[string]string{"requestId": request.ID, "status": status}

	if _, err := postgres.Notify(ctx, db, request.UserID, entity.NotificationSchedule, title, message, data); err != nil {
		return entity.TimeOffRequest{}, err
	}

	return request, nil
}
