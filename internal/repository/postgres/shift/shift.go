package shift

import (
	"context"
	"net/http"
	"strings"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/auth"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/pkg/repository/postgresql"
	"cafeshift/backend/internal/repository/postgres"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

var (
	statuses = map[string]bool{
		entity.ShiftScheduled:  true,
		entity.ShiftInProgress: true,
		entity.ShiftCompleted:  true,
		entity.ShiftMissed:     true,
		entity.ShiftCancelled:  true,
	}
	patterns = map[string]bool{"weekly": true, "biweekly": true, "monthly": true}
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetList returns the caller's shifts, or another user's for managers.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]entity.Shift, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	userID := claims.UserId
	if filter.UserID != nil && *filter.UserID != claims.UserId {
		if !claims.IsManager() {
			return nil, web.NewRequestError(auth.ErrForbidden, http.StatusForbidden)
		}
		userID = *filter.UserID
	}

	list := []entity.Shift{}
	q := r.NewSelect().Model(&list).Where("user_id = ?", userID)
	q = applyRange(q, filter)

	if err := q.Order("start_time ASC").Scan(ctx); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting shifts"), http.StatusInternalServerError)
	}

	return list, nil
}

// GetBranchList returns the shifts of the caller's branch with their
// employee. Shifts of inactive employees are left out.
func (r Repository) GetBranchList(ctx context.Context, filter Filter) ([]GetBranchListResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return nil, err
	}

	var shifts []entity.Shift
	q := r.NewSelect().Model(&shifts).Where("branch_id = ?", claims.BranchId)
	q = applyRange(q, filter)
	if err := q.Order("start_time ASC").Scan(ctx); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting branch shifts"), http.StatusInternalServerError)
	}

	users, err := r.usersByID(ctx, shifts)
	if err != nil {
		return nil, err
	}

	list := make([]GetBranchListResponse, 0, len(shifts))
	for _, s := range shifts {
		u, ok := users[s.UserID]
		if !ok || !u.IsActive {
			continue
		}
		list = append(list, GetBranchListResponse{Shift: s, User: &u})
	}

	return list, nil
}

func (r Repository) GetDetailById(ctx context.Context, id string) (entity.Shift, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return entity.Shift{}, err
	}

	detail, err := r.get(ctx, id)
	if err != nil {
		return entity.Shift{}, err
	}
	if detail.UserID != claims.UserId && !(claims.IsManager() && detail.BranchID == claims.BranchId) {
		return entity.Shift{}, web.NewRequestError(errors.New("shift not found"), http.StatusNotFound)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (entity.Shift, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return entity.Shift{}, err
	}

	if err := r.ValidateStruct(&request, "UserID", "StartTime", "EndTime", "Position"); err != nil {
		return entity.Shift{}, err
	}
	if !request.EndTime.After(request.StartTime) {
		return entity.Shift{}, web.NewRequestError(errors.New("end time must be after start time"), http.StatusBadRequest)
	}
	if request.RecurringPattern != nil && !patterns[*request.RecurringPattern] {
		return entity.Shift{}, web.NewRequestError(errors.New("recurring pattern must be weekly, biweekly or monthly"), http.StatusBadRequest)
	}

	employee, err := r.employee(ctx, request.UserID, claims.BranchId)
	if err != nil {
		return entity.Shift{}, err
	}

	response := entity.Shift{
		BasicEntity:      entity.BasicEntity{ID: postgres.NewID(), CreatedAt: time.Now()},
		UserID:           employee.ID,
		BranchID:         employee.BranchID,
		StartTime:        request.StartTime,
		EndTime:          request.EndTime,
		Position:         strings.TrimSpace(request.Position),
		IsRecurring:      request.RecurringPattern != nil,
		RecurringPattern: request.RecurringPattern,
		Status:           entity.ShiftScheduled,
	}

	if _, err := r.NewInsert().Model(&response).Exec(ctx); err != nil {
		return entity.Shift{}, web.NewRequestError(errors.Wrap(err, "creating shift"), http.StatusInternalServerError)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) (entity.Shift, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return entity.Shift{}, err
	}

	detail, err := r.branchShift(ctx, request.ID, claims.BranchId)
	if err != nil {
		return entity.Shift{}, err
	}

	if request.UserID != nil && *request.UserID != detail.UserID {
		employee, err := r.employee(ctx, *request.UserID, claims.BranchId)
		if err != nil {
			return entity.Shift{}, err
		}
		detail.UserID = employee.ID
		detail.BranchID = employee.BranchID
	}
	if request.StartTime != nil {
		detail.StartTime = *request.StartTime
	}
	if request.EndTime != nil {
		detail.EndTime = *request.EndTime
	}
	if request.Position != nil {
		detail.Position = strings.TrimSpace(*request.Position)
	}
	if request.Status != nil {
		if !statuses[*request.Status] {
			return entity.Shift{}, web.NewRequestError(errors.New("invalid shift status"), http.StatusBadRequest)
		}
		detail.Status = *request.Status
	}
	if request.RecurringPattern != nil {
		if *request.RecurringPattern == "" {
			detail.RecurringPattern = nil
		} else if !patterns[*request.RecurringPattern] {
			return entity.Shift{}, web.NewRequestError(errors.New("recurring pattern must be weekly, biweekly or monthly"), http.StatusBadRequest)
		} else {
			detail.RecurringPattern = request.RecurringPattern
		}
		detail.IsRecurring = detail.RecurringPattern != nil
	}
	if request.ActualStartTime != nil {
		detail.ActualStartTime = request.ActualStartTime
	}
	if request.ActualEndTime != nil {
		detail.ActualEndTime = request.ActualEndTime
	}

	if !detail.EndTime.After(detail.StartTime) {
		return entity.Shift{}, web.NewRequestError(errors.New("end time must be after start time"), http.StatusBadRequest)
	}

	if _, err := r.NewUpdate().Model(&detail).WherePK().Exec(ctx); err != nil {
		return entity.Shift{}, web.NewRequestError(errors.Wrap(err, "updating shift"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) Delete(ctx context.Context, id string) error {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return err
	}

	if _, err := r.branchShift(ctx, id, claims.BranchId); err != nil {
		return err
	}

	return r.DeleteRow(ctx, "shifts", id)
}

// ClockIn records the actual start of a shift and tells the employee.
func (r Repository) ClockIn(ctx context.Context, id string) (entity.Shift, error) {
	return r.clock(ctx, id, "clock-in")
}

// ClockOut records the actual end of a shift, completing it.
func (r Repository) ClockOut(ctx context.Context, id string) (entity.Shift, error) {
	return r.clock(ctx, id, "clock-out")
}

func (r Repository) clock(ctx context.Context, id, action string) (entity.Shift, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return entity.Shift{}, err
	}

	detail, err := r.branchShift(ctx, id, claims.BranchId)
	if err != nil {
		return entity.Shift{}, err
	}

	now := time.Now()
	title, message := "Clocked In", "You have been clocked in for your shift at "+now.Format("3:04 PM")
	if action == "clock-in" {
		detail.ActualStartTime = &now
		detail.Status = entity.ShiftInProgress
	} else {
		detail.ActualEndTime = &now
		detail.Status = entity.ShiftCompleted
		title, message = "Clocked Out", "You have been clocked out from your shift at "+now.Format("3:04 PM")
	}

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(&detail).
			Column("actual_start_time", "actual_end_time", "status").
			WherePK().
			Exec(ctx); err != nil {
			return errors.Wrap(err, "updating shift")
		}

		data := map[string]string{"shiftId": detail.ID, "action": action}
		_, err := postgres.Notify(ctx, tx, detail.UserID, entity.NotificationSchedule, title, message, data)
		return err
	})
	if err != nil {
		return entity.Shift{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) get(ctx context.Context, id string) (entity.Shift, error) {
	var detail entity.Shift
	if err := r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx); err != nil {
		return entity.Shift{}, postgres.NotFound(err, "shift")
	}
	return detail, nil
}

func (r Repository) branchShift(ctx context.Context, id, branchID string) (entity.Shift, error) {
	detail, err := r.get(ctx, id)
	if err != nil {
		return entity.Shift{}, err
	}
	if detail.BranchID != branchID {
		return entity.Shift{}, web.NewRequestError(errors.New("shift not found"), http.StatusNotFound)
	}
	return detail, nil
}

func (r Repository) employee(ctx context.Context, id, branchID string) (entity.User, error) {
	var u entity.User
	if err := r.NewSelect().Model(&u).Where("id = ?", id).Scan(ctx); err != nil {
		return entity.User{}, postgres.NotFound(err, "employee")
	}
	if u.BranchID != branchID {
		return entity.User{}, web.NewRequestError(errors.New("employee not found"), http.StatusNotFound)
	}
	return u, nil
}

func (r Repository) usersByID(ctx context.Context, shifts []entity.Shift) (map[string]entity.User, error) {
	ids := make([]string, 0, len(shifts))
	seen := make(map[string]bool)
	for _, s := range shifts {
		if !seen[s.UserID] {
			seen[s.UserID] = true
			ids = append(ids, s.UserID)
		}
	}

	out := make(map[string]entity.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var users []entity.User
	if err := r.NewSelect().Model(&users).Where("id IN (?)", bun.In(ids)).Scan(ctx); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting users"), http.StatusInternalServerError)
	}
	for _, u := range users {
		out[u.ID] = u
	}

	return out, nil
}

// applyRange filters on the scheduled start within [StartDate, EndDate).
func applyRange(q *bun.SelectQuery, filter Filter) *bun.SelectQuery {
	if filter.StartDate != nil {
		q = q.Where("start_time >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("start_time < ?", *filter.EndDate)
	}
	return q
}
