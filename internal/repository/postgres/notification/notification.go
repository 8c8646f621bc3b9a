package notification

import (
	"context"
	"net/http"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/pkg/repository/postgresql"
	"cafeshift/backend/internal/repository/postgres"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetList returns the caller's notifications, newest first, with the count
// of unread ones.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]entity.Notification, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	list := []entity.Notification{}
	q := r.NewSelect().Model(&list).Where("user_id = ?", claims.UserId)
	if filter.UnreadOnly != nil && *filter.UnreadOnly {
		q.Where("is_read = false")
	}
	if filter.Limit != nil {
		q.Limit(*filter.Limit)
	}
	if err := q.Order("created_at DESC").Scan(ctx); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting notifications"), http.StatusInternalServerError)
	}

	unread, err := r.NewSelect().Model((*entity.Notification)(nil)).
		Where("user_id = ?", claims.UserId).
		Where("is_read = false").
		Count(ctx)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting notifications"), http.StatusInternalServerError)
	}

	return list, unread, nil
}

// MarkRead only touches the caller's own notification.
func (r Repository) MarkRead(ctx context.Context, id string) (entity.Notification, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return entity.Notification{}, err
	}

	var detail entity.Notification
	err = r.NewSelect().Model(&detail).Where("id = ?", id).Where("user_id = ?", claims.UserId).Scan(ctx)
	if err != nil {
		return entity.Notification{}, postgres.NotFound(err, "notification")
	}

	detail.IsRead = true
	if _, err := r.NewUpdate().Model(&detail).Column("is_read").WherePK().Exec(ctx); err != nil {
		return entity.Notification{}, web.NewRequestError(errors.Wrap(err, "updating notification"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) MarkAllRead(ctx context.Context) (int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return 0, err
	}

	res, err := r.NewUpdate().
		Table("notifications").
		Set("is_read = true").
		Where("user_id = ?", claims.UserId).
		Where("is_read = false").
		Exec(ctx)
	if err != nil {
		return 0, web.NewRequestError(errors.Wrap(err, "updating notifications"), http.StatusInternalServerError)
	}

	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r Repository) Delete(ctx context.Context, id string) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	owned, err := r.NewSelect().Table("notifications").
		Where("id = ?", id).
		Where("user_id = ?", claims.UserId).
		Exists(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "selecting notification"), http.StatusInternalServerError)
	}
	if !owned {
		return web.NewRequestError(errors.New("notification not found"), http.StatusNotFound)
	}

	return r.DeleteRow(ctx, "notifications", id)
}
