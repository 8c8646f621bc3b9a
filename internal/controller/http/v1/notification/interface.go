package notification

import (
	"context"

	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres/notification"
)

type Notification interface {
	GetList(ctx context.Context, filter notification.Filter) ([]entity.Notification, int, error)
	MarkRead(ctx context.Context, id string) (entity.Notification, error)
	MarkAllRead(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
