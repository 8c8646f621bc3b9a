package timeoff

import (
	"context"

	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres/timeoff"
	"cafeshift/backend/internal/service/workforce"
)

type TimeOff interface {
	GetList(ctx context.Context) ([]timeoff.GetListResponse, error)
	Create(ctx context.Context, request timeoff.CreateRequest) (entity.TimeOffRequest, error)
	Approve(ctx context.Context, id string) (entity.TimeOffRequest, error)
	Reject(ctx context.Context, id string) (entity.TimeOffRequest, error)
	Balance(ctx context.Context) (workforce.Balance, error)
}
