package shifttrade

import (
	"context"

	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres/shifttrade"
)

type ShiftTrade interface {
	GetAvailable(ctx context.Context) ([]shifttrade.GetListResponse, error)
	GetOwn(ctx context.Context) ([]shifttrade.GetListResponse, error)
	Create(ctx context.Context, request shifttrade.CreateRequest) (entity.ShiftTrade, error)
	Take(ctx context.Context, id string) (entity.ShiftTrade, error)
}
