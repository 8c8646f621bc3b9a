package shift

import (
	"context"

	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres/shift"
)

type Shift interface {
	GetList(ctx context.Context, filter shift.Filter) ([]entity.Shift, error)
	GetBranchList(ctx context.Context, filter shift.Filter) ([]shift.GetBranchListResponse, error)
	GetDetailById(ctx context.Context, id string) (entity.Shift, error)
	Create(ctx context.Context, request shift.CreateRequest) (entity.Shift, error)
	UpdateColumns(ctx context.Context, request shift.UpdateRequest) (entity.Shift, error)
	Delete(ctx context.Context, id string) error
	ClockIn(ctx context.Context, id string) (entity.Shift, error)
	ClockOut(ctx context.Context, id string) (entity.Shift, error)
}
