package branch

import (
	"context"

	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres/branch"
)

type Branch interface {
	GetList(ctx context.Context) ([]entity.Branch, error)
	GetDetailById(ctx context.Context, id string) (entity.Branch, error)
	Create(ctx context.Context, request branch.CreateRequest) (entity.Branch, error)
	UpdateColumns(ctx context.Context, request branch.UpdateRequest) (entity.Branch, error)
}
