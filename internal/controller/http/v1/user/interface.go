package user

import (
	"context"

	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres/user"
)

type User interface {
	GetList(ctx context.Context, filter user.Filter) ([]entity.User, int, error)
	GetDetailById(ctx context.Context, id string) (entity.User, error)
	GetStatistics(ctx context.Context) (user.StatisticsResponse, error)
	GetPerformance(ctx context.Context) ([]user.PerformanceResponse, error)

	Create(ctx context.Context, request user.CreateRequest) (entity.User, error)
	CreateByExcel(ctx context.Context, request user.ExcelRequest) (user.ImportResponse, error)
	Export(ctx context.Context) ([]byte, error)
	UpdateColumns(ctx context.Context, request user.UpdateRequest) (entity.User, error)
	SetActive(ctx context.Context, request user.BulkRequest, active bool) (int, error)
}
