package approval

import (
	"context"

	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres/approval"
)

type Approval interface {
	GetPending(ctx context.Context) ([]approval.GetListResponse, error)
	Respond(ctx context.Context, request approval.RespondRequest) (entity.Approval, error)
}
