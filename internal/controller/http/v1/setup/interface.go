package setup

import (
	"context"

	"cafeshift/backend/internal/repository/postgres/setup"
)

type Setup interface {
	IsComplete(ctx context.Context) (bool, error)
	Complete(ctx context.Context, request setup.CreateRequest) (setup.CreateResponse, error)
}
