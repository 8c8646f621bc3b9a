package branch

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
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetList(ctx context.Context) ([]entity.Branch, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, err
	}

	list := []entity.Branch{}
	if err := r.NewSelect().Model(&list).Order("name ASC").Scan(ctx); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting branches"), http.StatusInternalServerError)
	}

	return list, nil
}

func (r Repository) GetDetailById(ctx context.Context, id string) (entity.Branch, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return entity.Branch{}, err
	}

	var detail entity.Branch
	if err := r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx); err != nil {
		return entity.Branch{}, postgres.NotFound(err, "branch")
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (entity.Branch, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleManager); err != nil {
		return entity.Branch{}, err
	}

	if err := r.ValidateStruct(&request, "Name", "Address"); err != nil {
		return entity.Branch{}, err
	}

	response := entity.Branch{
		BasicEntity: entity.BasicEntity{ID: postgres.NewID(), CreatedAt: time.Now()},
		Name:        strings.TrimSpace(request.Name),
		Address:     strings.TrimSpace(request.Address),
		Phone:       request.Phone,
		IsActive:    true,
	}

	if _, err := r.NewInsert().Model(&response).Exec(ctx); err != nil {
		return entity.Branch{}, web.NewRequestError(errors.Wrap(err, "creating branch"), http.StatusInternalServerError)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) (entity.Branch, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleManager); err != nil {
		return entity.Branch{}, err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return entity.Branch{}, err
	}

	var detail entity.Branch
	if err := r.NewSelect().Model(&detail).Where("id = ?", request.ID).Scan(ctx); err != nil {
		return entity.Branch{}, postgres.NotFound(err, "branch")
	}

	if request.Name != nil {
		if strings.TrimSpace(*request.Name) == "" {
			return entity.Branch{}, web.NewRequestError(errors.New("name cannot be empty"), http.StatusBadRequest)
		}
		detail.Name = strings.TrimSpace(*request.Name)
	}
	if request.Address != nil {
		if strings.TrimSpace(*request.Address) == "" {
			return entity.Branch{}, web.NewRequestError(errors.New("address cannot be empty"), http.StatusBadRequest)
		}
		detail.Address = strings.TrimSpace(*request.Address)
	}
	if request.Phone != nil {
		detail.Phone = request.Phone
	}
	if request.IsActive != nil {
		detail.IsActive = *request.IsActive
	}

	if _, err := r.NewUpdate().Model(&detail).WherePK().Exec(ctx); err != nil {
		return entity.Branch{}, web.NewRequestError(errors.Wrap(err, "updating branch"), http.StatusInternalServerError)
	}

	return detail, nil
}
