package setup

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/pkg/repository/postgresql"
	"cafeshift/backend/internal/repository/postgres"
	"cafeshift/backend/internal/service/ledger"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

var ErrAlreadyComplete = errors.New("setup has already been completed")

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) IsComplete(ctx context.Context) (bool, error) {
	var status entity.SetupStatus
	err := r.NewSelect().Model(&status).Where("id = 1").Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, web.NewRequestError(errors.Wrap(err, "selecting setup status"), http.StatusInternalServerError)
	}

	return status.IsSetupComplete, nil
}

// Complete creates the first branch and its manager. It can run once.
func (r Repository) Complete(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	if err := r.ValidateStruct(&request.Branch, "Name", "Address"); err != nil {
		return CreateResponse{}, err
	}
	if err := r.ValidateStruct(&request.Manager, "Username", "Password", "FirstName", "LastName", "Email", "HourlyRate"); err != nil {
		return CreateResponse{}, err
	}
	if len(request.Manager.Password) < 6 {
		return CreateResponse{}, web.NewRequestError(errors.New("password must be at least 6 characters"), http.StatusBadRequest)
	}
	if request.Manager.HourlyRate <= 0 {
		return CreateResponse{}, web.NewRequestError(errors.New("hourly rate must be positive"), http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Manager.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}

	now := time.Now()
	var response CreateResponse

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var status entity.SetupStatus
		err := tx.NewSelect().Model(&status).Where("id = 1").For("UPDATE").Scan(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return errors.Wrap(err, "locking setup status")
		}
		if status.IsSetupComplete {
			return ErrAlreadyComplete
		}

		branch := entity.Branch{
			BasicEntity: entity.BasicEntity{ID: postgres.NewID(), CreatedAt: now},
			Name:        strings.TrimSpace(request.Branch.Name),
			Address:     strings.TrimSpace(request.Branch.Address),
			Phone:       request.Branch.Phone,
			IsActive:    true,
		}
		if _, err := tx.NewInsert().Model(&branch).Exec(ctx); err != nil {
			return errors.Wrap(err, "creating branch")
		}

		manager := newManager(request.Manager, branch.ID, string(hash), now)
		if _, err := tx.NewInsert().Model(&manager).Exec(ctx); err != nil {
			return errors.Wrap(err, "creating manager")
		}

		status.ID = 1
		status.IsSetupComplete = true
		status.SetupCompletedAt = &now
		_, err = tx.NewInsert().Model(&status).
			On("CONFLICT (id) DO UPDATE").
			Set("is_setup_complete = EXCLUDED.is_setup_complete").
			Set("setup_completed_at = EXCLUDED.setup_completed_at").
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "marking setup complete")
		}

		response = CreateResponse{Branch: branch, Manager: manager}
		return nil
	})

	switch {
	case errors.Is(err, ErrAlreadyComplete):
		return CreateResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	case postgres.IsUniqueViolation(err):
		return CreateResponse{}, web.NewRequestError(errors.New("username or email already exists"), http.StatusBadRequest)
	case err != nil:
		return CreateResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	return response, nil
}

// newManager builds the first manager. The identity hash is taken over the
// values that are stored.
func newManager(m ManagerRequest, branchID, passwordHash string, now time.Time) entity.User {
	username := strings.TrimSpace(m.Username)
	firstName := strings.TrimSpace(m.FirstName)
	lastName := strings.TrimSpace(m.LastName)
	email := strings.ToLower(strings.TrimSpace(m.Email))
	identity := ledger.IdentityHash(username, firstName, lastName, email)

	return entity.User{
		BasicEntity:        entity.BasicEntity{ID: postgres.NewID(), CreatedAt: now},
		Username:           username,
		Password:           passwordHash,
		FirstName:          firstName,
		LastName:           lastName,
		Email:              email,
		Role:               entity.RoleManager,
		Position:           "Store Manager",
		HourlyRate:         m.HourlyRate,
		BranchID:           branchID,
		IsActive:           true,
		BlockchainVerified: true,
		BlockchainHash:     &identity,
		VerifiedAt:         &now,
	}
}
