package user

import (
	"context"
	"database/sql"
	"net/http"
	"regexp"
	"strings"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/auth"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/pkg/repository/postgresql"
	"cafeshift/backend/internal/repository/postgres"
	"cafeshift/backend/internal/service"
	"cafeshift/backend/internal/service/excel"
	"cafeshift/backend/internal/service/ledger"
	"cafeshift/backend/internal/service/workforce"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetByUsername is the login lookup; it returns the password hash.
func (r Repository) GetByUsername(ctx context.Context, username string) (entity.User, error) {
	var detail entity.User
	err := r.NewSelect().Model(&detail).Where("username = ?", strings.TrimSpace(username)).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, web.NewRequestError(errors.New("invalid credentials"), http.StatusUnauthorized)
	}
	if err != nil {
		return entity.User{}, web.NewRequestError(errors.Wrap(err, "selecting user"), http.StatusInternalServerError)
	}

	return detail, nil
}

// GetByID returns any user by id.
func (r Repository) GetByID(ctx context.Context, id string) (entity.User, error) {
	var detail entity.User
	if err := r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx); err != nil {
		return entity.User{}, postgres.NotFound(err, "user")
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]entity.User, int, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return nil, 0, err
	}

	var list []entity.User
	q := r.NewSelect().Model(&list).Where("branch_id = ?", claims.BranchId)

	if filter.Search != nil {
		search := "%" + strings.TrimSpace(*filter.Search) + "%"
		q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("username ILIKE ?", search).
				WhereOr("first_name ILIKE ?", search).
				WhereOr("last_name ILIKE ?", search).
				WhereOr("email ILIKE ?", search)
		})
	}
	if filter.IsActive != nil {
		q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Role != nil {
		q.Where("role = ?", *filter.Role)
	}

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		q.Limit(*filter.Limit)
	}
	if filter.Offset != nil {
		q.Offset(*filter.Offset)
	}

	count, err := q.Order("created_at DESC").ScanAndCount(ctx)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting users"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// GetDetailById lets a manager read users of their branch and anyone read
// themselves.
func (r Repository) GetDetailById(ctx context.Context, id string) (entity.User, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return entity.User{}, err
	}
	if !claims.IsManager() && claims.UserId != id {
		return entity.User{}, web.NewRequestError(auth.ErrForbidden, http.StatusForbidden)
	}

	detail, err := r.GetByID(ctx, id)
	if err != nil {
		return entity.User{}, err
	}
	if claims.UserId != id && detail.BranchID != claims.BranchId {
		return entity.User{}, web.NewRequestError(errors.New("user not found"), http.StatusNotFound)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (entity.User, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return entity.User{}, err
	}

	if err := r.ValidateStruct(&request, "Username", "Password", "FirstName", "LastName", "Email", "Position", "HourlyRate"); err != nil {
		return entity.User{}, err
	}

	role := entity.RoleEmployee
	if request.Role != nil {
		role = strings.ToLower(strings.TrimSpace(*request.Role))
	}
	if err := validate(role, request.Email, request.Password, request.HourlyRate); err != nil {
		return entity.User{}, err
	}

	branchID := claims.BranchId
	if request.BranchID != nil && *request.BranchID != "" {
		branchID = *request.BranchID
	}

	username := strings.TrimSpace(request.Username)
	email := strings.ToLower(strings.TrimSpace(request.Email))
	if err := r.checkUnique(ctx, "", username, email); err != nil {
		return entity.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}

	now := time.Now()
	identity := ledger.IdentityHash(username, request.FirstName, request.LastName, email)
	isActive := true
	if request.IsActive != nil {
		isActive = *request.IsActive
	}

	response := entity.User{
		BasicEntity:        entity.BasicEntity{ID: postgres.NewID(), CreatedAt: now},
		Username:           username,
		Password:           string(hash),
		FirstName:          strings.TrimSpace(request.FirstName),
		LastName:           strings.TrimSpace(request.LastName),
		Email:              email,
		Role:               role,
		Position:           strings.TrimSpace(request.Position),
		HourlyRate:         request.HourlyRate,
		BranchID:           branchID,
		IsActive:           isActive,
		BlockchainVerified: true,
		BlockchainHash:     &identity,
		VerifiedAt:         &now,
	}

	if _, err = r.NewInsert().Model(&response).Exec(ctx); err != nil {
		if postgres.IsUniqueViolation(err) {
			return entity.User{}, web.NewRequestError(errors.New("username or email already exists"), http.StatusBadRequest)
		}
		return entity.User{}, web.NewRequestError(errors.Wrap(err, "creating user"), http.StatusInternalServerError)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) (entity.User, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return entity.User{}, err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return entity.User{}, err
	}

	var detail entity.User
	err = r.NewSelect().Model(&detail).Where("id = ?", request.ID).Where("branch_id = ?", claims.BranchId).Scan(ctx)
	if err != nil {
		return entity.User{}, postgres.NotFound(err, "user")
	}

	if request.Username != nil {
		detail.Username = strings.TrimSpace(*request.Username)
	}
	if request.Email != nil {
		detail.Email = strings.ToLower(strings.TrimSpace(*request.Email))
	}
	if request.FirstName != nil {
		detail.FirstName = strings.TrimSpace(*request.FirstName)
	}
	if request.LastName != nil {
		detail.LastName = strings.TrimSpace(*request.LastName)
	}
	if request.Role != nil {
		detail.Role = strings.ToLower(strings.TrimSpace(*request.Role))
	}
	if request.Position != nil {
		detail.Position = strings.TrimSpace(*request.Position)
	}
	if request.HourlyRate != nil {
		detail.HourlyRate = *request.HourlyRate
	}
	if request.IsActive != nil {
		detail.IsActive = *request.IsActive
	}

	password := "unchanged"
	if request.Password != nil {
		password = *request.Password
	}
	if err := validate(detail.Role, detail.Email, password, detail.HourlyRate); err != nil {
		return entity.User{}, err
	}

	if request.Username != nil || request.Email != nil {
		if err := r.checkUnique(ctx, detail.ID, detail.Username, detail.Email); err != nil {
			return entity.User{}, err
		}
	}

	if request.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
		if err != nil {
			return entity.User{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
		}
		detail.Password = string(hash)
	}

	identity := ledger.IdentityHash(detail.Username, detail.FirstName, detail.LastName, detail.Email)
	detail.BlockchainHash = &identity

	if _, err = r.NewUpdate().Model(&detail).WherePK().Exec(ctx); err != nil {
		if postgres.IsUniqueViolation(err) {
			return entity.User{}, web.NewRequestError(errors.New("username or email already exists"), http.StatusBadRequest)
		}
		return entity.User{}, web.NewRequestError(errors.Wrap(err, "updating user"), http.StatusInternalServerError)
	}

	return detail, nil
}

// SetActive flips is_active for the given users of the caller's branch and
// returns how many rows changed.
func (r Repository) SetActive(ctx context.Context, request BulkRequest, active bool) (int, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return 0, err
	}

	if request.EmployeeIDs == nil {
		return 0, web.NewRequestError(errors.New("employeeIds must be an array"), http.StatusBadRequest)
	}
	if len(request.EmployeeIDs) == 0 {
		return 0, nil
	}

	res, err := r.NewUpdate().
		Table("users").
		Set("is_active = ?", active).
		Where("id IN (?)", bun.In(request.EmployeeIDs)).
		Where("branch_id = ?", claims.BranchId).
		Exec(ctx)
	if err != nil {
		return 0, web.NewRequestError(errors.Wrap(err, "updating users"), http.StatusInternalServerError)
	}

	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r Repository) GetStatistics(ctx context.Context) (StatisticsResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return StatisticsResponse{}, err
	}

	users, shifts, err := r.monthOfBranch(ctx, claims.BranchId)
	if err != nil {
		return StatisticsResponse{}, err
	}

	from, to := workforce.MonthRange(time.Now())
	var payroll float64
	err = r.NewSelect().
		Table("payroll_entries").
		ColumnExpr("COALESCE(SUM(gross_pay), 0)").
		Where("user_id IN (SELECT id FROM users WHERE branch_id = ?)", claims.BranchId).
		Where("created_at >= ?", from).
		Where("created_at < ?", to).
		Scan(ctx, &payroll)
	if err != nil {
		return StatisticsResponse{}, web.NewRequestError(errors.Wrap(err, "summing payroll"), http.StatusInternalServerError)
	}

	byUser := make(map[string][]entity.Shift, len(users))
	response := StatisticsResponse{TotalEmployees: len(users)}
	for _, u := range users {
		if u.IsActive {
			response.ActiveEmployees++
		}
		byUser[u.ID] = nil
	}
	for _, s := range shifts {
		byUser[s.UserID] = append(byUser[s.UserID], s)
	}

	response.TotalHoursThisMonth = workforce.Round(workforce.ScheduledHours(shifts), 2)
	response.TotalPayrollThisMonth = workforce.Round(payroll, 2)
	response.AveragePerformance = workforce.AveragePerformance(byUser)

	return response, nil
}

func (r Repository) GetPerformance(ctx context.Context) ([]PerformanceResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return nil, err
	}

	users, shifts, err := r.monthOfBranch(ctx, claims.BranchId)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string][]entity.Shift)
	for _, s := range shifts {
		byUser[s.UserID] = append(byUser[s.UserID], s)
	}

	list := make([]PerformanceResponse, 0, len(users))
	for _, u := range users {
		own := byUser[u.ID]
		list = append(list, PerformanceResponse{
			EmployeeID:      u.ID,
			EmployeeName:    u.FullName(),
			Rating:          workforce.PerformanceRating(own),
			HoursThisMonth:  workforce.Round(workforce.ScheduledHours(own), 2),
			ShiftsThisMonth: len(own),
		})
	}

	return list, nil
}

// CreateByExcel imports employees into the caller's branch. Invalid rows
// are skipped and reported.
func (r Repository) CreateByExcel(ctx context.Context, request ExcelRequest) (ImportResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return ImportResponse{}, err
	}

	file, err := service.OpenUpload(request.File, service.SpreadsheetTypes, ".xlsx")
	if err != nil {
		return ImportResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}
	defer file.Close()

	var usernames, emails []string
	if err := r.NewSelect().Table("users").Column("username").Scan(ctx, &usernames); err != nil {
		return ImportResponse{}, web.NewRequestError(errors.Wrap(err, "selecting usernames"), http.StatusInternalServerError)
	}
	if err := r.NewSelect().Table("users").Column("email").Scan(ctx, &emails); err != nil {
		return ImportResponse{}, web.NewRequestError(errors.Wrap(err, "selecting emails"), http.StatusInternalServerError)
	}

	rows, rejected, err := excel.ReadEmployees(file, toSet(usernames), toSet(emails))
	if err != nil {
		return ImportResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	now := time.Now()
	users := make([]entity.User, 0, len(rows))
	for _, row := range rows {
		hash, err := bcrypt.GenerateFromPassword([]byte(row.Password), bcrypt.DefaultCost)
		if err != nil {
			return ImportResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
		}
		identity := ledger.IdentityHash(row.Username, row.FirstName, row.LastName, row.Email)
		users = append(users, entity.User{
			BasicEntity:        entity.BasicEntity{ID: postgres.NewID(), CreatedAt: now},
			Username:           row.Username,
			Password:           string(hash),
			FirstName:          row.FirstName,
			LastName:           row.LastName,
			Email:              row.Email,
			Role:               row.Role,
			Position:           row.Position,
			HourlyRate:         row.HourlyRate,
			BranchID:           claims.BranchId,
			IsActive:           true,
			BlockchainVerified: true,
			BlockchainHash:     &identity,
			VerifiedAt:         &now,
		})
	}

	if len(users) > 0 {
		if _, err := r.NewInsert().Model(&users).Exec(ctx); err != nil {
			return ImportResponse{}, web.NewRequestError(errors.Wrap(err, "creating users"), http.StatusInternalServerError)
		}
	}

	if rejected == nil {
		rejected = []int{}
	}

	return ImportResponse{CreatedCount: len(users), RejectedRows: rejected}, nil
}

// Export renders the caller's branch employees as a workbook.
func (r Repository) Export(ctx context.Context) ([]byte, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleManager)
	if err != nil {
		return nil, err
	}

	users, err := postgres.BranchUsers(ctx, r.DB, claims.BranchId)
	if err != nil {
		return nil, web.NewRequestError(err, http.StatusInternalServerError)
	}

	data, err := excel.EmployeesWorkbook(users)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "exporting employees"), http.StatusInternalServerError)
	}

	return data, nil
}

func (r Repository) monthOfBranch(ctx context.Context, branchID string) ([]entity.User, []entity.Shift, error) {
	users, err := postgres.BranchUsers(ctx, r.DB, branchID)
	if err != nil {
		return nil, nil, web.NewRequestError(err, http.StatusInternalServerError)
	}

	from, to := workforce.MonthRange(time.Now())
	shifts, err := postgres.ShiftsByBranch(ctx, r.DB, branchID, from, to)
	if err != nil {
		return nil, nil, web.NewRequestError(err, http.StatusInternalServerError)
	}

	return users, shifts, nil
}

func (r Repository) checkUnique(ctx context.Context, exceptID, username, email string) error {
	q := r.NewSelect().Table("users").WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("username = ?", username).WhereOr("email = ?", email)
	})
	if exceptID != "" {
		q.Where("id != ?", exceptID)
	}

	exists, err := q.Exists(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "username check"), http.StatusInternalServerError)
	}
	if exists {
		return web.NewRequestError(errors.New("username or email already exists"), http.StatusBadRequest)
	}

	return nil
}

func validate(role, email, password string, hourlyRate float64) error {
	if role != entity.RoleEmployee && role != entity.RoleManager {
		return web.NewRequestError(errors.New("incorrect role. role should be employee or manager"), http.StatusBadRequest)
	}
	if !emailRegex.MatchString(email) {
		return web.NewRequestError(errors.New("invalid email"), http.StatusBadRequest)
	}
	if len(password) < 6 {
		return web.NewRequestError(errors.New("password must be at least 6 characters"), http.StatusBadRequest)
	}
	if hourlyRate <= 0 {
		return web.NewRequestError(errors.New("hourly rate must be positive"), http.StatusBadRequest)
	}

	return nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}
