package router

import (
	"context"

	"github.com/redis/go-redis/v9"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/auth"
	"cafeshift/backend/internal/middleware"
	"cafeshift/backend/internal/pkg/config"
	"cafeshift/backend/internal/pkg/repository/postgresql"

	"cafeshift/backend/internal/repository/postgres/approval"
	"cafeshift/backend/internal/repository/postgres/blockchain"
	"cafeshift/backend/internal/repository/postgres/branch"
	"cafeshift/backend/internal/repository/postgres/notification"
	"cafeshift/backend/internal/repository/postgres/payroll"
	"cafeshift/backend/internal/repository/postgres/report"
	"cafeshift/backend/internal/repository/postgres/setup"
	"cafeshift/backend/internal/repository/postgres/shift"
	"cafeshift/backend/internal/repository/postgres/shifttrade"
	"cafeshift/backend/internal/repository/postgres/timeoff"
	"cafeshift/backend/internal/repository/postgres/user"

	approval_controller "cafeshift/backend/internal/controller/http/v1/approval"
	auth_controller "cafeshift/backend/internal/controller/http/v1/auth"
	blockchain_controller "cafeshift/backend/internal/controller/http/v1/blockchain"
	branch_controller "cafeshift/backend/internal/controller/http/v1/branch"
	notification_controller "cafeshift/backend/internal/controller/http/v1/notification"
	payroll_controller "cafeshift/backend/internal/controller/http/v1/payroll"
	report_controller "cafeshift/backend/internal/controller/http/v1/report"
	setup_controller "cafeshift/backend/internal/controller/http/v1/setup"
	shift_controller "cafeshift/backend/internal/controller/http/v1/shift"
	shifttrade_controller "cafeshift/backend/internal/controller/http/v1/shifttrade"
	timeoff_controller "cafeshift/backend/internal/controller/http/v1/timeoff"
	user_controller "cafeshift/backend/internal/controller/http/v1/user"
)

type Router struct {
	*web.App
	postgresDB *postgresql.Database
	redisDB    *redis.Client
	auth       *auth.Auth
	cfg        *config.Config
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	auth *auth.Auth,
	cfg *config.Config,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		auth,
		cfg,
	}
}

// Init registers every route. Serving is left to the caller.
func (r Router) Init() {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORSMiddleware(r.cfg.AllowedOrigins))

	// - postgresql
	setupPostgres := setup.NewRepository(r.postgresDB)
	userPostgres := user.NewRepository(r.postgresDB)
	branchPostgres := branch.NewRepository(r.postgresDB)
	shiftPostgres := shift.NewRepository(r.postgresDB)
	shiftTradePostgres := shifttrade.NewRepository(r.postgresDB)
	approvalPostgres := approval.NewRepository(r.postgresDB)
	timeOffPostgres := timeoff.NewRepository(r.postgresDB)
	notificationPostgres := notification.NewRepository(r.postgresDB)
	payrollPostgres := payroll.NewRepository(r.postgresDB, r.cfg.Currency)
	blockchainPostgres := blockchain.NewRepository(r.postgresDB)
	reportPostgres := report.NewRepository(r.postgresDB)

	// controller
	setupController := setup_controller.NewController(setupPostgres, map[string]setup_controller.Check{
		"postgres": r.postgresDB.Ping,
		"redis": func(ctx context.Context) error {
			return r.redisDB.Ping(ctx).Err()
		},
	})
	authController := auth_controller.NewController(userPostgres, r.auth, r.cfg.CookieSecure)
	branchController := branch_controller.NewController(branchPostgres)
	userController := user_controller.NewController(userPostgres)
	shiftController := shift_controller.NewController(shiftPostgres)
	shiftTradeController := shifttrade_controller.NewController(shiftTradePostgres)
	approvalController := approval_controller.NewController(approvalPostgres)
	timeOffController := timeoff_controller.NewController(timeOffPostgres)
	notificationController := notification_controller.NewController(notificationPostgres)
	payrollController := payroll_controller.NewController(payrollPostgres)
	blockchainController := blockchain_controller.NewController(blockchainPostgres)
	reportController := report_controller.NewController(reportPostgres)

	anyone := middleware.Authenticate(r.auth)
	manager := middleware.Authenticate(r.auth, auth.RoleManager)

	// #setup
	r.Get("/api/health", setupController.Health)
	r.Get("/api/setup/status", setupController.Status)
	r.Post("/api/setup", setupController.Create)

	// #auth
	r.Post("/api/auth/login", authController.SignIn)
	r.Post("/api/auth/logout", authController.SignOut)
	r.Post("/api/auth/refresh-token", authController.RefreshToken)
	r.Get("/api/auth/me", authController.Me, anyone)

	// #branch
	r.Get("/api/branches", branchController.GetList, anyone)
	r.Get("/api/branches/:id", branchController.GetDetailById, anyone)
	r.Post("/api/branches", branchController.Create, manager)
	r.Patch("/api/branches/:id", branchController.UpdateColumns, manager)

	// #employees
	r.Get("/api/employees", userController.GetUserList, manager)
	r.Get("/api/employees/stats", userController.GetStatistics, manager)
	r.Get("/api/employees/performance", userController.GetPerformance, manager)
	r.Get("/api/employees/export", userController.ExportEmployee, manager)
	r.Get("/api/employees/:id", userController.GetUserDetailById, anyone)
	r.Post("/api/employees", userController.CreateUser, manager)
	r.Post("/api/employees/import", userController.CreateUserByExcel, manager)
	r.Post("/api/employees/bulk-activate", userController.BulkActivate, manager)
	r.Post("/api/employees/bulk-deactivate", userController.BulkDeactivate, manager)
	r.Patch("/api/employees/:id", userController.UpdateUserColumns, manager)

	// #shifts
	r.Get("/api/shifts", shiftController.GetList, anyone)
	r.Get("/api/shifts/branch", shiftController.GetBranchList, manager)
	r.Get("/api/shifts/:id", shiftController.GetDetailById, anyone)
	r.Post("/api/shifts", shiftController.Create, manager)
	r.Put("/api/shifts/:id", shiftController.UpdateColumns, manager)
	r.Delete("/api/shifts/:id", shiftController.Delete, manager)
	r.Post("/api/shifts/:id/clock-in", shiftController.ClockIn, manager)
	r.Post("/api/shifts/:id/clock-out", shiftController.ClockOut, manager)

	// #shift trades
	r.Get("/api/shift-trades", shiftTradeController.GetOwn, anyone)
	r.Get("/api/shift-trades/available", shiftTradeController.GetAvailable, anyone)
	r.Post("/api/shift-trades", shiftTradeController.Create, anyone)
	r.Put("/api/shift-trades/:id/take", shiftTradeController.Take, anyone)

	// #approvals
	r.Get("/api/approvals", approvalController.GetPending, manager)
	r.Put("/api/approvals/:id", approvalController.Respond, manager)

	// #time off
	r.Get("/api/time-off-requests", timeOffController.GetList, anyone)
	r.Post("/api/time-off-requests", timeOffController.Create, anyone)
	r.Put("/api/time-off-requests/:id/approve", timeOffController.Approve, manager)
	r.Put("/api/time-off-requests/:id/reject", timeOffController.Reject, manager)
	r.Get("/api/time-off-balance", timeOffController.Balance, anyone)

	// #payroll
	r.Get("/api/payroll", payrollController.GetOwnEntries, anyone)
	r.Get("/api/payroll/periods", payrollController.GetPeriods, manager)
	r.Get("/api/payroll/periods/current", payrollController.GetCurrentPeriod, anyone)
	r.Post("/api/payroll/periods", payrollController.CreatePeriod, manager)
	r.Post("/api/payroll/periods/:id/process", payrollController.Process, manager)
	r.Get("/api/payroll/entries/branch", payrollController.GetBranchEntries, manager)
	r.Get("/api/payroll/entries/export", payrollController.Export, manager)
	r.Put("/api/payroll/entries/:id/approve", payrollController.Approve, manager)
	r.Put("/api/payroll/entries/:id/paid", payrollController.MarkPaid, manager)
	r.Get("/api/payroll/payslip/:entryId", payrollController.GetPayslip, anyone)
	r.Post("/api/payroll/entries/:entryId/send", payrollController.Send, manager)

	// #notifications
	r.Get("/api/notifications", notificationController.GetList, anyone)
	r.Put("/api/notifications/read-all", notificationController.MarkAllRead, anyone)
	r.Put("/api/notifications/:id/read", notificationController.MarkRead, anyone)
	r.Delete("/api/notifications/:id", notificationController.Delete, anyone)

	// #blockchain
	r.Post("/api/blockchain/payroll/store", blockchainController.Store, manager)
	r.Post("/api/blockchain/payroll/batch-store", blockchainController.StoreBatch, manager)
	r.Post("/api/blockchain/payroll/verify", blockchainController.Verify, manager)
	r.Get("/api/blockchain/record/:transactionHash", blockchainController.GetRecord, anyone)

	// #reports
	r.Get("/api/reports/payroll", reportController.Payroll, manager)
	r.Get("/api/reports/attendance", reportController.Attendance, manager)
	r.Get("/api/reports/shifts", reportController.Shifts, manager)
	r.Get("/api/reports/employees", reportController.Employees, manager)
	r.Get("/api/hours/report", reportController.Hours, anyone)
	r.Get("/api/dashboard/stats", reportController.DashboardStats, manager)
	r.Get("/api/dashboard/employee-status", reportController.EmployeeStatus, manager)
	r.Get("/api/employee/performance", reportController.Performance, anyone)
}
