package payroll

import (
	"context"

	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres/payroll"
	"cafeshift/backend/internal/service/payslip"
)

type Payroll interface {
	Process(ctx context.Context, periodID string) (payroll.ProcessResponse, error)
	GetOwnEntries(ctx context.Context) ([]entity.PayrollEntry, error)
	GetPeriods(ctx context.Context) ([]entity.PayrollPeriod, error)
	GetCurrentPeriod(ctx context.Context) (*entity.PayrollPeriod, error)
	CreatePeriod(ctx context.Context, request payroll.CreatePeriodRequest) (entity.PayrollPeriod, error)
	GetBranchEntries(ctx context.Context, filter payroll.Filter) ([]payroll.EntryResponse, error)
	Approve(ctx context.Context, id string) (entity.PayrollEntry, error)
	MarkPaid(ctx context.Context, id string) (entity.PayrollEntry, error)
	GetPayslip(ctx context.Context, entryID string) (payslip.Payslip, error)
	GetPayslipPDF(ctx context.Context, entryID string) ([]byte, error)
	Send(ctx context.Context, entryID string) error
	Export(ctx context.Context, periodID string) ([]byte, error)
}
