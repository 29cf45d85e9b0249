package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shulehub/shule-backend/internal/finance"
	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/repository"
)

// Payroll errors surfaced to handlers.
var (
	ErrSalaryNotFound = errors.New("salary record not found")
	ErrStaffNotFound  = errors.New("staff member not found")
)

// SalaryView is a salary record with derived gross and net pay.
type SalaryView struct {
	model.StaffSalary
	GrossPay float64 `json:"gross_pay"`
	NetPay   float64 `json:"net_pay"`
}

// PayrollService handles staff salary records and payroll summaries.
type PayrollService struct {
	payroll *repository.PayrollRepository
	users   *repository.UserRepository
}

// NewPayrollService creates a new PayrollService.
func NewPayrollService(payroll *repository.PayrollRepository, users *repository.UserRepository) *PayrollService {
	return &PayrollService{payroll: payroll, users: users}
}

// Create records a staff member's salary for a month. When deductions
// are not supplied they are computed from the statutory tables (PAYE,
// NSSF, NHIF) on the gross pay.
func (s *PayrollService) Create(ctx context.Context, req *model.CreateSalaryRequest) (*SalaryView, error) {
	staff, err := s.users.GetByID(ctx, req.StaffID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStaffNotFound
	} else if err != nil {
		return nil, fmt.Errorf("lookup staff: %w", err)
	}
	if staff.Role == model.RoleParent {
		return nil, ErrStaffNotFound
	}

	salary := model.StaffSalary{
		StaffID:    req.StaffID,
		Month:      req.Month,
		Year:       req.Year,
		BasicPay:   req.BasicPay,
		Allowances: req.Allowances,
	}
	if req.Deductions != nil {
		salary.Deductions = *req.Deductions
	} else {
		salary.Deductions = finance.StatutoryDeductions(salary)
	}

	if err := s.payroll.Create(ctx, &salary); err != nil {
		return nil, err
	}
	return s.view(salary), nil
}

// Get retrieves one salary record.
func (s *PayrollService) Get(ctx context.Context, id int) (*SalaryView, error) {
	salary, err := s.payroll.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSalaryNotFound
	} else if err != nil {
		return nil, err
	}
	return s.view(*salary), nil
}

// ListByPeriod retrieves all salary records for a month.
func (s *PayrollService) ListByPeriod(ctx context.Context, month, year int) ([]SalaryView, error) {
	salaries, err := s.payroll.ListByPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}
	views := make([]SalaryView, 0, len(salaries))
	for _, sal := range salaries {
		views = append(views, *s.view(sal))
	}
	return views, nil
}

// ListByStaff retrieves one staff member's salary history.
func (s *PayrollService) ListByStaff(ctx context.Context, staffID int) ([]SalaryView, error) {
	salaries, err := s.payroll.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	views := make([]SalaryView, 0, len(salaries))
	for _, sal := range salaries {
		views = append(views, *s.view(sal))
	}
	return views, nil
}

// MarkPaid stamps a salary record as paid out.
func (s *PayrollService) MarkPaid(ctx context.Context, id int) (*SalaryView, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.payroll.MarkPaid(ctx, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// PeriodSummary returns the gross, deduction and net totals for a month.
func (s *PayrollService) PeriodSummary(ctx context.Context, month, year int) (gross, deductions, net float64, err error) {
	gross, deductions, err = s.payroll.PeriodTotals(ctx, month, year)
	if err != nil {
		return 0, 0, 0, err
	}
	return gross, deductions, gross - deductions, nil
}

func (s *PayrollService) view(sal model.StaffSalary) *SalaryView {
	return &SalaryView{
		StaffSalary: sal,
		GrossPay:    finance.GrossPay(sal),
		NetPay:      finance.NetPay(sal),
	}
}
