package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shulehub/shule-backend/internal/model"
)

var ErrDuplicateSalaryPeriod = errors.New("a salary record for this staff member and month already exists")

const salaryColumns = `id, staff_id, month, year, basic_pay, allowances, deductions, paid, paid_at, created_at`

// PayrollRepository handles staff salary data access.
type PayrollRepository struct {
	pool *pgxpool.Pool
}

// NewPayrollRepository creates a new PayrollRepository.
func NewPayrollRepository(pool *pgxpool.Pool) *PayrollRepository {
	return &PayrollRepository{pool: pool}
}

func scanSalary(row interface{ Scan(...any) error }) (*model.StaffSalary, error) {
	s := &model.StaffSalary{}
	err := row.Scan(&s.ID, &s.StaffID, &s.Month, &s.Year, &s.BasicPay,
		&s.Allowances, &s.Deductions, &s.Paid, &s.PaidAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a salary record by ID.
func (r *PayrollRepository) GetByID(ctx context.Context, id int) (*model.StaffSalary, error) {
	return scanSalary(r.pool.QueryRow(ctx,
		`SELECT `+salaryColumns+` FROM staff_salaries WHERE id = $1`, id))
}

// ListByPeriod retrieves all salary records for a month.
func (r *PayrollRepository) ListByPeriod(ctx context.Context, month, year int) ([]model.StaffSalary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+salaryColumns+` FROM staff_salaries
		 WHERE month = $1 AND year = $2 ORDER BY staff_id`, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var salaries []model.StaffSalary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		salaries = append(salaries, *s)
	}
	return salaries, rows.Err()
}

// ListByStaff retrieves one staff member's salary history, newest first.
func (r *PayrollRepository) ListByStaff(ctx context.Context, staffID int) ([]model.StaffSalary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+salaryColumns+` FROM staff_salaries
		 WHERE staff_id = $1 ORDER BY year DESC, month DESC`, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var salaries []model.StaffSalary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		salaries = append(salaries, *s)
	}
	return salaries, rows.Err()
}

// Create inserts a salary record.
func (r *PayrollRepository) Create(ctx context.Context, s *model.StaffSalary) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO staff_salaries (staff_id, month, year, basic_pay, allowances, deductions)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		s.StaffID, s.Month, s.Year, s.BasicPay, s.Allowances, s.Deductions,
	).Scan(&s.ID, &s.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSalaryPeriod
		}
		return err
	}
	return nil
}

// MarkPaid stamps a salary record as paid out.
func (r *PayrollRepository) MarkPaid(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE staff_salaries SET paid = TRUE, paid_at = CURRENT_TIMESTAMP
		 WHERE id = $1 AND NOT paid`, id)
	return err
}

// PeriodTotals returns the gross and deduction totals for a month.
func (r *PayrollRepository) PeriodTotals(ctx context.Context, month, year int) (gross, deductions float64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(basic_pay + allowances), 0), COALESCE(SUM(deductions), 0)
		 FROM staff_salaries WHERE month = $1 AND year = $2`, month, year,
	).Scan(&gross, &deductions)
	return gross, deductions, err
}
