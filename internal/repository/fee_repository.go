package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shulehub/shule-backend/internal/model"
)

var (
	ErrDuplicateStatement = errors.New("a statement for this student, term, year and fee type already exists")
	ErrDuplicateReceiptNo = errors.New("receipt number already exists")
)

const statementColumns = `id, student_id, term, year, fee_type, amount_due, due_date, created_at`

// FeeRepository handles fee statement and payment data access.
type FeeRepository struct {
	pool *pgxpool.Pool
}

// NewFeeRepository creates a new FeeRepository.
func NewFeeRepository(pool *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{pool: pool}
}

func scanStatement(row interface{ Scan(...any) error }) (*model.FeeStatement, error) {
	s := &model.FeeStatement{}
	err := row.Scan(&s.ID, &s.StudentID, &s.Term, &s.Year, &s.FeeType,
		&s.AmountDue, &s.DueDate, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetStatementByID retrieves a statement by ID.
func (r *FeeRepository) GetStatementByID(ctx context.Context, id int) (*model.FeeStatement, error) {
	return scanStatement(r.pool.QueryRow(ctx,
		`SELECT `+statementColumns+` FROM fee_statements WHERE id = $1`, id))
}

// ListStatementsByStudent retrieves a student's statements, newest first.
func (r *FeeRepository) ListStatementsByStudent(ctx context.Context, studentID int) ([]model.FeeStatement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+statementColumns+` FROM fee_statements
		 WHERE student_id = $1 ORDER BY year DESC, term DESC, id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statements []model.FeeStatement
	for rows.Next() {
		s, err := scanStatement(rows)
		if err != nil {
			return nil, err
		}
		statements = append(statements, *s)
	}
	return statements, rows.Err()
}

// CreateStatement inserts a new fee statement.
func (r *FeeRepository) CreateStatement(ctx context.Context, s *model.FeeStatement) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO fee_statements (student_id, term, year, fee_type, amount_due, due_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		s.StudentID, s.Term, s.Year, s.FeeType, s.AmountDue, s.DueDate,
	).Scan(&s.ID, &s.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateStatement
		}
		return err
	}
	return nil
}

// CreatePayment records a payment against a statement.
func (r *FeeRepository) CreatePayment(ctx context.Context, p *model.FeePayment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO fee_payments (statement_id, student_id, amount_paid, method, receipt_no)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, paid_at`,
		p.StatementID, p.StudentID, p.AmountPaid, p.Method, p.ReceiptNo,
	).Scan(&p.ID, &p.PaidAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateReceiptNo
		}
		return err
	}
	return nil
}

// ListPaymentsByStatement retrieves payments against one statement.
func (r *FeeRepository) ListPaymentsByStatement(ctx context.Context, statementID int) ([]model.FeePayment, error) {
	return r.listPayments(ctx,
		`SELECT id, statement_id, student_id, amount_paid, method, receipt_no, paid_at
		 FROM fee_payments WHERE statement_id = $1 ORDER BY paid_at`, statementID)
}

// ListPaymentsByStudent retrieves a student's full payment history.
func (r *FeeRepository) ListPaymentsByStudent(ctx context.Context, studentID int) ([]model.FeePayment, error) {
	return r.listPayments(ctx,
		`SELECT id, statement_id, student_id, amount_paid, method, receipt_no, paid_at
		 FROM fee_payments WHERE student_id = $1 ORDER BY paid_at DESC`, studentID)
}

func (r *FeeRepository) listPayments(ctx context.Context, query string, arg any) ([]model.FeePayment, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []model.FeePayment
	for rows.Next() {
		var p model.FeePayment
		if err := rows.Scan(&p.ID, &p.StatementID, &p.StudentID, &p.AmountPaid,
			&p.Method, &p.ReceiptNo, &p.PaidAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// SumPaymentsByStatement returns the total paid against a statement.
func (r *FeeRepository) SumPaymentsByStatement(ctx context.Context, statementID int) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_paid), 0) FROM fee_payments WHERE statement_id = $1`,
		statementID,
	).Scan(&total)
	return total, err
}

// SchoolTotals returns school-wide billed and collected amounts.
func (r *FeeRepository) SchoolTotals(ctx context.Context) (billed, collected float64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
		   (SELECT COALESCE(SUM(amount_due), 0) FROM fee_statements),
		   (SELECT COALESCE(SUM(amount_paid), 0) FROM fee_payments)`,
	).Scan(&billed, &collected)
	return billed, collected, err
}

// ListOverdueWithBalance returns statements past their due date as of now
// that still carry a positive outstanding balance, joined with the
// student and parent contact details needed for reminders.
func (r *FeeRepository) ListOverdueWithBalance(ctx context.Context, now time.Time) ([]model.OverdueStatement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT fs.id, fs.term, fs.year, fs.fee_type, fs.amount_due, fs.due_date,
		        fs.amount_due - COALESCE(SUM(fp.amount_paid), 0) AS balance,
		        st.id, st.admission_number, st.full_name,
		        u.id, u.email, u.full_name
		 FROM fee_statements fs
		 JOIN students st ON st.id = fs.student_id
		 JOIN users u ON u.id = st.parent_id
		 LEFT JOIN fee_payments fp ON fp.statement_id = fs.id
		 WHERE fs.due_date IS NOT NULL AND fs.due_date < $1
		 GROUP BY fs.id, st.id, u.id
		 HAVING fs.amount_due - COALESCE(SUM(fp.amount_paid), 0) > 0
		 ORDER BY fs.due_date`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OverdueStatement
	for rows.Next() {
		var o model.OverdueStatement
		if err := rows.Scan(&o.StatementID, &o.Term, &o.Year, &o.FeeType, &o.AmountDue,
			&o.DueDate, &o.Balance,
			&o.StudentID, &o.AdmissionNo, &o.StudentName,
			&o.ParentID, &o.ParentEmail, &o.ParentName); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
