package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shulehub/shule-backend/internal/finance"
	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/repository"
)

// ErrStatementNotFound is returned when a fee statement does not exist.
var ErrStatementNotFound = errors.New("fee statement not found")

// StatementView is a fee statement with its payments and derived
// balance. The balance is never read from storage.
type StatementView struct {
	model.FeeStatement
	Payments []model.FeePayment `json:"payments"`
	Paid     float64            `json:"paid"`
	Balance  float64            `json:"balance"`
	Overdue  bool               `json:"overdue"`
}

// FeeService handles fee statements, payments and balances.
type FeeService struct {
	fees     *repository.FeeRepository
	students *repository.StudentRepository
}

// NewFeeService creates a new FeeService.
func NewFeeService(fees *repository.FeeRepository, students *repository.StudentRepository) *FeeService {
	return &FeeService{fees: fees, students: students}
}

// CreateStatement bills a student for a term.
func (s *FeeService) CreateStatement(ctx context.Context, req *model.CreateStatementRequest) (*model.FeeStatement, error) {
	student, err := s.students.GetByAdmissionNo(ctx, req.AdmissionNo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStudentNotFound
	} else if err != nil {
		return nil, fmt.Errorf("lookup student: %w", err)
	}

	statement := &model.FeeStatement{
		StudentID: student.ID,
		Term:      req.Term,
		Year:      req.Year,
		FeeType:   req.FeeType,
		AmountDue: req.AmountDue,
	}
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("parse due_date: %w", err)
		}
		statement.DueDate = &due
	}

	if err := s.fees.CreateStatement(ctx, statement); err != nil {
		return nil, err
	}
	return statement, nil
}

// RecordPayment records money received against a statement and assigns
// a generated receipt number. Overpayment is accepted; the balance just
// goes negative. The second return is the statement balance after this
// payment, for the receipt.
func (s *FeeService) RecordPayment(ctx context.Context, req *model.RecordPaymentRequest) (*model.FeePayment, float64, error) {
	statement, err := s.fees.GetStatementByID(ctx, req.StatementID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, ErrStatementNotFound
	} else if err != nil {
		return nil, 0, fmt.Errorf("lookup statement: %w", err)
	}

	method := req.Method
	if method == "" {
		method = "cash"
	}

	payment := &model.FeePayment{
		StatementID: statement.ID,
		StudentID:   statement.StudentID,
		AmountPaid:  req.Amount,
		Method:      method,
		ReceiptNo:   NewReceiptNo(),
	}
	if err := s.fees.CreatePayment(ctx, payment); err != nil {
		return nil, 0, err
	}

	paid, err := s.fees.SumPaymentsByStatement(ctx, statement.ID)
	if err != nil {
		return nil, 0, err
	}
	return payment, finance.StatementBalance(*statement, paid), nil
}

// GetStatement retrieves one statement with payments and derived balance.
func (s *FeeService) GetStatement(ctx context.Context, id int) (*StatementView, error) {
	statement, err := s.fees.GetStatementByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStatementNotFound
	} else if err != nil {
		return nil, err
	}

	payments, err := s.fees.ListPaymentsByStatement(ctx, id)
	if err != nil {
		return nil, err
	}

	paid := finance.TotalPaid(payments)
	return &StatementView{
		FeeStatement: *statement,
		Payments:     payments,
		Paid:         paid,
		Balance:      finance.StatementBalance(*statement, paid),
		Overdue:      finance.IsOverdue(*statement, paid, time.Now()),
	}, nil
}

// ListStatements retrieves a student's statements with derived balances.
func (s *FeeService) ListStatements(ctx context.Context, studentID int) ([]StatementView, error) {
	if _, err := s.students.GetByID(ctx, studentID); errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStudentNotFound
	} else if err != nil {
		return nil, err
	}

	statements, err := s.fees.ListStatementsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]StatementView, 0, len(statements))
	for i := range statements {
		st := statements[i]
		payments, err := s.fees.ListPaymentsByStatement(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		paid := finance.TotalPaid(payments)
		views = append(views, StatementView{
			FeeStatement: st,
			Payments:     payments,
			Paid:         paid,
			Balance:      finance.StatementBalance(st, paid),
			Overdue:      finance.IsOverdue(st, paid, now),
		})
	}
	return views, nil
}

// StudentBalance returns a student's total outstanding balance across
// all statements.
func (s *FeeService) StudentBalance(ctx context.Context, studentID int) (float64, error) {
	statements, err := s.fees.ListStatementsByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	payments, err := s.fees.ListPaymentsByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return finance.Balance(statements, payments), nil
}

// ListOverdue returns every past-due statement still carrying a positive
// balance, with the parent contacts needed for reminders.
func (s *FeeService) ListOverdue(ctx context.Context, now time.Time) ([]model.OverdueStatement, error) {
	return s.fees.ListOverdueWithBalance(ctx, now)
}

// NewReceiptNo generates a receipt number of the form RCPT-XXXXXXXX.
func NewReceiptNo() string {
	return "RCPT-" + strings.ToUpper(uuid.New().String()[:8])
}
