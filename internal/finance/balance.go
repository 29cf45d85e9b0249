// Package finance holds the fee-balance and payroll arithmetic. Balances
// are never stored or cached; every caller recomputes from the rows it
// fetched so the result always reflects the latest committed payments.
package finance

import (
	"time"

	"github.com/shulehub/shule-backend/internal/model"
)

// TotalDue sums the amount due across statements.
func TotalDue(statements []model.FeeStatement) float64 {
	var total float64
	for _, s := range statements {
		total += s.AmountDue
	}
	return total
}

// TotalPaid sums the amount paid across payments.
func TotalPaid(payments []model.FeePayment) float64 {
	var total float64
	for _, p := range payments {
		total += p.AmountPaid
	}
	return total
}

// Balance is total due minus total paid. Overpayment yields a negative
// balance, which is preserved rather than clamped to zero.
func Balance(statements []model.FeeStatement, payments []model.FeePayment) float64 {
	return TotalDue(statements) - TotalPaid(payments)
}

// StatementBalance is the outstanding amount on a single statement given
// the sum already paid against it.
func StatementBalance(s model.FeeStatement, paid float64) float64 {
	return s.AmountDue - paid
}

// IsOverdue reports whether a statement still carries a positive balance
// past its due date. Statements without a due date are never overdue.
func IsOverdue(s model.FeeStatement, paid float64, now time.Time) bool {
	return s.DueDate != nil && s.DueDate.Before(now) && StatementBalance(s, paid) > 0
}
