package finance

import (
	"testing"
	"time"

	"github.com/shulehub/shule-backend/internal/model"
)

func stmt(due float64, dueDate *time.Time) model.FeeStatement {
	return model.FeeStatement{AmountDue: due, DueDate: dueDate}
}

func pay(amount float64) model.FeePayment {
	return model.FeePayment{AmountPaid: amount}
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name       string
		statements []model.FeeStatement
		payments   []model.FeePayment
		want       float64
	}{
		{"no statements", nil, nil, 0},
		{"unpaid", []model.FeeStatement{stmt(15000, nil)}, nil, 15000},
		{"partial", []model.FeeStatement{stmt(15000, nil)}, []model.FeePayment{pay(5000)}, 10000},
		{"settled", []model.FeeStatement{stmt(15000, nil)}, []model.FeePayment{pay(15000)}, 0},
		{
			"overpaid stays negative",
			[]model.FeeStatement{stmt(10000, nil)},
			[]model.FeePayment{pay(12000)},
			-2000,
		},
		{
			"multiple statements and payments",
			[]model.FeeStatement{stmt(10000, nil), stmt(7500, nil), stmt(2500, nil)},
			[]model.FeePayment{pay(4000), pay(6000)},
			10000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Balance(tt.statements, tt.payments)
			if got != tt.want {
				t.Errorf("Balance() = %v, want %v", got, tt.want)
			}
			// The identity the aggregator guarantees.
			if TotalDue(tt.statements)-TotalPaid(tt.payments) != got {
				t.Errorf("TotalDue - TotalPaid != Balance")
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	if !IsOverdue(stmt(5000, &past), 1000, now) {
		t.Error("unpaid past-due statement should be overdue")
	}
	if IsOverdue(stmt(5000, &past), 5000, now) {
		t.Error("settled statement should not be overdue")
	}
	if IsOverdue(stmt(5000, &future), 0, now) {
		t.Error("statement due in the future should not be overdue")
	}
	if IsOverdue(stmt(5000, nil), 0, now) {
		t.Error("statement without a due date should never be overdue")
	}
}

func TestNetPay(t *testing.T) {
	s := model.StaffSalary{BasicPay: 50000, Allowances: 8000, Deductions: 12000}
	if got := NetPay(s); got != 46000 {
		t.Errorf("NetPay = %v, want 46000", got)
	}
}

func TestNSSFBalanceFile(t *testing.T) {
	if got := NSSF(10000); got != 600 {
		t.Errorf("NSSF(10000) = %v, want 600", got)
	}
	if got := NSSF(50000); got != 1080 {
		t.Errorf("NSSF(50000) = %v, want cap 1080", got)
	}
}

func TestNHIFBalanceFile(t *testing.T) {
	tests := []struct {
		basic, want float64
	}{
		{4000, 150},
		{7999, 300},
		{12500, 500},
		{26000, 850},
		{60000, 1700},
	}
	for _, tt := range tests {
		if got := NHIF(tt.basic); got != tt.want {
			t.Errorf("NHIF(%v) = %v, want %v", tt.basic, got, tt.want)
		}
	}
}

func TestPAYEBalanceFile(t *testing.T) {
	if got := PAYE(20000); got != 2000 {
		t.Errorf("PAYE(20000) = %v, want 2000", got)
	}
	if got := PAYE(30000); got != 7500 {
		t.Errorf("PAYE(30000) = %v, want 7500", got)
	}
	if got := PAYE(100000); got != 30000 {
		t.Errorf("PAYE(100000) = %v, want 30000", got)
	}
}
