package model

import "time"

// StaffSalary is one staff member's pay record for a month.
// (StaffID, Month, Year) is unique.
type StaffSalary struct {
	ID         int        `json:"id"`
	StaffID    int        `json:"staff_id"`
	Month      int        `json:"month"`
	Year       int        `json:"year"`
	BasicPay   float64    `json:"basic_pay"`
	Allowances float64    `json:"allowances"`
	Deductions float64    `json:"deductions"`
	Paid       bool       `json:"paid"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateSalaryRequest is the payload for creating a monthly salary record.
type CreateSalaryRequest struct {
	StaffID    int     `json:"staff_id" binding:"required"`
	Month      int     `json:"month" binding:"required,min=1,max=12"`
	Year       int     `json:"year" binding:"required,min=2000,max=2100"`
	BasicPay   float64 `json:"basic_pay" binding:"required,gt=0"`
	Allowances float64 `json:"allowances" binding:"min=0"`
	// Deductions may be supplied directly; when omitted the statutory
	// deductions (PAYE, NSSF, NHIF) are computed from the gross pay.
	Deductions *float64 `json:"deductions" binding:"omitempty,min=0"`
}
