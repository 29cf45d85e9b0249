package model

import "time"

// FeeStatement is a billing record for a student for a term/year/fee type.
// The outstanding balance is never stored; it is recomputed from payments.
type FeeStatement struct {
	ID        int        `json:"id"`
	StudentID int        `json:"student_id"`
	Term      string     `json:"term"`
	Year      int        `json:"year"`
	FeeType   string     `json:"fee_type"`
	AmountDue float64    `json:"amount_due"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// FeePayment records money received against a statement.
// ReceiptNo is unique across all payments.
type FeePayment struct {
	ID          int       `json:"id"`
	StatementID int       `json:"statement_id"`
	StudentID   int       `json:"student_id"`
	AmountPaid  float64   `json:"amount_paid"`
	Method      string    `json:"method"`
	ReceiptNo   string    `json:"receipt_no"`
	PaidAt      time.Time `json:"paid_at"`
}

// OverdueStatement is an unpaid, past-due statement joined with the
// student and parent contact details needed to send a reminder.
type OverdueStatement struct {
	StatementID int        `json:"statement_id"`
	Term        string     `json:"term"`
	Year        int        `json:"year"`
	FeeType     string     `json:"fee_type"`
	AmountDue   float64    `json:"amount_due"`
	DueDate     *time.Time `json:"due_date"`
	Balance     float64    `json:"balance"`
	StudentID   int        `json:"student_id"`
	AdmissionNo string     `json:"admission_number"`
	StudentName string     `json:"student_name"`
	ParentID    int        `json:"parent_id"`
	ParentEmail string     `json:"parent_email"`
	ParentName  string     `json:"parent_name"`
}

// CreateStatementRequest is the payload for billing a student.
type CreateStatementRequest struct {
	AdmissionNo string  `json:"admission_number" binding:"required"`
	Term        string  `json:"term" binding:"required,min=1,max=20"`
	Year        int     `json:"year" binding:"required,min=2000,max=2100"`
	FeeType     string  `json:"fee_type" binding:"required,min=2,max=50"`
	AmountDue   float64 `json:"amount_due" binding:"required,gt=0"`
	DueDate     string  `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

// RecordPaymentRequest is the payload for recording a fee payment.
type RecordPaymentRequest struct {
	StatementID int     `json:"statement_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Method      string  `json:"method" binding:"omitempty,max=50"`
}
