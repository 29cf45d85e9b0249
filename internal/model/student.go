package model

import "time"

// StudentStatus tracks whether a student is currently enrolled.
type StudentStatus string

const (
	StudentActive      StudentStatus = "active"
	StudentGraduated   StudentStatus = "graduated"
	StudentTransferred StudentStatus = "transferred"
)

// Student represents an enrolled student. AdmissionNo is the natural key.
type Student struct {
	ID          int           `json:"id"`
	AdmissionNo string        `json:"admission_number"`
	FullName    string        `json:"full_name"`
	ParentID    int           `json:"parent_id"`
	ClassID     int           `json:"class_id"`
	DateOfBirth time.Time     `json:"date_of_birth"`
	Status      StudentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// CreateStudentRequest is the payload for registering a student.
type CreateStudentRequest struct {
	AdmissionNo string `json:"admission_number" binding:"required,min=1,max=50"`
	FullName    string `json:"full_name" binding:"required,min=2,max=100"`
	ParentEmail string `json:"parent_email" binding:"required,email"`
	ClassName   string `json:"class_name" binding:"required,min=1,max=50"`
	DateOfBirth string `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
}

// UpdateStudentRequest is the payload for updating a student.
type UpdateStudentRequest struct {
	FullName string        `json:"full_name" binding:"required,min=2,max=100"`
	ClassID  int           `json:"class_id" binding:"required"`
	Status   StudentStatus `json:"status" binding:"required,oneof=active graduated transferred"`
}
