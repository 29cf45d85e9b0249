package model

import "time"

// ExamType enumerates the recognized assessment rounds.
type ExamType string

const (
	Exam1     ExamType = "Exam 1"
	Exam2     ExamType = "Exam 2"
	Exam3     ExamType = "Exam 3"
	Summative ExamType = "Summative"
)

// ValidExamType reports whether s is one of the recognized exam types.
func ValidExamType(s string) bool {
	switch ExamType(s) {
	case Exam1, Exam2, Exam3, Summative:
		return true
	}
	return false
}

// Grade records a student's marks for one subject in one exam round.
// (StudentID, SubjectID, ExamType, Term, Year) is the natural key.
type Grade struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	SubjectID int       `json:"subject_id"`
	ExamType  ExamType  `json:"exam_type"`
	Term      string    `json:"term"`
	Year      int       `json:"year"`
	Marks     float64   `json:"marks"`
	CBCBand   string    `json:"cbc_band"`
	CreatedAt time.Time `json:"created_at"`
}

// GradeReportRow is a grade joined with its subject for report views.
type GradeReportRow struct {
	Grade
	SubjectName string `json:"subject_name"`
}

// ClassGradeRow is one grade flattened with student and subject names,
// used by class report exports.
type ClassGradeRow struct {
	AdmissionNo string   `json:"admission_number"`
	StudentName string   `json:"student_name"`
	SubjectName string   `json:"subject_name"`
	ExamType    ExamType `json:"exam_type"`
	Marks       float64  `json:"marks"`
	CBCBand     string   `json:"cbc_band"`
}

// CreateGradeRequest is the payload for single grade entry.
type CreateGradeRequest struct {
	AdmissionNo string  `json:"admission_number" binding:"required"`
	SubjectID   int     `json:"subject_id" binding:"required"`
	ExamType    string  `json:"exam_type" binding:"required"`
	Term        string  `json:"term" binding:"required,min=1,max=20"`
	Year        int     `json:"year" binding:"required,min=2000,max=2100"`
	Marks       float64 `json:"marks" binding:"min=0,max=100"`
}
