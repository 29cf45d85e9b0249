package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shulehub/shule-backend/internal/cbc"
	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/repository"
)

// Grade entry errors surfaced to handlers.
var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrInvalidExamType = errors.New("exam_type must be one of: Exam 1, Exam 2, Exam 3, Summative")
	ErrDuplicateGrade  = errors.New("a grade for this student, subject, exam type, term and year already exists")
)

// GradeService handles single grade entry and grade reporting. It applies
// the same band derivation and duplicate rules as the bulk pipeline.
type GradeService struct {
	grades   *repository.GradeRepository
	students *repository.StudentRepository
	subjects *repository.SubjectRepository
}

// NewGradeService creates a new GradeService.
func NewGradeService(grades *repository.GradeRepository, students *repository.StudentRepository, subjects *repository.SubjectRepository) *GradeService {
	return &GradeService{grades: grades, students: students, subjects: subjects}
}

// Create records one grade. The CBC band is always derived from marks;
// callers cannot supply it.
func (s *GradeService) Create(ctx context.Context, req *model.CreateGradeRequest) (*model.Grade, error) {
	if !model.ValidExamType(req.ExamType) {
		return nil, ErrInvalidExamType
	}

	student, err := s.students.GetByAdmissionNo(ctx, req.AdmissionNo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStudentNotFound
	} else if err != nil {
		return nil, fmt.Errorf("lookup student: %w", err)
	}

	if _, err := s.subjects.GetByID(ctx, req.SubjectID); errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSubjectNotFound
	} else if err != nil {
		return nil, fmt.Errorf("lookup subject: %w", err)
	}

	grade := &model.Grade{
		StudentID: student.ID,
		SubjectID: req.SubjectID,
		ExamType:  model.ExamType(req.ExamType),
		Term:      req.Term,
		Year:      req.Year,
		Marks:     req.Marks,
		CBCBand:   string(cbc.Classify(req.Marks)),
	}
	if err := s.grades.Create(ctx, grade); err != nil {
		if errors.Is(err, repository.ErrDuplicateGrade) {
			return nil, ErrDuplicateGrade
		}
		return nil, err
	}
	return grade, nil
}

// ReportForStudent retrieves a student's grades joined with subject
// names, optionally filtered by term and year.
func (s *GradeService) ReportForStudent(ctx context.Context, studentID int, term string, year int) ([]model.GradeReportRow, error) {
	if _, err := s.students.GetByID(ctx, studentID); errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStudentNotFound
	} else if err != nil {
		return nil, fmt.Errorf("lookup student: %w", err)
	}
	return s.grades.ListByStudent(ctx, studentID, term, year)
}
