package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/shulehub/shule-backend/internal/repository"
)

// ReportService produces CSV exports for grades and fee collections.
type ReportService struct {
	grades   *repository.GradeRepository
	classes  *repository.ClassRepository
	students *repository.StudentRepository
	fees     *FeeService
}

// NewReportService creates a new ReportService.
func NewReportService(grades *repository.GradeRepository, classes *repository.ClassRepository, students *repository.StudentRepository, fees *FeeService) *ReportService {
	return &ReportService{grades: grades, classes: classes, students: students, fees: fees}
}

// ClassGradesCSV exports every grade of a class for a term/year.
func (s *ReportService) ClassGradesCSV(ctx context.Context, classID int, term string, year int) ([]byte, error) {
	if _, err := s.classes.GetByID(ctx, classID); errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClassNotFound
	} else if err != nil {
		return nil, err
	}

	rows, err := s.grades.ListByClassTermYear(ctx, classID, term, year)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"admission_number", "student_name", "subject_name", "exam_type", "marks", "cbc_band"})
	for _, r := range rows {
		_ = w.Write([]string{
			r.AdmissionNo,
			r.StudentName,
			r.SubjectName,
			string(r.ExamType),
			strconv.FormatFloat(r.Marks, 'f', -1, 64),
			r.CBCBand,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ClassFeeBalancesCSV exports per-student fee balances for a class.
func (s *ReportService) ClassFeeBalancesCSV(ctx context.Context, classID int) ([]byte, error) {
	if _, err := s.classes.GetByID(ctx, classID); errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClassNotFound
	} else if err != nil {
		return nil, err
	}

	members, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"admission_number", "student_name", "balance"})
	for _, m := range members {
		balance, err := s.fees.StudentBalance(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		_ = w.Write([]string{
			m.AdmissionNo,
			m.FullName,
			strconv.FormatFloat(balance, 'f', 2, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
