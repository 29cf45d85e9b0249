package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/repository"
)

// AttendanceService handles daily attendance marking and queries.
type AttendanceService struct {
	attendance *repository.AttendanceRepository
	students   *repository.StudentRepository
	classes    *repository.ClassRepository
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(attendance *repository.AttendanceRepository, students *repository.StudentRepository, classes *repository.ClassRepository) *AttendanceService {
	return &AttendanceService{attendance: attendance, students: students, classes: classes}
}

// Mark records attendance for a class on one day. Every entry must name
// a student of that class; re-marking a day overwrites earlier statuses.
func (s *AttendanceService) Mark(ctx context.Context, req *model.MarkAttendanceRequest) error {
	if _, err := s.classes.GetByID(ctx, req.ClassID); errors.Is(err, pgx.ErrNoRows) {
		return ErrClassNotFound
	} else if err != nil {
		return fmt.Errorf("lookup class: %w", err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return fmt.Errorf("parse date: %w", err)
	}

	members, err := s.students.ListByClass(ctx, req.ClassID)
	if err != nil {
		return err
	}
	inClass := make(map[int]bool, len(members))
	for _, m := range members {
		inClass[m.ID] = true
	}
	for _, e := range req.Entries {
		if !inClass[e.StudentID] {
			return fmt.Errorf("student %d is not in class %d", e.StudentID, req.ClassID)
		}
	}

	return s.attendance.UpsertAll(ctx, date, req.Entries)
}

// ForStudent retrieves a student's attendance between two dates plus
// per-status counts.
func (s *AttendanceService) ForStudent(ctx context.Context, studentID int, from, to time.Time) ([]model.Attendance, map[model.AttendanceStatus]int, error) {
	if _, err := s.students.GetByID(ctx, studentID); errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrStudentNotFound
	} else if err != nil {
		return nil, nil, err
	}

	records, err := s.attendance.ListByStudent(ctx, studentID, from, to)
	if err != nil {
		return nil, nil, err
	}
	counts, err := s.attendance.CountByStatus(ctx, studentID, from, to)
	if err != nil {
		return nil, nil, err
	}
	return records, counts, nil
}

// Register retrieves a class register for one day.
func (s *AttendanceService) Register(ctx context.Context, classID int, date time.Time) ([]model.Attendance, error) {
	if _, err := s.classes.GetByID(ctx, classID); errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClassNotFound
	} else if err != nil {
		return nil, err
	}
	return s.attendance.ListByClassDate(ctx, classID, date)
}
