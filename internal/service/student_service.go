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

// Record lookup errors surfaced to handlers.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrClassNotFound   = errors.New("class not found")
	ErrParentNotFound  = errors.New("parent not found")
)

// StudentService handles single-record student operations. Bulk
// registration goes through ImportService instead.
type StudentService struct {
	students *repository.StudentRepository
	classes  *repository.ClassRepository
	users    *repository.UserRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(students *repository.StudentRepository, classes *repository.ClassRepository, users *repository.UserRepository) *StudentService {
	return &StudentService{students: students, classes: classes, users: users}
}

// Create registers one student, resolving the parent by email and the
// class by name the same way the bulk pipeline does.
func (s *StudentService) Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	parent, err := s.users.GetParentByEmail(ctx, req.ParentEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrParentNotFound
	} else if err != nil {
		return nil, fmt.Errorf("lookup parent: %w", err)
	}

	class, err := s.classes.GetByName(ctx, req.ClassName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClassNotFound
	} else if err != nil {
		return nil, fmt.Errorf("lookup class: %w", err)
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("parse date_of_birth: %w", err)
	}

	student := &model.Student{
		AdmissionNo: req.AdmissionNo,
		FullName:    req.FullName,
		ParentID:    parent.ID,
		ClassID:     class.ID,
		DateOfBirth: dob,
		Status:      model.StudentActive,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Get retrieves a student by ID.
func (s *StudentService) Get(ctx context.Context, id int) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStudentNotFound
	}
	return student, err
}

// GetByAdmissionNo retrieves a student by admission number.
func (s *StudentService) GetByAdmissionNo(ctx context.Context, admissionNo string) (*model.Student, error) {
	student, err := s.students.GetByAdmissionNo(ctx, admissionNo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStudentNotFound
	}
	return student, err
}

// List retrieves students with pagination and an optional class filter.
func (s *StudentService) List(ctx context.Context, classID *int, page, perPage int) ([]model.Student, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.students.ListPaginated(ctx, classID, perPage, (page-1)*perPage)
}

// ListByParent retrieves a parent's children.
func (s *StudentService) ListByParent(ctx context.Context, parentID int) ([]model.Student, error) {
	return s.students.ListByParent(ctx, parentID)
}

// Update modifies a student's name, class and enrollment status.
func (s *StudentService) Update(ctx context.Context, id int, req *model.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.classes.GetByID(ctx, req.ClassID); errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClassNotFound
	} else if err != nil {
		return nil, fmt.Errorf("lookup class: %w", err)
	}

	student.FullName = req.FullName
	student.ClassID = req.ClassID
	student.Status = req.Status
	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// OwnedByParent reports whether the student belongs to the parent. Used
// to scope parent-facing reads to their own children.
func (s *StudentService) OwnedByParent(ctx context.Context, studentID, parentID int) (bool, error) {
	student, err := s.Get(ctx, studentID)
	if err != nil {
		return false, err
	}
	return student.ParentID == parentID, nil
}
