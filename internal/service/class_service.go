package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/repository"
)

// ClassService handles class management.
type ClassService struct {
	classes *repository.ClassRepository
	users   *repository.UserRepository
}

// NewClassService creates a new ClassService.
func NewClassService(classes *repository.ClassRepository, users *repository.UserRepository) *ClassService {
	return &ClassService{classes: classes, users: users}
}

// Create adds a class, optionally assigning a class teacher.
func (s *ClassService) Create(ctx context.Context, req *model.CreateClassRequest) (*model.Class, error) {
	if err := s.checkTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	class := &model.Class{Name: req.Name, Level: req.Level, TeacherID: req.TeacherID}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// Get retrieves a class by ID.
func (s *ClassService) Get(ctx context.Context, id int) (*model.Class, error) {
	class, err := s.classes.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClassNotFound
	}
	return class, err
}

// List retrieves all classes.
func (s *ClassService) List(ctx context.Context) ([]model.Class, error) {
	return s.classes.List(ctx)
}

// Update modifies a class.
func (s *ClassService) Update(ctx context.Context, id int, req *model.CreateClassRequest) (*model.Class, error) {
	class, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	class.Name = req.Name
	class.Level = req.Level
	class.TeacherID = req.TeacherID
	if err := s.classes.Update(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// Delete removes a class.
func (s *ClassService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.classes.Delete(ctx, id)
}

func (s *ClassService) checkTeacher(ctx context.Context, teacherID *int) error {
	if teacherID == nil {
		return nil
	}
	teacher, err := s.users.GetByID(ctx, *teacherID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("teacher %d not found", *teacherID)
	} else if err != nil {
		return err
	}
	if teacher.Role != model.RoleTeacher {
		return fmt.Errorf("user %d is not a teacher", *teacherID)
	}
	return nil
}
