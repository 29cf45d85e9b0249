package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/repository"
)

// SubjectService handles subject management.
type SubjectService struct {
	subjects *repository.SubjectRepository
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(subjects *repository.SubjectRepository) *SubjectService {
	return &SubjectService{subjects: subjects}
}

// Create adds a subject.
func (s *SubjectService) Create(ctx context.Context, req *model.CreateSubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{Name: req.Name, Code: req.Code, Level: req.Level}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Get retrieves a subject by ID.
func (s *SubjectService) Get(ctx context.Context, id int) (*model.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSubjectNotFound
	}
	return subject, err
}

// List retrieves all subjects.
func (s *SubjectService) List(ctx context.Context) ([]model.Subject, error) {
	return s.subjects.List(ctx)
}
