package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shulehub/shule-backend/internal/bulkimport"
	"github.com/shulehub/shule-backend/internal/config"
	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ImportService runs the bulk CSV/XLSX import pipelines. It adapts the
// repositories to the import package's Resolver and Store interfaces.
type ImportService struct {
	processor *bulkimport.Processor

	users    *repository.UserRepository
	students *repository.StudentRepository
	classes  *repository.ClassRepository
	subjects *repository.SubjectRepository
	grades   *repository.GradeRepository
}

// NewImportService creates an ImportService. The configured default
// password is hashed once, up front, and reused for every parent account
// the import creates.
func NewImportService(
	cfg *config.Config,
	users *repository.UserRepository,
	students *repository.StudentRepository,
	classes *repository.ClassRepository,
	subjects *repository.SubjectRepository,
	grades *repository.GradeRepository,
	log zerolog.Logger,
) (*ImportService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.ImportDefaultPassword), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash default password: %w", err)
	}

	s := &ImportService{
		users:    users,
		students: students,
		classes:  classes,
		subjects: subjects,
		grades:   grades,
	}
	s.processor = bulkimport.NewProcessor(s, s, string(hash), log)
	return s, nil
}

// ImportParents imports a parents file.
func (s *ImportService) ImportParents(ctx context.Context, filename string, data []byte) (*bulkimport.BatchResult, error) {
	return s.run(ctx, bulkimport.KindParents, filename, data)
}

// ImportStudents imports a students file.
func (s *ImportService) ImportStudents(ctx context.Context, filename string, data []byte) (*bulkimport.BatchResult, error) {
	return s.run(ctx, bulkimport.KindStudents, filename, data)
}

// ImportGrades imports a grades file in either long or wide format.
func (s *ImportService) ImportGrades(ctx context.Context, filename string, data []byte) (*bulkimport.BatchResult, error) {
	return s.run(ctx, bulkimport.KindGrades, filename, data)
}

func (s *ImportService) run(ctx context.Context, kind bulkimport.Kind, filename string, data []byte) (*bulkimport.BatchResult, error) {
	headers, rows, err := bulkimport.ParseUpload(filename, data)
	if err != nil {
		return nil, err
	}
	return s.processor.Run(ctx, kind, headers, rows)
}

// notFound converts a pgx no-rows miss into the import package's
// sentinel so the pipeline can tell clean misses from storage failures.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return bulkimport.ErrNotFound
	}
	return err
}

// Resolver implementation.

func (s *ImportService) ParentByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.users.GetParentByEmail(ctx, email)
	return u, notFound(err)
}

func (s *ImportService) ClassByName(ctx context.Context, name string) (*model.Class, error) {
	c, err := s.classes.GetByName(ctx, name)
	return c, notFound(err)
}

func (s *ImportService) ClassByID(ctx context.Context, id int) (*model.Class, error) {
	c, err := s.classes.GetByID(ctx, id)
	return c, notFound(err)
}

func (s *ImportService) StudentByAdmission(ctx context.Context, admissionNo string) (*model.Student, error) {
	st, err := s.students.GetByAdmissionNo(ctx, admissionNo)
	return st, notFound(err)
}

// SubjectByName resolves a subject in three tiers: exact name, then
// level-filtered substring when the class grade is known, then a loose
// substring match. Wide-format column names arrive normalized with
// underscores, so those are folded back to spaces before lookup.
func (s *ImportService) SubjectByName(ctx context.Context, name string, classGrade *int) (*model.Subject, error) {
	name = strings.ReplaceAll(name, "_", " ")

	subj, err := s.subjects.GetByNameExact(ctx, name)
	if err == nil {
		return subj, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if classGrade != nil {
		subj, err = s.subjects.GetByLevelAndNameLike(ctx, bulkimport.LevelKeyword(*classGrade), name)
		if err == nil {
			return subj, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	subj, err = s.subjects.GetByNameLike(ctx, name)
	return subj, notFound(err)
}

// Store implementation.

func (s *ImportService) ParentExists(ctx context.Context, username, email string) (bool, error) {
	return s.users.ExistsByUsernameOrEmail(ctx, username, email)
}

func (s *ImportService) CreateParent(ctx context.Context, u *model.User) error {
	return s.users.Create(ctx, u)
}

func (s *ImportService) StudentExists(ctx context.Context, admissionNo string) (bool, error) {
	return s.students.ExistsByAdmissionNo(ctx, admissionNo)
}

func (s *ImportService) CreateStudent(ctx context.Context, st *model.Student) error {
	return s.students.Create(ctx, st)
}

func (s *ImportService) GradeExists(ctx context.Context, studentID, subjectID int, examType model.ExamType, term string, year int) (bool, error) {
	return s.grades.Exists(ctx, studentID, subjectID, examType, term, year)
}

func (s *ImportService) CreateGrade(ctx context.Context, g *model.Grade) error {
	return s.grades.Create(ctx, g)
}

func (s *ImportService) CreateGrades(ctx context.Context, gs []*model.Grade) error {
	return s.grades.CreateAll(ctx, gs)
}
