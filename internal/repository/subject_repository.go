package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shulehub/shule-backend/internal/model"
)

var ErrDuplicateSubjectCode = errors.New("subject with this code already exists")

const subjectColumns = `id, name, code, level, created_at, updated_at`

// SubjectRepository handles subject data access, including the tiered
// fuzzy lookups the import pipeline relies on.
type SubjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

func scanSubject(row interface{ Scan(...any) error }) (*model.Subject, error) {
	s := &model.Subject{}
	err := row.Scan(&s.ID, &s.Name, &s.Code, &s.Level, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a subject by ID.
func (r *SubjectRepository) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	return scanSubject(r.pool.QueryRow(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE id = $1`, id))
}

// GetByNameExact retrieves a subject by case-insensitive exact name.
func (r *SubjectRepository) GetByNameExact(ctx context.Context, name string) (*model.Subject, error) {
	return scanSubject(r.pool.QueryRow(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE LOWER(name) = LOWER(TRIM($1))`, name))
}

// GetByLevelAndNameLike retrieves the best subject whose level contains
// the keyword and whose name contains the needle. Ties break by shortest
// name then alphabetically, so resolution is deterministic.
func (r *SubjectRepository) GetByLevelAndNameLike(ctx context.Context, levelKeyword, name string) (*model.Subject, error) {
	return scanSubject(r.pool.QueryRow(ctx,
		`SELECT `+subjectColumns+` FROM subjects
		 WHERE level ILIKE '%' || $1 || '%' AND name ILIKE '%' || TRIM($2) || '%'
		 ORDER BY LENGTH(name), name LIMIT 1`, levelKeyword, name))
}

// GetByNameLike retrieves the best subject whose name contains the
// needle, with the same deterministic ordering.
func (r *SubjectRepository) GetByNameLike(ctx context.Context, name string) (*model.Subject, error) {
	return scanSubject(r.pool.QueryRow(ctx,
		`SELECT `+subjectColumns+` FROM subjects
		 WHERE name ILIKE '%' || TRIM($1) || '%'
		 ORDER BY LENGTH(name), name LIMIT 1`, name))
}

// List retrieves all subjects ordered by name.
func (r *SubjectRepository) List(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+subjectColumns+` FROM subjects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, *s)
	}
	return subjects, rows.Err()
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, s *model.Subject) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO subjects (name, code, level) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.Code, s.Level,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSubjectCode
		}
		return err
	}
	return nil
}
