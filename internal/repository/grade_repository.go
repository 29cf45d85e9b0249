package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shulehub/shule-backend/internal/model"
)

var ErrDuplicateGrade = errors.New("a grade for this student, subject, exam type, term and year already exists")

// GradeRepository handles grade data access.
type GradeRepository struct {
	pool *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository.
func NewGradeRepository(pool *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{pool: pool}
}

// Exists reports whether a grade with the natural key is already stored.
func (r *GradeRepository) Exists(ctx context.Context, studentID, subjectID int, examType model.ExamType, term string, year int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM grades
		 WHERE student_id = $1 AND subject_id = $2 AND exam_type = $3 AND term = $4 AND year = $5)`,
		studentID, subjectID, examType, term, year,
	).Scan(&exists)
	return exists, err
}

// Create inserts one grade in its own implicit transaction.
func (r *GradeRepository) Create(ctx context.Context, g *model.Grade) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO grades (student_id, subject_id, exam_type, term, year, marks, cbc_band)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		g.StudentID, g.SubjectID, g.ExamType, g.Term, g.Year, g.Marks, g.CBCBand,
	).Scan(&g.ID, &g.CreatedAt)

	return mapGradeErr(err)
}

// CreateAll inserts a group of grades atomically. Used by wide-format
// imports: if any insert fails the transaction rolls back and no grade
// from the group is persisted.
func (r *GradeRepository) CreateAll(ctx context.Context, gs []*model.Grade) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, g := range gs {
		err := tx.QueryRow(ctx,
			`INSERT INTO grades (student_id, subject_id, exam_type, term, year, marks, cbc_band)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id, created_at`,
			g.StudentID, g.SubjectID, g.ExamType, g.Term, g.Year, g.Marks, g.CBCBand,
		).Scan(&g.ID, &g.CreatedAt)
		if err != nil {
			return mapGradeErr(err)
		}
	}

	return tx.Commit(ctx)
}

// ListByStudent retrieves a student's grades joined with subject names,
// optionally filtered by term and year.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int, term string, year int) ([]model.GradeReportRow, error) {
	query := `SELECT g.id, g.student_id, g.subject_id, g.exam_type, g.term, g.year, g.marks, g.cbc_band, g.created_at, s.name
		 FROM grades g JOIN subjects s ON s.id = g.subject_id
		 WHERE g.student_id = $1`
	args := []interface{}{studentID}

	if term != "" {
		args = append(args, term)
		query += ` AND g.term = $` + strconv.Itoa(len(args))
	}
	if year != 0 {
		args = append(args, year)
		query += ` AND g.year = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY g.year DESC, g.term, s.name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GradeReportRow
	for rows.Next() {
		var g model.GradeReportRow
		if err := rows.Scan(&g.ID, &g.StudentID, &g.SubjectID, &g.ExamType, &g.Term,
			&g.Year, &g.Marks, &g.CBCBand, &g.CreatedAt, &g.SubjectName); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// ListByClassTermYear retrieves every grade for a class in a term/year,
// joined with student and subject names, for report exports.
func (r *GradeRepository) ListByClassTermYear(ctx context.Context, classID int, term string, year int) ([]model.ClassGradeRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT st.admission_number, st.full_name, su.name, g.exam_type, g.marks, g.cbc_band
		 FROM grades g
		 JOIN students st ON st.id = g.student_id
		 JOIN subjects su ON su.id = g.subject_id
		 WHERE st.class_id = $1 AND g.term = $2 AND g.year = $3
		 ORDER BY st.full_name, su.name, g.exam_type`,
		classID, term, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ClassGradeRow
	for rows.Next() {
		var row model.ClassGradeRow
		if err := rows.Scan(&row.AdmissionNo, &row.StudentName, &row.SubjectName,
			&row.ExamType, &row.Marks, &row.CBCBand); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func mapGradeErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateGrade
	}
	return err
}
