package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shulehub/shule-backend/internal/model"
)

// AttendanceRepository handles daily attendance data access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// UpsertAll records attendance for a set of students on one day in a
// single transaction. Re-marking a student for the same day overwrites
// the earlier status.
func (r *AttendanceRepository) UpsertAll(ctx context.Context, date time.Time, entries []model.AttendanceEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		_, err := tx.Exec(ctx,
			`INSERT INTO attendance (student_id, date, status)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (student_id, date) DO UPDATE SET status = EXCLUDED.status`,
			e.StudentID, date, e.Status,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListByStudent retrieves a student's attendance between two dates.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int, from, to time.Time) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, date, status, created_at FROM attendance
		 WHERE student_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date`,
		studentID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Attendance
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.StudentID, &a.Date, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// ListByClassDate retrieves a class register for one day.
func (r *AttendanceRepository) ListByClassDate(ctx context.Context, classID int, date time.Time) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.student_id, a.date, a.status, a.created_at
		 FROM attendance a JOIN students s ON s.id = a.student_id
		 WHERE s.class_id = $1 AND a.date = $2 ORDER BY a.student_id`,
		classID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Attendance
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.StudentID, &a.Date, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// CountByStatusOnDate returns school-wide per-status counts for one day.
func (r *AttendanceRepository) CountByStatusOnDate(ctx context.Context, date time.Time) (map[model.AttendanceStatus]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM attendance WHERE date = $1 GROUP BY status`,
		date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.AttendanceStatus]int)
	for rows.Next() {
		var status model.AttendanceStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// CountByStatus returns per-status counts for a student between two dates.
func (r *AttendanceRepository) CountByStatus(ctx context.Context, studentID int, from, to time.Time) (map[model.AttendanceStatus]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM attendance
		 WHERE student_id = $1 AND date BETWEEN $2 AND $3 GROUP BY status`,
		studentID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.AttendanceStatus]int)
	for rows.Next() {
		var status model.AttendanceStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
