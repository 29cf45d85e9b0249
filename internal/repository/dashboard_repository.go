package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shulehub/shule-backend/internal/model"
)

// DashboardRepository aggregates school-wide counts for the admin
// dashboard in one round trip.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// Summary returns school-wide entity counts. The fee position comes
// from FeeRepository.SchoolTotals; the service composes the two.
func (r *DashboardRepository) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	s := &model.DashboardSummary{}
	err := r.pool.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM students WHERE status = 'active'),
		   (SELECT COUNT(*) FROM users WHERE role = 'teacher'),
		   (SELECT COUNT(*) FROM users WHERE role = 'parent'),
		   (SELECT COUNT(*) FROM classes),
		   (SELECT COUNT(*) FROM subjects)`,
	).Scan(&s.ActiveStudents, &s.Teachers, &s.Parents, &s.Classes, &s.Subjects)
	if err != nil {
		return nil, err
	}
	return s, nil
}
