package service

import (
	"context"
	"time"

	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/repository"
)

// DashboardService exposes the admin dashboard summary.
type DashboardService struct {
	dashboard  *repository.DashboardRepository
	fees       *repository.FeeRepository
	attendance *repository.AttendanceRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboard *repository.DashboardRepository, fees *repository.FeeRepository, attendance *repository.AttendanceRepository) *DashboardService {
	return &DashboardService{dashboard: dashboard, fees: fees, attendance: attendance}
}

// Summary returns school-wide entity counts, the fee position, and
// today's attendance tally.
func (s *DashboardService) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	summary, err := s.dashboard.Summary(ctx)
	if err != nil {
		return nil, err
	}

	billed, collected, err := s.fees.SchoolTotals(ctx)
	if err != nil {
		return nil, err
	}
	summary.FeesBilled = billed
	summary.FeesCollected = collected
	summary.FeesOutstanding = billed - collected

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	counts, err := s.attendance.CountByStatusOnDate(ctx, today)
	if err != nil {
		return nil, err
	}
	summary.AttendanceToday = counts
	return summary, nil
}
