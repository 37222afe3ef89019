package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/timeutil"
)

// DashboardService provides the at-a-glance summary of a tenant.
type DashboardService interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*domain.Dashboard, error)
	Reminders(ctx context.Context, tenantID uuid.UUID) (*domain.Reminders, error)
}

type dashboardService struct {
	repo port.DashboardRepository
}

// NewDashboardService creates a new DashboardService implementation.
func NewDashboardService(repo port.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) Get(ctx context.Context, tenantID uuid.UUID) (*domain.Dashboard, error) {
	today := timeutil.Today()
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, timeutil.IST)
	return s.repo.GetSummary(ctx, tenantID, monthStart)
}

func (s *dashboardService) Reminders(ctx context.Context, tenantID uuid.UUID) (*domain.Reminders, error) {
	rem, err := s.repo.Reminders(ctx, tenantID, timeutil.Today())
	if err != nil {
		return nil, err
	}
	for _, list := range []*[]domain.ReminderItem{
		&rem.OverdueInvoices, &rem.PendingTDSCertificates, &rem.UpcomingFollowUps, &rem.OverdueBills,
	} {
		if *list == nil {
			*list = []domain.ReminderItem{}
		}
	}
	return rem, nil
}
