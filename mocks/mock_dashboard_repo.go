package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
)

// MockDashboardRepo is a mock implementation of port.DashboardRepository.
type MockDashboardRepo struct {
	mock.Mock
}

func (m *MockDashboardRepo) GetSummary(ctx context.Context, tenantID uuid.UUID, monthStart time.Time) (*domain.Dashboard, error) {
	args := m.Called(ctx, tenantID, monthStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

func (m *MockDashboardRepo) Reminders(ctx context.Context, tenantID uuid.UUID, today time.Time) (*domain.Reminders, error) {
	args := m.Called(ctx, tenantID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reminders), args.Error(1)
}
