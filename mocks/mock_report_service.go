package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/report"
	"khata/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Aging(ctx context.Context, tenantID uuid.UUID, kind domain.DocumentKind) (*report.AgingReport, error) {
	args := m.Called(ctx, tenantID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.AgingReport), args.Error(1)
}

func (m *MockReportService) TDSRegister(ctx context.Context, tenantID uuid.UUID, rng service.DateRange) ([]report.TDSRow, error) {
	args := m.Called(ctx, tenantID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.TDSRow), args.Error(1)
}

func (m *MockReportService) SalesSummary(ctx context.Context, tenantID uuid.UUID, rng service.DateRange) ([]report.MonthSummary, error) {
	args := m.Called(ctx, tenantID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.MonthSummary), args.Error(1)
}

func (m *MockReportService) GSTRegister(ctx context.Context, tenantID uuid.UUID, rng service.DateRange) ([]report.GSTRegisterRow, error) {
	args := m.Called(ctx, tenantID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.GSTRegisterRow), args.Error(1)
}

func (m *MockReportService) Backup(ctx context.Context, tenantID uuid.UUID, w io.Writer) error {
	args := m.Called(ctx, tenantID, w)
	return args.Error(0)
}
