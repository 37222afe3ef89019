package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
)

// MockLedgerService is a mock implementation of service.LedgerService.
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Statement(ctx context.Context, tenantID uuid.UUID, partyID uuid.UUID, from *time.Time, to *time.Time) (*domain.LedgerStatement, error) {
	args := m.Called(ctx, tenantID, partyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerStatement), args.Error(1)
}
