package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/service"
)

// MockPartyService is a mock implementation of service.PartyService.
type MockPartyService struct {
	mock.Mock
}

func (m *MockPartyService) Create(ctx context.Context, tenantID uuid.UUID, input service.CreatePartyInput) (*domain.Party, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyService) GetByID(ctx context.Context, tenantID uuid.UUID, partyID uuid.UUID) (*domain.Party, error) {
	args := m.Called(ctx, tenantID, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyService) List(ctx context.Context, tenantID uuid.UUID, filter port.PartyFilter) ([]domain.Party, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Party), args.Int(1), args.Error(2)
}

func (m *MockPartyService) Update(ctx context.Context, tenantID uuid.UUID, partyID uuid.UUID, input service.UpdatePartyInput) (*domain.Party, error) {
	args := m.Called(ctx, tenantID, partyID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyService) Delete(ctx context.Context, tenantID uuid.UUID, partyID uuid.UUID) error {
	args := m.Called(ctx, tenantID, partyID)
	return args.Error(0)
}

func (m *MockPartyService) Restore(ctx context.Context, tenantID uuid.UUID, partyID uuid.UUID) (*domain.Party, error) {
	args := m.Called(ctx, tenantID, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
