package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/port"
)

// MockPartyRepo is a mock implementation of port.PartyRepository.
type MockPartyRepo struct {
	mock.Mock
}

func (m *MockPartyRepo) Create(ctx context.Context, party *domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepo) GetByID(ctx context.Context, tenantID uuid.UUID, partyID uuid.UUID) (*domain.Party, error) {
	args := m.Called(ctx, tenantID, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.PartyFilter) ([]domain.Party, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Party), args.Int(1), args.Error(2)
}

func (m *MockPartyRepo) Update(ctx context.Context, party *domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepo) SoftDelete(ctx context.Context, tenantID uuid.UUID, partyID uuid.UUID) error {
	args := m.Called(ctx, tenantID, partyID)
	return args.Error(0)
}

func (m *MockPartyRepo) Restore(ctx context.Context, tenantID uuid.UUID, partyID uuid.UUID) error {
	args := m.Called(ctx, tenantID, partyID)
	return args.Error(0)
}
