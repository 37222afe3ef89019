package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/port"
)

// MockItemRepo is a mock implementation of port.ItemRepository.
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepo) GetByID(ctx context.Context, tenantID uuid.UUID, itemID uuid.UUID) (*domain.Item, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.ItemFilter) ([]domain.Item, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Item), args.Int(1), args.Error(2)
}

func (m *MockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepo) SoftDelete(ctx context.Context, tenantID uuid.UUID, itemID uuid.UUID) error {
	args := m.Called(ctx, tenantID, itemID)
	return args.Error(0)
}
