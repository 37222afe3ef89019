package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/service"
)

// MockItemService is a mock implementation of service.ItemService.
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) Create(ctx context.Context, tenantID uuid.UUID, userID uuid.UUID, input service.CreateItemInput) (*domain.Item, error) {
	args := m.Called(ctx, tenantID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemService) GetByID(ctx context.Context, tenantID uuid.UUID, itemID uuid.UUID) (*domain.Item, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemService) List(ctx context.Context, tenantID uuid.UUID, filter port.ItemFilter) ([]domain.Item, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Item), args.Int(1), args.Error(2)
}

func (m *MockItemService) Update(ctx context.Context, tenantID uuid.UUID, itemID uuid.UUID, input service.UpdateItemInput) (*domain.Item, error) {
	args := m.Called(ctx, tenantID, itemID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemService) Delete(ctx context.Context, tenantID uuid.UUID, itemID uuid.UUID) error {
	args := m.Called(ctx, tenantID, itemID)
	return args.Error(0)
}
