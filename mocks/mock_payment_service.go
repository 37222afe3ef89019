package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/service"
)

// MockPaymentService is a mock implementation of service.PaymentService.
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Record(ctx context.Context, input service.RecordPaymentInput) (*domain.Payment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) GetByID(ctx context.Context, tenantID uuid.UUID, paymentID uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, tenantID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) List(ctx context.Context, tenantID uuid.UUID, filter port.PaymentFilter) ([]domain.Payment, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Payment), args.Int(1), args.Error(2)
}

func (m *MockPaymentService) Delete(ctx context.Context, tenantID uuid.UUID, paymentID uuid.UUID) error {
	args := m.Called(ctx, tenantID, paymentID)
	return args.Error(0)
}
