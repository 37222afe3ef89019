package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/port"
)

// MockPaymentRepo is a mock implementation of port.PaymentRepository.
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepo) GetByID(ctx context.Context, tenantID uuid.UUID, paymentID uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, tenantID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.PaymentFilter) ([]domain.Payment, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Payment), args.Int(1), args.Error(2)
}

func (m *MockPaymentRepo) SoftDelete(ctx context.Context, tenantID uuid.UUID, paymentID uuid.UUID) error {
	args := m.Called(ctx, tenantID, paymentID)
	return args.Error(0)
}

func (m *MockPaymentRepo) CountByDocument(ctx context.Context, tenantID uuid.UUID, docID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID, docID)
	return args.Int(0), args.Error(1)
}
