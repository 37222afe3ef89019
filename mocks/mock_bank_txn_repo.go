package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/port"
)

// MockBankTxnRepo is a mock implementation of port.BankTransactionRepository.
type MockBankTxnRepo struct {
	mock.Mock
}

func (m *MockBankTxnRepo) InsertIfAbsent(ctx context.Context, txn *domain.BankTransaction) (bool, error) {
	args := m.Called(ctx, txn)
	if fn, ok := args.Get(0).(func(context.Context, *domain.BankTransaction) bool); ok {
		return fn(ctx, txn), args.Error(1)
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockBankTxnRepo) GetByID(ctx context.Context, tenantID uuid.UUID, txnID uuid.UUID) (*domain.BankTransaction, error) {
	args := m.Called(ctx, tenantID, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankTxnRepo) LockByID(ctx context.Context, tenantID uuid.UUID, txnID uuid.UUID) (*domain.BankTransaction, error) {
	args := m.Called(ctx, tenantID, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankTxnRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.BankTxnFilter) ([]domain.BankTransaction, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.BankTransaction), args.Int(1), args.Error(2)
}

func (m *MockBankTxnRepo) ListUnmatchedCredits(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, tenantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

func (m *MockBankTxnRepo) MarkMatched(ctx context.Context, tenantID uuid.UUID, txnID uuid.UUID, paymentID uuid.UUID) error {
	args := m.Called(ctx, tenantID, txnID, paymentID)
	return args.Error(0)
}

func (m *MockBankTxnRepo) SetStatus(ctx context.Context, tenantID uuid.UUID, txnID uuid.UUID, status domain.BankTxnStatus) error {
	args := m.Called(ctx, tenantID, txnID, status)
	return args.Error(0)
}

func (m *MockBankTxnRepo) UnmatchByPayment(ctx context.Context, tenantID uuid.UUID, paymentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, paymentID)
	return args.Get(0).(int64), args.Error(1)
}
