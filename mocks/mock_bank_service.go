package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/reconcile"
	"khata/internal/service"
)

// MockBankService is a mock implementation of service.BankService.
type MockBankService struct {
	mock.Mock
}

func (m *MockBankService) Import(ctx context.Context, tenantID uuid.UUID, accountLabel string, statement io.Reader) (*domain.ImportResult, error) {
	args := m.Called(ctx, tenantID, accountLabel, statement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}

func (m *MockBankService) ImportRows(ctx context.Context, tenantID uuid.UUID, accountLabel string, rows []reconcile.StatementRow) (*domain.ImportResult, error) {
	args := m.Called(ctx, tenantID, accountLabel, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}

func (m *MockBankService) List(ctx context.Context, tenantID uuid.UUID, filter port.BankTxnFilter) ([]domain.BankTransaction, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.BankTransaction), args.Int(1), args.Error(2)
}

func (m *MockBankService) Suggest(ctx context.Context, tenantID uuid.UUID) ([]domain.MatchSuggestion, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MatchSuggestion), args.Error(1)
}

func (m *MockBankService) Match(ctx context.Context, input service.MatchInput) (*domain.Payment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockBankService) Ignore(ctx context.Context, tenantID uuid.UUID, txnID uuid.UUID) (*domain.BankTransaction, error) {
	args := m.Called(ctx, tenantID, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankService) Unignore(ctx context.Context, tenantID uuid.UUID, txnID uuid.UUID) (*domain.BankTransaction, error) {
	args := m.Called(ctx, tenantID, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}
