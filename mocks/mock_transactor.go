package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTransactor is a mock implementation of port.Transactor. Unless an
// expectation returns an error, fn runs inline with the caller's context.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

func (m *MockTransactor) WithinSavepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// NewPassthroughTransactor returns a MockTransactor that accepts any number
// of transactions.
func NewPassthroughTransactor() *MockTransactor {
	tx := &MockTransactor{}
	tx.On("WithinTx", mock.Anything).Return(nil)
	tx.On("WithinSavepoint", mock.Anything).Return(nil)
	return tx
}
