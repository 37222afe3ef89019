package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"khata/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendPaymentReceipt(ctx context.Context, receipt port.PaymentReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}
