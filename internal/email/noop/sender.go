// Package noop provides an EmailSender that only logs.
package noop

import (
	"context"

	"go.uber.org/zap"

	"khata/internal/port"
)

// Sender logs receipts instead of delivering them.
type Sender struct {
	log *zap.Logger
}

// New creates a Sender writing to log.
func New(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) SendPaymentReceipt(_ context.Context, r port.PaymentReceipt) error {
	s.log.Info("payment receipt (not sent)",
		zap.String("to", r.ToEmail),
		zap.String("document_number", r.DocumentNumber),
		zap.String("amount", r.Amount.StringFixed(2)),
		zap.String("balance_due", r.BalanceDue.StringFixed(2)),
	)
	return nil
}
