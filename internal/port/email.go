package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentReceipt is the content of a payment acknowledgement mail.
type PaymentReceipt struct {
	ToEmail        string
	ToName         string
	TenantName     string
	DocumentNumber string
	Amount         decimal.Decimal
	PaymentDate    time.Time
	Mode           string
	Reference      string
	BalanceDue     decimal.Decimal
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendPaymentReceipt(ctx context.Context, receipt PaymentReceipt) error
}
