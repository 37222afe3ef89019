package lifecycle

import (
	"time"

	"github.com/shopspring/decimal"

	"khata/internal/domain"
	"khata/internal/gst"
)

// ApplyPayment adds amount to the paid total of doc and re-derives its
// balance and status. Payments above the balance due are rejected, as are
// payments against draft or cancelled documents.
func ApplyPayment(doc *domain.Document, amount decimal.Decimal, today time.Time) error {
	if !amount.IsPositive() {
		return domain.ErrNonPositiveAmount
	}
	if doc.Status.IsFrozen() {
		return domain.ErrDocumentNotPayable
	}
	if amount.GreaterThan(doc.BalanceDue) {
		return domain.ErrOverpayment
	}

	doc.AmountPaid = doc.AmountPaid.Add(amount)
	SettleBalance(doc)
	Refresh(doc, today)
	return CheckInvariants(doc)
}

// ReversePayment undoes a previously applied amount. A document left with
// nothing paid drops back to its open status before re-derivation, never to
// draft.
func ReversePayment(doc *domain.Document, amount decimal.Decimal, today time.Time) error {
	if !amount.IsPositive() {
		return domain.ErrNonPositiveAmount
	}

	doc.AmountPaid = decimal.Max(decimal.Zero, doc.AmountPaid.Sub(amount))
	SettleBalance(doc)

	if !doc.AmountPaid.IsPositive() &&
		(doc.Status == domain.StatusPaid || doc.Status == domain.StatusPartiallyPaid) {
		doc.Status = doc.Kind.OpenStatus()
	}
	Refresh(doc, today)
	return CheckInvariants(doc)
}

// ApplyTotals copies computed totals onto doc and resets its balance.
func ApplyTotals(doc *domain.Document, t gst.Totals) {
	doc.Subtotal = t.Subtotal
	doc.DiscountAmount = t.DiscountAmount
	doc.TaxableAmount = t.TaxableAmount
	doc.CGSTAmount = t.CGSTAmount
	doc.SGSTAmount = t.SGSTAmount
	doc.IGSTAmount = t.IGSTAmount
	doc.TotalAmount = t.TotalAmount
	SettleBalance(doc)
}

// CheckInvariants verifies the money identities every persisted document
// must satisfy.
func CheckInvariants(doc *domain.Document) error {
	if doc.AmountPaid.IsNegative() {
		return domain.Consistencyf("amount paid %s is negative", doc.AmountPaid.StringFixed(2))
	}
	if doc.BalanceDue.IsNegative() {
		return domain.ErrNegativeBalance
	}
	tax := doc.CGSTAmount.Add(doc.SGSTAmount).Add(doc.IGSTAmount)
	if !doc.TotalAmount.Equal(doc.TaxableAmount.Add(tax)) {
		return domain.ErrTotalMismatch
	}
	if doc.IGSTAmount.IsPositive() && (doc.CGSTAmount.IsPositive() || doc.SGSTAmount.IsPositive()) {
		return domain.ErrTaxSplitMixed
	}
	if doc.AmountPaid.LessThanOrEqual(doc.TotalAmount) &&
		!doc.BalanceDue.Equal(doc.TotalAmount.Sub(doc.AmountPaid)) {
		return domain.Consistencyf("balance due %s does not equal total %s less paid %s",
			doc.BalanceDue.StringFixed(2), doc.TotalAmount.StringFixed(2), doc.AmountPaid.StringFixed(2))
	}
	return nil
}
