// Package lifecycle holds the status rules of invoices and vendor bills and
// the balance arithmetic of applying and reversing payments.
package lifecycle

import (
	"time"

	"github.com/shopspring/decimal"

	"khata/internal/domain"
	"khata/internal/timeutil"
)

// DeriveStatus computes the status doc should carry on the calendar day
// today. It reads doc and never mutates it.
func DeriveStatus(doc *domain.Document, today time.Time) domain.DocumentStatus {
	if doc.Status.IsFrozen() {
		return doc.Status
	}
	if !doc.BalanceDue.IsPositive() {
		return domain.StatusPaid
	}

	pastDue := timeutil.DateOf(doc.DueDate).Before(timeutil.DateOf(today))
	paid := doc.AmountPaid.IsPositive()

	if doc.Kind == domain.DocumentPurchase {
		switch {
		case paid:
			return domain.StatusPartiallyPaid
		case pastDue:
			return domain.StatusOverdue
		}
		return domain.StatusPending
	}

	switch {
	case pastDue:
		return domain.StatusOverdue
	case paid:
		return domain.StatusPartiallyPaid
	}
	return domain.StatusSent
}

// Refresh stores the derived status on doc and reports whether it changed.
func Refresh(doc *domain.Document, today time.Time) bool {
	next := DeriveStatus(doc, today)
	if next == doc.Status {
		return false
	}
	doc.Status = next
	return true
}

// Transition applies an explicit status change requested by a user and then
// re-derives the status.
//
// Allowed: issue (draft to the open status), cancel (anything not cancelled,
// only when nothing has been paid) and reopen (cancelled to the open status).
func Transition(doc *domain.Document, to domain.DocumentStatus, today time.Time) error {
	if !domain.ValidStatuses[doc.Kind][to] {
		return domain.ErrInvalidStatus
	}
	open := doc.Kind.OpenStatus()

	switch {
	case to == domain.StatusCancelled && doc.Status != domain.StatusCancelled:
		if doc.AmountPaid.IsPositive() {
			return domain.ErrDocumentHasPayments
		}
	case to == open && (doc.Status == domain.StatusDraft || doc.Status == domain.StatusCancelled):
	default:
		return domain.ErrInvalidStatus
	}

	doc.Status = to
	Refresh(doc, today)
	return nil
}

// SettleBalance recomputes balanceDue from totalAmount and amountPaid,
// flooring at zero.
func SettleBalance(doc *domain.Document) {
	doc.BalanceDue = decimal.Max(decimal.Zero, doc.TotalAmount.Sub(doc.AmountPaid))
}
