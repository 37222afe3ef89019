package domain

import "github.com/shopspring/decimal"

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleAccountant UserRole = "accountant"
	RoleViewer     UserRole = "viewer"
)

// ValidUserRoles is the set of assignable roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:      true,
	RoleAccountant: true,
	RoleViewer:     true,
}

// CanWrite reports whether the role may mutate accounting data.
func (r UserRole) CanWrite() bool {
	return r == RoleAdmin || r == RoleAccountant
}

// PartyKind distinguishes customers from vendors.
type PartyKind string

const (
	PartyCustomer PartyKind = "customer"
	PartyVendor   PartyKind = "vendor"
)

// DocumentKind discriminates invoices (sales) from vendor bills (purchase).
type DocumentKind string

const (
	DocumentSales    DocumentKind = "sales"
	DocumentPurchase DocumentKind = "purchase"
)

// PartyKind returns the counterparty kind a document of this kind is raised against.
func (k DocumentKind) PartyKind() PartyKind {
	if k == DocumentPurchase {
		return PartyVendor
	}
	return PartyCustomer
}

// PaymentDirection returns the direction of money for payments against this kind.
func (k DocumentKind) PaymentDirection() PaymentDirection {
	if k == DocumentPurchase {
		return PaymentMade
	}
	return PaymentReceived
}

// OpenStatus is the status a document returns to when it has no payments.
func (k DocumentKind) OpenStatus() DocumentStatus {
	if k == DocumentPurchase {
		return StatusPending
	}
	return StatusSent
}

// DocumentStatus is the lifecycle tag of an invoice or vendor bill.
type DocumentStatus string

const (
	StatusDraft         DocumentStatus = "draft"
	StatusSent          DocumentStatus = "sent"
	StatusPending       DocumentStatus = "pending"
	StatusPartiallyPaid DocumentStatus = "partially_paid"
	StatusPaid          DocumentStatus = "paid"
	StatusOverdue       DocumentStatus = "overdue"
	StatusCancelled     DocumentStatus = "cancelled"
)

// ValidStatuses lists the statuses each document kind may hold.
var ValidStatuses = map[DocumentKind]map[DocumentStatus]bool{
	DocumentSales: {
		StatusDraft: true, StatusSent: true, StatusPartiallyPaid: true,
		StatusPaid: true, StatusOverdue: true, StatusCancelled: true,
	},
	DocumentPurchase: {
		StatusDraft: true, StatusPending: true, StatusPartiallyPaid: true,
		StatusPaid: true, StatusOverdue: true, StatusCancelled: true,
	},
}

// IsFrozen reports whether the status is never auto-recomputed.
func (s DocumentStatus) IsFrozen() bool {
	return s == StatusDraft || s == StatusCancelled
}

// TDSCertificateStatus tracks the Form 16A a customer owes for tax it
// withheld on an invoice.
type TDSCertificateStatus string

const (
	CertificateNotApplicable TDSCertificateStatus = "not_applicable"
	CertificatePending       TDSCertificateStatus = "pending"
	CertificateRequested     TDSCertificateStatus = "requested"
	CertificateReceived      TDSCertificateStatus = "received"
)

// ValidCertificateStatuses is the set of accepted certificate statuses.
var ValidCertificateStatuses = map[TDSCertificateStatus]bool{
	CertificateNotApplicable: true,
	CertificatePending:       true,
	CertificateRequested:     true,
	CertificateReceived:      true,
}

// ItemType separates goods from services in the item catalog.
type ItemType string

const (
	ItemGoods   ItemType = "goods"
	ItemService ItemType = "service"
)

// DiscountType is how a line discount is expressed.
type DiscountType string

const (
	DiscountNone       DiscountType = ""
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// PaymentDirection tells whether money came in or went out.
type PaymentDirection string

const (
	PaymentReceived PaymentDirection = "received"
	PaymentMade     PaymentDirection = "made"
)

// PaymentMode is the instrument used for a payment.
type PaymentMode string

const (
	ModeBankTransfer PaymentMode = "bank_transfer"
	ModeUPI          PaymentMode = "upi"
	ModeCash         PaymentMode = "cash"
	ModeCheque       PaymentMode = "cheque"
	ModeCard         PaymentMode = "card"
)

// ValidPaymentModes is the set of accepted payment modes.
var ValidPaymentModes = map[PaymentMode]bool{
	ModeBankTransfer: true,
	ModeUPI:          true,
	ModeCash:         true,
	ModeCheque:       true,
	ModeCard:         true,
}

// BankTxnStatus is the reconciliation state of an imported bank row.
type BankTxnStatus string

const (
	BankTxnUnmatched BankTxnStatus = "unmatched"
	BankTxnMatched   BankTxnStatus = "matched"
	BankTxnIgnored   BankTxnStatus = "ignored"
)

// LedgerEntryType tells which source record produced a ledger line.
type LedgerEntryType string

const (
	LedgerEntryDocument LedgerEntryType = "document"
	LedgerEntryPayment  LedgerEntryType = "payment"
)

// Common GST slabs, in percent.
var (
	GSTRateZero = decimal.Zero
	GSTRate5    = decimal.NewFromInt(5)
	GSTRate12   = decimal.NewFromInt(12)
	GSTRate18   = decimal.NewFromInt(18)
	GSTRate28   = decimal.NewFromInt(28)
)

// ValidGSTRates lists every rate a line item may carry, in percent.
var ValidGSTRates = []decimal.Decimal{
	GSTRateZero,
	decimal.RequireFromString("0.25"),
	decimal.NewFromInt(3),
	GSTRate5,
	GSTRate12,
	GSTRate18,
	GSTRate28,
	decimal.NewFromInt(40),
}

// AllowedAttachmentTypes maps MIME content types to file extensions.
var AllowedAttachmentTypes = map[string]string{
	"application/pdf": "pdf",
	"image/jpeg":      "jpg",
	"image/png":       "png",
}
