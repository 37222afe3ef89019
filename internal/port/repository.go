package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"khata/internal/domain"
)

// Transactor runs fn inside one database transaction. Repositories called
// with the ctx passed to fn take part in that transaction. fn's error rolls
// the transaction back and is returned unchanged.
//
// WithinSavepoint scopes fn to a savepoint of the transaction open on ctx:
// fn's error undoes only fn's writes and leaves the transaction usable.
// Without an open transaction it behaves like WithinTx.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	WithinSavepoint(ctx context.Context, fn func(ctx context.Context) error) error
}

// TenantRepository defines the contract for tenant persistence.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	ListActive(ctx context.Context) ([]domain.Tenant, error)
	// Update writes the settings columns. It never touches the invoice counter.
	Update(ctx context.Context, tenant *domain.Tenant) error
	// ReserveInvoiceSerial increments the counter and returns the serial that
	// was reserved together with the tenant row as it stands after the write.
	// The row lock is held until the surrounding transaction ends.
	ReserveInvoiceSerial(ctx context.Context, tenantID uuid.UUID) (int64, *domain.Tenant, error)
	// AdvanceInvoiceCounter sets the next serial, refusing to move it back.
	AdvanceInvoiceCounter(ctx context.Context, tenantID uuid.UUID, next int64) error
}

// UserRepository defines the contract for user persistence.
// All query methods include tenantID to enforce tenant isolation at the data layer.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, tenantID, userID uuid.UUID) error
}

// PartyFilter narrows party listings. A zero Limit returns every row.
type PartyFilter struct {
	Kind           domain.PartyKind
	Search         string
	IncludeDeleted bool
	Offset         int
	Limit          int
}

// PartyRepository defines the contract for customer and vendor persistence.
type PartyRepository interface {
	Create(ctx context.Context, party *domain.Party) error
	// GetByID returns the party even when it is soft-deleted.
	GetByID(ctx context.Context, tenantID, partyID uuid.UUID) (*domain.Party, error)
	List(ctx context.Context, tenantID uuid.UUID, filter PartyFilter) ([]domain.Party, int, error)
	Update(ctx context.Context, party *domain.Party) error
	SoftDelete(ctx context.Context, tenantID, partyID uuid.UUID) error
	Restore(ctx context.Context, tenantID, partyID uuid.UUID) error
}

// ItemFilter narrows catalog listings. Inactive items are hidden unless
// IncludeInactive is set.
type ItemFilter struct {
	Search          string
	IncludeInactive bool
	Offset          int
	Limit           int
}

// ItemRepository defines the contract for the goods and services catalog.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.Item, error)
	List(ctx context.Context, tenantID uuid.UUID, filter ItemFilter) ([]domain.Item, int, error)
	Update(ctx context.Context, item *domain.Item) error
	SoftDelete(ctx context.Context, tenantID, itemID uuid.UUID) error
}

// DocumentFilter narrows document listings. A zero Limit returns every row.
type DocumentFilter struct {
	Kind    domain.DocumentKind
	Status  domain.DocumentStatus
	PartyID *uuid.UUID
	From    *time.Time
	To      *time.Time
	Search  string
	Deleted bool // list the soft-deleted documents instead of the live ones
	Offset  int
	Limit   int
}

// DocumentRepository defines the contract for invoice and vendor bill persistence.
type DocumentRepository interface {
	// Create inserts the document and its lines.
	Create(ctx context.Context, doc *domain.Document) error
	// GetByID returns the document with its lines, including soft-deleted ones.
	GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error)
	// LockByID reads the document header FOR UPDATE. Must run inside a transaction.
	LockByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, tenantID uuid.UUID, filter DocumentFilter) ([]domain.Document, int, error)
	// ListOpen returns live documents in sent, pending, partially_paid or
	// overdue status with a positive balance, ordered by due date. An empty
	// kind returns both kinds.
	ListOpen(ctx context.Context, tenantID uuid.UUID, kind domain.DocumentKind) ([]domain.Document, error)
	// Update rewrites the header and replaces the lines.
	Update(ctx context.Context, doc *domain.Document) error
	// UpdateBalance writes amount_paid, balance_due and status.
	UpdateBalance(ctx context.Context, doc *domain.Document) error
	// UpdateCompliance writes the TDS, follow-up and filing fields of a live document.
	UpdateCompliance(ctx context.Context, doc *domain.Document) error
	// UpdateStatus writes the status only if it still equals from.
	UpdateStatus(ctx context.Context, tenantID, docID uuid.UUID, from, to domain.DocumentStatus) (bool, error)
	SoftDelete(ctx context.Context, tenantID, docID uuid.UUID) error
	Restore(ctx context.Context, tenantID, docID uuid.UUID) error
	HardDelete(ctx context.Context, tenantID, docID uuid.UUID) error
}

// PaymentFilter narrows payment listings. A zero Limit returns every row.
type PaymentFilter struct {
	Direction  domain.PaymentDirection
	PartyID    *uuid.UUID
	DocumentID *uuid.UUID
	From       *time.Time
	To         *time.Time
	Offset     int
	Limit      int
}

// PaymentRepository defines the contract for payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	// GetByID returns live payments only.
	GetByID(ctx context.Context, tenantID, paymentID uuid.UUID) (*domain.Payment, error)
	List(ctx context.Context, tenantID uuid.UUID, filter PaymentFilter) ([]domain.Payment, int, error)
	SoftDelete(ctx context.Context, tenantID, paymentID uuid.UUID) error
	// CountByDocument counts payments against a document, soft-deleted ones included.
	CountByDocument(ctx context.Context, tenantID, docID uuid.UUID) (int, error)
}

// BankTxnFilter narrows bank transaction listings.
type BankTxnFilter struct {
	Status domain.BankTxnStatus
	Offset int
	Limit  int
}

// BankTransactionRepository defines the contract for imported statement lines.
type BankTransactionRepository interface {
	// InsertIfAbsent stores txn unless a row with the same import hash exists
	// for the tenant. It reports whether a row was inserted.
	InsertIfAbsent(ctx context.Context, txn *domain.BankTransaction) (bool, error)
	GetByID(ctx context.Context, tenantID, txnID uuid.UUID) (*domain.BankTransaction, error)
	// LockByID reads the row FOR UPDATE. Must run inside a transaction.
	LockByID(ctx context.Context, tenantID, txnID uuid.UUID) (*domain.BankTransaction, error)
	List(ctx context.Context, tenantID uuid.UUID, filter BankTxnFilter) ([]domain.BankTransaction, int, error)
	// ListUnmatchedCredits returns the most recent unmatched credits first.
	ListUnmatchedCredits(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.BankTransaction, error)
	MarkMatched(ctx context.Context, tenantID, txnID, paymentID uuid.UUID) error
	SetStatus(ctx context.Context, tenantID, txnID uuid.UUID, status domain.BankTxnStatus) error
	// UnmatchByPayment returns any transaction linked to paymentID to unmatched.
	UnmatchByPayment(ctx context.Context, tenantID, paymentID uuid.UUID) (int64, error)
}

// AttachmentRepository defines the contract for attachment metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, att *domain.Attachment) error
	GetByID(ctx context.Context, tenantID, attachmentID uuid.UUID) (*domain.Attachment, error)
	Delete(ctx context.Context, tenantID, attachmentID uuid.UUID) error
	// IsReferenced reports whether any document still points at the attachment.
	IsReferenced(ctx context.Context, tenantID, attachmentID uuid.UUID) (bool, error)
}

// DashboardRepository provides aggregate queries for the dashboard.
type DashboardRepository interface {
	GetSummary(ctx context.Context, tenantID uuid.UUID, monthStart time.Time) (*domain.Dashboard, error)
	// Reminders lists overdue documents, outstanding TDS certificates and
	// follow-ups due around today, plus the open bank and filing counts.
	Reminders(ctx context.Context, tenantID uuid.UUID, today time.Time) (*domain.Reminders, error)
}
