package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tenant represents a company: the isolation boundary for all accounting data.
type Tenant struct {
	ID                      uuid.UUID `db:"id" json:"id"`
	Name                    string    `db:"name" json:"name"`
	Slug                    string    `db:"slug" json:"slug"`
	GSTIN                   string    `db:"gstin" json:"gstin"`
	PAN                     string    `db:"pan" json:"pan"`
	StateCode               string    `db:"state_code" json:"state_code"`
	Address                 string    `db:"address" json:"address"`
	Email                   string    `db:"email" json:"email"`
	BankName                string    `db:"bank_name" json:"bank_name"`
	BankAccountNumber       string    `db:"bank_account_number" json:"bank_account_number"`
	BankIFSC                string    `db:"bank_ifsc" json:"bank_ifsc"`
	InvoicePrefix           string    `db:"invoice_prefix" json:"invoice_prefix"`
	InvoiceNextNumber       int64     `db:"invoice_next_number" json:"invoice_next_number"`
	FiscalYearStartMonth    int       `db:"fiscal_year_start_month" json:"fiscal_year_start_month"`
	DefaultPaymentTermsDays int       `db:"default_payment_terms_days" json:"default_payment_terms_days"`
	IsActive                bool      `db:"is_active" json:"is_active"`
	CreatedAt               time.Time `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated user belonging to a tenant.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Party is a customer or a vendor.
type Party struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	TenantID       uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	Kind           PartyKind       `db:"kind" json:"kind"`
	Name           string          `db:"name" json:"name"`
	GSTIN          string          `db:"gstin" json:"gstin"`
	PAN            string          `db:"pan" json:"pan"`
	StateCode      string          `db:"state_code" json:"state_code"`
	Email          string          `db:"email" json:"email"`
	Phone          string          `db:"phone" json:"phone"`
	BillingAddress string          `db:"billing_address" json:"billing_address"`
	OpeningBalance decimal.Decimal `db:"opening_balance" json:"opening_balance"`
	TDSApplicable  bool            `db:"tds_applicable" json:"tds_applicable"`
	TDSSection     string          `db:"tds_section" json:"tds_section"`
	TDSRate        decimal.Decimal `db:"tds_rate" json:"tds_rate"`
	DeletedAt      *time.Time      `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// Document is an invoice (sales) or a vendor bill (purchase).
type Document struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	TenantID       uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	Kind           DocumentKind    `db:"kind" json:"kind"`
	DocumentNumber string          `db:"document_number" json:"document_number"`
	PartyID        uuid.UUID       `db:"party_id" json:"party_id"`
	PartyName      string          `db:"party_name" json:"party_name"`
	DocumentDate   time.Time       `db:"document_date" json:"document_date"`
	DueDate        time.Time       `db:"due_date" json:"due_date"`
	PlaceOfSupply  string          `db:"place_of_supply" json:"place_of_supply"`
	IsInterState   bool            `db:"is_inter_state" json:"is_inter_state"`
	Status         DocumentStatus  `db:"status" json:"status"`
	Subtotal       decimal.Decimal `db:"subtotal" json:"subtotal"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	TaxableAmount  decimal.Decimal `db:"taxable_amount" json:"taxable_amount"`
	CGSTAmount     decimal.Decimal `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount     decimal.Decimal `db:"sgst_amount" json:"sgst_amount"`
	IGSTAmount     decimal.Decimal `db:"igst_amount" json:"igst_amount"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"total_amount"`
	AmountPaid     decimal.Decimal `db:"amount_paid" json:"amount_paid"`
	BalanceDue     decimal.Decimal `db:"balance_due" json:"balance_due"`
	TDSApplicable  bool            `db:"tds_applicable" json:"tds_applicable"`
	TDSSection     string          `db:"tds_section" json:"tds_section"`
	TDSRate        decimal.Decimal `db:"tds_rate" json:"tds_rate"`
	TDSAmount      decimal.Decimal `db:"tds_amount" json:"tds_amount"`
	ITCEligible    bool            `db:"itc_eligible" json:"itc_eligible"`
	Notes          string          `db:"notes" json:"notes"`
	AttachmentID   *uuid.UUID      `db:"attachment_id" json:"attachment_id,omitempty"`
	CreatedBy      uuid.UUID       `db:"created_by" json:"created_by"`
	DeletedAt      *time.Time      `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`

	// Invoice follow-up.
	TDSCertificateStatus       TDSCertificateStatus `db:"tds_certificate_status" json:"tds_certificate_status"`
	TDSCertificateReceivedDate *time.Time           `db:"tds_certificate_received_date" json:"tds_certificate_received_date,omitempty"`
	NextFollowUpDate           *time.Time           `db:"next_follow_up_date" json:"next_follow_up_date,omitempty"`
	FollowUpNotes              string               `db:"follow_up_notes" json:"follow_up_notes"`

	// Vendor bill filing checks.
	GSTFiled        bool       `db:"gst_filed" json:"gst_filed"`
	GSTR2BReflected bool       `db:"gstr2b_reflected" json:"gstr2b_reflected"`
	PortalCheckDate *time.Time `db:"portal_check_date" json:"portal_check_date,omitempty"`
	ComplianceNotes string     `db:"compliance_notes" json:"compliance_notes"`

	Lines []LineItem `db:"-" json:"lines,omitempty"`
}

// Item is a catalog entry whose HSN/SAC code, unit and rates prefill
// document lines.
type Item struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	TenantID    uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	HSNSAC      string          `db:"hsn_sac" json:"hsn_sac"`
	Type        ItemType        `db:"type" json:"type"`
	Unit        string          `db:"unit" json:"unit"`
	DefaultRate decimal.Decimal `db:"default_rate" json:"default_rate"`
	GSTRate     decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	IsActive    bool            `db:"is_active" json:"is_active"`
	CreatedBy   uuid.UUID       `db:"created_by" json:"created_by"`
	DeletedAt   *time.Time      `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// LineItem is one priced row of a document.
type LineItem struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	DocumentID     uuid.UUID       `db:"document_id" json:"document_id"`
	TenantID       uuid.UUID       `db:"tenant_id" json:"-"`
	Position       int             `db:"position" json:"position"`
	Description    string          `db:"description" json:"description"`
	HSNSAC         string          `db:"hsn_sac" json:"hsn_sac"`
	Unit           string          `db:"unit" json:"unit"`
	Quantity       decimal.Decimal `db:"quantity" json:"quantity"`
	Rate           decimal.Decimal `db:"rate" json:"rate"`
	GSTRate        decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	DiscountType   DiscountType    `db:"discount_type" json:"discount_type,omitempty"`
	DiscountValue  decimal.Decimal `db:"discount_value" json:"discount_value"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	TaxableAmount  decimal.Decimal `db:"taxable_amount" json:"taxable_amount"`
	CGSTAmount     decimal.Decimal `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount     decimal.Decimal `db:"sgst_amount" json:"sgst_amount"`
	IGSTAmount     decimal.Decimal `db:"igst_amount" json:"igst_amount"`
	LineTotal      decimal.Decimal `db:"line_total" json:"line_total"`
}

// Payment records money received from a customer or paid to a vendor.
type Payment struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	TenantID    uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	Direction   PaymentDirection `db:"direction" json:"direction"`
	PartyID     uuid.UUID        `db:"party_id" json:"party_id"`
	DocumentID  *uuid.UUID       `db:"document_id" json:"document_id,omitempty"`
	PaymentDate time.Time        `db:"payment_date" json:"payment_date"`
	Amount      decimal.Decimal  `db:"amount" json:"amount"`
	Mode        PaymentMode      `db:"mode" json:"mode"`
	Reference   string           `db:"reference" json:"reference"`
	Notes       string           `db:"notes" json:"notes"`
	CreatedBy   uuid.UUID        `db:"created_by" json:"created_by"`
	DeletedAt   *time.Time       `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}

// BankTransaction is one imported bank statement line.
type BankTransaction struct {
	ID               uuid.UUID           `db:"id" json:"id"`
	TenantID         uuid.UUID           `db:"tenant_id" json:"tenant_id"`
	AccountLabel     string              `db:"account_label" json:"account_label"`
	TxnDate          time.Time           `db:"txn_date" json:"txn_date"`
	Description      string              `db:"description" json:"description"`
	Narration        string              `db:"narration" json:"narration"`
	ReferenceNumber  string              `db:"reference_number" json:"reference_number"`
	Debit            decimal.Decimal     `db:"debit" json:"debit"`
	Credit           decimal.Decimal     `db:"credit" json:"credit"`
	Balance          decimal.NullDecimal `db:"balance" json:"balance"`
	ImportHash       string              `db:"import_hash" json:"-"`
	Status           BankTxnStatus       `db:"status" json:"status"`
	MatchedPaymentID *uuid.UUID          `db:"matched_payment_id" json:"matched_payment_id,omitempty"`
	CreatedAt        time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time           `db:"updated_at" json:"updated_at"`
}

// Attachment is the metadata of a stored file referenced by documents.
type Attachment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	TenantID    uuid.UUID `db:"tenant_id" json:"tenant_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	ContentType string    `db:"content_type" json:"content_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	StorageKey  string    `db:"storage_key" json:"-"`
	UploadedBy  uuid.UUID `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// LedgerEntry is one line of a party statement.
type LedgerEntry struct {
	Date        time.Time       `json:"date"`
	Type        LedgerEntryType `json:"type"`
	SourceID    uuid.UUID       `json:"source_id"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// LedgerStatement is the chronological running-balance view of one party.
type LedgerStatement struct {
	Party          *Party          `json:"party"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Entries        []LedgerEntry   `json:"entries"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// MatchCandidate is an open invoice proposed for a bank credit.
type MatchCandidate struct {
	Document Document `json:"document"`
	Score    int      `json:"score"`
}

// MatchSuggestion groups the ranked candidates of one bank transaction.
type MatchSuggestion struct {
	Transaction BankTransaction  `json:"transaction"`
	Candidates  []MatchCandidate `json:"candidates"`
}

// ImportResult summarises a bank statement import.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// Dashboard is the at-a-glance summary of a tenant's books.
type Dashboard struct {
	TotalReceivable    decimal.Decimal `db:"total_receivable" json:"total_receivable"`
	TotalPayable       decimal.Decimal `db:"total_payable" json:"total_payable"`
	OverdueCount       int             `db:"overdue_count" json:"overdue_count"`
	OverdueAmount      decimal.Decimal `db:"overdue_amount" json:"overdue_amount"`
	ReceivedThisMonth  decimal.Decimal `db:"received_this_month" json:"received_this_month"`
	PaidThisMonth      decimal.Decimal `db:"paid_this_month" json:"paid_this_month"`
	UnmatchedBankCount int             `db:"unmatched_bank_count" json:"unmatched_bank_count"`
	InvoiceCount       int             `db:"invoice_count" json:"invoice_count"`
}

// ReminderItem is one document that needs attention.
type ReminderItem struct {
	DocumentID           uuid.UUID            `db:"id" json:"document_id"`
	Kind                 DocumentKind         `db:"kind" json:"kind"`
	DocumentNumber       string               `db:"document_number" json:"document_number"`
	PartyName            string               `db:"party_name" json:"party_name"`
	DocumentDate         time.Time            `db:"document_date" json:"document_date"`
	DueDate              time.Time            `db:"due_date" json:"due_date"`
	TotalAmount          decimal.Decimal      `db:"total_amount" json:"total_amount"`
	BalanceDue           decimal.Decimal      `db:"balance_due" json:"balance_due"`
	TDSAmount            decimal.Decimal      `db:"tds_amount" json:"tds_amount"`
	TDSCertificateStatus TDSCertificateStatus `db:"tds_certificate_status" json:"tds_certificate_status"`
	NextFollowUpDate     *time.Time           `db:"next_follow_up_date" json:"next_follow_up_date,omitempty"`
	FollowUpNotes        string               `db:"follow_up_notes" json:"follow_up_notes"`
}

// Reminders lists what a tenant should chase today.
type Reminders struct {
	OverdueInvoices        []ReminderItem `json:"overdue_invoices"`
	PendingTDSCertificates []ReminderItem `json:"pending_tds_certificates"`
	UpcomingFollowUps      []ReminderItem `json:"upcoming_follow_ups"`
	OverdueBills           []ReminderItem `json:"overdue_bills"`
	UnmatchedBankCredits   int            `json:"unmatched_bank_credits"`
	UnfiledGSTBills        int            `json:"unfiled_gst_bills"`
}
