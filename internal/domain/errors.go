package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error unwraps to exactly one of these.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("resource not found")
	ErrConflict    = errors.New("conflict")
	ErrConsistency = errors.New("consistency violation")
)

// Error is a domain error tagged with its kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// Validationf builds a validation error with a formatted message.
func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// Consistencyf builds a consistency error with a formatted message.
func Consistencyf(format string, args ...any) error {
	return &Error{Kind: ErrConsistency, Msg: fmt.Sprintf(format, args...)}
}

func validation(msg string) *Error  { return &Error{Kind: ErrValidation, Msg: msg} }
func notFound(msg string) *Error    { return &Error{Kind: ErrNotFound, Msg: msg} }
func conflict(msg string) *Error    { return &Error{Kind: ErrConflict, Msg: msg} }
func consistency(msg string) *Error { return &Error{Kind: ErrConsistency, Msg: msg} }

var (
	ErrTenantNotFound      = notFound("tenant not found")
	ErrUserNotFound        = notFound("user not found")
	ErrPartyNotFound       = notFound("party not found")
	ErrDocumentNotFound    = notFound("document not found")
	ErrPaymentNotFound     = notFound("payment not found")
	ErrBankTxnNotFound     = notFound("bank transaction not found")
	ErrAttachmentNotFound  = notFound("attachment not found")
	ErrNoAttachment        = notFound("document has no attachment")
	ErrItemNotFound        = notFound("item not found")
	ErrDuplicateEmail      = conflict("email already exists for this tenant")
	ErrDuplicateTenantSlug = conflict("tenant slug already exists")
	ErrDuplicateDocNumber  = conflict("document number already exists")
	ErrBankTxnNotUnmatched = conflict("bank transaction is not unmatched")
	ErrBankTxnNotIgnored   = conflict("bank transaction is not ignored")
	ErrDuplicateItemName   = conflict("item name already exists")

	ErrNonPositiveAmount    = validation("payment amount must be positive")
	ErrOverpayment          = validation("payment amount exceeds balance due")
	ErrDocumentNotPayable   = validation("document is not open for payment")
	ErrInvalidPaymentMode   = validation("invalid payment mode")
	ErrInvalidStatus        = validation("invalid status transition")
	ErrDocumentHasPayments  = validation("document has payments")
	ErrDocumentNotEditable  = validation("document can no longer be edited")
	ErrDocumentNotDeleted   = validation("document is not deleted")
	ErrPartyNotDeleted      = validation("party is not deleted")
	ErrPartyKindMismatch    = validation("party kind does not match document kind")
	ErrNoLineItems          = validation("document must have at least one line item")
	ErrNoCreditAmount       = validation("bank transaction has no credit amount")
	ErrMatchExceedsCredit   = validation("match amount exceeds transaction credit")
	ErrUnsupportedFileType  = validation("unsupported file type")
	ErrFileTooLarge         = validation("file exceeds maximum allowed size")
	ErrInvalidDateRange     = validation("from date must not be after to date")
	ErrUnsupportedFormat    = validation("unsupported export format")
	ErrPartyRequired        = validation("party is required for a standalone payment")
	ErrCounterNotIncreasing = validation("invoice counter can only move forward")

	ErrNegativeBalance = consistency("balance due would be negative")
	ErrTotalMismatch   = consistency("document total does not equal taxable amount plus tax")
	ErrTaxSplitMixed   = consistency("document carries both CGST/SGST and IGST")
)

// Auth and transport errors. These are not part of the accounting taxonomy.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTenantInactive     = errors.New("tenant is inactive")
	ErrUserInactive       = errors.New("user is inactive")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrUploadFailed       = errors.New("file upload to storage failed")
)
