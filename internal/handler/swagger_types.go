package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"khata/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	TenantSlug string `json:"tenant_slug" binding:"required" example:"sharma-traders"`
	Email      string `json:"email" binding:"required" example:"admin@sharmatraders.in"`
	Password   string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// LineItemRequest is one line of an invoice or bill.
type LineItemRequest struct {
	Description   string              `json:"description" binding:"required,max=500" example:"Consulting services"`
	HSNSAC        string              `json:"hsn_sac" binding:"max=20" example:"998311"`
	Unit          string              `json:"unit" binding:"max=20" example:"hrs"`
	Quantity      decimal.Decimal     `json:"quantity" swaggertype:"number" example:"10"`
	Rate          decimal.Decimal     `json:"rate" swaggertype:"number" example:"5000"`
	GSTRate       decimal.Decimal     `json:"gst_rate" swaggertype:"number" example:"18"`
	DiscountType  domain.DiscountType `json:"discount_type" example:"percentage"`
	DiscountValue decimal.Decimal     `json:"discount_value" swaggertype:"number" example:"0"`
}

// CreateInvoiceRequest represents the create invoice request body.
type CreateInvoiceRequest struct {
	CustomerID    uuid.UUID         `json:"customer_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	InvoiceDate   string            `json:"invoice_date" binding:"required,datetime=2006-01-02" example:"2025-05-10"`
	DueDate       string            `json:"due_date" binding:"omitempty,datetime=2006-01-02" example:"2025-06-09"`
	PlaceOfSupply string            `json:"place_of_supply" binding:"omitempty,len=2" example:"27"`
	Issue         bool              `json:"issue" example:"false"`
	Notes         string            `json:"notes" example:"Thank you for your business"`
	TDSApplicable bool              `json:"tds_applicable" example:"false"`
	TDSSection    string            `json:"tds_section" example:"194J"`
	TDSRate       decimal.Decimal   `json:"tds_rate" swaggertype:"number" example:"10"`
	AttachmentID  *uuid.UUID        `json:"attachment_id"`
	Lines         []LineItemRequest `json:"lines" binding:"required,min=1,dive"`
}

// CreateBillRequest represents the create vendor bill request body.
type CreateBillRequest struct {
	VendorID      uuid.UUID         `json:"vendor_id" binding:"required" example:"660e8400-e29b-41d4-a716-446655440001"`
	BillNumber    string            `json:"bill_number" binding:"required,max=50" example:"VB/1042"`
	BillDate      string            `json:"bill_date" binding:"required,datetime=2006-01-02" example:"2025-05-12"`
	DueDate       string            `json:"due_date" binding:"omitempty,datetime=2006-01-02" example:"2025-06-11"`
	ITCEligible   bool              `json:"itc_eligible" example:"true"`
	TDSApplicable *bool             `json:"tds_applicable"`
	TDSSection    *string           `json:"tds_section" example:"194C"`
	TDSRate       *decimal.Decimal  `json:"tds_rate" swaggertype:"number" example:"2"`
	Notes         string            `json:"notes"`
	AttachmentID  *uuid.UUID        `json:"attachment_id"`
	Lines         []LineItemRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateDocumentRequest represents the document update request body. Absent
// header fields are left unchanged; lines always replace every existing line.
type UpdateDocumentRequest struct {
	DocumentNumber *string           `json:"document_number" binding:"omitempty,max=50"`
	DocumentDate   *string           `json:"document_date" binding:"omitempty,datetime=2006-01-02"`
	DueDate        *string           `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	PlaceOfSupply  *string           `json:"place_of_supply" binding:"omitempty,len=2"`
	Notes          *string           `json:"notes"`
	ITCEligible    *bool             `json:"itc_eligible"`
	TDSApplicable  *bool             `json:"tds_applicable"`
	TDSSection     *string           `json:"tds_section"`
	TDSRate        *decimal.Decimal  `json:"tds_rate" swaggertype:"number"`
	AttachmentID   *uuid.UUID        `json:"attachment_id"`
	Lines          []LineItemRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateComplianceRequest represents the compliance update body. Dates use
// YYYY-MM-DD; an empty string clears the date and an absent field keeps it.
type UpdateComplianceRequest struct {
	TDSApplicable              *bool                        `json:"tds_applicable"`
	TDSRate                    *decimal.Decimal             `json:"tds_rate" swaggertype:"number"`
	TDSCertificateStatus       *domain.TDSCertificateStatus `json:"tds_certificate_status" example:"received"`
	TDSCertificateReceivedDate *string                      `json:"tds_certificate_received_date" example:"2024-06-30"`
	NextFollowUpDate           *string                      `json:"next_follow_up_date" example:"2024-07-05"`
	FollowUpNotes              *string                      `json:"follow_up_notes" binding:"omitempty,max=1000"`
	GSTFiled                   *bool                        `json:"gst_filed"`
	GSTR2BReflected            *bool                        `json:"gstr2b_reflected"`
	PortalCheckDate            *string                      `json:"portal_check_date" example:"2024-07-11"`
	ITCEligible                *bool                        `json:"itc_eligible"`
	ComplianceNotes            *string                      `json:"compliance_notes" binding:"omitempty,max=1000"`
}

// TransitionRequest represents an explicit status change.
type TransitionRequest struct {
	Status domain.DocumentStatus `json:"status" binding:"required" example:"sent"`
}

// RecordPaymentRequest represents the record payment request body.
type RecordPaymentRequest struct {
	DocumentID  *uuid.UUID         `json:"document_id" example:"770e8400-e29b-41d4-a716-446655440002"`
	PartyID     *uuid.UUID         `json:"party_id"`
	Amount      decimal.Decimal    `json:"amount" swaggertype:"number" example:"29500"`
	PaymentDate string             `json:"payment_date" binding:"required,datetime=2006-01-02" example:"2025-05-20"`
	Mode        domain.PaymentMode `json:"mode" binding:"required" example:"upi"`
	Reference   string             `json:"reference" binding:"max=100" example:"UTR412345678"`
	Notes       string             `json:"notes"`
}

// MatchRequest represents the bank transaction match request body.
type MatchRequest struct {
	DocumentID  uuid.UUID          `json:"document_id" binding:"required" example:"770e8400-e29b-41d4-a716-446655440002"`
	Amount      *decimal.Decimal   `json:"amount" swaggertype:"number" example:"59000"`
	PaymentDate *string            `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	Mode        domain.PaymentMode `json:"mode" example:"bank_transfer"`
}

// CreateUserRequest represents the create user request body.
type CreateUserRequest struct {
	Email    string          `json:"email" binding:"required,email" example:"accounts@sharmatraders.in"`
	Password string          `json:"password" binding:"required,min=8" example:"securepassword123"`
	FullName string          `json:"full_name" binding:"required" example:"Priya Sharma"`
	Role     domain.UserRole `json:"role" binding:"required" example:"accountant"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2025-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// SignedURLResponse carries a time-limited download link.
type SignedURLResponse struct {
	URL string `json:"url" example:"https://khata-attachments.s3.ap-south-1.amazonaws.com/...?X-Amz-Signature=..."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
