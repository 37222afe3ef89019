package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"khata/internal/domain"
	"khata/internal/gst"
	"khata/internal/lifecycle"
	"khata/internal/logger"
	"khata/internal/metrics"
	"khata/internal/numbering"
	"khata/internal/port"
	"khata/internal/timeutil"
)

// LineItemInput is one priced row of a document request.
type LineItemInput struct {
	Description   string              `json:"description" validate:"required,max=500"`
	HSNSAC        string              `json:"hsn_sac" validate:"max=20"`
	Unit          string              `json:"unit" validate:"max=20"`
	Quantity      decimal.Decimal     `json:"quantity"`
	Rate          decimal.Decimal     `json:"rate"`
	GSTRate       decimal.Decimal     `json:"gst_rate"`
	DiscountType  domain.DiscountType `json:"discount_type"`
	DiscountValue decimal.Decimal     `json:"discount_value"`
}

// CreateInvoiceInput is the DTO for raising a sales invoice.
type CreateInvoiceInput struct {
	TenantID      uuid.UUID
	CustomerID    uuid.UUID
	DocumentDate  time.Time
	DueDate       *time.Time
	PlaceOfSupply string
	Issue         bool // create as sent instead of draft
	Notes         string
	TDSApplicable bool
	TDSSection    string
	TDSRate       decimal.Decimal
	AttachmentID  *uuid.UUID
	Lines         []LineItemInput
	CreatedBy     uuid.UUID
}

// CreateBillInput is the DTO for recording a vendor bill.
type CreateBillInput struct {
	TenantID      uuid.UUID
	VendorID      uuid.UUID
	BillNumber    string
	BillDate      time.Time
	DueDate       *time.Time
	ITCEligible   bool
	TDSApplicable *bool // nil takes the vendor's setting
	TDSSection    *string
	TDSRate       *decimal.Decimal
	Notes         string
	AttachmentID  *uuid.UUID
	Lines         []LineItemInput
	CreatedBy     uuid.UUID
}

// UpdateDocumentInput replaces the lines and editable header fields of an
// unpaid draft, sent or pending document. Nil fields are left as they are.
type UpdateDocumentInput struct {
	TenantID       uuid.UUID
	DocumentID     uuid.UUID
	DocumentNumber *string // vendor bills only
	DocumentDate   *time.Time
	DueDate        *time.Time
	PlaceOfSupply  *string
	Notes          *string
	ITCEligible    *bool
	TDSApplicable  *bool
	TDSSection     *string
	TDSRate        *decimal.Decimal
	AttachmentID   *uuid.UUID
	Lines          []LineItemInput
}

// NullableDate sets or clears an optional date. A nil Time clears it.
type NullableDate struct {
	Time *time.Time
}

// UpdateComplianceInput edits the certificate and follow-up fields of an
// invoice or the filing checks of a vendor bill. Nil fields are left as
// they are.
type UpdateComplianceInput struct {
	TenantID   uuid.UUID
	DocumentID uuid.UUID

	TDSApplicable *bool
	TDSRate       *decimal.Decimal

	// Invoices only.
	TDSCertificateStatus       *domain.TDSCertificateStatus
	TDSCertificateReceivedDate *NullableDate
	NextFollowUpDate           *NullableDate
	FollowUpNotes              *string

	// Vendor bills only.
	GSTFiled        *bool
	GSTR2BReflected *bool
	PortalCheckDate *NullableDate
	ITCEligible     *bool
	ComplianceNotes *string
}

func (in *UpdateComplianceInput) touchesInvoiceFields() bool {
	return in.TDSCertificateStatus != nil || in.TDSCertificateReceivedDate != nil ||
		in.NextFollowUpDate != nil || in.FollowUpNotes != nil
}

func (in *UpdateComplianceInput) touchesBillFields() bool {
	return in.GSTFiled != nil || in.GSTR2BReflected != nil || in.PortalCheckDate != nil ||
		in.ITCEligible != nil || in.ComplianceNotes != nil
}

// DocumentService defines the invoice and vendor bill contract.
type DocumentService interface {
	CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*domain.Document, error)
	CreateBill(ctx context.Context, input CreateBillInput) (*domain.Document, error)
	GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, tenantID uuid.UUID, filter port.DocumentFilter) ([]domain.Document, int, error)
	Update(ctx context.Context, input UpdateDocumentInput) (*domain.Document, error)
	Transition(ctx context.Context, tenantID, docID uuid.UUID, to domain.DocumentStatus) (*domain.Document, error)
	Delete(ctx context.Context, tenantID, docID uuid.UUID, permanent bool) error
	Restore(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error)
	// UpdateCompliance edits follow-up and filing fields. It is allowed in
	// every status, payments included.
	UpdateCompliance(ctx context.Context, input UpdateComplianceInput) (*domain.Document, error)
	// NextNumber reserves and returns the next invoice number of the tenant.
	NextNumber(ctx context.Context, tenantID uuid.UUID, date time.Time) (string, error)
	// RefreshStatuses re-derives every open document of the tenant and
	// returns how many statuses changed.
	RefreshStatuses(ctx context.Context, tenantID uuid.UUID) (int, error)
	AttachmentURL(ctx context.Context, tenantID, docID uuid.UUID) (string, error)
}

type documentService struct {
	tenantRepo  port.TenantRepository
	partyRepo   port.PartyRepository
	docRepo     port.DocumentRepository
	paymentRepo port.PaymentRepository
	attachments AttachmentService
	tx          port.Transactor
	log         *zap.Logger
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	tenantRepo port.TenantRepository,
	partyRepo port.PartyRepository,
	docRepo port.DocumentRepository,
	paymentRepo port.PaymentRepository,
	attachments AttachmentService,
	tx port.Transactor,
	log *zap.Logger,
) DocumentService {
	return &documentService{
		tenantRepo:  tenantRepo,
		partyRepo:   partyRepo,
		docRepo:     docRepo,
		paymentRepo: paymentRepo,
		attachments: attachments,
		tx:          tx,
		log:         log,
	}
}

// buildLines prices every line and sums the document totals.
func buildLines(inputs []LineItemInput, interState bool) ([]domain.LineItem, gst.Totals, error) {
	if len(inputs) == 0 {
		return nil, gst.Totals{}, domain.ErrNoLineItems
	}
	lines := make([]domain.LineItem, 0, len(inputs))
	amounts := make([]gst.LineAmounts, 0, len(inputs))
	for i, in := range inputs {
		in.Description = strings.TrimSpace(in.Description)
		if err := validateStruct(in); err != nil {
			return nil, gst.Totals{}, domain.Validationf("line %d: %v", i+1, err)
		}
		li := gst.LineInput{Quantity: in.Quantity, Rate: in.Rate, GSTRate: in.GSTRate}
		if in.DiscountType != domain.DiscountNone {
			li.Discount = &gst.Discount{Type: in.DiscountType, Value: in.DiscountValue}
		}
		a, err := gst.CalcLineItem(li, interState)
		if err != nil {
			return nil, gst.Totals{}, domain.Validationf("line %d: %v", i+1, err)
		}
		amounts = append(amounts, a)

		discountValue := in.DiscountValue
		if in.DiscountType == domain.DiscountNone {
			discountValue = decimal.Zero
		}
		lines = append(lines, domain.LineItem{
			Position:       i + 1,
			Description:    in.Description,
			HSNSAC:         strings.TrimSpace(in.HSNSAC),
			Unit:           strings.TrimSpace(in.Unit),
			Quantity:       in.Quantity,
			Rate:           in.Rate,
			GSTRate:        in.GSTRate,
			DiscountType:   in.DiscountType,
			DiscountValue:  discountValue,
			Amount:         a.Amount,
			DiscountAmount: a.DiscountAmount,
			TaxableAmount:  a.TaxableAmount,
			CGSTAmount:     a.CGSTAmount,
			SGSTAmount:     a.SGSTAmount,
			IGSTAmount:     a.IGSTAmount,
			LineTotal:      a.LineTotal,
		})
	}
	return lines, gst.CalcTotals(amounts), nil
}

// applyTDS sets the withholding amount from the current taxable amount.
func applyTDS(doc *domain.Document) error {
	doc.TDSAmount = decimal.Zero
	syncCertificateStatus(doc)
	if !doc.TDSApplicable {
		return nil
	}
	if err := checkTDSRate(doc.TDSRate); err != nil {
		return err
	}
	doc.TDSAmount = gst.TDSAmount(doc.TaxableAmount, doc.TDSRate)
	return nil
}

// syncCertificateStatus keeps the certificate status in step with the TDS
// flag. Only invoices wait for a certificate; the tenant issues its own for
// vendor bills.
func syncCertificateStatus(doc *domain.Document) {
	switch {
	case doc.Kind != domain.DocumentSales || !doc.TDSApplicable:
		doc.TDSCertificateStatus = domain.CertificateNotApplicable
		doc.TDSCertificateReceivedDate = nil
	case doc.TDSCertificateStatus == "" || doc.TDSCertificateStatus == domain.CertificateNotApplicable:
		doc.TDSCertificateStatus = domain.CertificatePending
	}
}

func setDate(dst **time.Time, v *NullableDate) {
	if v == nil {
		return
	}
	if v.Time == nil {
		*dst = nil
		return
	}
	d := timeutil.DateOf(*v.Time)
	*dst = &d
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func (s *documentService) livePartyOfKind(ctx context.Context, tenantID, partyID uuid.UUID, kind domain.DocumentKind) (*domain.Party, error) {
	party, err := s.partyRepo.GetByID(ctx, tenantID, partyID)
	if err != nil {
		return nil, err
	}
	if party.DeletedAt != nil {
		return nil, domain.ErrPartyNotFound
	}
	if party.Kind != kind.PartyKind() {
		return nil, domain.ErrPartyKindMismatch
	}
	return party, nil
}

func (s *documentService) checkAttachment(ctx context.Context, tenantID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	_, err := s.attachments.GetByID(ctx, tenantID, *id)
	return err
}

func dueDate(date time.Time, due *time.Time, termsDays int) (time.Time, error) {
	if due == nil {
		return date.AddDate(0, 0, termsDays), nil
	}
	d := timeutil.DateOf(*due)
	if d.Before(date) {
		return time.Time{}, domain.Validationf("due date must not be before the document date")
	}
	return d, nil
}

func (s *documentService) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*domain.Document, error) {
	if input.DocumentDate.IsZero() {
		return nil, domain.Validationf("document date is required")
	}
	tenant, err := s.tenantRepo.GetByID(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}
	customer, err := s.livePartyOfKind(ctx, input.TenantID, input.CustomerID, domain.DocumentSales)
	if err != nil {
		return nil, err
	}
	if err := s.checkAttachment(ctx, input.TenantID, input.AttachmentID); err != nil {
		return nil, err
	}

	place := strings.TrimSpace(input.PlaceOfSupply)
	if place == "" {
		place = customer.StateCode
	} else if !gst.IsValidStateCode(place) {
		return nil, domain.Validationf("unknown place of supply %q", place)
	}
	interState := gst.IsInterState(tenant.StateCode, place)

	lines, totals, err := buildLines(input.Lines, interState)
	if err != nil {
		return nil, err
	}

	date := timeutil.DateOf(input.DocumentDate)
	due, err := dueDate(date, input.DueDate, tenant.DefaultPaymentTermsDays)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:            uuid.New(),
		TenantID:      input.TenantID,
		Kind:          domain.DocumentSales,
		PartyID:       customer.ID,
		PartyName:     customer.Name,
		DocumentDate:  date,
		DueDate:       due,
		PlaceOfSupply: place,
		IsInterState:  interState,
		Status:        domain.StatusDraft,
		AmountPaid:    decimal.Zero,
		TDSApplicable: input.TDSApplicable,
		TDSSection:    strings.TrimSpace(input.TDSSection),
		TDSRate:       input.TDSRate,
		Notes:         input.Notes,
		AttachmentID:  input.AttachmentID,
		CreatedBy:     input.CreatedBy,
		Lines:         lines,
	}
	lifecycle.ApplyTotals(doc, totals)
	if err := applyTDS(doc); err != nil {
		return nil, err
	}
	if input.Issue {
		doc.Status = domain.StatusSent
		lifecycle.Refresh(doc, timeutil.Today())
	}
	if err := lifecycle.CheckInvariants(doc); err != nil {
		return nil, err
	}

	// A unique violation means the counter was moved behind an existing
	// number. Only the insert is rolled back, so the counter keeps its
	// increment and the second reservation lands past the taken number.
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for attempt := 1; ; attempt++ {
			serial, current, err := s.tenantRepo.ReserveInvoiceSerial(ctx, input.TenantID)
			if err != nil {
				return err
			}
			doc.DocumentNumber = numbering.Format(current.InvoicePrefix, date, current.FiscalYearStartMonth, serial)
			err = s.tx.WithinSavepoint(ctx, func(ctx context.Context) error {
				return s.docRepo.Create(ctx, doc)
			})
			if err == nil || attempt == 2 || !errors.Is(err, domain.ErrDuplicateDocNumber) {
				return err
			}
			logger.FromContext(ctx, s.log).Warn("invoice number taken, retrying",
				zap.String("tenant_id", input.TenantID.String()),
				zap.String("document_number", doc.DocumentNumber),
			)
		}
	})
	if err != nil {
		return nil, err
	}

	metrics.DocumentsCreated.WithLabelValues(string(domain.DocumentSales)).Inc()
	return doc, nil
}

func (s *documentService) CreateBill(ctx context.Context, input CreateBillInput) (*domain.Document, error) {
	number := strings.TrimSpace(input.BillNumber)
	if number == "" {
		return nil, domain.Validationf("bill number is required")
	}
	if input.BillDate.IsZero() {
		return nil, domain.Validationf("bill date is required")
	}
	tenant, err := s.tenantRepo.GetByID(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}
	vendor, err := s.livePartyOfKind(ctx, input.TenantID, input.VendorID, domain.DocumentPurchase)
	if err != nil {
		return nil, err
	}
	if err := s.checkAttachment(ctx, input.TenantID, input.AttachmentID); err != nil {
		return nil, err
	}

	interState := gst.IsInterState(vendor.StateCode, tenant.StateCode)
	lines, totals, err := buildLines(input.Lines, interState)
	if err != nil {
		return nil, err
	}

	date := timeutil.DateOf(input.BillDate)
	due, err := dueDate(date, input.DueDate, tenant.DefaultPaymentTermsDays)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:             uuid.New(),
		TenantID:       input.TenantID,
		Kind:           domain.DocumentPurchase,
		DocumentNumber: number,
		PartyID:        vendor.ID,
		PartyName:      vendor.Name,
		DocumentDate:   date,
		DueDate:        due,
		PlaceOfSupply:  vendor.StateCode,
		IsInterState:   interState,
		Status:         domain.StatusPending,
		AmountPaid:     decimal.Zero,
		TDSApplicable:  vendor.TDSApplicable,
		TDSSection:     vendor.TDSSection,
		TDSRate:        vendor.TDSRate,
		ITCEligible:    input.ITCEligible,
		Notes:          input.Notes,
		AttachmentID:   input.AttachmentID,
		CreatedBy:      input.CreatedBy,
		Lines:          lines,
	}
	if input.TDSApplicable != nil {
		doc.TDSApplicable = *input.TDSApplicable
	}
	setString(&doc.TDSSection, input.TDSSection)
	if input.TDSRate != nil {
		doc.TDSRate = *input.TDSRate
	}

	lifecycle.ApplyTotals(doc, totals)
	if err := applyTDS(doc); err != nil {
		return nil, err
	}
	lifecycle.Refresh(doc, timeutil.Today())
	if err := lifecycle.CheckInvariants(doc); err != nil {
		return nil, err
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	metrics.DocumentsCreated.WithLabelValues(string(domain.DocumentPurchase)).Inc()
	return doc, nil
}

// refresh re-derives the status of doc and persists it when it changed.
// A failed write is logged and the derived status is still returned.
func (s *documentService) refresh(ctx context.Context, doc *domain.Document, today time.Time) bool {
	if doc.DeletedAt != nil {
		return false
	}
	from := doc.Status
	if !lifecycle.Refresh(doc, today) {
		return false
	}
	updated, err := s.docRepo.UpdateStatus(ctx, doc.TenantID, doc.ID, from, doc.Status)
	if err != nil {
		logger.FromContext(ctx, s.log).Warn("persisting derived status failed",
			zap.String("document_id", doc.ID.String()),
			zap.String("status", string(doc.Status)),
			zap.Error(err),
		)
		return false
	}
	if updated {
		metrics.StatusRewrites.Inc()
	}
	return updated
}

func (s *documentService) GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}
	if doc.DeletedAt != nil {
		return nil, domain.ErrDocumentNotFound
	}
	s.refresh(ctx, doc, timeutil.Today())
	return doc, nil
}

func (s *documentService) List(ctx context.Context, tenantID uuid.UUID, filter port.DocumentFilter) ([]domain.Document, int, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, 0, domain.ErrInvalidDateRange
	}
	filter.Search = strings.TrimSpace(filter.Search)
	docs, total, err := s.docRepo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	today := timeutil.Today()
	for i := range docs {
		s.refresh(ctx, &docs[i], today)
	}
	return docs, total, nil
}

func (s *documentService) Update(ctx context.Context, input UpdateDocumentInput) (*domain.Document, error) {
	var doc *domain.Document
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.docRepo.LockByID(ctx, input.TenantID, input.DocumentID)
		if err != nil {
			return err
		}
		if doc.DeletedAt != nil {
			return domain.ErrDocumentNotFound
		}
		switch doc.Status {
		case domain.StatusDraft, domain.StatusSent, domain.StatusPending:
		default:
			return domain.ErrDocumentNotEditable
		}
		if doc.AmountPaid.IsPositive() {
			return domain.ErrDocumentHasPayments
		}

		if input.DocumentNumber != nil {
			if doc.Kind != domain.DocumentPurchase {
				return domain.Validationf("invoice numbers are assigned automatically")
			}
			number := strings.TrimSpace(*input.DocumentNumber)
			if number == "" {
				return domain.Validationf("bill number is required")
			}
			doc.DocumentNumber = number
		}
		if input.DocumentDate != nil {
			doc.DocumentDate = timeutil.DateOf(*input.DocumentDate)
		}
		if input.DueDate != nil {
			doc.DueDate = timeutil.DateOf(*input.DueDate)
		}
		if doc.DueDate.Before(doc.DocumentDate) {
			return domain.Validationf("due date must not be before the document date")
		}
		if input.PlaceOfSupply != nil && doc.Kind == domain.DocumentSales {
			place := strings.TrimSpace(*input.PlaceOfSupply)
			if place != "" && !gst.IsValidStateCode(place) {
				return domain.Validationf("unknown place of supply %q", place)
			}
			doc.PlaceOfSupply = place
			tenant, err := s.tenantRepo.GetByID(ctx, input.TenantID)
			if err != nil {
				return err
			}
			doc.IsInterState = gst.IsInterState(tenant.StateCode, place)
		}
		setString(&doc.Notes, input.Notes)
		setString(&doc.TDSSection, input.TDSSection)
		if input.ITCEligible != nil {
			doc.ITCEligible = *input.ITCEligible
		}
		if input.TDSApplicable != nil {
			doc.TDSApplicable = *input.TDSApplicable
		}
		if input.TDSRate != nil {
			doc.TDSRate = *input.TDSRate
		}
		if input.AttachmentID != nil {
			if err := s.checkAttachment(ctx, input.TenantID, input.AttachmentID); err != nil {
				return err
			}
			doc.AttachmentID = input.AttachmentID
		}

		lines, totals, err := buildLines(input.Lines, doc.IsInterState)
		if err != nil {
			return err
		}
		doc.Lines = lines
		lifecycle.ApplyTotals(doc, totals)
		if err := applyTDS(doc); err != nil {
			return err
		}
		lifecycle.Refresh(doc, timeutil.Today())
		if err := lifecycle.CheckInvariants(doc); err != nil {
			return err
		}
		return s.docRepo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Transition(ctx context.Context, tenantID, docID uuid.UUID, to domain.DocumentStatus) (*domain.Document, error) {
	var doc *domain.Document
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.docRepo.LockByID(ctx, tenantID, docID)
		if err != nil {
			return err
		}
		if doc.DeletedAt != nil {
			return domain.ErrDocumentNotFound
		}
		if err := lifecycle.Transition(doc, to, timeutil.Today()); err != nil {
			return err
		}
		return s.docRepo.UpdateBalance(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, tenantID, docID uuid.UUID, permanent bool) error {
	if !permanent {
		return s.docRepo.SoftDelete(ctx, tenantID, docID)
	}
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.docRepo.LockByID(ctx, tenantID, docID); err != nil {
			return err
		}
		n, err := s.paymentRepo.CountByDocument(ctx, tenantID, docID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrDocumentHasPayments
		}
		return s.docRepo.HardDelete(ctx, tenantID, docID)
	})
}

func (s *documentService) Restore(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error) {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.docRepo.Restore(ctx, tenantID, docID); err != nil {
			return err
		}
		doc, err := s.docRepo.LockByID(ctx, tenantID, docID)
		if err != nil {
			return err
		}
		if !lifecycle.Refresh(doc, timeutil.Today()) {
			return nil
		}
		return s.docRepo.UpdateBalance(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return s.docRepo.GetByID(ctx, tenantID, docID)
}

func (s *documentService) UpdateCompliance(ctx context.Context, input UpdateComplianceInput) (*domain.Document, error) {
	if st := input.TDSCertificateStatus; st != nil && !domain.ValidCertificateStatuses[*st] {
		return nil, domain.Validationf("unknown tds certificate status %q", *st)
	}

	var doc *domain.Document
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.docRepo.LockByID(ctx, input.TenantID, input.DocumentID)
		if err != nil {
			return err
		}
		if doc.DeletedAt != nil {
			return domain.ErrDocumentNotFound
		}
		if doc.Kind == domain.DocumentSales && input.touchesBillFields() {
			return domain.Validationf("filing checks apply to vendor bills only")
		}
		if doc.Kind == domain.DocumentPurchase && input.touchesInvoiceFields() {
			return domain.Validationf("certificate and follow-up fields apply to invoices only")
		}

		setBool(&doc.TDSApplicable, input.TDSApplicable)
		if input.TDSRate != nil {
			doc.TDSRate = *input.TDSRate
		}
		if err := applyTDS(doc); err != nil {
			return err
		}
		if st := input.TDSCertificateStatus; st != nil {
			if !doc.TDSApplicable && *st != domain.CertificateNotApplicable {
				return domain.Validationf("tds certificate status requires tds to be applicable")
			}
			doc.TDSCertificateStatus = *st
		}
		setDate(&doc.TDSCertificateReceivedDate, input.TDSCertificateReceivedDate)
		switch {
		case doc.TDSCertificateStatus != domain.CertificateReceived:
			doc.TDSCertificateReceivedDate = nil
		case doc.TDSCertificateReceivedDate == nil:
			today := timeutil.Today()
			doc.TDSCertificateReceivedDate = &today
		}
		setDate(&doc.NextFollowUpDate, input.NextFollowUpDate)
		setString(&doc.FollowUpNotes, input.FollowUpNotes)

		setBool(&doc.GSTFiled, input.GSTFiled)
		setBool(&doc.GSTR2BReflected, input.GSTR2BReflected)
		setBool(&doc.ITCEligible, input.ITCEligible)
		setDate(&doc.PortalCheckDate, input.PortalCheckDate)
		setString(&doc.ComplianceNotes, input.ComplianceNotes)

		return s.docRepo.UpdateCompliance(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) NextNumber(ctx context.Context, tenantID uuid.UUID, date time.Time) (string, error) {
	if date.IsZero() {
		date = timeutil.Today()
	}
	var number string
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		serial, tenant, err := s.tenantRepo.ReserveInvoiceSerial(ctx, tenantID)
		if err != nil {
			return err
		}
		number = numbering.Format(tenant.InvoicePrefix, timeutil.DateOf(date), tenant.FiscalYearStartMonth, serial)
		return nil
	})
	return number, err
}

func (s *documentService) RefreshStatuses(ctx context.Context, tenantID uuid.UUID) (int, error) {
	docs, err := s.docRepo.ListOpen(ctx, tenantID, "")
	if err != nil {
		return 0, err
	}
	today := timeutil.Today()
	changed := 0
	for i := range docs {
		if s.refresh(ctx, &docs[i], today) {
			changed++
		}
	}
	return changed, nil
}

func (s *documentService) AttachmentURL(ctx context.Context, tenantID, docID uuid.UUID) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return "", err
	}
	if doc.DeletedAt != nil {
		return "", domain.ErrDocumentNotFound
	}
	if doc.AttachmentID == nil {
		return "", domain.ErrNoAttachment
	}
	return s.attachments.URL(ctx, tenantID, *doc.AttachmentID)
}
