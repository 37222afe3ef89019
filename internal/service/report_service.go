package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"khata/internal/domain"
	"khata/internal/export"
	"khata/internal/port"
	"khata/internal/report"
	"khata/internal/timeutil"
)

// DateRange bounds a report by document date. Nil ends are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) check() error {
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

// ReportService projects the books into compliance and receivables views.
type ReportService interface {
	Aging(ctx context.Context, tenantID uuid.UUID, kind domain.DocumentKind) (*report.AgingReport, error)
	TDSRegister(ctx context.Context, tenantID uuid.UUID, rng DateRange) ([]report.TDSRow, error)
	SalesSummary(ctx context.Context, tenantID uuid.UUID, rng DateRange) ([]report.MonthSummary, error)
	GSTRegister(ctx context.Context, tenantID uuid.UUID, rng DateRange) ([]report.GSTRegisterRow, error)
	// Backup writes a ZIP of every live party, document and payment as CSV.
	Backup(ctx context.Context, tenantID uuid.UUID, w io.Writer) error
}

type reportService struct {
	partyRepo   port.PartyRepository
	docRepo     port.DocumentRepository
	paymentRepo port.PaymentRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(partyRepo port.PartyRepository, docRepo port.DocumentRepository, paymentRepo port.PaymentRepository) ReportService {
	return &reportService{partyRepo: partyRepo, docRepo: docRepo, paymentRepo: paymentRepo}
}

func (s *reportService) Aging(ctx context.Context, tenantID uuid.UUID, kind domain.DocumentKind) (*report.AgingReport, error) {
	if kind != domain.DocumentSales && kind != domain.DocumentPurchase {
		return nil, domain.Validationf("unknown document kind %q", kind)
	}
	docs, err := s.docRepo.ListOpen(ctx, tenantID, kind)
	if err != nil {
		return nil, err
	}
	return report.Aging(kind, docs, timeutil.Today()), nil
}

func (s *reportService) documents(ctx context.Context, tenantID uuid.UUID, kind domain.DocumentKind, rng DateRange) ([]domain.Document, error) {
	if err := rng.check(); err != nil {
		return nil, err
	}
	docs, _, err := s.docRepo.List(ctx, tenantID, port.DocumentFilter{Kind: kind, From: rng.From, To: rng.To})
	return docs, err
}

func (s *reportService) partyIndex(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]domain.Party, error) {
	parties, _, err := s.partyRepo.List(ctx, tenantID, port.PartyFilter{IncludeDeleted: true})
	if err != nil {
		return nil, err
	}
	idx := make(map[uuid.UUID]domain.Party, len(parties))
	for _, p := range parties {
		idx[p.ID] = p
	}
	return idx, nil
}

func (s *reportService) TDSRegister(ctx context.Context, tenantID uuid.UUID, rng DateRange) ([]report.TDSRow, error) {
	docs, err := s.documents(ctx, tenantID, "", rng)
	if err != nil {
		return nil, err
	}
	parties, err := s.partyIndex(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return report.TDSRegister(docs, parties), nil
}

func (s *reportService) SalesSummary(ctx context.Context, tenantID uuid.UUID, rng DateRange) ([]report.MonthSummary, error) {
	docs, err := s.documents(ctx, tenantID, domain.DocumentSales, rng)
	if err != nil {
		return nil, err
	}
	return report.SalesSummary(docs), nil
}

func (s *reportService) GSTRegister(ctx context.Context, tenantID uuid.UUID, rng DateRange) ([]report.GSTRegisterRow, error) {
	docs, err := s.documents(ctx, tenantID, domain.DocumentPurchase, rng)
	if err != nil {
		return nil, err
	}
	parties, err := s.partyIndex(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return report.GSTRegister(docs, parties), nil
}

func (s *reportService) Backup(ctx context.Context, tenantID uuid.UUID, w io.Writer) error {
	customers, _, err := s.partyRepo.List(ctx, tenantID, port.PartyFilter{Kind: domain.PartyCustomer})
	if err != nil {
		return err
	}
	vendors, _, err := s.partyRepo.List(ctx, tenantID, port.PartyFilter{Kind: domain.PartyVendor})
	if err != nil {
		return err
	}
	invoices, _, err := s.docRepo.List(ctx, tenantID, port.DocumentFilter{Kind: domain.DocumentSales})
	if err != nil {
		return err
	}
	bills, _, err := s.docRepo.List(ctx, tenantID, port.DocumentFilter{Kind: domain.DocumentPurchase})
	if err != nil {
		return err
	}
	payments, _, err := s.paymentRepo.List(ctx, tenantID, port.PaymentFilter{})
	if err != nil {
		return err
	}

	return export.WriteZIP(w, timeutil.Now(),
		report.PartiesTable("customers", customers),
		report.PartiesTable("vendors", vendors),
		report.DocumentsTable("invoices", invoices),
		report.DocumentsTable("bills", bills),
		report.PaymentsTable(payments),
	)
}
