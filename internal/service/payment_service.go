package service

import (
	"context"
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
	"khata/internal/port"
	"khata/internal/timeutil"
)

// RecordPaymentInput is the DTO for recording a payment. Either DocumentID
// or PartyID must be set; a payment without a document only affects the
// party ledger.
type RecordPaymentInput struct {
	TenantID    uuid.UUID
	DocumentID  *uuid.UUID
	PartyID     *uuid.UUID
	Amount      decimal.Decimal
	PaymentDate time.Time
	Mode        domain.PaymentMode
	Reference   string
	Notes       string
	CreatedBy   uuid.UUID
}

// PaymentService defines the payment contract.
type PaymentService interface {
	Record(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error)
	GetByID(ctx context.Context, tenantID, paymentID uuid.UUID) (*domain.Payment, error)
	List(ctx context.Context, tenantID uuid.UUID, filter port.PaymentFilter) ([]domain.Payment, int, error)
	// Delete reverses the payment on its document and releases any bank
	// transaction matched to it.
	Delete(ctx context.Context, tenantID, paymentID uuid.UUID) error
}

type paymentService struct {
	docRepo     port.DocumentRepository
	paymentRepo port.PaymentRepository
	partyRepo   port.PartyRepository
	bankRepo    port.BankTransactionRepository
	tx          port.Transactor
	receipts    *receiptNotifier
	log         *zap.Logger
}

// NewPaymentService creates a new PaymentService implementation.
func NewPaymentService(
	docRepo port.DocumentRepository,
	paymentRepo port.PaymentRepository,
	partyRepo port.PartyRepository,
	bankRepo port.BankTransactionRepository,
	tenantRepo port.TenantRepository,
	tx port.Transactor,
	sender port.EmailSender,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		docRepo:     docRepo,
		paymentRepo: paymentRepo,
		partyRepo:   partyRepo,
		bankRepo:    bankRepo,
		tx:          tx,
		receipts:    newReceiptNotifier(tenantRepo, partyRepo, sender, log),
		log:         log,
	}
}

func normalizeMode(mode domain.PaymentMode) (domain.PaymentMode, error) {
	if mode == "" {
		return domain.ModeBankTransfer, nil
	}
	if !domain.ValidPaymentModes[mode] {
		return "", domain.ErrInvalidPaymentMode
	}
	return mode, nil
}

// applyToDocument locks the document, applies p.Amount to it and stores
// both. The payment takes its party and direction from the document. Must
// run inside a transaction.
func applyToDocument(ctx context.Context, docs port.DocumentRepository, payments port.PaymentRepository, p *domain.Payment) (*domain.Document, error) {
	doc, err := docs.LockByID(ctx, p.TenantID, *p.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc.DeletedAt != nil {
		return nil, domain.ErrDocumentNotFound
	}
	if p.PartyID != uuid.Nil && p.PartyID != doc.PartyID {
		return nil, domain.Validationf("payment party does not match the document party")
	}
	if err := lifecycle.ApplyPayment(doc, p.Amount, timeutil.Today()); err != nil {
		return nil, err
	}
	p.PartyID = doc.PartyID
	p.Direction = doc.Kind.PaymentDirection()

	if err := docs.UpdateBalance(ctx, doc); err != nil {
		return nil, err
	}
	if err := payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *paymentService) Record(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error) {
	amount := gst.Round2(input.Amount)
	if !amount.IsPositive() {
		return nil, domain.ErrNonPositiveAmount
	}
	mode, err := normalizeMode(input.Mode)
	if err != nil {
		return nil, err
	}
	date := timeutil.Today()
	if !input.PaymentDate.IsZero() {
		date = timeutil.DateOf(input.PaymentDate)
	}

	p := &domain.Payment{
		ID:          uuid.New(),
		TenantID:    input.TenantID,
		DocumentID:  input.DocumentID,
		PaymentDate: date,
		Amount:      amount,
		Mode:        mode,
		Reference:   strings.TrimSpace(input.Reference),
		Notes:       input.Notes,
		CreatedBy:   input.CreatedBy,
	}
	if input.PartyID != nil {
		p.PartyID = *input.PartyID
	}

	if input.DocumentID == nil {
		if input.PartyID == nil {
			return nil, domain.ErrPartyRequired
		}
		party, err := s.partyRepo.GetByID(ctx, input.TenantID, *input.PartyID)
		if err != nil {
			return nil, err
		}
		if party.DeletedAt != nil {
			return nil, domain.ErrPartyNotFound
		}
		p.Direction = domain.PaymentReceived
		if party.Kind == domain.PartyVendor {
			p.Direction = domain.PaymentMade
		}
		if err := s.paymentRepo.Create(ctx, p); err != nil {
			return nil, err
		}
		metrics.PaymentsRecorded.WithLabelValues(string(p.Direction)).Inc()
		return p, nil
	}

	var doc *domain.Document
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		doc, err = applyToDocument(ctx, s.docRepo, s.paymentRepo, p)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues(string(p.Direction)).Inc()
	s.receipts.send(ctx, doc, p)
	return p, nil
}

func (s *paymentService) GetByID(ctx context.Context, tenantID, paymentID uuid.UUID) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, tenantID, paymentID)
}

func (s *paymentService) List(ctx context.Context, tenantID uuid.UUID, filter port.PaymentFilter) ([]domain.Payment, int, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, 0, domain.ErrInvalidDateRange
	}
	return s.paymentRepo.List(ctx, tenantID, filter)
}

func (s *paymentService) Delete(ctx context.Context, tenantID, paymentID uuid.UUID) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.paymentRepo.GetByID(ctx, tenantID, paymentID)
		if err != nil {
			return err
		}
		if p.DocumentID != nil {
			doc, err := s.docRepo.LockByID(ctx, tenantID, *p.DocumentID)
			if err != nil {
				return err
			}
			if err := lifecycle.ReversePayment(doc, p.Amount, timeutil.Today()); err != nil {
				return err
			}
			if err := s.docRepo.UpdateBalance(ctx, doc); err != nil {
				return err
			}
		}
		if err := s.paymentRepo.SoftDelete(ctx, tenantID, paymentID); err != nil {
			return err
		}
		n, err := s.bankRepo.UnmatchByPayment(ctx, tenantID, paymentID)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.FromContext(ctx, s.log).Info("bank transaction unmatched",
				zap.String("payment_id", paymentID.String()), zap.Int64("rows", n))
		}
		return nil
	})
}

// receiptNotifier mails customers after a payment against their invoice
// commits. Failures are logged and never returned.
type receiptNotifier struct {
	tenants port.TenantRepository
	parties port.PartyRepository
	sender  port.EmailSender
	log     *zap.Logger
}

func newReceiptNotifier(tenants port.TenantRepository, parties port.PartyRepository, sender port.EmailSender, log *zap.Logger) *receiptNotifier {
	return &receiptNotifier{tenants: tenants, parties: parties, sender: sender, log: log}
}

func (n *receiptNotifier) send(ctx context.Context, doc *domain.Document, p *domain.Payment) {
	if n.sender == nil || doc == nil || doc.Kind != domain.DocumentSales {
		return
	}
	log := logger.FromContext(ctx, n.log).With(zap.String("payment_id", p.ID.String()))

	party, err := n.parties.GetByID(ctx, doc.TenantID, doc.PartyID)
	if err != nil {
		log.Warn("receipt skipped: loading customer failed", zap.Error(err))
		return
	}
	if party.Email == "" {
		return
	}
	tenant, err := n.tenants.GetByID(ctx, doc.TenantID)
	if err != nil {
		log.Warn("receipt skipped: loading tenant failed", zap.Error(err))
		return
	}

	err = n.sender.SendPaymentReceipt(ctx, port.PaymentReceipt{
		ToEmail:        party.Email,
		ToName:         party.Name,
		TenantName:     tenant.Name,
		DocumentNumber: doc.DocumentNumber,
		Amount:         p.Amount,
		PaymentDate:    p.PaymentDate,
		Mode:           string(p.Mode),
		Reference:      p.Reference,
		BalanceDue:     doc.BalanceDue,
	})
	if err != nil {
		log.Warn("sending payment receipt failed", zap.String("to", party.Email), zap.Error(err))
	}
}
