package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"khata/internal/domain"
	"khata/internal/gst"
	"khata/internal/logger"
	"khata/internal/metrics"
	"khata/internal/port"
	"khata/internal/reconcile"
	"khata/internal/timeutil"
)

// suggestionWindow caps how many unmatched credits are scored per request.
const suggestionWindow = 100

// MatchInput is the DTO for confirming a bank credit against an invoice.
// A nil Amount pays the smaller of the credit and the balance due; a nil
// PaymentDate uses the transaction date.
type MatchInput struct {
	TenantID    uuid.UUID
	TxnID       uuid.UUID
	DocumentID  uuid.UUID
	Amount      *decimal.Decimal
	PaymentDate *time.Time
	Mode        domain.PaymentMode
	CreatedBy   uuid.UUID
}

// BankService defines the bank reconciliation contract.
type BankService interface {
	Import(ctx context.Context, tenantID uuid.UUID, accountLabel string, statement io.Reader) (*domain.ImportResult, error)
	ImportRows(ctx context.Context, tenantID uuid.UUID, accountLabel string, rows []reconcile.StatementRow) (*domain.ImportResult, error)
	List(ctx context.Context, tenantID uuid.UUID, filter port.BankTxnFilter) ([]domain.BankTransaction, int, error)
	Suggest(ctx context.Context, tenantID uuid.UUID) ([]domain.MatchSuggestion, error)
	Match(ctx context.Context, input MatchInput) (*domain.Payment, error)
	Ignore(ctx context.Context, tenantID, txnID uuid.UUID) (*domain.BankTransaction, error)
	Unignore(ctx context.Context, tenantID, txnID uuid.UUID) (*domain.BankTransaction, error)
}

type bankService struct {
	bankRepo    port.BankTransactionRepository
	docRepo     port.DocumentRepository
	paymentRepo port.PaymentRepository
	tx          port.Transactor
	receipts    *receiptNotifier
	log         *zap.Logger
}

// NewBankService creates a new BankService implementation.
func NewBankService(
	bankRepo port.BankTransactionRepository,
	docRepo port.DocumentRepository,
	paymentRepo port.PaymentRepository,
	partyRepo port.PartyRepository,
	tenantRepo port.TenantRepository,
	tx port.Transactor,
	sender port.EmailSender,
	log *zap.Logger,
) BankService {
	return &bankService{
		bankRepo:    bankRepo,
		docRepo:     docRepo,
		paymentRepo: paymentRepo,
		tx:          tx,
		receipts:    newReceiptNotifier(tenantRepo, partyRepo, sender, log),
		log:         log,
	}
}

func (s *bankService) Import(ctx context.Context, tenantID uuid.UUID, accountLabel string, statement io.Reader) (*domain.ImportResult, error) {
	rows, err := reconcile.ParseStatementCSV(statement)
	if err != nil {
		return nil, err
	}
	return s.ImportRows(ctx, tenantID, accountLabel, rows)
}

// ImportRows stores every row not seen before. Rows whose import hash is
// already present are counted as skipped. An invalid row rejects the whole
// statement before anything is written; any other failure rolls it back.
func (s *bankService) ImportRows(ctx context.Context, tenantID uuid.UUID, accountLabel string, rows []reconcile.StatementRow) (*domain.ImportResult, error) {
	accountLabel = strings.TrimSpace(accountLabel)
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			return nil, err
		}
	}
	res := &domain.ImportResult{Total: len(rows)}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		res.Imported, res.Skipped = 0, 0
		for _, row := range rows {
			txn := row.Transaction(tenantID, accountLabel)
			inserted, err := s.bankRepo.InsertIfAbsent(ctx, &txn)
			if err != nil {
				return err
			}
			if inserted {
				res.Imported++
			} else {
				res.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BankRowsImported.WithLabelValues("imported").Add(float64(res.Imported))
	metrics.BankRowsImported.WithLabelValues("skipped").Add(float64(res.Skipped))
	logger.FromContext(ctx, s.log).Info("bank statement imported",
		zap.String("tenant_id", tenantID.String()),
		zap.String("account", accountLabel),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

func (s *bankService) List(ctx context.Context, tenantID uuid.UUID, filter port.BankTxnFilter) ([]domain.BankTransaction, int, error) {
	return s.bankRepo.List(ctx, tenantID, filter)
}

func (s *bankService) Suggest(ctx context.Context, tenantID uuid.UUID) ([]domain.MatchSuggestion, error) {
	txns, err := s.bankRepo.ListUnmatchedCredits(ctx, tenantID, suggestionWindow)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return []domain.MatchSuggestion{}, nil
	}
	open, err := s.docRepo.ListOpen(ctx, tenantID, domain.DocumentSales)
	if err != nil {
		return nil, err
	}
	out := reconcile.Suggest(txns, open)
	if out == nil {
		out = []domain.MatchSuggestion{}
	}
	return out, nil
}

func (s *bankService) Match(ctx context.Context, input MatchInput) (*domain.Payment, error) {
	mode, err := normalizeMode(input.Mode)
	if err != nil {
		return nil, err
	}

	var (
		p   *domain.Payment
		doc *domain.Document
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		txn, err := s.bankRepo.LockByID(ctx, input.TenantID, input.TxnID)
		if err != nil {
			return err
		}
		if txn.Status != domain.BankTxnUnmatched {
			return domain.ErrBankTxnNotUnmatched
		}
		if !txn.Credit.IsPositive() {
			return domain.ErrNoCreditAmount
		}

		target, err := s.docRepo.LockByID(ctx, input.TenantID, input.DocumentID)
		if err != nil {
			return err
		}
		if target.DeletedAt != nil {
			return domain.ErrDocumentNotFound
		}
		if target.Kind != domain.DocumentSales {
			return domain.Validationf("bank credits can only be matched to invoices")
		}

		amount := reconcile.DefaultMatchAmount(txn, target)
		if input.Amount != nil {
			amount = gst.Round2(*input.Amount)
			if !amount.IsPositive() {
				return domain.ErrNonPositiveAmount
			}
		}
		if amount.GreaterThan(txn.Credit) {
			return domain.ErrMatchExceedsCredit
		}
		date := timeutil.DateOf(txn.TxnDate)
		if input.PaymentDate != nil {
			date = timeutil.DateOf(*input.PaymentDate)
		}

		docID := target.ID
		p = &domain.Payment{
			ID:          uuid.New(),
			TenantID:    input.TenantID,
			DocumentID:  &docID,
			PaymentDate: date,
			Amount:      amount,
			Mode:        mode,
			Reference:   txn.ReferenceNumber,
			Notes:       txn.Description,
			CreatedBy:   input.CreatedBy,
		}
		doc, err = applyToDocument(ctx, s.docRepo, s.paymentRepo, p)
		if err != nil {
			return err
		}
		return s.bankRepo.MarkMatched(ctx, input.TenantID, txn.ID, p.ID)
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues(string(p.Direction)).Inc()
	s.receipts.send(ctx, doc, p)
	return p, nil
}

func (s *bankService) setStatus(ctx context.Context, tenantID, txnID uuid.UUID, from, to domain.BankTxnStatus, wrong error) (*domain.BankTransaction, error) {
	var txn *domain.BankTransaction
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		txn, err = s.bankRepo.LockByID(ctx, tenantID, txnID)
		if err != nil {
			return err
		}
		if txn.Status != from {
			return wrong
		}
		if err := s.bankRepo.SetStatus(ctx, tenantID, txnID, to); err != nil {
			return err
		}
		txn.Status = to
		txn.MatchedPaymentID = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *bankService) Ignore(ctx context.Context, tenantID, txnID uuid.UUID) (*domain.BankTransaction, error) {
	return s.setStatus(ctx, tenantID, txnID, domain.BankTxnUnmatched, domain.BankTxnIgnored, domain.ErrBankTxnNotUnmatched)
}

func (s *bankService) Unignore(ctx context.Context, tenantID, txnID uuid.UUID) (*domain.BankTransaction, error) {
	return s.setStatus(ctx, tenantID, txnID, domain.BankTxnIgnored, domain.BankTxnUnmatched, domain.ErrBankTxnNotIgnored)
}
