package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"khata/internal/domain"
	"khata/internal/ledger"
	"khata/internal/port"
)

// LedgerService builds party statements.
type LedgerService interface {
	// Statement returns the running balance of the party. Entries before
	// from fold into the opening balance; nil bounds are open.
	Statement(ctx context.Context, tenantID, partyID uuid.UUID, from, to *time.Time) (*domain.LedgerStatement, error)
}

type ledgerService struct {
	partyRepo   port.PartyRepository
	docRepo     port.DocumentRepository
	paymentRepo port.PaymentRepository
}

// NewLedgerService creates a new LedgerService implementation.
func NewLedgerService(partyRepo port.PartyRepository, docRepo port.DocumentRepository, paymentRepo port.PaymentRepository) LedgerService {
	return &ledgerService{partyRepo: partyRepo, docRepo: docRepo, paymentRepo: paymentRepo}
}

func (s *ledgerService) Statement(ctx context.Context, tenantID, partyID uuid.UUID, from, to *time.Time) (*domain.LedgerStatement, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, domain.ErrInvalidDateRange
	}
	party, err := s.partyRepo.GetByID(ctx, tenantID, partyID)
	if err != nil {
		return nil, err
	}
	if party.DeletedAt != nil {
		return nil, domain.ErrPartyNotFound
	}

	docs, _, err := s.docRepo.List(ctx, tenantID, port.DocumentFilter{PartyID: &partyID})
	if err != nil {
		return nil, err
	}
	payments, _, err := s.paymentRepo.List(ctx, tenantID, port.PaymentFilter{PartyID: &partyID})
	if err != nil {
		return nil, err
	}

	stmt := ledger.Build(party, docs, payments)
	if from == nil && to == nil {
		return stmt, nil
	}
	var lo, hi time.Time
	if from != nil {
		lo = *from
	}
	if to != nil {
		hi = *to
	}
	return ledger.Window(stmt, lo, hi), nil
}
