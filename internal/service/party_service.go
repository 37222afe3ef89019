package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"khata/internal/domain"
	"khata/internal/gst"
	"khata/internal/port"
)

// CreatePartyInput is the DTO for creating a customer or vendor.
type CreatePartyInput struct {
	Kind           domain.PartyKind `json:"kind" binding:"required" validate:"required,oneof=customer vendor"`
	Name           string           `json:"name" binding:"required" validate:"required,max=200"`
	GSTIN          string           `json:"gstin" validate:"omitempty,gstin"`
	PAN            string           `json:"pan" validate:"omitempty,pan"`
	StateCode      string           `json:"state_code" validate:"omitempty,statecode"`
	Email          string           `json:"email" validate:"omitempty,email"`
	Phone          string           `json:"phone" validate:"max=20"`
	BillingAddress string           `json:"billing_address" validate:"max=1000"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
	TDSApplicable  bool             `json:"tds_applicable"`
	TDSSection     string           `json:"tds_section" validate:"max=20"`
	TDSRate        decimal.Decimal  `json:"tds_rate"`
}

// UpdatePartyInput is the DTO for updating a party. Nil fields are left as they are.
type UpdatePartyInput struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	GSTIN          *string          `json:"gstin" validate:"omitempty,gstin"`
	PAN            *string          `json:"pan" validate:"omitempty,pan"`
	StateCode      *string          `json:"state_code" validate:"omitempty,statecode"`
	Email          *string          `json:"email" validate:"omitempty,email"`
	Phone          *string          `json:"phone" validate:"omitempty,max=20"`
	BillingAddress *string          `json:"billing_address" validate:"omitempty,max=1000"`
	OpeningBalance *decimal.Decimal `json:"opening_balance"`
	TDSApplicable  *bool            `json:"tds_applicable"`
	TDSSection     *string          `json:"tds_section" validate:"omitempty,max=20"`
	TDSRate        *decimal.Decimal `json:"tds_rate"`
}

// PartyService defines the customer and vendor management contract.
type PartyService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreatePartyInput) (*domain.Party, error)
	GetByID(ctx context.Context, tenantID, partyID uuid.UUID) (*domain.Party, error)
	List(ctx context.Context, tenantID uuid.UUID, filter port.PartyFilter) ([]domain.Party, int, error)
	Update(ctx context.Context, tenantID, partyID uuid.UUID, input UpdatePartyInput) (*domain.Party, error)
	Delete(ctx context.Context, tenantID, partyID uuid.UUID) error
	// Restore brings back a soft-deleted party.
	Restore(ctx context.Context, tenantID, partyID uuid.UUID) (*domain.Party, error)
}

type partyService struct {
	repo port.PartyRepository
}

// NewPartyService creates a new PartyService implementation.
func NewPartyService(repo port.PartyRepository) PartyService {
	return &partyService{repo: repo}
}

var maxTDSRate = decimal.NewFromInt(100)

func checkTDSRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(maxTDSRate) {
		return domain.Validationf("tds_rate %s must be between 0 and 100", rate.String())
	}
	return nil
}

func (s *partyService) Create(ctx context.Context, tenantID uuid.UUID, input CreatePartyInput) (*domain.Party, error) {
	input.GSTIN = normalizeID(input.GSTIN)
	input.PAN = normalizeID(input.PAN)
	input.Name = strings.TrimSpace(input.Name)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if err := checkTDSRate(input.TDSRate); err != nil {
		return nil, err
	}

	party := &domain.Party{
		TenantID:       tenantID,
		Kind:           input.Kind,
		Name:           input.Name,
		GSTIN:          input.GSTIN,
		PAN:            input.PAN,
		StateCode:      input.StateCode,
		Email:          strings.TrimSpace(input.Email),
		Phone:          strings.TrimSpace(input.Phone),
		BillingAddress: strings.TrimSpace(input.BillingAddress),
		OpeningBalance: gst.Round2(input.OpeningBalance),
		TDSApplicable:  input.TDSApplicable,
		TDSSection:     strings.TrimSpace(input.TDSSection),
		TDSRate:        input.TDSRate,
	}
	if party.StateCode == "" {
		party.StateCode = gst.StateCodeFromGSTIN(party.GSTIN)
	}
	if party.PAN == "" && party.GSTIN != "" {
		party.PAN = party.GSTIN[2:12]
	}

	if err := s.repo.Create(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

func (s *partyService) GetByID(ctx context.Context, tenantID, partyID uuid.UUID) (*domain.Party, error) {
	return s.repo.GetByID(ctx, tenantID, partyID)
}

func (s *partyService) List(ctx context.Context, tenantID uuid.UUID, filter port.PartyFilter) ([]domain.Party, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, tenantID, filter)
}

func (s *partyService) Update(ctx context.Context, tenantID, partyID uuid.UUID, input UpdatePartyInput) (*domain.Party, error) {
	normalizeIDPtr(input.GSTIN)
	normalizeIDPtr(input.PAN)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if input.TDSRate != nil {
		if err := checkTDSRate(*input.TDSRate); err != nil {
			return nil, err
		}
	}

	party, err := s.repo.GetByID(ctx, tenantID, partyID)
	if err != nil {
		return nil, err
	}
	if party.DeletedAt != nil {
		return nil, domain.ErrPartyNotFound
	}

	setString(&party.Name, input.Name)
	setString(&party.Email, input.Email)
	setString(&party.Phone, input.Phone)
	setString(&party.BillingAddress, input.BillingAddress)
	setString(&party.TDSSection, input.TDSSection)
	setString(&party.StateCode, input.StateCode)
	if input.PAN != nil {
		party.PAN = *input.PAN
	}
	if input.GSTIN != nil {
		party.GSTIN = *input.GSTIN
		if input.StateCode == nil && party.GSTIN != "" {
			party.StateCode = gst.StateCodeFromGSTIN(party.GSTIN)
		}
	}
	if input.OpeningBalance != nil {
		party.OpeningBalance = gst.Round2(*input.OpeningBalance)
	}
	if input.TDSApplicable != nil {
		party.TDSApplicable = *input.TDSApplicable
	}
	if input.TDSRate != nil {
		party.TDSRate = *input.TDSRate
	}

	if err := s.repo.Update(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

func (s *partyService) Delete(ctx context.Context, tenantID, partyID uuid.UUID) error {
	return s.repo.SoftDelete(ctx, tenantID, partyID)
}

func (s *partyService) Restore(ctx context.Context, tenantID, partyID uuid.UUID) (*domain.Party, error) {
	if err := s.repo.Restore(ctx, tenantID, partyID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, tenantID, partyID)
}
