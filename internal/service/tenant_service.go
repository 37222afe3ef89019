package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"khata/internal/config"
	"khata/internal/domain"
	"khata/internal/gst"
	"khata/internal/port"
)

// CreateTenantInput is the DTO for creating a tenant.
type CreateTenantInput struct {
	Name      string `json:"name" binding:"required" validate:"required,max=200"`
	Slug      string `json:"slug" binding:"required" validate:"required,max=100"`
	GSTIN     string `json:"gstin" validate:"omitempty,gstin"`
	PAN       string `json:"pan" validate:"omitempty,pan"`
	StateCode string `json:"state_code" validate:"omitempty,statecode"`
	Address   string `json:"address"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// UpdateTenantInput is the DTO for updating tenant settings. The invoice
// counter can be moved forward only.
type UpdateTenantInput struct {
	Name                    *string `json:"name" validate:"omitempty,min=1,max=200"`
	GSTIN                   *string `json:"gstin" validate:"omitempty,gstin"`
	PAN                     *string `json:"pan" validate:"omitempty,pan"`
	StateCode               *string `json:"state_code" validate:"omitempty,statecode"`
	Address                 *string `json:"address"`
	Email                   *string `json:"email" validate:"omitempty,email"`
	BankName                *string `json:"bank_name"`
	BankAccountNumber       *string `json:"bank_account_number"`
	BankIFSC                *string `json:"bank_ifsc"`
	InvoicePrefix           *string `json:"invoice_prefix" validate:"omitempty,max=20"`
	InvoiceNextNumber       *int64  `json:"invoice_next_number" validate:"omitempty,min=1"`
	FiscalYearStartMonth    *int    `json:"fiscal_year_start_month" validate:"omitempty,min=1,max=12"`
	DefaultPaymentTermsDays *int    `json:"default_payment_terms_days" validate:"omitempty,min=0,max=365"`
}

// TenantService defines the tenant management contract.
type TenantService interface {
	Create(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	ListActive(ctx context.Context) ([]domain.Tenant, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error)
}

type tenantService struct {
	repo     port.TenantRepository
	tx       port.Transactor
	defaults config.InvoiceConfig
}

// NewTenantService creates a new TenantService implementation.
func NewTenantService(repo port.TenantRepository, tx port.Transactor, defaults config.InvoiceConfig) TenantService {
	return &tenantService{repo: repo, tx: tx, defaults: defaults}
}

func (s *tenantService) Create(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error) {
	input.GSTIN = normalizeID(input.GSTIN)
	input.PAN = normalizeID(input.PAN)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	tenant := &domain.Tenant{
		Name:                    strings.TrimSpace(input.Name),
		Slug:                    strings.ToLower(strings.TrimSpace(input.Slug)),
		GSTIN:                   input.GSTIN,
		PAN:                     input.PAN,
		StateCode:               input.StateCode,
		Address:                 input.Address,
		Email:                   input.Email,
		InvoicePrefix:           s.defaults.DefaultPrefix,
		InvoiceNextNumber:       1,
		FiscalYearStartMonth:    s.defaults.FiscalYearStartMonth,
		DefaultPaymentTermsDays: s.defaults.DefaultPaymentTermsDays,
		IsActive:                true,
	}
	if tenant.StateCode == "" && tenant.GSTIN != "" {
		tenant.StateCode = gst.StateCodeFromGSTIN(tenant.GSTIN)
	}
	if err := s.repo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *tenantService) ListActive(ctx context.Context) ([]domain.Tenant, error) {
	return s.repo.ListActive(ctx)
}

func (s *tenantService) Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error) {
	normalizeIDPtr(input.GSTIN)
	normalizeIDPtr(input.PAN)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	var tenant *domain.Tenant
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if tenant, err = s.repo.GetByID(ctx, id); err != nil {
			return err
		}

		setString(&tenant.Name, input.Name)
		setString(&tenant.Address, input.Address)
		setString(&tenant.Email, input.Email)
		setString(&tenant.BankName, input.BankName)
		setString(&tenant.BankAccountNumber, input.BankAccountNumber)
		setString(&tenant.BankIFSC, input.BankIFSC)
		setString(&tenant.InvoicePrefix, input.InvoicePrefix)
		setString(&tenant.StateCode, input.StateCode)
		if input.GSTIN != nil {
			tenant.GSTIN = *input.GSTIN
			if input.StateCode == nil && tenant.GSTIN != "" {
				tenant.StateCode = gst.StateCodeFromGSTIN(tenant.GSTIN)
			}
		}
		if input.PAN != nil {
			tenant.PAN = *input.PAN
		}
		if input.FiscalYearStartMonth != nil {
			tenant.FiscalYearStartMonth = *input.FiscalYearStartMonth
		}
		if input.DefaultPaymentTermsDays != nil {
			tenant.DefaultPaymentTermsDays = *input.DefaultPaymentTermsDays
		}
		if err := s.repo.Update(ctx, tenant); err != nil {
			return err
		}

		if input.InvoiceNextNumber != nil && *input.InvoiceNextNumber != tenant.InvoiceNextNumber {
			if err := s.repo.AdvanceInvoiceCounter(ctx, id, *input.InvoiceNextNumber); err != nil {
				return err
			}
			tenant.InvoiceNextNumber = *input.InvoiceNextNumber
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// normalizeID upper-cases a GSTIN or PAN and strips surrounding blanks.
func normalizeID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func normalizeIDPtr(s *string) {
	if s != nil {
		*s = normalizeID(*s)
	}
}
