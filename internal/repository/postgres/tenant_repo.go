package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"khata/internal/domain"
	"khata/internal/port"
)

type tenantRepo struct {
	db *sqlx.DB
}

// NewTenantRepo creates a new PostgreSQL-backed TenantRepository.
func NewTenantRepo(db *sqlx.DB) port.TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, tenant *domain.Tenant) error {
	tenant.ID = uuid.New()
	now := time.Now().UTC()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now
	if tenant.InvoiceNextNumber < 1 {
		tenant.InvoiceNextNumber = 1
	}

	query := `INSERT INTO tenants (id, name, slug, gstin, pan, state_code, address, email,
		bank_name, bank_account_number, bank_ifsc, invoice_prefix, invoice_next_number,
		fiscal_year_start_month, default_payment_terms_days, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		tenant.ID, tenant.Name, tenant.Slug, tenant.GSTIN, tenant.PAN, tenant.StateCode, tenant.Address,
		tenant.Email, tenant.BankName, tenant.BankAccountNumber, tenant.BankIFSC, tenant.InvoicePrefix,
		tenant.InvoiceNextNumber, tenant.FiscalYearStartMonth, tenant.DefaultPaymentTermsDays,
		tenant.IsActive, tenant.CreatedAt, tenant.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "tenants_slug_key") {
			return domain.ErrDuplicateTenantSlug
		}
		return fmt.Errorf("tenantRepo.Create: %w", err)
	}
	return nil
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := conn(ctx, r.db).GetContext(ctx, &tenant, "SELECT * FROM tenants WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("tenantRepo.GetByID: %w", err)
	}
	return &tenant, nil
}

func (r *tenantRepo) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := conn(ctx, r.db).GetContext(ctx, &tenant, "SELECT * FROM tenants WHERE slug = $1", slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("tenantRepo.GetBySlug: %w", err)
	}
	return &tenant, nil
}

func (r *tenantRepo) ListActive(ctx context.Context) ([]domain.Tenant, error) {
	var tenants []domain.Tenant
	err := conn(ctx, r.db).SelectContext(ctx, &tenants,
		"SELECT * FROM tenants WHERE is_active = TRUE ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("tenantRepo.ListActive: %w", err)
	}
	return tenants, nil
}

func (r *tenantRepo) Update(ctx context.Context, tenant *domain.Tenant) error {
	tenant.UpdatedAt = time.Now().UTC()
	query := `UPDATE tenants SET name = $1, gstin = $2, pan = $3, state_code = $4, address = $5, email = $6,
		bank_name = $7, bank_account_number = $8, bank_ifsc = $9, invoice_prefix = $10,
		fiscal_year_start_month = $11, default_payment_terms_days = $12, is_active = $13, updated_at = $14
		WHERE id = $15`
	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		tenant.Name, tenant.GSTIN, tenant.PAN, tenant.StateCode, tenant.Address, tenant.Email,
		tenant.BankName, tenant.BankAccountNumber, tenant.BankIFSC, tenant.InvoicePrefix,
		tenant.FiscalYearStartMonth, tenant.DefaultPaymentTermsDays, tenant.IsActive, tenant.UpdatedAt,
		tenant.ID)
	if err != nil {
		return fmt.Errorf("tenantRepo.Update: %w", err)
	}
	return affectedOrNotFound(result, domain.ErrTenantNotFound)
}

const reserveSerialQuery = `UPDATE tenants
	SET invoice_next_number = invoice_next_number + 1, updated_at = NOW()
	WHERE id = $1
	RETURNING *`

func (r *tenantRepo) ReserveInvoiceSerial(ctx context.Context, tenantID uuid.UUID) (int64, *domain.Tenant, error) {
	var tenant domain.Tenant
	err := conn(ctx, r.db).GetContext(ctx, &tenant, reserveSerialQuery, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, domain.ErrTenantNotFound
		}
		return 0, nil, fmt.Errorf("tenantRepo.ReserveInvoiceSerial: %w", err)
	}
	return tenant.InvoiceNextNumber - 1, &tenant, nil
}

func (r *tenantRepo) AdvanceInvoiceCounter(ctx context.Context, tenantID uuid.UUID, next int64) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE tenants SET invoice_next_number = $1, updated_at = NOW()
		 WHERE id = $2 AND invoice_next_number <= $1`, next, tenantID)
	if err != nil {
		return fmt.Errorf("tenantRepo.AdvanceInvoiceCounter: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("tenantRepo.AdvanceInvoiceCounter: %w", err)
	}
	if rows == 0 {
		if _, err := r.GetByID(ctx, tenantID); err != nil {
			return err
		}
		return domain.ErrCounterNotIncreasing
	}
	return nil
}
