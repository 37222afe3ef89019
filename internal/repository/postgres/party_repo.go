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

type partyRepo struct {
	db *sqlx.DB
}

// NewPartyRepo creates a new PostgreSQL-backed PartyRepository.
func NewPartyRepo(db *sqlx.DB) port.PartyRepository {
	return &partyRepo{db: db}
}

func (r *partyRepo) Create(ctx context.Context, party *domain.Party) error {
	if party.ID == uuid.Nil {
		party.ID = uuid.New()
	}
	now := time.Now().UTC()
	party.CreatedAt = now
	party.UpdatedAt = now

	query := `INSERT INTO parties (id, tenant_id, kind, name, gstin, pan, state_code, email, phone,
		billing_address, opening_balance, tds_applicable, tds_section, tds_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		party.ID, party.TenantID, party.Kind, party.Name, party.GSTIN, party.PAN, party.StateCode,
		party.Email, party.Phone, party.BillingAddress, party.OpeningBalance, party.TDSApplicable,
		party.TDSSection, party.TDSRate, party.CreatedAt, party.UpdatedAt)
	if err != nil {
		return fmt.Errorf("partyRepo.Create: %w", err)
	}
	return nil
}

func (r *partyRepo) GetByID(ctx context.Context, tenantID, partyID uuid.UUID) (*domain.Party, error) {
	var party domain.Party
	err := conn(ctx, r.db).GetContext(ctx, &party,
		"SELECT * FROM parties WHERE id = $1 AND tenant_id = $2", partyID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPartyNotFound
		}
		return nil, fmt.Errorf("partyRepo.GetByID: %w", err)
	}
	return &party, nil
}

func partyWhere(tenantID uuid.UUID, f *port.PartyFilter) (clause string, args []interface{}) {
	args = []interface{}{tenantID}
	clause = "WHERE tenant_id = $1"
	argN := 2

	if !f.IncludeDeleted {
		clause += " AND deleted_at IS NULL"
	}
	if f.Kind != "" {
		clause += fmt.Sprintf(" AND kind = $%d", argN)
		args = append(args, f.Kind)
		argN++
	}
	if f.Search != "" {
		clause += fmt.Sprintf(" AND (name ILIKE $%d OR gstin ILIKE $%d OR email ILIKE $%d)", argN, argN, argN)
		args = append(args, "%"+f.Search+"%")
	}
	return clause, args
}

func (r *partyRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.PartyFilter) ([]domain.Party, int, error) {
	where, args := partyWhere(tenantID, &filter)

	var total int
	if err := conn(ctx, r.db).GetContext(ctx, &total, "SELECT COUNT(*) FROM parties "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("partyRepo.List count: %w", err)
	}

	query, args := paginate("SELECT * FROM parties "+where+" ORDER BY name", args, filter.Offset, filter.Limit)
	var parties []domain.Party
	if err := conn(ctx, r.db).SelectContext(ctx, &parties, query, args...); err != nil {
		return nil, 0, fmt.Errorf("partyRepo.List: %w", err)
	}
	return parties, total, nil
}

func (r *partyRepo) Update(ctx context.Context, party *domain.Party) error {
	party.UpdatedAt = time.Now().UTC()
	query := `UPDATE parties SET name = $1, gstin = $2, pan = $3, state_code = $4, email = $5, phone = $6,
		billing_address = $7, opening_balance = $8, tds_applicable = $9, tds_section = $10, tds_rate = $11,
		updated_at = $12
		WHERE id = $13 AND tenant_id = $14 AND deleted_at IS NULL`
	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		party.Name, party.GSTIN, party.PAN, party.StateCode, party.Email, party.Phone,
		party.BillingAddress, party.OpeningBalance, party.TDSApplicable, party.TDSSection, party.TDSRate,
		party.UpdatedAt, party.ID, party.TenantID)
	if err != nil {
		return fmt.Errorf("partyRepo.Update: %w", err)
	}
	return affectedOrNotFound(result, domain.ErrPartyNotFound)
}

func (r *partyRepo) SoftDelete(ctx context.Context, tenantID, partyID uuid.UUID) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE parties SET deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`, partyID, tenantID)
	if err != nil {
		return fmt.Errorf("partyRepo.SoftDelete: %w", err)
	}
	return affectedOrNotFound(result, domain.ErrPartyNotFound)
}

func (r *partyRepo) Restore(ctx context.Context, tenantID, partyID uuid.UUID) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE parties SET deleted_at = NULL, updated_at = NOW()
		 WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NOT NULL`, partyID, tenantID)
	if err != nil {
		return fmt.Errorf("partyRepo.Restore: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("partyRepo.Restore: %w", err)
	}
	if rows == 0 {
		if _, err := r.GetByID(ctx, tenantID, partyID); err != nil {
			return err
		}
		return domain.ErrPartyNotDeleted
	}
	return nil
}
