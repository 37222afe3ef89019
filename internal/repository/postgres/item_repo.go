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

const itemNameConstraint = "items_tenant_name_key"

type itemRepo struct {
	db *sqlx.DB
}

// NewItemRepo creates a new PostgreSQL-backed ItemRepository.
func NewItemRepo(db *sqlx.DB) port.ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *domain.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `INSERT INTO items (id, tenant_id, name, description, hsn_sac, type, unit, default_rate,
		gst_rate, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		item.ID, item.TenantID, item.Name, item.Description, item.HSNSAC, item.Type, item.Unit,
		item.DefaultRate, item.GSTRate, item.IsActive, item.CreatedBy, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, itemNameConstraint) {
			return domain.ErrDuplicateItemName
		}
		return fmt.Errorf("itemRepo.Create: %w", err)
	}
	return nil
}

func (r *itemRepo) GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.Item, error) {
	var item domain.Item
	err := conn(ctx, r.db).GetContext(ctx, &item,
		"SELECT * FROM items WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL", itemID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("itemRepo.GetByID: %w", err)
	}
	return &item, nil
}

func itemWhere(tenantID uuid.UUID, f *port.ItemFilter) (clause string, args []interface{}) {
	args = []interface{}{tenantID}
	clause = "WHERE tenant_id = $1 AND deleted_at IS NULL"
	if !f.IncludeInactive {
		clause += " AND is_active"
	}
	if f.Search != "" {
		clause += " AND (name ILIKE $2 OR hsn_sac ILIKE $2)"
		args = append(args, "%"+f.Search+"%")
	}
	return clause, args
}

func (r *itemRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.ItemFilter) ([]domain.Item, int, error) {
	where, args := itemWhere(tenantID, &filter)

	var total int
	if err := conn(ctx, r.db).GetContext(ctx, &total, "SELECT COUNT(*) FROM items "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("itemRepo.List count: %w", err)
	}

	query, args := paginate("SELECT * FROM items "+where+" ORDER BY name", args, filter.Offset, filter.Limit)
	var items []domain.Item
	if err := conn(ctx, r.db).SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("itemRepo.List: %w", err)
	}
	return items, total, nil
}

func (r *itemRepo) Update(ctx context.Context, item *domain.Item) error {
	item.UpdatedAt = time.Now().UTC()
	query := `UPDATE items SET name = $1, description = $2, hsn_sac = $3, type = $4, unit = $5,
		default_rate = $6, gst_rate = $7, is_active = $8, updated_at = $9
		WHERE id = $10 AND tenant_id = $11 AND deleted_at IS NULL`
	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		item.Name, item.Description, item.HSNSAC, item.Type, item.Unit,
		item.DefaultRate, item.GSTRate, item.IsActive, item.UpdatedAt, item.ID, item.TenantID)
	if err != nil {
		if isUniqueViolation(err, itemNameConstraint) {
			return domain.ErrDuplicateItemName
		}
		return fmt.Errorf("itemRepo.Update: %w", err)
	}
	return affectedOrNotFound(result, domain.ErrItemNotFound)
}

func (r *itemRepo) SoftDelete(ctx context.Context, tenantID, itemID uuid.UUID) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE items SET deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`, itemID, tenantID)
	if err != nil {
		return fmt.Errorf("itemRepo.SoftDelete: %w", err)
	}
	return affectedOrNotFound(result, domain.ErrItemNotFound)
}
