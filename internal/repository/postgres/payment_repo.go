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

type paymentRepo struct {
	db *sqlx.DB
}

// NewPaymentRepo creates a new PostgreSQL-backed PaymentRepository.
func NewPaymentRepo(db *sqlx.DB) port.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	payment.CreatedAt = time.Now().UTC()

	query := `INSERT INTO payments (id, tenant_id, direction, party_id, document_id, payment_date,
		amount, mode, reference, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		payment.ID, payment.TenantID, payment.Direction, payment.PartyID, payment.DocumentID,
		payment.PaymentDate, payment.Amount, payment.Mode, payment.Reference, payment.Notes,
		payment.CreatedBy, payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("paymentRepo.Create: %w", err)
	}
	return nil
}

func (r *paymentRepo) GetByID(ctx context.Context, tenantID, paymentID uuid.UUID) (*domain.Payment, error) {
	var payment domain.Payment
	err := conn(ctx, r.db).GetContext(ctx, &payment,
		"SELECT * FROM payments WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL", paymentID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("paymentRepo.GetByID: %w", err)
	}
	return &payment, nil
}

func paymentWhere(tenantID uuid.UUID, f *port.PaymentFilter) (clause string, args []interface{}) {
	args = []interface{}{tenantID}
	clause = "WHERE tenant_id = $1 AND deleted_at IS NULL"
	argN := 2

	if f.Direction != "" {
		clause += fmt.Sprintf(" AND direction = $%d", argN)
		args = append(args, f.Direction)
		argN++
	}
	if f.PartyID != nil {
		clause += fmt.Sprintf(" AND party_id = $%d", argN)
		args = append(args, *f.PartyID)
		argN++
	}
	if f.DocumentID != nil {
		clause += fmt.Sprintf(" AND document_id = $%d", argN)
		args = append(args, *f.DocumentID)
		argN++
	}
	if f.From != nil {
		clause += fmt.Sprintf(" AND payment_date >= $%d", argN)
		args = append(args, *f.From)
		argN++
	}
	if f.To != nil {
		clause += fmt.Sprintf(" AND payment_date <= $%d", argN)
		args = append(args, *f.To)
	}
	return clause, args
}

func (r *paymentRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.PaymentFilter) ([]domain.Payment, int, error) {
	where, args := paymentWhere(tenantID, &filter)

	var total int
	if err := conn(ctx, r.db).GetContext(ctx, &total, "SELECT COUNT(*) FROM payments "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("paymentRepo.List count: %w", err)
	}

	query, args := paginate("SELECT * FROM payments "+where+" ORDER BY payment_date DESC, created_at DESC",
		args, filter.Offset, filter.Limit)
	var payments []domain.Payment
	if err := conn(ctx, r.db).SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("paymentRepo.List: %w", err)
	}
	return payments, total, nil
}

func (r *paymentRepo) SoftDelete(ctx context.Context, tenantID, paymentID uuid.UUID) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE payments SET deleted_at = NOW() WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL",
		paymentID, tenantID)
	if err != nil {
		return fmt.Errorf("paymentRepo.SoftDelete: %w", err)
	}
	return affectedOrNotFound(result, domain.ErrPaymentNotFound)
}

func (r *paymentRepo) CountByDocument(ctx context.Context, tenantID, docID uuid.UUID) (int, error) {
	var n int
	err := conn(ctx, r.db).GetContext(ctx, &n,
		"SELECT COUNT(*) FROM payments WHERE tenant_id = $1 AND document_id = $2", tenantID, docID)
	if err != nil {
		return 0, fmt.Errorf("paymentRepo.CountByDocument: %w", err)
	}
	return n, nil
}
