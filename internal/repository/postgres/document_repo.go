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

const (
	invoiceNumberConstraint = "documents_invoice_number_key"
	billNumberConstraint    = "documents_bill_number_key"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (
		id, tenant_id, kind, document_number, party_id, party_name,
		document_date, due_date, place_of_supply, is_inter_state, status,
		subtotal, discount_amount, taxable_amount, cgst_amount, sgst_amount, igst_amount, total_amount,
		amount_paid, balance_due, tds_applicable, tds_section, tds_rate, tds_amount,
		itc_eligible, notes, attachment_id, created_by, created_at, updated_at,
		tds_certificate_status
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10, $11,
		$12, $13, $14, $15, $16, $17, $18,
		$19, $20, $21, $22, $23, $24,
		$25, $26, $27, $28, $29, $30,
		$31
	)`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		doc.ID, doc.TenantID, doc.Kind, doc.DocumentNumber, doc.PartyID, doc.PartyName,
		doc.DocumentDate, doc.DueDate, doc.PlaceOfSupply, doc.IsInterState, doc.Status,
		doc.Subtotal, doc.DiscountAmount, doc.TaxableAmount, doc.CGSTAmount, doc.SGSTAmount, doc.IGSTAmount, doc.TotalAmount,
		doc.AmountPaid, doc.BalanceDue, doc.TDSApplicable, doc.TDSSection, doc.TDSRate, doc.TDSAmount,
		doc.ITCEligible, doc.Notes, doc.AttachmentID, doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt,
		certificateStatusOrDefault(doc.TDSCertificateStatus))
	if err != nil {
		if isUniqueViolation(err, invoiceNumberConstraint) || isUniqueViolation(err, billNumberConstraint) {
			return domain.ErrDuplicateDocNumber
		}
		return fmt.Errorf("documentRepo.Create: %w", err)
	}

	if err := r.insertLines(ctx, doc); err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

const insertLineQuery = `INSERT INTO line_items (
	id, document_id, tenant_id, position, description, hsn_sac, unit,
	quantity, rate, gst_rate, discount_type, discount_value,
	amount, discount_amount, taxable_amount, cgst_amount, sgst_amount, igst_amount, line_total
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

func (r *documentRepo) insertLines(ctx context.Context, doc *domain.Document) error {
	for i := range doc.Lines {
		l := &doc.Lines[i]
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
		l.DocumentID = doc.ID
		l.TenantID = doc.TenantID
		l.Position = i + 1
		_, err := conn(ctx, r.db).ExecContext(ctx, insertLineQuery,
			l.ID, l.DocumentID, l.TenantID, l.Position, l.Description, l.HSNSAC, l.Unit,
			l.Quantity, l.Rate, l.GSTRate, l.DiscountType, l.DiscountValue,
			l.Amount, l.DiscountAmount, l.TaxableAmount, l.CGSTAmount, l.SGSTAmount, l.IGSTAmount, l.LineTotal)
		if err != nil {
			return fmt.Errorf("inserting line %d: %w", l.Position, err)
		}
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := conn(ctx, r.db).GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1 AND tenant_id = $2", docID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}

	err = conn(ctx, r.db).SelectContext(ctx, &doc.Lines,
		"SELECT * FROM line_items WHERE document_id = $1 AND tenant_id = $2 ORDER BY position", docID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.GetByID lines: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) LockByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := conn(ctx, r.db).GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1 AND tenant_id = $2 FOR UPDATE", docID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.LockByID: %w", err)
	}
	return &doc, nil
}

// documentWhere builds the WHERE clause and positional args for a filter.
func documentWhere(tenantID uuid.UUID, f *port.DocumentFilter) (clause string, args []interface{}) {
	args = []interface{}{tenantID}
	clause = "WHERE tenant_id = $1"
	argN := 2

	if f.Deleted {
		clause += " AND deleted_at IS NOT NULL"
	} else {
		clause += " AND deleted_at IS NULL"
	}
	if f.Kind != "" {
		clause += fmt.Sprintf(" AND kind = $%d", argN)
		args = append(args, f.Kind)
		argN++
	}
	if f.Status != "" {
		clause += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, f.Status)
		argN++
	}
	if f.PartyID != nil {
		clause += fmt.Sprintf(" AND party_id = $%d", argN)
		args = append(args, *f.PartyID)
		argN++
	}
	if f.From != nil {
		clause += fmt.Sprintf(" AND document_date >= $%d", argN)
		args = append(args, *f.From)
		argN++
	}
	if f.To != nil {
		clause += fmt.Sprintf(" AND document_date <= $%d", argN)
		args = append(args, *f.To)
		argN++
	}
	if f.Search != "" {
		clause += fmt.Sprintf(" AND (document_number ILIKE $%d OR party_name ILIKE $%d)", argN, argN)
		args = append(args, "%"+f.Search+"%")
	}
	return clause, args
}

func (r *documentRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.DocumentFilter) ([]domain.Document, int, error) {
	where, args := documentWhere(tenantID, &filter)

	var total int
	if err := conn(ctx, r.db).GetContext(ctx, &total, "SELECT COUNT(*) FROM documents "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	query, args := paginate("SELECT * FROM documents "+where+" ORDER BY document_date DESC, created_at DESC",
		args, filter.Offset, filter.Limit)
	var docs []domain.Document
	if err := conn(ctx, r.db).SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, total, nil
}

const listOpenQuery = `SELECT * FROM documents
	WHERE tenant_id = $1 AND deleted_at IS NULL AND balance_due > 0
	AND status IN ('sent', 'pending', 'partially_paid', 'overdue')
	AND ($2 = '' OR kind = $2)
	ORDER BY due_date, created_at`

func (r *documentRepo) ListOpen(ctx context.Context, tenantID uuid.UUID, kind domain.DocumentKind) ([]domain.Document, error) {
	var docs []domain.Document
	if err := conn(ctx, r.db).SelectContext(ctx, &docs, listOpenQuery, tenantID, string(kind)); err != nil {
		return nil, fmt.Errorf("documentRepo.ListOpen: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	query := `UPDATE documents SET
		document_number = $1, party_id = $2, party_name = $3, document_date = $4, due_date = $5,
		place_of_supply = $6, is_inter_state = $7, status = $8,
		subtotal = $9, discount_amount = $10, taxable_amount = $11, cgst_amount = $12, sgst_amount = $13,
		igst_amount = $14, total_amount = $15, amount_paid = $16, balance_due = $17,
		tds_applicable = $18, tds_section = $19, tds_rate = $20, tds_amount = $21,
		itc_eligible = $22, notes = $23, attachment_id = $24, updated_at = $25,
		tds_certificate_status = $26
		WHERE id = $27 AND tenant_id = $28`
	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		doc.DocumentNumber, doc.PartyID, doc.PartyName, doc.DocumentDate, doc.DueDate,
		doc.PlaceOfSupply, doc.IsInterState, doc.Status,
		doc.Subtotal, doc.DiscountAmount, doc.TaxableAmount, doc.CGSTAmount, doc.SGSTAmount,
		doc.IGSTAmount, doc.TotalAmount, doc.AmountPaid, doc.BalanceDue,
		doc.TDSApplicable, doc.TDSSection, doc.TDSRate, doc.TDSAmount,
		doc.ITCEligible, doc.Notes, doc.AttachmentID, doc.UpdatedAt,
		certificateStatusOrDefault(doc.TDSCertificateStatus),
		doc.ID, doc.TenantID)
	if err != nil {
		if isUniqueViolation(err, invoiceNumberConstraint) || isUniqueViolation(err, billNumberConstraint) {
			return domain.ErrDuplicateDocNumber
		}
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	if err := affectedOrNotFound(result, domain.ErrDocumentNotFound); err != nil {
		return err
	}

	if _, err := conn(ctx, r.db).ExecContext(ctx,
		"DELETE FROM line_items WHERE document_id = $1 AND tenant_id = $2", doc.ID, doc.TenantID); err != nil {
		return fmt.Errorf("documentRepo.Update delete lines: %w", err)
	}
	if err := r.insertLines(ctx, doc); err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	return nil
}

func (r *documentRepo) UpdateBalance(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE documents SET amount_paid = $1, balance_due = $2, status = $3, updated_at = $4
		 WHERE id = $5 AND tenant_id = $6`,
		doc.AmountPaid, doc.BalanceDue, doc.Status, doc.UpdatedAt, doc.ID, doc.TenantID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateBalance: %w", err)
	}
	return affectedOrNotFound(result, domain.ErrDocumentNotFound)
}

func (r *documentRepo) UpdateCompliance(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	query := `UPDATE documents SET
		tds_applicable = $1, tds_rate = $2, tds_amount = $3, tds_certificate_status = $4,
		tds_certificate_received_date = $5, next_follow_up_date = $6, follow_up_notes = $7,
		gst_filed = $8, gstr2b_reflected = $9, portal_check_date = $10, itc_eligible = $11,
		compliance_notes = $12, updated_at = $13
		WHERE id = $14 AND tenant_id = $15 AND deleted_at IS NULL`
	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		doc.TDSApplicable, doc.TDSRate, doc.TDSAmount, certificateStatusOrDefault(doc.TDSCertificateStatus),
		doc.TDSCertificateReceivedDate, doc.NextFollowUpDate, doc.FollowUpNotes,
		doc.GSTFiled, doc.GSTR2BReflected, doc.PortalCheckDate, doc.ITCEligible,
		doc.ComplianceNotes, doc.UpdatedAt,
		doc.ID, doc.TenantID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateCompliance: %w", err)
	}
	return affectedOrNotFound(result, domain.ErrDocumentNotFound)
}

func certificateStatusOrDefault(s domain.TDSCertificateStatus) domain.TDSCertificateStatus {
	if s == "" {
		return domain.CertificateNotApplicable
	}
	return s
}

func (r *documentRepo) UpdateStatus(ctx context.Context, tenantID, docID uuid.UUID, from, to domain.DocumentStatus) (bool, error) {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE documents SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND tenant_id = $3 AND status = $4`, to, docID, tenantID, from)
	if err != nil {
		return false, fmt.Errorf("documentRepo.UpdateStatus: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("documentRepo.UpdateStatus: %w", err)
	}
	return rows > 0, nil
}

func (r *documentRepo) SoftDelete(ctx context.Context, tenantID, docID uuid.UUID) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE documents SET deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`, docID, tenantID)
	if err != nil {
		return fmt.Errorf("documentRepo.SoftDelete: %w", err)
	}
	return affectedOrNotFound(result, domain.ErrDocumentNotFound)
}

func (r *documentRepo) Restore(ctx context.Context, tenantID, docID uuid.UUID) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE documents SET deleted_at = NULL, updated_at = NOW()
		 WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NOT NULL`, docID, tenantID)
	if err != nil {
		if isUniqueViolation(err, invoiceNumberConstraint) || isUniqueViolation(err, billNumberConstraint) {
			return domain.ErrDuplicateDocNumber
		}
		return fmt.Errorf("documentRepo.Restore: %w", err)
	}
	return affectedOrNotFound(result, domain.ErrDocumentNotDeleted)
}

func (r *documentRepo) HardDelete(ctx context.Context, tenantID, docID uuid.UUID) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		"DELETE FROM documents WHERE id = $1 AND tenant_id = $2", docID, tenantID)
	if err != nil {
		return fmt.Errorf("documentRepo.HardDelete: %w", err)
	}
	return affectedOrNotFound(result, domain.ErrDocumentNotFound)
}
