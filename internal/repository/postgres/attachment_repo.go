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

type attachmentRepo struct {
	db *sqlx.DB
}

// NewAttachmentRepo creates a new PostgreSQL-backed AttachmentRepository.
func NewAttachmentRepo(db *sqlx.DB) port.AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) Create(ctx context.Context, att *domain.Attachment) error {
	if att.ID == uuid.Nil {
		att.ID = uuid.New()
	}
	att.CreatedAt = time.Now().UTC()

	query := `INSERT INTO attachments
		(id, tenant_id, file_name, content_type, size_bytes, storage_key, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		att.ID, att.TenantID, att.FileName, att.ContentType, att.SizeBytes,
		att.StorageKey, att.UploadedBy, att.CreatedAt)
	if err != nil {
		return fmt.Errorf("attachmentRepo.Create: %w", err)
	}
	return nil
}

func (r *attachmentRepo) GetByID(ctx context.Context, tenantID, attachmentID uuid.UUID) (*domain.Attachment, error) {
	var att domain.Attachment
	err := conn(ctx, r.db).GetContext(ctx, &att,
		"SELECT * FROM attachments WHERE id = $1 AND tenant_id = $2", attachmentID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("attachmentRepo.GetByID: %w", err)
	}
	return &att, nil
}

func (r *attachmentRepo) Delete(ctx context.Context, tenantID, attachmentID uuid.UUID) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		"DELETE FROM attachments WHERE id = $1 AND tenant_id = $2", attachmentID, tenantID)
	if err != nil {
		return fmt.Errorf("attachmentRepo.Delete: %w", err)
	}
	return affectedOrNotFound(result, domain.ErrAttachmentNotFound)
}

func (r *attachmentRepo) IsReferenced(ctx context.Context, tenantID, attachmentID uuid.UUID) (bool, error) {
	var referenced bool
	err := conn(ctx, r.db).GetContext(ctx, &referenced,
		"SELECT EXISTS (SELECT 1 FROM documents WHERE tenant_id = $1 AND attachment_id = $2)",
		tenantID, attachmentID)
	if err != nil {
		return false, fmt.Errorf("attachmentRepo.IsReferenced: %w", err)
	}
	return referenced, nil
}
