package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"khata/internal/config"
	"khata/internal/domain"
	"khata/internal/logger"
	"khata/internal/port"
)

// UploadAttachmentInput is the DTO for attachment uploads.
type UploadAttachmentInput struct {
	TenantID   uuid.UUID
	UploadedBy uuid.UUID
	FileName   string
	Size       int64
	Body       io.ReadSeeker
}

// AttachmentService defines the document attachment contract.
type AttachmentService interface {
	Upload(ctx context.Context, input UploadAttachmentInput) (*domain.Attachment, error)
	GetByID(ctx context.Context, tenantID, attachmentID uuid.UUID) (*domain.Attachment, error)
	URL(ctx context.Context, tenantID, attachmentID uuid.UUID) (string, error)
	Download(ctx context.Context, tenantID, attachmentID uuid.UUID) (*domain.Attachment, []byte, error)
	Delete(ctx context.Context, tenantID, attachmentID uuid.UUID) error
}

type attachmentService struct {
	repo    port.AttachmentRepository
	storage port.ObjectStorage
	cfg     *config.S3Config
	log     *zap.Logger
}

// NewAttachmentService creates a new AttachmentService implementation.
func NewAttachmentService(repo port.AttachmentRepository, storage port.ObjectStorage, cfg *config.S3Config, log *zap.Logger) AttachmentService {
	return &attachmentService{repo: repo, storage: storage, cfg: cfg, log: log}
}

func (s *attachmentService) Upload(ctx context.Context, input UploadAttachmentInput) (*domain.Attachment, error) {
	if input.Size > s.cfg.MaxFileSizeMB*1024*1024 {
		return nil, domain.ErrFileTooLarge
	}

	// Sniff the content instead of trusting the client's header.
	buf := make([]byte, 512)
	n, err := input.Body.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	contentType := http.DetectContentType(buf[:n])
	ext, ok := domain.AllowedAttachmentTypes[contentType]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.Body.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	name := strings.TrimSpace(filepath.Base(input.FileName))
	if name == "" || name == "." || name == "/" {
		name = "attachment." + ext
	}

	att := &domain.Attachment{
		ID:          uuid.New(),
		TenantID:    input.TenantID,
		FileName:    name,
		ContentType: contentType,
		SizeBytes:   input.Size,
		UploadedBy:  input.UploadedBy,
	}
	att.StorageKey = fmt.Sprintf("tenants/%s/attachments/%s.%s", att.TenantID, att.ID, ext)

	if err := s.storage.Put(ctx, port.PutObjectInput{
		Key:         att.StorageKey,
		Body:        input.Body,
		ContentType: contentType,
		Size:        input.Size,
	}); err != nil {
		logger.FromContext(ctx, s.log).Error("attachment upload failed",
			zap.String("key", att.StorageKey), zap.Error(err))
		return nil, domain.ErrUploadFailed
	}

	if err := s.repo.Create(ctx, att); err != nil {
		s.removeObject(ctx, att.StorageKey)
		return nil, err
	}
	return att, nil
}

func (s *attachmentService) GetByID(ctx context.Context, tenantID, attachmentID uuid.UUID) (*domain.Attachment, error) {
	return s.repo.GetByID(ctx, tenantID, attachmentID)
}

func (s *attachmentService) URL(ctx context.Context, tenantID, attachmentID uuid.UUID) (string, error) {
	att, err := s.repo.GetByID(ctx, tenantID, attachmentID)
	if err != nil {
		return "", err
	}
	return s.storage.SignedURL(ctx, att.StorageKey, s.cfg.PresignExpiry)
}

func (s *attachmentService) Download(ctx context.Context, tenantID, attachmentID uuid.UUID) (*domain.Attachment, []byte, error) {
	att, err := s.repo.GetByID(ctx, tenantID, attachmentID)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.storage.Get(ctx, att.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return att, data, nil
}

// Delete removes the metadata row and then the stored object. Attachments
// still referenced by a document are kept.
func (s *attachmentService) Delete(ctx context.Context, tenantID, attachmentID uuid.UUID) error {
	att, err := s.repo.GetByID(ctx, tenantID, attachmentID)
	if err != nil {
		return err
	}
	used, err := s.repo.IsReferenced(ctx, tenantID, attachmentID)
	if err != nil {
		return err
	}
	if used {
		return domain.Validationf("attachment is still referenced by a document")
	}
	if err := s.repo.Delete(ctx, tenantID, attachmentID); err != nil {
		return err
	}
	s.removeObject(ctx, att.StorageKey)
	return nil
}

func (s *attachmentService) removeObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.FromContext(ctx, s.log).Warn("attachment cleanup failed",
			zap.String("key", key), zap.Error(err))
	}
}
