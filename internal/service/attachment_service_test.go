package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"khata/internal/config"
	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/service"
	"khata/mocks"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

func newAttachmentService() (*mocks.MockAttachmentRepo, *mocks.MockObjectStorage, service.AttachmentService) {
	repo := new(mocks.MockAttachmentRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := &config.S3Config{Bucket: "khata-test", MaxFileSizeMB: 1, PresignExpiry: 900}
	return repo, storage, service.NewAttachmentService(repo, storage, cfg, zap.NewNop())
}

func TestAttachmentService_Upload(t *testing.T) {
	repo, storage, svc := newAttachmentService()
	tenantID := uuid.New()

	storage.On("Put", mock.Anything, mock.MatchedBy(func(in port.PutObjectInput) bool {
		return in.ContentType == "application/pdf" &&
			strings.HasPrefix(in.Key, "tenants/"+tenantID.String()+"/attachments/") &&
			strings.HasSuffix(in.Key, ".pdf")
	})).Return(nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Attachment")).Return(nil)

	att, err := svc.Upload(context.Background(), service.UploadAttachmentInput{
		TenantID: tenantID, FileName: "../../bill.pdf", Size: int64(len(pdfBytes)), Body: bytes.NewReader(pdfBytes),
	})

	require.NoError(t, err)
	assert.Equal(t, "bill.pdf", att.FileName)
	assert.Equal(t, "application/pdf", att.ContentType)
	storage.AssertExpectations(t)
}

func TestAttachmentService_Upload_Rejects(t *testing.T) {
	t.Run("too large", func(t *testing.T) {
		_, storage, svc := newAttachmentService()
		_, err := svc.Upload(context.Background(), service.UploadAttachmentInput{
			TenantID: uuid.New(), FileName: "big.pdf", Size: 2 << 20, Body: bytes.NewReader(pdfBytes),
		})
		assert.ErrorIs(t, err, domain.ErrFileTooLarge)
		storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, storage, svc := newAttachmentService()
		body := []byte("just some plain text")
		_, err := svc.Upload(context.Background(), service.UploadAttachmentInput{
			TenantID: uuid.New(), FileName: "notes.pdf", Size: int64(len(body)), Body: bytes.NewReader(body),
		})
		assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
		storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo, storage, svc := newAttachmentService()
		storage.On("Put", mock.Anything, mock.Anything).Return(errors.New("s3 unavailable"))
		_, err := svc.Upload(context.Background(), service.UploadAttachmentInput{
			TenantID: uuid.New(), FileName: "a.pdf", Size: int64(len(pdfBytes)), Body: bytes.NewReader(pdfBytes),
		})
		assert.ErrorIs(t, err, domain.ErrUploadFailed)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("metadata failure removes object", func(t *testing.T) {
		repo, storage, svc := newAttachmentService()
		storage.On("Put", mock.Anything, mock.Anything).Return(nil)
		storage.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
		_, err := svc.Upload(context.Background(), service.UploadAttachmentInput{
			TenantID: uuid.New(), FileName: "a.pdf", Size: int64(len(pdfBytes)), Body: bytes.NewReader(pdfBytes),
		})
		assert.Error(t, err)
		storage.AssertCalled(t, "Delete", mock.Anything, mock.AnythingOfType("string"))
	})
}

func TestAttachmentService_URLAndDownload(t *testing.T) {
	repo, storage, svc := newAttachmentService()
	att := &domain.Attachment{ID: uuid.New(), TenantID: uuid.New(), StorageKey: "tenants/x/attachments/y.pdf", CreatedAt: time.Now()}
	repo.On("GetByID", mock.Anything, att.TenantID, att.ID).Return(att, nil)
	storage.On("SignedURL", mock.Anything, att.StorageKey, int64(900)).Return("https://signed/y.pdf", nil)
	storage.On("Get", mock.Anything, att.StorageKey).Return(pdfBytes, nil)

	url, err := svc.URL(context.Background(), att.TenantID, att.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://signed/y.pdf", url)

	got, data, err := svc.Download(context.Background(), att.TenantID, att.ID)
	require.NoError(t, err)
	assert.Equal(t, att, got)
	assert.Equal(t, pdfBytes, data)
}

func TestAttachmentService_Delete(t *testing.T) {
	t.Run("referenced", func(t *testing.T) {
		repo, _, svc := newAttachmentService()
		att := &domain.Attachment{ID: uuid.New(), TenantID: uuid.New()}
		repo.On("GetByID", mock.Anything, att.TenantID, att.ID).Return(att, nil)
		repo.On("IsReferenced", mock.Anything, att.TenantID, att.ID).Return(true, nil)

		err := svc.Delete(context.Background(), att.TenantID, att.ID)

		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("object cleanup failure is ignored", func(t *testing.T) {
		repo, storage, svc := newAttachmentService()
		att := &domain.Attachment{ID: uuid.New(), TenantID: uuid.New(), StorageKey: "k"}
		repo.On("GetByID", mock.Anything, att.TenantID, att.ID).Return(att, nil)
		repo.On("IsReferenced", mock.Anything, att.TenantID, att.ID).Return(false, nil)
		repo.On("Delete", mock.Anything, att.TenantID, att.ID).Return(nil)
		storage.On("Delete", mock.Anything, "k").Return(errors.New("gone"))

		assert.NoError(t, svc.Delete(context.Background(), att.TenantID, att.ID))
	})
}
