package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/service"
)

// MockAttachmentService is a mock implementation of service.AttachmentService.
type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) Upload(ctx context.Context, input service.UploadAttachmentInput) (*domain.Attachment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentService) GetByID(ctx context.Context, tenantID uuid.UUID, attachmentID uuid.UUID) (*domain.Attachment, error) {
	args := m.Called(ctx, tenantID, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentService) URL(ctx context.Context, tenantID uuid.UUID, attachmentID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID, attachmentID)
	return args.String(0), args.Error(1)
}

func (m *MockAttachmentService) Download(ctx context.Context, tenantID uuid.UUID, attachmentID uuid.UUID) (*domain.Attachment, []byte, error) {
	args := m.Called(ctx, tenantID, attachmentID)
	r1, _ := args.Get(1).([]byte)
	if args.Get(0) == nil {
		return nil, r1, args.Error(2)
	}
	return args.Get(0).(*domain.Attachment), r1, args.Error(2)
}

func (m *MockAttachmentService) Delete(ctx context.Context, tenantID uuid.UUID, attachmentID uuid.UUID) error {
	args := m.Called(ctx, tenantID, attachmentID)
	return args.Error(0)
}
