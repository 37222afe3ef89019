package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) CreateInvoice(ctx context.Context, input service.CreateInvoiceInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) CreateBill(ctx context.Context, input service.CreateBillInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) GetByID(ctx context.Context, tenantID uuid.UUID, docID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, tenantID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, tenantID uuid.UUID, filter port.DocumentFilter) ([]domain.Document, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentService) Update(ctx context.Context, input service.UpdateDocumentInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Transition(ctx context.Context, tenantID uuid.UUID, docID uuid.UUID, to domain.DocumentStatus) (*domain.Document, error) {
	args := m.Called(ctx, tenantID, docID, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, tenantID uuid.UUID, docID uuid.UUID, permanent bool) error {
	args := m.Called(ctx, tenantID, docID, permanent)
	return args.Error(0)
}

func (m *MockDocumentService) Restore(ctx context.Context, tenantID uuid.UUID, docID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, tenantID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) UpdateCompliance(ctx context.Context, input service.UpdateComplianceInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) NextNumber(ctx context.Context, tenantID uuid.UUID, date time.Time) (string, error) {
	args := m.Called(ctx, tenantID, date)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) RefreshStatuses(ctx context.Context, tenantID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentService) AttachmentURL(ctx context.Context, tenantID uuid.UUID, docID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID, docID)
	return args.String(0), args.Error(1)
}
