package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/handler"
	"khata/internal/service"
	"khata/mocks"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(_ context.Context) error { return p.err }

func TestAttachmentHandler_Upload(t *testing.T) {
	mockSvc := new(mocks.MockAttachmentService)
	h := handler.NewAttachmentHandler(mockSvc)
	tenantID, userID := uuid.New(), uuid.New()
	content := []byte("%PDF-1.4\n%%EOF\n")

	mockSvc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadAttachmentInput) bool {
		return in.TenantID == tenantID && in.UploadedBy == userID &&
			in.FileName == "bill.pdf" && in.Size == int64(len(content))
	})).Return(&domain.Attachment{ID: uuid.New(), FileName: "bill.pdf", ContentType: "application/pdf"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/v1/attachments", "file", "bill.pdf", content, nil)
	setAuthContext(c, tenantID, userID, "accountant")

	h.Upload(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestAttachmentHandler_Upload_Errors(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{"too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"unsupported", domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"storage down", domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mocks.MockAttachmentService)
			h := handler.NewAttachmentHandler(mockSvc)
			mockSvc.On("Upload", mock.Anything, mock.Anything).Return(nil, tt.svcErr)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = multipartRequest(t, "/api/v1/attachments", "file", "x.bin", []byte("data"), nil)
			setAuthContext(c, uuid.New(), uuid.New(), "accountant")

			h.Upload(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decodeResponse(t, w).Error.Code)
		})
	}
}

func TestAttachmentHandler_Download(t *testing.T) {
	mockSvc := new(mocks.MockAttachmentService)
	h := handler.NewAttachmentHandler(mockSvc)
	tenantID, attID := uuid.New(), uuid.New()
	mockSvc.On("Download", mock.Anything, tenantID, attID).
		Return(&domain.Attachment{ID: attID, FileName: "bill.png", ContentType: "image/png"}, []byte{0x89, 'P', 'N', 'G'}, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/attachments/"+attID.String()+"/download", nil)
	c.Params = gin.Params{{Key: "id", Value: attID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "viewer")

	h.Download(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="bill.png"`, w.Header().Get("Content-Disposition"))
}

func TestHealthHandler_Readiness(t *testing.T) {
	c, w := newContext(t, http.MethodGet, "/readyz", nil)
	handler.NewHealthHandler(stubPinger{}).Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(t, http.MethodGet, "/readyz", nil)
	handler.NewHealthHandler(stubPinger{err: errors.New("dial tcp: refused")}).Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
