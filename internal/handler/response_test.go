package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"khata/internal/domain"
	"khata/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"overpayment", domain.ErrOverpayment, http.StatusBadRequest, "OVERPAYMENT", "payment amount exceeds balance due"},
		{"wrapped validation", fmt.Errorf("paymentService.Record: %w", domain.ErrNonPositiveAmount),
			http.StatusBadRequest, "VALIDATION_ERROR", "paymentService.Record: payment amount must be positive"},
		{"formatted validation", domain.Validationf("line 2: gst rate 7 is not a GST slab"),
			http.StatusBadRequest, "VALIDATION_ERROR", "line 2: gst rate 7 is not a GST slab"},
		{"not found", domain.ErrDocumentNotFound, http.StatusNotFound, "NOT_FOUND", "document not found"},
		{"conflict", domain.ErrDuplicateDocNumber, http.StatusConflict, "DUPLICATE_DOCUMENT_NUMBER", "document number already exists"},
		{"bank state", domain.ErrBankTxnNotUnmatched, http.StatusConflict, "BANK_TXN_NOT_UNMATCHED", "bank transaction is not unmatched"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"},
		{"inactive tenant", domain.ErrTenantInactive, http.StatusForbidden, "TENANT_INACTIVE", "tenant is inactive"},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests"},
		{"too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"},
		{"consistency is hidden", domain.ErrNegativeBalance, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"},
		{"unknown is hidden", errors.New("connection reset by peer"), http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
