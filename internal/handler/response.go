package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"khata/internal/domain"
	"khata/internal/logger"
	"khata/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// specificCodes gives the errors clients commonly branch on their own code.
var specificCodes = []struct {
	err  error
	code string
}{
	{domain.ErrOverpayment, "OVERPAYMENT"},
	{domain.ErrDocumentNotPayable, "DOCUMENT_NOT_PAYABLE"},
	{domain.ErrInvalidStatus, "INVALID_STATUS_TRANSITION"},
	{domain.ErrDocumentHasPayments, "DOCUMENT_HAS_PAYMENTS"},
	{domain.ErrDocumentNotEditable, "DOCUMENT_NOT_EDITABLE"},
	{domain.ErrUnsupportedFileType, "UNSUPPORTED_FILE_TYPE"},
	{domain.ErrInvalidDateRange, "INVALID_DATE_RANGE"},
	{domain.ErrDuplicateEmail, "DUPLICATE_EMAIL"},
	{domain.ErrDuplicateTenantSlug, "DUPLICATE_SLUG"},
	{domain.ErrDuplicateDocNumber, "DUPLICATE_DOCUMENT_NUMBER"},
	{domain.ErrBankTxnNotUnmatched, "BANK_TXN_NOT_UNMATCHED"},
	{domain.ErrBankTxnNotIgnored, "BANK_TXN_NOT_IGNORED"},
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Validation, not-found and conflict messages are safe to show and pass through.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrTenantInactive):
		return http.StatusForbidden, "TENANT_INACTIVE", "tenant is inactive"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "RATE_LIMITED", "too many requests"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error()
	}

	code = kindCode(err)
	for _, sc := range specificCodes {
		if errors.Is(err, sc.err) {
			code = sc.code
			break
		}
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, code, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, code, err.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, code, err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

func kindCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, domain.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return "CONFLICT"
	}
	return "INTERNAL_ERROR"
}

// extractAuthContext extracts tenant ID, user ID, and role from the request context.
// Returns false if auth context is missing (error response already written).
func extractAuthContext(c *gin.Context) (tenantID, userID uuid.UUID, role domain.UserRole, ok bool) {
	var err error
	tenantID, err = middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return uuid.Nil, uuid.Nil, "", false
	}
	userID, err = middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, uuid.Nil, "", false
	}
	role = domain.UserRole(middleware.GetRole(c))
	return tenantID, userID, role, true
}

// tenantFromContext is extractAuthContext for handlers that only need the tenant.
func tenantFromContext(c *gin.Context) (uuid.UUID, bool) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return uuid.Nil, false
	}
	return tenantID, true
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		logger.FromGin(c).Error("internal error", zap.Error(err))
	}
	RespondError(c, status, code, msg)
}

// parseIDParam parses the named path parameter as a UUID, writing a 400 on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination reads offset and limit query params with defaults and a cap.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}

// parseDateQuery reads an optional YYYY-MM-DD query param.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", name+" must be a date in YYYY-MM-DD format")
		return nil, false
	}
	return &t, true
}

// parseOptionalUUIDQuery reads an optional UUID query param.
func parseOptionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name)
		return nil, false
	}
	return &id, true
}
