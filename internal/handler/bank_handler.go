package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/service"
)

// maxStatementBytes caps an uploaded bank statement.
const maxStatementBytes = 10 << 20

// BankHandler handles statement import and reconciliation endpoints.
type BankHandler struct {
	bankService service.BankService
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankService service.BankService) *BankHandler {
	return &BankHandler{bankService: bankService}
}

// Import handles POST /api/v1/bank/import
// @Summary Import a bank statement
// @Description Upload a statement CSV. Rows already imported are skipped; a malformed row rejects the whole file.
// @Tags bank
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Statement CSV"
// @Param account_label formData string false "Account label, e.g. HDFC Current"
// @Success 201 {object} Response{data=domain.ImportResult} "Import summary"
// @Failure 400 {object} ErrorResponseBody "Missing file or malformed statement"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /bank/import [post]
func (h *BankHandler) Import(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxStatementBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	label := strings.TrimSpace(c.PostForm("account_label"))
	if label == "" {
		label = strings.TrimSpace(c.PostForm("accountLabel"))
	}

	result, err := h.bankService.Import(c.Request.Context(), tenantID, label, file)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// List handles GET /api/v1/bank/transactions
// @Summary List bank transactions
// @Tags bank
// @Produce json
// @Param status query string false "unmatched, matched or ignored"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.BankTransaction,meta=PagMeta} "List of transactions"
// @Failure 400 {object} ErrorResponseBody "Invalid status"
// @Security BearerAuth
// @Router /bank/transactions [get]
func (h *BankHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	status := domain.BankTxnStatus(c.Query("status"))
	switch status {
	case "", domain.BankTxnUnmatched, domain.BankTxnMatched, domain.BankTxnIgnored:
	default:
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "status must be unmatched, matched or ignored")
		return
	}

	offset, limit := parsePagination(c)
	txns, total, err := h.bankService.List(c.Request.Context(), tenantID, port.BankTxnFilter{
		Status: status, Offset: offset, Limit: limit,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, txns, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Suggestions handles GET /api/v1/bank/suggestions
// @Summary Match suggestions
// @Description Up to three scored open invoices for each recent unmatched credit.
// @Tags bank
// @Produce json
// @Success 200 {object} Response{data=[]domain.MatchSuggestion} "Suggestions"
// @Security BearerAuth
// @Router /bank/suggestions [get]
func (h *BankHandler) Suggestions(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	suggestions, err := h.bankService.Suggest(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, suggestions)
}

// Match handles POST /api/v1/bank/transactions/:id/match
// @Summary Match a credit to an invoice
// @Description Records a payment against the invoice and marks the transaction matched. Amount defaults to the smaller of the credit and the balance due.
// @Tags bank
// @Accept json
// @Produce json
// @Param id path string true "Bank transaction ID (UUID)"
// @Param request body MatchRequest true "Invoice and optional overrides"
// @Success 201 {object} Response{data=domain.Payment} "Payment created by the match"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Transaction or document not found"
// @Failure 409 {object} ErrorResponseBody "Transaction is not unmatched"
// @Security BearerAuth
// @Router /bank/transactions/{id}/match [post]
func (h *BankHandler) Match(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	txnID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	payment, err := h.bankService.Match(c.Request.Context(), service.MatchInput{
		TenantID:    tenantID,
		TxnID:       txnID,
		DocumentID:  req.DocumentID,
		Amount:      req.Amount,
		PaymentDate: optionalDate(req.PaymentDate),
		Mode:        req.Mode,
		CreatedBy:   userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, payment)
}

// Ignore handles POST /api/v1/bank/transactions/:id/ignore
// @Summary Ignore a transaction
// @Tags bank
// @Produce json
// @Param id path string true "Bank transaction ID (UUID)"
// @Success 200 {object} Response{data=domain.BankTransaction} "Ignored transaction"
// @Failure 404 {object} ErrorResponseBody "Transaction not found"
// @Failure 409 {object} ErrorResponseBody "Transaction is not unmatched"
// @Security BearerAuth
// @Router /bank/transactions/{id}/ignore [post]
func (h *BankHandler) Ignore(c *gin.Context) {
	h.toggle(c, h.bankService.Ignore)
}

// Unignore handles POST /api/v1/bank/transactions/:id/unignore
// @Summary Return an ignored transaction to unmatched
// @Tags bank
// @Produce json
// @Param id path string true "Bank transaction ID (UUID)"
// @Success 200 {object} Response{data=domain.BankTransaction} "Unmatched transaction"
// @Failure 404 {object} ErrorResponseBody "Transaction not found"
// @Failure 409 {object} ErrorResponseBody "Transaction is not ignored"
// @Security BearerAuth
// @Router /bank/transactions/{id}/unignore [post]
func (h *BankHandler) Unignore(c *gin.Context) {
	h.toggle(c, h.bankService.Unignore)
}

func (h *BankHandler) toggle(c *gin.Context, fn func(ctx context.Context, tenantID, txnID uuid.UUID) (*domain.BankTransaction, error)) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	txnID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	txn, err := fn(c.Request.Context(), tenantID, txnID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, txn)
}
