package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/service"
)

// PaymentHandler handles payment endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Record handles POST /api/v1/payments
// @Summary Record a payment
// @Description Record money received against an invoice or paid against a bill. Without a document_id the payment is standalone and party_id is required.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body RecordPaymentRequest true "Payment details"
// @Success 201 {object} Response{data=domain.Payment} "Payment recorded"
// @Failure 400 {object} ErrorResponseBody "Validation error, overpayment or document not payable"
// @Failure 404 {object} ErrorResponseBody "Document or party not found"
// @Security BearerAuth
// @Router /payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	paymentDate, _ := time.Parse(dateLayout, req.PaymentDate)

	payment, err := h.paymentService.Record(c.Request.Context(), service.RecordPaymentInput{
		TenantID:    tenantID,
		DocumentID:  req.DocumentID,
		PartyID:     req.PartyID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Mode:        req.Mode,
		Reference:   req.Reference,
		Notes:       req.Notes,
		CreatedBy:   userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, payment)
}

// List handles GET /api/v1/payments
// @Summary List payments
// @Tags payments
// @Produce json
// @Param direction query string false "received or made"
// @Param party_id query string false "Party ID (UUID)"
// @Param document_id query string false "Document ID (UUID)"
// @Param from query string false "Payment date from (YYYY-MM-DD)"
// @Param to query string false "Payment date to (YYYY-MM-DD)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Payment,meta=PagMeta} "List of payments"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Security BearerAuth
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	direction := domain.PaymentDirection(c.Query("direction"))
	if direction != "" && direction != domain.PaymentReceived && direction != domain.PaymentMade {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "direction must be received or made")
		return
	}
	partyID, ok := parseOptionalUUIDQuery(c, "party_id")
	if !ok {
		return
	}
	documentID, ok := parseOptionalUUIDQuery(c, "document_id")
	if !ok {
		return
	}
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	payments, total, err := h.paymentService.List(c.Request.Context(), tenantID, port.PaymentFilter{
		Direction:  direction,
		PartyID:    partyID,
		DocumentID: documentID,
		From:       from,
		To:         to,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, payments, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/payments/:id
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID (UUID)"
// @Success 200 {object} Response{data=domain.Payment} "Payment details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Payment not found"
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), tenantID, paymentID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payment)
}

// Delete handles DELETE /api/v1/payments/:id
// @Summary Delete a payment
// @Description Reverses the payment on its document and returns any matched bank transaction to unmatched.
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Payment deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Payment not found"
// @Security BearerAuth
// @Router /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), tenantID, paymentID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "payment deleted"})
}
