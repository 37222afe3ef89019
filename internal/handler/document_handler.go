package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/service"
)

const dateLayout = "2006-01-02"

// DocumentHandler handles invoice and vendor bill endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// CreateInvoice handles POST /api/v1/invoices
// @Summary Create an invoice
// @Description Create a sales invoice as draft, or issue it straight away. Taxes are split CGST/SGST or IGST from the place of supply.
// @Tags documents
// @Accept json
// @Produce json
// @Param request body CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} Response{data=domain.Document} "Invoice created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Customer not found"
// @Failure 409 {object} ErrorResponseBody "Number already used"
// @Security BearerAuth
// @Router /invoices [post]
func (h *DocumentHandler) CreateInvoice(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	invoiceDate, _ := time.Parse(dateLayout, req.InvoiceDate)

	input := service.CreateInvoiceInput{
		TenantID:      tenantID,
		CustomerID:    req.CustomerID,
		DocumentDate:  invoiceDate,
		DueDate:       optionalDate(&req.DueDate),
		PlaceOfSupply: req.PlaceOfSupply,
		Issue:         req.Issue,
		Notes:         req.Notes,
		TDSApplicable: req.TDSApplicable,
		TDSSection:    req.TDSSection,
		TDSRate:       req.TDSRate,
		AttachmentID:  req.AttachmentID,
		Lines:         lineInputs(req.Lines),
		CreatedBy:     userID,
	}

	doc, err := h.documentService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// CreateBill handles POST /api/v1/bills
// @Summary Record a vendor bill
// @Description Record a purchase bill under the vendor's own number. TDS defaults from the vendor.
// @Tags documents
// @Accept json
// @Produce json
// @Param request body CreateBillRequest true "Bill details"
// @Success 201 {object} Response{data=domain.Document} "Bill created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Vendor not found"
// @Failure 409 {object} ErrorResponseBody "Bill number already recorded for this vendor"
// @Security BearerAuth
// @Router /bills [post]
func (h *DocumentHandler) CreateBill(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	billDate, _ := time.Parse(dateLayout, req.BillDate)

	input := service.CreateBillInput{
		TenantID:      tenantID,
		VendorID:      req.VendorID,
		BillNumber:    req.BillNumber,
		BillDate:      billDate,
		DueDate:       optionalDate(&req.DueDate),
		ITCEligible:   req.ITCEligible,
		TDSApplicable: req.TDSApplicable,
		TDSSection:    req.TDSSection,
		TDSRate:       req.TDSRate,
		Notes:         req.Notes,
		AttachmentID:  req.AttachmentID,
		Lines:         lineInputs(req.Lines),
		CreatedBy:     userID,
	}

	doc, err := h.documentService.CreateBill(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// List handles GET /api/v1/documents
// @Summary List invoices and bills
// @Description Statuses are re-derived on read, so overdue documents show as overdue.
// @Tags documents
// @Produce json
// @Param kind query string false "sales or purchase"
// @Param status query string false "Document status"
// @Param party_id query string false "Party ID (UUID)"
// @Param from query string false "Document date from (YYYY-MM-DD)"
// @Param to query string false "Document date to (YYYY-MM-DD)"
// @Param search query string false "Number or notes contains"
// @Param deleted query bool false "List soft-deleted documents instead"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Document,meta=PagMeta} "List of documents"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Security BearerAuth
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	kind := domain.DocumentKind(c.Query("kind"))
	if kind != "" && kind != domain.DocumentSales && kind != domain.DocumentPurchase {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "kind must be sales or purchase")
		return
	}
	partyID, ok := parseOptionalUUIDQuery(c, "party_id")
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
	filter := port.DocumentFilter{
		Kind:    kind,
		Status:  domain.DocumentStatus(c.Query("status")),
		PartyID: partyID,
		From:    from,
		To:      to,
		Search:  c.Query("search"),
		Deleted: c.Query("deleted") == "true",
		Offset:  offset,
		Limit:   limit,
	}

	docs, total, err := h.documentService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/documents/:id
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=domain.Document} "Document with line items"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Update handles PUT /api/v1/documents/:id
// @Summary Update a document
// @Description Only documents without payments in draft, sent or pending may be edited. Lines are replaced and totals recomputed.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param request body UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.Document} "Document updated"
// @Failure 400 {object} ErrorResponseBody "Validation error or not editable"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	input := service.UpdateDocumentInput{
		TenantID:       tenantID,
		DocumentID:     docID,
		DocumentNumber: req.DocumentNumber,
		DocumentDate:   optionalDate(req.DocumentDate),
		DueDate:        optionalDate(req.DueDate),
		PlaceOfSupply:  req.PlaceOfSupply,
		Notes:          req.Notes,
		ITCEligible:    req.ITCEligible,
		TDSApplicable:  req.TDSApplicable,
		TDSSection:     req.TDSSection,
		TDSRate:        req.TDSRate,
		AttachmentID:   req.AttachmentID,
		Lines:          lineInputs(req.Lines),
	}

	doc, err := h.documentService.Update(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// UpdateCompliance handles PATCH /api/v1/documents/:id/compliance
// @Summary Update compliance fields
// @Description Invoices carry TDS certificate tracking and follow-ups; vendor bills carry GST filing checks. Allowed in every status.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param request body UpdateComplianceRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.Document} "Document updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id}/compliance [patch]
func (h *DocumentHandler) UpdateCompliance(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateComplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	input := service.UpdateComplianceInput{
		TenantID:             tenantID,
		DocumentID:           docID,
		TDSApplicable:        req.TDSApplicable,
		TDSRate:              req.TDSRate,
		TDSCertificateStatus: req.TDSCertificateStatus,
		FollowUpNotes:        req.FollowUpNotes,
		GSTFiled:             req.GSTFiled,
		GSTR2BReflected:      req.GSTR2BReflected,
		ITCEligible:          req.ITCEligible,
		ComplianceNotes:      req.ComplianceNotes,
	}
	dates := []struct {
		name string
		raw  *string
		dst  **service.NullableDate
	}{
		{"tds_certificate_received_date", req.TDSCertificateReceivedDate, &input.TDSCertificateReceivedDate},
		{"next_follow_up_date", req.NextFollowUpDate, &input.NextFollowUpDate},
		{"portal_check_date", req.PortalCheckDate, &input.PortalCheckDate},
	}
	for _, d := range dates {
		v, err := nullableDate(d.raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", d.name+" must be YYYY-MM-DD")
			return
		}
		*d.dst = v
	}

	doc, err := h.documentService.UpdateCompliance(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Delete handles DELETE /api/v1/documents/:id
// @Summary Delete a document
// @Description Soft-deletes by default. permanent=true removes a document that never had payments.
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param permanent query bool false "Hard delete"
// @Success 200 {object} Response{data=MessageResponse} "Document deleted"
// @Failure 400 {object} ErrorResponseBody "Document has payment history"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	permanent := c.Query("permanent") == "true"
	if err := h.documentService.Delete(c.Request.Context(), tenantID, docID, permanent); err != nil {
		HandleError(c, err)
		return
	}

	msg := "document deleted"
	if permanent {
		msg = "document permanently deleted"
	}
	RespondOK(c, gin.H{"message": msg})
}

// Transition handles POST /api/v1/documents/:id/status
// @Summary Change document status
// @Description Issue a draft, cancel a document without payments, or reopen a cancelled one.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param request body TransitionRequest true "Target status"
// @Success 200 {object} Response{data=domain.Document} "Document after transition"
// @Failure 400 {object} ErrorResponseBody "Transition not allowed"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id}/status [post]
func (h *DocumentHandler) Transition(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	doc, err := h.documentService.Transition(c.Request.Context(), tenantID, docID, req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Restore handles POST /api/v1/documents/:id/restore
// @Summary Restore a soft-deleted document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=domain.Document} "Restored document"
// @Failure 400 {object} ErrorResponseBody "Document is not deleted"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id}/restore [post]
func (h *DocumentHandler) Restore(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.Restore(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// AttachmentURL handles GET /api/v1/documents/:id/attachment
// @Summary Signed URL of the document's attachment
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=SignedURLResponse} "Signed URL"
// @Failure 404 {object} ErrorResponseBody "Document or attachment not found"
// @Security BearerAuth
// @Router /documents/{id}/attachment [get]
func (h *DocumentHandler) AttachmentURL(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	url, err := h.documentService.AttachmentURL(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, SignedURLResponse{URL: url})
}

func lineInputs(lines []LineItemRequest) []service.LineItemInput {
	if len(lines) == 0 {
		return nil
	}
	out := make([]service.LineItemInput, len(lines))
	for i, l := range lines {
		out[i] = service.LineItemInput{
			Description:   l.Description,
			HSNSAC:        l.HSNSAC,
			Unit:          l.Unit,
			Quantity:      l.Quantity,
			Rate:          l.Rate,
			GSTRate:       l.GSTRate,
			DiscountType:  l.DiscountType,
			DiscountValue: l.DiscountValue,
		}
	}
	return out
}

// optionalDate parses a date already checked by the datetime binding.
func optionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

// nullableDate maps an absent field to nil and an empty one to a clear.
func nullableDate(s *string) (*service.NullableDate, error) {
	if s == nil {
		return nil, nil
	}
	if *s == "" {
		return &service.NullableDate{}, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &service.NullableDate{Time: &t}, nil
}
