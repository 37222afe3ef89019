package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/service"
)

// PartyHandler handles customer and vendor endpoints.
type PartyHandler struct {
	partyService  service.PartyService
	ledgerService service.LedgerService
}

// NewPartyHandler creates a new PartyHandler.
func NewPartyHandler(partyService service.PartyService, ledgerService service.LedgerService) *PartyHandler {
	return &PartyHandler{partyService: partyService, ledgerService: ledgerService}
}

// Create handles POST /api/v1/parties
// @Summary Create a party
// @Description Create a customer or vendor. The state code is derived from the GSTIN when omitted.
// @Tags parties
// @Accept json
// @Produce json
// @Param request body service.CreatePartyInput true "Party details"
// @Success 201 {object} Response{data=domain.Party} "Party created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Read-only role"
// @Security BearerAuth
// @Router /parties [post]
func (h *PartyHandler) Create(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input service.CreatePartyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	party, err := h.partyService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, party)
}

// List handles GET /api/v1/parties
// @Summary List parties
// @Tags parties
// @Produce json
// @Param kind query string false "customer or vendor"
// @Param search query string false "Name, GSTIN or email contains"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Party,meta=PagMeta} "List of parties"
// @Failure 400 {object} ErrorResponseBody "Invalid kind"
// @Security BearerAuth
// @Router /parties [get]
func (h *PartyHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	kind := domain.PartyKind(c.Query("kind"))
	if kind != "" && kind != domain.PartyCustomer && kind != domain.PartyVendor {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "kind must be customer or vendor")
		return
	}

	offset, limit := parsePagination(c)
	filter := port.PartyFilter{Kind: kind, Search: c.Query("search"), Offset: offset, Limit: limit}
	parties, total, err := h.partyService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, parties, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/parties/:id
// @Summary Get party by ID
// @Tags parties
// @Produce json
// @Param id path string true "Party ID (UUID)"
// @Success 200 {object} Response{data=domain.Party} "Party details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Party not found"
// @Security BearerAuth
// @Router /parties/{id} [get]
func (h *PartyHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	partyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	party, err := h.partyService.GetByID(c.Request.Context(), tenantID, partyID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, party)
}

// Update handles PUT /api/v1/parties/:id
// @Summary Update a party
// @Tags parties
// @Accept json
// @Produce json
// @Param id path string true "Party ID (UUID)"
// @Param request body service.UpdatePartyInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Party} "Party updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Party not found"
// @Security BearerAuth
// @Router /parties/{id} [put]
func (h *PartyHandler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	partyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdatePartyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	party, err := h.partyService.Update(c.Request.Context(), tenantID, partyID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, party)
}

// Delete handles DELETE /api/v1/parties/:id
// @Summary Delete a party
// @Description Soft-deletes the party. Existing documents keep referencing it.
// @Tags parties
// @Produce json
// @Param id path string true "Party ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Party deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Party not found"
// @Security BearerAuth
// @Router /parties/{id} [delete]
func (h *PartyHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	partyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.partyService.Delete(c.Request.Context(), tenantID, partyID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "party deleted"})
}

// Restore handles POST /api/v1/parties/:id/restore
// @Summary Restore a soft-deleted party
// @Tags parties
// @Produce json
// @Param id path string true "Party ID (UUID)"
// @Success 200 {object} Response{data=domain.Party} "Restored party"
// @Failure 400 {object} ErrorResponseBody "Party is not deleted"
// @Failure 404 {object} ErrorResponseBody "Party not found"
// @Security BearerAuth
// @Router /parties/{id}/restore [post]
func (h *PartyHandler) Restore(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	partyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	party, err := h.partyService.Restore(c.Request.Context(), tenantID, partyID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, party)
}

// Ledger handles GET /api/v1/parties/:id/ledger
// @Summary Party ledger statement
// @Description Chronological debits, credits and running balance. Entries before from fold into the opening balance.
// @Tags parties
// @Produce json
// @Param id path string true "Party ID (UUID)"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} Response{data=domain.LedgerStatement} "Ledger statement"
// @Failure 400 {object} ErrorResponseBody "Invalid ID or date range"
// @Failure 404 {object} ErrorResponseBody "Party not found"
// @Security BearerAuth
// @Router /parties/{id}/ledger [get]
func (h *PartyHandler) Ledger(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	partyID, ok := parseIDParam(c, "id")
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

	stmt, err := h.ledgerService.Statement(c.Request.Context(), tenantID, partyID, from, to)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stmt)
}
