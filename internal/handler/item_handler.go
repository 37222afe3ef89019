package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"khata/internal/port"
	"khata/internal/service"
)

// ItemHandler handles the goods and services catalog.
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// Create handles POST /api/v1/items
// @Summary Create a catalog item
// @Description Type defaults to service, unit to nos and GST rate to 18.
// @Tags items
// @Accept json
// @Produce json
// @Param request body service.CreateItemInput true "Item details"
// @Success 201 {object} Response{data=domain.Item} "Item created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Name already used"
// @Security BearerAuth
// @Router /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, item)
}

// List handles GET /api/v1/items
// @Summary List catalog items
// @Tags items
// @Produce json
// @Param search query string false "Name or HSN/SAC contains"
// @Param include_inactive query bool false "Include deactivated items"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Item,meta=PagMeta} "List of items"
// @Security BearerAuth
// @Router /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	filter := port.ItemFilter{
		Search:          c.Query("search"),
		IncludeInactive: c.Query("include_inactive") == "true",
		Offset:          offset,
		Limit:           limit,
	}
	items, total, err := h.itemService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/items/:id
// @Summary Get catalog item by ID
// @Tags items
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Success 200 {object} Response{data=domain.Item} "Item details"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /items/{id} [get]
func (h *ItemHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.itemService.GetByID(c.Request.Context(), tenantID, itemID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Update handles PUT /api/v1/items/:id
// @Summary Update a catalog item
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Param request body service.UpdateItemInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Item} "Item updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Failure 409 {object} ErrorResponseBody "Name already used"
// @Security BearerAuth
// @Router /items/{id} [put]
func (h *ItemHandler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), tenantID, itemID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Delete handles DELETE /api/v1/items/:id
// @Summary Delete a catalog item
// @Description Soft-deletes the item. Invoices keep the values copied from it.
// @Tags items
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Item deleted"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), tenantID, itemID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "item deleted"})
}
