package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"khata/internal/service"
)

// TenantHandler serves the caller's own tenant profile and invoice settings.
type TenantHandler struct {
	tenantService service.TenantService
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(tenantService service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Get handles GET /api/v1/tenant
// @Summary Get the current tenant
// @Tags tenant
// @Produce json
// @Success 200 {object} Response{data=domain.Tenant} "Tenant details"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /tenant [get]
func (h *TenantHandler) Get(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetByID(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tenant)
}

// Update handles PATCH /api/v1/tenant
// @Summary Update the current tenant
// @Description Update profile, bank details and invoice numbering (admin only). The invoice counter can only move forward.
// @Tags tenant
// @Accept json
// @Produce json
// @Param request body service.UpdateTenantInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Tenant} "Tenant updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Security BearerAuth
// @Router /tenant [patch]
func (h *TenantHandler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input service.UpdateTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tenant)
}
