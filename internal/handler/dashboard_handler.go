package handler

import (
	"github.com/gin-gonic/gin"

	"khata/internal/service"
)

// DashboardHandler serves the tenant summary.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get handles GET /api/v1/dashboard
// @Summary Dashboard
// @Description Receivables, payables, overdue invoices, this month's cash movement and unmatched bank credits.
// @Tags dashboard
// @Produce json
// @Success 200 {object} Response{data=domain.Dashboard} "Dashboard"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.Get(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// Reminders handles GET /api/v1/dashboard/reminders
// @Summary Reminders
// @Description Overdue invoices and bills, TDS certificates still outstanding, follow-ups due within a week, unmatched bank credits and bills not yet filed.
// @Tags dashboard
// @Produce json
// @Success 200 {object} Response{data=domain.Reminders} "Reminders"
// @Security BearerAuth
// @Router /dashboard/reminders [get]
func (h *DashboardHandler) Reminders(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	rem, err := h.dashboardService.Reminders(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rem)
}
