package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"khata/internal/domain"
	"khata/internal/export"
	"khata/internal/report"
	"khata/internal/service"
	"khata/internal/timeutil"
)

// ReportHandler handles report and backup endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Aging handles GET /api/v1/reports/aging
// @Summary Outstanding aging
// @Description Receivables (kind=sales) or payables (kind=purchase) bucketed by days past due.
// @Tags reports
// @Produce json,text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param kind query string false "sales (default) or purchase"
// @Param format query string false "json (default), csv or xlsx"
// @Success 200 {object} Response{data=report.AgingReport} "Aging report"
// @Failure 400 {object} ErrorResponseBody "Invalid kind or format"
// @Security BearerAuth
// @Router /reports/aging [get]
func (h *ReportHandler) Aging(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	format, ok := parseFormat(c)
	if !ok {
		return
	}

	kind := domain.DocumentKind(c.DefaultQuery("kind", string(domain.DocumentSales)))
	rep, err := h.reportService.Aging(c.Request.Context(), tenantID, kind)
	if err != nil {
		HandleError(c, err)
		return
	}

	respondReport(c, format, rep, rep.Table())
}

// TDS handles GET /api/v1/reports/tds
// @Summary TDS register
// @Tags reports
// @Produce json,text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param format query string false "json (default), csv or xlsx"
// @Success 200 {object} Response{data=[]report.TDSRow} "TDS register"
// @Failure 400 {object} ErrorResponseBody "Invalid range or format"
// @Security BearerAuth
// @Router /reports/tds [get]
func (h *ReportHandler) TDS(c *gin.Context) {
	tenantID, format, rng, ok := reportParams(c)
	if !ok {
		return
	}

	rows, err := h.reportService.TDSRegister(c.Request.Context(), tenantID, rng)
	if err != nil {
		HandleError(c, err)
		return
	}

	respondReport(c, format, rows, report.TDSTable(rows))
}

// SalesSummary handles GET /api/v1/reports/sales-summary
// @Summary Monthly sales summary
// @Tags reports
// @Produce json,text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param format query string false "json (default), csv or xlsx"
// @Success 200 {object} Response{data=[]report.MonthSummary} "Sales summary"
// @Failure 400 {object} ErrorResponseBody "Invalid range or format"
// @Security BearerAuth
// @Router /reports/sales-summary [get]
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	tenantID, format, rng, ok := reportParams(c)
	if !ok {
		return
	}

	rows, err := h.reportService.SalesSummary(c.Request.Context(), tenantID, rng)
	if err != nil {
		HandleError(c, err)
		return
	}

	respondReport(c, format, rows, report.SalesSummaryTable(rows))
}

// GSTRegister handles GET /api/v1/reports/gst-register
// @Summary Vendor GST register
// @Tags reports
// @Produce json,text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param format query string false "json (default), csv or xlsx"
// @Success 200 {object} Response{data=[]report.GSTRegisterRow} "GST register"
// @Failure 400 {object} ErrorResponseBody "Invalid range or format"
// @Security BearerAuth
// @Router /reports/gst-register [get]
func (h *ReportHandler) GSTRegister(c *gin.Context) {
	tenantID, format, rng, ok := reportParams(c)
	if !ok {
		return
	}

	rows, err := h.reportService.GSTRegister(c.Request.Context(), tenantID, rng)
	if err != nil {
		HandleError(c, err)
		return
	}

	respondReport(c, format, rows, report.GSTRegisterTable(rows))
}

// Backup handles GET /api/v1/reports/backup
// @Summary Data backup
// @Description ZIP of customers, vendors, invoices, bills and payments as CSV.
// @Tags reports
// @Produce application/zip
// @Success 200 {file} file "ZIP archive"
// @Security BearerAuth
// @Router /reports/backup [get]
func (h *ReportHandler) Backup(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.Backup(c.Request.Context(), tenantID, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("khata_backup", timeutil.Today(), "zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

func parseFormat(c *gin.Context) (export.Format, bool) {
	format, ok := export.ParseFormat(c.Query("format"))
	if !ok {
		HandleError(c, domain.ErrUnsupportedFormat)
		return "", false
	}
	return format, true
}

func reportParams(c *gin.Context) (tenantID uuid.UUID, format export.Format, rng service.DateRange, ok bool) {
	tenantID, ok = tenantFromContext(c)
	if !ok {
		return
	}
	if format, ok = parseFormat(c); !ok {
		return
	}
	if rng.From, ok = parseDateQuery(c, "from"); !ok {
		return
	}
	rng.To, ok = parseDateQuery(c, "to")
	return
}

// respondReport sends data as JSON or renders table as a CSV or XLSX download.
func respondReport(c *gin.Context, format export.Format, data interface{}, table *export.Table) {
	if format == export.FormatJSON {
		RespondOK(c, data)
		return
	}

	var buf bytes.Buffer
	var err error
	ext := string(format)
	switch format {
	case export.FormatCSV:
		err = export.WriteCSV(&buf, table)
	case export.FormatXLSX:
		err = export.WriteXLSX(&buf, table)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(table.Name, timeutil.Today(), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
