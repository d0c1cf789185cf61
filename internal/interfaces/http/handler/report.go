package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	reportapp "github.com/retailcore/backend/internal/application/report"
	"github.com/retailcore/backend/internal/domain/report"
)

// ReportHandler handles reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SalesSummary returns aggregate sales figures for a period
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	from, to, err := parseTimeRange(c)
	if err != nil {
		h.BadRequest(c, "Invalid from/to timestamp")
		return
	}

	summary, err := h.reportService.GetSalesSummary(c.Request.Context(), from, to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// SalesTotals returns per-period sales totals bucketed daily, monthly,
// or yearly
func (h *ReportHandler) SalesTotals(c *gin.Context) {
	from, to, err := parseTimeRange(c)
	if err != nil {
		h.BadRequest(c, "Invalid from/to timestamp")
		return
	}

	grouping := report.SalesGrouping(c.DefaultQuery("grouping", string(report.SalesGroupingDaily)))

	totals, err := h.reportService.GetSalesTotals(c.Request.Context(), from, to, grouping)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, totals)
}

// TopProducts ranks products by sales amount in a period
func (h *ReportHandler) TopProducts(c *gin.Context) {
	from, to, err := parseTimeRange(c)
	if err != nil {
		h.BadRequest(c, "Invalid from/to timestamp")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rankings, err := h.reportService.GetTopProducts(c.Request.Context(), from, to, limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rankings)
}

// TopCustomers ranks identified customers by sales amount in a period
func (h *ReportHandler) TopCustomers(c *gin.Context) {
	from, to, err := parseTimeRange(c)
	if err != nil {
		h.BadRequest(c, "Invalid from/to timestamp")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rankings, err := h.reportService.GetTopCustomers(c.Request.Context(), from, to, limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rankings)
}

// StockMovements summarizes per-product stock movement in a period
func (h *ReportHandler) StockMovements(c *gin.Context) {
	from, to, err := parseTimeRange(c)
	if err != nil {
		h.BadRequest(c, "Invalid from/to timestamp")
		return
	}

	warehouseID, err := parseOptionalUUIDQuery(c, "warehouse_id")
	if err != nil {
		h.BadRequest(c, "Invalid warehouse_id format")
		return
	}

	movements, err := h.reportService.GetStockMovementSummary(c.Request.Context(), from, to, warehouseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, movements)
}

// StockValuation values current stock at product cost price
func (h *ReportHandler) StockValuation(c *gin.Context) {
	warehouseID, err := parseOptionalUUIDQuery(c, "warehouse_id")
	if err != nil {
		h.BadRequest(c, "Invalid warehouse_id format")
		return
	}

	valuations, err := h.reportService.GetStockValuation(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, valuations)
}

// ReorderAlerts lists active products at or below their reorder level
func (h *ReportHandler) ReorderAlerts(c *gin.Context) {
	alerts, err := h.reportService.GetReorderAlerts(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, alerts)
}
