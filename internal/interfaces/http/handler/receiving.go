package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/retailcore/backend/internal/application/trade"
)

// ReceivingHandler handles receiving report and cost type endpoints
type ReceivingHandler struct {
	BaseHandler
	receivingService *tradeapp.ReceivingService
}

// NewReceivingHandler creates a new ReceivingHandler
func NewReceivingHandler(receivingService *tradeapp.ReceivingService) *ReceivingHandler {
	return &ReceivingHandler{receivingService: receivingService}
}

// CreateReport records goods received against a confirmed order. Stock,
// order progress, and product prices all move in one transaction.
func (h *ReceivingHandler) CreateReport(c *gin.Context) {
	var req tradeapp.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = actorID(c)

	report, err := h.receivingService.CreateReport(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, report)
}

// UpdateReport revises a report; the ledger receives delta entries for
// every quantity that changed
func (h *ReceivingHandler) UpdateReport(c *gin.Context) {
	reportID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	var req tradeapp.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.receivingService.UpdateReport(c.Request.Context(), reportID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// DeleteReport reverses a report's stock effect and removes it
func (h *ReceivingHandler) DeleteReport(c *gin.Context) {
	reportID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	if err := h.receivingService.DeleteReport(c.Request.Context(), reportID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// GetReport retrieves a report with its items and costs
func (h *ReceivingHandler) GetReport(c *gin.Context) {
	reportID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	report, err := h.receivingService.GetReport(c.Request.Context(), reportID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// ListReports returns reports with pagination
func (h *ReceivingHandler) ListReports(c *gin.Context) {
	filter, err := parseFilter(c, "supplier_id", "warehouse_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reports, total, err := h.receivingService.ListReports(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, reports, total, filter.Page, filter.PageSize)
}

// ListReportsByOrder returns every report filed against one order
func (h *ReceivingHandler) ListReportsByOrder(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	reports, err := h.receivingService.ListReportsByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reports)
}

// CreateCostType registers a new additional cost type
func (h *ReceivingHandler) CreateCostType(c *gin.Context) {
	var req tradeapp.CostTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	costType, err := h.receivingService.CreateCostType(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, costType)
}

// RenameCostType changes a cost type's name
func (h *ReceivingHandler) RenameCostType(c *gin.Context) {
	costTypeID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid cost type ID format")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	costType, err := h.receivingService.RenameCostType(c.Request.Context(), costTypeID, req.Name)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, costType)
}

// DeleteCostType removes a cost type no report references
func (h *ReceivingHandler) DeleteCostType(c *gin.Context) {
	costTypeID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid cost type ID format")
		return
	}

	if err := h.receivingService.DeleteCostType(c.Request.Context(), costTypeID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListCostTypes returns all cost types
func (h *ReceivingHandler) ListCostTypes(c *gin.Context) {
	costTypes, err := h.receivingService.ListCostTypes(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, costTypes)
}
