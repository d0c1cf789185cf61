package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/retailcore/backend/internal/application/trade"
	"github.com/shopspring/decimal"
)

// SalesOrderHandler handles sale API endpoints
type SalesOrderHandler struct {
	BaseHandler
	salesService *tradeapp.SalesOrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(salesService *tradeapp.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{salesService: salesService}
}

// Create opens a draft sale. Every line's unit price comes from the
// pricing chain and is snapshotted onto the sale.
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = actorID(c)
	req.ApprovedBy = actorID(c)

	sale, err := h.salesService.CreateSale(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, sale)
}

// ApplyDiscount sets the order-level discount on a draft sale
func (h *SalesOrderHandler) ApplyDiscount(c *gin.Context) {
	saleID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req struct {
		Discount decimal.Decimal `json:"discount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.salesService.ApplyDiscount(c.Request.Context(), saleID, req.Discount, actorID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// Confirm confirms a draft sale and deducts stock
func (h *SalesOrderHandler) Confirm(c *gin.Context) {
	saleID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.salesService.ConfirmSale(c.Request.Context(), saleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// Cancel cancels a sale; confirmed sales get their stock back
func (h *SalesOrderHandler) Cancel(c *gin.Context) {
	saleID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.salesService.CancelSale(c.Request.Context(), saleID, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// RecordPayment records a payment against a confirmed sale
func (h *SalesOrderHandler) RecordPayment(c *gin.Context) {
	saleID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req struct {
		Amount decimal.Decimal `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.salesService.RecordPayment(c.Request.Context(), saleID, req.Amount)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// MarkDelivered marks a confirmed sale as delivered
func (h *SalesOrderHandler) MarkDelivered(c *gin.Context) {
	saleID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.salesService.MarkDelivered(c.Request.Context(), saleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// GetByID retrieves a sale by ID
func (h *SalesOrderHandler) GetByID(c *gin.Context) {
	saleID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.salesService.GetSale(c.Request.Context(), saleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// GetByNumber retrieves a sale by its sale number
func (h *SalesOrderHandler) GetByNumber(c *gin.Context) {
	sale, err := h.salesService.GetSaleByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// List returns sales with pagination
func (h *SalesOrderHandler) List(c *gin.Context) {
	filter, err := parseFilter(c, "status", "payment_status", "warehouse_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sales, total, err := h.salesService.ListSales(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}

// ListByCustomer returns one customer's sales with pagination
func (h *SalesOrderHandler) ListByCustomer(c *gin.Context) {
	customerID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	filter, err := parseFilter(c, "status")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sales, total, err := h.salesService.ListSalesByCustomer(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}
