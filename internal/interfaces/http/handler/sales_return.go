package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/retailcore/backend/internal/application/trade"
)

// SalesReturnHandler handles sale return API endpoints
type SalesReturnHandler struct {
	BaseHandler
	returnService *tradeapp.SalesReturnService
}

// NewSalesReturnHandler creates a new SalesReturnHandler
func NewSalesReturnHandler(returnService *tradeapp.SalesReturnService) *SalesReturnHandler {
	return &SalesReturnHandler{returnService: returnService}
}

// Create records a return against a confirmed sale; returned quantity
// goes straight back to stock
func (h *SalesReturnHandler) Create(c *gin.Context) {
	var req tradeapp.CreateSaleReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = actorID(c)

	saleReturn, err := h.returnService.CreateReturn(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, saleReturn)
}

// GetByID retrieves a return by ID
func (h *SalesReturnHandler) GetByID(c *gin.Context) {
	returnID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	saleReturn, err := h.returnService.GetReturn(c.Request.Context(), returnID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, saleReturn)
}

// ListBySale returns every return recorded against one sale
func (h *SalesReturnHandler) ListBySale(c *gin.Context) {
	saleID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	returns, err := h.returnService.ListReturnsBySale(c.Request.Context(), saleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, returns)
}
