package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/retailcore/backend/internal/application/inventory"
	"github.com/shopspring/decimal"
)

// InventoryHandler handles adjustment, stock, and ledger endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateAdjustment records a manual stock correction with its ledger entry
func (h *InventoryHandler) CreateAdjustment(c *gin.Context) {
	var req inventoryapp.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = actorID(c)

	adjustment, err := h.inventoryService.CreateAdjustment(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, adjustment)
}

// VoidAdjustment voids an adjustment by appending an offsetting ledger entry
func (h *InventoryHandler) VoidAdjustment(c *gin.Context) {
	adjustmentID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid adjustment ID format")
		return
	}

	var req inventoryapp.VoidAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.VoidedBy = getUserID(c)

	adjustment, err := h.inventoryService.VoidAdjustment(c.Request.Context(), adjustmentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, adjustment)
}

// GetAdjustment retrieves an adjustment by ID
func (h *InventoryHandler) GetAdjustment(c *gin.Context) {
	adjustmentID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid adjustment ID format")
		return
	}

	adjustment, err := h.inventoryService.GetAdjustment(c.Request.Context(), adjustmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, adjustment)
}

// ListAdjustments returns adjustments with pagination
func (h *InventoryHandler) ListAdjustments(c *gin.Context) {
	filter, err := parseFilter(c, "warehouse_id", "status")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	adjustments, total, err := h.inventoryService.ListAdjustments(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, adjustments, total, filter.Page, filter.PageSize)
}

// GetOnHand returns a product's on-hand quantity, optionally scoped to a
// warehouse
func (h *InventoryHandler) GetOnHand(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	warehouseID, err := parseOptionalUUIDQuery(c, "warehouse_id")
	if err != nil {
		h.BadRequest(c, "Invalid warehouse_id format")
		return
	}

	var onHand decimal.Decimal
	if warehouseID != nil {
		onHand, err = h.inventoryService.GetOnHandInWarehouse(c.Request.Context(), productID, *warehouseID)
	} else {
		onHand, err = h.inventoryService.GetOnHand(c.Request.Context(), productID)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"product_id": productID, "on_hand": onHand})
}

// GetStockLevels returns on-hand balances per product and warehouse
func (h *InventoryHandler) GetStockLevels(c *gin.Context) {
	warehouseID, err := parseOptionalUUIDQuery(c, "warehouse_id")
	if err != nil {
		h.BadRequest(c, "Invalid warehouse_id format")
		return
	}

	levels, err := h.inventoryService.GetStockLevels(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, levels)
}

// GetLedgerHistory returns a product's ledger entries, oldest first
func (h *InventoryHandler) GetLedgerHistory(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	filter, err := parseFilter(c, "warehouse_id", "entry_type")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.inventoryService.GetLedgerHistory(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}

// GetLowStock returns active products at or below their reorder level
func (h *InventoryHandler) GetLowStock(c *gin.Context) {
	items, err := h.inventoryService.GetLowStockItems(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}
