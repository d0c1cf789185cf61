package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/retailcore/backend/internal/application/inventory"
)

// TransferHandler handles warehouse transfer endpoints
type TransferHandler struct {
	BaseHandler
	transferService *inventoryapp.TransferService
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(transferService *inventoryapp.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// Create opens a transfer and moves stock out of the source warehouse
func (h *TransferHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = actorID(c)

	transfer, err := h.transferService.CreateTransfer(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, transfer)
}

// Complete lands an in-transit transfer in the destination warehouse
func (h *TransferHandler) Complete(c *gin.Context) {
	transferID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID format")
		return
	}

	transfer, err := h.transferService.CompleteTransfer(c.Request.Context(), transferID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transfer)
}

// Cancel aborts an in-transit transfer and returns stock to the source
func (h *TransferHandler) Cancel(c *gin.Context) {
	transferID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID format")
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transfer, err := h.transferService.CancelTransfer(c.Request.Context(), transferID, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transfer)
}

// GetByID retrieves a transfer by ID
func (h *TransferHandler) GetByID(c *gin.Context) {
	transferID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID format")
		return
	}

	transfer, err := h.transferService.GetTransfer(c.Request.Context(), transferID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transfer)
}

// List returns transfers with pagination
func (h *TransferHandler) List(c *gin.Context) {
	filter, err := parseFilter(c, "status", "source_id", "destination_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transfers, total, err := h.transferService.ListTransfers(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, transfers, total, filter.Page, filter.PageSize)
}
