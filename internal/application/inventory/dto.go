package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateAdjustmentRequest records one manual stock correction
type CreateAdjustmentRequest struct {
	ProductID   uuid.UUID                `json:"product_id" binding:"required"`
	WarehouseID uuid.UUID                `json:"warehouse_id" binding:"required"`
	Type        inventory.AdjustmentType `json:"type" binding:"required"`
	Quantity    decimal.Decimal          `json:"quantity" binding:"required"`
	Reason      string                   `json:"reason" binding:"required"`
	CreatedBy   *uuid.UUID               `json:"-"`
}

// VoidAdjustmentRequest voids an adjustment with an offsetting ledger entry
type VoidAdjustmentRequest struct {
	Reason   string    `json:"reason" binding:"required"`
	VoidedBy uuid.UUID `json:"-"`
}

// AdjustmentResponse is an adjustment header in a response
type AdjustmentResponse struct {
	ID          uuid.UUID                  `json:"id"`
	ProductID   uuid.UUID                  `json:"product_id"`
	WarehouseID uuid.UUID                  `json:"warehouse_id"`
	Type        inventory.AdjustmentType   `json:"type"`
	Quantity    decimal.Decimal            `json:"quantity"`
	Reason      string                     `json:"reason"`
	Status      inventory.AdjustmentStatus `json:"status"`
	VoidedAt    *time.Time                 `json:"voided_at,omitempty"`
	VoidReason  string                     `json:"void_reason,omitempty"`
	CreatedAt   time.Time                  `json:"created_at"`
}

// ToAdjustmentResponse converts an adjustment to its response form
func ToAdjustmentResponse(a *inventory.InventoryAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:          a.ID,
		ProductID:   a.ProductID,
		WarehouseID: a.WarehouseID,
		Type:        a.Type,
		Quantity:    a.Quantity,
		Reason:      a.Reason,
		Status:      a.Status,
		VoidedAt:    a.VoidedAt,
		VoidReason:  a.VoidReason,
		CreatedAt:   a.CreatedAt,
	}
}

// TransferLineInput is one product line in a transfer request
type TransferLineInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateTransferRequest moves stock between two warehouses
type CreateTransferRequest struct {
	SourceID      uuid.UUID           `json:"source_id" binding:"required"`
	DestinationID uuid.UUID           `json:"destination_id" binding:"required"`
	Remark        string              `json:"remark"`
	Lines         []TransferLineInput `json:"lines" binding:"required,min=1"`
	CreatedBy     *uuid.UUID          `json:"-"`
}

// TransferItemResponse is one line of a transfer in a response
type TransferItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// TransferResponse is a transfer in a response
type TransferResponse struct {
	ID             uuid.UUID                `json:"id"`
	TransferNumber string                   `json:"transfer_number"`
	SourceID       uuid.UUID                `json:"source_id"`
	DestinationID  uuid.UUID                `json:"destination_id"`
	Status         inventory.TransferStatus `json:"status"`
	Remark         string                   `json:"remark,omitempty"`
	Items          []TransferItemResponse   `json:"items"`
	CompletedAt    *time.Time               `json:"completed_at,omitempty"`
	CancelledAt    *time.Time               `json:"cancelled_at,omitempty"`
	CancelReason   string                   `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
}

// ToTransferResponse converts a transfer to its response form
func ToTransferResponse(t *inventory.Transfer) TransferResponse {
	items := make([]TransferItemResponse, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, TransferItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return TransferResponse{
		ID:             t.ID,
		TransferNumber: t.TransferNumber,
		SourceID:       t.SourceID,
		DestinationID:  t.DestinationID,
		Status:         t.Status,
		Remark:         t.Remark,
		Items:          items,
		CompletedAt:    t.CompletedAt,
		CancelledAt:    t.CancelledAt,
		CancelReason:   t.CancelReason,
		CreatedAt:      t.CreatedAt,
	}
}

// StockLevelResponse is one product's on-hand balance in a warehouse
type StockLevelResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	OnHand      decimal.Decimal `json:"on_hand"`
}

// LowStockItem is one product at or below its reorder level
type LowStockItem struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	SKU          string          `json:"sku"`
	OnHand       decimal.Decimal `json:"on_hand"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// LedgerEntryResponse is one ledger row in a response
type LedgerEntryResponse struct {
	ID          uuid.UUID            `json:"id"`
	ProductID   uuid.UUID            `json:"product_id"`
	WarehouseID uuid.UUID            `json:"warehouse_id"`
	EntryType   inventory.EntryType  `json:"entry_type"`
	Quantity    decimal.Decimal      `json:"quantity"`
	Delta       decimal.Decimal      `json:"delta"`
	SourceType  inventory.SourceType `json:"source_type"`
	SourceID    uuid.UUID            `json:"source_id"`
	Reason      string               `json:"reason,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// ToLedgerEntryResponse converts a ledger entry to its response form
func ToLedgerEntryResponse(e *inventory.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:          e.ID,
		ProductID:   e.ProductID,
		WarehouseID: e.WarehouseID,
		EntryType:   e.EntryType,
		Quantity:    e.Quantity,
		Delta:       e.Delta,
		SourceType:  e.SourceType,
		SourceID:    e.SourceID,
		Reason:      e.Reason,
		CreatedAt:   e.CreatedAt,
	}
}
