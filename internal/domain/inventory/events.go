package inventory

import (
	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	AdjustmentAggregateType = "InventoryAdjustment"
	TransferAggregateType   = "Transfer"

	AdjustmentCreatedEventType = "inventory.adjustment.created"
	AdjustmentVoidedEventType  = "inventory.adjustment.voided"
	TransferCreatedEventType   = "inventory.transfer.created"
	TransferCompletedEventType = "inventory.transfer.completed"
	TransferCancelledEventType = "inventory.transfer.cancelled"
	StockBelowReorderEventType = "inventory.stock.below_reorder"
)

// AdjustmentCreatedEvent is raised when a stock adjustment is recorded
type AdjustmentCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	Type        AdjustmentType  `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
}

// NewAdjustmentCreatedEvent creates a new AdjustmentCreatedEvent
func NewAdjustmentCreatedEvent(a *InventoryAdjustment) *AdjustmentCreatedEvent {
	return &AdjustmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(AdjustmentCreatedEventType, AdjustmentAggregateType, a.ID),
		ProductID:       a.ProductID,
		WarehouseID:     a.WarehouseID,
		Type:            a.Type,
		Quantity:        a.Quantity,
		Reason:          a.Reason,
	}
}

// AdjustmentVoidedEvent is raised when an adjustment is voided
type AdjustmentVoidedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	VoidReason  string    `json:"void_reason"`
}

// NewAdjustmentVoidedEvent creates a new AdjustmentVoidedEvent
func NewAdjustmentVoidedEvent(a *InventoryAdjustment) *AdjustmentVoidedEvent {
	return &AdjustmentVoidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(AdjustmentVoidedEventType, AdjustmentAggregateType, a.ID),
		ProductID:       a.ProductID,
		WarehouseID:     a.WarehouseID,
		VoidReason:      a.VoidReason,
	}
}

// StockBelowReorderEvent is raised when a stock-decreasing operation leaves a
// product at or below its reorder level
type StockBelowReorderEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID       `json:"product_id"`
	WarehouseID  uuid.UUID       `json:"warehouse_id"`
	OnHand       decimal.Decimal `json:"on_hand"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// NewStockBelowReorderEvent creates a new StockBelowReorderEvent
func NewStockBelowReorderEvent(productID, warehouseID uuid.UUID, onHand, reorderLevel decimal.Decimal) *StockBelowReorderEvent {
	return &StockBelowReorderEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(StockBelowReorderEventType, "Product", productID),
		ProductID:       productID,
		WarehouseID:     warehouseID,
		OnHand:          onHand,
		ReorderLevel:    reorderLevel,
	}
}

// TransferCreatedEvent is raised when a warehouse transfer is created
type TransferCreatedEvent struct {
	shared.BaseDomainEvent
	TransferNumber string    `json:"transfer_number"`
	SourceID       uuid.UUID `json:"source_id"`
	DestinationID  uuid.UUID `json:"destination_id"`
	ItemCount      int       `json:"item_count"`
}

// NewTransferCreatedEvent creates a new TransferCreatedEvent
func NewTransferCreatedEvent(t *Transfer) *TransferCreatedEvent {
	return &TransferCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(TransferCreatedEventType, TransferAggregateType, t.ID),
		TransferNumber:  t.TransferNumber,
		SourceID:        t.SourceID,
		DestinationID:   t.DestinationID,
		ItemCount:       len(t.Items),
	}
}

// TransferCompletedEvent is raised when a transfer arrives at its destination
type TransferCompletedEvent struct {
	shared.BaseDomainEvent
	TransferNumber string    `json:"transfer_number"`
	DestinationID  uuid.UUID `json:"destination_id"`
}

// NewTransferCompletedEvent creates a new TransferCompletedEvent
func NewTransferCompletedEvent(t *Transfer) *TransferCompletedEvent {
	return &TransferCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(TransferCompletedEventType, TransferAggregateType, t.ID),
		TransferNumber:  t.TransferNumber,
		DestinationID:   t.DestinationID,
	}
}

// TransferCancelledEvent is raised when an in-transit transfer is cancelled
type TransferCancelledEvent struct {
	shared.BaseDomainEvent
	TransferNumber string `json:"transfer_number"`
	CancelReason   string `json:"cancel_reason"`
}

// NewTransferCancelledEvent creates a new TransferCancelledEvent
func NewTransferCancelledEvent(t *Transfer) *TransferCancelledEvent {
	return &TransferCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(TransferCancelledEventType, TransferAggregateType, t.ID),
		TransferNumber:  t.TransferNumber,
		CancelReason:    t.CancelReason,
	}
}
