package trade

import (
	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	PurchaseOrderAggregateType   = "PurchaseOrder"
	ReceivingReportAggregateType = "ReceivingReport"
	SaleAggregateType            = "Sale"
	SaleReturnAggregateType      = "SaleReturn"

	PurchaseOrderCreatedEventType   = "trade.purchase_order.created"
	PurchaseOrderConfirmedEventType = "trade.purchase_order.confirmed"
	PurchaseOrderCompletedEventType = "trade.purchase_order.completed"
	PurchaseOrderCancelledEventType = "trade.purchase_order.cancelled"
	ReceivingReportCreatedEventType = "trade.receiving_report.created"
	SaleCreatedEventType            = "trade.sale.created"
	SaleConfirmedEventType          = "trade.sale.confirmed"
	SaleCancelledEventType          = "trade.sale.cancelled"
	SaleReturnCreatedEventType      = "trade.sale_return.created"
)

// PurchaseOrderCreatedEvent is raised when a purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string    `json:"order_number"`
	SupplierID  uuid.UUID `json:"supplier_id"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(o *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(PurchaseOrderCreatedEventType, PurchaseOrderAggregateType, o.ID),
		OrderNumber:     o.OrderNumber,
		SupplierID:      o.SupplierID,
	}
}

// PurchaseOrderConfirmedEvent is raised when a purchase order is confirmed
type PurchaseOrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewPurchaseOrderConfirmedEvent creates a new PurchaseOrderConfirmedEvent
func NewPurchaseOrderConfirmedEvent(o *PurchaseOrder) *PurchaseOrderConfirmedEvent {
	return &PurchaseOrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(PurchaseOrderConfirmedEventType, PurchaseOrderAggregateType, o.ID),
		OrderNumber:     o.OrderNumber,
		TotalAmount:     o.TotalAmount,
	}
}

// PurchaseOrderCompletedEvent is raised when all ordered quantity has arrived
type PurchaseOrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
}

// NewPurchaseOrderCompletedEvent creates a new PurchaseOrderCompletedEvent
func NewPurchaseOrderCompletedEvent(o *PurchaseOrder) *PurchaseOrderCompletedEvent {
	return &PurchaseOrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(PurchaseOrderCompletedEventType, PurchaseOrderAggregateType, o.ID),
		OrderNumber:     o.OrderNumber,
	}
}

// PurchaseOrderCancelledEvent is raised when a purchase order is cancelled
type PurchaseOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderNumber  string `json:"order_number"`
	CancelReason string `json:"cancel_reason"`
}

// NewPurchaseOrderCancelledEvent creates a new PurchaseOrderCancelledEvent
func NewPurchaseOrderCancelledEvent(o *PurchaseOrder) *PurchaseOrderCancelledEvent {
	return &PurchaseOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(PurchaseOrderCancelledEventType, PurchaseOrderAggregateType, o.ID),
		OrderNumber:     o.OrderNumber,
		CancelReason:    o.CancelReason,
	}
}

// ReceivingReportCreatedEvent is raised when goods are received
type ReceivingReportCreatedEvent struct {
	shared.BaseDomainEvent
	ReportNumber string    `json:"report_number"`
	OrderID      uuid.UUID `json:"order_id"`
	WarehouseID  uuid.UUID `json:"warehouse_id"`
}

// NewReceivingReportCreatedEvent creates a new ReceivingReportCreatedEvent
func NewReceivingReportCreatedEvent(r *ReceivingReport) *ReceivingReportCreatedEvent {
	return &ReceivingReportCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(ReceivingReportCreatedEventType, ReceivingReportAggregateType, r.ID),
		ReportNumber:    r.ReportNumber,
		OrderID:         r.OrderID,
		WarehouseID:     r.WarehouseID,
	}
}

// SaleCreatedEvent is raised when a draft sale is opened
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	SaleNumber string     `json:"sale_number"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(s *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(SaleCreatedEventType, SaleAggregateType, s.ID),
		SaleNumber:      s.SaleNumber,
		CustomerID:      s.CustomerID,
	}
}

// SaleConfirmedEvent is raised when a sale is confirmed and stock committed
type SaleConfirmedEvent struct {
	shared.BaseDomainEvent
	SaleNumber string          `json:"sale_number"`
	NetAmount  decimal.Decimal `json:"net_amount"`
}

// NewSaleConfirmedEvent creates a new SaleConfirmedEvent
func NewSaleConfirmedEvent(s *Sale) *SaleConfirmedEvent {
	return &SaleConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(SaleConfirmedEventType, SaleAggregateType, s.ID),
		SaleNumber:      s.SaleNumber,
		NetAmount:       s.NetAmount,
	}
}

// SaleCancelledEvent is raised when a sale is cancelled
type SaleCancelledEvent struct {
	shared.BaseDomainEvent
	SaleNumber   string `json:"sale_number"`
	WasConfirmed bool   `json:"was_confirmed"`
	CancelReason string `json:"cancel_reason"`
}

// NewSaleCancelledEvent creates a new SaleCancelledEvent
func NewSaleCancelledEvent(s *Sale, wasConfirmed bool) *SaleCancelledEvent {
	return &SaleCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(SaleCancelledEventType, SaleAggregateType, s.ID),
		SaleNumber:      s.SaleNumber,
		WasConfirmed:    wasConfirmed,
		CancelReason:    s.CancelReason,
	}
}

// SaleReturnCreatedEvent is raised when a return restores stock
type SaleReturnCreatedEvent struct {
	shared.BaseDomainEvent
	ReturnNumber string          `json:"return_number"`
	SaleID       uuid.UUID       `json:"sale_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// NewSaleReturnCreatedEvent creates a new SaleReturnCreatedEvent
func NewSaleReturnCreatedEvent(r *SaleReturn) *SaleReturnCreatedEvent {
	return &SaleReturnCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(SaleReturnCreatedEventType, SaleReturnAggregateType, r.ID),
		ReturnNumber:    r.ReturnNumber,
		SaleID:          r.SaleID,
		TotalAmount:     r.TotalAmount,
	}
}
