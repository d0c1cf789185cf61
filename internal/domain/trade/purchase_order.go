package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft           PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusConfirmed       PurchaseOrderStatus = "CONFIRMED"
	PurchaseOrderStatusPartialReceived PurchaseOrderStatus = "PARTIAL_RECEIVED"
	PurchaseOrderStatusCompleted       PurchaseOrderStatus = "COMPLETED"
	PurchaseOrderStatusCancelled       PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusConfirmed, PurchaseOrderStatusPartialReceived,
		PurchaseOrderStatusCompleted, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusConfirmed || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusConfirmed:
		return target == PurchaseOrderStatusPartialReceived || target == PurchaseOrderStatusCompleted || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusPartialReceived:
		// Receipts can be revised, so a partially received order may move
		// back to CONFIRMED when a receiving report is deleted.
		return target == PurchaseOrderStatusPartialReceived || target == PurchaseOrderStatusCompleted || target == PurchaseOrderStatusConfirmed
	case PurchaseOrderStatusCompleted:
		// A completed order reopens when one of its receiving reports is
		// revised downward before the books close.
		return target == PurchaseOrderStatusPartialReceived || target == PurchaseOrderStatusConfirmed
	case PurchaseOrderStatusCancelled:
		return false
	}
	return false
}

// CanReceive returns true if receiving goods is allowed in this status
func (s PurchaseOrderStatus) CanReceive() bool {
	return s == PurchaseOrderStatusConfirmed || s == PurchaseOrderStatusPartialReceived
}

// PurchaseOrderItem represents a line item in a purchase order
type PurchaseOrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	ProductSKU       string          `gorm:"type:varchar(50);not null"`
	OrderedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,4);not null"` // OrderedQuantity * UnitCost
	Unit             string          `gorm:"type:varchar(20);not null"`
	Remark           string          `gorm:"type:varchar(500)"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// NewPurchaseOrderItem creates a new purchase order item. The quantity
// value object carries both the ordered amount and the unit it is
// counted in.
func NewPurchaseOrderItem(orderID, productID uuid.UUID, productName, productSKU string, quantity valueobject.Quantity, unitCost valueobject.Money) (*PurchaseOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewValidationError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewValidationError("INVALID_COST", "Unit cost cannot be negative")
	}
	if quantity.Unit() == "" {
		return nil, shared.NewValidationError("INVALID_UNIT", "Unit cannot be empty")
	}

	now := time.Now()

	return &PurchaseOrderItem{
		ID:               uuid.New(),
		OrderID:          orderID,
		ProductID:        productID,
		ProductName:      productName,
		ProductSKU:       productSKU,
		OrderedQuantity:  quantity.Amount(),
		ReceivedQuantity: decimal.Zero,
		UnitCost:         unitCost.Amount(),
		Amount:           quantity.Amount().Mul(unitCost.Amount()),
		Unit:             quantity.Unit(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// UpdateQuantity updates the item ordered quantity and recalculates the amount
func (i *PurchaseOrderItem) UpdateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity.LessThan(i.ReceivedQuantity) {
		return shared.NewValidationError("INVALID_QUANTITY", "Ordered quantity cannot be less than received quantity")
	}

	i.OrderedQuantity = quantity
	i.Amount = quantity.Mul(i.UnitCost)
	i.UpdatedAt = time.Now()

	return nil
}

// UpdateUnitCost updates the unit cost and recalculates the amount
func (i *PurchaseOrderItem) UpdateUnitCost(unitCost valueobject.Money) error {
	if unitCost.IsNegative() {
		return shared.NewValidationError("INVALID_COST", "Unit cost cannot be negative")
	}

	i.UnitCost = unitCost.Amount()
	i.Amount = i.OrderedQuantity.Mul(i.UnitCost)
	i.UpdatedAt = time.Now()

	return nil
}

// RemainingQuantity returns the quantity still to be received
func (i *PurchaseOrderItem) RemainingQuantity() decimal.Decimal {
	remaining := i.OrderedQuantity.Sub(i.ReceivedQuantity)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsFullyReceived returns true if all ordered quantity has been received
func (i *PurchaseOrderItem) IsFullyReceived() bool {
	return i.ReceivedQuantity.GreaterThanOrEqual(i.OrderedQuantity)
}

// PurchaseOrder manages the lifecycle of a supplier order from draft through
// receiving to completion. Received quantities are maintained by the
// receiving reports that reference the order, never set directly.
type PurchaseOrder struct {
	shared.AuditedAggregateRoot
	OrderNumber  string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName string              `gorm:"type:varchar(200);not null"`
	WarehouseID  *uuid.UUID          `gorm:"type:uuid;index"` // target warehouse for receiving
	Items        []PurchaseOrderItem `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount  decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Status       PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Remark       string              `gorm:"type:text"`
	ConfirmedAt  *time.Time          `gorm:"index"`
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string         `gorm:"type:varchar(500)"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order in DRAFT status
func NewPurchaseOrder(orderNumber string, supplierID uuid.UUID, supplierName string) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewValidationError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewValidationError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewValidationError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}

	order := &PurchaseOrder{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		OrderNumber:          orderNumber,
		SupplierID:           supplierID,
		SupplierName:         supplierName,
		Items:                make([]PurchaseOrderItem, 0),
		TotalAmount:          decimal.Zero,
		Status:               PurchaseOrderStatusDraft,
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a new item to the order. Only allowed in DRAFT status.
func (o *PurchaseOrder) AddItem(productID uuid.UUID, productName, productSKU string, quantity valueobject.Quantity, unitCost valueobject.Money) (*PurchaseOrderItem, error) {
	if o.Status != PurchaseOrderStatusDraft {
		return nil, shared.NewConflictError("INVALID_STATE", "Cannot add items to a non-draft order")
	}

	for _, item := range o.Items {
		if item.ProductID == productID {
			return nil, shared.NewConflictError("DUPLICATE_PRODUCT", "Product already exists in order, update quantity instead")
		}
	}

	item, err := NewPurchaseOrderItem(o.ID, productID, productName, productSKU, quantity, unitCost)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return item, nil
}

// UpdateItemQuantity updates the ordered quantity of an existing item.
// Only allowed in DRAFT status.
func (o *PurchaseOrder) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewConflictError("INVALID_STATE", "Cannot update items in a non-draft order")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewNotFoundError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes an item from the order. Only allowed in DRAFT status.
func (o *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewConflictError("INVALID_STATE", "Cannot remove items from a non-draft order")
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewNotFoundError("ITEM_NOT_FOUND", "Order item not found")
}

// SetWarehouse sets the target warehouse for receiving.
// Only allowed before any goods arrive.
func (o *PurchaseOrder) SetWarehouse(warehouseID uuid.UUID) error {
	if o.Status != PurchaseOrderStatusDraft && o.Status != PurchaseOrderStatusConfirmed {
		return shared.NewConflictError("INVALID_STATE", "Cannot set warehouse for order in current status")
	}
	if warehouseID == uuid.Nil {
		return shared.NewValidationError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	o.WarehouseID = &warehouseID
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// SetRemark sets the order remark
func (o *PurchaseOrder) SetRemark(remark string) {
	o.Remark = remark
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// Confirm confirms the order, transitioning from DRAFT to CONFIRMED
func (o *PurchaseOrder) Confirm() error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusConfirmed) {
		return shared.NewConflictError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewValidationError("NO_ITEMS", "Cannot confirm order without items")
	}
	if o.WarehouseID == nil {
		return shared.NewValidationError("NO_WAREHOUSE", "Warehouse must be set before confirming")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderConfirmedEvent(o))

	return nil
}

// ApplyReceipt adds received quantity to the item matching the given order
// item id. Called by the receiving workflow; over-receipt is rejected.
func (o *PurchaseOrder) ApplyReceipt(itemID uuid.UUID, quantity decimal.Decimal) error {
	if !o.Status.CanReceive() {
		return shared.NewConflictError("INVALID_STATE", fmt.Sprintf("Cannot receive goods for order in %s status", o.Status))
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("INVALID_QUANTITY", "Receive quantity must be positive")
	}

	for idx := range o.Items {
		if o.Items[idx].ID != itemID {
			continue
		}
		newReceived := o.Items[idx].ReceivedQuantity.Add(quantity)
		if newReceived.GreaterThan(o.Items[idx].OrderedQuantity) {
			return shared.NewValidationError("QUANTITY_EXCEEDED",
				fmt.Sprintf("Cannot receive %s, only %s remaining", quantity.String(), o.Items[idx].RemainingQuantity().String()))
		}
		o.Items[idx].ReceivedQuantity = newReceived
		o.Items[idx].UpdatedAt = time.Now()
		return nil
	}

	return shared.NewNotFoundError("ITEM_NOT_FOUND", "Order item not found")
}

// RevertReceipt subtracts previously applied received quantity, used when a
// receiving report is revised or deleted
func (o *PurchaseOrder) RevertReceipt(itemID uuid.UUID, quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("INVALID_QUANTITY", "Revert quantity must be positive")
	}

	for idx := range o.Items {
		if o.Items[idx].ID != itemID {
			continue
		}
		newReceived := o.Items[idx].ReceivedQuantity.Sub(quantity)
		if newReceived.IsNegative() {
			return shared.NewDataIntegrityError("NEGATIVE_RECEIPT",
				fmt.Sprintf("Reverting %s would take received quantity below zero on item %s", quantity.String(), itemID))
		}
		o.Items[idx].ReceivedQuantity = newReceived
		o.Items[idx].UpdatedAt = time.Now()
		return nil
	}

	return shared.NewNotFoundError("ITEM_NOT_FOUND", "Order item not found")
}

// RecomputeStatus re-derives the order status from item received quantities.
// Runs after every receipt application or reversal.
func (o *PurchaseOrder) RecomputeStatus() {
	if o.Status == PurchaseOrderStatusDraft || o.Status == PurchaseOrderStatusCancelled {
		return
	}

	now := time.Now()
	switch {
	case o.isAllItemsReceived():
		if o.Status != PurchaseOrderStatusCompleted {
			o.Status = PurchaseOrderStatusCompleted
			o.CompletedAt = &now
			o.AddDomainEvent(NewPurchaseOrderCompletedEvent(o))
		}
	case o.hasReceivedAnyGoods():
		o.Status = PurchaseOrderStatusPartialReceived
		o.CompletedAt = nil
	default:
		o.Status = PurchaseOrderStatusConfirmed
		o.CompletedAt = nil
	}

	o.UpdatedAt = now
	o.IncrementVersion()
}

// Cancel cancels the order. Allowed only before any goods are received.
func (o *PurchaseOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusCancelled) {
		return shared.NewConflictError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewValidationError("INVALID_REASON", "Cancel reason is required")
	}
	if o.hasReceivedAnyGoods() {
		return shared.NewConflictError("ALREADY_RECEIVED", "Cannot cancel order after goods have been received")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderCancelledEvent(o))

	return nil
}

func (o *PurchaseOrder) recalculateTotals() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}

func (o *PurchaseOrder) isAllItemsReceived() bool {
	for _, item := range o.Items {
		if !item.IsFullyReceived() {
			return false
		}
	}
	return len(o.Items) > 0
}

func (o *PurchaseOrder) hasReceivedAnyGoods() bool {
	for _, item := range o.Items {
		if item.ReceivedQuantity.GreaterThan(decimal.Zero) {
			return true
		}
	}
	return false
}

// GetItem returns an item by its ID
func (o *PurchaseOrder) GetItem(itemID uuid.UUID) *PurchaseOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// GetItemByProduct returns an item by product ID
func (o *PurchaseOrder) GetItemByProduct(productID uuid.UUID) *PurchaseOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return &o.Items[idx]
		}
	}
	return nil
}

// IsDraft returns true if order is in draft status
func (o *PurchaseOrder) IsDraft() bool {
	return o.Status == PurchaseOrderStatusDraft
}

// IsCompleted returns true if order is completed
func (o *PurchaseOrder) IsCompleted() bool {
	return o.Status == PurchaseOrderStatusCompleted
}

// IsCancelled returns true if order is cancelled
func (o *PurchaseOrder) IsCancelled() bool {
	return o.Status == PurchaseOrderStatusCancelled
}

// CanReceiveGoods returns true if the order can receive goods
func (o *PurchaseOrder) CanReceiveGoods() bool {
	return o.Status.CanReceive()
}

// TotalReceivedQuantity returns the total quantity of all received items
func (o *PurchaseOrder) TotalReceivedQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.ReceivedQuantity)
	}
	return total
}

// TotalOrderedQuantity returns the total ordered quantity
func (o *PurchaseOrder) TotalOrderedQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.OrderedQuantity)
	}
	return total
}

// ReceiveProgress returns the receiving progress as a percentage (0-100)
func (o *PurchaseOrder) ReceiveProgress() decimal.Decimal {
	totalOrdered := o.TotalOrderedQuantity()
	if totalOrdered.IsZero() {
		return decimal.Zero
	}
	return o.TotalReceivedQuantity().Div(totalOrdered).Mul(decimal.NewFromInt(100)).Round(2)
}
