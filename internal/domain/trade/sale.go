package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleStatus represents the status of a sale
type SaleStatus string

const (
	SaleStatusDraft     SaleStatus = "DRAFT"
	SaleStatusConfirmed SaleStatus = "CONFIRMED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusDraft, SaleStatusConfirmed, SaleStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus tracks how much of the sale has been paid
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// DeliveryStatus tracks physical fulfilment of the sale
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
)

// SaleItem is one line on a sale. UnitPrice and PriceSource are a snapshot
// of what the resolver produced at creation time; they never change after
// the line is written, even if pricing is reconfigured later.
type SaleItem struct {
	ID            uuid.UUID                `gorm:"type:uuid;primary_key"`
	SaleID        uuid.UUID                `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID                `gorm:"type:uuid;not null;index"`
	ProductName   string                   `gorm:"type:varchar(200);not null"`
	Quantity      decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	UnitPrice     decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	PriceType     pricing.PriceType        `gorm:"type:varchar(20);not null"`
	PriceSource   pricing.ResolutionSource `gorm:"type:varchar(20);not null"`
	BracketItemID *uuid.UUID               `gorm:"type:uuid"`
	CustomPriceID *uuid.UUID               `gorm:"type:uuid"`
	Amount        decimal.Decimal          `gorm:"type:decimal(18,4);not null"` // Quantity * UnitPrice
	ReturnedQty   decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt     time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// ReturnableQuantity returns how much of this line can still be returned
func (i *SaleItem) ReturnableQuantity() decimal.Decimal {
	remaining := i.Quantity.Sub(i.ReturnedQty)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// Sale is a customer order. Items carry immutable price snapshots; the
// header carries discount approval and payment/delivery state.
type Sale struct {
	shared.AuditedAggregateRoot
	SaleNumber         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID         *uuid.UUID      `gorm:"type:uuid;index"` // nil for walk-in sales
	CustomerName       string          `gorm:"type:varchar(200)"`
	WarehouseID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items              []SaleItem      `gorm:"foreignKey:SaleID;references:ID"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	NetAmount          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmount         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountApproved   bool            `gorm:"not null;default:false"`
	DiscountApprovedBy *uuid.UUID      `gorm:"type:uuid"`
	Status             SaleStatus      `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	PaymentStatus      PaymentStatus   `gorm:"type:varchar(20);not null;default:'UNPAID'"`
	DeliveryStatus     DeliveryStatus  `gorm:"type:varchar(20);not null;default:'PENDING'"`
	ConfirmedAt        *time.Time
	CancelledAt        *time.Time
	CancelReason       string         `gorm:"type:varchar(500)"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a draft sale
func NewSale(saleNumber string, customerID *uuid.UUID, customerName string, warehouseID uuid.UUID) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewValidationError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	sale := &Sale{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		SaleNumber:           saleNumber,
		CustomerID:           customerID,
		CustomerName:         customerName,
		WarehouseID:          warehouseID,
		Items:                make([]SaleItem, 0),
		TotalAmount:          decimal.Zero,
		DiscountAmount:       decimal.Zero,
		NetAmount:            decimal.Zero,
		PaidAmount:           decimal.Zero,
		Status:               SaleStatusDraft,
		PaymentStatus:        PaymentStatusUnpaid,
		DeliveryStatus:       DeliveryStatusPending,
	}

	sale.AddDomainEvent(NewSaleCreatedEvent(sale))

	return sale, nil
}

// AddItem adds a line priced by the given resolution snapshot.
// Only allowed in DRAFT status.
func (s *Sale) AddItem(productID uuid.UUID, productName string, quantity decimal.Decimal, resolution *pricing.Resolution) (*SaleItem, error) {
	if s.Status != SaleStatusDraft {
		return nil, shared.NewConflictError("INVALID_STATE", "Cannot add items to a non-draft sale")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if resolution == nil {
		return nil, shared.NewValidationError("NO_RESOLUTION", "A price resolution is required")
	}

	item := SaleItem{
		ID:            uuid.New(),
		SaleID:        s.ID,
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      quantity,
		UnitPrice:     resolution.Price,
		PriceType:     resolution.PriceType,
		PriceSource:   resolution.Source,
		BracketItemID: resolution.BracketItemID,
		CustomPriceID: resolution.CustomPriceID,
		Amount:        quantity.Mul(resolution.Price),
		ReturnedQty:   decimal.Zero,
		CreatedAt:     time.Now(),
	}

	s.Items = append(s.Items, item)
	s.recalculateTotals()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return &s.Items[len(s.Items)-1], nil
}

// ApplyDiscount sets an order-level discount. Discounts above the approval
// threshold must carry the approving user's id.
func (s *Sale) ApplyDiscount(discount decimal.Decimal, threshold decimal.Decimal, approvedBy *uuid.UUID) error {
	if s.Status != SaleStatusDraft {
		return shared.NewConflictError("INVALID_STATE", "Cannot apply discount to a non-draft sale")
	}
	if discount.IsNegative() {
		return shared.NewValidationError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.GreaterThan(s.TotalAmount) {
		return shared.NewValidationError("INVALID_DISCOUNT", "Discount cannot exceed total amount")
	}
	if discount.GreaterThan(threshold) {
		if approvedBy == nil {
			return shared.NewConflictError("APPROVAL_REQUIRED",
				fmt.Sprintf("Discount %s exceeds the approval threshold %s", discount.String(), threshold.String()))
		}
		s.DiscountApproved = true
		s.DiscountApprovedBy = approvedBy
	} else {
		s.DiscountApproved = false
		s.DiscountApprovedBy = nil
	}

	s.DiscountAmount = discount
	s.recalculateTotals()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Confirm finalizes the sale. The caller appends the outbound ledger
// entries in the same transaction.
func (s *Sale) Confirm() error {
	if s.Status != SaleStatusDraft {
		return shared.NewConflictError("INVALID_STATE", fmt.Sprintf("Cannot confirm sale in %s status", s.Status))
	}
	if len(s.Items) == 0 {
		return shared.NewValidationError("NO_ITEMS", "Cannot confirm sale without items")
	}

	now := time.Now()
	s.Status = SaleStatusConfirmed
	s.ConfirmedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleConfirmedEvent(s))

	return nil
}

// Cancel cancels a sale. Confirmed sales with payments or deliveries are
// handled through returns instead.
func (s *Sale) Cancel(reason string) error {
	if s.Status == SaleStatusCancelled {
		return shared.NewConflictError("INVALID_STATE", "Sale is already cancelled")
	}
	if reason == "" {
		return shared.NewValidationError("INVALID_REASON", "Cancel reason is required")
	}
	if s.Status == SaleStatusConfirmed {
		if !s.PaidAmount.IsZero() {
			return shared.NewConflictError("ALREADY_PAID", "Cannot cancel a sale with recorded payments")
		}
		if s.DeliveryStatus == DeliveryStatusDelivered {
			return shared.NewConflictError("ALREADY_DELIVERED", "Cannot cancel a delivered sale")
		}
	}

	wasConfirmed := s.Status == SaleStatusConfirmed
	now := time.Now()
	s.Status = SaleStatusCancelled
	s.CancelledAt = &now
	s.CancelReason = reason
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleCancelledEvent(s, wasConfirmed))

	return nil
}

// RecordPayment adds a payment against the sale
func (s *Sale) RecordPayment(amount decimal.Decimal) error {
	if s.Status != SaleStatusConfirmed {
		return shared.NewConflictError("INVALID_STATE", "Can only record payments on a confirmed sale")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	newPaid := s.PaidAmount.Add(amount)
	if newPaid.GreaterThan(s.NetAmount) {
		return shared.NewValidationError("OVERPAYMENT",
			fmt.Sprintf("Payment would exceed the net amount by %s", newPaid.Sub(s.NetAmount).String()))
	}

	s.PaidAmount = newPaid
	switch {
	case s.PaidAmount.Equal(s.NetAmount):
		s.PaymentStatus = PaymentStatusPaid
	case s.PaidAmount.IsPositive():
		s.PaymentStatus = PaymentStatusPartial
	}
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// MarkDelivered marks the sale physically fulfilled
func (s *Sale) MarkDelivered() error {
	if s.Status != SaleStatusConfirmed {
		return shared.NewConflictError("INVALID_STATE", "Can only deliver a confirmed sale")
	}

	s.DeliveryStatus = DeliveryStatusDelivered
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// RecordReturn adds returned quantity to a line, used by the returns flow
func (s *Sale) RecordReturn(itemID uuid.UUID, quantity decimal.Decimal) error {
	if s.Status != SaleStatusConfirmed {
		return shared.NewConflictError("INVALID_STATE", "Can only return against a confirmed sale")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("INVALID_QUANTITY", "Return quantity must be positive")
	}

	for idx := range s.Items {
		if s.Items[idx].ID != itemID {
			continue
		}
		if quantity.GreaterThan(s.Items[idx].ReturnableQuantity()) {
			return shared.NewValidationError("QUANTITY_EXCEEDED",
				fmt.Sprintf("Cannot return %s, only %s returnable", quantity.String(), s.Items[idx].ReturnableQuantity().String()))
		}
		s.Items[idx].ReturnedQty = s.Items[idx].ReturnedQty.Add(quantity)
		s.UpdatedAt = time.Now()
		s.IncrementVersion()
		return nil
	}

	return shared.NewNotFoundError("ITEM_NOT_FOUND", "Sale item not found")
}

// GetItem returns a line by its ID
func (s *Sale) GetItem(itemID uuid.UUID) *SaleItem {
	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			return &s.Items[idx]
		}
	}
	return nil
}

// IsConfirmed returns true if the sale is confirmed
func (s *Sale) IsConfirmed() bool {
	return s.Status == SaleStatusConfirmed
}

func (s *Sale) recalculateTotals() {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Amount)
	}
	s.TotalAmount = total
	s.NetAmount = total.Sub(s.DiscountAmount)
	if s.NetAmount.IsNegative() {
		s.DiscountAmount = s.TotalAmount
		s.NetAmount = decimal.Zero
	}
}
