package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductPrice is the flat, non-bracket price set for one product. At most
// one row per product is active at a time; activating a new one closes and
// deactivates the overlapping active rows.
type ProductPrice struct {
	shared.AuditedAggregateRoot
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	RegularPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	WholesalePrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	WalkInPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CostPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IsActive       bool            `gorm:"not null;default:false;index"`
	EffectiveFrom  time.Time       `gorm:"not null"`
	EffectiveTo    *time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (ProductPrice) TableName() string {
	return "product_prices"
}

// NewProductPrice creates a new inactive flat price row
func NewProductPrice(productID uuid.UUID, regular, wholesale, walkIn, cost decimal.Decimal, effectiveFrom time.Time) (*ProductPrice, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	fields := shared.FieldErrors{}
	if regular.LessThanOrEqual(decimal.Zero) {
		fields.Add("regular_price", "must be positive")
	}
	if wholesale.LessThanOrEqual(decimal.Zero) {
		fields.Add("wholesale_price", "must be positive")
	}
	if walkIn.LessThanOrEqual(decimal.Zero) {
		fields.Add("walk_in_price", "must be positive")
	}
	if cost.IsNegative() {
		fields.Add("cost_price", "cannot be negative")
	}
	if fields.HasErrors() {
		return nil, shared.NewFieldValidationError("product price validation failed", fields)
	}
	if effectiveFrom.IsZero() {
		effectiveFrom = time.Now()
	}

	return &ProductPrice{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		ProductID:            productID,
		RegularPrice:         regular,
		WholesalePrice:       wholesale,
		WalkInPrice:          walkIn,
		CostPrice:            cost,
		IsActive:             false,
		EffectiveFrom:        effectiveFrom,
	}, nil
}

// EffectiveRange returns the price row's [from, to) window
func (p *ProductPrice) EffectiveRange() DateRange {
	return DateRange{From: p.EffectiveFrom, To: p.EffectiveTo}
}

// IsEffectiveAt reports whether the row is active and its window contains
// the instant
func (p *ProductPrice) IsEffectiveAt(at time.Time) bool {
	return p.IsActive && p.EffectiveRange().Contains(at)
}

// PriceFor returns the price of the given type
func (p *ProductPrice) PriceFor(priceType PriceType) (decimal.Decimal, error) {
	switch priceType {
	case PriceTypeRegular:
		return p.RegularPrice, nil
	case PriceTypeWholesale:
		return p.WholesalePrice, nil
	case PriceTypeWalkIn:
		return p.WalkInPrice, nil
	}
	return decimal.Zero, shared.NewValidationError("INVALID_PRICE_TYPE", "Unknown price type")
}

// Activate marks the row active from the given instant. Closing the sibling
// rows is the service's responsibility, inside the same transaction.
func (p *ProductPrice) Activate(from time.Time) error {
	if p.IsActive {
		return shared.NewConflictError("ALREADY_ACTIVE", "Product price is already active")
	}
	p.IsActive = true
	p.EffectiveFrom = from
	p.EffectiveTo = nil
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Close deactivates the row, bounding its window at the given instant
func (p *ProductPrice) Close(at time.Time) error {
	if !p.IsActive {
		return shared.NewConflictError("NOT_ACTIVE", "Only an active product price can be closed")
	}
	p.IsActive = false
	p.EffectiveTo = &at
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// UpdateCost replaces the cost price, used when receiving propagates a new
// unit cost
func (p *ProductPrice) UpdateCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewValidationError("INVALID_COST", "Cost price cannot be negative")
	}
	p.CostPrice = cost
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
