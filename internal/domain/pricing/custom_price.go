package pricing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerCustomPrice is a per-customer override price range for one product.
// Only customers flagged as valued may own rows; the service boundary
// enforces that.
type CustomerCustomPrice struct {
	shared.AuditedAggregateRoot
	CustomerID    uuid.UUID        `gorm:"type:uuid;not null;index:idx_custom_price_customer_product"`
	ProductID     uuid.UUID        `gorm:"type:uuid;not null;index:idx_custom_price_customer_product"`
	MinQuantity   decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	MaxQuantity   *decimal.Decimal `gorm:"type:decimal(18,4)"` // nil = unbounded
	Price         decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Label         string           `gorm:"type:varchar(100)"`
	Notes         string           `gorm:"type:varchar(500)"`
	IsActive      bool             `gorm:"not null;default:true"`
	EffectiveFrom time.Time        `gorm:"not null"`
	EffectiveTo   *time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (CustomerCustomPrice) TableName() string {
	return "customer_custom_prices"
}

// NewCustomerCustomPrice creates a new active custom price row
func NewCustomerCustomPrice(customerID, productID uuid.UUID, minQty decimal.Decimal, maxQty *decimal.Decimal, price decimal.Decimal, effectiveFrom time.Time, effectiveTo *time.Time) (*CustomerCustomPrice, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_PRICE", "Price must be positive")
	}
	r := QuantityRange{Min: minQty, Max: maxQty}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if effectiveFrom.IsZero() {
		effectiveFrom = time.Now()
	}
	if effectiveTo != nil && !effectiveTo.After(effectiveFrom) {
		return nil, shared.NewValidationError("INVALID_EFFECTIVE_RANGE", "Effective-to must be after effective-from")
	}

	return &CustomerCustomPrice{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		CustomerID:           customerID,
		ProductID:            productID,
		MinQuantity:          minQty,
		MaxQuantity:          maxQty,
		Price:                price,
		IsActive:             true,
		EffectiveFrom:        effectiveFrom,
		EffectiveTo:          effectiveTo,
	}, nil
}

// Range returns the row's quantity range
func (c *CustomerCustomPrice) Range() QuantityRange {
	return QuantityRange{Min: c.MinQuantity, Max: c.MaxQuantity}
}

// EffectiveRange returns the row's [from, to) window
func (c *CustomerCustomPrice) EffectiveRange() DateRange {
	return DateRange{From: c.EffectiveFrom, To: c.EffectiveTo}
}

// Matches reports whether the row applies to the quantity at the instant
func (c *CustomerCustomPrice) Matches(quantity decimal.Decimal, at time.Time) bool {
	return c.IsActive && c.EffectiveRange().Contains(at) && c.Range().Contains(quantity)
}

// Deactivate marks the row inactive, bounding its window at the given instant
func (c *CustomerCustomPrice) Deactivate(at time.Time) {
	c.IsActive = false
	c.EffectiveTo = &at
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetLabel sets the display label and notes
func (c *CustomerCustomPrice) SetLabel(label, notes string) {
	c.Label = label
	c.Notes = notes
	c.UpdatedAt = time.Now()
}

// CheckCustomPriceOverlap rejects two rows for the same (customer, product)
// whose quantity ranges intersect while both are active and their effective
// windows overlap. This is the same rule the resolver relies on to find at
// most one match.
func CheckCustomPriceOverlap(rows []*CustomerCustomPrice) error {
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			a, b := rows[i], rows[j]
			if !a.IsActive || !b.IsActive {
				continue
			}
			if a.CustomerID != b.CustomerID || a.ProductID != b.ProductID {
				continue
			}
			if !a.EffectiveRange().Overlaps(b.EffectiveRange()) {
				continue
			}
			if a.Range().Overlaps(b.Range()) {
				return shared.NewConflictError("OVERLAPPING_CUSTOM_PRICES",
					fmt.Sprintf("Custom price range %s overlaps %s for product %s", a.Range(), b.Range(), a.ProductID))
			}
		}
	}
	return nil
}
