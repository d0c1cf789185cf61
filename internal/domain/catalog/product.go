package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product is a SKU in the catalog. The price columns here are denormalized
// snapshots kept in sync by the pricing module; the pricing tables remain
// the source of truth for resolution.
type Product struct {
	shared.AuditedAggregateRoot
	SKU            string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Description    string          `gorm:"type:text"`
	Barcode        string          `gorm:"type:varchar(50);index"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid;index"`
	Unit           string          `gorm:"type:varchar(20);not null"` // base unit ("pcs", "kg", "box")
	CostPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RegularPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WholesalePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WalkInPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderLevel   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status         ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(sku, name, unit string) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if unit == "" {
		return nil, shared.NewValidationError("INVALID_UNIT", "Unit cannot be empty")
	}

	product := &Product{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		SKU:                  strings.ToUpper(sku),
		Name:                 name,
		Unit:                 unit,
		CostPrice:            decimal.Zero,
		RegularPrice:         decimal.Zero,
		WholesalePrice:       decimal.Zero,
		WalkInPrice:          decimal.Zero,
		ReorderLevel:         decimal.Zero,
		Status:               ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetBarcode sets the product barcode
func (p *Product) SetBarcode(barcode string) error {
	if barcode != "" && len(barcode) > 50 {
		return shared.NewValidationError("INVALID_BARCODE", "Barcode cannot exceed 50 characters")
	}

	p.Barcode = barcode
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCategory sets the product category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// SetReorderLevel sets the stock threshold below which the product shows up
// in reorder reports
func (p *Product) SetReorderLevel(level decimal.Decimal) error {
	if level.IsNegative() {
		return shared.NewValidationError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}

	p.ReorderLevel = level
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SyncPrices refreshes the denormalized price snapshot from the pricing
// module after receiving or a pricing change
func (p *Product) SyncPrices(cost, regular, wholesale, walkIn decimal.Decimal) error {
	for _, price := range []decimal.Decimal{cost, regular, wholesale, walkIn} {
		if price.IsNegative() {
			return shared.NewValidationError("INVALID_PRICE", "Prices cannot be negative")
		}
	}

	p.CostPrice = cost
	p.RegularPrice = regular
	p.WholesalePrice = wholesale
	p.WalkInPrice = walkIn
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPricesSyncedEvent(p))

	return nil
}

// Activate marks the product active
func (p *Product) Activate() {
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate marks the product inactive
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Discontinue marks the product discontinued. Discontinued products stay
// readable for history but cannot be purchased or sold.
func (p *Product) Discontinue() {
	p.Status = ProductStatusDiscontinued
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsActive returns true when the product can be traded
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewValidationError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewValidationError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
