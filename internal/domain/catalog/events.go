package catalog

import (
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	ProductAggregateType = "Product"

	ProductCreatedEventType      = "catalog.product.created"
	ProductUpdatedEventType      = "catalog.product.updated"
	ProductPricesSyncedEventType = "catalog.product.prices_synced"
)

// ProductCreatedEvent is raised when a product is added to the catalog
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(ProductCreatedEventType, ProductAggregateType, p.ID),
		SKU:             p.SKU,
		Name:            p.Name,
	}
}

// ProductUpdatedEvent is raised when product details change
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	SKU string `json:"sku"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(ProductUpdatedEventType, ProductAggregateType, p.ID),
		SKU:             p.SKU,
	}
}

// ProductPricesSyncedEvent is raised when the denormalized price snapshot
// on the product row is refreshed
type ProductPricesSyncedEvent struct {
	shared.BaseDomainEvent
	SKU          string          `json:"sku"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	RegularPrice decimal.Decimal `json:"regular_price"`
}

// NewProductPricesSyncedEvent creates a new ProductPricesSyncedEvent
func NewProductPricesSyncedEvent(p *Product) *ProductPricesSyncedEvent {
	return &ProductPricesSyncedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(ProductPricesSyncedEventType, ProductAggregateType, p.ID),
		SKU:             p.SKU,
		CostPrice:       p.CostPrice,
		RegularPrice:    p.RegularPrice,
	}
}
