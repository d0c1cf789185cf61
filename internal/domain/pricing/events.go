package pricing

import (
	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypePriceBracket = "PriceBracket"
	AggregateTypeProductPrice = "ProductPrice"
)

// Event type constants
const (
	EventTypeBracketCreated      = "PriceBracketCreated"
	EventTypeBracketSelected     = "PriceBracketSelected"
	EventTypeBracketSuperseded   = "PriceBracketSuperseded"
	EventTypeProductPriceUpdated = "ProductPriceUpdated"
)

// BracketCreatedEvent is raised when a new price bracket is created or cloned
type BracketCreatedEvent struct {
	shared.BaseDomainEvent
	BracketID uuid.UUID `json:"bracket_id"`
	ProductID uuid.UUID `json:"product_id"`
	ItemCount int       `json:"item_count"`
}

// NewBracketCreatedEvent creates a new BracketCreatedEvent
func NewBracketCreatedEvent(bracket *PriceBracket) *BracketCreatedEvent {
	return &BracketCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBracketCreated, AggregateTypePriceBracket, bracket.ID),
		BracketID:       bracket.ID,
		ProductID:       bracket.ProductID,
		ItemCount:       len(bracket.Items),
	}
}

// EventType returns the event type name
func (e *BracketCreatedEvent) EventType() string {
	return EventTypeBracketCreated
}

// BracketSelectedEvent is raised when a bracket becomes the product's
// selected bracket
type BracketSelectedEvent struct {
	shared.BaseDomainEvent
	BracketID uuid.UUID `json:"bracket_id"`
	ProductID uuid.UUID `json:"product_id"`
}

// NewBracketSelectedEvent creates a new BracketSelectedEvent
func NewBracketSelectedEvent(bracket *PriceBracket) *BracketSelectedEvent {
	return &BracketSelectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBracketSelected, AggregateTypePriceBracket, bracket.ID),
		BracketID:       bracket.ID,
		ProductID:       bracket.ProductID,
	}
}

// EventType returns the event type name
func (e *BracketSelectedEvent) EventType() string {
	return EventTypeBracketSelected
}

// BracketSupersededEvent is raised when a selected bracket is closed because
// a sibling took over
type BracketSupersededEvent struct {
	shared.BaseDomainEvent
	BracketID uuid.UUID `json:"bracket_id"`
	ProductID uuid.UUID `json:"product_id"`
}

// NewBracketSupersededEvent creates a new BracketSupersededEvent
func NewBracketSupersededEvent(bracket *PriceBracket) *BracketSupersededEvent {
	return &BracketSupersededEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBracketSuperseded, AggregateTypePriceBracket, bracket.ID),
		BracketID:       bracket.ID,
		ProductID:       bracket.ProductID,
	}
}

// EventType returns the event type name
func (e *BracketSupersededEvent) EventType() string {
	return EventTypeBracketSuperseded
}

// ProductPriceUpdatedEvent is raised when a product's flat prices change,
// including cost propagation from receiving
type ProductPriceUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID      uuid.UUID       `json:"product_id"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	RegularPrice   decimal.Decimal `json:"regular_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	WalkInPrice    decimal.Decimal `json:"walk_in_price"`
}

// NewProductPriceUpdatedEvent creates a new ProductPriceUpdatedEvent
func NewProductPriceUpdatedEvent(price *ProductPrice) *ProductPriceUpdatedEvent {
	return &ProductPriceUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPriceUpdated, AggregateTypeProductPrice, price.ID),
		ProductID:       price.ProductID,
		CostPrice:       price.CostPrice,
		RegularPrice:    price.RegularPrice,
		WholesalePrice:  price.WholesalePrice,
		WalkInPrice:     price.WalkInPrice,
	}
}

// EventType returns the event type name
func (e *ProductPriceUpdatedEvent) EventType() string {
	return EventTypeProductPriceUpdated
}
