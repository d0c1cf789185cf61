package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ResolutionSource identifies which layer of the pricing chain produced a price
type ResolutionSource string

const (
	// ResolutionSourceCustom is a per-customer override price
	ResolutionSourceCustom ResolutionSource = "CUSTOM"
	// ResolutionSourceBracket is a quantity-tiered bracket item
	ResolutionSourceBracket ResolutionSource = "BRACKET"
	// ResolutionSourceFlat is the flat per-product price
	ResolutionSourceFlat ResolutionSource = "FLAT"
)

// Resolution is the outcome of resolving a price for one line
type Resolution struct {
	Price         decimal.Decimal  `json:"price"`
	PriceType     PriceType        `json:"price_type"`
	Source        ResolutionSource `json:"source"`
	BracketID     *uuid.UUID       `json:"bracket_id,omitempty"`
	BracketItemID *uuid.UUID       `json:"bracket_item_id,omitempty"`
	CustomPriceID *uuid.UUID       `json:"custom_price_id,omitempty"`
}

// ErrNoPriceConfigured signals that a product has no pricing configured at
// all. The caller decides whether that is fatal for a sale.
var ErrNoPriceConfigured = shared.NewNotFoundError("NO_PRICE_CONFIGURED", "Product has no pricing configured")

// Resolver resolves the applicable price for a product, quantity, price type
// and as-of instant over already-loaded pricing data. It is a pure read:
// deterministic and side-effect free.
type Resolver struct{}

// NewResolver creates a new Resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveBracketPrice finds the single applicable bracket item among the
// product's brackets. Returns (nil, nil) when no selected bracket covers the
// instant or no item matches. Two stored items matching the same quantity is
// a data-integrity error, never a silent pick.
func (r *Resolver) ResolveBracketPrice(brackets []*PriceBracket, quantity decimal.Decimal, priceType PriceType, asOf time.Time) (*Resolution, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !priceType.IsValid() {
		return nil, shared.NewValidationError("INVALID_PRICE_TYPE", "Unknown price type")
	}

	for _, bracket := range brackets {
		if !bracket.IsSelected || !bracket.IsEffectiveAt(asOf) {
			continue
		}
		item, err := bracket.FindItem(quantity, priceType)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, nil
		}
		return &Resolution{
			Price:         item.Price,
			PriceType:     priceType,
			Source:        ResolutionSourceBracket,
			BracketID:     &bracket.ID,
			BracketItemID: &item.ID,
		}, nil
	}
	return nil, nil
}

// ResolveCustomPrice finds the single applicable custom price row for a
// customer. Returns (nil, nil) when none matches. Two matching rows violate
// the no-overlap invariant and surface as a data-integrity error.
func (r *Resolver) ResolveCustomPrice(rows []*CustomerCustomPrice, quantity decimal.Decimal, priceType PriceType, asOf time.Time) (*Resolution, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}

	var match *CustomerCustomPrice
	for _, row := range rows {
		if !row.Matches(quantity, asOf) {
			continue
		}
		if match != nil {
			return nil, shared.NewDataIntegrityError("OVERLAPPING_CUSTOM_PRICES",
				"Multiple custom price rows match the same quantity")
		}
		match = row
	}
	if match == nil {
		return nil, nil
	}
	return &Resolution{
		Price:         match.Price,
		PriceType:     priceType,
		Source:        ResolutionSourceCustom,
		CustomPriceID: &match.ID,
	}, nil
}

// ResolveFlatPrice picks the price of the requested type from the product's
// active flat price rows. Returns (nil, nil) when no row is effective.
func (r *Resolver) ResolveFlatPrice(rows []*ProductPrice, priceType PriceType, asOf time.Time) (*Resolution, error) {
	for _, row := range rows {
		if !row.IsEffectiveAt(asOf) {
			continue
		}
		price, err := row.PriceFor(priceType)
		if err != nil {
			return nil, err
		}
		return &Resolution{
			Price:     price,
			PriceType: priceType,
			Source:    ResolutionSourceFlat,
		}, nil
	}
	return nil, nil
}

// ProductPricing bundles the loaded pricing data for one product, plus the
// custom rows for the requesting customer when there is one.
type ProductPricing struct {
	Brackets     []*PriceBracket
	CustomPrices []*CustomerCustomPrice
	FlatPrices   []*ProductPrice
}

// Resolve walks the pricing chain: customer custom price first, then the
// selected bracket, then the flat product price. ErrNoPriceConfigured when
// nothing matches anywhere.
func (r *Resolver) Resolve(data ProductPricing, quantity decimal.Decimal, priceType PriceType, asOf time.Time) (*Resolution, error) {
	if len(data.CustomPrices) > 0 {
		resolution, err := r.ResolveCustomPrice(data.CustomPrices, quantity, priceType, asOf)
		if err != nil {
			return nil, err
		}
		if resolution != nil {
			return resolution, nil
		}
	}

	resolution, err := r.ResolveBracketPrice(data.Brackets, quantity, priceType, asOf)
	if err != nil {
		return nil, err
	}
	if resolution != nil {
		return resolution, nil
	}

	resolution, err = r.ResolveFlatPrice(data.FlatPrices, priceType, asOf)
	if err != nil {
		return nil, err
	}
	if resolution != nil {
		return resolution, nil
	}

	return nil, ErrNoPriceConfigured
}
