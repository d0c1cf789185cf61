package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/pricing"
)

// PriceCache caches price resolutions per product. Implementations must
// treat a miss and an error the same way from the caller's perspective:
// resolution falls through to the repositories.
type PriceCache interface {
	Get(ctx context.Context, key string) (*pricing.Resolution, bool)
	Set(ctx context.Context, key string, resolution *pricing.Resolution)
	// InvalidateProduct drops every cached resolution for the product.
	// Called by all bracket, custom price and flat price mutations.
	InvalidateProduct(ctx context.Context, productID uuid.UUID)
}

// NopPriceCache never caches. Used when redis is not configured.
type NopPriceCache struct{}

// Get always misses
func (NopPriceCache) Get(context.Context, string) (*pricing.Resolution, bool) { return nil, false }

// Set discards the resolution
func (NopPriceCache) Set(context.Context, string, *pricing.Resolution) {}

// InvalidateProduct does nothing
func (NopPriceCache) InvalidateProduct(context.Context, uuid.UUID) {}

var _ PriceCache = NopPriceCache{}
