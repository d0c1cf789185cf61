package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PricingService orchestrates bracket, custom price and flat price
// operations. Every multi-write operation runs inside a TransactionScope so
// the one-selected-bracket and no-overlap invariants hold atomically.
type PricingService struct {
	txScope      TransactionScope
	bracketRepo  pricing.PriceBracketRepository
	customRepo   pricing.CustomerCustomPriceRepository
	flatRepo     pricing.ProductPriceRepository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
	resolver     *pricing.Resolver
	cache        PriceCache
}

// NewPricingService creates a new PricingService
func NewPricingService(
	txScope TransactionScope,
	bracketRepo pricing.PriceBracketRepository,
	customRepo pricing.CustomerCustomPriceRepository,
	flatRepo pricing.ProductPriceRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
) *PricingService {
	return &PricingService{
		txScope:      txScope,
		bracketRepo:  bracketRepo,
		customRepo:   customRepo,
		flatRepo:     flatRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		resolver:     pricing.NewResolver(),
		cache:        NopPriceCache{},
	}
}

// SetPriceCache installs a cache for resolution results
func (s *PricingService) SetPriceCache(cache PriceCache) {
	if cache != nil {
		s.cache = cache
	}
}

// CreateBracketWithItems creates a bracket and its tier rows in one
// transaction. When req.Select is set, the previously selected bracket is
// superseded atomically: its window closes exactly where the new one opens.
func (s *PricingService) CreateBracketWithItems(ctx context.Context, req CreateBracketRequest) (*BracketResponse, error) {
	bracket, err := pricing.NewPriceBracket(req.ProductID, req.Name, req.EffectiveFrom)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		bracket.SetCreatedBy(*req.CreatedBy)
	}

	items, err := buildItems(bracket.ID, req.Items)
	if err != nil {
		return nil, err
	}
	if err := bracket.ReplaceItems(items); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if req.Select {
			if err := s.selectBracketLocked(ctx, repos, bracket, req.EffectiveFrom); err != nil {
				return err
			}
		}
		return repos.Brackets().Save(ctx, bracket)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateProduct(ctx, req.ProductID)

	response := ToBracketResponse(bracket)
	return &response, nil
}

// UpdateBracketWithItems replaces the bracket's item set, reconciling by id:
// inputs with an id update that row, inputs without insert, stored rows
// absent from the inputs are removed. The overlap invariant is re-validated
// across the final set.
func (s *PricingService) UpdateBracketWithItems(ctx context.Context, bracketID uuid.UUID, req UpdateBracketRequest) (*BracketResponse, error) {
	var bracket *pricing.PriceBracket

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		bracket, err = repos.Brackets().FindByID(ctx, bracketID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			bracket.Name = *req.Name
		}

		items, err := reconcileItems(bracket, req.Items)
		if err != nil {
			return err
		}
		if err := bracket.ReplaceItems(items); err != nil {
			return err
		}

		return repos.Brackets().ReplaceItems(ctx, bracket)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateProduct(ctx, bracket.ProductID)

	response := ToBracketResponse(bracket)
	return &response, nil
}

// ActivateBracket makes the bracket the product's selected one, superseding
// the previous selected bracket in the same transaction. At no point can a
// reader observe zero or two selected brackets for the product.
func (s *PricingService) ActivateBracket(ctx context.Context, bracketID uuid.UUID, from time.Time) (*BracketResponse, error) {
	var bracket *pricing.PriceBracket

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		bracket, err = repos.Brackets().FindByID(ctx, bracketID)
		if err != nil {
			return err
		}
		if bracket.IsSelected {
			return shared.NewConflictError("ALREADY_SELECTED", "Bracket is already selected")
		}

		if err := s.selectBracketLocked(ctx, repos, bracket, from); err != nil {
			return err
		}
		return repos.Brackets().SaveWithLock(ctx, bracket)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateProduct(ctx, bracket.ProductID)

	response := ToBracketResponse(bracket)
	return &response, nil
}

// selectBracketLocked supersedes the currently selected bracket (if any)
// under a row lock, then selects the given one. Runs inside a transaction.
func (s *PricingService) selectBracketLocked(ctx context.Context, repos TransactionalRepositories, bracket *pricing.PriceBracket, from time.Time) error {
	current, err := repos.Brackets().FindSelectedByProductForUpdate(ctx, bracket.ProductID)
	if err != nil && !shared.IsNotFound(err) {
		return err
	}
	if current != nil && current.ID != bracket.ID {
		if err := current.Supersede(from); err != nil {
			return err
		}
		if err := repos.Brackets().SaveWithLock(ctx, current); err != nil {
			return err
		}
	}
	return bracket.Select(from)
}

// DeactivatePricing supersedes the product's selected bracket without a
// successor, leaving the product to resolve through flat pricing
func (s *PricingService) DeactivatePricing(ctx context.Context, productID uuid.UUID, at time.Time) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		current, err := repos.Brackets().FindSelectedByProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if err := current.Supersede(at); err != nil {
			return err
		}
		return repos.Brackets().SaveWithLock(ctx, current)
	})
	if err != nil {
		return err
	}

	s.cache.InvalidateProduct(ctx, productID)
	return nil
}

// CloneBracket duplicates a bracket with fresh identities and a new window.
// The clone starts unselected.
func (s *PricingService) CloneBracket(ctx context.Context, bracketID uuid.UUID, req CloneBracketRequest) (*BracketResponse, error) {
	source, err := s.bracketRepo.FindByID(ctx, bracketID)
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = source.Name + " (copy)"
	}
	clone := source.Clone(name, req.EffectiveFrom, req.EffectiveTo)

	if err := s.bracketRepo.Save(ctx, clone); err != nil {
		return nil, err
	}

	response := ToBracketResponse(clone)
	return &response, nil
}

// GetBracket loads one bracket with its items
func (s *PricingService) GetBracket(ctx context.Context, bracketID uuid.UUID) (*BracketResponse, error) {
	bracket, err := s.bracketRepo.FindByID(ctx, bracketID)
	if err != nil {
		return nil, err
	}
	response := ToBracketResponse(bracket)
	return &response, nil
}

// ListBracketsByProduct lists all brackets for a product
func (s *PricingService) ListBracketsByProduct(ctx context.Context, productID uuid.UUID) ([]BracketResponse, error) {
	brackets, err := s.bracketRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	responses := make([]BracketResponse, 0, len(brackets))
	for _, bracket := range brackets {
		responses = append(responses, ToBracketResponse(bracket))
	}
	return responses, nil
}

// CalculatePriceForQuantity resolves the price for one product, quantity and
// price type through the chain: customer custom price, selected bracket,
// flat price. customerID may be nil for walk-in pricing.
func (s *PricingService) CalculatePriceForQuantity(ctx context.Context, productID uuid.UUID, customerID *uuid.UUID, quantity decimal.Decimal, priceType pricing.PriceType, asOf time.Time) (*PriceQuoteResponse, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}

	var key string
	if quoteCacheable(asOf) {
		key = quoteCacheKey(productID, customerID, quantity, priceType)
		if resolution, ok := s.cache.Get(ctx, key); ok {
			return s.toQuote(productID, quantity, priceType, resolution), nil
		}
	}

	resolution, err := s.resolve(ctx, productID, customerID, quantity, priceType, asOf)
	if err != nil {
		return nil, err
	}

	if key != "" {
		s.cache.Set(ctx, key, resolution)
	}
	return s.toQuote(productID, quantity, priceType, resolution), nil
}

// ResolvePrice runs the resolver chain and returns the raw resolution, for
// callers that need the provenance (sales lines snapshot it)
func (s *PricingService) ResolvePrice(ctx context.Context, productID uuid.UUID, customerID *uuid.UUID, quantity decimal.Decimal, priceType pricing.PriceType, asOf time.Time) (*pricing.Resolution, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}
	return s.resolve(ctx, productID, customerID, quantity, priceType, asOf)
}

// resolve loads the pricing data and runs the resolver chain. Custom prices
// participate only for valued customers.
func (s *PricingService) resolve(ctx context.Context, productID uuid.UUID, customerID *uuid.UUID, quantity decimal.Decimal, priceType pricing.PriceType, asOf time.Time) (*pricing.Resolution, error) {
	data := pricing.ProductPricing{}

	if customerID != nil {
		customer, err := s.customerRepo.FindByID(ctx, *customerID)
		if err != nil {
			return nil, err
		}
		if customer.IsValuedCustomer {
			rows, err := s.customRepo.FindActiveByCustomerAndProduct(ctx, *customerID, productID, asOf)
			if err != nil {
				return nil, err
			}
			data.CustomPrices = rows
		}
	}

	brackets, err := s.bracketRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	data.Brackets = brackets

	flats, err := s.flatRepo.FindActiveByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	data.FlatPrices = flats

	return s.resolver.Resolve(data, quantity, priceType, asOf)
}

// GetPricingBreakdown explains every layer of the chain for one query:
// which layers had a matching price and which one won
func (s *PricingService) GetPricingBreakdown(ctx context.Context, productID uuid.UUID, customerID *uuid.UUID, quantity decimal.Decimal, priceType pricing.PriceType, asOf time.Time) (*PricingBreakdownResponse, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}

	breakdown := &PricingBreakdownResponse{
		ProductID: productID,
		Quantity:  quantity,
		PriceType: priceType,
		Rows:      make([]PricingBreakdownRow, 0, 3),
	}

	var winner pricing.ResolutionSource
	resolution, err := s.resolve(ctx, productID, customerID, quantity, priceType, asOf)
	switch {
	case err == nil:
		winner = resolution.Source
	case shared.IsNotFound(err):
		// no layer matched; every row reports unavailable
	default:
		return nil, err
	}

	if customerID != nil {
		row := PricingBreakdownRow{Source: pricing.ResolutionSourceCustom}
		customer, err := s.customerRepo.FindByID(ctx, *customerID)
		if err != nil {
			return nil, err
		}
		if customer.IsValuedCustomer {
			rows, err := s.customRepo.FindActiveByCustomerAndProduct(ctx, *customerID, productID, asOf)
			if err != nil {
				return nil, err
			}
			if res, err := s.resolver.ResolveCustomPrice(rows, quantity, priceType, asOf); err != nil {
				return nil, err
			} else if res != nil {
				row.Available = true
				row.UnitPrice = &res.Price
			}
		}
		row.Applied = winner == pricing.ResolutionSourceCustom
		breakdown.Rows = append(breakdown.Rows, row)
	}

	brackets, err := s.bracketRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	bracketRow := PricingBreakdownRow{Source: pricing.ResolutionSourceBracket}
	if res, err := s.resolver.ResolveBracketPrice(brackets, quantity, priceType, asOf); err != nil {
		return nil, err
	} else if res != nil {
		bracketRow.Available = true
		bracketRow.UnitPrice = &res.Price
	}
	bracketRow.Applied = winner == pricing.ResolutionSourceBracket
	breakdown.Rows = append(breakdown.Rows, bracketRow)

	flats, err := s.flatRepo.FindActiveByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	flatRow := PricingBreakdownRow{Source: pricing.ResolutionSourceFlat}
	if res, err := s.resolver.ResolveFlatPrice(flats, priceType, asOf); err != nil {
		return nil, err
	} else if res != nil {
		flatRow.Available = true
		flatRow.UnitPrice = &res.Price
	}
	flatRow.Applied = winner == pricing.ResolutionSourceFlat
	breakdown.Rows = append(breakdown.Rows, flatRow)

	return breakdown, nil
}

// GetOptimalPricingSuggestions proposes per-quantity prices from the
// product's cost and a target margin: price = cost / (1 - margin), never
// below cost
func (s *PricingService) GetOptimalPricingSuggestions(ctx context.Context, productID uuid.UUID, targetMargin decimal.Decimal, quantities []decimal.Decimal) ([]PricingSuggestion, error) {
	if targetMargin.IsNegative() || targetMargin.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, shared.NewValidationError("INVALID_MARGIN", "Target margin must be in [0, 1)")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cost := product.CostPrice
	divisor := decimal.NewFromInt(1).Sub(targetMargin)

	suggestions := make([]PricingSuggestion, 0, len(quantities))
	for _, qty := range quantities {
		if qty.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewValidationError("INVALID_QUANTITY", "Quantities must be positive")
		}
		price := cost.Div(divisor).Round(2)
		if price.LessThan(cost) {
			price = cost
		}
		suggestions = append(suggestions, PricingSuggestion{
			Quantity:       qty,
			SuggestedPrice: price,
			UnitCost:       cost,
			Margin:         targetMargin,
		})
	}

	return suggestions, nil
}

// SetCustomPricesForCustomer replaces the customer's custom price rows for
// the products in the inputs, maintaining the per-(customer, product)
// overlap invariant across the final set. Only valued customers may own
// custom prices.
func (s *PricingService) SetCustomPricesForCustomer(ctx context.Context, customerID uuid.UUID, inputs []CustomPriceInput, createdBy *uuid.UUID) ([]CustomPriceResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsValuedCustomer {
		return nil, shared.NewConflictError("NOT_VALUED_CUSTOMER", "Only valued customers may have custom prices")
	}

	var saved []*pricing.CustomerCustomPrice

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.CustomPrices().FindByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*pricing.CustomerCustomPrice, len(existing))
		for _, row := range existing {
			byID[row.ID] = row
		}

		touched := make(map[uuid.UUID]bool, len(inputs))
		final := make([]*pricing.CustomerCustomPrice, 0, len(existing)+len(inputs))

		for _, input := range inputs {
			if input.ID != nil {
				row, ok := byID[*input.ID]
				if !ok {
					return shared.NewNotFoundError("CUSTOM_PRICE_NOT_FOUND", "Custom price row not found")
				}
				row.MinQuantity = input.MinQuantity
				row.MaxQuantity = input.MaxQuantity
				row.Price = input.Price
				row.EffectiveFrom = input.EffectiveFrom
				row.EffectiveTo = input.EffectiveTo
				row.SetLabel(input.Label, input.Notes)
				touched[row.ID] = true
				final = append(final, row)
				saved = append(saved, row)
				continue
			}

			row, err := pricing.NewCustomerCustomPrice(customerID, input.ProductID, input.MinQuantity, input.MaxQuantity, input.Price, input.EffectiveFrom, input.EffectiveTo)
			if err != nil {
				return err
			}
			row.SetLabel(input.Label, input.Notes)
			if createdBy != nil {
				row.SetCreatedBy(*createdBy)
			}
			final = append(final, row)
			saved = append(saved, row)
		}

		// Untouched existing rows still participate in the overlap check.
		for _, row := range existing {
			if !touched[row.ID] {
				final = append(final, row)
			}
		}

		if err := pricing.CheckCustomPriceOverlap(final); err != nil {
			return err
		}

		return repos.CustomPrices().SaveAll(ctx, saved)
	})
	if err != nil {
		return nil, err
	}

	responses := make([]CustomPriceResponse, 0, len(saved))
	seen := make(map[uuid.UUID]bool, len(inputs))
	for _, row := range saved {
		responses = append(responses, ToCustomPriceResponse(row))
		if !seen[row.ProductID] {
			seen[row.ProductID] = true
			s.cache.InvalidateProduct(ctx, row.ProductID)
		}
	}
	return responses, nil
}

// GetCustomPricesForCustomer lists a valued customer's custom prices. A
// non-valued customer has no custom price surface at all, so the call
// returns not-found rather than an empty list.
func (s *PricingService) GetCustomPricesForCustomer(ctx context.Context, customerID uuid.UUID) ([]CustomPriceResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsValuedCustomer {
		return nil, shared.NewNotFoundError("NOT_VALUED_CUSTOMER", "Customer has no custom pricing")
	}

	rows, err := s.customRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	responses := make([]CustomPriceResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, ToCustomPriceResponse(row))
	}
	return responses, nil
}

// RemoveCustomPrice deactivates one custom price row
func (s *PricingService) RemoveCustomPrice(ctx context.Context, customPriceID uuid.UUID, at time.Time) error {
	row, err := s.customRepo.FindByID(ctx, customPriceID)
	if err != nil {
		return err
	}

	row.Deactivate(at)
	if err := s.customRepo.Save(ctx, row); err != nil {
		return err
	}

	s.cache.InvalidateProduct(ctx, row.ProductID)
	return nil
}

// SetFlatPrice activates a flat price row for the product, closing and
// deactivating any previously active row in the same transaction so at most
// one stays active.
func (s *PricingService) SetFlatPrice(ctx context.Context, req SetFlatPriceRequest) (*pricing.ProductPrice, error) {
	price, err := pricing.NewProductPrice(req.ProductID, req.RegularPrice, req.WholesalePrice, req.WalkInPrice, req.CostPrice, req.EffectiveFrom)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		price.SetCreatedBy(*req.CreatedBy)
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		active, err := repos.FlatPrices().FindActiveByProductForUpdate(ctx, req.ProductID)
		if err != nil {
			return err
		}
		for _, row := range active {
			if err := row.Close(req.EffectiveFrom); err != nil {
				return err
			}
			if err := repos.FlatPrices().Save(ctx, row); err != nil {
				return err
			}
		}

		if err := price.Activate(req.EffectiveFrom); err != nil {
			return err
		}
		return repos.FlatPrices().Save(ctx, price)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateProduct(ctx, req.ProductID)
	return price, nil
}

func (s *PricingService) toQuote(productID uuid.UUID, quantity decimal.Decimal, priceType pricing.PriceType, resolution *pricing.Resolution) *PriceQuoteResponse {
	return &PriceQuoteResponse{
		ProductID: productID,
		Quantity:  quantity,
		PriceType: priceType,
		UnitPrice: resolution.Price,
		Total:     resolution.Price.Mul(quantity),
		Source:    resolution.Source,
	}
}

// buildItems constructs fresh bracket items from inputs
func buildItems(bracketID uuid.UUID, inputs []BracketItemInput) ([]pricing.BracketItem, error) {
	items := make([]pricing.BracketItem, 0, len(inputs))
	for _, input := range inputs {
		item, err := pricing.NewBracketItem(bracketID, input.PriceType, input.MinQuantity, input.MaxQuantity, input.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// reconcileItems maps inputs onto the bracket's stored rows by id
func reconcileItems(bracket *pricing.PriceBracket, inputs []BracketItemInput) ([]pricing.BracketItem, error) {
	stored := make(map[uuid.UUID]pricing.BracketItem, len(bracket.Items))
	for _, item := range bracket.Items {
		stored[item.ID] = item
	}

	items := make([]pricing.BracketItem, 0, len(inputs))
	for _, input := range inputs {
		if input.ID != nil {
			existing, ok := stored[*input.ID]
			if !ok {
				return nil, shared.NewNotFoundError("ITEM_NOT_FOUND", fmt.Sprintf("Bracket item %s not found", *input.ID))
			}
			existing.PriceType = input.PriceType
			existing.MinQuantity = input.MinQuantity
			existing.MaxQuantity = input.MaxQuantity
			existing.Price = input.Price
			items = append(items, existing)
			continue
		}

		item, err := pricing.NewBracketItem(bracket.ID, input.PriceType, input.MinQuantity, input.MaxQuantity, input.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// quoteCacheWindow bounds how far an as-of instant may drift from the
// current time while still counting as a current-price quote. Quotes
// outside the window bypass the cache so historical and future effective
// ranges never share entries with current ones.
const quoteCacheWindow = time.Minute

func quoteCacheable(asOf time.Time) bool {
	drift := time.Since(asOf)
	if drift < 0 {
		drift = -drift
	}
	return drift < quoteCacheWindow
}

func quoteCacheKey(productID uuid.UUID, customerID *uuid.UUID, quantity decimal.Decimal, priceType pricing.PriceType) string {
	customer := "walkin"
	if customerID != nil {
		customer = customerID.String()
	}
	return fmt.Sprintf("price:%s:%s:%s:%s", productID, customer, priceType, quantity.String())
}
