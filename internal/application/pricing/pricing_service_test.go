package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	service      *PricingService
	brackets     *MockPriceBracketRepository
	customPrices *MockCustomerCustomPriceRepository
	flatPrices   *MockProductPriceRepository
	customers    *MockCustomerRepository
	products     *MockProductRepository
}

func newServiceFixture() *serviceFixture {
	brackets := new(MockPriceBracketRepository)
	customPrices := new(MockCustomerCustomPriceRepository)
	flatPrices := new(MockProductPriceRepository)
	customers := new(MockCustomerRepository)
	products := new(MockProductRepository)

	scope := NewNoOpTransactionScope(brackets, customPrices, flatPrices)
	service := NewPricingService(scope, brackets, customPrices, flatPrices, customers, products)

	return &serviceFixture{
		service:      service,
		brackets:     brackets,
		customPrices: customPrices,
		flatPrices:   flatPrices,
		customers:    customers,
		products:     products,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func selectedBracket(t *testing.T, productID uuid.UUID, from time.Time) *pricing.PriceBracket {
	t.Helper()
	bracket, err := pricing.NewPriceBracket(productID, "Standard tiers", from)
	require.NoError(t, err)
	_, err = bracket.AddItem(pricing.PriceTypeRegular, dec("1"), decPtr("10"), dec("100"))
	require.NoError(t, err)
	_, err = bracket.AddItem(pricing.PriceTypeRegular, dec("11"), nil, dec("90"))
	require.NoError(t, err)
	require.NoError(t, bracket.Select(from))
	return bracket
}

func valuedCustomer(t *testing.T) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer("CUST-001", "Acme Traders")
	require.NoError(t, err)
	require.NoError(t, customer.MarkAsValued())
	return customer
}

func TestPricingService_CreateBracketWithItems(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates and selects, superseding the previous bracket", func(t *testing.T) {
		f := newServiceFixture()
		previous := selectedBracket(t, productID, from.AddDate(-1, 0, 0))

		f.brackets.On("FindSelectedByProductForUpdate", ctx, productID).Return(previous, nil)
		f.brackets.On("SaveWithLock", ctx, previous).Return(nil)
		f.brackets.On("Save", ctx, mock.AnythingOfType("*pricing.PriceBracket")).Return(nil)

		resp, err := f.service.CreateBracketWithItems(ctx, CreateBracketRequest{
			ProductID:     productID,
			Name:          "2026 tiers",
			EffectiveFrom: from,
			Select:        true,
			Items: []BracketItemInput{
				{PriceType: pricing.PriceTypeRegular, MinQuantity: dec("1"), MaxQuantity: decPtr("20"), Price: dec("95")},
				{PriceType: pricing.PriceTypeRegular, MinQuantity: dec("21"), Price: dec("88")},
			},
		})
		require.NoError(t, err)
		assert.True(t, resp.IsSelected)
		assert.Len(t, resp.Items, 2)

		// the old bracket's window now closes where the new one opens
		assert.False(t, previous.IsSelected)
		require.NotNil(t, previous.EffectiveTo)
		assert.True(t, previous.EffectiveTo.Equal(from))
		f.brackets.AssertExpectations(t)
	})

	t.Run("rejects overlapping tier rows", func(t *testing.T) {
		f := newServiceFixture()

		_, err := f.service.CreateBracketWithItems(ctx, CreateBracketRequest{
			ProductID:     productID,
			Name:          "Broken tiers",
			EffectiveFrom: from,
			Items: []BracketItemInput{
				{PriceType: pricing.PriceTypeRegular, MinQuantity: dec("1"), MaxQuantity: decPtr("10"), Price: dec("95")},
				{PriceType: pricing.PriceTypeRegular, MinQuantity: dec("5"), MaxQuantity: decPtr("20"), Price: dec("88")},
			},
		})
		require.Error(t, err)
		assert.True(t, shared.IsConflict(err))
		f.brackets.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("without select the previous bracket is untouched", func(t *testing.T) {
		f := newServiceFixture()
		f.brackets.On("Save", ctx, mock.AnythingOfType("*pricing.PriceBracket")).Return(nil)

		resp, err := f.service.CreateBracketWithItems(ctx, CreateBracketRequest{
			ProductID:     productID,
			Name:          "Draft tiers",
			EffectiveFrom: from,
			Items: []BracketItemInput{
				{PriceType: pricing.PriceTypeWholesale, MinQuantity: dec("1"), Price: dec("80")},
			},
		})
		require.NoError(t, err)
		assert.False(t, resp.IsSelected)
		f.brackets.AssertNotCalled(t, "FindSelectedByProductForUpdate", mock.Anything, mock.Anything)
	})
}

func TestPricingService_UpdateBracketWithItems(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("reconciles by id: update, insert, remove", func(t *testing.T) {
		f := newServiceFixture()
		bracket := selectedBracket(t, productID, from)
		keptID := bracket.Items[0].ID

		f.brackets.On("FindByID", ctx, bracket.ID).Return(bracket, nil)
		f.brackets.On("ReplaceItems", ctx, bracket).Return(nil)

		resp, err := f.service.UpdateBracketWithItems(ctx, bracket.ID, UpdateBracketRequest{
			Items: []BracketItemInput{
				{ID: &keptID, PriceType: pricing.PriceTypeRegular, MinQuantity: dec("1"), MaxQuantity: decPtr("15"), Price: dec("98")},
				{PriceType: pricing.PriceTypeRegular, MinQuantity: dec("16"), Price: dec("85")},
			},
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 2)

		assert.Equal(t, keptID, resp.Items[0].ID)
		assert.True(t, resp.Items[0].Price.Equal(dec("98")))
		// the second stored row was dropped, the new one got a fresh id
		assert.NotEqual(t, keptID, resp.Items[1].ID)
		f.brackets.AssertExpectations(t)
	})

	t.Run("unknown item id is not-found", func(t *testing.T) {
		f := newServiceFixture()
		bracket := selectedBracket(t, productID, from)
		unknown := uuid.New()

		f.brackets.On("FindByID", ctx, bracket.ID).Return(bracket, nil)

		_, err := f.service.UpdateBracketWithItems(ctx, bracket.ID, UpdateBracketRequest{
			Items: []BracketItemInput{
				{ID: &unknown, PriceType: pricing.PriceTypeRegular, MinQuantity: dec("1"), Price: dec("98")},
			},
		})
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestPricingService_ActivateBracket(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("supersedes current and selects in one pass", func(t *testing.T) {
		f := newServiceFixture()
		current := selectedBracket(t, productID, from.AddDate(0, -6, 0))
		next, err := pricing.NewPriceBracket(productID, "Next tiers", from)
		require.NoError(t, err)
		_, err = next.AddItem(pricing.PriceTypeRegular, dec("1"), nil, dec("92"))
		require.NoError(t, err)

		f.brackets.On("FindByID", ctx, next.ID).Return(next, nil)
		f.brackets.On("FindSelectedByProductForUpdate", ctx, productID).Return(current, nil)
		f.brackets.On("SaveWithLock", ctx, current).Return(nil)
		f.brackets.On("SaveWithLock", ctx, next).Return(nil)

		resp, err := f.service.ActivateBracket(ctx, next.ID, from)
		require.NoError(t, err)
		assert.True(t, resp.IsSelected)
		assert.False(t, current.IsSelected)
		f.brackets.AssertExpectations(t)
	})

	t.Run("already selected is a conflict", func(t *testing.T) {
		f := newServiceFixture()
		current := selectedBracket(t, productID, from)
		f.brackets.On("FindByID", ctx, current.ID).Return(current, nil)

		_, err := f.service.ActivateBracket(ctx, current.ID, from)
		require.Error(t, err)
		assert.True(t, shared.IsConflict(err))
	})
}

func TestPricingService_CalculatePriceForQuantity(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	from := asOf.AddDate(0, -1, 0)

	t.Run("bracket tier wins for walk-in customer", func(t *testing.T) {
		f := newServiceFixture()
		bracket := selectedBracket(t, productID, from)

		f.brackets.On("FindByProduct", ctx, productID).Return([]*pricing.PriceBracket{bracket}, nil)
		f.flatPrices.On("FindActiveByProduct", ctx, productID).Return([]*pricing.ProductPrice{}, nil)

		quote, err := f.service.CalculatePriceForQuantity(ctx, productID, nil, dec("15"), pricing.PriceTypeRegular, asOf)
		require.NoError(t, err)
		assert.True(t, quote.UnitPrice.Equal(dec("90")))
		assert.True(t, quote.Total.Equal(dec("1350")))
		assert.Equal(t, pricing.ResolutionSourceBracket, quote.Source)
	})

	t.Run("custom price wins over bracket for a valued customer", func(t *testing.T) {
		f := newServiceFixture()
		customer := valuedCustomer(t)
		bracket := selectedBracket(t, productID, from)
		custom, err := pricing.NewCustomerCustomPrice(customer.ID, productID, dec("1"), nil, dec("75"), from, nil)
		require.NoError(t, err)

		f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.customPrices.On("FindActiveByCustomerAndProduct", ctx, customer.ID, productID, asOf).
			Return([]*pricing.CustomerCustomPrice{custom}, nil)
		f.brackets.On("FindByProduct", ctx, productID).Return([]*pricing.PriceBracket{bracket}, nil)
		f.flatPrices.On("FindActiveByProduct", ctx, productID).Return([]*pricing.ProductPrice{}, nil)

		quote, err := f.service.CalculatePriceForQuantity(ctx, productID, &customer.ID, dec("5"), pricing.PriceTypeRegular, asOf)
		require.NoError(t, err)
		assert.True(t, quote.UnitPrice.Equal(dec("75")))
		assert.Equal(t, pricing.ResolutionSourceCustom, quote.Source)
	})

	t.Run("non-valued customer falls through to the bracket", func(t *testing.T) {
		f := newServiceFixture()
		customer, err := partner.NewCustomer("CUST-002", "Plain Retailer")
		require.NoError(t, err)
		bracket := selectedBracket(t, productID, from)

		f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.brackets.On("FindByProduct", ctx, productID).Return([]*pricing.PriceBracket{bracket}, nil)
		f.flatPrices.On("FindActiveByProduct", ctx, productID).Return([]*pricing.ProductPrice{}, nil)

		quote, err := f.service.CalculatePriceForQuantity(ctx, productID, &customer.ID, dec("5"), pricing.PriceTypeRegular, asOf)
		require.NoError(t, err)
		assert.Equal(t, pricing.ResolutionSourceBracket, quote.Source)
		f.customPrices.AssertNotCalled(t, "FindActiveByCustomerAndProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("nothing configured is not-found", func(t *testing.T) {
		f := newServiceFixture()
		f.brackets.On("FindByProduct", ctx, productID).Return([]*pricing.PriceBracket{}, nil)
		f.flatPrices.On("FindActiveByProduct", ctx, productID).Return([]*pricing.ProductPrice{}, nil)

		_, err := f.service.CalculatePriceForQuantity(ctx, productID, nil, dec("5"), pricing.PriceTypeRegular, asOf)
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.service.CalculatePriceForQuantity(ctx, productID, nil, dec("0"), pricing.PriceTypeRegular, asOf)
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestPricingService_QuoteCacheRespectsAsOf(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	now := time.Now()
	from := now.AddDate(0, -1, 0)

	f := newServiceFixture()
	cache := newMapPriceCache()
	f.service.SetPriceCache(cache)
	bracket := selectedBracket(t, productID, from)

	f.brackets.On("FindByProduct", ctx, productID).Return([]*pricing.PriceBracket{bracket}, nil)
	f.flatPrices.On("FindActiveByProduct", ctx, productID).Return([]*pricing.ProductPrice{}, nil)

	t.Run("current quote is cached and reused", func(t *testing.T) {
		quote, err := f.service.CalculatePriceForQuantity(ctx, productID, nil, dec("5"), pricing.PriceTypeRegular, now)
		require.NoError(t, err)
		assert.True(t, quote.UnitPrice.Equal(dec("100")))
		require.Len(t, cache.entries, 1)

		again, err := f.service.CalculatePriceForQuantity(ctx, productID, nil, dec("5"), pricing.PriceTypeRegular, time.Now())
		require.NoError(t, err)
		assert.True(t, again.UnitPrice.Equal(dec("100")))
		f.brackets.AssertNumberOfCalls(t, "FindByProduct", 1)
	})

	t.Run("historical as-of never sees the cached current price", func(t *testing.T) {
		before := from.AddDate(0, -6, 0)
		_, err := f.service.CalculatePriceForQuantity(ctx, productID, nil, dec("5"), pricing.PriceTypeRegular, before)
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
		// and the historical miss is not written back either
		assert.Len(t, cache.entries, 1)
	})

	t.Run("future as-of bypasses the cache too", func(t *testing.T) {
		later := now.AddDate(1, 0, 0)
		quote, err := f.service.CalculatePriceForQuantity(ctx, productID, nil, dec("5"), pricing.PriceTypeRegular, later)
		require.NoError(t, err)
		assert.True(t, quote.UnitPrice.Equal(dec("100")))
		assert.Len(t, cache.entries, 1)
	})
}

func TestPricingService_GetPricingBreakdown(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	from := asOf.AddDate(0, -1, 0)

	f := newServiceFixture()
	customer := valuedCustomer(t)
	bracket := selectedBracket(t, productID, from)
	custom, err := pricing.NewCustomerCustomPrice(customer.ID, productID, dec("1"), nil, dec("75"), from, nil)
	require.NoError(t, err)
	flat, err := pricing.NewProductPrice(productID, dec("110"), dec("100"), dec("115"), dec("60"), from)
	require.NoError(t, err)
	require.NoError(t, flat.Activate(from))

	f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
	f.customPrices.On("FindActiveByCustomerAndProduct", ctx, customer.ID, productID, asOf).
		Return([]*pricing.CustomerCustomPrice{custom}, nil)
	f.brackets.On("FindByProduct", ctx, productID).Return([]*pricing.PriceBracket{bracket}, nil)
	f.flatPrices.On("FindActiveByProduct", ctx, productID).Return([]*pricing.ProductPrice{flat}, nil)

	breakdown, err := f.service.GetPricingBreakdown(ctx, productID, &customer.ID, dec("5"), pricing.PriceTypeRegular, asOf)
	require.NoError(t, err)
	require.Len(t, breakdown.Rows, 3)

	assert.Equal(t, pricing.ResolutionSourceCustom, breakdown.Rows[0].Source)
	assert.True(t, breakdown.Rows[0].Available)
	assert.True(t, breakdown.Rows[0].Applied)

	assert.Equal(t, pricing.ResolutionSourceBracket, breakdown.Rows[1].Source)
	assert.True(t, breakdown.Rows[1].Available)
	assert.False(t, breakdown.Rows[1].Applied)

	assert.Equal(t, pricing.ResolutionSourceFlat, breakdown.Rows[2].Source)
	assert.True(t, breakdown.Rows[2].Available)
	assert.False(t, breakdown.Rows[2].Applied)
}

func TestPricingService_GetOptimalPricingSuggestions(t *testing.T) {
	ctx := context.Background()

	newProduct := func(t *testing.T, cost string) *catalog.Product {
		t.Helper()
		product, err := catalog.NewProduct("SKU-1", "Bond Paper", "ream")
		require.NoError(t, err)
		require.NoError(t, product.SyncPrices(dec(cost), dec("100"), dec("90"), dec("105")))
		return product
	}

	t.Run("price is cost over one minus margin", func(t *testing.T) {
		f := newServiceFixture()
		product := newProduct(t, "80")
		f.products.On("FindByID", ctx, product.ID).Return(product, nil)

		suggestions, err := f.service.GetOptimalPricingSuggestions(ctx, product.ID, dec("0.2"), []decimal.Decimal{dec("1"), dec("10")})
		require.NoError(t, err)
		require.Len(t, suggestions, 2)
		assert.True(t, suggestions[0].SuggestedPrice.Equal(dec("100")))
	})

	t.Run("zero margin clamps to cost", func(t *testing.T) {
		f := newServiceFixture()
		product := newProduct(t, "80")
		f.products.On("FindByID", ctx, product.ID).Return(product, nil)

		suggestions, err := f.service.GetOptimalPricingSuggestions(ctx, product.ID, dec("0"), []decimal.Decimal{dec("1")})
		require.NoError(t, err)
		assert.True(t, suggestions[0].SuggestedPrice.GreaterThanOrEqual(dec("80")))
	})

	t.Run("margin of one or more is rejected", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.service.GetOptimalPricingSuggestions(ctx, uuid.New(), dec("1"), []decimal.Decimal{dec("1")})
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestPricingService_SetCustomPricesForCustomer(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("rejects a non-valued customer", func(t *testing.T) {
		f := newServiceFixture()
		customer, err := partner.NewCustomer("CUST-003", "Plain Retailer")
		require.NoError(t, err)
		f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)

		_, err = f.service.SetCustomPricesForCustomer(ctx, customer.ID, []CustomPriceInput{
			{ProductID: productID, MinQuantity: dec("1"), Price: dec("75"), EffectiveFrom: from},
		}, nil)
		require.Error(t, err)
		assert.True(t, shared.IsConflict(err))
	})

	t.Run("saves rows for a valued customer", func(t *testing.T) {
		f := newServiceFixture()
		customer := valuedCustomer(t)
		f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.customPrices.On("FindByCustomer", ctx, customer.ID).Return([]*pricing.CustomerCustomPrice{}, nil)
		f.customPrices.On("SaveAll", ctx, mock.AnythingOfType("[]*pricing.CustomerCustomPrice")).Return(nil)

		responses, err := f.service.SetCustomPricesForCustomer(ctx, customer.ID, []CustomPriceInput{
			{ProductID: productID, MinQuantity: dec("1"), MaxQuantity: decPtr("10"), Price: dec("75"), EffectiveFrom: from},
			{ProductID: productID, MinQuantity: dec("11"), Price: dec("70"), EffectiveFrom: from},
		}, nil)
		require.NoError(t, err)
		assert.Len(t, responses, 2)
		f.customPrices.AssertExpectations(t)
	})

	t.Run("overlapping rows against existing are rejected", func(t *testing.T) {
		f := newServiceFixture()
		customer := valuedCustomer(t)
		existing, err := pricing.NewCustomerCustomPrice(customer.ID, productID, dec("1"), decPtr("10"), dec("75"), from, nil)
		require.NoError(t, err)

		f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.customPrices.On("FindByCustomer", ctx, customer.ID).Return([]*pricing.CustomerCustomPrice{existing}, nil)

		_, err = f.service.SetCustomPricesForCustomer(ctx, customer.ID, []CustomPriceInput{
			{ProductID: productID, MinQuantity: dec("5"), MaxQuantity: decPtr("15"), Price: dec("70"), EffectiveFrom: from},
		}, nil)
		require.Error(t, err)
		assert.True(t, shared.IsConflict(err))
		f.customPrices.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	})
}

func TestPricingService_GetCustomPricesForCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("non-valued customer is not-found", func(t *testing.T) {
		f := newServiceFixture()
		customer, err := partner.NewCustomer("CUST-004", "Plain Retailer")
		require.NoError(t, err)
		f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)

		_, err = f.service.GetCustomPricesForCustomer(ctx, customer.ID)
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestPricingService_SetFlatPrice(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("closes the previous active row", func(t *testing.T) {
		f := newServiceFixture()
		previous, err := pricing.NewProductPrice(productID, dec("100"), dec("90"), dec("105"), dec("60"), from.AddDate(-1, 0, 0))
		require.NoError(t, err)
		require.NoError(t, previous.Activate(from.AddDate(-1, 0, 0)))

		f.flatPrices.On("FindActiveByProductForUpdate", ctx, productID).Return([]*pricing.ProductPrice{previous}, nil)
		f.flatPrices.On("Save", ctx, mock.AnythingOfType("*pricing.ProductPrice")).Return(nil).Twice()

		price, err := f.service.SetFlatPrice(ctx, SetFlatPriceRequest{
			ProductID:      productID,
			RegularPrice:   dec("110"),
			WholesalePrice: dec("95"),
			WalkInPrice:    dec("115"),
			CostPrice:      dec("65"),
			EffectiveFrom:  from,
		})
		require.NoError(t, err)
		assert.True(t, price.IsActive)
		assert.False(t, previous.IsActive)
		require.NotNil(t, previous.EffectiveTo)
		assert.True(t, previous.EffectiveTo.Equal(from))
		f.flatPrices.AssertExpectations(t)
	})
}
