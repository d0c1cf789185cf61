package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockPriceBracketRepository struct {
	mock.Mock
}

func (m *MockPriceBracketRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.PriceBracket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PriceBracket), args.Error(1)
}

func (m *MockPriceBracketRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*pricing.PriceBracket, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.PriceBracket), args.Error(1)
}

func (m *MockPriceBracketRepository) FindSelectedByProduct(ctx context.Context, productID uuid.UUID) (*pricing.PriceBracket, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PriceBracket), args.Error(1)
}

func (m *MockPriceBracketRepository) FindSelectedByProductForUpdate(ctx context.Context, productID uuid.UUID) (*pricing.PriceBracket, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PriceBracket), args.Error(1)
}

func (m *MockPriceBracketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]pricing.PriceBracket, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.PriceBracket), args.Error(1)
}

func (m *MockPriceBracketRepository) Save(ctx context.Context, bracket *pricing.PriceBracket) error {
	args := m.Called(ctx, bracket)
	return args.Error(0)
}

func (m *MockPriceBracketRepository) SaveWithLock(ctx context.Context, bracket *pricing.PriceBracket) error {
	args := m.Called(ctx, bracket)
	return args.Error(0)
}

func (m *MockPriceBracketRepository) ReplaceItems(ctx context.Context, bracket *pricing.PriceBracket) error {
	args := m.Called(ctx, bracket)
	return args.Error(0)
}

func (m *MockPriceBracketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCustomerCustomPriceRepository struct {
	mock.Mock
}

func (m *MockCustomerCustomPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.CustomerCustomPrice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.CustomerCustomPrice), args.Error(1)
}

func (m *MockCustomerCustomPriceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*pricing.CustomerCustomPrice, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.CustomerCustomPrice), args.Error(1)
}

func (m *MockCustomerCustomPriceRepository) FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) ([]*pricing.CustomerCustomPrice, error) {
	args := m.Called(ctx, customerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.CustomerCustomPrice), args.Error(1)
}

func (m *MockCustomerCustomPriceRepository) FindActiveByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID, at time.Time) ([]*pricing.CustomerCustomPrice, error) {
	args := m.Called(ctx, customerID, productID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.CustomerCustomPrice), args.Error(1)
}

func (m *MockCustomerCustomPriceRepository) Save(ctx context.Context, price *pricing.CustomerCustomPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockCustomerCustomPriceRepository) SaveAll(ctx context.Context, prices []*pricing.CustomerCustomPrice) error {
	args := m.Called(ctx, prices)
	return args.Error(0)
}

func (m *MockCustomerCustomPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductPriceRepository struct {
	mock.Mock
}

func (m *MockProductPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.ProductPrice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.ProductPrice), args.Error(1)
}

func (m *MockProductPriceRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*pricing.ProductPrice, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.ProductPrice), args.Error(1)
}

func (m *MockProductPriceRepository) FindActiveByProduct(ctx context.Context, productID uuid.UUID) ([]*pricing.ProductPrice, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.ProductPrice), args.Error(1)
}

func (m *MockProductPriceRepository) FindActiveByProductForUpdate(ctx context.Context, productID uuid.UUID) ([]*pricing.ProductPrice, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.ProductPrice), args.Error(1)
}

func (m *MockProductPriceRepository) Save(ctx context.Context, price *pricing.ProductPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockProductPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mapPriceCache struct {
	entries map[string]*pricing.Resolution
}

func newMapPriceCache() *mapPriceCache {
	return &mapPriceCache{entries: make(map[string]*pricing.Resolution)}
}

func (c *mapPriceCache) Get(_ context.Context, key string) (*pricing.Resolution, bool) {
	resolution, ok := c.entries[key]
	return resolution, ok
}

func (c *mapPriceCache) Set(_ context.Context, key string, resolution *pricing.Resolution) {
	c.entries[key] = resolution
}

func (c *mapPriceCache) InvalidateProduct(context.Context, uuid.UUID) {
	c.entries = make(map[string]*pricing.Resolution)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCode(ctx context.Context, code string) (*partner.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Customer, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*partner.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) FindValued(ctx context.Context) ([]*partner.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, categoryID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
