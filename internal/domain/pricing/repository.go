package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
)

// PriceBracketRepository defines the interface for price bracket persistence
type PriceBracketRepository interface {
	// FindByID finds a bracket (with items) by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PriceBracket, error)

	// FindByProduct finds all brackets for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*PriceBracket, error)

	// FindSelectedByProduct finds the product's selected bracket, or
	// shared.ErrNotFound when none is selected
	FindSelectedByProduct(ctx context.Context, productID uuid.UUID) (*PriceBracket, error)

	// FindSelectedByProductForUpdate locks the product's selected bracket row
	// for the duration of the surrounding transaction
	FindSelectedByProductForUpdate(ctx context.Context, productID uuid.UUID) (*PriceBracket, error)

	// FindAll lists brackets with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]PriceBracket, error)

	// Save creates or updates a bracket and its items
	Save(ctx context.Context, bracket *PriceBracket) error

	// SaveWithLock saves with an optimistic version check
	SaveWithLock(ctx context.Context, bracket *PriceBracket) error

	// ReplaceItems persists the reconciled item set for a bracket: updates
	// matched rows, inserts new ones, deletes removed ones
	ReplaceItems(ctx context.Context, bracket *PriceBracket) error

	// Delete soft-deletes a bracket
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerCustomPriceRepository defines the interface for custom price persistence
type CustomerCustomPriceRepository interface {
	// FindByID finds a custom price row by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerCustomPrice, error)

	// FindByCustomer finds all rows for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*CustomerCustomPrice, error)

	// FindByCustomerAndProduct finds rows for a (customer, product) pair
	FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) ([]*CustomerCustomPrice, error)

	// FindActiveByCustomerAndProduct finds rows active at the given instant
	FindActiveByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID, at time.Time) ([]*CustomerCustomPrice, error)

	// Save creates or updates a custom price row
	Save(ctx context.Context, price *CustomerCustomPrice) error

	// SaveAll persists a batch of rows
	SaveAll(ctx context.Context, prices []*CustomerCustomPrice) error

	// Delete soft-deletes a row
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductPriceRepository defines the interface for flat product price persistence
type ProductPriceRepository interface {
	// FindByID finds a flat price row by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductPrice, error)

	// FindByProduct finds all rows for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*ProductPrice, error)

	// FindActiveByProduct finds the product's active rows
	FindActiveByProduct(ctx context.Context, productID uuid.UUID) ([]*ProductPrice, error)

	// FindActiveByProductForUpdate locks the product's active rows for the
	// duration of the surrounding transaction
	FindActiveByProductForUpdate(ctx context.Context, productID uuid.UUID) ([]*ProductPrice, error)

	// Save creates or updates a flat price row
	Save(ctx context.Context, price *ProductPrice) error

	// Delete soft-deletes a row
	Delete(ctx context.Context, id uuid.UUID) error
}
