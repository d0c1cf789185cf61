package persistence

import (
	"context"

	apppricing "github.com/retailcore/backend/internal/application/pricing"
	"github.com/retailcore/backend/internal/domain/pricing"
	"gorm.io/gorm"
)

// PricingTransactionScope implements the pricing TransactionScope using GORM
// transactions. Bracket activation and flat price changes run through it so
// supersede-and-select pairs commit atomically.
type PricingTransactionScope struct {
	db *gorm.DB
}

// NewPricingTransactionScope creates a new PricingTransactionScope
func NewPricingTransactionScope(db *gorm.DB) *PricingTransactionScope {
	return &PricingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error, the transaction is rolled back.
func (s *PricingTransactionScope) Execute(ctx context.Context, fn func(repos apppricing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pricingTransactionalRepositories{tx: tx})
	})
}

type pricingTransactionalRepositories struct {
	tx *gorm.DB
}

// Brackets returns the bracket repository scoped to the current transaction
func (r *pricingTransactionalRepositories) Brackets() pricing.PriceBracketRepository {
	return NewGormPriceBracketRepository(r.tx)
}

// CustomPrices returns the custom price repository scoped to the current transaction
func (r *pricingTransactionalRepositories) CustomPrices() pricing.CustomerCustomPriceRepository {
	return NewGormCustomerCustomPriceRepository(r.tx)
}

// FlatPrices returns the flat price repository scoped to the current transaction
func (r *pricingTransactionalRepositories) FlatPrices() pricing.ProductPriceRepository {
	return NewGormProductPriceRepository(r.tx)
}

var _ apppricing.TransactionScope = (*PricingTransactionScope)(nil)
var _ apppricing.TransactionalRepositories = (*pricingTransactionalRepositories)(nil)
