package pricing

import (
	"context"

	"github.com/retailcore/backend/internal/domain/pricing"
)

// TransactionScope provides transactional access to the pricing repositories.
// All repository operations inside Execute share one database transaction and
// commit or roll back atomically.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the pricing repositories scoped to the
// current transaction
type TransactionalRepositories interface {
	Brackets() pricing.PriceBracketRepository
	CustomPrices() pricing.CustomerCustomPriceRepository
	FlatPrices() pricing.ProductPriceRepository
}

// NoOpTransactionScope runs the function against the given repositories
// without a real transaction. Used in tests.
type NoOpTransactionScope struct {
	bracketRepo pricing.PriceBracketRepository
	customRepo  pricing.CustomerCustomPriceRepository
	flatRepo    pricing.ProductPriceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	bracketRepo pricing.PriceBracketRepository,
	customRepo pricing.CustomerCustomPriceRepository,
	flatRepo pricing.ProductPriceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		bracketRepo: bracketRepo,
		customRepo:  customRepo,
		flatRepo:    flatRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Brackets returns the bracket repository
func (s *NoOpTransactionScope) Brackets() pricing.PriceBracketRepository {
	return s.bracketRepo
}

// CustomPrices returns the custom price repository
func (s *NoOpTransactionScope) CustomPrices() pricing.CustomerCustomPriceRepository {
	return s.customRepo
}

// FlatPrices returns the flat price repository
func (s *NoOpTransactionScope) FlatPrices() pricing.ProductPriceRepository {
	return s.flatRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
