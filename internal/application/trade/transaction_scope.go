package trade

import (
	"context"

	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/retailcore/backend/internal/domain/trade"
)

// TransactionScope executes a function within a database transaction.
// Receiving and sales mutate an aggregate, the ledger and price snapshots
// together; the scope guarantees they commit or roll back as one.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to one transaction
type TransactionalRepositories interface {
	Orders() trade.PurchaseOrderRepository
	Reports() trade.ReceivingReportRepository
	CostTypes() trade.AdditionalCostTypeRepository
	Sales() trade.SaleRepository
	SaleReturns() trade.SaleReturnRepository
	Ledger() inventory.LedgerRepository
	Products() catalog.ProductRepository
	FlatPrices() pricing.ProductPriceRepository
}

// NoOpTransactionScope runs the function against the given repositories
// without a real transaction. Used in tests.
type NoOpTransactionScope struct {
	orderRepo     trade.PurchaseOrderRepository
	reportRepo    trade.ReceivingReportRepository
	costTypeRepo  trade.AdditionalCostTypeRepository
	saleRepo      trade.SaleRepository
	returnRepo    trade.SaleReturnRepository
	ledgerRepo    inventory.LedgerRepository
	productRepo   catalog.ProductRepository
	flatPriceRepo pricing.ProductPriceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	orderRepo trade.PurchaseOrderRepository,
	reportRepo trade.ReceivingReportRepository,
	costTypeRepo trade.AdditionalCostTypeRepository,
	saleRepo trade.SaleRepository,
	returnRepo trade.SaleReturnRepository,
	ledgerRepo inventory.LedgerRepository,
	productRepo catalog.ProductRepository,
	flatPriceRepo pricing.ProductPriceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:     orderRepo,
		reportRepo:    reportRepo,
		costTypeRepo:  costTypeRepo,
		saleRepo:      saleRepo,
		returnRepo:    returnRepo,
		ledgerRepo:    ledgerRepo,
		productRepo:   productRepo,
		flatPriceRepo: flatPriceRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the purchase order repository
func (s *NoOpTransactionScope) Orders() trade.PurchaseOrderRepository {
	return s.orderRepo
}

// Reports returns the receiving report repository
func (s *NoOpTransactionScope) Reports() trade.ReceivingReportRepository {
	return s.reportRepo
}

// CostTypes returns the additional cost type repository
func (s *NoOpTransactionScope) CostTypes() trade.AdditionalCostTypeRepository {
	return s.costTypeRepo
}

// Sales returns the sale repository
func (s *NoOpTransactionScope) Sales() trade.SaleRepository {
	return s.saleRepo
}

// SaleReturns returns the sale return repository
func (s *NoOpTransactionScope) SaleReturns() trade.SaleReturnRepository {
	return s.returnRepo
}

// Ledger returns the inventory ledger repository
func (s *NoOpTransactionScope) Ledger() inventory.LedgerRepository {
	return s.ledgerRepo
}

// Products returns the product repository
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.productRepo
}

// FlatPrices returns the flat product price repository
func (s *NoOpTransactionScope) FlatPrices() pricing.ProductPriceRepository {
	return s.flatPriceRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
