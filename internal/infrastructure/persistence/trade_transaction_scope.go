package persistence

import (
	"context"

	apptrade "github.com/retailcore/backend/internal/application/trade"
	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/retailcore/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// TradeTransactionScope implements the trade TransactionScope using GORM
// transactions. Receiving writes the report, the order's received counters,
// the ledger entries and the flat price updates as one atomic unit; sales and
// returns do the same for their documents and ledger entries.
type TradeTransactionScope struct {
	db *gorm.DB
}

// NewTradeTransactionScope creates a new TradeTransactionScope
func NewTradeTransactionScope(db *gorm.DB) *TradeTransactionScope {
	return &TradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error, the transaction is rolled back.
func (s *TradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&tradeTransactionalRepositories{tx: tx})
	})
}

type tradeTransactionalRepositories struct {
	tx *gorm.DB
}

// Orders returns the purchase order repository scoped to the current transaction
func (r *tradeTransactionalRepositories) Orders() trade.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

// Reports returns the receiving report repository scoped to the current transaction
func (r *tradeTransactionalRepositories) Reports() trade.ReceivingReportRepository {
	return NewGormReceivingReportRepository(r.tx)
}

// CostTypes returns the cost type repository scoped to the current transaction
func (r *tradeTransactionalRepositories) CostTypes() trade.AdditionalCostTypeRepository {
	return NewGormAdditionalCostTypeRepository(r.tx)
}

// Sales returns the sale repository scoped to the current transaction
func (r *tradeTransactionalRepositories) Sales() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// SaleReturns returns the sale return repository scoped to the current transaction
func (r *tradeTransactionalRepositories) SaleReturns() trade.SaleReturnRepository {
	return NewGormSaleReturnRepository(r.tx)
}

// Ledger returns the ledger repository scoped to the current transaction
func (r *tradeTransactionalRepositories) Ledger() inventory.LedgerRepository {
	return NewGormLedgerRepository(r.tx)
}

// Products returns the product repository scoped to the current transaction
func (r *tradeTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// FlatPrices returns the flat price repository scoped to the current transaction
func (r *tradeTransactionalRepositories) FlatPrices() pricing.ProductPriceRepository {
	return NewGormProductPriceRepository(r.tx)
}

var _ apptrade.TransactionScope = (*TradeTransactionScope)(nil)
var _ apptrade.TransactionalRepositories = (*tradeTransactionalRepositories)(nil)
