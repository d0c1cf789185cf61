package persistence

import (
	"context"

	appinventory "github.com/retailcore/backend/internal/application/inventory"
	"github.com/retailcore/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// InventoryTransactionScope implements the inventory TransactionScope using
// GORM transactions. Adjustments and transfers write their document and the
// matching ledger entries as one atomic unit.
type InventoryTransactionScope struct {
	db *gorm.DB
}

// NewInventoryTransactionScope creates a new InventoryTransactionScope
func NewInventoryTransactionScope(db *gorm.DB) *InventoryTransactionScope {
	return &InventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error, the transaction is rolled back.
func (s *InventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&inventoryTransactionalRepositories{tx: tx})
	})
}

type inventoryTransactionalRepositories struct {
	tx *gorm.DB
}

// Ledger returns the ledger repository scoped to the current transaction
func (r *inventoryTransactionalRepositories) Ledger() inventory.LedgerRepository {
	return NewGormLedgerRepository(r.tx)
}

// Adjustments returns the adjustment repository scoped to the current transaction
func (r *inventoryTransactionalRepositories) Adjustments() inventory.AdjustmentRepository {
	return NewGormAdjustmentRepository(r.tx)
}

// Transfers returns the transfer repository scoped to the current transaction
func (r *inventoryTransactionalRepositories) Transfers() inventory.TransferRepository {
	return NewGormTransferRepository(r.tx)
}

var _ appinventory.TransactionScope = (*InventoryTransactionScope)(nil)
var _ appinventory.TransactionalRepositories = (*inventoryTransactionalRepositories)(nil)
