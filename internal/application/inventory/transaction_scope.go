package inventory

import (
	"context"

	"github.com/retailcore/backend/internal/domain/inventory"
)

// TransactionScope executes a function within a database transaction so
// aggregate writes and their ledger entries commit or roll back together
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to one transaction
type TransactionalRepositories interface {
	Ledger() inventory.LedgerRepository
	Adjustments() inventory.AdjustmentRepository
	Transfers() inventory.TransferRepository
}

// NoOpTransactionScope runs the function against the given repositories
// without a real transaction. Used in tests.
type NoOpTransactionScope struct {
	ledgerRepo     inventory.LedgerRepository
	adjustmentRepo inventory.AdjustmentRepository
	transferRepo   inventory.TransferRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	ledgerRepo inventory.LedgerRepository,
	adjustmentRepo inventory.AdjustmentRepository,
	transferRepo inventory.TransferRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		ledgerRepo:     ledgerRepo,
		adjustmentRepo: adjustmentRepo,
		transferRepo:   transferRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Ledger returns the ledger repository
func (s *NoOpTransactionScope) Ledger() inventory.LedgerRepository {
	return s.ledgerRepo
}

// Adjustments returns the adjustment repository
func (s *NoOpTransactionScope) Adjustments() inventory.AdjustmentRepository {
	return s.adjustmentRepo
}

// Transfers returns the transfer repository
func (s *NoOpTransactionScope) Transfers() inventory.TransferRepository {
	return s.transferRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
