package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockLevel is an on-hand quantity for a product, optionally per warehouse
type StockLevel struct {
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
	OnHand      decimal.Decimal
}

// Movement is an aggregated ledger total for one entry type within a period
type Movement struct {
	EntryType EntryType
	Total     decimal.Decimal
}

// LedgerRepository persists the append-only stock ledger. Entries are never
// updated or deleted; corrections are new offsetting entries.
type LedgerRepository interface {
	Append(ctx context.Context, entries ...*LedgerEntry) error
	FindBySource(ctx context.Context, sourceType SourceType, sourceID uuid.UUID) ([]*LedgerEntry, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]*LedgerEntry, error)
	OnHand(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
	OnHandInWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (decimal.Decimal, error)
	StockLevels(ctx context.Context, warehouseID *uuid.UUID) ([]StockLevel, error)
	MovementsByPeriod(ctx context.Context, from, to time.Time) ([]Movement, error)
}

// AdjustmentRepository persists inventory adjustments
type AdjustmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryAdjustment, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*InventoryAdjustment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*InventoryAdjustment, int64, error)
	Save(ctx context.Context, adjustment *InventoryAdjustment) error
}

// TransferRepository persists warehouse transfers
type TransferRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transfer, error)
	FindByNumber(ctx context.Context, transferNumber string) (*Transfer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Transfer, int64, error)
	Save(ctx context.Context, transfer *Transfer) error
}
