package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerRepository implements LedgerRepository using GORM. The ledger is
// append-only: no update or delete paths exist.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append inserts new ledger entries
func (r *GormLedgerRepository) Append(ctx context.Context, entries ...*inventory.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(entries).Error
}

// FindBySource finds all entries written for one source document
func (r *GormLedgerRepository) FindBySource(ctx context.Context, sourceType inventory.SourceType, sourceID uuid.UUID) ([]*inventory.LedgerEntry, error) {
	var entries []*inventory.LedgerEntry
	if err := r.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", sourceType, sourceID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByProduct lists a product's entries with pagination
func (r *GormLedgerRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]*inventory.LedgerEntry, error) {
	query := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if warehouseID, ok := filter.Filters["warehouse_id"]; ok {
		query = query.Where("warehouse_id = ?", warehouseID)
	}
	if entryType, ok := filter.Filters["entry_type"]; ok {
		query = query.Where("entry_type = ?", entryType)
	}

	var entries []*inventory.LedgerEntry
	query = applyOrdering(query, filter, LedgerSortFields)
	query = applyPagination(query, filter)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// OnHand sums a product's signed deltas across all warehouses
func (r *GormLedgerRepository) OnHand(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&inventory.LedgerEntry{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(delta), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// OnHandInWarehouse sums a product's signed deltas within one warehouse
func (r *GormLedgerRepository) OnHandInWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&inventory.LedgerEntry{}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Select("COALESCE(SUM(delta), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// StockLevels folds the ledger into per-product, per-warehouse on-hand
// quantities, optionally scoped to one warehouse
func (r *GormLedgerRepository) StockLevels(ctx context.Context, warehouseID *uuid.UUID) ([]inventory.StockLevel, error) {
	query := r.db.WithContext(ctx).
		Model(&inventory.LedgerEntry{}).
		Select("product_id, warehouse_id, COALESCE(SUM(delta), 0) AS on_hand").
		Group("product_id, warehouse_id")
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}

	var levels []inventory.StockLevel
	if err := query.Scan(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// MovementsByPeriod totals entry quantities per entry type within a period
func (r *GormLedgerRepository) MovementsByPeriod(ctx context.Context, from, to time.Time) ([]inventory.Movement, error) {
	var movements []inventory.Movement
	if err := r.db.WithContext(ctx).
		Model(&inventory.LedgerEntry{}).
		Select("entry_type, COALESCE(SUM(quantity), 0) AS total").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("entry_type").
		Scan(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

var _ inventory.LedgerRepository = (*GormLedgerRepository)(nil)
