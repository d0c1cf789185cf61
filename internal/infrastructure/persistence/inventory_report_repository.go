package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormInventoryReportRepository implements InventoryReportRepository with SQL
// aggregation over the stock ledger. Read-only: it never writes.
type GormInventoryReportRepository struct {
	db *gorm.DB
}

// NewGormInventoryReportRepository creates a new GormInventoryReportRepository
func NewGormInventoryReportRepository(db *gorm.DB) *GormInventoryReportRepository {
	return &GormInventoryReportRepository{db: db}
}

// MovementSummary folds each product's ledger entries within a period into
// directional totals, optionally scoped to one warehouse
func (r *GormInventoryReportRepository) MovementSummary(ctx context.Context, from, to time.Time, warehouseID *uuid.UUID) ([]report.StockMovementSummary, error) {
	query := r.db.WithContext(ctx).
		Model(&inventory.LedgerEntry{}).
		Joins("JOIN products ON products.id = inventory_ledger_entries.product_id").
		Where("inventory_ledger_entries.created_at >= ? AND inventory_ledger_entries.created_at < ?", from, to)
	if warehouseID != nil {
		query = query.Where("inventory_ledger_entries.warehouse_id = ?", *warehouseID)
	}

	var summaries []report.StockMovementSummary
	if err := query.
		Select(`inventory_ledger_entries.product_id,
			products.name AS product_name,
			products.sku AS product_sku,
			COALESCE(SUM(CASE WHEN entry_type IN ('RECEIVING', 'RECEIVING_REVERSAL') THEN delta ELSE 0 END), 0) AS received,
			COALESCE(SUM(CASE WHEN entry_type = 'SALE' THEN quantity ELSE 0 END), 0) AS sold,
			COALESCE(SUM(CASE WHEN entry_type = 'SALES_RETURN' THEN quantity ELSE 0 END), 0) AS returned,
			COALESCE(SUM(CASE WHEN entry_type IN ('ADJUSTMENT_INCREASE', 'ADJUSTMENT_DECREASE') THEN delta ELSE 0 END), 0) AS adjusted,
			COALESCE(SUM(CASE WHEN entry_type IN ('TRANSFER_IN', 'TRANSFER_REVERSAL') THEN quantity ELSE 0 END), 0) AS transferred_in,
			COALESCE(SUM(CASE WHEN entry_type = 'TRANSFER_OUT' THEN quantity ELSE 0 END), 0) AS transferred_out,
			COALESCE(SUM(delta), 0) AS net_change`).
		Group("inventory_ledger_entries.product_id, products.name, products.sku").
		Order("products.name ASC").
		Scan(&summaries).Error; err != nil {
		return nil, err
	}

	if warehouseID != nil {
		for i := range summaries {
			summaries[i].WarehouseID = warehouseID
		}
	}
	return summaries, nil
}

// Valuation reports each product's on-hand quantity at its current cost.
// Products without ledger entries are omitted.
func (r *GormInventoryReportRepository) Valuation(ctx context.Context, warehouseID *uuid.UUID) ([]report.StockValuation, error) {
	query := r.db.WithContext(ctx).
		Model(&inventory.LedgerEntry{}).
		Joins("JOIN products ON products.id = inventory_ledger_entries.product_id")
	if warehouseID != nil {
		query = query.Where("inventory_ledger_entries.warehouse_id = ?", *warehouseID)
	}

	var valuations []report.StockValuation
	if err := query.
		Select(`inventory_ledger_entries.product_id,
			products.name AS product_name,
			products.sku AS product_sku,
			COALESCE(SUM(delta), 0) AS on_hand,
			products.cost_price AS unit_cost,
			COALESCE(SUM(delta), 0) * products.cost_price AS total_value`).
		Group("inventory_ledger_entries.product_id, products.name, products.sku, products.cost_price").
		Order("products.name ASC").
		Scan(&valuations).Error; err != nil {
		return nil, err
	}
	return valuations, nil
}

// BelowReorder lists active products whose on-hand quantity is at or below
// their reorder level. Products without ledger entries count as zero on hand.
func (r *GormInventoryReportRepository) BelowReorder(ctx context.Context) ([]report.ReorderAlert, error) {
	var alerts []report.ReorderAlert
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Joins("LEFT JOIN inventory_ledger_entries ON inventory_ledger_entries.product_id = products.id").
		Where("products.status = ?", catalog.ProductStatusActive).
		Where("products.reorder_level > 0").
		Select(`products.id AS product_id,
			products.name AS product_name,
			products.sku AS product_sku,
			COALESCE(SUM(inventory_ledger_entries.delta), 0) AS on_hand,
			products.reorder_level`).
		Group("products.id, products.name, products.sku, products.reorder_level").
		Having("COALESCE(SUM(inventory_ledger_entries.delta), 0) <= products.reorder_level").
		Order("products.name ASC").
		Scan(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

var _ report.InventoryReportRepository = (*GormInventoryReportRepository)(nil)
