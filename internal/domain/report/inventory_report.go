package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMovementSummary folds a product's ledger entries within a period
// into directional totals, optionally scoped to one warehouse
type StockMovementSummary struct {
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	ProductSKU     string          `json:"product_sku"`
	WarehouseID    *uuid.UUID      `json:"warehouse_id,omitempty"`
	Received       decimal.Decimal `json:"received"`
	Sold           decimal.Decimal `json:"sold"`
	Returned       decimal.Decimal `json:"returned"`
	Adjusted       decimal.Decimal `json:"adjusted"` // signed net of manual adjustments
	TransferredIn  decimal.Decimal `json:"transferred_in"`
	TransferredOut decimal.Decimal `json:"transferred_out"`
	NetChange      decimal.Decimal `json:"net_change"`
}

// StockValuation is a product's on-hand quantity at its current cost
type StockValuation struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	OnHand      decimal.Decimal `json:"on_hand"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// ReorderAlert is an active product at or below its reorder level
type ReorderAlert struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductSKU   string          `json:"product_sku"`
	OnHand       decimal.Decimal `json:"on_hand"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// InventoryReportRepository aggregates the stock ledger with SQL. Read-only:
// implementations never write.
type InventoryReportRepository interface {
	MovementSummary(ctx context.Context, from, to time.Time, warehouseID *uuid.UUID) ([]StockMovementSummary, error)
	Valuation(ctx context.Context, warehouseID *uuid.UUID) ([]StockValuation, error)
	BelowReorder(ctx context.Context) ([]ReorderAlert, error)
}
