package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// In-memory fakes so service tests exercise real ledger arithmetic instead
// of stubbed balances.

type fakeLedgerRepo struct {
	entries []*inventory.LedgerEntry
}

func (r *fakeLedgerRepo) Append(_ context.Context, entries ...*inventory.LedgerEntry) error {
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *fakeLedgerRepo) FindBySource(_ context.Context, sourceType inventory.SourceType, sourceID uuid.UUID) ([]*inventory.LedgerEntry, error) {
	var out []*inventory.LedgerEntry
	for _, e := range r.entries {
		if e.SourceType == sourceType && e.SourceID == sourceID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) FindByProduct(_ context.Context, productID uuid.UUID, _ shared.Filter) ([]*inventory.LedgerEntry, error) {
	var out []*inventory.LedgerEntry
	for _, e := range r.entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) OnHand(_ context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.entries {
		if e.ProductID == productID {
			total = total.Add(e.Delta)
		}
	}
	return total, nil
}

func (r *fakeLedgerRepo) OnHandInWarehouse(_ context.Context, productID, warehouseID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.entries {
		if e.ProductID == productID && e.WarehouseID == warehouseID {
			total = total.Add(e.Delta)
		}
	}
	return total, nil
}

func (r *fakeLedgerRepo) StockLevels(_ context.Context, warehouseID *uuid.UUID) ([]inventory.StockLevel, error) {
	type key struct{ product, warehouse uuid.UUID }
	totals := make(map[key]decimal.Decimal)
	var order []key
	for _, e := range r.entries {
		if warehouseID != nil && e.WarehouseID != *warehouseID {
			continue
		}
		k := key{e.ProductID, e.WarehouseID}
		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}
		totals[k] = totals[k].Add(e.Delta)
	}
	levels := make([]inventory.StockLevel, 0, len(order))
	for _, k := range order {
		levels = append(levels, inventory.StockLevel{
			ProductID:   k.product,
			WarehouseID: k.warehouse,
			OnHand:      totals[k],
		})
	}
	return levels, nil
}

func (r *fakeLedgerRepo) MovementsByPeriod(_ context.Context, from, to time.Time) ([]inventory.Movement, error) {
	totals := make(map[inventory.EntryType]decimal.Decimal)
	var order []inventory.EntryType
	for _, e := range r.entries {
		if e.CreatedAt.Before(from) || !e.CreatedAt.Before(to) {
			continue
		}
		if _, ok := totals[e.EntryType]; !ok {
			order = append(order, e.EntryType)
		}
		totals[e.EntryType] = totals[e.EntryType].Add(e.Quantity)
	}
	movements := make([]inventory.Movement, 0, len(order))
	for _, entryType := range order {
		movements = append(movements, inventory.Movement{EntryType: entryType, Total: totals[entryType]})
	}
	return movements, nil
}

type fakeAdjustmentRepo struct {
	byID map[uuid.UUID]*inventory.InventoryAdjustment
}

func newFakeAdjustmentRepo() *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{byID: make(map[uuid.UUID]*inventory.InventoryAdjustment)}
}

func (r *fakeAdjustmentRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.InventoryAdjustment, error) {
	if a, ok := r.byID[id]; ok {
		return a, nil
	}
	return nil, shared.NewNotFoundError("ADJUSTMENT_NOT_FOUND", "Adjustment not found")
}

func (r *fakeAdjustmentRepo) FindByProduct(_ context.Context, productID uuid.UUID) ([]*inventory.InventoryAdjustment, error) {
	var out []*inventory.InventoryAdjustment
	for _, a := range r.byID {
		if a.ProductID == productID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAdjustmentRepo) FindAll(_ context.Context, _ shared.Filter) ([]*inventory.InventoryAdjustment, int64, error) {
	out := make([]*inventory.InventoryAdjustment, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAdjustmentRepo) Save(_ context.Context, adjustment *inventory.InventoryAdjustment) error {
	r.byID[adjustment.ID] = adjustment
	return nil
}

type fakeTransferRepo struct {
	byID map[uuid.UUID]*inventory.Transfer
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{byID: make(map[uuid.UUID]*inventory.Transfer)}
}

func (r *fakeTransferRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Transfer, error) {
	if t, ok := r.byID[id]; ok {
		return t, nil
	}
	return nil, shared.NewNotFoundError("TRANSFER_NOT_FOUND", "Transfer not found")
}

func (r *fakeTransferRepo) FindByNumber(_ context.Context, transferNumber string) (*inventory.Transfer, error) {
	for _, t := range r.byID {
		if t.TransferNumber == transferNumber {
			return t, nil
		}
	}
	return nil, shared.NewNotFoundError("TRANSFER_NOT_FOUND", "Transfer not found")
}

func (r *fakeTransferRepo) FindAll(_ context.Context, _ shared.Filter) ([]*inventory.Transfer, int64, error) {
	out := make([]*inventory.Transfer, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTransferRepo) Save(_ context.Context, transfer *inventory.Transfer) error {
	r.byID[transfer.ID] = transfer
	return nil
}

type fakeProductRepo struct {
	byID map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo(products ...*catalog.Product) *fakeProductRepo {
	r := &fakeProductRepo{byID: make(map[uuid.UUID]*catalog.Product)}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, shared.NewNotFoundError("PRODUCT_NOT_FOUND", "Product not found")
}

func (r *fakeProductRepo) FindBySKU(_ context.Context, sku string) (*catalog.Product, error) {
	for _, p := range r.byID {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, shared.NewNotFoundError("PRODUCT_NOT_FOUND", "Product not found")
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	var out []*catalog.Product
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]*catalog.Product, int64, error) {
	out := make([]*catalog.Product, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) FindByCategory(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]*catalog.Product, int64, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.byID[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

type fakeWarehouseRepo struct {
	byID map[uuid.UUID]*partner.Warehouse
}

func newFakeWarehouseRepo(warehouses ...*partner.Warehouse) *fakeWarehouseRepo {
	r := &fakeWarehouseRepo{byID: make(map[uuid.UUID]*partner.Warehouse)}
	for _, w := range warehouses {
		r.byID[w.ID] = w
	}
	return r
}

func (r *fakeWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Warehouse, error) {
	if w, ok := r.byID[id]; ok {
		return w, nil
	}
	return nil, shared.NewNotFoundError("WAREHOUSE_NOT_FOUND", "Warehouse not found")
}

func (r *fakeWarehouseRepo) FindDefault(_ context.Context) (*partner.Warehouse, error) {
	for _, w := range r.byID {
		if w.IsDefault {
			return w, nil
		}
	}
	return nil, shared.NewNotFoundError("WAREHOUSE_NOT_FOUND", "No default warehouse")
}

func (r *fakeWarehouseRepo) FindAll(_ context.Context) ([]*partner.Warehouse, error) {
	out := make([]*partner.Warehouse, 0, len(r.byID))
	for _, w := range r.byID {
		out = append(out, w)
	}
	return out, nil
}

func (r *fakeWarehouseRepo) Save(_ context.Context, warehouse *partner.Warehouse) error {
	r.byID[warehouse.ID] = warehouse
	return nil
}

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}
