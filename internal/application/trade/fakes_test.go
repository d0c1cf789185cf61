package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// In-memory fakes so service tests run real ledger arithmetic and real
// aggregate reconciliation instead of stubbed results.

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

func (r *fakeLedgerRepo) StockLevels(_ context.Context, _ *uuid.UUID) ([]inventory.StockLevel, error) {
	return nil, nil
}

func (r *fakeLedgerRepo) MovementsByPeriod(_ context.Context, _, _ time.Time) ([]inventory.Movement, error) {
	return nil, nil
}

type fakeOrderRepo struct {
	byID map[uuid.UUID]*trade.PurchaseOrder
}

func newFakeOrderRepo(orders ...*trade.PurchaseOrder) *fakeOrderRepo {
	r := &fakeOrderRepo{byID: make(map[uuid.UUID]*trade.PurchaseOrder)}
	for _, o := range orders {
		r.byID[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	if o, ok := r.byID[id]; ok {
		return o, nil
	}
	return nil, shared.NewNotFoundError("ORDER_NOT_FOUND", "Purchase order not found")
}

func (r *fakeOrderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeOrderRepo) FindByNumber(_ context.Context, orderNumber string) (*trade.PurchaseOrder, error) {
	for _, o := range r.byID {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return nil, shared.NewNotFoundError("ORDER_NOT_FOUND", "Purchase order not found")
}

func (r *fakeOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]*trade.PurchaseOrder, int64, error) {
	out := make([]*trade.PurchaseOrder, 0, len(r.byID))
	for _, o := range r.byID {
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) FindBySupplier(_ context.Context, supplierID uuid.UUID, _ shared.Filter) ([]*trade.PurchaseOrder, int64, error) {
	var out []*trade.PurchaseOrder
	for _, o := range r.byID {
		if o.SupplierID == supplierID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) Save(_ context.Context, order *trade.PurchaseOrder) error {
	r.byID[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

type fakeReportRepo struct {
	byID map[uuid.UUID]*trade.ReceivingReport
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{byID: make(map[uuid.UUID]*trade.ReceivingReport)}
}

func (r *fakeReportRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.ReceivingReport, error) {
	if report, ok := r.byID[id]; ok {
		return report, nil
	}
	return nil, shared.NewNotFoundError("REPORT_NOT_FOUND", "Receiving report not found")
}

func (r *fakeReportRepo) FindByOrder(_ context.Context, orderID uuid.UUID) ([]*trade.ReceivingReport, error) {
	var out []*trade.ReceivingReport
	for _, report := range r.byID {
		if report.OrderID == orderID {
			out = append(out, report)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) FindAll(_ context.Context, _ shared.Filter) ([]*trade.ReceivingReport, int64, error) {
	out := make([]*trade.ReceivingReport, 0, len(r.byID))
	for _, report := range r.byID {
		out = append(out, report)
	}
	return out, int64(len(out)), nil
}

func (r *fakeReportRepo) Save(_ context.Context, report *trade.ReceivingReport) error {
	r.byID[report.ID] = report
	return nil
}

func (r *fakeReportRepo) ReplaceChildren(_ context.Context, report *trade.ReceivingReport) error {
	r.byID[report.ID] = report
	return nil
}

func (r *fakeReportRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

type fakeCostTypeRepo struct {
	byID   map[uuid.UUID]*trade.AdditionalCostType
	usages map[uuid.UUID]int64
}

func newFakeCostTypeRepo(costTypes ...*trade.AdditionalCostType) *fakeCostTypeRepo {
	r := &fakeCostTypeRepo{
		byID:   make(map[uuid.UUID]*trade.AdditionalCostType),
		usages: make(map[uuid.UUID]int64),
	}
	for _, t := range costTypes {
		r.byID[t.ID] = t
	}
	return r
}

func (r *fakeCostTypeRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.AdditionalCostType, error) {
	if t, ok := r.byID[id]; ok {
		return t, nil
	}
	return nil, shared.NewNotFoundError("COST_TYPE_NOT_FOUND", "Cost type not found")
}

func (r *fakeCostTypeRepo) FindAll(_ context.Context) ([]*trade.AdditionalCostType, error) {
	out := make([]*trade.AdditionalCostType, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeCostTypeRepo) CountUsages(_ context.Context, id uuid.UUID) (int64, error) {
	return r.usages[id], nil
}

func (r *fakeCostTypeRepo) Save(_ context.Context, costType *trade.AdditionalCostType) error {
	r.byID[costType.ID] = costType
	return nil
}

func (r *fakeCostTypeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

type fakeSaleRepo struct {
	byID map[uuid.UUID]*trade.Sale
}

func newFakeSaleRepo(sales ...*trade.Sale) *fakeSaleRepo {
	r := &fakeSaleRepo{byID: make(map[uuid.UUID]*trade.Sale)}
	for _, s := range sales {
		r.byID[s.ID] = s
	}
	return r
}

func (r *fakeSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.Sale, error) {
	if s, ok := r.byID[id]; ok {
		return s, nil
	}
	return nil, shared.NewNotFoundError("SALE_NOT_FOUND", "Sale not found")
}

func (r *fakeSaleRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeSaleRepo) FindByNumber(_ context.Context, saleNumber string) (*trade.Sale, error) {
	for _, s := range r.byID {
		if s.SaleNumber == saleNumber {
			return s, nil
		}
	}
	return nil, shared.NewNotFoundError("SALE_NOT_FOUND", "Sale not found")
}

func (r *fakeSaleRepo) FindAll(_ context.Context, _ shared.Filter) ([]*trade.Sale, int64, error) {
	out := make([]*trade.Sale, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) FindByCustomer(_ context.Context, customerID uuid.UUID, _ shared.Filter) ([]*trade.Sale, int64, error) {
	var out []*trade.Sale
	for _, s := range r.byID {
		if s.CustomerID != nil && *s.CustomerID == customerID {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) Save(_ context.Context, sale *trade.Sale) error {
	r.byID[sale.ID] = sale
	return nil
}

type fakeReturnRepo struct {
	byID map[uuid.UUID]*trade.SaleReturn
}

func newFakeReturnRepo() *fakeReturnRepo {
	return &fakeReturnRepo{byID: make(map[uuid.UUID]*trade.SaleReturn)}
}

func (r *fakeReturnRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.SaleReturn, error) {
	if ret, ok := r.byID[id]; ok {
		return ret, nil
	}
	return nil, shared.NewNotFoundError("RETURN_NOT_FOUND", "Sale return not found")
}

func (r *fakeReturnRepo) FindBySale(_ context.Context, saleID uuid.UUID) ([]*trade.SaleReturn, error) {
	var out []*trade.SaleReturn
	for _, ret := range r.byID {
		if ret.SaleID == saleID {
			out = append(out, ret)
		}
	}
	return out, nil
}

func (r *fakeReturnRepo) Save(_ context.Context, ret *trade.SaleReturn) error {
	r.byID[ret.ID] = ret
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

type fakeCustomerRepo struct {
	byID map[uuid.UUID]*partner.Customer
}

func newFakeCustomerRepo(customers ...*partner.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{byID: make(map[uuid.UUID]*partner.Customer)}
	for _, c := range customers {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Customer, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, shared.NewNotFoundError("CUSTOMER_NOT_FOUND", "Customer not found")
}

func (r *fakeCustomerRepo) FindByCode(_ context.Context, code string) (*partner.Customer, error) {
	for _, c := range r.byID {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, shared.NewNotFoundError("CUSTOMER_NOT_FOUND", "Customer not found")
}

func (r *fakeCustomerRepo) FindAll(_ context.Context, _ shared.Filter) ([]*partner.Customer, int64, error) {
	out := make([]*partner.Customer, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCustomerRepo) FindValued(_ context.Context) ([]*partner.Customer, error) {
	var out []*partner.Customer
	for _, c := range r.byID {
		if c.IsValuedCustomer {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Save(_ context.Context, customer *partner.Customer) error {
	r.byID[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

type fakeSupplierRepo struct {
	byID map[uuid.UUID]*partner.Supplier
}

func newFakeSupplierRepo(suppliers ...*partner.Supplier) *fakeSupplierRepo {
	r := &fakeSupplierRepo{byID: make(map[uuid.UUID]*partner.Supplier)}
	for _, s := range suppliers {
		r.byID[s.ID] = s
	}
	return r
}

func (r *fakeSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Supplier, error) {
	if s, ok := r.byID[id]; ok {
		return s, nil
	}
	return nil, shared.NewNotFoundError("SUPPLIER_NOT_FOUND", "Supplier not found")
}

func (r *fakeSupplierRepo) FindByCode(_ context.Context, code string) (*partner.Supplier, error) {
	for _, s := range r.byID {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, shared.NewNotFoundError("SUPPLIER_NOT_FOUND", "Supplier not found")
}

func (r *fakeSupplierRepo) FindAll(_ context.Context, _ shared.Filter) ([]*partner.Supplier, int64, error) {
	out := make([]*partner.Supplier, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSupplierRepo) Save(_ context.Context, supplier *partner.Supplier) error {
	r.byID[supplier.ID] = supplier
	return nil
}

func (r *fakeSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

type fakeFlatPriceRepo struct {
	byID map[uuid.UUID]*pricing.ProductPrice
}

func newFakeFlatPriceRepo() *fakeFlatPriceRepo {
	return &fakeFlatPriceRepo{byID: make(map[uuid.UUID]*pricing.ProductPrice)}
}

func (r *fakeFlatPriceRepo) FindByID(_ context.Context, id uuid.UUID) (*pricing.ProductPrice, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, shared.NewNotFoundError("PRICE_NOT_FOUND", "Price row not found")
}

func (r *fakeFlatPriceRepo) FindByProduct(_ context.Context, productID uuid.UUID) ([]*pricing.ProductPrice, error) {
	var out []*pricing.ProductPrice
	for _, p := range r.byID {
		if p.ProductID == productID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeFlatPriceRepo) FindActiveByProduct(_ context.Context, productID uuid.UUID) ([]*pricing.ProductPrice, error) {
	var out []*pricing.ProductPrice
	for _, p := range r.byID {
		if p.ProductID == productID && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeFlatPriceRepo) FindActiveByProductForUpdate(ctx context.Context, productID uuid.UUID) ([]*pricing.ProductPrice, error) {
	return r.FindActiveByProduct(ctx, productID)
}

func (r *fakeFlatPriceRepo) Save(_ context.Context, price *pricing.ProductPrice) error {
	r.byID[price.ID] = price
	return nil
}

func (r *fakeFlatPriceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

// fakeResolver returns a canned resolution per product
type fakeResolver struct {
	resolutions map[uuid.UUID]*pricing.Resolution
	err         error
}

func (r *fakeResolver) ResolvePrice(_ context.Context, productID uuid.UUID, _ *uuid.UUID, _ decimal.Decimal, _ pricing.PriceType, _ time.Time) (*pricing.Resolution, error) {
	if r.err != nil {
		return nil, r.err
	}
	if res, ok := r.resolutions[productID]; ok {
		return res, nil
	}
	return nil, pricing.ErrNoPriceConfigured
}

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}
