package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/retailcore/backend/internal/domain/shared"
)

type fakeCustomerRepo struct {
	byID map[uuid.UUID]*partner.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byID: make(map[uuid.UUID]*partner.Customer)}
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

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{byID: make(map[uuid.UUID]*partner.Supplier)}
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

type fakeWarehouseRepo struct {
	byID map[uuid.UUID]*partner.Warehouse
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{byID: make(map[uuid.UUID]*partner.Warehouse)}
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
	return nil, shared.NewNotFoundError("WAREHOUSE_NOT_FOUND", "No default warehouse configured")
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

type fakeCustomPriceRepo struct {
	byID map[uuid.UUID]*pricing.CustomerCustomPrice
}

func newFakeCustomPriceRepo() *fakeCustomPriceRepo {
	return &fakeCustomPriceRepo{byID: make(map[uuid.UUID]*pricing.CustomerCustomPrice)}
}

func (r *fakeCustomPriceRepo) FindByID(_ context.Context, id uuid.UUID) (*pricing.CustomerCustomPrice, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, shared.NewNotFoundError("PRICE_NOT_FOUND", "Custom price not found")
}

func (r *fakeCustomPriceRepo) FindByCustomer(_ context.Context, customerID uuid.UUID) ([]*pricing.CustomerCustomPrice, error) {
	var out []*pricing.CustomerCustomPrice
	for _, p := range r.byID {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeCustomPriceRepo) FindByCustomerAndProduct(_ context.Context, customerID, productID uuid.UUID) ([]*pricing.CustomerCustomPrice, error) {
	var out []*pricing.CustomerCustomPrice
	for _, p := range r.byID {
		if p.CustomerID == customerID && p.ProductID == productID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeCustomPriceRepo) FindActiveByCustomerAndProduct(_ context.Context, customerID, productID uuid.UUID, at time.Time) ([]*pricing.CustomerCustomPrice, error) {
	var out []*pricing.CustomerCustomPrice
	for _, p := range r.byID {
		if p.CustomerID == customerID && p.ProductID == productID && p.IsActive && p.EffectiveRange().Contains(at) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeCustomPriceRepo) Save(_ context.Context, price *pricing.CustomerCustomPrice) error {
	r.byID[price.ID] = price
	return nil
}

func (r *fakeCustomPriceRepo) SaveAll(_ context.Context, prices []*pricing.CustomerCustomPrice) error {
	for _, p := range prices {
		r.byID[p.ID] = p
	}
	return nil
}

func (r *fakeCustomPriceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

var (
	_ partner.CustomerRepository            = (*fakeCustomerRepo)(nil)
	_ partner.SupplierRepository            = (*fakeSupplierRepo)(nil)
	_ partner.WarehouseRepository           = (*fakeWarehouseRepo)(nil)
	_ pricing.CustomerCustomPriceRepository = (*fakeCustomPriceRepo)(nil)
)
