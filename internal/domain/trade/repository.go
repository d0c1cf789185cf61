package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines persistence operations for purchase orders
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	// FindByIDForUpdate loads the order with a row lock so receiving
	// reconciliation cannot race another revision.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindByNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*PurchaseOrder, int64, error)
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]*PurchaseOrder, int64, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReceivingReportRepository defines persistence operations for receiving reports
type ReceivingReportRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReceivingReport, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*ReceivingReport, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*ReceivingReport, int64, error)
	Save(ctx context.Context, report *ReceivingReport) error
	// ReplaceChildren persists the reconciled item and cost sets, deleting
	// rows that are no longer present.
	ReplaceChildren(ctx context.Context, report *ReceivingReport) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdditionalCostTypeRepository defines persistence operations for cost types
type AdditionalCostTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AdditionalCostType, error)
	FindAll(ctx context.Context) ([]*AdditionalCostType, error)
	// CountUsages reports how many additional cost rows reference the type;
	// deletion is blocked while the count is non-zero.
	CountUsages(ctx context.Context, id uuid.UUID) (int64, error)
	Save(ctx context.Context, costType *AdditionalCostType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SaleRepository defines persistence operations for sales
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindByNumber(ctx context.Context, saleNumber string) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Sale, int64, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*Sale, int64, error)
	Save(ctx context.Context, sale *Sale) error
}

// SaleReturnRepository defines persistence operations for sale returns
type SaleReturnRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SaleReturn, error)
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]*SaleReturn, error)
	Save(ctx context.Context, ret *SaleReturn) error
}
