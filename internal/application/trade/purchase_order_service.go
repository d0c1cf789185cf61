package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/retailcore/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// PurchaseOrderService manages the purchase order lifecycle: draft editing,
// confirmation and cancellation. Receiving against a confirmed order is
// handled by ReceivingService.
type PurchaseOrderService struct {
	orderRepo     trade.PurchaseOrderRepository
	supplierRepo  partner.SupplierRepository
	warehouseRepo partner.WarehouseRepository
	productRepo   catalog.ProductRepository
	publisher     shared.EventPublisher
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orderRepo trade.PurchaseOrderRepository,
	supplierRepo partner.SupplierRepository,
	warehouseRepo partner.WarehouseRepository,
	productRepo catalog.ProductRepository,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:     orderRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// CreatePurchaseOrder creates a draft order with a server-generated order
// number. The receiving warehouse defaults to the system default warehouse
// when the request leaves it unset.
func (s *PurchaseOrderService) CreatePurchaseOrder(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	var warehouse *partner.Warehouse
	if req.WarehouseID != nil {
		warehouse, err = s.warehouseRepo.FindByID(ctx, *req.WarehouseID)
	} else {
		warehouse, err = s.warehouseRepo.FindDefault(ctx)
	}
	if err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, product := range products {
		productsByID[product.ID] = product
	}

	order, err := trade.NewPurchaseOrder(newDocumentNumber("PO"), supplier.ID, supplier.Name)
	if err != nil {
		return nil, err
	}
	if err := order.SetWarehouse(warehouse.ID); err != nil {
		return nil, err
	}
	order.SetRemark(req.Remark)
	if req.CreatedBy != nil {
		order.SetCreatedBy(*req.CreatedBy)
	}

	for _, input := range req.Items {
		product, ok := productsByID[input.ProductID]
		if !ok {
			return nil, shared.NewNotFoundError("PRODUCT_NOT_FOUND",
				fmt.Sprintf("Product %s not found", input.ProductID))
		}
		if !product.IsActive() {
			return nil, shared.NewValidationError("PRODUCT_INACTIVE",
				fmt.Sprintf("Product %s is inactive", product.SKU))
		}
		quantity, err := orderQuantity(input.Quantity, product.Unit)
		if err != nil {
			return nil, err
		}
		if _, err := order.AddItem(product.ID, product.Name, product.SKU,
			quantity, valueobject.NewMoneyPHP(input.UnitCost)); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publish(ctx, trade.NewPurchaseOrderCreatedEvent(order))

	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// AddOrderItem adds a line to a draft order
func (s *PurchaseOrderService) AddOrderItem(ctx context.Context, orderID uuid.UUID, input PurchaseOrderItemInput) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	quantity, err := orderQuantity(input.Quantity, product.Unit)
	if err != nil {
		return nil, err
	}
	if _, err := order.AddItem(product.ID, product.Name, product.SKU,
		quantity, valueobject.NewMoneyPHP(input.UnitCost)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// UpdateOrderItemQuantity changes the ordered quantity on a draft line
func (s *PurchaseOrderService) UpdateOrderItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, quantity decimal.Decimal) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.UpdateItemQuantity(itemID, quantity); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// RemoveOrderItem removes a line from a draft order
func (s *PurchaseOrderService) RemoveOrderItem(ctx context.Context, orderID, itemID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// SetOrderWarehouse changes the receiving warehouse of a draft order
func (s *PurchaseOrderService) SetOrderWarehouse(ctx context.Context, orderID, warehouseID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if err := order.SetWarehouse(warehouse.ID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// ConfirmPurchaseOrder moves a draft order to CONFIRMED so goods can be
// received against it
func (s *PurchaseOrderService) ConfirmPurchaseOrder(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Confirm(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publish(ctx, trade.NewPurchaseOrderConfirmedEvent(order))

	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// CancelPurchaseOrder cancels an order that has not received any goods
func (s *PurchaseOrderService) CancelPurchaseOrder(ctx context.Context, orderID uuid.UUID, reason string) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publish(ctx, trade.NewPurchaseOrderCancelledEvent(order))

	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// GetPurchaseOrder returns one order by id
func (s *PurchaseOrderService) GetPurchaseOrder(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// GetPurchaseOrderByNumber returns one order by its document number
func (s *PurchaseOrderService) GetPurchaseOrderByNumber(ctx context.Context, orderNumber string) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// ListPurchaseOrders returns a page of orders
func (s *PurchaseOrderService) ListPurchaseOrders(ctx context.Context, filter shared.Filter) ([]PurchaseOrderResponse, int64, error) {
	applyFilterDefaults(&filter)
	orders, total, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]PurchaseOrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, ToPurchaseOrderResponse(order))
	}
	return responses, total, nil
}

// ListPurchaseOrdersBySupplier returns a page of one supplier's orders
func (s *PurchaseOrderService) ListPurchaseOrdersBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]PurchaseOrderResponse, int64, error) {
	applyFilterDefaults(&filter)
	orders, total, err := s.orderRepo.FindBySupplier(ctx, supplierID, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]PurchaseOrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, ToPurchaseOrderResponse(order))
	}
	return responses, total, nil
}

func (s *PurchaseOrderService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
}

func applyFilterDefaults(filter *shared.Filter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
		filter.OrderDir = "desc"
	}
}

// orderQuantity builds the unit-carrying quantity for an order line from
// the raw request value and the product's unit of measure
func orderQuantity(value decimal.Decimal, unit string) (valueobject.Quantity, error) {
	quantity, err := valueobject.NewQuantity(value, unit)
	if err != nil {
		return valueobject.Quantity{}, shared.NewValidationError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	return quantity, nil
}

// newDocumentNumber builds a human-readable unique document number
func newDocumentNumber(prefix string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"),
		strings.ToUpper(uuid.NewString()[:8]))
}
