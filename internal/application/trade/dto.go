package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/retailcore/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// PurchaseOrderItemInput is one ordered line in a create request
type PurchaseOrderItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost" binding:"required"`
}

// CreatePurchaseOrderRequest creates a draft purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID  uuid.UUID                `json:"supplier_id" binding:"required"`
	WarehouseID *uuid.UUID               `json:"warehouse_id,omitempty"`
	Remark      string                   `json:"remark"`
	Items       []PurchaseOrderItemInput `json:"items" binding:"required,min=1"`
	CreatedBy   *uuid.UUID               `json:"-"`
}

// PurchaseOrderItemResponse is one ordered line in a response
type PurchaseOrderItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	ProductSKU       string          `json:"product_sku"`
	Unit             string          `json:"unit"`
	OrderedQuantity  decimal.Decimal `json:"ordered_quantity"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Amount           decimal.Decimal `json:"amount"`
}

// PurchaseOrderResponse is a purchase order in a response
type PurchaseOrderResponse struct {
	ID           uuid.UUID                   `json:"id"`
	OrderNumber  string                      `json:"order_number"`
	SupplierID   uuid.UUID                   `json:"supplier_id"`
	SupplierName string                      `json:"supplier_name"`
	WarehouseID  *uuid.UUID                  `json:"warehouse_id,omitempty"`
	Status       trade.PurchaseOrderStatus   `json:"status"`
	TotalAmount  decimal.Decimal             `json:"total_amount"`
	Remark       string                      `json:"remark,omitempty"`
	Items        []PurchaseOrderItemResponse `json:"items"`
	ConfirmedAt  *time.Time                  `json:"confirmed_at,omitempty"`
	CompletedAt  *time.Time                  `json:"completed_at,omitempty"`
	CancelledAt  *time.Time                  `json:"cancelled_at,omitempty"`
	CancelReason string                      `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
}

// ToPurchaseOrderResponse converts a purchase order to its response form
func ToPurchaseOrderResponse(order *trade.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, PurchaseOrderItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			ProductSKU:       item.ProductSKU,
			Unit:             item.Unit,
			OrderedQuantity:  item.OrderedQuantity,
			ReceivedQuantity: item.ReceivedQuantity,
			UnitCost:         item.UnitCost,
			Amount:           item.Amount,
		})
	}
	return PurchaseOrderResponse{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		SupplierID:   order.SupplierID,
		SupplierName: order.SupplierName,
		WarehouseID:  order.WarehouseID,
		Status:       order.Status,
		TotalAmount:  order.TotalAmount,
		Remark:       order.Remark,
		Items:        items,
		ConfirmedAt:  order.ConfirmedAt,
		CompletedAt:  order.CompletedAt,
		CancelledAt:  order.CancelledAt,
		CancelReason: order.CancelReason,
		CreatedAt:    order.CreatedAt,
	}
}

// ReceivedItemInput is one received line in a create/update request. A nil
// ID inserts; a set ID updates the matching line; stored lines absent from
// the request are removed.
type ReceivedItemInput struct {
	ID             *uuid.UUID      `json:"id,omitempty"`
	OrderItemID    uuid.UUID       `json:"order_item_id" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost       decimal.Decimal `json:"unit_cost" binding:"required"`
	RegularPrice   decimal.Decimal `json:"regular_price" binding:"required"`
	WholesalePrice decimal.Decimal `json:"wholesale_price" binding:"required"`
	WalkInPrice    decimal.Decimal `json:"walk_in_price" binding:"required"`
}

// AdditionalCostInput is one cost line in a create/update request. Whether
// it adds or deducts comes from the referenced cost type.
type AdditionalCostInput struct {
	ID          *uuid.UUID      `json:"id,omitempty"`
	CostTypeID  uuid.UUID       `json:"cost_type_id" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// CreateReportRequest records a receiving event against a purchase order
type CreateReportRequest struct {
	OrderID         uuid.UUID             `json:"order_id" binding:"required"`
	ReceivedAt      time.Time             `json:"received_at"`
	Remark          string                `json:"remark"`
	Items           []ReceivedItemInput   `json:"items" binding:"required,min=1"`
	AdditionalCosts []AdditionalCostInput `json:"additional_costs"`
	CreatedBy       *uuid.UUID            `json:"-"`
}

// UpdateReportRequest revises a receiving report's items and costs
type UpdateReportRequest struct {
	ReceivedAt      *time.Time            `json:"received_at,omitempty"`
	Remark          *string               `json:"remark,omitempty"`
	Items           []ReceivedItemInput   `json:"items" binding:"required,min=1"`
	AdditionalCosts []AdditionalCostInput `json:"additional_costs"`
}

// ReceivedItemResponse is one received line in a response
type ReceivedItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	OrderItemID    uuid.UUID       `json:"order_item_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	AllocatedCost  decimal.Decimal `json:"allocated_cost"`
	LandedUnitCost decimal.Decimal `json:"landed_unit_cost"`
	RegularPrice   decimal.Decimal `json:"regular_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	WalkInPrice    decimal.Decimal `json:"walk_in_price"`
}

// AdditionalCostResponse is one cost line in a response
type AdditionalCostResponse struct {
	ID          uuid.UUID       `json:"id"`
	CostTypeID  uuid.UUID       `json:"cost_type_id"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	IsDeduction bool            `json:"is_deduction"`
}

// ReceivingReportResponse is a receiving report in a response
type ReceivingReportResponse struct {
	ID                  uuid.UUID                `json:"id"`
	ReportNumber        string                   `json:"report_number"`
	OrderID             uuid.UUID                `json:"order_id"`
	WarehouseID         uuid.UUID                `json:"warehouse_id"`
	SupplierID          uuid.UUID                `json:"supplier_id"`
	ReceivedAt          time.Time                `json:"received_at"`
	Remark              string                   `json:"remark,omitempty"`
	Items               []ReceivedItemResponse   `json:"items"`
	AdditionalCosts     []AdditionalCostResponse `json:"additional_costs"`
	TotalItemCost       decimal.Decimal          `json:"total_item_cost"`
	TotalAdditionalCost decimal.Decimal          `json:"total_additional_cost"`
	TotalLandedCost     decimal.Decimal          `json:"total_landed_cost"`
	CreatedAt           time.Time                `json:"created_at"`
}

// ToReceivingReportResponse converts a report to its response form
func ToReceivingReportResponse(report *trade.ReceivingReport) ReceivingReportResponse {
	items := make([]ReceivedItemResponse, 0, len(report.Items))
	for i := range report.Items {
		item := &report.Items[i]
		items = append(items, ReceivedItemResponse{
			ID:             item.ID,
			OrderItemID:    item.OrderItemID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitCost:       item.UnitCost,
			AllocatedCost:  item.AllocatedCost,
			LandedUnitCost: item.LandedUnitCost(),
			RegularPrice:   item.RegularPrice,
			WholesalePrice: item.WholesalePrice,
			WalkInPrice:    item.WalkInPrice,
		})
	}
	costs := make([]AdditionalCostResponse, 0, len(report.AdditionalCosts))
	for _, cost := range report.AdditionalCosts {
		costs = append(costs, AdditionalCostResponse{
			ID:          cost.ID,
			CostTypeID:  cost.CostTypeID,
			Description: cost.Description,
			Amount:      cost.Amount,
			IsDeduction: cost.IsDeduction,
		})
	}
	return ReceivingReportResponse{
		ID:                  report.ID,
		ReportNumber:        report.ReportNumber,
		OrderID:             report.OrderID,
		WarehouseID:         report.WarehouseID,
		SupplierID:          report.SupplierID,
		ReceivedAt:          report.ReceivedAt,
		Remark:              report.Remark,
		Items:               items,
		AdditionalCosts:     costs,
		TotalItemCost:       report.TotalItemCost(),
		TotalAdditionalCost: report.TotalAdditionalCost(),
		TotalLandedCost:     report.TotalLandedCost(),
		CreatedAt:           report.CreatedAt,
	}
}

// CostTypeRequest creates or renames an additional cost type
type CostTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	IsDeduction bool   `json:"is_deduction"`
}

// CostTypeResponse is a cost type in a response
type CostTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	IsDeduction bool      `json:"is_deduction"`
	IsActive    bool      `json:"is_active"`
}

// ToCostTypeResponse converts a cost type to its response form
func ToCostTypeResponse(costType *trade.AdditionalCostType) CostTypeResponse {
	return CostTypeResponse{
		ID:          costType.ID,
		Name:        costType.Name,
		IsDeduction: costType.IsDeduction,
		IsActive:    costType.IsActive,
	}
}

// SaleLineInput is one requested line on a sale; the price comes from the
// resolver, never from the caller
type SaleLineInput struct {
	ProductID uuid.UUID         `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal   `json:"quantity" binding:"required"`
	PriceType pricing.PriceType `json:"price_type" binding:"required"`
}

// CreateSaleRequest creates a draft sale with resolver-priced lines
type CreateSaleRequest struct {
	CustomerID  *uuid.UUID      `json:"customer_id,omitempty"` // nil for walk-in
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	Lines       []SaleLineInput `json:"lines" binding:"required,min=1"`
	Discount    decimal.Decimal `json:"discount"`
	ApprovedBy  *uuid.UUID      `json:"-"`
	CreatedBy   *uuid.UUID      `json:"-"`
}

// SaleItemResponse is one sale line in a response
type SaleItemResponse struct {
	ID          uuid.UUID                `json:"id"`
	ProductID   uuid.UUID                `json:"product_id"`
	ProductName string                   `json:"product_name"`
	Quantity    decimal.Decimal          `json:"quantity"`
	UnitPrice   decimal.Decimal          `json:"unit_price"`
	PriceType   pricing.PriceType        `json:"price_type"`
	PriceSource pricing.ResolutionSource `json:"price_source"`
	Amount      decimal.Decimal          `json:"amount"`
	ReturnedQty decimal.Decimal          `json:"returned_qty"`
}

// SaleResponse is a sale in a response
type SaleResponse struct {
	ID             uuid.UUID            `json:"id"`
	SaleNumber     string               `json:"sale_number"`
	CustomerID     *uuid.UUID           `json:"customer_id,omitempty"`
	CustomerName   string               `json:"customer_name,omitempty"`
	WarehouseID    uuid.UUID            `json:"warehouse_id"`
	Status         trade.SaleStatus     `json:"status"`
	PaymentStatus  trade.PaymentStatus  `json:"payment_status"`
	DeliveryStatus trade.DeliveryStatus `json:"delivery_status"`
	TotalAmount    decimal.Decimal      `json:"total_amount"`
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
	NetAmount      decimal.Decimal      `json:"net_amount"`
	PaidAmount     decimal.Decimal      `json:"paid_amount"`
	Items          []SaleItemResponse   `json:"items"`
	ConfirmedAt    *time.Time           `json:"confirmed_at,omitempty"`
	CancelledAt    *time.Time           `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// ToSaleResponse converts a sale to its response form
func ToSaleResponse(sale *trade.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			PriceType:   item.PriceType,
			PriceSource: item.PriceSource,
			Amount:      item.Amount,
			ReturnedQty: item.ReturnedQty,
		})
	}
	return SaleResponse{
		ID:             sale.ID,
		SaleNumber:     sale.SaleNumber,
		CustomerID:     sale.CustomerID,
		CustomerName:   sale.CustomerName,
		WarehouseID:    sale.WarehouseID,
		Status:         sale.Status,
		PaymentStatus:  sale.PaymentStatus,
		DeliveryStatus: sale.DeliveryStatus,
		TotalAmount:    sale.TotalAmount,
		DiscountAmount: sale.DiscountAmount,
		NetAmount:      sale.NetAmount,
		PaidAmount:     sale.PaidAmount,
		Items:          items,
		ConfirmedAt:    sale.ConfirmedAt,
		CancelledAt:    sale.CancelledAt,
		CreatedAt:      sale.CreatedAt,
	}
}

// ReturnLineInput is one returned line in a request
type ReturnLineInput struct {
	SaleItemID uuid.UUID       `json:"sale_item_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateSaleReturnRequest returns part of a confirmed sale
type CreateSaleReturnRequest struct {
	SaleID    uuid.UUID         `json:"sale_id" binding:"required"`
	Lines     []ReturnLineInput `json:"lines" binding:"required,min=1"`
	Reason    string            `json:"reason" binding:"required"`
	CreatedBy *uuid.UUID        `json:"-"`
}

// SaleReturnItemResponse is one returned line in a response
type SaleReturnItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	SaleItemID uuid.UUID       `json:"sale_item_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Amount     decimal.Decimal `json:"amount"`
}

// SaleReturnResponse is a sale return in a response
type SaleReturnResponse struct {
	ID           uuid.UUID                `json:"id"`
	ReturnNumber string                   `json:"return_number"`
	SaleID       uuid.UUID                `json:"sale_id"`
	WarehouseID  uuid.UUID                `json:"warehouse_id"`
	TotalAmount  decimal.Decimal          `json:"total_amount"`
	Reason       string                   `json:"reason"`
	Items        []SaleReturnItemResponse `json:"items"`
	CreatedAt    time.Time                `json:"created_at"`
}

// ToSaleReturnResponse converts a sale return to its response form
func ToSaleReturnResponse(ret *trade.SaleReturn) SaleReturnResponse {
	items := make([]SaleReturnItemResponse, 0, len(ret.Items))
	for _, item := range ret.Items {
		items = append(items, SaleReturnItemResponse{
			ID:         item.ID,
			SaleItemID: item.SaleItemID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Amount:     item.Amount,
		})
	}
	return SaleReturnResponse{
		ID:           ret.ID,
		ReturnNumber: ret.ReturnNumber,
		SaleID:       ret.SaleID,
		WarehouseID:  ret.WarehouseID,
		TotalAmount:  ret.TotalAmount,
		Reason:       ret.Reason,
		Items:        items,
		CreatedAt:    ret.CreatedAt,
	}
}
