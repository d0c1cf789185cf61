package trade

import (
	"context"
	"fmt"
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

// PriceResolver resolves one line's unit price through the pricing chain:
// custom price, then selected bracket, then flat price.
type PriceResolver interface {
	ResolvePrice(ctx context.Context, productID uuid.UUID, customerID *uuid.UUID, quantity decimal.Decimal, priceType pricing.PriceType, asOf time.Time) (*pricing.Resolution, error)
}

// SalesOrderService creates and manages sales. Line prices always come from
// the resolver and are snapshotted onto the sale; later pricing changes
// never touch an existing sale.
type SalesOrderService struct {
	txScope           TransactionScope
	saleRepo          trade.SaleRepository
	customerRepo      partner.CustomerRepository
	warehouseRepo     partner.WarehouseRepository
	productRepo       catalog.ProductRepository
	resolver          PriceResolver
	discountThreshold decimal.Decimal
	publisher         shared.EventPublisher
}

// NewSalesOrderService creates a new SalesOrderService. Discounts above the
// threshold require an approver.
func NewSalesOrderService(
	txScope TransactionScope,
	saleRepo trade.SaleRepository,
	customerRepo partner.CustomerRepository,
	warehouseRepo partner.WarehouseRepository,
	productRepo catalog.ProductRepository,
	resolver PriceResolver,
	discountThreshold decimal.Decimal,
) *SalesOrderService {
	return &SalesOrderService{
		txScope:           txScope,
		saleRepo:          saleRepo,
		customerRepo:      customerRepo,
		warehouseRepo:     warehouseRepo,
		productRepo:       productRepo,
		resolver:          resolver,
		discountThreshold: discountThreshold,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// CreateSale opens a draft sale with every line priced through the resolver
// at creation time. A nil customer id means a walk-in sale.
func (s *SalesOrderService) CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	customerName := ""
	if req.CustomerID != nil {
		customer, err := s.customerRepo.FindByID(ctx, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		customerName = customer.Name
	}

	sale, err := trade.NewSale(newDocumentNumber("SO"), req.CustomerID, customerName, warehouse.ID)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		sale.SetCreatedBy(*req.CreatedBy)
	}

	now := time.Now()
	for _, line := range req.Lines {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsActive() {
			return nil, shared.NewValidationError("PRODUCT_INACTIVE",
				fmt.Sprintf("Product %s is inactive", product.SKU))
		}
		resolution, err := s.resolver.ResolvePrice(ctx, product.ID, req.CustomerID,
			line.Quantity, line.PriceType, now)
		if err != nil {
			return nil, err
		}
		if _, err := sale.AddItem(product.ID, product.Name, line.Quantity, resolution); err != nil {
			return nil, err
		}
	}

	if req.Discount.IsPositive() {
		if err := sale.ApplyDiscount(req.Discount, s.discountThreshold, req.ApprovedBy); err != nil {
			return nil, err
		}
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	s.publish(ctx, trade.NewSaleCreatedEvent(sale))

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// ApplyDiscount sets the discount on a draft sale. Above the threshold an
// approver is required; below it any prior approval is cleared.
func (s *SalesOrderService) ApplyDiscount(ctx context.Context, saleID uuid.UUID, discount decimal.Decimal, approvedBy *uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := sale.ApplyDiscount(discount, s.discountThreshold, approvedBy); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// ConfirmSale commits a draft sale: every line's stock is checked in the
// sale's warehouse and the outbound ledger entries are appended in the same
// transaction. Insufficient stock on any line rejects the whole sale.
func (s *SalesOrderService) ConfirmSale(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	var sale *trade.Sale
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.Sales().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}

		required := make(map[uuid.UUID]decimal.Decimal, len(sale.Items))
		for _, item := range sale.Items {
			required[item.ProductID] = required[item.ProductID].Add(item.Quantity)
		}
		for productID, quantity := range required {
			onHand, err := repos.Ledger().OnHandInWarehouse(ctx, productID, sale.WarehouseID)
			if err != nil {
				return err
			}
			if onHand.LessThan(quantity) {
				return shared.NewConflictError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Product %s has %s on hand, %s required",
						productID, onHand, quantity))
			}
		}

		if err := sale.Confirm(); err != nil {
			return err
		}

		entries := make([]*inventory.LedgerEntry, 0, len(sale.Items))
		for _, item := range sale.Items {
			entry, err := inventory.NewLedgerEntry(item.ProductID, sale.WarehouseID,
				inventory.EntryTypeSale, item.Quantity,
				inventory.SourceTypeSale, sale.ID,
				fmt.Sprintf("Sale %s", sale.SaleNumber))
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}

		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}
		return repos.Ledger().Append(ctx, entries...)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, trade.NewSaleConfirmedEvent(sale))

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// CancelSale cancels a sale. Cancelling a confirmed sale restores its stock
// by offsetting the sale's own ledger entries; paid or delivered sales must
// go through the returns flow instead.
func (s *SalesOrderService) CancelSale(ctx context.Context, saleID uuid.UUID, reason string) (*SaleResponse, error) {
	var sale *trade.Sale
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.Sales().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		wasConfirmed := sale.IsConfirmed()

		if err := sale.Cancel(reason); err != nil {
			return err
		}

		if wasConfirmed {
			outbound, err := repos.Ledger().FindBySource(ctx, inventory.SourceTypeSale, sale.ID)
			if err != nil {
				return err
			}
			offsets := make([]*inventory.LedgerEntry, 0, len(outbound))
			for _, entry := range outbound {
				offset, err := entry.Offset(inventory.EntryTypeSalesReturn,
					fmt.Sprintf("Sale %s cancelled", sale.SaleNumber))
				if err != nil {
					return err
				}
				offsets = append(offsets, offset)
			}
			if len(offsets) > 0 {
				if err := repos.Ledger().Append(ctx, offsets...); err != nil {
					return err
				}
			}
		}

		return repos.Sales().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// RecordPayment records a payment against a confirmed sale
func (s *SalesOrderService) RecordPayment(ctx context.Context, saleID uuid.UUID, amount decimal.Decimal) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := sale.RecordPayment(amount); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// MarkDelivered marks a confirmed sale as delivered
func (s *SalesOrderService) MarkDelivered(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := sale.MarkDelivered(); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// GetSale returns one sale by id
func (s *SalesOrderService) GetSale(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// GetSaleByNumber returns one sale by its document number
func (s *SalesOrderService) GetSaleByNumber(ctx context.Context, saleNumber string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByNumber(ctx, saleNumber)
	if err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// ListSales returns a page of sales
func (s *SalesOrderService) ListSales(ctx context.Context, filter shared.Filter) ([]SaleResponse, int64, error) {
	applyFilterDefaults(&filter)
	sales, total, err := s.saleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]SaleResponse, 0, len(sales))
	for _, sale := range sales {
		responses = append(responses, ToSaleResponse(sale))
	}
	return responses, total, nil
}

// ListSalesByCustomer returns a page of one customer's sales
func (s *SalesOrderService) ListSalesByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]SaleResponse, int64, error) {
	applyFilterDefaults(&filter)
	sales, total, err := s.saleRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]SaleResponse, 0, len(sales))
	for _, sale := range sales {
		responses = append(responses, ToSaleResponse(sale))
	}
	return responses, total, nil
}

func (s *SalesOrderService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
}
