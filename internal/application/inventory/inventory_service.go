package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryService handles manual stock adjustments and stock inquiries.
// Every quantity change goes through the ledger; the service never writes a
// balance directly.
type InventoryService struct {
	txScope        TransactionScope
	ledgerRepo     inventory.LedgerRepository
	adjustmentRepo inventory.AdjustmentRepository
	productRepo    catalog.ProductRepository
	warehouseRepo  partner.WarehouseRepository
	publisher      shared.EventPublisher
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	txScope TransactionScope,
	ledgerRepo inventory.LedgerRepository,
	adjustmentRepo inventory.AdjustmentRepository,
	productRepo catalog.ProductRepository,
	warehouseRepo partner.WarehouseRepository,
) *InventoryService {
	return &InventoryService{
		txScope:        txScope,
		ledgerRepo:     ledgerRepo,
		adjustmentRepo: adjustmentRepo,
		productRepo:    productRepo,
		warehouseRepo:  warehouseRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// CreateAdjustment records a manual stock correction and its ledger entry in
// one transaction. A decrease that would take the on-hand balance negative
// is rejected before anything is written.
func (s *InventoryService) CreateAdjustment(ctx context.Context, req CreateAdjustmentRequest) (*AdjustmentResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}
	if _, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID); err != nil {
		return nil, err
	}

	adjustment, err := inventory.NewInventoryAdjustment(req.ProductID, req.WarehouseID, req.Type, req.Quantity, req.Reason)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		adjustment.SetCreatedBy(*req.CreatedBy)
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if req.Type == inventory.AdjustmentTypeDecrease {
			onHand, err := repos.Ledger().OnHandInWarehouse(ctx, req.ProductID, req.WarehouseID)
			if err != nil {
				return err
			}
			if onHand.LessThan(req.Quantity) {
				return shared.NewValidationError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Cannot decrease by %s: only %s on hand", req.Quantity, onHand))
			}
		}

		entry, err := adjustment.LedgerEntry()
		if err != nil {
			return err
		}
		if req.CreatedBy != nil {
			entry.WithActor(*req.CreatedBy)
		}

		if err := repos.Adjustments().Save(ctx, adjustment); err != nil {
			return err
		}
		return repos.Ledger().Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, inventory.NewAdjustmentCreatedEvent(adjustment))
	s.checkReorderLevel(ctx, req.ProductID, req.WarehouseID)

	response := ToAdjustmentResponse(adjustment)
	return &response, nil
}

// VoidAdjustment reverses an adjustment with an offsetting ledger entry. The
// header stays in place; only its status changes.
func (s *InventoryService) VoidAdjustment(ctx context.Context, adjustmentID uuid.UUID, req VoidAdjustmentRequest) (*AdjustmentResponse, error) {
	var adjustment *inventory.InventoryAdjustment

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		adjustment, err = repos.Adjustments().FindByID(ctx, adjustmentID)
		if err != nil {
			return err
		}

		// Voiding an increase removes stock, so the same floor applies.
		if adjustment.Type == inventory.AdjustmentTypeIncrease {
			onHand, err := repos.Ledger().OnHandInWarehouse(ctx, adjustment.ProductID, adjustment.WarehouseID)
			if err != nil {
				return err
			}
			if onHand.LessThan(adjustment.Quantity) {
				return shared.NewConflictError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Voiding would take stock negative: only %s on hand", onHand))
			}
		}

		offset, err := adjustment.Void(req.VoidedBy, req.Reason)
		if err != nil {
			return err
		}

		if err := repos.Adjustments().Save(ctx, adjustment); err != nil {
			return err
		}
		return repos.Ledger().Append(ctx, offset)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, inventory.NewAdjustmentVoidedEvent(adjustment))

	response := ToAdjustmentResponse(adjustment)
	return &response, nil
}

// GetAdjustment loads one adjustment
func (s *InventoryService) GetAdjustment(ctx context.Context, adjustmentID uuid.UUID) (*AdjustmentResponse, error) {
	adjustment, err := s.adjustmentRepo.FindByID(ctx, adjustmentID)
	if err != nil {
		return nil, err
	}
	response := ToAdjustmentResponse(adjustment)
	return &response, nil
}

// ListAdjustments lists adjustments with pagination
func (s *InventoryService) ListAdjustments(ctx context.Context, filter shared.Filter) ([]AdjustmentResponse, int64, error) {
	applyFilterDefaults(&filter)

	adjustments, total, err := s.adjustmentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AdjustmentResponse, 0, len(adjustments))
	for _, adjustment := range adjustments {
		responses = append(responses, ToAdjustmentResponse(adjustment))
	}
	return responses, total, nil
}

// GetOnHand returns a product's on-hand balance across all warehouses
func (s *InventoryService) GetOnHand(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	return s.ledgerRepo.OnHand(ctx, productID)
}

// GetOnHandInWarehouse returns a product's on-hand balance in one warehouse
func (s *InventoryService) GetOnHandInWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (decimal.Decimal, error) {
	return s.ledgerRepo.OnHandInWarehouse(ctx, productID, warehouseID)
}

// GetStockLevels returns per-product balances, optionally scoped to one
// warehouse
func (s *InventoryService) GetStockLevels(ctx context.Context, warehouseID *uuid.UUID) ([]StockLevelResponse, error) {
	levels, err := s.ledgerRepo.StockLevels(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	responses := make([]StockLevelResponse, 0, len(levels))
	for _, level := range levels {
		responses = append(responses, StockLevelResponse{
			ProductID:   level.ProductID,
			WarehouseID: level.WarehouseID,
			OnHand:      level.OnHand,
		})
	}
	return responses, nil
}

// GetLedgerHistory lists a product's ledger entries
func (s *InventoryService) GetLedgerHistory(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]LedgerEntryResponse, error) {
	applyFilterDefaults(&filter)

	entries, err := s.ledgerRepo.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]LedgerEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToLedgerEntryResponse(entry))
	}
	return responses, nil
}

// GetLowStockItems lists active products whose on-hand balance is at or
// below their reorder level
func (s *InventoryService) GetLowStockItems(ctx context.Context) ([]LowStockItem, error) {
	levels, err := s.ledgerRepo.StockLevels(ctx, nil)
	if err != nil {
		return nil, err
	}

	onHandByProduct := make(map[uuid.UUID]decimal.Decimal, len(levels))
	productIDs := make([]uuid.UUID, 0, len(levels))
	for _, level := range levels {
		if _, seen := onHandByProduct[level.ProductID]; !seen {
			productIDs = append(productIDs, level.ProductID)
		}
		onHandByProduct[level.ProductID] = onHandByProduct[level.ProductID].Add(level.OnHand)
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	var items []LowStockItem
	for _, product := range products {
		if !product.IsActive() || product.ReorderLevel.IsZero() {
			continue
		}
		onHand := onHandByProduct[product.ID]
		if onHand.LessThanOrEqual(product.ReorderLevel) {
			items = append(items, LowStockItem{
				ProductID:    product.ID,
				ProductName:  product.Name,
				SKU:          product.SKU,
				OnHand:       onHand,
				ReorderLevel: product.ReorderLevel,
			})
		}
	}
	return items, nil
}

// checkReorderLevel publishes a below-reorder event when a write left the
// product at or under its threshold. Best effort: inquiry failures never
// fail the write that triggered the check.
func (s *InventoryService) checkReorderLevel(ctx context.Context, productID, warehouseID uuid.UUID) {
	if s.publisher == nil {
		return
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil || product.ReorderLevel.IsZero() {
		return
	}
	onHand, err := s.ledgerRepo.OnHand(ctx, productID)
	if err != nil {
		return
	}
	if onHand.LessThanOrEqual(product.ReorderLevel) {
		_ = s.publisher.Publish(ctx, inventory.NewStockBelowReorderEvent(productID, warehouseID, onHand, product.ReorderLevel))
	}
}

func (s *InventoryService) publish(ctx context.Context, events ...shared.DomainEvent) {
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

// newDocumentNumber builds a human-readable unique document number
func newDocumentNumber(prefix string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"),
		strings.ToUpper(uuid.NewString()[:8]))
}
