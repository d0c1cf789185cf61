package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ReceivingService records receiving reports against confirmed purchase
// orders. Each report drives three things inside one transaction: ledger
// entries for the received stock, receipt progress on the order, and
// propagation of landed cost plus the three selling prices onto the product
// and its flat price history.
type ReceivingService struct {
	txScope      TransactionScope
	reportRepo   trade.ReceivingReportRepository
	costTypeRepo trade.AdditionalCostTypeRepository
	publisher    shared.EventPublisher
}

// NewReceivingService creates a new ReceivingService
func NewReceivingService(
	txScope TransactionScope,
	reportRepo trade.ReceivingReportRepository,
	costTypeRepo trade.AdditionalCostTypeRepository,
) *ReceivingService {
	return &ReceivingService{
		txScope:      txScope,
		reportRepo:   reportRepo,
		costTypeRepo: costTypeRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *ReceivingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// CreateReport records goods received against an order. The order must be
// receivable; every received line lands in the inventory ledger at its
// landed unit cost and the order's receipt progress and status move with it.
func (s *ReceivingService) CreateReport(ctx context.Context, req CreateReportRequest) (*ReceivingReportResponse, error) {
	receivedAt := req.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	var report *trade.ReceivingReport
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if !order.CanReceiveGoods() {
			return shared.NewConflictError("ORDER_NOT_RECEIVABLE",
				fmt.Sprintf("Order %s cannot receive goods in status %s", order.OrderNumber, order.Status))
		}
		if order.WarehouseID == nil {
			return shared.NewValidationError("NO_WAREHOUSE", "Order has no receiving warehouse")
		}

		report, err = trade.NewReceivingReport(newDocumentNumber("RR"), order.ID,
			*order.WarehouseID, order.SupplierID, receivedAt)
		if err != nil {
			return err
		}
		report.Remark = req.Remark
		if req.CreatedBy != nil {
			report.SetCreatedBy(*req.CreatedBy)
		}

		recon, err := report.ApplyItems(order, toDomainItemInputs(req.Items))
		if err != nil {
			return err
		}
		costInputs, err := s.toDomainCostInputs(ctx, repos, req.AdditionalCosts)
		if err != nil {
			return err
		}
		if err := report.ApplyAdditionalCosts(costInputs); err != nil {
			return err
		}

		for _, item := range recon.Inserted {
			if err := order.ApplyReceipt(item.OrderItemID, item.Quantity); err != nil {
				return err
			}
		}
		order.RecomputeStatus()

		entries := make([]*inventory.LedgerEntry, 0, len(report.Items))
		for idx := range report.Items {
			item := &report.Items[idx]
			entry, err := inventory.NewLedgerEntry(item.ProductID, report.WarehouseID,
				inventory.EntryTypeReceiving, item.Quantity,
				inventory.SourceTypeReceivingReport, report.ID,
				fmt.Sprintf("Received against %s", order.OrderNumber))
			if err != nil {
				return err
			}
			entry.WithUnitCost(item.LandedUnitCost())
			if req.CreatedBy != nil {
				entry.WithActor(*req.CreatedBy)
			}
			item.LedgerEntryID = &entry.ID
			entries = append(entries, entry)
		}

		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		if err := repos.Reports().Save(ctx, report); err != nil {
			return err
		}
		if err := repos.Ledger().Append(ctx, entries...); err != nil {
			return err
		}
		return s.propagatePrices(ctx, repos, report)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, trade.NewReceivingReportCreatedEvent(report))

	resp := ToReceivingReportResponse(report)
	return &resp, nil
}

// UpdateReport revises a report's items and costs. The item set reconciles
// by id; the ledger receives delta entries so the running balance ends where
// a fresh report with the revised quantities would have put it, and the
// order's receipt progress and status are recomputed, moving backward if the
// revision shrank what was received.
func (s *ReceivingService) UpdateReport(ctx context.Context, reportID uuid.UUID, req UpdateReportRequest) (*ReceivingReportResponse, error) {
	var report *trade.ReceivingReport
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		report, err = repos.Reports().FindByID(ctx, reportID)
		if err != nil {
			return err
		}
		order, err := repos.Orders().FindByIDForUpdate(ctx, report.OrderID)
		if err != nil {
			return err
		}

		if req.ReceivedAt != nil {
			report.ReceivedAt = *req.ReceivedAt
		}
		if req.Remark != nil {
			report.Remark = *req.Remark
		}

		recon, err := report.ApplyItems(order, toDomainItemInputs(req.Items))
		if err != nil {
			return err
		}
		costInputs, err := s.toDomainCostInputs(ctx, repos, req.AdditionalCosts)
		if err != nil {
			return err
		}
		if err := report.ApplyAdditionalCosts(costInputs); err != nil {
			return err
		}

		if err := s.checkReversalStock(ctx, repos, report.WarehouseID, reversalQuantities(recon)); err != nil {
			return err
		}

		// The reconciliation holds item copies taken before the cost
		// application reallocated shares, so ledger unit costs come from
		// the live report items.
		landedByItem := make(map[uuid.UUID]decimal.Decimal, len(report.Items))
		for idx := range report.Items {
			landedByItem[report.Items[idx].ID] = report.Items[idx].LandedUnitCost()
		}

		entries := make([]*inventory.LedgerEntry, 0, len(recon.Inserted)+len(recon.Updated)+len(recon.Removed))

		for _, item := range recon.Inserted {
			if err := order.ApplyReceipt(item.OrderItemID, item.Quantity); err != nil {
				return err
			}
			entry, err := inventory.NewLedgerEntry(item.ProductID, report.WarehouseID,
				inventory.EntryTypeReceiving, item.Quantity,
				inventory.SourceTypeReceivingReport, report.ID,
				fmt.Sprintf("Revision of %s", report.ReportNumber))
			if err != nil {
				return err
			}
			entry.WithUnitCost(landedByItem[item.ID])
			for idx := range report.Items {
				if report.Items[idx].ID == item.ID {
					report.Items[idx].LedgerEntryID = &entry.ID
				}
			}
			entries = append(entries, entry)
		}

		for _, change := range recon.Updated {
			delta := change.Item.Quantity.Sub(change.OldQuantity)
			if delta.IsZero() {
				continue
			}
			entryType := inventory.EntryTypeReceiving
			quantity := delta
			if delta.IsNegative() {
				entryType = inventory.EntryTypeReceivingReversal
				quantity = delta.Neg()
				if err := order.RevertReceipt(change.Item.OrderItemID, quantity); err != nil {
					return err
				}
			} else {
				if err := order.ApplyReceipt(change.Item.OrderItemID, quantity); err != nil {
					return err
				}
			}
			entry, err := inventory.NewLedgerEntry(change.Item.ProductID, report.WarehouseID,
				entryType, quantity,
				inventory.SourceTypeReceivingReport, report.ID,
				fmt.Sprintf("Revision of %s", report.ReportNumber))
			if err != nil {
				return err
			}
			entry.WithUnitCost(landedByItem[change.Item.ID])
			entries = append(entries, entry)
		}

		for _, item := range recon.Removed {
			if err := order.RevertReceipt(item.OrderItemID, item.Quantity); err != nil {
				return err
			}
			entry, err := inventory.NewLedgerEntry(item.ProductID, report.WarehouseID,
				inventory.EntryTypeReceivingReversal, item.Quantity,
				inventory.SourceTypeReceivingReport, report.ID,
				fmt.Sprintf("Line removed from %s", report.ReportNumber))
			if err != nil {
				return err
			}
			entry.WithUnitCost(item.LandedUnitCost())
			entries = append(entries, entry)
		}

		order.RecomputeStatus()

		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		if err := repos.Reports().ReplaceChildren(ctx, report); err != nil {
			return err
		}
		if len(entries) > 0 {
			if err := repos.Ledger().Append(ctx, entries...); err != nil {
				return err
			}
		}
		return s.propagatePrices(ctx, repos, report)
	})
	if err != nil {
		return nil, err
	}

	resp := ToReceivingReportResponse(report)
	return &resp, nil
}

// DeleteReport withdraws a report, reversing its ledger entries and receipt
// progress. A report under a completed order must be revised, not deleted.
func (s *ReceivingService) DeleteReport(ctx context.Context, reportID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		report, err := repos.Reports().FindByID(ctx, reportID)
		if err != nil {
			return err
		}
		order, err := repos.Orders().FindByIDForUpdate(ctx, report.OrderID)
		if err != nil {
			return err
		}
		if order.IsCompleted() {
			return shared.NewConflictError("ORDER_COMPLETED",
				fmt.Sprintf("Order %s is completed; revise the report instead of deleting it", order.OrderNumber))
		}

		reversals := make(map[uuid.UUID]decimal.Decimal, len(report.Items))
		for _, item := range report.Items {
			reversals[item.ProductID] = reversals[item.ProductID].Add(item.Quantity)
		}
		if err := s.checkReversalStock(ctx, repos, report.WarehouseID, reversals); err != nil {
			return err
		}

		entries := make([]*inventory.LedgerEntry, 0, len(report.Items))
		for _, item := range report.Items {
			if err := order.RevertReceipt(item.OrderItemID, item.Quantity); err != nil {
				return err
			}
			entry, err := inventory.NewLedgerEntry(item.ProductID, report.WarehouseID,
				inventory.EntryTypeReceivingReversal, item.Quantity,
				inventory.SourceTypeReceivingReport, report.ID,
				fmt.Sprintf("Report %s deleted", report.ReportNumber))
			if err != nil {
				return err
			}
			entry.WithUnitCost(item.LandedUnitCost())
			entries = append(entries, entry)
		}
		order.RecomputeStatus()

		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		if len(entries) > 0 {
			if err := repos.Ledger().Append(ctx, entries...); err != nil {
				return err
			}
		}
		return repos.Reports().Delete(ctx, report.ID)
	})
}

// GetReport returns one report by id
func (s *ReceivingService) GetReport(ctx context.Context, reportID uuid.UUID) (*ReceivingReportResponse, error) {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	resp := ToReceivingReportResponse(report)
	return &resp, nil
}

// ListReports returns a page of reports
func (s *ReceivingService) ListReports(ctx context.Context, filter shared.Filter) ([]ReceivingReportResponse, int64, error) {
	applyFilterDefaults(&filter)
	reports, total, err := s.reportRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ReceivingReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, ToReceivingReportResponse(report))
	}
	return responses, total, nil
}

// ListReportsByOrder returns all reports recorded against one order
func (s *ReceivingService) ListReportsByOrder(ctx context.Context, orderID uuid.UUID) ([]ReceivingReportResponse, error) {
	reports, err := s.reportRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	responses := make([]ReceivingReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, ToReceivingReportResponse(report))
	}
	return responses, nil
}

// CreateCostType registers an additional cost type
func (s *ReceivingService) CreateCostType(ctx context.Context, req CostTypeRequest) (*CostTypeResponse, error) {
	costType, err := trade.NewAdditionalCostType(req.Name, req.IsDeduction)
	if err != nil {
		return nil, err
	}
	if err := s.costTypeRepo.Save(ctx, costType); err != nil {
		return nil, err
	}
	resp := ToCostTypeResponse(costType)
	return &resp, nil
}

// RenameCostType renames a cost type; its direction never changes once created
func (s *ReceivingService) RenameCostType(ctx context.Context, id uuid.UUID, name string) (*CostTypeResponse, error) {
	costType, err := s.costTypeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := costType.Rename(name); err != nil {
		return nil, err
	}
	if err := s.costTypeRepo.Save(ctx, costType); err != nil {
		return nil, err
	}
	resp := ToCostTypeResponse(costType)
	return &resp, nil
}

// DeleteCostType removes a cost type no report references. A referenced
// type is deactivated instead so existing reports keep their history.
func (s *ReceivingService) DeleteCostType(ctx context.Context, id uuid.UUID) error {
	costType, err := s.costTypeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	usages, err := s.costTypeRepo.CountUsages(ctx, id)
	if err != nil {
		return err
	}
	if usages > 0 {
		costType.Deactivate()
		return s.costTypeRepo.Save(ctx, costType)
	}
	return s.costTypeRepo.Delete(ctx, id)
}

// ListCostTypes returns all cost types
func (s *ReceivingService) ListCostTypes(ctx context.Context) ([]CostTypeResponse, error) {
	costTypes, err := s.costTypeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]CostTypeResponse, 0, len(costTypes))
	for _, costType := range costTypes {
		responses = append(responses, ToCostTypeResponse(costType))
	}
	return responses, nil
}

// propagatePrices pushes each received line's landed cost and selling
// prices onto the product and rolls the product's flat price history: open
// rows close and a new active row begins at the propagation time.
func (s *ReceivingService) propagatePrices(ctx context.Context, repos TransactionalRepositories, report *trade.ReceivingReport) error {
	now := time.Now()
	for idx := range report.Items {
		item := &report.Items[idx]

		product, err := repos.Products().FindByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		landed := item.LandedUnitCost()
		if err := product.SyncPrices(landed, item.RegularPrice, item.WholesalePrice, item.WalkInPrice); err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}

		active, err := repos.FlatPrices().FindActiveByProductForUpdate(ctx, item.ProductID)
		if err != nil {
			return err
		}
		for _, row := range active {
			if err := row.Close(now); err != nil {
				return err
			}
			if err := repos.FlatPrices().Save(ctx, row); err != nil {
				return err
			}
		}

		row, err := pricing.NewProductPrice(item.ProductID, item.RegularPrice,
			item.WholesalePrice, item.WalkInPrice, landed, now)
		if err != nil {
			return err
		}
		if err := row.Activate(now); err != nil {
			return err
		}
		if err := repos.FlatPrices().Save(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

// checkReversalStock rejects a revision or deletion that would push any
// product's warehouse balance negative.
func (s *ReceivingService) checkReversalStock(ctx context.Context, repos TransactionalRepositories, warehouseID uuid.UUID, reversals map[uuid.UUID]decimal.Decimal) error {
	for productID, quantity := range reversals {
		if quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}
		onHand, err := repos.Ledger().OnHandInWarehouse(ctx, productID, warehouseID)
		if err != nil {
			return err
		}
		if onHand.LessThan(quantity) {
			return shared.NewConflictError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Cannot reverse %s of product %s; only %s on hand",
					quantity, productID, onHand))
		}
	}
	return nil
}

// reversalQuantities sums, per product, the stock an item reconciliation
// takes back out of the warehouse.
func reversalQuantities(recon *trade.ItemReconciliation) map[uuid.UUID]decimal.Decimal {
	reversals := make(map[uuid.UUID]decimal.Decimal)
	for _, change := range recon.Updated {
		delta := change.Item.Quantity.Sub(change.OldQuantity)
		if delta.IsNegative() {
			reversals[change.Item.ProductID] = reversals[change.Item.ProductID].Add(delta.Neg())
		}
	}
	for _, item := range recon.Removed {
		reversals[item.ProductID] = reversals[item.ProductID].Add(item.Quantity)
	}
	return reversals
}

func toDomainItemInputs(inputs []ReceivedItemInput) []trade.ReceivedItemInput {
	domainInputs := make([]trade.ReceivedItemInput, 0, len(inputs))
	for _, input := range inputs {
		domainInputs = append(domainInputs, trade.ReceivedItemInput{
			ID:             input.ID,
			OrderItemID:    input.OrderItemID,
			Quantity:       input.Quantity,
			UnitCost:       input.UnitCost,
			RegularPrice:   input.RegularPrice,
			WholesalePrice: input.WholesalePrice,
			WalkInPrice:    input.WalkInPrice,
		})
	}
	return domainInputs
}

// toDomainCostInputs resolves each cost line's direction from its cost type
func (s *ReceivingService) toDomainCostInputs(ctx context.Context, repos TransactionalRepositories, inputs []AdditionalCostInput) ([]trade.AdditionalCostInput, error) {
	domainInputs := make([]trade.AdditionalCostInput, 0, len(inputs))
	for _, input := range inputs {
		costType, err := repos.CostTypes().FindByID(ctx, input.CostTypeID)
		if err != nil {
			return nil, err
		}
		if !costType.IsActive {
			return nil, shared.NewValidationError("COST_TYPE_INACTIVE",
				fmt.Sprintf("Cost type %s is inactive", costType.Name))
		}
		description := input.Description
		if description == "" {
			description = costType.Name
		}
		domainInputs = append(domainInputs, trade.AdditionalCostInput{
			ID:          input.ID,
			CostTypeID:  costType.ID,
			Description: description,
			Amount:      input.Amount,
			IsDeduction: costType.IsDeduction,
		})
	}
	return domainInputs, nil
}

func (s *ReceivingService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
}
