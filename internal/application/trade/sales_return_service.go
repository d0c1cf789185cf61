package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/trade"
)

// SalesReturnService restores stock for returned sale lines. Refund amounts
// always come from the sale's price snapshot.
type SalesReturnService struct {
	txScope    TransactionScope
	returnRepo trade.SaleReturnRepository
	publisher  shared.EventPublisher
}

// NewSalesReturnService creates a new SalesReturnService
func NewSalesReturnService(txScope TransactionScope, returnRepo trade.SaleReturnRepository) *SalesReturnService {
	return &SalesReturnService{
		txScope:    txScope,
		returnRepo: returnRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *SalesReturnService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// CreateReturn returns part of a confirmed sale. Each line is validated
// against its returnable quantity, the sale's returned counters advance,
// and the stock flows back into the sale's warehouse through the ledger.
func (s *SalesReturnService) CreateReturn(ctx context.Context, req CreateSaleReturnRequest) (*SaleReturnResponse, error) {
	var ret *trade.SaleReturn
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.Sales().FindByIDForUpdate(ctx, req.SaleID)
		if err != nil {
			return err
		}

		lines := make([]trade.ReturnLine, 0, len(req.Lines))
		for _, line := range req.Lines {
			lines = append(lines, trade.ReturnLine{
				SaleItemID: line.SaleItemID,
				Quantity:   line.Quantity,
			})
		}

		ret, err = trade.NewSaleReturn(newDocumentNumber("SR"), sale, lines, req.Reason)
		if err != nil {
			return err
		}
		if req.CreatedBy != nil {
			ret.SetCreatedBy(*req.CreatedBy)
		}

		entries := make([]*inventory.LedgerEntry, 0, len(ret.Items))
		for _, item := range ret.Items {
			entry, err := inventory.NewLedgerEntry(item.ProductID, ret.WarehouseID,
				inventory.EntryTypeSalesReturn, item.Quantity,
				inventory.SourceTypeSalesReturn, ret.ID,
				fmt.Sprintf("Return %s against %s", ret.ReturnNumber, sale.SaleNumber))
			if err != nil {
				return err
			}
			if req.CreatedBy != nil {
				entry.WithActor(*req.CreatedBy)
			}
			entries = append(entries, entry)
		}

		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}
		if err := repos.SaleReturns().Save(ctx, ret); err != nil {
			return err
		}
		return repos.Ledger().Append(ctx, entries...)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, trade.NewSaleReturnCreatedEvent(ret))

	resp := ToSaleReturnResponse(ret)
	return &resp, nil
}

// GetReturn returns one sale return by id
func (s *SalesReturnService) GetReturn(ctx context.Context, returnID uuid.UUID) (*SaleReturnResponse, error) {
	ret, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	resp := ToSaleReturnResponse(ret)
	return &resp, nil
}

// ListReturnsBySale returns all returns recorded against one sale
func (s *SalesReturnService) ListReturnsBySale(ctx context.Context, saleID uuid.UUID) ([]SaleReturnResponse, error) {
	returns, err := s.returnRepo.FindBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	responses := make([]SaleReturnResponse, 0, len(returns))
	for _, ret := range returns {
		responses = append(responses, ToSaleReturnResponse(ret))
	}
	return responses, nil
}

func (s *SalesReturnService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
}
