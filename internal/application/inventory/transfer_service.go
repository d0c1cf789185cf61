package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/domain/shared"
)

// TransferService moves stock between warehouses. Outbound entries are
// written when the transfer is created; inbound entries on completion;
// cancellation reverses exactly the outbound deltas that were recorded.
type TransferService struct {
	txScope       TransactionScope
	transferRepo  inventory.TransferRepository
	productRepo   catalog.ProductRepository
	warehouseRepo partner.WarehouseRepository
	publisher     shared.EventPublisher
}

// NewTransferService creates a new TransferService
func NewTransferService(
	txScope TransactionScope,
	transferRepo inventory.TransferRepository,
	productRepo catalog.ProductRepository,
	warehouseRepo partner.WarehouseRepository,
) *TransferService {
	return &TransferService{
		txScope:       txScope,
		transferRepo:  transferRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *TransferService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// CreateTransfer creates an in-transit transfer and decrements the source
// warehouse through the ledger. Lines short on source stock fail the whole
// request.
func (s *TransferService) CreateTransfer(ctx context.Context, req CreateTransferRequest) (*TransferResponse, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, req.SourceID); err != nil {
		return nil, err
	}
	if _, err := s.warehouseRepo.FindByID(ctx, req.DestinationID); err != nil {
		return nil, err
	}

	lines := make([]inventory.TransferLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		if _, err := s.productRepo.FindByID(ctx, line.ProductID); err != nil {
			return nil, err
		}
		lines = append(lines, inventory.TransferLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	transfer, err := inventory.NewTransfer(newDocumentNumber("TR"), req.SourceID, req.DestinationID, lines)
	if err != nil {
		return nil, err
	}
	transfer.Remark = req.Remark
	if req.CreatedBy != nil {
		transfer.SetCreatedBy(*req.CreatedBy)
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, line := range lines {
			onHand, err := repos.Ledger().OnHandInWarehouse(ctx, line.ProductID, req.SourceID)
			if err != nil {
				return err
			}
			if onHand.LessThan(line.Quantity) {
				return shared.NewConflictError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Product %s has only %s on hand in the source warehouse", line.ProductID, onHand))
			}
		}

		entries, err := transfer.OutboundEntries()
		if err != nil {
			return err
		}
		if err := repos.Transfers().Save(ctx, transfer); err != nil {
			return err
		}
		return repos.Ledger().Append(ctx, entries...)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, inventory.NewTransferCreatedEvent(transfer))

	response := ToTransferResponse(transfer)
	return &response, nil
}

// CompleteTransfer receives the transfer at its destination, writing the
// inbound ledger entries
func (s *TransferService) CompleteTransfer(ctx context.Context, transferID uuid.UUID) (*TransferResponse, error) {
	var transfer *inventory.Transfer

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		transfer, err = repos.Transfers().FindByID(ctx, transferID)
		if err != nil {
			return err
		}

		entries, err := transfer.Complete()
		if err != nil {
			return err
		}
		if err := repos.Transfers().Save(ctx, transfer); err != nil {
			return err
		}
		return repos.Ledger().Append(ctx, entries...)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, inventory.NewTransferCompletedEvent(transfer))

	response := ToTransferResponse(transfer)
	return &response, nil
}

// CancelTransfer cancels an in-transit transfer, restoring the source
// warehouse by exactly the outbound deltas recorded at creation
func (s *TransferService) CancelTransfer(ctx context.Context, transferID uuid.UUID, reason string) (*TransferResponse, error) {
	var transfer *inventory.Transfer

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		transfer, err = repos.Transfers().FindByID(ctx, transferID)
		if err != nil {
			return err
		}

		entries, err := transfer.Cancel(reason)
		if err != nil {
			return err
		}
		if err := repos.Transfers().Save(ctx, transfer); err != nil {
			return err
		}
		return repos.Ledger().Append(ctx, entries...)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, inventory.NewTransferCancelledEvent(transfer))

	response := ToTransferResponse(transfer)
	return &response, nil
}

// GetTransfer loads one transfer
func (s *TransferService) GetTransfer(ctx context.Context, transferID uuid.UUID) (*TransferResponse, error) {
	transfer, err := s.transferRepo.FindByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	response := ToTransferResponse(transfer)
	return &response, nil
}

// ListTransfers lists transfers with pagination
func (s *TransferService) ListTransfers(ctx context.Context, filter shared.Filter) ([]TransferResponse, int64, error) {
	applyFilterDefaults(&filter)

	transfers, total, err := s.transferRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TransferResponse, 0, len(transfers))
	for _, transfer := range transfers {
		responses = append(responses, ToTransferResponse(transfer))
	}
	return responses, total, nil
}

func (s *TransferService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
}
