package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transferFixture struct {
	service     *TransferService
	ledger      *fakeLedgerRepo
	product     *catalog.Product
	source      *partner.Warehouse
	destination *partner.Warehouse
}

func newTransferFixture(t *testing.T) *transferFixture {
	t.Helper()
	product, err := catalog.NewProduct("PAP-001", "Bond Paper", "ream")
	require.NoError(t, err)
	source, err := partner.NewWarehouse("WH-MAIN", "Main Warehouse")
	require.NoError(t, err)
	destination, err := partner.NewWarehouse("WH-STORE", "Store Front")
	require.NoError(t, err)

	ledger := &fakeLedgerRepo{}
	transfers := newFakeTransferRepo()
	scope := NewNoOpTransactionScope(ledger, newFakeAdjustmentRepo(), transfers)
	service := NewTransferService(scope, transfers,
		newFakeProductRepo(product), newFakeWarehouseRepo(source, destination))

	return &transferFixture{
		service:     service,
		ledger:      ledger,
		product:     product,
		source:      source,
		destination: destination,
	}
}

func (f *transferFixture) seedSourceStock(t *testing.T, qty string) {
	t.Helper()
	entry, err := inventory.NewLedgerEntry(f.product.ID, f.source.ID,
		inventory.EntryTypeReceiving, decimal.RequireFromString(qty),
		inventory.SourceTypeReceivingReport, uuid.New(), "seed")
	require.NoError(t, err)
	require.NoError(t, f.ledger.Append(context.Background(), entry))
}

func (f *transferFixture) onHand(t *testing.T, warehouseID uuid.UUID) decimal.Decimal {
	t.Helper()
	qty, err := f.ledger.OnHandInWarehouse(context.Background(), f.product.ID, warehouseID)
	require.NoError(t, err)
	return qty
}

func TestTransferService_CreateTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("decrements source on creation", func(t *testing.T) {
		f := newTransferFixture(t)
		f.seedSourceStock(t, "20")

		resp, err := f.service.CreateTransfer(ctx, CreateTransferRequest{
			SourceID:      f.source.ID,
			DestinationID: f.destination.ID,
			Lines:         []TransferLineInput{{ProductID: f.product.ID, Quantity: decimal.RequireFromString("12")}},
		})
		require.NoError(t, err)
		assert.Equal(t, inventory.TransferStatusInTransit, resp.Status)
		assert.NotEmpty(t, resp.TransferNumber)

		assert.True(t, f.onHand(t, f.source.ID).Equal(decimal.RequireFromString("8")))
		assert.True(t, f.onHand(t, f.destination.ID).IsZero())
	})

	t.Run("insufficient source stock is a conflict and writes nothing", func(t *testing.T) {
		f := newTransferFixture(t)
		f.seedSourceStock(t, "5")

		_, err := f.service.CreateTransfer(ctx, CreateTransferRequest{
			SourceID:      f.source.ID,
			DestinationID: f.destination.ID,
			Lines:         []TransferLineInput{{ProductID: f.product.ID, Quantity: decimal.RequireFromString("12")}},
		})
		require.Error(t, err)
		assert.True(t, shared.IsConflict(err))
		assert.Len(t, f.ledger.entries, 1)
	})

	t.Run("same source and destination is rejected", func(t *testing.T) {
		f := newTransferFixture(t)

		_, err := f.service.CreateTransfer(ctx, CreateTransferRequest{
			SourceID:      f.source.ID,
			DestinationID: f.source.ID,
			Lines:         []TransferLineInput{{ProductID: f.product.ID, Quantity: decimal.RequireFromString("1")}},
		})
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestTransferService_CompleteTransfer(t *testing.T) {
	ctx := context.Background()
	f := newTransferFixture(t)
	f.seedSourceStock(t, "20")

	created, err := f.service.CreateTransfer(ctx, CreateTransferRequest{
		SourceID:      f.source.ID,
		DestinationID: f.destination.ID,
		Lines:         []TransferLineInput{{ProductID: f.product.ID, Quantity: decimal.RequireFromString("12")}},
	})
	require.NoError(t, err)

	completed, err := f.service.CompleteTransfer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, inventory.TransferStatusCompleted, completed.Status)

	assert.True(t, f.onHand(t, f.source.ID).Equal(decimal.RequireFromString("8")))
	assert.True(t, f.onHand(t, f.destination.ID).Equal(decimal.RequireFromString("12")))

	// terminal transfers cannot be completed again
	_, err = f.service.CompleteTransfer(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))
}

func TestTransferService_CancelTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel restores the source exactly", func(t *testing.T) {
		f := newTransferFixture(t)
		f.seedSourceStock(t, "20")

		created, err := f.service.CreateTransfer(ctx, CreateTransferRequest{
			SourceID:      f.source.ID,
			DestinationID: f.destination.ID,
			Lines:         []TransferLineInput{{ProductID: f.product.ID, Quantity: decimal.RequireFromString("12")}},
		})
		require.NoError(t, err)

		cancelled, err := f.service.CancelTransfer(ctx, created.ID, "truck breakdown")
		require.NoError(t, err)
		assert.Equal(t, inventory.TransferStatusCancelled, cancelled.Status)

		assert.True(t, f.onHand(t, f.source.ID).Equal(decimal.RequireFromString("20")))
		assert.True(t, f.onHand(t, f.destination.ID).IsZero())
	})

	t.Run("completed transfers cannot be cancelled", func(t *testing.T) {
		f := newTransferFixture(t)
		f.seedSourceStock(t, "20")

		created, err := f.service.CreateTransfer(ctx, CreateTransferRequest{
			SourceID:      f.source.ID,
			DestinationID: f.destination.ID,
			Lines:         []TransferLineInput{{ProductID: f.product.ID, Quantity: decimal.RequireFromString("5")}},
		})
		require.NoError(t, err)
		_, err = f.service.CompleteTransfer(ctx, created.ID)
		require.NoError(t, err)

		_, err = f.service.CancelTransfer(ctx, created.ID, "late change of mind")
		require.Error(t, err)
		assert.True(t, shared.IsConflict(err))
	})
}
