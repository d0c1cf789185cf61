package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransfer(t *testing.T, lines ...TransferLine) *Transfer {
	t.Helper()
	if len(lines) == 0 {
		lines = []TransferLine{{ProductID: uuid.New(), Quantity: decimal.NewFromInt(10)}}
	}
	transfer, err := NewTransfer("TR-0001", uuid.New(), uuid.New(), lines)
	require.NoError(t, err)
	return transfer
}

func TestNewTransfer(t *testing.T) {
	t.Run("should create transfer in transit", func(t *testing.T) {
		transfer := newTestTransfer(t)
		assert.Equal(t, TransferStatusInTransit, transfer.Status)
		assert.False(t, transfer.IsTerminal())
		assert.Len(t, transfer.GetDomainEvents(), 1)
	})

	t.Run("should reject same source and destination", func(t *testing.T) {
		warehouse := uuid.New()
		_, err := NewTransfer("TR-0002", warehouse, warehouse, []TransferLine{{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)}})
		assert.Error(t, err)
	})

	t.Run("should reject empty lines", func(t *testing.T) {
		_, err := NewTransfer("TR-0003", uuid.New(), uuid.New(), nil)
		assert.Error(t, err)
	})

	t.Run("should reject duplicate products", func(t *testing.T) {
		productID := uuid.New()
		_, err := NewTransfer("TR-0004", uuid.New(), uuid.New(), []TransferLine{
			{ProductID: productID, Quantity: decimal.NewFromInt(1)},
			{ProductID: productID, Quantity: decimal.NewFromInt(2)},
		})
		assert.Error(t, err)
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := NewTransfer("TR-0005", uuid.New(), uuid.New(), []TransferLine{{ProductID: uuid.New(), Quantity: decimal.Zero}})
		assert.Error(t, err)
	})
}

func TestTransfer_OutboundEntries(t *testing.T) {
	transfer := newTestTransfer(t,
		TransferLine{ProductID: uuid.New(), Quantity: decimal.NewFromInt(10)},
		TransferLine{ProductID: uuid.New(), Quantity: decimal.NewFromInt(4)},
	)

	entries, err := transfer.OutboundEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for i, entry := range entries {
		assert.Equal(t, EntryTypeTransferOut, entry.EntryType)
		assert.Equal(t, transfer.SourceID, entry.WarehouseID)
		assert.True(t, entry.Delta.Equal(transfer.Items[i].Quantity.Neg()))
		require.NotNil(t, transfer.Items[i].OutboundEntryID)
		assert.Equal(t, entry.ID, *transfer.Items[i].OutboundEntryID)
	}
}

func TestTransfer_Complete(t *testing.T) {
	t.Run("should build inbound entries for destination", func(t *testing.T) {
		transfer := newTestTransfer(t,
			TransferLine{ProductID: uuid.New(), Quantity: decimal.NewFromInt(7)},
		)

		entries, err := transfer.Complete()
		require.NoError(t, err)
		require.Len(t, entries, 1)

		assert.Equal(t, TransferStatusCompleted, transfer.Status)
		assert.NotNil(t, transfer.CompletedAt)
		assert.Equal(t, EntryTypeTransferIn, entries[0].EntryType)
		assert.Equal(t, transfer.DestinationID, entries[0].WarehouseID)
		assert.True(t, entries[0].Delta.Equal(decimal.NewFromInt(7)))
	})

	t.Run("should reject completing a cancelled transfer", func(t *testing.T) {
		transfer := newTestTransfer(t)
		_, err := transfer.Cancel("wrong warehouse")
		require.NoError(t, err)

		_, err = transfer.Complete()
		assert.Error(t, err)
	})
}

func TestTransfer_Cancel(t *testing.T) {
	t.Run("should reverse exactly the recorded outbound deltas", func(t *testing.T) {
		transfer := newTestTransfer(t,
			TransferLine{ProductID: uuid.New(), Quantity: decimal.NewFromInt(10)},
			TransferLine{ProductID: uuid.New(), Quantity: decimal.NewFromInt(3)},
		)
		outbound, err := transfer.OutboundEntries()
		require.NoError(t, err)

		reversals, err := transfer.Cancel("truck broke down")
		require.NoError(t, err)
		require.Len(t, reversals, len(outbound))

		for i, reversal := range reversals {
			assert.Equal(t, EntryTypeTransferReversal, reversal.EntryType)
			assert.Equal(t, transfer.SourceID, reversal.WarehouseID)
			assert.True(t, reversal.Delta.Equal(outbound[i].Delta.Neg()))
		}
		assert.Equal(t, TransferStatusCancelled, transfer.Status)
		assert.Equal(t, "truck broke down", transfer.CancelReason)
	})

	t.Run("should skip items that never hit the ledger", func(t *testing.T) {
		transfer := newTestTransfer(t)

		reversals, err := transfer.Cancel("never shipped")
		require.NoError(t, err)
		assert.Empty(t, reversals)
	})

	t.Run("should reject cancelling a completed transfer", func(t *testing.T) {
		transfer := newTestTransfer(t)
		_, err := transfer.Complete()
		require.NoError(t, err)

		_, err = transfer.Cancel("too late")
		assert.Error(t, err)
	})

	t.Run("should require reason", func(t *testing.T) {
		transfer := newTestTransfer(t)
		_, err := transfer.Cancel("")
		assert.Error(t, err)
	})
}
