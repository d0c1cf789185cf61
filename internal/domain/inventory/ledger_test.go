package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLedgerEntry(t *testing.T) {
	productID := uuid.New()
	warehouseID := uuid.New()
	sourceID := uuid.New()

	t.Run("should derive positive delta for increase types", func(t *testing.T) {
		entry, err := NewLedgerEntry(productID, warehouseID, EntryTypeReceiving, decimal.NewFromInt(10), SourceTypeReceivingReport, sourceID, "")
		require.NoError(t, err)
		assert.True(t, entry.Delta.Equal(decimal.NewFromInt(10)))
		assert.True(t, entry.Quantity.Equal(decimal.NewFromInt(10)))
	})

	t.Run("should derive negative delta for decrease types", func(t *testing.T) {
		entry, err := NewLedgerEntry(productID, warehouseID, EntryTypeSale, decimal.NewFromInt(4), SourceTypeSale, sourceID, "")
		require.NoError(t, err)
		assert.True(t, entry.Delta.Equal(decimal.NewFromInt(-4)))
		assert.True(t, entry.Quantity.Equal(decimal.NewFromInt(4)))
	})

	t.Run("should reject zero quantity", func(t *testing.T) {
		_, err := NewLedgerEntry(productID, warehouseID, EntryTypeSale, decimal.Zero, SourceTypeSale, sourceID, "")
		assert.Error(t, err)
	})

	t.Run("should reject negative quantity", func(t *testing.T) {
		_, err := NewLedgerEntry(productID, warehouseID, EntryTypeReceiving, decimal.NewFromInt(-1), SourceTypeReceivingReport, sourceID, "")
		assert.Error(t, err)
	})

	t.Run("should reject invalid entry type", func(t *testing.T) {
		_, err := NewLedgerEntry(productID, warehouseID, EntryType("BOGUS"), decimal.NewFromInt(1), SourceTypeSale, sourceID, "")
		assert.Error(t, err)
	})

	t.Run("should reject nil product", func(t *testing.T) {
		_, err := NewLedgerEntry(uuid.Nil, warehouseID, EntryTypeReceiving, decimal.NewFromInt(1), SourceTypeReceivingReport, sourceID, "")
		assert.Error(t, err)
	})
}

func TestLedgerEntry_Offset(t *testing.T) {
	productID := uuid.New()
	warehouseID := uuid.New()
	sourceID := uuid.New()

	t.Run("should build entry with opposite delta", func(t *testing.T) {
		entry, err := NewLedgerEntry(productID, warehouseID, EntryTypeReceiving, decimal.NewFromInt(8), SourceTypeReceivingReport, sourceID, "initial")
		require.NoError(t, err)

		offset, err := entry.Offset(EntryTypeReceivingReversal, "delivery rejected")
		require.NoError(t, err)

		assert.True(t, offset.Delta.Equal(entry.Delta.Neg()))
		assert.Equal(t, entry.ProductID, offset.ProductID)
		assert.Equal(t, entry.WarehouseID, offset.WarehouseID)
		assert.Equal(t, entry.SourceID, offset.SourceID)
		assert.NotEqual(t, entry.ID, offset.ID)
	})

	t.Run("should reject offset in the same direction", func(t *testing.T) {
		entry, err := NewLedgerEntry(productID, warehouseID, EntryTypeReceiving, decimal.NewFromInt(8), SourceTypeReceivingReport, sourceID, "")
		require.NoError(t, err)

		_, err = entry.Offset(EntryTypeAdjustmentIncrease, "wrong direction")
		assert.Error(t, err)
	})
}

func TestOnHand(t *testing.T) {
	productID := uuid.New()
	warehouseID := uuid.New()

	mk := func(entryType EntryType, qty int64) LedgerEntry {
		entry, err := NewLedgerEntry(productID, warehouseID, entryType, decimal.NewFromInt(qty), SourceTypeAdjustment, uuid.New(), "")
		require.NoError(t, err)
		return *entry
	}

	t.Run("should fold signed deltas", func(t *testing.T) {
		entries := []LedgerEntry{
			mk(EntryTypeReceiving, 100),
			mk(EntryTypeSale, 30),
			mk(EntryTypeSalesReturn, 5),
			mk(EntryTypeAdjustmentDecrease, 10),
		}
		assert.True(t, OnHand(entries).Equal(decimal.NewFromInt(65)))
	})

	t.Run("should return zero for no entries", func(t *testing.T) {
		assert.True(t, OnHand(nil).IsZero())
	})
}
