package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	order, err := NewPurchaseOrder("PO-2026-0001", uuid.New(), "Mega Builders Supply")
	require.NoError(t, err)
	return order
}

func newConfirmedOrder(t *testing.T, quantities ...int64) *PurchaseOrder {
	t.Helper()
	order := newDraftOrder(t)
	for i, qty := range quantities {
		_, err := order.AddItem(uuid.New(), "Cement", "SKU-"+string(rune('A'+i)),
			valueobject.MustNewQuantity(decimal.NewFromInt(qty), "bag"), valueobject.NewMoneyPHP(decimal.NewFromInt(200)))
		require.NoError(t, err)
	}
	require.NoError(t, order.SetWarehouse(uuid.New()))
	require.NoError(t, order.Confirm())
	return order
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("should create draft order", func(t *testing.T) {
		order := newDraftOrder(t)
		assert.Equal(t, PurchaseOrderStatusDraft, order.Status)
		assert.True(t, order.TotalAmount.IsZero())
	})

	t.Run("should reject empty order number", func(t *testing.T) {
		_, err := NewPurchaseOrder("", uuid.New(), "Supplier")
		assert.Error(t, err)
	})

	t.Run("should reject nil supplier", func(t *testing.T) {
		_, err := NewPurchaseOrder("PO-1", uuid.Nil, "Supplier")
		assert.Error(t, err)
	})
}

func TestPurchaseOrder_AddItem(t *testing.T) {
	t.Run("should add item and recalculate totals", func(t *testing.T) {
		order := newDraftOrder(t)
		_, err := order.AddItem(uuid.New(), "Cement", "CEM-40",
			valueobject.MustNewQuantity(decimal.NewFromInt(100), "bag"), valueobject.NewMoneyPHP(decimal.NewFromInt(200)))
		require.NoError(t, err)

		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(20000)))
	})

	t.Run("should reject duplicate product", func(t *testing.T) {
		order := newDraftOrder(t)
		productID := uuid.New()
		_, err := order.AddItem(productID, "Cement", "CEM-40",
			valueobject.MustNewQuantity(decimal.NewFromInt(10), "bag"), valueobject.NewMoneyPHP(decimal.NewFromInt(200)))
		require.NoError(t, err)

		_, err = order.AddItem(productID, "Cement", "CEM-40",
			valueobject.MustNewQuantity(decimal.NewFromInt(5), "bag"), valueobject.NewMoneyPHP(decimal.NewFromInt(200)))
		assert.Error(t, err)
		assert.True(t, shared.IsConflict(err))
	})

	t.Run("should reject adding to confirmed order", func(t *testing.T) {
		order := newConfirmedOrder(t, 10)
		_, err := order.AddItem(uuid.New(), "Rebar", "RB-10",
			valueobject.MustNewQuantity(decimal.NewFromInt(10), "pc"), valueobject.NewMoneyPHP(decimal.NewFromInt(150)))
		assert.Error(t, err)
	})

	t.Run("item carries the quantity's unit of measure", func(t *testing.T) {
		order := newDraftOrder(t)
		item, err := order.AddItem(uuid.New(), "Gravel", "GRV-01",
			valueobject.MustNewQuantity(decimal.RequireFromString("2.5"), "cu.m"), valueobject.NewMoneyPHP(decimal.NewFromInt(800)))
		require.NoError(t, err)

		assert.Equal(t, "cu.m", item.Unit)
		assert.True(t, item.OrderedQuantity.Equal(decimal.RequireFromString("2.5")))
		assert.True(t, item.Amount.Equal(decimal.NewFromInt(2000)))
	})

	t.Run("should reject zero quantity", func(t *testing.T) {
		order := newDraftOrder(t)
		_, err := order.AddItem(uuid.New(), "Cement", "CEM-40",
			valueobject.ZeroQuantity("bag"), valueobject.NewMoneyPHP(decimal.NewFromInt(200)))
		assert.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("should reject quantity without a unit", func(t *testing.T) {
		order := newDraftOrder(t)
		_, err := order.AddItem(uuid.New(), "Cement", "CEM-40",
			valueobject.MustNewQuantity(decimal.NewFromInt(10), ""), valueobject.NewMoneyPHP(decimal.NewFromInt(200)))
		assert.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestPurchaseOrder_Confirm(t *testing.T) {
	t.Run("should reject confirming without items", func(t *testing.T) {
		order := newDraftOrder(t)
		require.NoError(t, order.SetWarehouse(uuid.New()))
		assert.Error(t, order.Confirm())
	})

	t.Run("should reject confirming without warehouse", func(t *testing.T) {
		order := newDraftOrder(t)
		_, err := order.AddItem(uuid.New(), "Cement", "CEM-40",
			valueobject.MustNewQuantity(decimal.NewFromInt(10), "bag"), valueobject.NewMoneyPHP(decimal.NewFromInt(200)))
		require.NoError(t, err)
		assert.Error(t, order.Confirm())
	})

	t.Run("should transition to confirmed", func(t *testing.T) {
		order := newConfirmedOrder(t, 10)
		assert.Equal(t, PurchaseOrderStatusConfirmed, order.Status)
		assert.NotNil(t, order.ConfirmedAt)
	})
}

func TestPurchaseOrder_ApplyReceipt(t *testing.T) {
	t.Run("partial receipt moves to partial received", func(t *testing.T) {
		order := newConfirmedOrder(t, 10)
		itemID := order.Items[0].ID

		require.NoError(t, order.ApplyReceipt(itemID, decimal.NewFromInt(4)))
		order.RecomputeStatus()

		assert.Equal(t, PurchaseOrderStatusPartialReceived, order.Status)
	})

	t.Run("full receipt completes the order", func(t *testing.T) {
		order := newConfirmedOrder(t, 10)
		itemID := order.Items[0].ID

		require.NoError(t, order.ApplyReceipt(itemID, decimal.NewFromInt(10)))
		order.RecomputeStatus()

		assert.Equal(t, PurchaseOrderStatusCompleted, order.Status)
		assert.NotNil(t, order.CompletedAt)
	})

	t.Run("should reject over-receipt", func(t *testing.T) {
		order := newConfirmedOrder(t, 10)
		itemID := order.Items[0].ID

		err := order.ApplyReceipt(itemID, decimal.NewFromInt(11))
		assert.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("should reject receipt on draft order", func(t *testing.T) {
		order := newDraftOrder(t)
		err := order.ApplyReceipt(uuid.New(), decimal.NewFromInt(1))
		assert.Error(t, err)
	})
}

func TestPurchaseOrder_RevertReceipt(t *testing.T) {
	t.Run("reverting all receipts returns order to confirmed", func(t *testing.T) {
		order := newConfirmedOrder(t, 10)
		itemID := order.Items[0].ID

		require.NoError(t, order.ApplyReceipt(itemID, decimal.NewFromInt(10)))
		order.RecomputeStatus()
		require.Equal(t, PurchaseOrderStatusCompleted, order.Status)

		require.NoError(t, order.RevertReceipt(itemID, decimal.NewFromInt(10)))
		order.RecomputeStatus()

		assert.Equal(t, PurchaseOrderStatusConfirmed, order.Status)
		assert.Nil(t, order.CompletedAt)
	})

	t.Run("should surface data integrity error below zero", func(t *testing.T) {
		order := newConfirmedOrder(t, 10)
		itemID := order.Items[0].ID

		require.NoError(t, order.ApplyReceipt(itemID, decimal.NewFromInt(3)))
		err := order.RevertReceipt(itemID, decimal.NewFromInt(5))
		assert.Error(t, err)
		assert.True(t, shared.IsDataIntegrity(err))
	})
}

func TestPurchaseOrder_Cancel(t *testing.T) {
	t.Run("should cancel a confirmed order with nothing received", func(t *testing.T) {
		order := newConfirmedOrder(t, 10)
		require.NoError(t, order.Cancel("supplier out of stock"))
		assert.Equal(t, PurchaseOrderStatusCancelled, order.Status)
	})

	t.Run("should reject cancel after goods received", func(t *testing.T) {
		order := newConfirmedOrder(t, 10)
		require.NoError(t, order.ApplyReceipt(order.Items[0].ID, decimal.NewFromInt(1)))
		order.RecomputeStatus()

		assert.Error(t, order.Cancel("changed mind"))
	})

	t.Run("should require reason", func(t *testing.T) {
		order := newDraftOrder(t)
		assert.Error(t, order.Cancel(""))
	})
}
