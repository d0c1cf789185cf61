package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReceivableOrder(t *testing.T, quantities ...int64) *PurchaseOrder {
	t.Helper()
	order, err := NewPurchaseOrder("PO-2026-0002", uuid.New(), "Mega Builders Supply")
	require.NoError(t, err)
	for i, qty := range quantities {
		_, err := order.AddItem(uuid.New(), "Product", "SKU-"+string(rune('A'+i)),
			valueobject.MustNewQuantity(decimal.NewFromInt(qty), "pc"), valueobject.NewMoneyPHP(decimal.NewFromInt(100)))
		require.NoError(t, err)
	}
	require.NoError(t, order.SetWarehouse(uuid.New()))
	require.NoError(t, order.Confirm())
	return order
}

func newReportFor(t *testing.T, order *PurchaseOrder) *ReceivingReport {
	t.Helper()
	report, err := NewReceivingReport("RR-0001", order.ID, *order.WarehouseID, order.SupplierID, time.Now())
	require.NoError(t, err)
	return report
}

func itemInput(orderItemID uuid.UUID, qty, cost int64) ReceivedItemInput {
	return ReceivedItemInput{
		OrderItemID:    orderItemID,
		Quantity:       decimal.NewFromInt(qty),
		UnitCost:       decimal.NewFromInt(cost),
		RegularPrice:   decimal.NewFromInt(cost + 60),
		WholesalePrice: decimal.NewFromInt(cost + 45),
		WalkInPrice:    decimal.NewFromInt(cost + 55),
	}
}

func TestReceivingReport_ApplyItems(t *testing.T) {
	t.Run("should insert new lines", func(t *testing.T) {
		order := newReceivableOrder(t, 10, 20)
		report := newReportFor(t, order)

		recon, err := report.ApplyItems(order, []ReceivedItemInput{
			itemInput(order.Items[0].ID, 5, 200),
			itemInput(order.Items[1].ID, 20, 150),
		})
		require.NoError(t, err)

		assert.Len(t, recon.Inserted, 2)
		assert.Empty(t, recon.Updated)
		assert.Empty(t, recon.Removed)
		assert.Equal(t, order.Items[0].ProductID, report.Items[0].ProductID)
	})

	t.Run("should reconcile by id on revision", func(t *testing.T) {
		order := newReceivableOrder(t, 10, 20)
		report := newReportFor(t, order)

		_, err := report.ApplyItems(order, []ReceivedItemInput{
			itemInput(order.Items[0].ID, 5, 200),
			itemInput(order.Items[1].ID, 20, 150),
		})
		require.NoError(t, err)
		keptID := report.Items[0].ID

		// Revise: bump the kept line, drop the second, add nothing new.
		updated := itemInput(order.Items[0].ID, 8, 200)
		updated.ID = &keptID
		recon, err := report.ApplyItems(order, []ReceivedItemInput{updated})
		require.NoError(t, err)

		require.Len(t, recon.Updated, 1)
		assert.True(t, recon.Updated[0].OldQuantity.Equal(decimal.NewFromInt(5)))
		assert.True(t, recon.Updated[0].Item.Quantity.Equal(decimal.NewFromInt(8)))
		require.Len(t, recon.Removed, 1)
		assert.Len(t, report.Items, 1)
		assert.Equal(t, keptID, report.Items[0].ID)
	})

	t.Run("should reject unknown report item id", func(t *testing.T) {
		order := newReceivableOrder(t, 10)
		report := newReportFor(t, order)

		bogus := uuid.New()
		input := itemInput(order.Items[0].ID, 5, 200)
		input.ID = &bogus
		_, err := report.ApplyItems(order, []ReceivedItemInput{input})
		assert.Error(t, err)
	})

	t.Run("should reject unknown order item", func(t *testing.T) {
		order := newReceivableOrder(t, 10)
		report := newReportFor(t, order)

		_, err := report.ApplyItems(order, []ReceivedItemInput{itemInput(uuid.New(), 5, 200)})
		assert.Error(t, err)
	})

	t.Run("should reject empty input", func(t *testing.T) {
		order := newReceivableOrder(t, 10)
		report := newReportFor(t, order)

		_, err := report.ApplyItems(order, nil)
		assert.Error(t, err)
	})
}

func TestReceivingReport_AdditionalCosts(t *testing.T) {
	t.Run("should allocate freight by quantity share", func(t *testing.T) {
		order := newReceivableOrder(t, 30, 10)
		report := newReportFor(t, order)

		_, err := report.ApplyItems(order, []ReceivedItemInput{
			itemInput(order.Items[0].ID, 30, 100),
			itemInput(order.Items[1].ID, 10, 100),
		})
		require.NoError(t, err)

		require.NoError(t, report.ApplyAdditionalCosts([]AdditionalCostInput{
			{CostTypeID: uuid.New(), Description: "freight", Amount: decimal.NewFromInt(400)},
		}))

		assert.True(t, report.Items[0].AllocatedCost.Equal(decimal.NewFromInt(300)))
		assert.True(t, report.Items[1].AllocatedCost.Equal(decimal.NewFromInt(100)))
	})

	t.Run("allocated shares sum exactly to the total", func(t *testing.T) {
		order := newReceivableOrder(t, 3, 3, 3)
		report := newReportFor(t, order)

		_, err := report.ApplyItems(order, []ReceivedItemInput{
			itemInput(order.Items[0].ID, 3, 100),
			itemInput(order.Items[1].ID, 3, 100),
			itemInput(order.Items[2].ID, 3, 100),
		})
		require.NoError(t, err)

		require.NoError(t, report.ApplyAdditionalCosts([]AdditionalCostInput{
			{CostTypeID: uuid.New(), Description: "freight", Amount: decimal.NewFromInt(100)},
		}))

		sum := decimal.Zero
		for _, item := range report.Items {
			sum = sum.Add(item.AllocatedCost)
		}
		assert.True(t, sum.Equal(decimal.NewFromInt(100)))
	})

	t.Run("deductions subtract from landed cost", func(t *testing.T) {
		order := newReceivableOrder(t, 10)
		report := newReportFor(t, order)

		_, err := report.ApplyItems(order, []ReceivedItemInput{itemInput(order.Items[0].ID, 10, 100)})
		require.NoError(t, err)

		require.NoError(t, report.ApplyAdditionalCosts([]AdditionalCostInput{
			{CostTypeID: uuid.New(), Description: "freight", Amount: decimal.NewFromInt(50)},
			{CostTypeID: uuid.New(), Description: "rebate", Amount: decimal.NewFromInt(20), IsDeduction: true},
		}))

		assert.True(t, report.TotalAdditionalCost().Equal(decimal.NewFromInt(30)))
		assert.True(t, report.TotalLandedCost().Equal(decimal.NewFromInt(1030)))
		assert.True(t, report.Items[0].LandedUnitCost().Equal(decimal.NewFromInt(103)))
	})

	t.Run("should reject non-positive amount", func(t *testing.T) {
		order := newReceivableOrder(t, 10)
		report := newReportFor(t, order)

		err := report.ApplyAdditionalCosts([]AdditionalCostInput{
			{CostTypeID: uuid.New(), Amount: decimal.Zero},
		})
		assert.Error(t, err)
	})
}
