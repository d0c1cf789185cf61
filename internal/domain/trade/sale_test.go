package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bracketResolution(price int64) *pricing.Resolution {
	itemID := uuid.New()
	return &pricing.Resolution{
		Price:         decimal.NewFromInt(price),
		PriceType:     pricing.PriceTypeRegular,
		Source:        pricing.ResolutionSourceBracket,
		BracketItemID: &itemID,
	}
}

func newDraftSale(t *testing.T) *Sale {
	t.Helper()
	customerID := uuid.New()
	sale, err := NewSale("SA-2026-0001", &customerID, "Santos Hardware", uuid.New())
	require.NoError(t, err)
	return sale
}

func TestSale_AddItem(t *testing.T) {
	t.Run("should snapshot price and resolution source", func(t *testing.T) {
		sale := newDraftSale(t)
		res := bracketResolution(250)

		item, err := sale.AddItem(uuid.New(), "Cement", decimal.NewFromInt(10), res)
		require.NoError(t, err)

		assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, pricing.ResolutionSourceBracket, item.PriceSource)
		assert.Equal(t, res.BracketItemID, item.BracketItemID)
		assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(2500)))
		assert.True(t, sale.NetAmount.Equal(decimal.NewFromInt(2500)))
	})

	t.Run("should reject item without resolution", func(t *testing.T) {
		sale := newDraftSale(t)
		_, err := sale.AddItem(uuid.New(), "Cement", decimal.NewFromInt(10), nil)
		assert.Error(t, err)
	})

	t.Run("should reject adding to confirmed sale", func(t *testing.T) {
		sale := newDraftSale(t)
		_, err := sale.AddItem(uuid.New(), "Cement", decimal.NewFromInt(10), bracketResolution(250))
		require.NoError(t, err)
		require.NoError(t, sale.Confirm())

		_, err = sale.AddItem(uuid.New(), "Rebar", decimal.NewFromInt(5), bracketResolution(150))
		assert.Error(t, err)
	})
}

func TestSale_ApplyDiscount(t *testing.T) {
	threshold := decimal.NewFromInt(500)

	t.Run("below threshold needs no approval", func(t *testing.T) {
		sale := newDraftSale(t)
		_, err := sale.AddItem(uuid.New(), "Cement", decimal.NewFromInt(10), bracketResolution(250))
		require.NoError(t, err)

		require.NoError(t, sale.ApplyDiscount(decimal.NewFromInt(100), threshold, nil))
		assert.False(t, sale.DiscountApproved)
		assert.True(t, sale.NetAmount.Equal(decimal.NewFromInt(2400)))
	})

	t.Run("above threshold requires approver", func(t *testing.T) {
		sale := newDraftSale(t)
		_, err := sale.AddItem(uuid.New(), "Cement", decimal.NewFromInt(10), bracketResolution(250))
		require.NoError(t, err)

		err = sale.ApplyDiscount(decimal.NewFromInt(600), threshold, nil)
		assert.Error(t, err)
		assert.True(t, shared.IsConflict(err))

		approver := uuid.New()
		require.NoError(t, sale.ApplyDiscount(decimal.NewFromInt(600), threshold, &approver))
		assert.True(t, sale.DiscountApproved)
		assert.Equal(t, approver, *sale.DiscountApprovedBy)
	})

	t.Run("should reject discount above total", func(t *testing.T) {
		sale := newDraftSale(t)
		_, err := sale.AddItem(uuid.New(), "Cement", decimal.NewFromInt(1), bracketResolution(250))
		require.NoError(t, err)

		assert.Error(t, sale.ApplyDiscount(decimal.NewFromInt(300), threshold, nil))
	})
}

func TestSale_Payments(t *testing.T) {
	sale := newDraftSale(t)
	_, err := sale.AddItem(uuid.New(), "Cement", decimal.NewFromInt(10), bracketResolution(250))
	require.NoError(t, err)
	require.NoError(t, sale.Confirm())

	require.NoError(t, sale.RecordPayment(decimal.NewFromInt(1000)))
	assert.Equal(t, PaymentStatusPartial, sale.PaymentStatus)

	require.NoError(t, sale.RecordPayment(decimal.NewFromInt(1500)))
	assert.Equal(t, PaymentStatusPaid, sale.PaymentStatus)

	assert.Error(t, sale.RecordPayment(decimal.NewFromInt(1)))
}

func TestSale_Cancel(t *testing.T) {
	t.Run("should reject cancelling a paid sale", func(t *testing.T) {
		sale := newDraftSale(t)
		_, err := sale.AddItem(uuid.New(), "Cement", decimal.NewFromInt(10), bracketResolution(250))
		require.NoError(t, err)
		require.NoError(t, sale.Confirm())
		require.NoError(t, sale.RecordPayment(decimal.NewFromInt(100)))

		assert.Error(t, sale.Cancel("changed mind"))
	})

	t.Run("should cancel an unpaid confirmed sale", func(t *testing.T) {
		sale := newDraftSale(t)
		_, err := sale.AddItem(uuid.New(), "Cement", decimal.NewFromInt(10), bracketResolution(250))
		require.NoError(t, err)
		require.NoError(t, sale.Confirm())

		require.NoError(t, sale.Cancel("customer backed out"))
		assert.Equal(t, SaleStatusCancelled, sale.Status)
	})
}

func TestNewSaleReturn(t *testing.T) {
	newConfirmedSale := func(t *testing.T) *Sale {
		sale := newDraftSale(t)
		_, err := sale.AddItem(uuid.New(), "Cement", decimal.NewFromInt(10), bracketResolution(250))
		require.NoError(t, err)
		require.NoError(t, sale.Confirm())
		return sale
	}

	t.Run("should price return from the sale snapshot", func(t *testing.T) {
		sale := newConfirmedSale(t)

		ret, err := NewSaleReturn("SR-0001", sale, []ReturnLine{
			{SaleItemID: sale.Items[0].ID, Quantity: decimal.NewFromInt(4)},
		}, "damaged bags")
		require.NoError(t, err)

		assert.True(t, ret.TotalAmount.Equal(decimal.NewFromInt(1000)))
		assert.True(t, sale.Items[0].ReturnedQty.Equal(decimal.NewFromInt(4)))
		assert.True(t, sale.Items[0].ReturnableQuantity().Equal(decimal.NewFromInt(6)))
	})

	t.Run("should reject returning more than sold", func(t *testing.T) {
		sale := newConfirmedSale(t)

		_, err := NewSaleReturn("SR-0002", sale, []ReturnLine{
			{SaleItemID: sale.Items[0].ID, Quantity: decimal.NewFromInt(11)},
		}, "damaged bags")
		assert.Error(t, err)
	})

	t.Run("returnable quantity shrinks across returns", func(t *testing.T) {
		sale := newConfirmedSale(t)

		_, err := NewSaleReturn("SR-0003", sale, []ReturnLine{
			{SaleItemID: sale.Items[0].ID, Quantity: decimal.NewFromInt(6)},
		}, "damaged")
		require.NoError(t, err)

		_, err = NewSaleReturn("SR-0004", sale, []ReturnLine{
			{SaleItemID: sale.Items[0].ID, Quantity: decimal.NewFromInt(5)},
		}, "damaged")
		assert.Error(t, err)
	})
}
