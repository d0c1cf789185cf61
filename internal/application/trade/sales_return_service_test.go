package trade

import (
	"context"
	"strings"
	"testing"

	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type returnsFixture struct {
	salesFixture
	returnService *SalesReturnService
	returns       *fakeReturnRepo
}

func newReturnsFixture(t *testing.T) *returnsFixture {
	t.Helper()

	sales := newSalesFixture(t)
	returns := newFakeReturnRepo()
	scope := NewNoOpTransactionScope(newFakeOrderRepo(), newFakeReportRepo(),
		newFakeCostTypeRepo(), sales.sales, returns, sales.ledger,
		newFakeProductRepo(sales.productA), newFakeFlatPriceRepo())

	return &returnsFixture{
		salesFixture:  *sales,
		returnService: NewSalesReturnService(scope, returns),
		returns:       returns,
	}
}

func (fx *returnsFixture) confirmedSale(t *testing.T, quantity string) *SaleResponse {
	t.Helper()
	fx.stock(t, "20")
	resp := fx.draftSale(t, quantity)
	confirmed, err := fx.service.ConfirmSale(context.Background(), resp.ID)
	require.NoError(t, err)
	return confirmed
}

func TestCreateReturnRestoresStock(t *testing.T) {
	fx := newReturnsFixture(t)
	sale := fx.confirmedSale(t, "5") // on hand 15 after confirm

	resp, err := fx.returnService.CreateReturn(context.Background(), CreateSaleReturnRequest{
		SaleID: sale.ID,
		Lines: []ReturnLineInput{
			{SaleItemID: sale.Items[0].ID, Quantity: dec("2")},
		},
		Reason: "damaged in transit",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.ReturnNumber, "SR-"))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "150", resp.Items[0].UnitPrice.String()) // from the sale snapshot
	assert.Equal(t, "300", resp.TotalAmount.String())

	onHand, err := fx.ledger.OnHandInWarehouse(context.Background(), fx.productA.ID, fx.warehouse.ID)
	require.NoError(t, err)
	assert.Equal(t, "17", onHand.String())

	stored, err := fx.sales.FindByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "2", stored.Items[0].ReturnedQty.String())
}

func TestCreateReturnExceedsReturnable(t *testing.T) {
	fx := newReturnsFixture(t)
	sale := fx.confirmedSale(t, "5")

	_, err := fx.returnService.CreateReturn(context.Background(), CreateSaleReturnRequest{
		SaleID: sale.ID,
		Lines: []ReturnLineInput{
			{SaleItemID: sale.Items[0].ID, Quantity: dec("6")},
		},
		Reason: "damaged in transit",
	})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.Empty(t, fx.returns.byID)
}

func TestCreateReturnRequiresConfirmedSale(t *testing.T) {
	fx := newReturnsFixture(t)
	draft := fx.draftSale(t, "5")

	_, err := fx.returnService.CreateReturn(context.Background(), CreateSaleReturnRequest{
		SaleID: draft.ID,
		Lines: []ReturnLineInput{
			{SaleItemID: draft.Items[0].ID, Quantity: dec("1")},
		},
		Reason: "damaged in transit",
	})
	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))
}

func TestSecondReturnLimitedByFirst(t *testing.T) {
	fx := newReturnsFixture(t)
	sale := fx.confirmedSale(t, "5")

	_, err := fx.returnService.CreateReturn(context.Background(), CreateSaleReturnRequest{
		SaleID: sale.ID,
		Lines:  []ReturnLineInput{{SaleItemID: sale.Items[0].ID, Quantity: dec("3")}},
		Reason: "wrong variant delivered",
	})
	require.NoError(t, err)

	_, err = fx.returnService.CreateReturn(context.Background(), CreateSaleReturnRequest{
		SaleID: sale.ID,
		Lines:  []ReturnLineInput{{SaleItemID: sale.Items[0].ID, Quantity: dec("3")}},
		Reason: "wrong variant delivered",
	})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))

	returns, err := fx.returnService.ListReturnsBySale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Len(t, returns, 1)

	remaining, err := fx.returnService.CreateReturn(context.Background(), CreateSaleReturnRequest{
		SaleID: sale.ID,
		Lines:  []ReturnLineInput{{SaleItemID: sale.Items[0].ID, Quantity: dec("2")}},
		Reason: "wrong variant delivered",
	})
	require.NoError(t, err)
	assert.Equal(t, "300", remaining.TotalAmount.String())

	stored, err := fx.sales.FindByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.SaleStatusConfirmed, stored.Status)
	assert.Equal(t, "5", stored.Items[0].ReturnedQty.String())
}
