package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomerCustomPrice(t *testing.T) {
	customerID, productID := uuid.New(), uuid.New()

	t.Run("creates active row", func(t *testing.T) {
		row, err := NewCustomerCustomPrice(customerID, productID, dec(1), decPtr(10), dec(50), time.Now(), nil)
		require.NoError(t, err)
		assert.True(t, row.IsActive)
		assert.Nil(t, row.EffectiveTo)
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		_, err := NewCustomerCustomPrice(uuid.Nil, productID, dec(1), nil, dec(50), time.Now(), nil)
		assert.True(t, shared.IsValidation(err))

		_, err = NewCustomerCustomPrice(customerID, uuid.Nil, dec(1), nil, dec(50), time.Now(), nil)
		assert.True(t, shared.IsValidation(err))

		_, err = NewCustomerCustomPrice(customerID, productID, dec(1), nil, dec(-5), time.Now(), nil)
		assert.True(t, shared.IsValidation(err))

		_, err = NewCustomerCustomPrice(customerID, productID, dec(10), decPtr(5), dec(50), time.Now(), nil)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects inverted effective window", func(t *testing.T) {
		from := time.Now()
		to := from.Add(-time.Hour)
		_, err := NewCustomerCustomPrice(customerID, productID, dec(1), nil, dec(50), from, &to)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestCustomerCustomPrice_Matches(t *testing.T) {
	now := time.Now()
	row, err := NewCustomerCustomPrice(uuid.New(), uuid.New(), dec(5), decPtr(20), dec(45), now.AddDate(0, -1, 0), nil)
	require.NoError(t, err)

	assert.True(t, row.Matches(dec(5), now))
	assert.True(t, row.Matches(dec(20), now))
	assert.False(t, row.Matches(dec(4), now))
	assert.False(t, row.Matches(dec(21), now))
	assert.False(t, row.Matches(dec(10), now.AddDate(0, -2, 0)), "before effective_from")

	row.Deactivate(now)
	assert.False(t, row.Matches(dec(10), now.Add(time.Hour)), "deactivated row")
}

func TestCheckCustomPriceOverlap(t *testing.T) {
	customerID, productID := uuid.New(), uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	newRow := func(customer, product uuid.UUID, min int64, max *decimal.Decimal) *CustomerCustomPrice {
		row, err := NewCustomerCustomPrice(customer, product, dec(min), max, dec(50), from, nil)
		require.NoError(t, err)
		return row
	}

	ten := decPtr(10)
	twenty := decPtr(20)

	t.Run("overlapping active rows conflict", func(t *testing.T) {
		a := newRow(customerID, productID, 1, ten)
		b := newRow(customerID, productID, 8, twenty)
		err := CheckCustomPriceOverlap([]*CustomerCustomPrice{a, b})
		assert.True(t, shared.IsConflict(err))
	})

	t.Run("disjoint ranges pass", func(t *testing.T) {
		a := newRow(customerID, productID, 1, ten)
		b := newRow(customerID, productID, 11, twenty)
		assert.NoError(t, CheckCustomPriceOverlap([]*CustomerCustomPrice{a, b}))
	})

	t.Run("different products never collide", func(t *testing.T) {
		a := newRow(customerID, productID, 1, ten)
		b := newRow(customerID, uuid.New(), 1, ten)
		assert.NoError(t, CheckCustomPriceOverlap([]*CustomerCustomPrice{a, b}))
	})

	t.Run("inactive rows never collide", func(t *testing.T) {
		a := newRow(customerID, productID, 1, ten)
		b := newRow(customerID, productID, 1, ten)
		b.Deactivate(from.AddDate(0, 1, 0))
		assert.NoError(t, CheckCustomPriceOverlap([]*CustomerCustomPrice{a, b}))
	})

	t.Run("non-overlapping effective windows pass", func(t *testing.T) {
		a := newRow(customerID, productID, 1, ten)
		mid := from.AddDate(0, 6, 0)
		a.EffectiveTo = &mid

		b := newRow(customerID, productID, 1, ten)
		b.EffectiveFrom = mid

		assert.NoError(t, CheckCustomPriceOverlap([]*CustomerCustomPrice{a, b}))
	})
}
