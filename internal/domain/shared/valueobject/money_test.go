package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), PHP)
		require.NoError(t, err)
		assert.Equal(t, PHP, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})

	t.Run("parses string amounts", func(t *testing.T) {
		m, err := NewMoneyPHPFromString("1234.56")
		require.NoError(t, err)
		assert.Equal(t, "1234.56 PHP", m.String())

		_, err = NewMoneyPHPFromString("not-a-number")
		assert.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyPHPFromFloat(100.50)
	b := NewMoneyPHPFromFloat(49.50)

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(150)))
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.Equal(t, "51.00 PHP", diff.String())
	})

	t.Run("currency mismatch", func(t *testing.T) {
		usd, _ := NewMoney(decimal.NewFromInt(10), USD)
		_, err := a.Add(usd)
		assert.Error(t, err)
		_, err = a.Subtract(usd)
		assert.Error(t, err)
		_, err = a.LessThan(usd)
		assert.Error(t, err)
	})

	t.Run("multiply and divide", func(t *testing.T) {
		m := a.Multiply(decimal.NewFromInt(3))
		assert.Equal(t, "301.50 PHP", m.String())

		d, err := a.Divide(decimal.NewFromInt(2))
		require.NoError(t, err)
		assert.Equal(t, "50.25 PHP", d.String())

		_, err = a.Divide(decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("negate keeps currency", func(t *testing.T) {
		n := a.Negate()
		assert.True(t, n.IsNegative())
		assert.Equal(t, PHP, n.Currency())
	})
}

func TestMoney_AllocateByWeights(t *testing.T) {
	t.Run("allocation sums to original", func(t *testing.T) {
		freight := NewMoneyPHPFromFloat(100)
		weights := []decimal.Decimal{
			decimal.NewFromInt(3),
			decimal.NewFromInt(3),
			decimal.NewFromInt(1),
		}

		parts, err := freight.AllocateByWeights(weights)
		require.NoError(t, err)
		require.Len(t, parts, 3)

		sum := ZeroPHP()
		for _, p := range parts {
			sum = sum.MustAdd(p)
		}
		assert.True(t, sum.Equals(freight), "allocated parts must sum to the original amount")
	})

	t.Run("proportional shares", func(t *testing.T) {
		m := NewMoneyPHPFromFloat(90)
		parts, err := m.AllocateByWeights([]decimal.Decimal{
			decimal.NewFromInt(2),
			decimal.NewFromInt(1),
		})
		require.NoError(t, err)
		assert.Equal(t, "60.00 PHP", parts[0].String())
		assert.Equal(t, "30.00 PHP", parts[1].String())
	})

	t.Run("rejects zero weight total", func(t *testing.T) {
		m := NewMoneyPHPFromFloat(10)
		_, err := m.AllocateByWeights([]decimal.Decimal{decimal.Zero, decimal.Zero})
		assert.Error(t, err)
	})

	t.Run("rejects empty weights", func(t *testing.T) {
		m := NewMoneyPHPFromFloat(10)
		_, err := m.AllocateByWeights(nil)
		assert.Error(t, err)
	})
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoneyPHPFromFloat(75.25)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"75.25","currency":"PHP"}`, string(data))

	var parsed Money
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, m.Equals(parsed))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("42.42"))
	assert.Equal(t, "42.42 PHP", m.String())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(12345))
}

func TestMoney_ApplyDiscount(t *testing.T) {
	m := NewMoneyPHPFromFloat(200)
	discounted := m.ApplyDiscount(decimal.NewFromInt(10))
	assert.Equal(t, "180.00 PHP", discounted.String())
}
