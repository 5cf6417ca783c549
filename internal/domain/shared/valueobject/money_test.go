package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(150000), VND)
	require.NoError(t, err)
	assert.Equal(t, VND, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(150000)))

	_, err = NewMoney(decimal.Zero, "")
	assert.Error(t, err)
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyVNDFromInt(100000)
	b := NewMoneyVNDFromInt(25000)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equal(NewMoneyVNDFromInt(125000)))

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Equal(NewMoneyVNDFromInt(75000)))

	assert.True(t, b.MulInt(4).Equal(a))
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	vnd := NewMoneyVNDFromInt(100)
	usd, err := NewMoney(decimal.NewFromInt(100), USD)
	require.NoError(t, err)

	_, err = vnd.Add(usd)
	assert.Error(t, err)

	_, err = vnd.Sub(usd)
	assert.Error(t, err)
}

func TestMoneyPredicates(t *testing.T) {
	assert.True(t, ZeroVND().IsZero())
	assert.False(t, NewMoneyVNDFromInt(1).IsZero())

	neg := NewMoneyVND(decimal.NewFromInt(-5))
	assert.True(t, neg.IsNegative())

	assert.True(t, NewMoneyVNDFromInt(1).LessThan(NewMoneyVNDFromInt(2)))
}

func TestMoneyFromString(t *testing.T) {
	m, err := NewMoneyVNDFromString("199000")
	require.NoError(t, err)
	assert.Equal(t, "199000 VND", m.String())

	_, err = NewMoneyVNDFromString("not-a-number")
	assert.Error(t, err)
}
