package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulTruncTruncatesTowardZero(t *testing.T) {
	tests := []struct {
		name   string
		cents  int64
		factor string
		want   int64
	}{
		{name: "exact", cents: 10_000_00, factor: "0.062", want: 62_000},
		{name: "fraction dropped", cents: 333, factor: "0.5", want: 166},
		{name: "negative truncates up", cents: -333, factor: "0.5", want: -166},
		{name: "medicare", cents: 1_234_567, factor: "0.0145", want: 17_901},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MulTrunc(tc.cents, decimal.RequireFromString(tc.factor)))
		})
	}
}

func TestMulDivTruncIsExactForRepeatingFractions(t *testing.T) {
	// 300 × 1/3 must be 100, not 99 from a rounded 0.333... factor.
	assert.Equal(t, int64(100), MulDivTrunc(300, decimal.NewFromInt(1), decimal.NewFromInt(3)))
	assert.Equal(t, int64(0), MulDivTrunc(300, decimal.NewFromInt(1), decimal.Zero))
}

func TestAddRejectsCurrencyMismatch(t *testing.T) {
	_, err := New(100, "USD").Add(New(100, "EUR"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCurrencyMismatch))

	sum, err := Cents(150).Add(Cents(50))
	require.NoError(t, err)
	assert.Equal(t, Cents(200), sum)
}

func TestString(t *testing.T) {
	assert.Equal(t, "1234.05 USD", Cents(123405).String())
	assert.Equal(t, "-0.07 USD", Cents(-7).String())
}

func TestPercentOf(t *testing.T) {
	p := MustPercent("0.6")
	assert.Equal(t, int64(180_000), p.Of(300_000))
	assert.True(t, p.Valid())
	assert.False(t, MustPercent("-0.1").Valid())

	_, err := NewPercent("abc")
	require.Error(t, err)
}
