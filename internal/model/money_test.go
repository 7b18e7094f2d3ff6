package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{name: "plain number", input: "12.50", expected: "12.5"},
		{name: "euro suffix", input: "12.50 €", expected: "12.5"},
		{name: "euro prefix", input: "€12.50", expected: "12.5"},
		{name: "comma separator", input: "12,50", expected: "12.5"},
		{name: "integer", input: "7", expected: "7"},
		{name: "empty", input: "", expectError: true},
		{name: "currency only", input: "EUR", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestParseSize(t *testing.T) {
	for _, valid := range []string{"small", "medium", "large"} {
		size, err := ParseSize(valid)
		require.NoError(t, err)
		assert.True(t, size.Valid())
	}

	_, err := ParseSize("venti")
	assert.Error(t, err)
	assert.False(t, Size("venti").Valid())
}

func TestFood_PriceFor(t *testing.T) {
	dish := Food{
		SmallPrice:  mustDecimal(t, "5.50"),
		MediumPrice: mustDecimal(t, "7.90"),
		LargePrice:  mustDecimal(t, "9.90"),
	}

	assert.True(t, dish.PriceFor(SizeSmall).Equal(mustDecimal(t, "5.50")))
	assert.True(t, dish.PriceFor(SizeMedium).Equal(mustDecimal(t, "7.90")))
	assert.True(t, dish.PriceFor(SizeLarge).Equal(mustDecimal(t, "9.90")))
	assert.True(t, dish.PriceFor(Size("venti")).IsZero())
}

func TestOrderItem_LineTotal(t *testing.T) {
	item := OrderItem{Name: "Pivo", Size: SizeLarge, Count: 3, UnitPrice: mustDecimal(t, "2.20")}
	assert.True(t, item.LineTotal().Equal(mustDecimal(t, "6.60")))
}
