package moneyfmt

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Run("thousands", func(t *testing.T) {
		require.Equal(t, "EUR 1,234,567.50", Format(decimal.RequireFromString("1234567.5"), "eur"))
	})
	t.Run("default currency", func(t *testing.T) {
		require.Equal(t, "USD 0.00", Format(decimal.Zero, ""))
	})
	t.Run("rounding", func(t *testing.T) {
		require.Equal(t, "USD 10.13", Format(decimal.RequireFromString("10.125"), "USD"))
	})
}
