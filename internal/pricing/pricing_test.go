package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotalsSingleLine(t *testing.T) {
	// 2 × 8.99 = 17.98, vergi 1.798 → 1.80, toplam 19.78
	sub, tax, total := Totals([]Line{{Price: 8.99, Quantity: 2}})

	assert.Equal(t, 17.98, sub)
	assert.Equal(t, 1.80, tax)
	assert.Equal(t, 19.78, total)
}

func TestTotalsMultipleLines(t *testing.T) {
	lines := []Line{
		{Price: 5.99, Quantity: 1},
		{Price: 12.99, Quantity: 2},
		{Price: 2.99, Quantity: 2},
	}

	sub, tax, total := Totals(lines)

	assert.Equal(t, 37.95, sub)
	assert.Equal(t, 3.80, tax)
	assert.Equal(t, 41.75, total)
}

func TestTotalsEmpty(t *testing.T) {
	sub, tax, total := Totals(nil)

	assert.Equal(t, 0.0, sub)
	assert.Equal(t, 0.0, tax)
	assert.Equal(t, 0.0, total)
}

func TestTaxRounding(t *testing.T) {
	// 0.05 × 0.10 = 0.005 → half-up ile 0.01
	tax := Tax(decimal.NewFromFloat(0.05))
	assert.Equal(t, "0.01", tax.StringFixed(2))

	// 1.04 × 0.10 = 0.104 → 0.10
	tax = Tax(decimal.NewFromFloat(1.04))
	assert.Equal(t, "0.10", tax.StringFixed(2))
}

func TestSubtotalUsesDecimalArithmetic(t *testing.T) {
	// float toplamada 0.1+0.2 tarzı kayma olmamalı
	sub := Subtotal([]Line{
		{Price: 0.10, Quantity: 1},
		{Price: 0.20, Quantity: 1},
	})
	assert.Equal(t, "0.30", sub.StringFixed(2))
}
