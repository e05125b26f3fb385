package orderControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingFeeThreshold(t *testing.T) {
	assert.Equal(t, BaseShippingFee, ShippingFee(100))
	// The threshold is strict: exactly 300 still pays shipping.
	assert.Equal(t, BaseShippingFee, ShippingFee(300))
	assert.Equal(t, 0.0, ShippingFee(300.01))
	assert.Equal(t, 0.0, ShippingFee(1000))
}

func TestTax(t *testing.T) {
	assert.Equal(t, 0.0, Tax(500, 0))
	assert.Equal(t, 25.0, Tax(500, 5))
	// 5% of 99.99 = 4.9995 -> 5.00
	assert.Equal(t, 5.0, Tax(99.99, 5))
}

func TestTotalIdentity(t *testing.T) {
	subtotal, shipping, tax, discount := 1000.0, 0.0, 50.0, 50.0
	assert.Equal(t, Round2(subtotal+shipping+tax-discount), Total(subtotal, shipping, tax, discount))
}

func TestTotalFlooredAtZero(t *testing.T) {
	assert.Equal(t, 0.0, Total(10, 0, 0, 100))
}

func TestTotalRounding(t *testing.T) {
	// 10.006 + 29 - 0 = 39.006 -> 39.01 after rounding the sum.
	assert.Equal(t, 39.01, Total(10.006, 29, 0, 0))
}
