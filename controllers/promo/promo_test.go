package promoControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RG-basket/rgbasket-sub001/models"
)

func TestDiscountCappedAtMax(t *testing.T) {
	// SAVE10: 10% capped at 50 applied to a 1000 subtotal gives 50, not 100.
	cap := 50.0
	promo := &models.PromoCode{Code: "SAVE10", Percent: 10, MaxDiscount: &cap}

	assert.Equal(t, 50.0, Discount(promo, 1000))
}

func TestDiscountUncapped(t *testing.T) {
	promo := &models.PromoCode{Code: "SAVE10", Percent: 10}

	assert.Equal(t, 100.0, Discount(promo, 1000))
	assert.Equal(t, 0.5, Discount(promo, 5))
}

func TestDiscountBelowCapUsesPercent(t *testing.T) {
	cap := 50.0
	promo := &models.PromoCode{Code: "SAVE10", Percent: 10, MaxDiscount: &cap}

	assert.Equal(t, 30.0, Discount(promo, 300))
}

func TestDiscountRoundsToTwoDecimals(t *testing.T) {
	promo := &models.PromoCode{Code: "SAVE15", Percent: 15}

	// 15% of 99.99 = 14.9985 -> 15.00
	assert.Equal(t, 15.0, Discount(promo, 99.99))
}

func TestValidCode(t *testing.T) {
	for _, ok := range []string{"SAVE10", "ABCDE", "A1B2C3D4E5"} {
		assert.True(t, ValidCode(ok), ok)
	}
	for _, bad := range []string{"", "SAVE", "save10", "TOOLONGCODE1", "SAVE 10", "SAVE-10"} {
		assert.False(t, ValidCode(bad), bad)
	}
}
