package orderControllers

import "math"

// Fixed business constants.
const (
	// Orders with a subtotal strictly above this threshold ship free.
	FreeShippingThreshold = 300.0
	BaseShippingFee       = 29.0
)

// Round2 rounds a monetary value to 2 decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ShippingFee(subtotal float64) float64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return BaseShippingFee
}

func Tax(subtotal, ratePercent float64) float64 {
	return Round2(subtotal * ratePercent / 100)
}

// Total is round2(subtotal + shipping + tax - discount), floored at 0.
func Total(subtotal, shipping, tax, discount float64) float64 {
	t := Round2(subtotal + shipping + tax - discount)
	if t < 0 {
		return 0
	}
	return t
}
