package pricing

import (
	"mountify/models"
	"mountify/utils"
)

// CouponDiscount computes the discount a coupon grants on a subtotal.
// Fixed discounts are capped at the subtotal. Percentage discounts are
// computed on the subtotal, capped by the coupon's optional maximum, then
// capped at the subtotal. Results are rounded half-up to cents.
func CouponDiscount(coupon models.Coupon, subtotal float64) float64 {
	if subtotal <= 0 {
		return 0
	}

	var discount float64
	switch coupon.DiscountType {
	case models.DiscountFixed:
		discount = coupon.DiscountValue
	case models.DiscountPercentage:
		discount = subtotal * coupon.DiscountValue / 100
		if coupon.MaxDiscountAmount > 0 && discount > coupon.MaxDiscountAmount {
			discount = coupon.MaxDiscountAmount
		}
	default:
		return 0
	}

	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return utils.RoundCents(discount)
}

// ApplyDiscount returns the final total after a discount, floored at zero
// and rounded to cents.
func ApplyDiscount(subtotal, discount float64) float64 {
	total := subtotal - discount
	if total < 0 {
		total = 0
	}
	return utils.RoundCents(total)
}
