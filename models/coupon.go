package models

import "time"

// DiscountType is how a coupon's value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon is applied at checkout time only; the booking keeps just the
// resulting discount amount.
type Coupon struct {
	Code              string       `bson:"code" json:"code"`
	DiscountType      DiscountType `bson:"discount_type" json:"discount_type"`
	DiscountValue     float64      `bson:"discount_value" json:"discount_value"`
	MaxDiscountAmount float64      `bson:"max_discount_amount,omitempty" json:"max_discount_amount,omitempty"`
	Active            bool         `bson:"active" json:"active"`
	ExpiresAt         *time.Time   `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
}

// Usable reports whether the coupon can be applied at the given time.
// A nil ExpiresAt means the coupon never expires.
func (c *Coupon) Usable(at time.Time) bool {
	if !c.Active {
		return false
	}
	return c.ExpiresAt == nil || at.Before(*c.ExpiresAt)
}
