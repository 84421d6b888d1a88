package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCouponUsable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	c := Coupon{Code: "SAVE10", Active: true}
	assert.True(t, c.Usable(now), "active coupon with no expiry")

	c.ExpiresAt = &future
	assert.True(t, c.Usable(now), "active coupon before expiry")

	c.ExpiresAt = &past
	assert.False(t, c.Usable(now), "active flag alone does not keep an expired coupon usable")

	c = Coupon{Code: "SAVE10", Active: false}
	assert.False(t, c.Usable(now), "inactive coupon")
}
