package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mountify/models"
)

func tvItem(base float64, qty int, cfg *models.TVMountingConfig) models.CartItem {
	return models.CartItem{
		ServiceID: "svc-tv",
		Name:      "TV Mounting",
		UnitPrice: base,
		Quantity:  qty,
		Config:    models.LineConfig{TVMounting: cfg},
	}
}

func TestLinePriceNoConfig(t *testing.T) {
	item := models.CartItem{ServiceID: "svc-1", UnitPrice: 120, Quantity: 1}
	assert.Equal(t, 120.0, LinePrice(item))
}

func TestLinePriceAllSurcharges(t *testing.T) {
	item := tvItem(70, 1, &models.TVMountingConfig{
		Over65:     true,
		FrameMount: true,
		WallType:   "brick",
		Soundbar:   true,
	})
	// 70 + 50 + 75 + 100 + 30
	assert.Equal(t, 325.0, LinePrice(item))
}

func TestLinePriceDrywallNoSurcharge(t *testing.T) {
	item := tvItem(70, 1, &models.TVMountingConfig{WallType: "drywall"})
	assert.Equal(t, 70.0, LinePrice(item))
}

func TestIsHardWall(t *testing.T) {
	for _, wall := range []string{"stone", "brick", "tile"} {
		assert.True(t, IsHardWall(wall), wall)
	}
	assert.False(t, IsHardWall("drywall"))
	assert.False(t, IsHardWall(""))
}

func TestLineTotalMultipliesQuantity(t *testing.T) {
	item := tvItem(100, 2, &models.TVMountingConfig{Over65: true})
	assert.Equal(t, 300.0, LineTotal(item))
}

func TestBookingTotalPlainLines(t *testing.T) {
	items := []models.CartItem{
		{ServiceID: "svc-1", UnitPrice: 100, Quantity: 1},
		{ServiceID: "svc-2", UnitPrice: 50, Quantity: 2},
	}
	assert.Equal(t, 200.0, BookingTotal(items))
}

func TestTVLineWithThreeSurcharges(t *testing.T) {
	item := tvItem(100, 1, &models.TVMountingConfig{
		Over65:     true,
		FrameMount: true,
		WallType:   "brick",
	})
	assert.Equal(t, 325.0, LinePrice(item))
}

func TestBookingTotal(t *testing.T) {
	items := []models.CartItem{
		tvItem(70, 1, &models.TVMountingConfig{Over65: true}), // 120
		{ServiceID: "svc-2", UnitPrice: 40, Quantity: 2},      // 80
	}
	assert.Equal(t, 200.0, BookingTotal(items))
}

func TestBookingTotalDeterministic(t *testing.T) {
	items := []models.CartItem{
		tvItem(79.99, 3, &models.TVMountingConfig{FrameMount: true, WallType: "tile"}),
	}
	first := BookingTotal(items)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BookingTotal(items))
	}
}

func TestSurchargesAreMonotonic(t *testing.T) {
	base := tvItem(70, 1, &models.TVMountingConfig{})
	prev := LinePrice(base)

	configs := []models.TVMountingConfig{
		{Over65: true},
		{Over65: true, FrameMount: true},
		{Over65: true, FrameMount: true, WallType: "stone"},
		{Over65: true, FrameMount: true, WallType: "stone", Soundbar: true},
	}
	for _, cfg := range configs {
		c := cfg
		price := LinePrice(tvItem(70, 1, &c))
		assert.Greater(t, price, prev)
		prev = price
	}
}

func TestFixedCouponCappedAtSubtotal(t *testing.T) {
	coupon := models.Coupon{Code: "SAVE30", DiscountType: models.DiscountFixed, DiscountValue: 30}
	assert.Equal(t, 20.0, CouponDiscount(coupon, 20))
	assert.Equal(t, 30.0, CouponDiscount(coupon, 100))
}

func TestPercentageCouponCappedByMax(t *testing.T) {
	coupon := models.Coupon{
		Code:              "HALF",
		DiscountType:      models.DiscountPercentage,
		DiscountValue:     50,
		MaxDiscountAmount: 10,
	}
	assert.Equal(t, 10.0, CouponDiscount(coupon, 100))
}

func TestPercentageCouponNoMax(t *testing.T) {
	coupon := models.Coupon{Code: "TEN", DiscountType: models.DiscountPercentage, DiscountValue: 10}
	assert.Equal(t, 12.5, CouponDiscount(coupon, 125))
}

func TestCouponOnZeroSubtotal(t *testing.T) {
	coupon := models.Coupon{Code: "SAVE30", DiscountType: models.DiscountFixed, DiscountValue: 30}
	assert.Equal(t, 0.0, CouponDiscount(coupon, 0))
}

func TestApplyDiscountFloorsAtZero(t *testing.T) {
	assert.Equal(t, 0.0, ApplyDiscount(20, 30))
	assert.Equal(t, 70.0, ApplyDiscount(100, 30))
}

func TestDiscountRoundsToCents(t *testing.T) {
	coupon := models.Coupon{Code: "THIRD", DiscountType: models.DiscountPercentage, DiscountValue: 33.333}
	discount := CouponDiscount(coupon, 99.99)
	assert.InDelta(t, 33.33, discount, 0.001)
}
