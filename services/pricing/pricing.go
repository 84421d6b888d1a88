package pricing

import (
	"mountify/models"
	"mountify/utils"
)

// Fixed TV-mounting surcharges, in dollars.
const (
	SurchargeOver65     = 50
	SurchargeFrameMount = 75
	SurchargeHardWall   = 100
	SurchargeSoundbar   = 30
)

// hardWallTypes are wall materials that require masonry anchors.
var hardWallTypes = map[string]bool{
	"stone": true,
	"brick": true,
	"tile":  true,
}

// IsHardWall reports whether a wall type carries the hard-wall surcharge.
func IsHardWall(wallType string) bool {
	return hardWallTypes[wallType]
}

// LinePrice computes the per-unit price of a cart line: the base price plus
// every applicable surcharge. Only TV-mounting lines carry surcharge
// configuration; for any other line the base price stands alone. The result
// is deterministic for identical inputs.
func LinePrice(item models.CartItem) float64 {
	price := item.UnitPrice
	cfg := item.Config.TVMounting
	if cfg == nil {
		return price
	}
	if cfg.Over65 {
		price += SurchargeOver65
	}
	if cfg.FrameMount {
		price += SurchargeFrameMount
	}
	if IsHardWall(cfg.WallType) {
		price += SurchargeHardWall
	}
	if cfg.Soundbar {
		price += SurchargeSoundbar
	}
	return price
}

// LineTotal is the line price multiplied by the quantity.
func LineTotal(item models.CartItem) float64 {
	return LinePrice(item) * float64(item.Quantity)
}

// BookingTotal sums line totals across the cart, rounded to cents.
func BookingTotal(items []models.CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += LineTotal(item)
	}
	return utils.RoundCents(total)
}
