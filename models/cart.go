package models

// TVMountingConfig carries the surcharge options valid for TV-mounting lines.
// Wall types "stone", "brick" and "tile" are priced as hard walls.
type TVMountingConfig struct {
	Over65     bool   `bson:"over_65" json:"over65"`
	FrameMount bool   `bson:"frame_mount" json:"frameMount"`
	WallType   string `bson:"wall_type" json:"wallType"`
	Soundbar   bool   `bson:"soundbar" json:"soundbar"`
}

// LineConfig is a tagged union keyed by service category. Only the variant
// matching the line's category is consulted; a nil variant contributes no
// surcharge.
type LineConfig struct {
	TVMounting *TVMountingConfig `bson:"tv_mounting,omitempty" json:"tvMounting,omitempty"`
}

// CartItem is one selected service with its per-line configuration. Cart
// items are transient: they live only inside a Redis checkout session and
// are snapshotted onto the booking at confirmation.
type CartItem struct {
	ServiceID string     `bson:"service_id" json:"serviceId"`
	Name      string     `bson:"name" json:"name"`
	UnitPrice float64    `bson:"unit_price" json:"unitPrice"`
	Quantity  int        `bson:"quantity" json:"quantity"`
	Config    LineConfig `bson:"config" json:"config"`
}

// CheckoutSession is the transient state of a booking in progress.
type CheckoutSession struct {
	CustomerID          string     `json:"customerId"`
	Items               []CartItem `json:"items"`
	ZipCode             string     `json:"zipCode"`
	ScheduledDate       string     `json:"scheduledDate"`
	ScheduledTime       string     `json:"scheduledTime"`
	SpecialInstructions string     `json:"specialInstructions"`
	CouponCode          string     `json:"couponCode,omitempty"`
	Subtotal            float64    `json:"subtotal"`
	Discount            float64    `json:"discount"`
	Total               float64    `json:"total"`
}
