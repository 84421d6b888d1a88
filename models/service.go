package models

// ServiceCategory selects the pricing rules that apply to a catalog service.
type ServiceCategory string

const (
	CategoryTVMounting ServiceCategory = "tv_mounting"
	CategoryGeneral    ServiceCategory = "general"
)

// Service is a catalog entry offered for booking.
type Service struct {
	ID              string          `bson:"id" json:"id"`
	Name            string          `bson:"name" json:"name"`
	Category        ServiceCategory `bson:"category" json:"category"`
	BasePrice       float64         `bson:"base_price" json:"base_price"`
	DurationMinutes int             `bson:"duration_minutes" json:"duration_minutes"`
	Active          bool            `bson:"active" json:"active"`
	Visible         bool            `bson:"visible" json:"visible"`
	SortOrder       int             `bson:"sort_order" json:"sort_order"`
}
