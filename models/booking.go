package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// Booking represents a scheduled service request. TotalPrice always equals
// the sum of line totals plus approved modifications minus the coupon
// discount, floored at zero. PendingPaymentAmount is the sum of proposed
// modifications still awaiting customer approval.
type Booking struct {
	ID                   string        `bson:"id" json:"id"`
	CustomerID           string        `bson:"customer_id" json:"customer_id"`
	WorkerID             string        `bson:"worker_id,omitempty" json:"worker_id,omitempty"`
	Items                []CartItem    `bson:"items" json:"items"`
	ZipCode              string        `bson:"zip_code" json:"zip_code"`
	ScheduledDate        string        `bson:"scheduled_date" json:"scheduled_date"` // "YYYY-MM-DD"
	ScheduledTime        string        `bson:"scheduled_time" json:"scheduled_time"` // "HH:MM"
	Status               BookingStatus `bson:"status" json:"status"`
	Subtotal             float64       `bson:"subtotal" json:"subtotal"`
	Discount             float64       `bson:"discount" json:"discount"`
	TotalPrice           float64       `bson:"total_price" json:"total_price"`
	PendingPaymentAmount float64       `bson:"pending_payment_amount" json:"pending_payment_amount"`
	SpecialInstructions  string        `bson:"special_instructions,omitempty" json:"special_instructions,omitempty"`
	CreatedAt            time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time     `bson:"updated_at" json:"updated_at"`
	CompletedAt          *time.Time    `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}
