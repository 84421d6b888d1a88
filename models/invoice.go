package models

import "time"

// ModificationStatus is the approval state of a proposed price change.
type ModificationStatus string

const (
	ModificationPending  ModificationStatus = "pending"
	ModificationApproved ModificationStatus = "approved"
	ModificationRejected ModificationStatus = "rejected"
)

// InvoiceModification is a post-booking price delta proposed by a worker or
// admin. It gates additional capture until the customer approves it.
// CustomerViewedAt records viewing only; it never implies approval.
type InvoiceModification struct {
	ID               string             `bson:"id" json:"id"`
	BookingID        string             `bson:"booking_id" json:"booking_id"`
	Amount           float64            `bson:"amount" json:"amount"`
	Reason           string             `bson:"reason" json:"reason"`
	Status           ModificationStatus `bson:"status" json:"status"`
	ProposedBy       string             `bson:"proposed_by" json:"proposed_by"`
	CustomerViewedAt *time.Time         `bson:"customer_viewed_at,omitempty" json:"customer_viewed_at,omitempty"`
	ResolvedAt       *time.Time         `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}

// Invoice is a rendered billing document for a booking.
type Invoice struct {
	ID            string     `bson:"id" json:"id"`
	BookingID     string     `bson:"booking_id" json:"booking_id"`
	CustomerID    string     `bson:"customer_id" json:"customer_id"`
	Items         []CartItem `bson:"items" json:"items"`
	Subtotal      float64    `bson:"subtotal" json:"subtotal"`
	Discount      float64    `bson:"discount" json:"discount"`
	Modifications float64    `bson:"modifications" json:"modifications"`
	Total         float64    `bson:"total" json:"total"`
	TransactionID string     `bson:"transaction_id,omitempty" json:"transaction_id,omitempty"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
}
