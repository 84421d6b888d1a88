package models

import "time"

// EmailLog records an outbound email attempt.
type EmailLog struct {
	ID        string    `bson:"id" json:"id"`
	To        string    `bson:"to" json:"to"`
	Subject   string    `bson:"subject" json:"subject"`
	BookingID string    `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	Status    string    `bson:"status" json:"status"` // "sent" or "failed"
	Error     string    `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// SMSLog records an outbound SMS attempt.
type SMSLog struct {
	ID        string    `bson:"id" json:"id"`
	To        string    `bson:"to" json:"to"`
	Body      string    `bson:"body" json:"body"`
	BookingID string    `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	Status    string    `bson:"status" json:"status"`
	Error     string    `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
