package models

import "time"

// TransactionStatus tracks the authorize/capture lifecycle of a payment.
// A refund never overwrites the status; it is recorded as a separate
// Refund ledger entry.
type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "pending"
	TransactionAuthorized TransactionStatus = "authorized"
	TransactionCaptured   TransactionStatus = "captured"
	TransactionFailed     TransactionStatus = "failed"
)

// Transaction records a payment hold against a booking and its capture.
type Transaction struct {
	ID              string            `bson:"id" json:"id"`
	BookingID       string            `bson:"booking_id" json:"booking_id"`
	CustomerID      string            `bson:"customer_id" json:"customer_id"`
	Status          TransactionStatus `bson:"status" json:"status"`
	Amount          float64           `bson:"amount" json:"amount"`
	CapturedAmount  float64           `bson:"captured_amount,omitempty" json:"captured_amount,omitempty"`
	PaymentIntentID string            `bson:"payment_intent_id,omitempty" json:"payment_intent_id,omitempty"`
	FailureReason   string            `bson:"failure_reason,omitempty" json:"failure_reason,omitempty"`
	CreatedAt       time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `bson:"updated_at" json:"updated_at"`
	CapturedAt      *time.Time        `bson:"captured_at,omitempty" json:"captured_at,omitempty"`
}

// RefundType distinguishes a full reversal from a partial one.
type RefundType string

const (
	RefundFull    RefundType = "full"
	RefundPartial RefundType = "partial"
)

// Refund is a reversal ledger entry against a transaction.
type Refund struct {
	ID            string     `bson:"id" json:"id"`
	TransactionID string     `bson:"transaction_id" json:"transaction_id"`
	BookingID     string     `bson:"booking_id" json:"booking_id"`
	ProcessorID   string     `bson:"processor_id" json:"processor_id"`
	Amount        float64    `bson:"amount" json:"amount"`
	Type          RefundType `bson:"type" json:"type"`
	Reason        string     `bson:"reason" json:"reason"`
	IssuedBy      string     `bson:"issued_by" json:"issued_by"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
}
