package payment

import "context"

// HoldRequest asks the processor to place a hold without charging.
type HoldRequest struct {
	Amount          float64
	Currency        string
	CustomerID      string
	PaymentMethodID string
	IdempotencyKey  string
	Description     string
}

// HoldResult is the processor's confirmation of a hold.
type HoldResult struct {
	IntentID string
	Status   string
}

// CaptureResult is the processor's confirmation of a capture.
type CaptureResult struct {
	IntentID       string
	CapturedAmount float64
}

// RefundResult is the processor's confirmation of a refund.
type RefundResult struct {
	RefundID string
	Amount   float64
}

// ChargeRequest asks the processor for a one-shot charge of a saved method.
type ChargeRequest struct {
	Amount          float64
	Currency        string
	CustomerID      string
	PaymentMethodID string
	Description     string
}

// ChargeResult is the processor's confirmation of a direct charge.
type ChargeResult struct {
	IntentID string
	Amount   float64
}

// Processor is the payment-provider boundary. Secret credentials live only
// behind this interface; handlers never talk to the provider directly.
type Processor interface {
	CreateHold(ctx context.Context, req HoldRequest) (*HoldResult, error)
	Capture(ctx context.Context, intentID string, amount float64) (*CaptureResult, error)
	Release(ctx context.Context, intentID string) error
	Refund(ctx context.Context, intentID string, amount float64, reason string) (*RefundResult, error)
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}
