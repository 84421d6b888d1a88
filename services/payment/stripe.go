package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"

	"mountify/utils"
)

// StripeProcessor implements Processor against the Stripe payment-intents
// API. Holds use manual capture so funds are only charged at completion.
type StripeProcessor struct{}

// NewStripeProcessor returns the production processor. The API key is set
// globally at startup via stripe.Key.
func NewStripeProcessor() *StripeProcessor {
	return &StripeProcessor{}
}

func (p *StripeProcessor) CreateHold(ctx context.Context, req HoldRequest) (*HoldResult, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.PaymentTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(utils.ToCents(req.Amount)),
		Currency:      stripe.String(req.Currency),
		Customer:      stripe.String(req.CustomerID),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(req.Description),
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create hold: %w", err)
	}
	return &HoldResult{IntentID: pi.ID, Status: string(pi.Status)}, nil
}

func (p *StripeProcessor) Capture(ctx context.Context, intentID string, amount float64) (*CaptureResult, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.PaymentTimeout)
	defer cancel()

	params := &stripe.PaymentIntentCaptureParams{
		AmountToCapture: stripe.Int64(utils.ToCents(amount)),
	}
	params.Context = ctx

	pi, err := paymentintent.Capture(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to capture intent %s: %w", intentID, err)
	}
	return &CaptureResult{
		IntentID:       pi.ID,
		CapturedAmount: float64(pi.AmountReceived) / 100,
	}, nil
}

func (p *StripeProcessor) Release(ctx context.Context, intentID string) error {
	ctx, cancel := context.WithTimeout(ctx, utils.PaymentTimeout)
	defer cancel()

	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	if _, err := paymentintent.Cancel(intentID, params); err != nil {
		return fmt.Errorf("stripe: failed to release hold %s: %w", intentID, err)
	}
	return nil
}

func (p *StripeProcessor) Refund(ctx context.Context, intentID string, amount float64, reason string) (*RefundResult, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.PaymentTimeout)
	defer cancel()

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
		Amount:        stripe.Int64(utils.ToCents(amount)),
	}
	params.Context = ctx
	params.AddMetadata("reason", reason)

	r, err := refund.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to refund intent %s: %w", intentID, err)
	}
	return &RefundResult{RefundID: r.ID, Amount: float64(r.Amount) / 100}, nil
}

func (p *StripeProcessor) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.PaymentTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(utils.ToCents(req.Amount)),
		Currency:      stripe.String(req.Currency),
		Customer:      stripe.String(req.CustomerID),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Confirm:       stripe.Bool(true),
		OffSession:    stripe.Bool(true),
		Description:   stripe.String(req.Description),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to charge saved method: %w", err)
	}
	return &ChargeResult{IntentID: pi.ID, Amount: float64(pi.Amount) / 100}, nil
}
