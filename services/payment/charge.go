package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mountify/metrics"
	"mountify/models"
)

// ChargeSavedMethod charges a customer's saved payment method directly for
// an out-of-band amount. This is a one-shot charge, not part of the
// authorize/capture pair, and records its own transaction with no booking
// hold semantics.
func (svc *DefaultPaymentService) ChargeSavedMethod(ctx context.Context, req ManualChargeRequest) (*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, newPaymentError("invalidAmount", "charge amount must be positive", false)
	}

	customer, err := svc.lookupCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	res, err := svc.Processor.Charge(ctx, ChargeRequest{
		Amount:          req.Amount,
		Currency:        defaultCurrency,
		CustomerID:      customer.StripeCustomer,
		PaymentMethodID: customer.PaymentMethodID,
		Description:     req.Description,
	})
	if err != nil {
		metrics.IncPayment("manual_charge", "failed")
		return nil, newPaymentError("chargeFailed", err.Error(), true)
	}

	now := time.Now()
	txn := &models.Transaction{
		ID:              uuid.New().String(),
		BookingID:       "manual-" + uuid.New().String(),
		CustomerID:      req.CustomerID,
		Status:          models.TransactionCaptured,
		Amount:          res.Amount,
		CapturedAmount:  res.Amount,
		PaymentIntentID: res.IntentID,
		CreatedAt:       now,
		UpdatedAt:       now,
		CapturedAt:      &now,
	}
	if err := svc.Repo.Create(txn); err != nil {
		metrics.IncPayment("manual_charge", "persist_failed")
		return nil, newPaymentError("persistFailed",
			fmt.Sprintf("charge %s succeeded but transaction not persisted: %v", res.IntentID, err), true)
	}

	metrics.IncPayment("manual_charge", "ok")
	svc.Logger.Info("manual charge completed",
		zap.String("customer", req.CustomerID),
		zap.Float64("amount", res.Amount),
		zap.String("issuedBy", req.IssuedBy))
	return txn, nil
}
