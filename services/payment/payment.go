package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mountify/metrics"
	"mountify/models"
	"mountify/utils"
)

const defaultCurrency = "usd"

// Authorize places a hold for the booking total and records a transaction.
// The transaction is created pending, moves to authorized once the processor
// confirms the hold, and to failed on processor error.
func (svc *DefaultPaymentService) Authorize(ctx context.Context, booking *models.Booking, customer *models.User) (*models.Transaction, error) {
	if booking.TotalPrice <= 0 {
		return nil, newPaymentError("invalidAmount", "booking total must be positive", false)
	}
	if customer.PaymentMethodID == "" {
		return nil, newPaymentError("noPaymentMethod", "customer has no saved payment method", false)
	}

	txn := &models.Transaction{
		ID:         uuid.New().String(),
		BookingID:  booking.ID,
		CustomerID: customer.ID,
		Status:     models.TransactionPending,
		Amount:     booking.TotalPrice,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := svc.Repo.Create(txn); err != nil {
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	hold, err := svc.Processor.CreateHold(ctx, HoldRequest{
		Amount:          booking.TotalPrice,
		Currency:        defaultCurrency,
		CustomerID:      customer.StripeCustomer,
		PaymentMethodID: customer.PaymentMethodID,
		IdempotencyKey:  "auth-" + booking.ID,
		Description:     fmt.Sprintf("Booking %s", booking.ID),
	})
	if err != nil {
		txn.Status = models.TransactionFailed
		txn.FailureReason = err.Error()
		if uerr := svc.Repo.Update(txn); uerr != nil {
			svc.Logger.Error("failed to record authorization failure", zap.Error(uerr))
		}
		metrics.IncPayment("authorize", "failed")
		return nil, newPaymentError("authorizationFailed", err.Error(), true)
	}

	txn.Status = models.TransactionAuthorized
	txn.PaymentIntentID = hold.IntentID
	if err := svc.Repo.Update(txn); err != nil {
		// The hold exists at the processor but our record is stale. Surface
		// as retryable so the caller can reconcile instead of re-authorizing.
		metrics.IncPayment("authorize", "persist_failed")
		return nil, newPaymentError("persistFailed",
			fmt.Sprintf("hold %s created but transaction not persisted: %v", hold.IntentID, err), true)
	}

	metrics.IncPayment("authorize", "ok")
	svc.Logger.Info("payment authorized",
		zap.String("booking", booking.ID),
		zap.String("intent", hold.IntentID))
	return txn, nil
}

// Capture charges the held funds for a booking. It is idempotent per
// booking: if the transaction is already captured the prior result is
// returned without touching the processor. The capture amount re-reads the
// approved invoice-modification delta immediately before charging so a
// just-rejected modification is never billed.
func (svc *DefaultPaymentService) Capture(ctx context.Context, bookingID string) (*models.Transaction, error) {
	txn, err := svc.Repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	if txn.Status == models.TransactionCaptured {
		svc.Logger.Info("capture skipped, already captured",
			zap.String("booking", bookingID),
			zap.String("intent", txn.PaymentIntentID))
		metrics.IncPayment("capture", "noop")
		return txn, nil
	}
	if txn.Status != models.TransactionAuthorized {
		return nil, newPaymentError("notAuthorized",
			fmt.Sprintf("transaction for booking %s is %s, not authorized", bookingID, txn.Status), false)
	}
	if txn.PaymentIntentID == "" {
		return nil, newPaymentError("missingIntent", "transaction has no payment-intent id", false)
	}

	delta, err := svc.Invoices.ApprovedDelta(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("capture: failed to read approved modifications: %w", err)
	}
	amount := utils.RoundCents(txn.Amount + delta)
	if amount <= 0 {
		// Approved reductions wiped out the whole charge. Release the hold
		// instead of sending the processor a non-positive capture.
		if err := svc.Processor.Release(ctx, txn.PaymentIntentID); err != nil {
			metrics.IncPayment("capture", "release_failed")
			return nil, newPaymentError("captureFailed", err.Error(), true)
		}
		now := time.Now()
		txn.Status = models.TransactionCaptured
		txn.CapturedAmount = 0
		txn.CapturedAt = &now
		if err := svc.Repo.Update(txn); err != nil {
			metrics.IncPayment("capture", "persist_failed")
			return nil, newPaymentError("persistFailed",
				fmt.Sprintf("hold released but transaction not persisted: %v", err), true)
		}
		metrics.IncPayment("capture", "released")
		svc.Logger.Info("hold released, nothing to capture",
			zap.String("booking", bookingID),
			zap.Float64("delta", delta))
		return txn, nil
	}

	res, err := svc.Processor.Capture(ctx, txn.PaymentIntentID, amount)
	if err != nil {
		// The hold is intact; the transaction stays authorized and the
		// caller may retry.
		metrics.IncPayment("capture", "failed")
		return nil, newPaymentError("captureFailed", err.Error(), true)
	}

	now := time.Now()
	txn.Status = models.TransactionCaptured
	txn.CapturedAmount = res.CapturedAmount
	txn.CapturedAt = &now
	if err := svc.Repo.Update(txn); err != nil {
		metrics.IncPayment("capture", "persist_failed")
		return nil, newPaymentError("persistFailed",
			fmt.Sprintf("capture succeeded but transaction not persisted: %v", err), true)
	}

	metrics.IncPayment("capture", "ok")
	svc.Logger.Info("payment captured",
		zap.String("booking", bookingID),
		zap.Float64("amount", res.CapturedAmount))
	return txn, nil
}
