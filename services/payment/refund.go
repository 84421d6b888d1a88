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

// Refund reverses a captured (or releases an authorized) payment. A reason
// is required. The refund is recorded as a separate ledger entry; the
// transaction status is never overwritten.
func (svc *DefaultPaymentService) Refund(ctx context.Context, req RefundRequest) (*models.Refund, error) {
	if req.Reason == "" {
		return nil, newPaymentError("missingReason", "a refund reason is required", false)
	}

	txn, err := svc.Repo.GetByBookingID(ctx, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("refund: %w", err)
	}
	if txn.Status != models.TransactionCaptured && txn.Status != models.TransactionAuthorized {
		return nil, newPaymentError("refundNotAllowed",
			fmt.Sprintf("transaction for booking %s is %s; only captured or authorized payments can be refunded", req.BookingID, txn.Status), false)
	}

	refundable := txn.CapturedAmount
	if txn.Status == models.TransactionAuthorized {
		refundable = txn.Amount
	}
	amount := req.Amount
	if amount == 0 {
		amount = refundable
	}
	if amount <= 0 || amount > refundable {
		return nil, newPaymentError("invalidAmount",
			fmt.Sprintf("refund amount %.2f out of range (refundable %.2f)", amount, refundable), false)
	}

	res, err := svc.Processor.Refund(ctx, txn.PaymentIntentID, amount, req.Reason)
	if err != nil {
		metrics.IncPayment("refund", "failed")
		return nil, newPaymentError("refundFailed", err.Error(), true)
	}

	refundType := models.RefundPartial
	if amount == refundable {
		refundType = models.RefundFull
	}
	refund := &models.Refund{
		ID:            uuid.New().String(),
		TransactionID: txn.ID,
		BookingID:     req.BookingID,
		ProcessorID:   res.RefundID,
		Amount:        res.Amount,
		Type:          refundType,
		Reason:        req.Reason,
		IssuedBy:      req.IssuedBy,
		CreatedAt:     time.Now(),
	}
	if err := svc.Repo.CreateRefund(refund); err != nil {
		metrics.IncPayment("refund", "persist_failed")
		return nil, newPaymentError("persistFailed",
			fmt.Sprintf("refund %s issued but ledger entry not persisted: %v", res.RefundID, err), true)
	}

	if req.Notify && svc.Notifier != nil {
		if err := svc.Notifier.NotifyCustomer(ctx, txn.CustomerID,
			"Refund issued",
			fmt.Sprintf("A refund of $%.2f was issued for your booking.", res.Amount),
			map[string]string{"bookingId": req.BookingID, "refundId": refund.ID}); err != nil {
			svc.Logger.Warn("refund notification failed", zap.Error(err))
		}
	}

	metrics.IncPayment("refund", "ok")
	svc.Logger.Info("refund issued",
		zap.String("booking", req.BookingID),
		zap.Float64("amount", res.Amount),
		zap.String("type", string(refundType)))
	return refund, nil
}
