package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mountify/events"
	"mountify/models"
	"mountify/utils"
)

// ProposeModification records a pending price delta and adds it to the
// booking's pending balance. Nothing is charged until the customer approves.
func (svc *DefaultInvoiceService) ProposeModification(ctx context.Context, in ModificationInput) (*models.InvoiceModification, error) {
	if in.Amount == 0 {
		return nil, newInvoiceError("zeroAmount", "modification amount must be non-zero")
	}
	if in.Reason == "" {
		return nil, newInvoiceError("missingReason", "a reason is required for every modification")
	}

	booking, err := svc.Bookings.GetByID(ctx, in.BookingID)
	if err != nil {
		return nil, newInvoiceError("unknownBooking", fmt.Sprintf("booking %s not found", in.BookingID))
	}
	if booking.Status == models.BookingCancelled {
		return nil, newInvoiceError("bookingCancelled", "cannot modify a cancelled booking")
	}

	mod := &models.InvoiceModification{
		ID:         uuid.New().String(),
		BookingID:  in.BookingID,
		Amount:     utils.RoundCents(in.Amount),
		Reason:     in.Reason,
		Status:     models.ModificationPending,
		ProposedBy: in.ProposedBy,
		CreatedAt:  time.Now().UTC(),
	}
	if err := svc.Repo.CreateModification(mod); err != nil {
		return nil, fmt.Errorf("failed to store modification: %w", err)
	}

	if err := svc.adjustBooking(ctx, in.BookingID, func(b *models.Booking) {
		b.PendingPaymentAmount = utils.RoundCents(b.PendingPaymentAmount + mod.Amount)
	}); err != nil {
		return nil, err
	}

	if err := svc.Notifier.NotifyCustomer(ctx, booking.CustomerID,
		"Price change proposed",
		fmt.Sprintf("A change of $%.2f needs your approval: %s", mod.Amount, mod.Reason),
		map[string]string{"bookingId": booking.ID, "modificationId": mod.ID}); err != nil {
		svc.Logger.Warn("failed to push modification notice", zap.Error(err))
	}

	svc.publish("created", mod.ID)
	return mod, nil
}

// MarkViewed stamps when the customer first saw the proposal. Viewing is
// informational only and never changes the approval state.
func (svc *DefaultInvoiceService) MarkViewed(ctx context.Context, modID, customerID string) error {
	mod, err := svc.Repo.GetModification(ctx, modID)
	if err != nil {
		return newInvoiceError("notFound", fmt.Sprintf("modification %s not found", modID))
	}
	if err := svc.requireCustomer(ctx, mod.BookingID, customerID); err != nil {
		return err
	}
	if mod.CustomerViewedAt != nil {
		return nil
	}
	now := time.Now().UTC()
	mod.CustomerViewedAt = &now
	if err := svc.Repo.UpdateModification(mod); err != nil {
		return fmt.Errorf("failed to mark modification viewed: %w", err)
	}
	return nil
}

// Approve resolves a pending modification in the customer's favor and folds
// the amount into the booking total. Only the booking's customer may
// approve; the proposing worker cannot resolve their own change.
func (svc *DefaultInvoiceService) Approve(ctx context.Context, modID, customerID string) (*models.InvoiceModification, error) {
	return svc.resolve(ctx, modID, customerID, models.ModificationApproved)
}

// Reject resolves a pending modification without changing the booking total.
func (svc *DefaultInvoiceService) Reject(ctx context.Context, modID, customerID string) (*models.InvoiceModification, error) {
	return svc.resolve(ctx, modID, customerID, models.ModificationRejected)
}

// requireCustomer verifies that the caller owns the booking the
// modification belongs to.
func (svc *DefaultInvoiceService) requireCustomer(ctx context.Context, bookingID, customerID string) error {
	booking, err := svc.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return newInvoiceError("unknownBooking", fmt.Sprintf("booking %s not found", bookingID))
	}
	if booking.CustomerID != customerID {
		return newInvoiceError("notCustomer", "only the booking's customer may act on this modification")
	}
	return nil
}

func (svc *DefaultInvoiceService) resolve(ctx context.Context, modID, customerID string, status models.ModificationStatus) (*models.InvoiceModification, error) {
	mod, err := svc.Repo.GetModification(ctx, modID)
	if err != nil {
		return nil, newInvoiceError("notFound", fmt.Sprintf("modification %s not found", modID))
	}
	if err := svc.requireCustomer(ctx, mod.BookingID, customerID); err != nil {
		return nil, err
	}
	if mod.Status != models.ModificationPending {
		return nil, newInvoiceError("alreadyResolved",
			fmt.Sprintf("modification is already %s", mod.Status))
	}

	now := time.Now().UTC()
	mod.Status = status
	mod.ResolvedAt = &now
	if err := svc.Repo.UpdateModification(mod); err != nil {
		return nil, fmt.Errorf("failed to resolve modification: %w", err)
	}

	if err := svc.adjustBooking(ctx, mod.BookingID, func(b *models.Booking) {
		b.PendingPaymentAmount = utils.RoundCents(b.PendingPaymentAmount - mod.Amount)
		if b.PendingPaymentAmount < 0 {
			b.PendingPaymentAmount = 0
		}
		if status == models.ModificationApproved {
			b.TotalPrice = utils.RoundCents(b.TotalPrice + mod.Amount)
			if b.TotalPrice < 0 {
				b.TotalPrice = 0
			}
		}
	}); err != nil {
		return nil, err
	}

	svc.publish("updated", mod.ID)
	return mod, nil
}

func (svc *DefaultInvoiceService) ListForBooking(bookingID string) ([]models.InvoiceModification, error) {
	return svc.Repo.ListModifications(bookingID)
}

// GenerateInvoice renders the final billing document for a booking from its
// line items, approved modifications and captured transaction.
func (svc *DefaultInvoiceService) GenerateInvoice(ctx context.Context, bookingID string) (*models.Invoice, error) {
	if existing, err := svc.Repo.GetInvoiceByBookingID(bookingID); err == nil {
		return existing, nil
	}

	booking, err := svc.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, newInvoiceError("unknownBooking", fmt.Sprintf("booking %s not found", bookingID))
	}
	if booking.Status != models.BookingCompleted {
		return nil, newInvoiceError("notCompleted", "invoices are only generated for completed bookings")
	}

	delta, err := svc.Repo.ApprovedDelta(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum approved modifications: %w", err)
	}

	inv := &models.Invoice{
		ID:            uuid.New().String(),
		BookingID:     booking.ID,
		CustomerID:    booking.CustomerID,
		Items:         booking.Items,
		Subtotal:      booking.Subtotal,
		Discount:      booking.Discount,
		Modifications: delta,
		Total:         booking.TotalPrice,
		CreatedAt:     time.Now().UTC(),
	}
	if txn, err := svc.Txns.GetByBookingID(ctx, bookingID); err == nil {
		inv.TransactionID = txn.ID
	}
	if err := svc.Repo.CreateInvoice(inv); err != nil {
		return nil, fmt.Errorf("failed to store invoice: %w", err)
	}
	return inv, nil
}

// adjustBooking applies fn to the booking under the optimistic re-read loop.
// Concurrent proposals surface as lock conflicts from the store and are
// retried a fixed number of times.
func (svc *DefaultInvoiceService) adjustBooking(ctx context.Context, bookingID string, fn func(*models.Booking)) error {
	return utils.RetryOnLock(ctx, utils.LockRetryAttempts, utils.LockRetryDelay, func() error {
		booking, err := svc.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		fn(booking)
		booking.UpdatedAt = time.Now().UTC()
		return svc.Bookings.Update(booking.ID, booking)
	})
}

func (svc *DefaultInvoiceService) publish(action, modID string) {
	if svc.Hub == nil {
		return
	}
	svc.Hub.Publish(events.Event{
		Topic:     events.TopicInvoices,
		Action:    action,
		RecordID:  modID,
		CreatedAt: time.Now().UTC(),
	})
}
