package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mountify/events"
	"mountify/metrics"
	"mountify/models"
	"mountify/utils"
)

// legalTransitions is the booking state machine. A transition absent from
// this map is rejected before any side effect runs.
var legalTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:    {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed:  {models.BookingInProgress, models.BookingCancelled},
	models.BookingInProgress: {models.BookingCompleted, models.BookingCancelled},
}

func transitionAllowed(from, to models.BookingStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ConfirmCheckout turns a checkout session into a persisted booking and
// places the payment hold. The session is consumed on success.
func (svc *DefaultBookingService) ConfirmCheckout(ctx context.Context, sessionID string) (*models.Booking, *models.Transaction, error) {
	session, err := svc.loadSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	cov, err := svc.Coverage.Check(ctx, session.ZipCode)
	if err != nil {
		return nil, nil, err
	}
	if !cov.Covered {
		return nil, nil, newBookingError("outsideCoverage", fmt.Sprintf("no workers serve zip %s", session.ZipCode))
	}

	customer, err := svc.Users.GetByID(session.CustomerID)
	if err != nil {
		return nil, nil, newBookingError("unknownCustomer", "customer account not found")
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		ID:                  uuid.New().String(),
		CustomerID:          customer.ID,
		Items:               session.Items,
		ZipCode:             session.ZipCode,
		ScheduledDate:       session.ScheduledDate,
		ScheduledTime:       session.ScheduledTime,
		Status:              models.BookingPending,
		Subtotal:            session.Subtotal,
		Discount:            session.Discount,
		TotalPrice:          session.Total,
		SpecialInstructions: session.SpecialInstructions,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := svc.Repo.Create(booking); err != nil {
		return nil, nil, fmt.Errorf("failed to create booking: %w", err)
	}

	txn, err := svc.Payments.Authorize(ctx, booking, customer)
	if err != nil {
		// The hold failed; the booking must not survive as a payable record.
		if delErr := svc.Repo.Delete(booking.ID); delErr != nil {
			svc.Logger.Error("failed to roll back booking after declined hold",
				zap.String("bookingID", booking.ID), zap.Error(delErr))
		}
		return nil, nil, err
	}

	if err := svc.Sessions.Del(ctx, utils.SessionCachePrefix+sessionID).Err(); err != nil {
		svc.Logger.Warn("failed to delete consumed checkout session",
			zap.String("sessionID", sessionID), zap.Error(err))
	}

	metrics.IncBooking(string(models.BookingPending))
	svc.publish("created", booking.ID)
	return booking, txn, nil
}

func (svc *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := svc.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, newBookingError("notFound", fmt.Sprintf("booking %s not found", bookingID))
	}
	return booking, nil
}

func (svc *DefaultBookingService) ListForCustomer(customerID string) ([]models.Booking, error) {
	return svc.Repo.ListByCustomer(customerID)
}

func (svc *DefaultBookingService) ListForWorker(workerID string) ([]models.Booking, error) {
	return svc.Repo.ListByWorker(workerID)
}

// AssignWorker moves a pending booking to confirmed and notifies both sides.
func (svc *DefaultBookingService) AssignWorker(ctx context.Context, bookingID, workerID string) error {
	booking, err := svc.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if !transitionAllowed(booking.Status, models.BookingConfirmed) {
		return newBookingError("invalidTransition",
			fmt.Sprintf("cannot assign a worker to a %s booking", booking.Status))
	}

	worker, err := svc.Users.GetByID(workerID)
	if err != nil {
		return newBookingError("unknownWorker", "worker account not found")
	}
	if worker.Role != models.RoleWorker {
		return newBookingError("notAWorker", fmt.Sprintf("user %s is not a worker", workerID))
	}

	booking.WorkerID = worker.ID
	booking.Status = models.BookingConfirmed
	booking.UpdatedAt = time.Now().UTC()
	if err := svc.Repo.Update(booking.ID, booking); err != nil {
		return fmt.Errorf("failed to assign worker: %w", err)
	}

	if err := svc.Notifier.QueueWorkerAssignmentEmail(ctx, booking, worker); err != nil {
		svc.Logger.Warn("failed to queue assignment email",
			zap.String("bookingID", bookingID), zap.Error(err))
	}
	if err := svc.Notifier.NotifyCustomer(ctx, booking.CustomerID,
		"Worker assigned",
		fmt.Sprintf("%s will handle your booking on %s.", worker.Name, booking.ScheduledDate),
		map[string]string{"bookingId": booking.ID}); err != nil {
		svc.Logger.Warn("failed to push assignment notice", zap.Error(err))
	}

	metrics.IncBooking(string(models.BookingConfirmed))
	svc.publish("updated", booking.ID)
	return nil
}

// StartJob marks a confirmed booking as in progress. Only the assigned
// worker may start it.
func (svc *DefaultBookingService) StartJob(ctx context.Context, bookingID, workerID string) error {
	booking, err := svc.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.WorkerID != workerID {
		return newBookingError("notAssigned", "booking is assigned to a different worker")
	}
	if !transitionAllowed(booking.Status, models.BookingInProgress) {
		return newBookingError("invalidTransition",
			fmt.Sprintf("cannot start a %s booking", booking.Status))
	}
	if err := svc.Repo.UpdateStatus(bookingID, models.BookingInProgress); err != nil {
		return fmt.Errorf("failed to start job: %w", err)
	}
	metrics.IncBooking(string(models.BookingInProgress))
	svc.publish("updated", bookingID)
	return nil
}

// Complete finishes the job and captures the payment hold. If the capture
// fails with a retryable error the booking stays completed and the charge
// can be retried by an admin.
func (svc *DefaultBookingService) Complete(ctx context.Context, bookingID, workerID string) (*models.Transaction, error) {
	booking, err := svc.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.WorkerID != workerID {
		return nil, newBookingError("notAssigned", "booking is assigned to a different worker")
	}
	if !transitionAllowed(booking.Status, models.BookingCompleted) {
		return nil, newBookingError("invalidTransition",
			fmt.Sprintf("cannot complete a %s booking", booking.Status))
	}

	now := time.Now().UTC()
	booking.Status = models.BookingCompleted
	booking.CompletedAt = &now
	booking.UpdatedAt = now
	if err := svc.Repo.Update(booking.ID, booking); err != nil {
		return nil, fmt.Errorf("failed to complete booking: %w", err)
	}
	metrics.IncBooking(string(models.BookingCompleted))
	svc.publish("updated", booking.ID)

	txn, err := svc.Payments.Capture(ctx, booking.ID)
	if err != nil {
		svc.Logger.Error("capture failed after completion",
			zap.String("bookingID", booking.ID), zap.Error(err))
		return nil, err
	}

	if err := svc.Notifier.NotifyCustomer(ctx, booking.CustomerID,
		"Job completed",
		fmt.Sprintf("Your booking is done. $%.2f was charged to your card.", txn.CapturedAmount),
		map[string]string{"bookingId": booking.ID}); err != nil {
		svc.Logger.Warn("failed to push completion notice", zap.Error(err))
	}
	return txn, nil
}

// Cancel aborts a booking before completion. Holds placed on cancelled
// bookings are released by the processor when they expire.
func (svc *DefaultBookingService) Cancel(ctx context.Context, bookingID string) error {
	booking, err := svc.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if !transitionAllowed(booking.Status, models.BookingCancelled) {
		return newBookingError("invalidTransition",
			fmt.Sprintf("cannot cancel a %s booking", booking.Status))
	}
	if err := svc.Repo.UpdateStatus(bookingID, models.BookingCancelled); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	metrics.IncBooking(string(models.BookingCancelled))
	svc.publish("updated", bookingID)
	return nil
}

func (svc *DefaultBookingService) publish(action, bookingID string) {
	if svc.Hub == nil {
		return
	}
	svc.Hub.Publish(events.Event{
		Topic:     events.TopicBookings,
		Action:    action,
		RecordID:  bookingID,
		CreatedAt: time.Now().UTC(),
	})
}
