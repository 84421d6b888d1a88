package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"mountify/models"
	"mountify/utils"
)

// TypeWorkerAssignmentEmail is the asynq task type for assignment emails.
const TypeWorkerAssignmentEmail = "email:worker_assignment"

// WorkerAssignmentPayload is the queued task body.
type WorkerAssignmentPayload struct {
	BookingID     string `json:"bookingId"`
	WorkerID      string `json:"workerId"`
	WorkerEmail   string `json:"workerEmail"`
	WorkerName    string `json:"workerName"`
	ScheduledDate string `json:"scheduledDate"`
	ScheduledTime string `json:"scheduledTime"`
	ZipCode       string `json:"zipCode"`
}

// NotifyCustomer sends an FCM push to the customer's registered device.
// A missing token is not an error; the push is simply skipped.
func (svc *DefaultNotificationService) NotifyCustomer(ctx context.Context, userID, title, body string, data map[string]string) error {
	user, err := svc.Users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	if user.FCMToken == "" {
		svc.Logger.Debug("no FCM token for user, push skipped", zap.String("user", userID))
		return nil
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send push to user %s: %w", userID, err)
	}
	return nil
}

// QueueWorkerAssignmentEmail enqueues an assignment email for background
// delivery so booking assignment never blocks on the email provider.
func (svc *DefaultNotificationService) QueueWorkerAssignmentEmail(ctx context.Context, booking *models.Booking, worker *models.User) error {
	payload, err := json.Marshal(WorkerAssignmentPayload{
		BookingID:     booking.ID,
		WorkerID:      worker.ID,
		WorkerEmail:   worker.Email,
		WorkerName:    worker.Name,
		ScheduledDate: booking.ScheduledDate,
		ScheduledTime: booking.ScheduledTime,
		ZipCode:       booking.ZipCode,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal assignment payload: %w", err)
	}

	task := asynq.NewTask(TypeWorkerAssignmentEmail, payload)
	if _, err := svc.Queue.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue assignment email: %w", err)
	}
	svc.Logger.Info("assignment email queued",
		zap.String("booking", booking.ID),
		zap.String("worker", worker.ID))
	return nil
}
