package notification

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	logsRepo "mountify/database/repository/logs"
	userRepo "mountify/database/repository/user"
	"mountify/models"
)

// NotificationService sends customer pushes and queues worker emails.
type NotificationService interface {
	NotifyCustomer(ctx context.Context, userID, title, body string, data map[string]string) error
	QueueWorkerAssignmentEmail(ctx context.Context, booking *models.Booking, worker *models.User) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users  userRepo.UserRepository
	Logs   logsRepo.LogRepository
	Queue  *asynq.Client
	Email  *EmailClient
	Logger *zap.Logger
}

func NewDefaultNotificationService(
	users userRepo.UserRepository,
	logs logsRepo.LogRepository,
	queue *asynq.Client,
	email *EmailClient,
	logger *zap.Logger,
) (*DefaultNotificationService, error) {
	if users == nil || logs == nil {
		return nil, fmt.Errorf("notification service initialization error: user or log repository is nil")
	}
	return &DefaultNotificationService{
		Users:  users,
		Logs:   logs,
		Queue:  queue,
		Email:  email,
		Logger: logger,
	}, nil
}
