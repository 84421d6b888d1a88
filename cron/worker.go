package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"mountify/config"
	logsRepo "mountify/database/repository/logs"
	"mountify/models"
	"mountify/services/notification"
	"mountify/utils"
)

// InitEmailWorker runs the async email worker in the background. Assignment
// emails enqueued by the booking service are delivered here so the request
// path never blocks on the email provider.
func InitEmailWorker(email *notification.EmailClient, logs logsRepo.LogRepository) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeWorkerAssignmentEmail, handleAssignmentEmail(email, logs, logger))

	go func() {
		logger.Info("starting async email worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("email worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("email worker exhausted start attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleAssignmentEmail(email *notification.EmailClient, logs logsRepo.LogRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p notification.WorkerAssignmentPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid assignment email payload", zap.Error(err))
			return err
		}

		subject := fmt.Sprintf("New job assigned for %s", p.ScheduledDate)
		body := fmt.Sprintf(
			"<p>Hi %s,</p><p>You've been assigned a new job in zip %s on %s at %s.</p><p>Open the app for the full details.</p>",
			p.WorkerName, p.ZipCode, p.ScheduledDate, p.ScheduledTime)

		var sendErr error
		if email == nil {
			sendErr = fmt.Errorf("email provider not configured")
		} else {
			sendErr = email.Send(p.WorkerEmail, subject, body)
		}

		entry := &models.EmailLog{
			ID:        uuid.New().String(),
			To:        p.WorkerEmail,
			Subject:   subject,
			BookingID: p.BookingID,
			Status:    "sent",
			CreatedAt: time.Now().UTC(),
		}
		if sendErr != nil {
			entry.Status = "failed"
			entry.Error = sendErr.Error()
		}
		if err := logs.InsertEmailLog(entry); err != nil {
			logger.Warn("failed to record email log", zap.Error(err))
		}

		if sendErr != nil {
			logger.Error("assignment email failed",
				zap.String("booking", p.BookingID), zap.Error(sendErr))
			// Returning the error lets asynq retry with backoff.
			return sendErr
		}
		logger.Info("assignment email sent",
			zap.String("booking", p.BookingID), zap.String("to", p.WorkerEmail))
		return nil
	}
}
