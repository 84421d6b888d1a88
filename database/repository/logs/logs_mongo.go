package logsRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"mountify/database"
	"mountify/models"
)

// LogRepository records delivery attempts for outbound messages.
type LogRepository interface {
	InsertEmailLog(log *models.EmailLog) error
	InsertSMSLog(log *models.SMSLog) error
}

// MongoLogRepo implements LogRepository using MongoDB.
type MongoLogRepo struct {
	emailColl *mongo.Collection
	smsColl   *mongo.Collection
}

// NewMongoLogRepo constructs a new instance of MongoLogRepo.
func NewMongoLogRepo() LogRepository {
	db := database.DB()
	return &MongoLogRepo{
		emailColl: db.Collection("email_logs"),
		smsColl:   db.Collection("sms_logs"),
	}
}

// InsertEmailLog records an email delivery attempt.
func (repo *MongoLogRepo) InsertEmailLog(log *models.EmailLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.emailColl.InsertOne(ctx, log)
	if err != nil {
		return fmt.Errorf("error inserting email log: %w", err)
	}
	return nil
}

// InsertSMSLog records an SMS delivery attempt.
func (repo *MongoLogRepo) InsertSMSLog(log *models.SMSLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.smsColl.InsertOne(ctx, log)
	if err != nil {
		return fmt.Errorf("error inserting sms log: %w", err)
	}
	return nil
}
