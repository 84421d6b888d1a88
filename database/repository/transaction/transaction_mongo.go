package transactionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mountify/database"
)

// MongoTransactionRepo implements TransactionRepository using MongoDB.
type MongoTransactionRepo struct {
	txnColl    *mongo.Collection
	refundColl *mongo.Collection
}

// NewMongoTransactionRepo constructs a new instance of MongoTransactionRepo.
func NewMongoTransactionRepo() TransactionRepository {
	db := database.DB()
	repo := &MongoTransactionRepo{
		txnColl:    db.Collection("transactions"),
		refundColl: db.Collection("refunds"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create transaction indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the unique booking_id index that backs capture
// idempotency: a booking can never hold two transactions.
func (repo *MongoTransactionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := repo.txnColl.Indexes().CreateMany(ctx, idx); err != nil {
		return err
	}
	_, err := repo.refundColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "transaction_id", Value: 1}},
	})
	return err
}
