package transactionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mountify/models"
)

// Create inserts a new transaction document.
func (repo *MongoTransactionRepo) Create(txn *models.Transaction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := repo.txnColl.InsertOne(ctx, txn)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("transaction for booking %s already exists: %w", txn.BookingID, err)
		}
		return fmt.Errorf("error creating transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by its ID.
func (repo *MongoTransactionRepo) GetByID(ctx context.Context, txnID string) (*models.Transaction, error) {
	return repo.findOne(ctx, bson.M{"id": txnID})
}

// GetByBookingID retrieves the transaction for a booking.
func (repo *MongoTransactionRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Transaction, error) {
	return repo.findOne(ctx, bson.M{"booking_id": bookingID})
}

func (repo *MongoTransactionRepo) findOne(ctx context.Context, filter bson.M) (*models.Transaction, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var txn models.Transaction
	err := repo.txnColl.FindOne(ctxWithTimeout, filter).Decode(&txn)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("transaction not found")
		}
		return nil, fmt.Errorf("error fetching transaction: %w", err)
	}
	return &txn, nil
}

// Update replaces a transaction document.
func (repo *MongoTransactionRepo) Update(txn *models.Transaction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	txn.UpdatedAt = time.Now()
	filter := bson.M{"id": txn.ID}
	update := bson.M{"$set": txn}
	res, err := repo.txnColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating transaction %s: %w", txn.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("transaction %s not found", txn.ID)
	}
	return nil
}

// DeleteByBookingID removes all transactions and refunds for a booking.
func (repo *MongoTransactionRepo) DeleteByBookingID(bookingID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := repo.txnColl.DeleteMany(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return 0, fmt.Errorf("error deleting transactions for booking %s: %w", bookingID, err)
	}
	if _, err := repo.refundColl.DeleteMany(ctx, bson.M{"booking_id": bookingID}); err != nil {
		return res.DeletedCount, fmt.Errorf("error deleting refunds for booking %s: %w", bookingID, err)
	}
	return res.DeletedCount, nil
}

// CreateRefund inserts a refund ledger entry.
func (repo *MongoTransactionRepo) CreateRefund(refund *models.Refund) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := repo.refundColl.InsertOne(ctx, refund)
	if err != nil {
		return fmt.Errorf("error creating refund: %w", err)
	}
	return nil
}

// ListRefunds returns all refund entries against a transaction.
func (repo *MongoTransactionRepo) ListRefunds(txnID string) ([]models.Refund, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := repo.refundColl.Find(ctx, bson.M{"transaction_id": txnID})
	if err != nil {
		return nil, fmt.Errorf("error listing refunds: %w", err)
	}
	defer cursor.Close(ctx)

	var refunds []models.Refund
	for cursor.Next(ctx) {
		var r models.Refund
		if err := cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("error decoding refund: %w", err)
		}
		refunds = append(refunds, r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return refunds, nil
}
