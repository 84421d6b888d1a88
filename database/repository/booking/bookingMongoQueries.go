package bookingRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mountify/models"
)

// ListByCustomer fetches all bookings for a customer, newest first.
func (repo *MongoBookingRepo) ListByCustomer(customerID string) ([]models.Booking, error) {
	return repo.list(bson.M{"customer_id": customerID})
}

// ListByWorker fetches all bookings assigned to a worker, newest first.
func (repo *MongoBookingRepo) ListByWorker(workerID string) ([]models.Booking, error) {
	return repo.list(bson.M{"worker_id": workerID})
}

func (repo *MongoBookingRepo) list(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

// ClearCompletedForWorker detaches completed bookings from a worker's
// dashboard and returns how many were cleared.
func (repo *MongoBookingRepo) ClearCompletedForWorker(workerID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"worker_id": workerID, "status": models.BookingCompleted}
	update := bson.M{"$set": bson.M{"cleared_from_dashboard": true, "updated_at": time.Now()}}
	res, err := repo.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error clearing completed bookings for worker %s: %w", workerID, err)
	}
	return res.ModifiedCount, nil
}
