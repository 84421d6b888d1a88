package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mountify/models"
)

// Create inserts a new booking document.
func (repo *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": bookingID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking %s not found", bookingID)
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// Update modifies an existing booking document.
func (repo *MongoBookingRepo) Update(bookingID string, updated *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updated.UpdatedAt = time.Now()
	filter := bson.M{"id": bookingID}
	update := bson.M{"$set": updated}
	_, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", bookingID, err)
	}
	return nil
}

// UpdateStatus sets the booking status and updated timestamp only.
func (repo *MongoBookingRepo) UpdateStatus(bookingID string, status models.BookingStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID}
	set := bson.M{"status": status, "updated_at": time.Now()}
	if status == models.BookingCompleted {
		set["completed_at"] = time.Now()
	}
	res, err := repo.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating booking status %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	return nil
}

// Delete removes a booking record.
func (repo *MongoBookingRepo) Delete(bookingID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := repo.coll.DeleteOne(ctx, bson.M{"id": bookingID})
	if err != nil {
		return fmt.Errorf("error deleting booking %s: %w", bookingID, err)
	}
	return nil
}
