package invoiceRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mountify/database"
	"mountify/models"
)

// MongoInvoiceRepo implements InvoiceRepository using MongoDB.
type MongoInvoiceRepo struct {
	modColl     *mongo.Collection
	invoiceColl *mongo.Collection
}

// NewMongoInvoiceRepo constructs a new instance of MongoInvoiceRepo.
func NewMongoInvoiceRepo() InvoiceRepository {
	db := database.DB()
	return &MongoInvoiceRepo{
		modColl:     db.Collection("invoice_modifications"),
		invoiceColl: db.Collection("invoices"),
	}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// CreateModification inserts a new invoice modification.
func (repo *MongoInvoiceRepo) CreateModification(mod *models.InvoiceModification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := repo.modColl.InsertOne(ctx, mod)
	if err != nil {
		return fmt.Errorf("error creating invoice modification: %w", err)
	}
	return nil
}

// GetModification retrieves a modification by ID.
func (repo *MongoInvoiceRepo) GetModification(ctx context.Context, modID string) (*models.InvoiceModification, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var mod models.InvoiceModification
	err := repo.modColl.FindOne(ctxWithTimeout, bson.M{"id": modID}).Decode(&mod)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("invoice modification %s not found", modID)
		}
		return nil, fmt.Errorf("error fetching invoice modification %s: %w", modID, err)
	}
	return &mod, nil
}

// UpdateModification replaces a modification document.
func (repo *MongoInvoiceRepo) UpdateModification(mod *models.InvoiceModification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": mod.ID}
	update := bson.M{"$set": mod}
	res, err := repo.modColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating invoice modification %s: %w", mod.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("invoice modification %s not found", mod.ID)
	}
	return nil
}

// ListModifications returns all modifications for a booking, oldest first.
func (repo *MongoInvoiceRepo) ListModifications(bookingID string) ([]models.InvoiceModification, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := repo.modColl.Find(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return nil, fmt.Errorf("error listing invoice modifications: %w", err)
	}
	defer cursor.Close(ctx)

	var mods []models.InvoiceModification
	for cursor.Next(ctx) {
		var m models.InvoiceModification
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("error decoding invoice modification: %w", err)
		}
		mods = append(mods, m)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return mods, nil
}

// ApprovedDelta sums approved modification amounts for a booking.
func (repo *MongoInvoiceRepo) ApprovedDelta(ctx context.Context, bookingID string) (float64, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"booking_id": bookingID, "status": models.ModificationApproved}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}},
	}
	cursor, err := repo.modColl.Aggregate(ctxWithTimeout, pipeline)
	if err != nil {
		return 0, fmt.Errorf("error aggregating approved modifications: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var result struct {
		Total float64 `bson:"total"`
	}
	if cursor.Next(ctxWithTimeout) {
		if err := cursor.Decode(&result); err != nil {
			return 0, fmt.Errorf("error decoding approved delta: %w", err)
		}
	}
	return result.Total, nil
}

// CreateInvoice inserts a rendered invoice document.
func (repo *MongoInvoiceRepo) CreateInvoice(inv *models.Invoice) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := repo.invoiceColl.InsertOne(ctx, inv)
	if err != nil {
		return fmt.Errorf("error creating invoice: %w", err)
	}
	return nil
}

// GetInvoiceByBookingID retrieves the invoice rendered for a booking.
func (repo *MongoInvoiceRepo) GetInvoiceByBookingID(bookingID string) (*models.Invoice, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var inv models.Invoice
	err := repo.invoiceColl.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&inv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("invoice for booking %s not found", bookingID)
		}
		return nil, fmt.Errorf("error fetching invoice for booking %s: %w", bookingID, err)
	}
	return &inv, nil
}
