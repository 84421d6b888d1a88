package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mountify/database"
	"mountify/models"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	serviceColl *mongo.Collection
	couponColl  *mongo.Collection
}

// NewMongoCatalogRepo constructs a new instance of MongoCatalogRepo.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.DB()
	return &MongoCatalogRepo{
		serviceColl: db.Collection("services"),
		couponColl:  db.Collection("coupons"),
	}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ListServices returns active services sorted by sort order. When
// visibleOnly is set, hidden services are filtered out.
func (repo *MongoCatalogRepo) ListServices(visibleOnly bool) ([]models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"active": true}
	if visibleOnly {
		filter["visible"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})
	cursor, err := repo.serviceColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	for cursor.Next(ctx) {
		var s models.Service
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("error decoding service: %w", err)
		}
		services = append(services, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return services, nil
}

// GetServiceByID retrieves a catalog service by ID.
func (repo *MongoCatalogRepo) GetServiceByID(serviceID string) (*models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var svc models.Service
	err := repo.serviceColl.FindOne(ctx, bson.M{"id": serviceID}).Decode(&svc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("service %s not found", serviceID)
		}
		return nil, fmt.Errorf("error fetching service %s: %w", serviceID, err)
	}
	return &svc, nil
}

// UpsertService creates or replaces a catalog service.
func (repo *MongoCatalogRepo) UpsertService(svc *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": svc.ID}
	opts := options.Replace().SetUpsert(true)
	_, err := repo.serviceColl.ReplaceOne(ctx, filter, svc, opts)
	if err != nil {
		return fmt.Errorf("error upserting service %s: %w", svc.ID, err)
	}
	return nil
}

// GetCouponByCode retrieves an active coupon by its code.
func (repo *MongoCatalogRepo) GetCouponByCode(code string) (*models.Coupon, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var coupon models.Coupon
	filter := bson.M{
		"code":   code,
		"active": true,
		"$or": []bson.M{
			{"expires_at": bson.M{"$exists": false}},
			{"expires_at": nil},
			{"expires_at": bson.M{"$gt": time.Now()}},
		},
	}
	err := repo.couponColl.FindOne(ctx, filter).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("coupon %s not found", code)
		}
		return nil, fmt.Errorf("error fetching coupon %s: %w", code, err)
	}
	return &coupon, nil
}
