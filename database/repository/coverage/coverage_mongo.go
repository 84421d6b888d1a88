package coverageRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mountify/database"
	"mountify/models"
)

// MongoCoverageRepo implements CoverageRepository using MongoDB.
type MongoCoverageRepo struct {
	workerZipColl *mongo.Collection
	zipColl       *mongo.Collection
}

// NewMongoCoverageRepo constructs a new instance of MongoCoverageRepo.
func NewMongoCoverageRepo() CoverageRepository {
	db := database.DB()
	return &MongoCoverageRepo{
		workerZipColl: db.Collection("worker_service_zipcodes"),
		zipColl:       db.Collection("us_zip_codes"),
	}
}

// WorkersForZip returns the IDs of workers serving a ZIP code.
func (repo *MongoCoverageRepo) WorkersForZip(ctx context.Context, zip string) ([]string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.workerZipColl.Find(ctxWithTimeout, bson.M{"zip": zip})
	if err != nil {
		return nil, fmt.Errorf("error querying worker coverage for %s: %w", zip, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var workerIDs []string
	for cursor.Next(ctxWithTimeout) {
		var wz models.WorkerZip
		if err := cursor.Decode(&wz); err != nil {
			return nil, fmt.Errorf("error decoding worker coverage: %w", err)
		}
		workerIDs = append(workerIDs, wz.WorkerID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return workerIDs, nil
}

// GetZipInfo retrieves city/state/centroid data for a ZIP code.
func (repo *MongoCoverageRepo) GetZipInfo(ctx context.Context, zip string) (*models.ZipInfo, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var info models.ZipInfo
	err := repo.zipColl.FindOne(ctxWithTimeout, bson.M{"zip": zip}).Decode(&info)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("zip %s not found", zip)
		}
		return nil, fmt.Errorf("error fetching zip %s: %w", zip, err)
	}
	return &info, nil
}

// AddWorkerZips registers ZIP codes served by a worker.
func (repo *MongoCoverageRepo) AddWorkerZips(workerID string, zips []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	docs := make([]interface{}, 0, len(zips))
	for _, z := range zips {
		docs = append(docs, models.WorkerZip{WorkerID: workerID, Zip: z})
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := repo.workerZipColl.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("error adding worker zips for %s: %w", workerID, err)
	}
	return nil
}

// RemoveWorkerZips drops a worker's entire coverage.
func (repo *MongoCoverageRepo) RemoveWorkerZips(workerID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.workerZipColl.DeleteMany(ctx, bson.M{"worker_id": workerID})
	if err != nil {
		return fmt.Errorf("error removing worker zips for %s: %w", workerID, err)
	}
	return nil
}

// Ping verifies the coverage store is reachable.
func (repo *MongoCoverageRepo) Ping(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return database.MongoClient.Ping(ctxWithTimeout, nil)
}
