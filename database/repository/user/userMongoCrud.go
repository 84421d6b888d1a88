package userRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mountify/models"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(user *models.User) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user with email %s already exists", user.Email)
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *MongoUserRepo) GetByID(userID string) (*models.User, error) {
	return r.findOne(bson.M{"id": userID})
}

// GetByEmail retrieves a user by email.
func (r *MongoUserRepo) GetByEmail(email string) (*models.User, error) {
	return r.findOne(bson.M{"email": email})
}

// GetByTokenHash retrieves a user by the hash of their current auth token.
func (r *MongoUserRepo) GetByTokenHash(tokenHash string) (*models.User, error) {
	return r.findOne(bson.M{"token_hash": tokenHash})
}

func (r *MongoUserRepo) findOne(filter bson.M) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return &user, nil
}

// Update replaces a user document.
func (r *MongoUserRepo) Update(user *models.User) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	user.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": user.ID}, bson.M{"$set": user})
	if err != nil {
		return fmt.Errorf("error updating user %s: %w", user.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", user.ID)
	}
	return nil
}

// Delete removes a user document.
func (r *MongoUserRepo) Delete(userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.DeleteOne(ctx, bson.M{"id": userID})
	if err != nil {
		return fmt.Errorf("error deleting user %s: %w", userID, err)
	}
	return nil
}

// DeleteTestUserByEmail removes a user only if it is flagged as a test
// account; real accounts are never deleted through this path.
func (r *MongoUserRepo) DeleteTestUserByEmail(email string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"email": email, "test_account": true})
	if err != nil {
		return fmt.Errorf("error deleting test user %s: %w", email, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("no test account found for %s", email)
	}
	return nil
}

// CreateApplication inserts a worker application.
func (r *MongoUserRepo) CreateApplication(app *models.WorkerApplication) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.appColl.InsertOne(ctx, app)
	if err != nil {
		return fmt.Errorf("error creating worker application: %w", err)
	}
	return nil
}

// GetApplication retrieves a worker application by ID.
func (r *MongoUserRepo) GetApplication(appID string) (*models.WorkerApplication, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var app models.WorkerApplication
	err := r.appColl.FindOne(ctx, bson.M{"id": appID}).Decode(&app)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("worker application %s not found", appID)
		}
		return nil, fmt.Errorf("error fetching worker application %s: %w", appID, err)
	}
	return &app, nil
}

// UpdateApplication replaces a worker application document.
func (r *MongoUserRepo) UpdateApplication(app *models.WorkerApplication) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.appColl.UpdateOne(ctx, bson.M{"id": app.ID}, bson.M{"$set": app})
	if err != nil {
		return fmt.Errorf("error updating worker application %s: %w", app.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("worker application %s not found", app.ID)
	}
	return nil
}
