package profileRepo

import (
	"context"
	"fmt"
	"time"

	"tablemate/database"
	"tablemate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileRepository persists the long-lived preference profile per account.
type ProfileRepository interface {
	// Get returns the stored profile, or a fresh empty one when the account
	// has no history yet.
	Get(accountID string) (*models.Profile, error)
	Save(profile *models.Profile) error
}

// MongoProfileRepo implements ProfileRepository using MongoDB.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo creates a new ProfileRepository backed by MongoDB.
func NewMongoProfileRepo() ProfileRepository {
	coll := database.MongoClient.Database("tablemate").Collection("profiles")
	repo := &MongoProfileRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "accountId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		fmt.Printf("failed to create profile index: %v\n", err)
	}
	return repo
}

func (r *MongoProfileRepo) Get(accountID string) (*models.Profile, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var prof models.Profile
	err := r.coll.FindOne(ctx, bson.M{"accountId": accountID}).Decode(&prof)
	if err == mongo.ErrNoDocuments {
		return &models.Profile{AccountID: accountID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", accountID, err)
	}
	return &prof, nil
}

func (r *MongoProfileRepo) Save(profile *models.Profile) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	profile.UpdatedAt = time.Now()
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"accountId": profile.AccountID},
		profile,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile for %s: %w", profile.AccountID, err)
	}
	return nil
}
