package restaurantRepo

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

// MongoRestaurantRepo implements RestaurantRepository using MongoDB.
type MongoRestaurantRepo struct {
	coll *mongo.Collection
}

// NewMongoRestaurantRepo creates a new RestaurantRepository backed by MongoDB.
func NewMongoRestaurantRepo() RestaurantRepository {
	coll := database.MongoClient.Database("tablemate").Collection("restaurants")
	repo := &MongoRestaurantRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoRestaurantRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "area", Value: 1}}},
		{Keys: bson.D{{Key: "cuisines", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetAll retrieves every restaurant in insertion order.
func (r *MongoRestaurantRepo) GetAll() ([]models.Restaurant, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Restaurant
	for cursor.Next(ctx) {
		var rest models.Restaurant
		if err := cursor.Decode(&rest); err != nil {
			return nil, fmt.Errorf("failed to decode restaurant: %w", err)
		}
		out = append(out, rest)
	}
	return out, nil
}

// EnsureSeeded inserts the seed records when the collection is empty, so a
// fresh deployment has a working catalog without a manual import step.
func (r *MongoRestaurantRepo) EnsureSeeded(seed []models.Restaurant) error {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count restaurants: %w", err)
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(seed))
	for _, rest := range seed {
		docs = append(docs, rest)
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed restaurants: %w", err)
	}
	return nil
}
