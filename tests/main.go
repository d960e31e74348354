package main

import (
	"context"
	"log"
	"time"

	"tablemate/config"
	"tablemate/database"
	"tablemate/services/catalog"

	"go.mongodb.org/mongo-driver/bson"
)

// Reseeds the restaurant catalog from scratch. Run it when the seed
// data changes; the server's own EnsureSeeded only fills an empty
// collection.
func main() {
	config.LoadConfig()
	database.InitDB()
	client := database.MongoClient
	db := client.Database("tablemate")
	coll := db.Collection("restaurants")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear restaurants collection: %v", err)
	}

	seed := catalog.Seed()
	docs := make([]interface{}, 0, len(seed))
	for _, r := range seed {
		docs = append(docs, r)
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		log.Fatalf("Failed to insert restaurant seed: %v", err)
	}

	log.Printf("Reseeded %d restaurants", len(seed))
}
