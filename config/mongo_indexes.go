package config

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func resumeIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		// owner listing, newest first
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("by_owner_updated"),
		},
		// admin search
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetName("by_title"),
		},
		{
			Keys:    bson.D{{Key: "personal_details.full_name", Value: 1}},
			Options: options.Index().SetName("by_full_name"),
		},
	}
}

func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection("resumes").Indexes().CreateMany(ctx, resumeIndexes())
	return err
}
