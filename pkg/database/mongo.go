package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoConnection connects, pings, and ensures the indexes the query
// layer relies on (text search, unique keys, common filters).
func NewMongoConnection(uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(25).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(30 * time.Minute)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	log.Println("Database connection established successfully")
	return db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	users := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "location.city", Value: 1}, {Key: "location.state", Value: 1}}},
		{Keys: bson.D{{Key: "professional_info.industry", Value: 1}}},
	}
	jobs := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}, {Key: "company.name", Value: "text"}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "location.type", Value: 1}, {Key: "location.city", Value: 1}}},
		{Keys: bson.D{{Key: "job_type", Value: 1}}},
		{Keys: bson.D{{Key: "experience.min", Value: 1}, {Key: "experience.max", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	exams := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}, {Key: "provider.name", Value: "text"}}},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "subcategory", Value: 1}}},
		{Keys: bson.D{{Key: "average_rating", Value: -1}, {Key: "popularity", Value: -1}}},
	}
	skills := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "is_public", Value: 1}}},
	}

	for coll, models := range map[string][]mongo.IndexModel{
		"users":  users,
		"jobs":   jobs,
		"exams":  exams,
		"skills": skills,
	} {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
