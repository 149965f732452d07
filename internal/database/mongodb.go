package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongoDB connects and pings the deployment.
func ConnectMongoDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the indexes the services rely on. The partial unique
// index on (course, module_number) is what turns the module-number uniqueness
// check into a write-time guarantee instead of a check-then-insert race.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("modules").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "course", Value: 1}, {Key: "module_number", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"is_deleted": false}),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("enrollments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "course_id", Value: 1}, {Key: "student_id", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
