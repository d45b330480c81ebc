package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection and index names of the MongoDB store.
const (
	UsersCollection    = "users"
	ServicesCollection = "services"

	UsernameIndex = "username_unique"
	EmailIndex    = "email_unique"
	OwnerIndex    = "service_owner"
)

// ConnectMongo connects to uri, verifies the connection and returns the
// client together with the named database.
func ConnectMongo(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetConnectTimeout(10 * time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, client.Database(dbName), nil
}

// EnsureMongoIndexes creates the unique user indexes and the owner index on
// services. Username and email uniqueness are enforced here, not by callers.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName(UsernameIndex).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(EmailIndex).SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = db.Collection(ServicesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "service_owner", Value: 1}},
		Options: options.Index().SetName(OwnerIndex),
	})
	if err != nil {
		return fmt.Errorf("failed to create service index: %w", err)
	}
	return nil
}
