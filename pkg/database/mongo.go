// Package database owns the MongoDB connection lifecycle.
//
// The client is established once at startup and reused across all requests;
// a failed initial connection aborts the process (fail fast on startup,
// never on a per-request basis).
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arifhossen/shopd/config"
)

// Collection names in the shop database.
const (
	UserCollection    = "user"
	ProductCollection = "products"
	LogCollection     = "logs"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

// Connect opens the MongoDB connection, verifies it with a ping, and keeps
// the handles in package globals for the repositories.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	Client = client
	DB = client.Database(config.MongoDatabase())
	return nil
}

// Collection returns a handle in the shop database.
func Collection(name string) *mongo.Collection {
	return DB.Collection(name)
}

// EnsureIndexes creates the indexes the service relies on. The unique index
// on user email is what actually holds the uniqueness invariant: two
// concurrent signups can both pass the existence pre-check, and the second
// insert then fails with a duplicate-key error instead of creating a
// duplicate account.
func EnsureIndexes(ctx context.Context) error {
	_, err := Collection(UserCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("database: user email index: %w", err)
	}

	_, err = Collection(ProductCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("database: product owner index: %w", err)
	}

	return nil
}

// Disconnect closes the client. Used during graceful shutdown.
func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
