package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

const (
	productsCollection = "products"
	adminsCollection   = "admins"
)

// Connect opens a client, verifies the deployment answers and returns the
// named database.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*mongo.Database, error) {
	const op = "storage.Connect"

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}

	zap.L().Info("mongodb is available", zap.String("database", database))
	return client.Database(database), nil
}

func Disconnect(ctx context.Context, db *mongo.Database) {
	if err := db.Client().Disconnect(ctx); err != nil {
		zap.L().Error("failed to disconnect mongodb", zap.Error(err))
		return
	}
	zap.L().Info("mongodb connection is closed")
}
