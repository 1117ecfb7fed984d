package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) AdminRepository {
	return AdminRepository{coll: db.Collection(adminsCollection)}
}

// EnsureIndexes makes usernames unique.
func (r AdminRepository) EnsureIndexes(ctx context.Context) error {
	const op = "AdminRepository.EnsureIndexes"

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r AdminRepository) FindByUsername(ctx context.Context, username string) (Admin, error) {
	const op = "AdminRepository.FindByUsername"

	var a Admin
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Admin{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return Admin{}, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// Create stores a new admin. passwordHash must already be hashed.
func (r AdminRepository) Create(ctx context.Context, username, passwordHash string) (Admin, error) {
	const op = "AdminRepository.Create"

	a := Admin{ID: primitive.NewObjectID(), Username: username, Password: passwordHash}
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Admin{}, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return Admin{}, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}
