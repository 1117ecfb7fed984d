package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"poshak-storefront/internal/catalog"
)

type ProductRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return ProductRepository{coll: db.Collection(productsCollection), now: time.Now}
}

// List returns the whole catalog in insertion order.
func (r ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	const op = "ProductRepository.List"

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products := make([]catalog.Product, len(docs))
	for i, d := range docs {
		products[i] = d.toDomain()
	}
	return products, nil
}

func (r ProductRepository) Get(ctx context.Context, id string) (catalog.Product, error) {
	const op = "ProductRepository.Get"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var d productDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return catalog.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return catalog.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return d.toDomain(), nil
}

func (r ProductRepository) Create(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	const op = "ProductRepository.Create"

	d := toProductDocument(p)
	d.ID = primitive.NewObjectID()
	d.CreatedAt = r.now().UTC()
	d.UpdatedAt = d.CreatedAt

	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return catalog.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return d.toDomain(), nil
}

// Update overwrites the stored product fields and returns the new state.
func (r ProductRepository) Update(ctx context.Context, id string, p catalog.Product) (catalog.Product, error) {
	const op = "ProductRepository.Update"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	d := toProductDocument(p)
	update := bson.M{"$set": bson.M{
		"name":        d.Name,
		"description": d.Description,
		"category":    d.Category,
		"sizes":       d.Sizes,
		"images":      d.Images,
		"featured":    d.Featured,
		"updatedAt":   r.now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated productDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return catalog.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return catalog.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated.toDomain(), nil
}

func (r ProductRepository) Delete(ctx context.Context, id string) error {
	const op = "ProductRepository.Delete"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
