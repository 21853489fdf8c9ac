package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arifhossen/shopd/app/models"
	"github.com/arifhossen/shopd/pkg/database"
	"github.com/arifhossen/shopd/pkg/metrics"
)

// ProductRepository is the MongoDB-backed catalog store.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// col resolves the collection lazily so repositories can be constructed
// before the connection is established (e.g. for route listing).
func (r *ProductRepository) col() *mongo.Collection {
	return database.Collection(database.ProductCollection)
}

// FindByOwner returns every product whose owner email matches exactly.
// Result size is unbounded; the catalog has no pagination.
func (r *ProductRepository) FindByOwner(ctx context.Context, email string) ([]models.Product, error) {
	defer metrics.ObserveStoreOp("find", time.Now())

	cur, err := r.col().Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("products: find by owner: %w", err)
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return products, nil
}

// FindOne looks up a product matching both identifier and owner email.
func (r *ProductRepository) FindOne(ctx context.Context, id primitive.ObjectID, email string) (models.Product, error) {
	defer metrics.ObserveStoreOp("find", time.Now())

	var product models.Product
	err := r.col().FindOne(ctx, bson.M{"_id": id, "email": email}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("products: find one: %w", err)
	}
	return product, nil
}

// Insert stores the record verbatim and returns the store-assigned id.
func (r *ProductRepository) Insert(ctx context.Context, product models.Product) (primitive.ObjectID, error) {
	defer metrics.ObserveStoreOp("insert", time.Now())

	res, err := r.col().InsertOne(ctx, product)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("products: insert: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// UpdateFields overwrites the fixed field set on every record matching id.
// The identifier matches at most one record, but the multi-document update
// is part of the observed contract, so it stays.
func (r *ProductRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields models.ProductFields) (matched, modified int64, err error) {
	defer metrics.ObserveStoreOp("update", time.Now())

	res, err := r.col().UpdateMany(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return 0, 0, fmt.Errorf("products: update: %w", err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// DeleteOne removes the record with the given identifier, if any.
func (r *ProductRepository) DeleteOne(ctx context.Context, id primitive.ObjectID) (int64, error) {
	defer metrics.ObserveStoreOp("delete", time.Now())

	res, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("products: delete one: %w", err)
	}
	return res.DeletedCount, nil
}

// DeleteAll removes every product record unconditionally.
func (r *ProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	defer metrics.ObserveStoreOp("delete", time.Now())

	res, err := r.col().DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("products: delete all: %w", err)
	}
	return res.DeletedCount, nil
}
