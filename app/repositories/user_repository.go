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

// UserRepository is the MongoDB-backed credential store.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// col resolves the collection lazily so repositories can be constructed
// before the connection is established (e.g. for route listing).
func (r *UserRepository) col() *mongo.Collection {
	return database.Collection(database.UserCollection)
}

// FindByEmail looks up an account by exact email match.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	defer metrics.ObserveStoreOp("find", time.Now())

	var user models.User
	err := r.col().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("users: find by email: %w", err)
	}
	return user, nil
}

// Create inserts a new account. A duplicate-key error from the unique email
// index is surfaced as ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	defer metrics.ObserveStoreOp("insert", time.Now())

	res, err := r.col().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, ErrDuplicateEmail
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("users: insert: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	user.ID = id
	return id, nil
}
