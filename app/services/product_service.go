package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arifhossen/shopd/app/models"
	"github.com/arifhossen/shopd/pkg/cache"
	"github.com/arifhossen/shopd/pkg/metrics"
)

// ErrInvalidID is returned when a path identifier is not a well-formed
// ObjectID hex string. Controllers map it to a 400.
var ErrInvalidID = errors.New("invalid ID format")

// ProductStore is the catalog-store collaborator. Implemented by
// repositories.ProductRepository.
type ProductStore interface {
	FindByOwner(ctx context.Context, email string) ([]models.Product, error)
	FindOne(ctx context.Context, id primitive.ObjectID, email string) (models.Product, error)
	Insert(ctx context.Context, product models.Product) (primitive.ObjectID, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields models.ProductFields) (matched, modified int64, err error)
	DeleteOne(ctx context.Context, id primitive.ObjectID) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

const (
	ownerCachePrefix = "products:owner:"
	ownerCacheTTL    = 30 * time.Second
)

// ProductService implements the catalog operations.
type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// ListByOwner returns all products whose owner email matches exactly.
// Lists are served from the Redis cache when fresh; the cache degrades to a
// no-op when Redis is unavailable.
func (s *ProductService) ListByOwner(ctx context.Context, email string) ([]models.Product, error) {
	key := ownerCachePrefix + email

	var cached []models.Product
	if cache.Get(key, &cached) {
		return cached, nil
	}

	products, err := s.products.FindByOwner(ctx, email)
	if err != nil {
		return nil, err
	}

	_ = cache.Set(key, products, ownerCacheTTL)
	return products, nil
}

// GetOne returns the product matching both identifier and owner email.
// Malformed identifiers fail with ErrInvalidID; a miss surfaces the store's
// not-found error.
func (s *ProductService) GetOne(ctx context.Context, idHex, email string) (models.Product, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return models.Product{}, ErrInvalidID
	}
	return s.products.FindOne(ctx, id, email)
}

// Add inserts the record verbatim, owner email included, and returns the
// store-assigned identifier.
func (s *ProductService) Add(ctx context.Context, product models.Product) (primitive.ObjectID, error) {
	id, err := s.products.Insert(ctx, product)
	if err != nil {
		return primitive.NilObjectID, err
	}

	metrics.ProductsMutated.WithLabelValues("add").Inc()
	_ = cache.Del(ownerCachePrefix + product.Email)
	return id, nil
}

// UpdateResult mirrors the raw storage update counts the endpoint returns.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// Update overwrites the fixed field set on the matching record. Fields the
// request omitted arrive as zero values and are written out as such: a
// partial payload clears what it does not name.
func (s *ProductService) Update(ctx context.Context, idHex string, fields models.ProductFields) (UpdateResult, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return UpdateResult{}, ErrInvalidID
	}

	matched, modified, err := s.products.UpdateFields(ctx, id, fields)
	if err != nil {
		return UpdateResult{}, err
	}

	metrics.ProductsMutated.WithLabelValues("update").Inc()
	// The update body carries no owner email, so every cached owner list
	// is potentially stale.
	_ = cache.ForgetPrefix(ownerCachePrefix)

	return UpdateResult{MatchedCount: matched, ModifiedCount: modified}, nil
}

// DeleteMany removes each identified record sequentially. Identifiers with
// no match, and malformed identifiers, are skipped silently; the sweep
// always completes.
func (s *ProductService) DeleteMany(ctx context.Context, ids []string) (deleted int64, err error) {
	for _, idHex := range ids {
		id, err := primitive.ObjectIDFromHex(idHex)
		if err != nil {
			continue
		}

		n, err := s.products.DeleteOne(ctx, id)
		if err != nil {
			return deleted, fmt.Errorf("delete %s: %w", idHex, err)
		}
		deleted += n
	}

	metrics.ProductsMutated.WithLabelValues("delete").Inc()
	_ = cache.ForgetPrefix(ownerCachePrefix)
	return deleted, nil
}

// DeleteAll removes every product record regardless of owner.
func (s *ProductService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.products.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	metrics.ProductsMutated.WithLabelValues("delete_all").Inc()
	_ = cache.ForgetPrefix(ownerCachePrefix)
	return n, nil
}
