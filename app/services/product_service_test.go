package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arifhossen/shopd/app/models"
	"github.com/arifhossen/shopd/app/repositories"
	"github.com/arifhossen/shopd/app/services"
)

// fakeProductStore is an in-memory ProductStore. UpdateFields applies the
// same full-replace semantic as the real $set of the fixed field set.
type fakeProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[primitive.ObjectID]models.Product{}}
}

func (f *fakeProductStore) FindByOwner(_ context.Context, email string) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []models.Product{}
	for _, p := range f.products {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) FindOne(_ context.Context, id primitive.ObjectID, email string) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[id]
	if !ok || p.Email != email {
		return models.Product{}, repositories.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductStore) Insert(_ context.Context, product models.Product) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	product.ID = primitive.NewObjectID()
	f.products[product.ID] = product
	return product.ID, nil
}

func (f *fakeProductStore) UpdateFields(_ context.Context, id primitive.ObjectID, fields models.ProductFields) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[id]
	if !ok {
		return 0, 0, nil
	}

	p.ProductName = fields.ProductName
	p.Price = fields.Price
	p.Quantity = fields.Quantity
	p.ReleaseDate = fields.ReleaseDate
	p.Brand = fields.Brand
	p.Model = fields.Model
	p.Style = fields.Style
	p.Size = fields.Size
	p.Color = fields.Color
	p.Material = fields.Material
	f.products[id] = p
	return 1, 1, nil
}

func (f *fakeProductStore) DeleteOne(_ context.Context, id primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.products[id]; !ok {
		return 0, nil
	}
	delete(f.products, id)
	return 1, nil
}

func (f *fakeProductStore) DeleteAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := int64(len(f.products))
	f.products = map[primitive.ObjectID]models.Product{}
	return n, nil
}

func seedProduct(t *testing.T, svc *services.ProductService, p models.Product) primitive.ObjectID {
	t.Helper()
	id, err := svc.Add(context.Background(), p)
	require.NoError(t, err)
	return id
}

func fullProduct(owner string) models.Product {
	return models.Product{
		Email:       owner,
		ProductName: "Air Runner 2",
		Price:       129.99,
		Quantity:    40,
		ReleaseDate: "2025-03-14",
		Brand:       "Nike",
		Model:       "AR-2",
		Style:       "Running",
		Size:        "42",
		Color:       "White",
		Material:    "Mesh",
	}
}

func TestListByOwnerScoping(t *testing.T) {
	store := newFakeProductStore()
	svc := services.NewProductService(store)

	seedProduct(t, svc, fullProduct("a@shop.io"))
	seedProduct(t, svc, fullProduct("a@shop.io"))
	seedProduct(t, svc, fullProduct("b@shop.io"))

	mine, err := svc.ListByOwner(context.Background(), "a@shop.io")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := svc.ListByOwner(context.Background(), "nobody@shop.io")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetOne(t *testing.T) {
	store := newFakeProductStore()
	svc := services.NewProductService(store)

	id := seedProduct(t, svc, fullProduct("a@shop.io"))

	got, err := svc.GetOne(context.Background(), id.Hex(), "a@shop.io")
	require.NoError(t, err)
	assert.Equal(t, "Air Runner 2", got.ProductName)

	// Wrong owner is a miss, not a leak.
	_, err = svc.GetOne(context.Background(), id.Hex(), "b@shop.io")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = svc.GetOne(context.Background(), primitive.NewObjectID().Hex(), "a@shop.io")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = svc.GetOne(context.Background(), "not-a-hex-id", "a@shop.io")
	assert.ErrorIs(t, err, services.ErrInvalidID)
}

func TestUpdateFullReplaceOfFixedFields(t *testing.T) {
	store := newFakeProductStore()
	svc := services.NewProductService(store)

	id := seedProduct(t, svc, fullProduct("a@shop.io"))

	// Partial payload: only the name. Every other tracked field must be
	// cleared, not merged.
	result, err := svc.Update(context.Background(), id.Hex(), models.ProductFields{ProductName: "X"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.MatchedCount)
	assert.Equal(t, int64(1), result.ModifiedCount)

	got, err := svc.GetOne(context.Background(), id.Hex(), "a@shop.io")
	require.NoError(t, err)
	assert.Equal(t, "X", got.ProductName)
	assert.Zero(t, got.Price)
	assert.Zero(t, got.Quantity)
	assert.Empty(t, got.Brand)
	assert.Empty(t, got.Model)
	assert.Empty(t, got.Style)
	assert.Empty(t, got.Size)
	assert.Empty(t, got.Color)
	assert.Empty(t, got.Material)
	assert.Empty(t, got.ReleaseDate)

	// The owner email is not part of the replaced field set.
	assert.Equal(t, "a@shop.io", got.Email)
}

func TestUpdateInvalidID(t *testing.T) {
	svc := services.NewProductService(newFakeProductStore())

	_, err := svc.Update(context.Background(), "zzz", models.ProductFields{})
	assert.ErrorIs(t, err, services.ErrInvalidID)
}

func TestUpdateNoMatchReportsZeroCounts(t *testing.T) {
	svc := services.NewProductService(newFakeProductStore())

	result, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), models.ProductFields{ProductName: "X"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.MatchedCount)
	assert.Equal(t, int64(0), result.ModifiedCount)
}

func TestDeleteManySkipsSilently(t *testing.T) {
	store := newFakeProductStore()
	svc := services.NewProductService(store)

	id1 := seedProduct(t, svc, fullProduct("a@shop.io"))
	id2 := seedProduct(t, svc, fullProduct("a@shop.io"))
	keep := seedProduct(t, svc, fullProduct("a@shop.io"))

	// Mix of real ids, a missing id, and a malformed one: the sweep
	// deletes what matches and silently no-ops on the rest.
	deleted, err := svc.DeleteMany(context.Background(), []string{
		id1.Hex(),
		primitive.NewObjectID().Hex(),
		"garbage",
		id2.Hex(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = svc.GetOne(context.Background(), keep.Hex(), "a@shop.io")
	assert.NoError(t, err, "unlisted record must survive")
}

func TestDeleteAllIgnoresOwner(t *testing.T) {
	store := newFakeProductStore()
	svc := services.NewProductService(store)

	seedProduct(t, svc, fullProduct("a@shop.io"))
	seedProduct(t, svc, fullProduct("b@shop.io"))

	n, err := svc.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	remaining, err := svc.ListByOwner(context.Background(), "a@shop.io")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
