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
	"github.com/arifhossen/shopd/pkg/auth"
)

// fakeUserStore is an in-memory UserStore with the same uniqueness behavior
// as the real collection: Create enforces the unique email index.
// hidePrecheck simulates the signup race, where a concurrent registration
// is not yet visible to the existence pre-check but trips the index.
type fakeUserStore struct {
	mu           sync.Mutex
	users        map[string]models.User
	hidePrecheck bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.hidePrecheck {
		return models.User{}, repositories.ErrNotFound
	}
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return models.User{}, repositories.ErrNotFound
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.Email]; ok {
		return primitive.NilObjectID, repositories.ErrDuplicateEmail
	}

	user.ID = primitive.NewObjectID()
	f.users[user.Email] = *user
	return user.ID, nil
}

func TestSignUpStoresHashNeverPlaintext(t *testing.T) {
	store := newFakeUserStore()
	svc := services.NewAuthService(store)

	result, err := svc.SignUp(context.Background(), "Mina", "mina@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, services.SignupCreated, result.Outcome)
	assert.False(t, result.InsertedID.IsZero())

	stored := store.users["mina@example.com"]
	assert.Equal(t, "Mina", stored.Name)
	assert.NotEqual(t, "s3cret", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "s3cret"))
}

func TestSignUpWithoutPasswordLeavesHashUnset(t *testing.T) {
	store := newFakeUserStore()
	svc := services.NewAuthService(store)

	_, err := svc.SignUp(context.Background(), "NoPass", "nopass@example.com", "")
	require.NoError(t, err)

	assert.Empty(t, store.users["nopass@example.com"].Password)
}

func TestSignUpSequentialDuplicate(t *testing.T) {
	store := newFakeUserStore()
	svc := services.NewAuthService(store)

	first, err := svc.SignUp(context.Background(), "Mina", "mina@example.com", "one")
	require.NoError(t, err)
	require.Equal(t, services.SignupCreated, first.Outcome)

	second, err := svc.SignUp(context.Background(), "Imposter", "mina@example.com", "two")
	require.NoError(t, err)
	assert.Equal(t, services.SignupDuplicate, second.Outcome)

	// Exactly one stored account, the original.
	require.Len(t, store.users, 1)
	assert.Equal(t, "Mina", store.users["mina@example.com"].Name)
}

func TestSignUpRaceCaughtByUniqueIndex(t *testing.T) {
	// Both racers pass the existence pre-check before either insert lands.
	// The unique index, not the pre-check, must hold the invariant: the
	// second insert reports a duplicate instead of creating a second
	// account.
	store := newFakeUserStore()
	store.hidePrecheck = true
	svc := services.NewAuthService(store)

	first, err := svc.SignUp(context.Background(), "A", "raced@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, services.SignupCreated, first.Outcome)

	second, err := svc.SignUp(context.Background(), "B", "raced@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, services.SignupDuplicate, second.Outcome)
	assert.Len(t, store.users, 1)
}

func TestLogInSuccess(t *testing.T) {
	store := newFakeUserStore()
	svc := services.NewAuthService(store)

	_, err := svc.SignUp(context.Background(), "Mina", "mina@example.com", "s3cret")
	require.NoError(t, err)

	result, err := svc.LogIn(context.Background(), "mina@example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, services.LoginSuccess, result.Outcome)
	require.NotEmpty(t, result.AccessToken)

	// The minted token passes the verification gate's validator and its
	// payload carries the account's email.
	claims, err := auth.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "mina@example.com", claims.Email)
	assert.Equal(t, "Mina", claims.Name)

	// Reduced account view only: id, email, name.
	assert.Equal(t, "mina@example.com", result.User.Email)
	assert.Equal(t, "Mina", result.User.Name)
	assert.False(t, result.User.ID.IsZero())
}

func TestLogInUnknownEmail(t *testing.T) {
	svc := services.NewAuthService(newFakeUserStore())

	result, err := svc.LogIn(context.Background(), "ghost@example.com", "whatever")
	require.NoError(t, err)
	assert.Equal(t, services.LoginInvalidEmail, result.Outcome)
	assert.Empty(t, result.AccessToken)
}

func TestLogInWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := services.NewAuthService(store)

	_, err := svc.SignUp(context.Background(), "Mina", "mina@example.com", "right")
	require.NoError(t, err)

	result, err := svc.LogIn(context.Background(), "mina@example.com", "wrong")
	require.NoError(t, err)
	assert.Equal(t, services.LoginInvalidPassword, result.Outcome)
	assert.Empty(t, result.AccessToken)
}

func TestLogInPasswordlessAccountDisabled(t *testing.T) {
	store := newFakeUserStore()
	svc := services.NewAuthService(store)

	_, err := svc.SignUp(context.Background(), "NoPass", "nopass@example.com", "")
	require.NoError(t, err)

	// Even an empty candidate password never matches an unset hash.
	result, err := svc.LogIn(context.Background(), "nopass@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, services.LoginInvalidPassword, result.Outcome)
}

func TestIssueTokenTrustsPayload(t *testing.T) {
	svc := services.NewAuthService(newFakeUserStore())

	token, err := svc.IssueToken(map[string]interface{}{"email": "any@thing.at.all"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
