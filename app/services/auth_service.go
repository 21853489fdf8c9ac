// Package services holds the shop's core logic behind its two collaborator
// store interfaces, so the HTTP layer and the MongoDB layer stay replaceable
// independently.
package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arifhossen/shopd/app/models"
	"github.com/arifhossen/shopd/app/repositories"
	"github.com/arifhossen/shopd/pkg/auth"
	"github.com/arifhossen/shopd/pkg/metrics"
)

// UserStore is the credential-store collaborator the auth service consumes.
// Implemented by repositories.UserRepository.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, user *models.User) (primitive.ObjectID, error)
}

// SignupOutcome tags the two non-error signup results.
type SignupOutcome int

const (
	SignupCreated SignupOutcome = iota
	SignupDuplicate
)

// SignupResult carries the outcome and, for SignupCreated, the new id.
type SignupResult struct {
	Outcome    SignupOutcome
	InsertedID primitive.ObjectID
}

// LoginOutcome tags login results. Failures stay distinguishable because the
// wire contract reports "Invalid Email" and "Password Invalid" separately.
type LoginOutcome int

const (
	LoginSuccess LoginOutcome = iota
	LoginInvalidEmail
	LoginInvalidPassword
)

// LoginResult carries the outcome plus, on success, the minted token and the
// password-free account view.
type LoginResult struct {
	Outcome     LoginOutcome
	AccessToken string
	User        models.UserView
}

// AuthService implements signup, login, and standalone token issuance.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// IssueToken signs an arbitrary caller-supplied payload. The endpoint
// trusts its caller entirely; no payload validation happens here.
func (s *AuthService) IssueToken(payload map[string]interface{}) (string, error) {
	return auth.SignPayload(payload)
}

// SignUp registers an account. The existence pre-check keeps the common
// sequential case cheap, but the uniqueness invariant is held by the unique
// email index: a concurrent signup that slips past the pre-check surfaces as
// repositories.ErrDuplicateEmail from the insert and reports SignupDuplicate
// just like a pre-check hit.
//
// An empty password leaves the stored hash unset, which makes the account
// permanently unable to log in via password.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (SignupResult, error) {
	var hash string
	if password != "" {
		h, err := auth.HashPassword(password)
		if err != nil {
			return SignupResult{}, fmt.Errorf("signup: hash password: %w", err)
		}
		hash = h
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		metrics.SignupsTotal.WithLabelValues("duplicate").Inc()
		return SignupResult{Outcome: SignupDuplicate}, nil
	case !errors.Is(err, repositories.ErrNotFound):
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return SignupResult{}, err
	}

	user := models.User{Email: email, Name: name, Password: hash}
	id, err := s.users.Create(ctx, &user)
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		metrics.SignupsTotal.WithLabelValues("duplicate").Inc()
		return SignupResult{Outcome: SignupDuplicate}, nil
	}
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return SignupResult{}, err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	return SignupResult{Outcome: SignupCreated, InsertedID: id}, nil
}

// LogIn authenticates an email/password pair and mints a bearer token
// embedding the account's email and name.
func (s *AuthService) LogIn(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		metrics.LoginsTotal.WithLabelValues("invalid_email").Inc()
		return LoginResult{Outcome: LoginInvalidEmail}, nil
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return LoginResult{}, err
	}

	// A password-less account has an empty stored hash, which never
	// compares equal; such accounts are login-disabled.
	if !auth.CheckPassword(user.Password, password) {
		metrics.LoginsTotal.WithLabelValues("invalid_password").Inc()
		return LoginResult{Outcome: LoginInvalidPassword}, nil
	}

	token, err := auth.GenerateToken(user.Email, user.Name)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return LoginResult{}, fmt.Errorf("login: sign token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return LoginResult{
		Outcome:     LoginSuccess,
		AccessToken: token,
		User:        user.PublicView(),
	}, nil
}
