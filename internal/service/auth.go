package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/opentask-server/internal/logger"
	"github.com/dtroode/opentask-server/internal/model"
	"github.com/dtroode/opentask-server/internal/password"
)

// Auth implements registration, login and token resolution. There is a
// single login flow and a single token shape; the signing secret comes from
// configuration via the token manager.
type Auth struct {
	userStore    model.UserStore
	hasher       *password.Hasher
	tokenManager model.TokenManager
	logger       *logger.Logger
	queryTimeout time.Duration
}

func NewAuth(
	userStore model.UserStore,
	hasher *password.Hasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
	queryTimeout time.Duration,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// storeCtx bounds a single store round trip so a stalled connection cannot
// block the request forever.
func (a *Auth) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.queryTimeout)
}

// Register hashes the password and inserts the user. A duplicate email is
// reported by the store's unique constraint as model.ErrEmailTaken.
func (a *Auth) Register(ctx context.Context, email, name, plainPassword string) error {
	a.logger.Debug("Auth service: registering user", "email", email)

	hash, err := a.hasher.Hash(plainPassword)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	storeCtx, cancel := a.storeCtx(ctx)
	defer cancel()

	if _, err := a.userStore.Create(storeCtx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			a.logger.Info("Auth service: user already exists", "email", email)
			return model.ErrEmailTaken
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered", "email", email)
	return nil
}

// Login verifies the credentials and issues a signed token carrying the
// user ID and email. Unknown email and wrong password are indistinguishable
// to the caller.
func (a *Auth) Login(ctx context.Context, email, plainPassword string) (string, error) {
	a.logger.Debug("Auth service: logging in user", "email", email)

	storeCtx, cancel := a.storeCtx(ctx)
	defer cancel()

	user, err := a.userStore.GetByEmail(storeCtx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrInvalidCredentials
		}
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(plainPassword, user.PasswordHash) {
		return "", model.ErrInvalidCredentials
	}

	token, err := a.tokenManager.Generate(user.ID, user.Email)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in", "email", email)
	return token, nil
}

// GetUserID resolves the user ID carried by a bearer token.
func (a *Auth) GetUserID(_ context.Context, token string) (uuid.UUID, error) {
	userID, err := a.tokenManager.Parse(token)
	if err != nil {
		return uuid.Nil, model.ErrInvalidToken
	}
	return userID, nil
}
