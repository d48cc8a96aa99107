package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/offerhub/user-service/internal/logger"
	"github.com/offerhub/user-service/internal/model"
)

// User provides the user management operations behind the REST surface.
type User struct {
	store        model.UserStore
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	logger       *logger.Logger
}

// CreateParams carries the fields accepted on user creation.
type CreateParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func NewUser(
	store model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *User {
	return &User{
		store:        store,
		hasher:       hasher,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// List returns all users in insertion order.
func (s *User) List(ctx context.Context) ([]model.User, error) {
	users, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Get returns a single user by ID.
func (s *User) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

// Create hashes the password when one was submitted and persists a new user.
// An absent password leaves the hash unset; such an account cannot log in.
func (s *User) Create(ctx context.Context, params CreateParams) (model.User, error) {
	s.logger.Debug("User service: creating user", "email", params.Email)

	now := time.Now()
	user := model.User{
		ID:        uuid.New(),
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if params.Password != "" {
		hash, err := s.hasher.Hash(params.Password)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = &hash
	}

	savedUser, err := s.store.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			s.logger.Info("User service: email already taken", "email", params.Email)
			return model.User{}, err
		}
		s.logger.Error("User service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, err
	}

	s.logger.Info("User service: user created", "user_id", savedUser.ID)

	return savedUser, nil
}

// Update overlays present patch fields onto the stored user and saves it.
// Absent fields are preserved; id and createdAt are never patchable.
func (s *User) Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) (model.User, error) {
	s.logger.Debug("User service: updating user", "user_id", id)

	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	user.Merge(patch)

	if patch.Password != nil && *patch.Password != "" {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = &hash
	}

	user.UpdatedAt = time.Now()

	savedUser, err := s.store.Update(ctx, user)
	if err != nil {
		s.logger.Error("User service: failed to update user",
			"user_id", id,
			"error", err.Error())
		return model.User{}, err
	}

	s.logger.Info("User service: user updated", "user_id", savedUser.ID)

	return savedUser, nil
}

// Delete permanently removes a user.
func (s *User) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Error("User service: failed to delete user",
				"user_id", id,
				"error", err.Error())
		}
		return err
	}

	s.logger.Info("User service: user deleted", "user_id", id)

	return nil
}

// Login verifies credentials and issues a bearer token. An unknown email and
// a wrong password are indistinguishable to the caller.
func (s *User) Login(ctx context.Context, email, password string) (string, error) {
	s.logger.Debug("User service: login attempt", "email", email)

	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.PasswordHash == nil || !s.hasher.Check(password, *user.PasswordHash) {
		s.logger.Info("User service: credential mismatch", "user_id", user.ID)
		return "", model.ErrInvalidCredentials
	}

	accessToken, err := s.tokenManager.GenerateAccessToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User service: user logged in", "user_id", user.ID)

	return accessToken, nil
}

// Validate parses a bearer token and confirms the bound user still exists.
func (s *User) Validate(ctx context.Context, accessToken string) (uuid.UUID, error) {
	userID, err := s.tokenManager.ParseAccessToken(accessToken)
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := s.store.GetByID(ctx, userID); err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}
