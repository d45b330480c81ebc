package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/isdelr/linkstart-be/internal/auth"
	"github.com/isdelr/linkstart-be/internal/common"
	"github.com/isdelr/linkstart-be/internal/models"
	"github.com/isdelr/linkstart-be/internal/repository"
	"github.com/isdelr/linkstart-be/internal/validator"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, username, email, password string) (models.TokenPair, error)
	Login(ctx context.Context, username, password string) (models.TokenPair, error)
	Me(ctx context.Context, username string) (models.User, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
}

type registerInput struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,bcryptlen"`
}

// UserService provides registration, login and token refresh.
type UserService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	hasher *auth.PasswordHasher

	// dummyHash is compared against when the username is unknown so that a
	// failed login costs the same whichever check failed.
	dummyHash string
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, tokens *auth.TokenService, hasher *auth.PasswordHasher) (*UserService, error) {
	dummy, err := hasher.Hash("linkstart-dummy-password")
	if err != nil {
		return nil, err
	}
	return &UserService{users: users, tokens: tokens, hasher: hasher, dummyHash: dummy}, nil
}

// Register creates a user and signs tokens for it. The username is checked
// before the email; the store's unique constraints catch concurrent races.
func (s *UserService) Register(ctx context.Context, username, email, password string) (models.TokenPair, error) {
	if err := validator.Struct(registerInput{Username: username, Email: email, Password: password}); err != nil {
		return models.TokenPair{}, err
	}

	if err := s.ensureFree(ctx, s.users.GetByUsername, username, common.ErrDuplicateUsername); err != nil {
		return models.TokenPair{}, err
	}
	if err := s.ensureFree(ctx, s.users.GetByEmail, email, common.ErrDuplicateEmail); err != nil {
		return models.TokenPair{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.TokenPair{}, err
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return models.TokenPair{}, err
	}

	return s.tokens.IssuePair(user.Username)
}

func (s *UserService) ensureFree(ctx context.Context, lookup func(context.Context, string) (*models.User, error), key string, taken error) error {
	_, err := lookup(ctx, key)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, common.ErrUserNotFound):
		return nil
	default:
		return err
	}
}

// Login verifies credentials. An unknown username and a wrong password both
// return common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (models.TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			s.hasher.Verify(s.dummyHash, password)
			return models.TokenPair{}, common.ErrInvalidCredentials
		}
		return models.TokenPair{}, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return models.TokenPair{}, common.ErrInvalidCredentials
	}

	return s.tokens.IssuePair(user.Username)
}

// Me re-reads the user from the store rather than trusting the token.
func (s *UserService) Me(ctx context.Context, username string) (models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = ""
	return *user, nil
}

// Refresh exchanges a valid refresh token for a new access and refresh token.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	username, err := s.tokens.Validate(refreshToken, auth.RefreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		return models.TokenPair{}, err
	}

	pair, err := s.tokens.IssuePair(username)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	return pair, nil
}
