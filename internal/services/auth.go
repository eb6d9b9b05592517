package services

import (
	"errors"
	"fmt"

	"github.com/crotools/cro-admin-backend/internal/models"
	"github.com/crotools/cro-admin-backend/internal/storage"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type AuthService struct {
	store *storage.Storage
}

func NewAuthService(store *storage.Storage) *AuthService {
	return &AuthService{store: store}
}

// Register creates a user with a hashed password. The uniqueness pre-check
// gives a friendly error; the unique index on username is the backstop.
func (s *AuthService) Register(username, password, email, maincro string) (*models.User, error) {
	if _, err := s.store.GetUserByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Password: hash,
		Email:    email,
		Maincro:  maincro,
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !VerifyPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
