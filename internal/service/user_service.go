package service

import (
	"context"
	"errors"

	"github.com/crist-12/malla-curricular/internal/model"
	"github.com/crist-12/malla-curricular/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// User errors.
var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrUnknownCountry = errors.New("unknown country code")
	ErrUserNotFound   = errors.New("user not found")
)

// UserService handles account creation and lookup.
type UserService struct {
	userRepo *repository.UserRepository
	auth     *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// Register creates a new account with a hashed password.
func (s *UserService) Register(ctx context.Context, req *model.SignUpRequest) (*model.User, error) {
	if !model.IsValidCountry(req.Country) {
		return nil, ErrUnknownCountry
	}

	taken, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		Country:      req.Country,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies email + password and returns the user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.auth.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID retrieves a user profile.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
