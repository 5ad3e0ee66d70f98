package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/repository"
	"github.com/vaishnava-tech/sadhana-dashboard/pkg/logger"
)

// UserService handles registration and login. It produces the opaque
// role + profile the rest of the dashboard consumes.
type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// RegisterUser creates a devotee account with a hashed password.
func (s *UserService) RegisterUser(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if user.Email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	if existing, err := s.repo.GetUserByEmail(ctx, user.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("email already registered")
	} else if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to check existing user: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}
	user.HashedPassword = string(hashed)
	if user.Role == "" {
		user.Role = models.RoleDevotee
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to register user")
		return nil, err
	}

	logger.Log.WithField("user_id", created.ID.Hex()).Info("User registered")
	return created, nil
}

// AuthenticateUser checks credentials and returns the account on success.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logger.Log.WithField("email", email).Warn("Failed login attempt")
		return nil, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// UpdateLastActive is called from middleware on every authenticated request.
func (s *UserService) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.UpdateLastActive(ctx, id)
}
