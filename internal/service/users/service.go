// Package users manages back-office accounts and their credentials.
package users

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gaysay/backoffice/internal/apperrors"
	"github.com/gaysay/backoffice/internal/domain/models"
)

const minPasswordLength = 8

// Repository is the subset of the store the users service needs.
type Repository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	InsertUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id primitive.ObjectID, update models.UserUpdate) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

// CreateUserInput carries the fields of a new account.
type CreateUserInput struct {
	Name      string `json:"name"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl"`
}

// Service exposes account management operations.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new users service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// List returns every account. Password hashes never serialize, so the
// records are safe to hand straight to the HTTP layer.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

// Get returns one account.
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindUserByID(ctx, oid)
}

// Create validates a new account, hashes its password and stores it.
// Usernames are normalized to lowercase; duplicates are a conflict.
func (s *Service) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Username = normalizeUsername(input.Username)
	if input.Name == "" || input.Username == "" || input.Password == "" || input.Role == "" {
		return nil, apperrors.Invalid("name, username, password and role are required")
	}
	if !models.ValidRole(input.Role) {
		return nil, apperrors.Invalid("invalid role")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.Invalid("password must be at least %d characters long", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         input.Name,
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         input.Role,
		AvatarURL:    input.AvatarURL,
	}
	if err := s.repo.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.Hex()),
		zap.String("username", user.Username),
		zap.String("role", user.Role))
	return user, nil
}

// Update validates and applies a partial update. Passwords go through
// ChangePassword only.
func (s *Service) Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if update.Empty() {
		return nil, apperrors.Invalid("no valid fields provided for update")
	}
	if update.Role != nil && !models.ValidRole(*update.Role) {
		return nil, apperrors.Invalid("invalid role")
	}
	if update.Username != nil {
		normalized := normalizeUsername(*update.Username)
		if normalized == "" {
			return nil, apperrors.Invalid("username must not be empty")
		}
		update.Username = &normalized
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, apperrors.Invalid("name must not be empty")
	}

	user, err := s.repo.UpdateUser(ctx, oid, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated", zap.String("user_id", oid.Hex()))
	return user, nil
}

// ChangePassword hashes and stores a new password for the account.
func (s *Service) ChangePassword(ctx context.Context, id, newPassword string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if len(newPassword) < minPasswordLength {
		return apperrors.Invalid("password is required and must be at least %d characters long", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateUserPassword(ctx, oid, string(hash)); err != nil {
		return err
	}

	s.logger.Info("user password changed", zap.String("user_id", oid.Hex()))
	return nil
}

// Delete removes the account.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, oid); err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.String("user_id", oid.Hex()))
	return nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func parseID(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, apperrors.Invalid("id is required")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.Invalid("invalid user ID format")
	}
	return oid, nil
}
