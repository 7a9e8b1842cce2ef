// Package catalog manages the menu catalog the café sells from.
package catalog

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/gaysay/backoffice/internal/apperrors"
	"github.com/gaysay/backoffice/internal/domain/models"
)

// Repository is the subset of the store the catalog needs.
type Repository interface {
	ListMenu(ctx context.Context) ([]models.MenuItem, error)
	FindMenuItemByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	InsertMenuItem(ctx context.Context, item *models.MenuItem) error
	UpdateMenuItem(ctx context.Context, id primitive.ObjectID, update models.MenuItemUpdate) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id primitive.ObjectID) error
}

// CreateMenuItemInput carries the fields of a new catalog entry.
type CreateMenuItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
}

// Service exposes catalog operations.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new catalog service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// List returns the whole catalog.
func (s *Service) List(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.ListMenu(ctx)
}

// Get returns one catalog entry.
func (s *Service) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	oid, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	return s.repo.FindMenuItemByID(ctx, oid)
}

// Create validates and stores a new catalog entry.
func (s *Service) Create(ctx context.Context, input CreateMenuItemInput) (*models.MenuItem, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, apperrors.Invalid("name is required")
	}
	if !models.ValidCategory(input.Category) {
		return nil, apperrors.Invalid("invalid category")
	}
	if input.Price <= 0 {
		return nil, apperrors.Invalid("price must be greater than zero")
	}

	item := &models.MenuItem{
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
	}
	if err := s.repo.InsertMenuItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("menu item created",
		zap.String("item_id", item.ID.Hex()),
		zap.String("name", item.Name))
	return item, nil
}

// Update validates and applies a partial update.
func (s *Service) Update(ctx context.Context, id string, update models.MenuItemUpdate) (*models.MenuItem, error) {
	oid, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	if update.Empty() {
		return nil, apperrors.Invalid("no valid fields provided for update")
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, apperrors.Invalid("name must not be empty")
	}
	if update.Category != nil && !models.ValidCategory(*update.Category) {
		return nil, apperrors.Invalid("invalid category")
	}
	if update.Price != nil && *update.Price <= 0 {
		return nil, apperrors.Invalid("price must be greater than zero")
	}

	item, err := s.repo.UpdateMenuItem(ctx, oid, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("menu item updated", zap.String("item_id", oid.Hex()))
	return item, nil
}

// Delete removes a catalog entry. Open sells referencing it keep their
// reference; the read-time join simply stops resolving.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id, "id")
	if err != nil {
		return err
	}
	if err := s.repo.DeleteMenuItem(ctx, oid); err != nil {
		return err
	}

	s.logger.Info("menu item deleted", zap.String("item_id", oid.Hex()))
	return nil
}

func parseID(id, field string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, apperrors.Invalid("%s is required", field)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.Invalid("invalid %s format", field)
	}
	return oid, nil
}
