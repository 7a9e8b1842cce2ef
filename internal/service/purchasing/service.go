// Package purchasing manages purchase (expense) records and their
// open/close lifecycle.
package purchasing

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/gaysay/backoffice/internal/apperrors"
	"github.com/gaysay/backoffice/internal/domain/models"
)

// Repository is the subset of the store the purchasing service needs.
type Repository interface {
	ListOpenPurchases(ctx context.Context) ([]models.Purchase, error)
	FindPurchaseByID(ctx context.Context, id primitive.ObjectID) (*models.Purchase, error)
	InsertPurchase(ctx context.Context, purchase *models.Purchase) error
	UpdatePurchase(ctx context.Context, id primitive.ObjectID, update models.PurchaseUpdate) (*models.Purchase, error)
	ClosePurchase(ctx context.Context, id primitive.ObjectID) (*models.Purchase, error)
	DeletePurchase(ctx context.Context, id primitive.ObjectID) error
}

// CreatePurchaseInput carries the fields of a new expense record.
type CreatePurchaseInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
}

// Service exposes purchasing operations.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new purchasing service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// ListOpen returns purchases still being edited.
func (s *Service) ListOpen(ctx context.Context) ([]models.Purchase, error) {
	return s.repo.ListOpenPurchases(ctx)
}

// Get returns one purchase in either state.
func (s *Service) Get(ctx context.Context, id string) (*models.Purchase, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindPurchaseByID(ctx, oid)
}

// Create validates and stores a new expense record, open by default.
func (s *Service) Create(ctx context.Context, input CreatePurchaseInput) (*models.Purchase, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, apperrors.Invalid("name, unitPrice and quantity are required")
	}
	if input.UnitPrice <= 0 {
		return nil, apperrors.Invalid("unitPrice must be greater than zero")
	}
	if input.Quantity < 1 {
		return nil, apperrors.Invalid("quantity must be at least 1")
	}

	purchase := &models.Purchase{
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		UnitPrice:   input.UnitPrice,
		Quantity:    input.Quantity,
		IsClosed:    false,
	}
	if err := s.repo.InsertPurchase(ctx, purchase); err != nil {
		return nil, err
	}

	s.logger.Info("purchase created",
		zap.String("purchase_id", purchase.ID.Hex()),
		zap.Float64("amount", purchase.Amount()))
	return purchase, nil
}

// Update validates and applies a partial update.
func (s *Service) Update(ctx context.Context, id string, update models.PurchaseUpdate) (*models.Purchase, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if update.Empty() {
		return nil, apperrors.Invalid("no valid fields provided for update")
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, apperrors.Invalid("name must not be empty")
	}
	if update.UnitPrice != nil && *update.UnitPrice <= 0 {
		return nil, apperrors.Invalid("unitPrice must be greater than zero")
	}
	if update.Quantity != nil && *update.Quantity < 1 {
		return nil, apperrors.Invalid("quantity must be at least 1")
	}

	purchase, err := s.repo.UpdatePurchase(ctx, oid, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase updated", zap.String("purchase_id", oid.Hex()))
	return purchase, nil
}

// Close finalizes a purchase so it starts counting toward expense reports.
func (s *Service) Close(ctx context.Context, id string) (*models.Purchase, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	purchase, err := s.repo.ClosePurchase(ctx, oid)
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase closed", zap.String("purchase_id", oid.Hex()))
	return purchase, nil
}

// Delete removes the purchase in either state.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.DeletePurchase(ctx, oid); err != nil {
		return err
	}

	s.logger.Info("purchase deleted", zap.String("purchase_id", oid.Hex()))
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, apperrors.Invalid("id is required")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.Invalid("invalid id format")
	}
	return oid, nil
}
