// Package sells implements the open-sells ledger lifecycle: a record is
// opened for a menu item, accumulates sale frequency entries, and is
// eventually closed or deleted. At most one open record may exist per item.
package sells

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/gaysay/backoffice/internal/apperrors"
	"github.com/gaysay/backoffice/internal/domain/models"
)

// Repository is the subset of the store the ledger needs.
type Repository interface {
	InsertSells(ctx context.Context, record *models.SellsRecord) error
	FindOpenSells(ctx context.Context) ([]models.OpenSellsView, error)
	FindSellsByID(ctx context.Context, id primitive.ObjectID) (*models.SellsRecord, error)
	FindOpenSellsByID(ctx context.Context, id primitive.ObjectID) (*models.SellsRecord, error)
	UpdateSellsUnits(ctx context.Context, record *models.SellsRecord) error
	CloseSells(ctx context.Context, id primitive.ObjectID) (*models.SellsRecord, error)
	DeleteSells(ctx context.Context, id primitive.ObjectID) error
	HasOpenSellsForItem(ctx context.Context, itemID primitive.ObjectID) (bool, error)
}

// Service drives the ledger state machine on top of the store.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new ledger service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// ListOpen returns every open record with its menu item resolved.
func (s *Service) ListOpen(ctx context.Context) ([]models.OpenSellsView, error) {
	return s.repo.FindOpenSells(ctx)
}

// Get returns a record by id, in either state.
func (s *Service) Get(ctx context.Context, id string) (*models.SellsRecord, error) {
	oid, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	return s.repo.FindSellsByID(ctx, oid)
}

// Open starts a new sales period for a menu item. The initial frequency
// seeds the units log; it defaults to zero and may not be negative. A second
// open on the same item is a conflict: the lookup supplies the friendly
// message and the store's unique index guards the race.
func (s *Service) Open(ctx context.Context, itemID string, frequency *int) (*models.SellsRecord, error) {
	oid, err := parseID(itemID, "itemId")
	if err != nil {
		return nil, err
	}

	initial := 0
	if frequency != nil {
		initial = *frequency
	}
	if initial < 0 {
		return nil, apperrors.Invalid("frequency must not be negative")
	}

	alreadyOpen, err := s.repo.HasOpenSellsForItem(ctx, oid)
	if err != nil {
		return nil, err
	}
	if alreadyOpen {
		return nil, apperrors.Conflict("There is already an open sells on this item. Please close it first.")
	}

	record := &models.SellsRecord{
		ItemID: oid,
		UnitsSold: []models.SellsEntry{
			{Frequency: initial, Timestamp: time.Now()},
		},
		IsClosed: false,
	}
	record.TotalFreq = record.TotalFrequency()

	if err := s.repo.InsertSells(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("sells opened",
		zap.String("sells_id", record.ID.Hex()),
		zap.String("item_id", oid.Hex()),
		zap.Int("initial_frequency", initial))
	return record, nil
}

// RecordSale appends a frequency entry to an open record and recomputes the
// cached total from the whole log, so replaying the entries always
// reproduces it. The frequency defaults to one when omitted.
func (s *Service) RecordSale(ctx context.Context, id string, frequency *int) (*models.SellsRecord, error) {
	oid, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}

	freq := 1
	if frequency != nil {
		freq = *frequency
	}

	record, err := s.repo.FindOpenSellsByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	record.UnitsSold = append(record.UnitsSold, models.SellsEntry{
		Frequency: freq,
		Timestamp: time.Now(),
	})
	record.TotalFreq = record.TotalFrequency()

	if err := s.repo.UpdateSellsUnits(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("sells frequency recorded",
		zap.String("sells_id", record.ID.Hex()),
		zap.Int("frequency", freq),
		zap.Int("total_freq", record.TotalFreq))
	return record, nil
}

// Close ends the sales period. Closed is terminal; closing an already closed
// or missing record reports not found.
func (s *Service) Close(ctx context.Context, id string) (*models.SellsRecord, error) {
	oid, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}

	record, err := s.repo.CloseSells(ctx, oid)
	if err != nil {
		return nil, err
	}

	s.logger.Info("sells closed",
		zap.String("sells_id", record.ID.Hex()),
		zap.Int("total_freq", record.TotalFreq))
	return record, nil
}

// Delete removes a record in either state.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id, "id")
	if err != nil {
		return err
	}
	if err := s.repo.DeleteSells(ctx, oid); err != nil {
		return err
	}

	s.logger.Info("sells deleted", zap.String("sells_id", oid.Hex()))
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
