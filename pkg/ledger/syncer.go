package ledger

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gaysay/backoffice/internal/domain/models"
)

// SellsAPI is the slice of the back-office client the syncer drives.
type SellsAPI interface {
	ListOpenSells(ctx context.Context) ([]models.OpenSellsView, error)
	SyncSells(ctx context.Context, id string, frequency int) (*models.SellsRecord, error)
	CloseSells(ctx context.Context, id string) (*models.SellsRecord, error)
	DeleteSells(ctx context.Context, id string) error
}

// BulkReport aggregates the outcome of a fan-out-and-collect bulk operation.
// Every target settles independently; failures never halt the rest.
type BulkReport struct {
	Attempted int
	Succeeded int
	Failures  map[string]error
}

// AllSucceeded reports whether no target failed.
func (r BulkReport) AllSucceeded() bool { return len(r.Failures) == 0 }

// Err collapses the report into a single error, or nil if all succeeded.
func (r BulkReport) Err() error {
	if r.AllSucceeded() {
		return nil
	}
	return fmt.Errorf("%d of %d operations failed", len(r.Failures), r.Attempted)
}

// Syncer reconciles the local ledger store against the server.
type Syncer struct {
	store  *Store
	api    SellsAPI
	logger *zap.Logger
}

// NewSyncer wires a syncer around a store and an API client.
func NewSyncer(store *Store, api SellsAPI, logger *zap.Logger) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Syncer{store: store, api: api, logger: logger}
}

// Store exposes the underlying state store.
func (s *Syncer) Store() *Store { return s.store }

// Refresh replaces the local state with the server's open records.
func (s *Syncer) Refresh(ctx context.Context) error {
	views, err := s.api.ListOpenSells(ctx)
	if err != nil {
		return err
	}
	s.store.Load(views)
	return nil
}

// Sync persists one record's pending delta. The delta is snapshotted before
// the round trip and only the snapshot is merged back on success, so
// increments made while the request was in flight are preserved instead of
// being overwritten. A record with no pending delta is a no-op.
func (s *Syncer) Sync(ctx context.Context, id string) error {
	delta, ok := s.store.PendingDelta(id)
	if !ok {
		return fmt.Errorf("unknown record %s", id)
	}
	if delta == 0 {
		return nil
	}

	record, err := s.api.SyncSells(ctx, id, delta)
	if err != nil {
		s.logger.Warn("sync failed", zap.String("sells_id", id), zap.Error(err))
		return err
	}

	s.store.ApplySync(id, delta, record)
	s.logger.Info("record synced",
		zap.String("sells_id", id),
		zap.Int("synced_delta", delta),
		zap.Int("total_freq", record.TotalFreq))
	return nil
}

// SyncAll persists every unsynced record, one sequential round trip at a
// time. Failures are collected, not fatal; the store's global dirty flag
// clears only when every record ends up caught up.
func (s *Syncer) SyncAll(ctx context.Context) BulkReport {
	report := BulkReport{Failures: make(map[string]error)}
	for _, id := range s.store.UnsyncedIDs() {
		report.Attempted++
		if err := s.Sync(ctx, id); err != nil {
			report.Failures[id] = err
			continue
		}
		report.Succeeded++
	}
	return report
}

// CloseAll closes the given records. A close succeeds regardless of pending
// local deltas; whatever was not synced beforehand is discarded with the
// record.
func (s *Syncer) CloseAll(ctx context.Context, ids []string) BulkReport {
	report := BulkReport{Failures: make(map[string]error)}
	for _, id := range ids {
		report.Attempted++
		if _, err := s.api.CloseSells(ctx, id); err != nil {
			report.Failures[id] = err
			continue
		}
		s.store.Remove(id)
		report.Succeeded++
	}
	return report
}

// DeleteAll deletes the given records.
func (s *Syncer) DeleteAll(ctx context.Context, ids []string) BulkReport {
	report := BulkReport{Failures: make(map[string]error)}
	for _, id := range ids {
		report.Attempted++
		if err := s.api.DeleteSells(ctx, id); err != nil {
			report.Failures[id] = err
			continue
		}
		s.store.Remove(id)
		report.Succeeded++
	}
	return report
}
