// Package ledger holds the client-side view of the open-sells records: an
// explicit state store that accumulates optimistic frequency increments and
// reconciles them against the server through the syncer.
package ledger

import (
	"sync"

	"github.com/gaysay/backoffice/internal/domain/models"
)

// Record is one open-sells record as the client sees it: the last known
// server state plus the locally accumulated, not-yet-synced delta.
type Record struct {
	models.OpenSellsView
	// SellsIncrease is the delta accumulated since the record was loaded
	// or last synced. May go negative; no clamping happens here.
	SellsIncrease int
	// IsSync is true iff there is no pending local change.
	IsSync bool
}

// Store owns the client ledger state. It is passed by reference to UI
// handlers and the syncer; all updates go through its methods.
type Store struct {
	mu      sync.Mutex
	order   []string
	records map[string]*Record
	// unsynced is the process-wide dirty flag that gates the navigation
	// warning. Increments only ever raise it; it drops again on Load and
	// when a sync confirms every record is caught up.
	unsynced bool
}

// NewStore creates an empty ledger store.
func NewStore() *Store {
	return &Store{records: make(map[string]*Record)}
}

// Load replaces the whole state with the server's view. Every record starts
// caught up: zero pending delta, synced, global flag cleared.
func (s *Store) Load(views []models.OpenSellsView) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = s.order[:0]
	s.records = make(map[string]*Record, len(views))
	for _, view := range views {
		id := view.ID.Hex()
		s.order = append(s.order, id)
		s.records[id] = &Record{OpenSellsView: view, SellsIncrease: 0, IsSync: true}
	}
	s.unsynced = false
}

// Increment adds delta to a record's pending increase. The record is synced
// iff adding the pending delta to the known total changes nothing. Reports
// false when the record is unknown.
func (s *Store) Increment(id string, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return false
	}

	record.SellsIncrease += delta
	record.IsSync = record.SellsIncrease+record.TotalFreq == record.TotalFreq
	if !record.IsSync {
		s.unsynced = true
	}
	return true
}

// PendingDelta returns the not-yet-synced increase for a record. The second
// result is false when the record is unknown.
func (s *Store) PendingDelta(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return 0, false
	}
	return record.SellsIncrease, true
}

// ApplySync merges a completed sync round trip: the server record replaces
// the known state and only the synced snapshot is subtracted from the
// pending delta, so increments that arrived while the request was in flight
// survive. The global flag is recomputed from all records.
func (s *Store) ApplySync(id string, syncedDelta int, server *models.SellsRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok || server == nil {
		return ok
	}

	record.SellsRecord = *server
	record.SellsIncrease -= syncedDelta
	record.IsSync = record.SellsIncrease == 0
	s.recomputeUnsyncedLocked()
	return true
}

// Remove drops a record from the store, e.g. after a close or delete. Any
// pending delta on it is discarded. The global flag is recomputed.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return
	}
	delete(s.records, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.recomputeUnsyncedLocked()
}

// Get returns a copy of one record.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	return *record, true
}

// Records returns copies of every record in load order.
func (s *Store) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		if record, ok := s.records[id]; ok {
			out = append(out, *record)
		}
	}
	return out
}

// IDs returns every record id in load order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// UnsyncedIDs returns the ids of records with a pending delta, in load order.
func (s *Store) UnsyncedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0)
	for _, id := range s.order {
		if record, ok := s.records[id]; ok && !record.IsSync {
			out = append(out, id)
		}
	}
	return out
}

// HasUnsyncedChanges reports the process-wide dirty flag.
func (s *Store) HasUnsyncedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsynced
}

func (s *Store) recomputeUnsyncedLocked() {
	for _, record := range s.records {
		if !record.IsSync {
			s.unsynced = true
			return
		}
	}
	s.unsynced = false
}
