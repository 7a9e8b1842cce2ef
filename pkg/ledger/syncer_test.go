package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gaysay/backoffice/internal/domain/models"
)

// fakeAPI simulates the server side of the sync protocol: it keeps
// authoritative records and applies frequency deltas like the real endpoint.
type fakeAPI struct {
	records map[string]*models.SellsRecord
	failOn  map[string]error
	// onSync runs after the server applied a delta but before the response
	// reaches the store, to model mid-flight client activity.
	onSync func(id string)
	calls  []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		records: make(map[string]*models.SellsRecord),
		failOn:  make(map[string]error),
	}
}

func (f *fakeAPI) add(view models.OpenSellsView) {
	record := view.SellsRecord
	f.records[record.ID.Hex()] = &record
}

func (f *fakeAPI) ListOpenSells(context.Context) ([]models.OpenSellsView, error) {
	views := make([]models.OpenSellsView, 0, len(f.records))
	for _, record := range f.records {
		if !record.IsClosed {
			views = append(views, models.OpenSellsView{SellsRecord: *record})
		}
	}
	return views, nil
}

func (f *fakeAPI) SyncSells(_ context.Context, id string, frequency int) (*models.SellsRecord, error) {
	f.calls = append(f.calls, id)
	if err, ok := f.failOn[id]; ok {
		return nil, err
	}
	record, ok := f.records[id]
	if !ok || record.IsClosed {
		return nil, errors.New("open sells not found")
	}

	record.TotalFreq += frequency
	response := *record
	if f.onSync != nil {
		f.onSync(id)
	}
	return &response, nil
}

func (f *fakeAPI) CloseSells(_ context.Context, id string) (*models.SellsRecord, error) {
	record, ok := f.records[id]
	if !ok || record.IsClosed {
		return nil, errors.New("open sells not found")
	}
	record.IsClosed = true
	response := *record
	return &response, nil
}

func (f *fakeAPI) DeleteSells(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return errors.New("not found")
	}
	delete(f.records, id)
	return nil
}

func newSyncerWith(views ...models.OpenSellsView) (*Syncer, *fakeAPI) {
	api := newFakeAPI()
	for _, v := range views {
		api.add(v)
	}
	store := NewStore()
	store.Load(views)
	return NewSyncer(store, api, nil), api
}

func TestSyncSendsPendingDeltaAndAdoptsServerTotal(t *testing.T) {
	loaded := view(5)
	syncer, _ := newSyncerWith(loaded)
	id := loaded.ID.Hex()

	require.True(t, syncer.Store().Increment(id, 3))
	require.NoError(t, syncer.Sync(context.Background(), id))

	record, _ := syncer.Store().Get(id)
	assert.Equal(t, 8, record.TotalFreq)
	assert.Equal(t, 0, record.SellsIncrease)
	assert.True(t, record.IsSync)
	assert.False(t, syncer.Store().HasUnsyncedChanges())
}

func TestSyncWithNoPendingDeltaIsNoOp(t *testing.T) {
	loaded := view(5)
	syncer, api := newSyncerWith(loaded)

	require.NoError(t, syncer.Sync(context.Background(), loaded.ID.Hex()))
	assert.Empty(t, api.calls, "no round trip for a caught-up record")
}

func TestSyncUnknownRecordFails(t *testing.T) {
	syncer, _ := newSyncerWith()
	assert.Error(t, syncer.Sync(context.Background(), primitive.NewObjectID().Hex()))
}

func TestIncrementsDuringInFlightSyncSurvive(t *testing.T) {
	loaded := view(0)
	syncer, api := newSyncerWith(loaded)
	id := loaded.ID.Hex()

	// Two increments of 5 accumulate before the round trip starts.
	require.True(t, syncer.Store().Increment(id, 5))
	require.True(t, syncer.Store().Increment(id, 5))

	// While the response is on the wire the user keeps tapping.
	api.onSync = func(string) {
		syncer.Store().Increment(id, 4)
	}

	require.NoError(t, syncer.Sync(context.Background(), id))

	record, _ := syncer.Store().Get(id)
	assert.Equal(t, 10, record.TotalFreq, "server applied the snapshotted 10")
	assert.Equal(t, 4, record.SellsIncrease, "the mid-flight increment is not lost")
	assert.False(t, record.IsSync)
	assert.True(t, syncer.Store().HasUnsyncedChanges())
}

func TestSyncFailureLeavesDeltaIntact(t *testing.T) {
	loaded := view(5)
	syncer, api := newSyncerWith(loaded)
	id := loaded.ID.Hex()
	api.failOn[id] = errors.New("boom")

	require.True(t, syncer.Store().Increment(id, 3))
	require.Error(t, syncer.Sync(context.Background(), id))

	record, _ := syncer.Store().Get(id)
	assert.Equal(t, 3, record.SellsIncrease)
	assert.True(t, syncer.Store().HasUnsyncedChanges())
}

func TestSyncAllIsSequentialAndAggregatesFailures(t *testing.T) {
	first := view(1)
	second := view(2)
	third := view(3)
	syncer, api := newSyncerWith(first, second, third)
	api.failOn[second.ID.Hex()] = errors.New("boom")

	require.True(t, syncer.Store().Increment(first.ID.Hex(), 1))
	require.True(t, syncer.Store().Increment(second.ID.Hex(), 1))
	require.True(t, syncer.Store().Increment(third.ID.Hex(), 1))

	report := syncer.SyncAll(context.Background())

	assert.Equal(t, 3, report.Attempted)
	assert.Equal(t, 2, report.Succeeded)
	require.Len(t, report.Failures, 1)
	assert.Contains(t, report.Failures, second.ID.Hex())
	assert.Error(t, report.Err())

	// The failure did not halt later records.
	assert.Equal(t, []string{first.ID.Hex(), second.ID.Hex(), third.ID.Hex()}, api.calls)

	// A failed record keeps the store dirty.
	assert.True(t, syncer.Store().HasUnsyncedChanges())
}

func TestSyncAllClearsFlagWhenEverythingSucceeds(t *testing.T) {
	first := view(1)
	second := view(2)
	syncer, _ := newSyncerWith(first, second)

	require.True(t, syncer.Store().Increment(first.ID.Hex(), 2))
	require.True(t, syncer.Store().Increment(second.ID.Hex(), 3))

	report := syncer.SyncAll(context.Background())
	require.True(t, report.AllSucceeded())
	require.NoError(t, report.Err())

	assert.False(t, syncer.Store().HasUnsyncedChanges())
}

func TestCloseSucceedsWithPendingDeltaAndDiscardsIt(t *testing.T) {
	loaded := view(5)
	syncer, api := newSyncerWith(loaded)
	id := loaded.ID.Hex()

	require.True(t, syncer.Store().Increment(id, 7))

	report := syncer.CloseAll(context.Background(), []string{id})
	require.True(t, report.AllSucceeded())

	// The unsynced delta is gone with the record: the server total never
	// saw the 7.
	assert.Equal(t, 5, api.records[id].TotalFreq)
	_, ok := syncer.Store().Get(id)
	assert.False(t, ok)
	assert.False(t, syncer.Store().HasUnsyncedChanges())
}

func TestDeleteAllCollectsFailuresIndependently(t *testing.T) {
	kept := view(1)
	gone := view(2)
	syncer, _ := newSyncerWith(gone)
	// kept was never on the server, so deleting it fails.
	syncer.Store().Load([]models.OpenSellsView{kept, gone})

	report := syncer.DeleteAll(context.Background(), []string{kept.ID.Hex(), gone.ID.Hex()})

	assert.Equal(t, 2, report.Attempted)
	assert.Equal(t, 1, report.Succeeded)
	assert.Contains(t, report.Failures, kept.ID.Hex())
}

func TestRefreshReplacesLocalState(t *testing.T) {
	stale := view(5)
	syncer, api := newSyncerWith(stale)
	require.True(t, syncer.Store().Increment(stale.ID.Hex(), 2))

	fresh := view(9)
	api.add(fresh)

	require.NoError(t, syncer.Refresh(context.Background()))

	assert.False(t, syncer.Store().HasUnsyncedChanges())
	record, ok := syncer.Store().Get(fresh.ID.Hex())
	require.True(t, ok)
	assert.Equal(t, 9, record.TotalFreq)
}
