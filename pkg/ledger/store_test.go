package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gaysay/backoffice/internal/domain/models"
)

func view(totalFreq int) models.OpenSellsView {
	return models.OpenSellsView{
		SellsRecord: models.SellsRecord{
			ID:        primitive.NewObjectID(),
			ItemID:    primitive.NewObjectID(),
			TotalFreq: totalFreq,
		},
	}
}

func TestLoadStartsCaughtUp(t *testing.T) {
	store := NewStore()
	store.Load([]models.OpenSellsView{view(5), view(0)})

	records := store.Records()
	require.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, 0, record.SellsIncrease)
		assert.True(t, record.IsSync)
	}
	assert.False(t, store.HasUnsyncedChanges())
}

func TestIncrementAccumulatesAndFlagsStore(t *testing.T) {
	store := NewStore()
	loaded := view(5)
	store.Load([]models.OpenSellsView{loaded})
	id := loaded.ID.Hex()

	require.True(t, store.Increment(id, 3))

	record, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, 3, record.SellsIncrease)
	assert.False(t, record.IsSync)
	assert.True(t, store.HasUnsyncedChanges())
}

func TestCancellingIncrementRestoresRecordSync(t *testing.T) {
	store := NewStore()
	loaded := view(5)
	store.Load([]models.OpenSellsView{loaded})
	id := loaded.ID.Hex()

	require.True(t, store.Increment(id, 3))
	require.True(t, store.Increment(id, -3))

	record, _ := store.Get(id)
	assert.Equal(t, 0, record.SellsIncrease)
	assert.True(t, record.IsSync)
	// The store-wide flag is sticky on increments; only a sync or reload
	// settles it.
	assert.True(t, store.HasUnsyncedChanges())
}

func TestNegativeDeltaIsNotClamped(t *testing.T) {
	store := NewStore()
	loaded := view(10)
	store.Load([]models.OpenSellsView{loaded})
	id := loaded.ID.Hex()

	require.True(t, store.Increment(id, -4))

	record, _ := store.Get(id)
	assert.Equal(t, -4, record.SellsIncrease)
	assert.False(t, record.IsSync)
}

func TestIncrementUnknownRecord(t *testing.T) {
	store := NewStore()
	store.Load(nil)

	assert.False(t, store.Increment(primitive.NewObjectID().Hex(), 1))
	assert.False(t, store.HasUnsyncedChanges())
}

func TestApplySyncSubtractsOnlySnapshot(t *testing.T) {
	store := NewStore()
	loaded := view(5)
	store.Load([]models.OpenSellsView{loaded})
	id := loaded.ID.Hex()

	// 3 was snapshotted and sent; 2 more arrived while in flight.
	require.True(t, store.Increment(id, 3))
	require.True(t, store.Increment(id, 2))

	server := loaded.SellsRecord
	server.TotalFreq = 8
	require.True(t, store.ApplySync(id, 3, &server))

	record, _ := store.Get(id)
	assert.Equal(t, 8, record.TotalFreq, "server total is authoritative")
	assert.Equal(t, 2, record.SellsIncrease, "mid-flight increments survive")
	assert.False(t, record.IsSync)
	assert.True(t, store.HasUnsyncedChanges())
}

func TestApplySyncSettlesStoreWhenEverythingCaughtUp(t *testing.T) {
	store := NewStore()
	loaded := view(5)
	store.Load([]models.OpenSellsView{loaded})
	id := loaded.ID.Hex()

	require.True(t, store.Increment(id, 3))

	server := loaded.SellsRecord
	server.TotalFreq = 8
	require.True(t, store.ApplySync(id, 3, &server))

	record, _ := store.Get(id)
	assert.Equal(t, 0, record.SellsIncrease)
	assert.True(t, record.IsSync)
	assert.False(t, store.HasUnsyncedChanges())
}

func TestRemoveDiscardsPendingDelta(t *testing.T) {
	store := NewStore()
	kept := view(1)
	dropped := view(2)
	store.Load([]models.OpenSellsView{kept, dropped})

	require.True(t, store.Increment(dropped.ID.Hex(), 7))
	store.Remove(dropped.ID.Hex())

	_, ok := store.Get(dropped.ID.Hex())
	assert.False(t, ok)
	assert.Equal(t, []string{kept.ID.Hex()}, store.IDs())
	// The only dirty record left with the store, so the flag settles.
	assert.False(t, store.HasUnsyncedChanges())
}

func TestUnsyncedIDsPreservesLoadOrder(t *testing.T) {
	store := NewStore()
	first := view(1)
	second := view(2)
	third := view(3)
	store.Load([]models.OpenSellsView{first, second, third})

	require.True(t, store.Increment(third.ID.Hex(), 1))
	require.True(t, store.Increment(first.ID.Hex(), 1))

	assert.Equal(t, []string{first.ID.Hex(), third.ID.Hex()}, store.UnsyncedIDs())
}

func TestReloadClearsEverything(t *testing.T) {
	store := NewStore()
	loaded := view(5)
	store.Load([]models.OpenSellsView{loaded})
	require.True(t, store.Increment(loaded.ID.Hex(), 9))
	require.True(t, store.HasUnsyncedChanges())

	fresh := view(7)
	store.Load([]models.OpenSellsView{fresh})

	assert.False(t, store.HasUnsyncedChanges())
	record, ok := store.Get(fresh.ID.Hex())
	require.True(t, ok)
	assert.Equal(t, 0, record.SellsIncrease)
	assert.True(t, record.IsSync)
}
