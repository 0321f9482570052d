package signal

import (
	"context"
	"testing"
	"time"

	"github.com/quantpulse/pulse/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedSignal(hour int, direction core.Direction, strength float64) core.Signal {
	return core.Signal{
		Timestamp: time.Date(2024, 3, 1, hour, 0, 0, 0, time.UTC),
		Direction: direction,
		Strength:  strength,
		RiskLevel: core.RiskLow,
		Price:     100,
	}
}

func TestMemoryStore_SaveAssignsID(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	id, err := store.Save(ctx, storedSignal(9, core.DirectionBuy, 60))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, core.DirectionBuy, got.Direction)
}

func TestMemoryStore_GetByIDNotFound(t *testing.T) {
	store := NewMemoryStore(10)

	_, err := store.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrSignalNotFound)
}

func TestMemoryStore_SaveBatchPreservesOrder(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	batch := []core.Signal{
		storedSignal(9, core.DirectionBuy, 60),
		storedSignal(10, core.DirectionSell, 45),
		storedSignal(11, core.DirectionBuy, 80),
	}
	require.NoError(t, store.SaveBatch(ctx, batch))

	listed, err := store.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i := range batch {
		assert.True(t, listed[i].Timestamp.Equal(batch[i].Timestamp), "index %d out of order", i)
		assert.NotEmpty(t, listed[i].ID)
	}
}

func TestMemoryStore_EvictsOldestAtCapacity(t *testing.T) {
	store := NewMemoryStore(2)
	ctx := context.Background()

	first, err := store.Save(ctx, storedSignal(9, core.DirectionBuy, 60))
	require.NoError(t, err)
	_, err = store.Save(ctx, storedSignal(10, core.DirectionBuy, 60))
	require.NoError(t, err)
	_, err = store.Save(ctx, storedSignal(11, core.DirectionBuy, 60))
	require.NoError(t, err)

	count, err := store.Count(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = store.GetByID(ctx, first)
	assert.ErrorIs(t, err, core.ErrSignalNotFound, "oldest signal should have been evicted")
}

func TestMemoryStore_ListFilters(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	require.NoError(t, store.SaveBatch(ctx, []core.Signal{
		storedSignal(9, core.DirectionBuy, 30),
		storedSignal(10, core.DirectionSell, 60),
		storedSignal(11, core.DirectionBuy, 85),
		storedSignal(12, core.DirectionBuy, 90),
	}))

	buys, err := store.List(ctx, ListFilter{Direction: core.DirectionBuy})
	require.NoError(t, err)
	assert.Len(t, buys, 3)

	strong, err := store.List(ctx, ListFilter{MinStrength: 70})
	require.NoError(t, err)
	assert.Len(t, strong, 2)

	window, err := store.List(ctx, ListFilter{
		From: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, window, 2)
}

func TestMemoryStore_ListPagination(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	for hour := 9; hour < 14; hour++ {
		_, err := store.Save(ctx, storedSignal(hour, core.DirectionBuy, 60))
		require.NoError(t, err)
	}

	page, err := store.List(ctx, ListFilter{Offset: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 10, page[0].Timestamp.Hour())
	assert.Equal(t, 11, page[1].Timestamp.Hour())

	empty, err := store.List(ctx, ListFilter{Offset: 99})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStore_CountMatchesFilter(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	require.NoError(t, store.SaveBatch(ctx, []core.Signal{
		storedSignal(9, core.DirectionBuy, 30),
		storedSignal(10, core.DirectionSell, 60),
	}))

	count, err := store.Count(ctx, ListFilter{Direction: core.DirectionSell})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
