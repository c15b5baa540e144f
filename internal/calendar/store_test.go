package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb), mr
}

func at(day, hour int) time.Time {
	return time.Date(2026, 10, day, hour, 0, 0, 0, time.UTC)
}

func TestStoreAvailable(t *testing.T) {
	store, mr := newTestStore(t)
	assert.True(t, store.Available(context.Background()))

	mr.Close()
	assert.False(t, store.Available(context.Background()))
}

func TestAddEventAssignsID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.AddEvent(ctx, Event{Title: "  Dentist ", Start: at(20, 9), End: at(20, 10)})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Dentist", created.Title)

	kept, err := store.AddEvent(ctx, Event{ID: "evt-1", Title: "Standup", Start: at(21, 9), End: at(21, 9)})
	require.NoError(t, err)
	assert.Equal(t, "evt-1", kept.ID)
}

func TestAddEventRejectsBadEvents(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddEvent(ctx, Event{Title: " ", Start: at(20, 9), End: at(20, 10)})
	assert.Error(t, err)

	_, err = store.AddEvent(ctx, Event{Title: "Backwards", Start: at(20, 10), End: at(20, 9)})
	assert.Error(t, err)
}

func TestEventsRangeIsHalfOpen(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, e := range []Event{
		{ID: "c", Title: "Late", Start: at(22, 0), End: at(22, 1)},
		{ID: "a", Title: "Early", Start: at(20, 8), End: at(20, 9)},
		{ID: "b", Title: "Middle", Start: at(21, 12), End: at(21, 13)},
	} {
		_, err := store.AddEvent(ctx, e)
		require.NoError(t, err)
	}

	events, err := store.Events(ctx, at(20, 8), at(22, 0))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].ID)
	assert.Equal(t, "b", events[1].ID)
	assert.True(t, events[1].Start.Equal(at(21, 12)))
}
