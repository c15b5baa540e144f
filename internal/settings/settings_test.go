package settings

import (
	"context"
	"errors"
	"testing"

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

func TestGetUnsetReturnsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	value, err := store.Get(context.Background(), ExaAPIKey)
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestSetAndGet(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, ExaAPIKey, "  exa-123  "))
	assert.Equal(t, "exa-123", mr.HGet("settings", ExaAPIKey))

	value, err := store.Get(ctx, ExaAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "exa-123", value)

	require.NoError(t, store.Set(ctx, ExaAPIKey, ""))
	value, err = store.Get(ctx, ExaAPIKey)
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestResolvePrefersOverride(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, ExaAPIKey, "stored"))

	value, err := store.Resolve(ctx, ExaAPIKey, "from-env")
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)

	value, err = store.Resolve(ctx, ExaAPIKey, "   ")
	require.NoError(t, err)
	assert.Equal(t, "stored", value)
}

func TestRequestAccess(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RequestAccess(ctx, AccessCalendar))
	assert.Equal(t, "granted", mr.HGet("settings", "access:calendar"))

	require.NoError(t, store.SetAccess(ctx, AccessReminders, false))
	err := store.RequestAccess(ctx, AccessReminders)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccessDenied))
	assert.Contains(t, err.Error(), "reminders")

	require.NoError(t, store.SetAccess(ctx, AccessReminders, true))
	assert.NoError(t, store.RequestAccess(ctx, AccessReminders))
}

func TestRequestAccessStoreDown(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	err := store.RequestAccess(context.Background(), AccessContacts)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrAccessDenied))
}
