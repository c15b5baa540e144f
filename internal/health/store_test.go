package health

import (
	"context"
	"errors"
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

func TestStoreAuthorization(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Authorize(ctx, Steps, HeartRate))
	assert.NoError(t, store.RequestAuthorization(ctx, []DataType{Steps}))

	err := store.RequestAuthorization(ctx, []DataType{Steps, Sleep, Distance})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAuthorizationDenied))
	assert.Contains(t, err.Error(), "sleep, distance")
}

func TestStoreSamplesAndCumulativeSum(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddSamples(ctx,
		Sample{Type: Steps, Start: at(1, 8), End: at(1, 9), Value: 1000},
		Sample{Type: Steps, Start: at(2, 8), End: at(2, 9), Value: 2500},
		Sample{Type: Steps, Start: at(3, 8), End: at(3, 9), Value: 4000},
		Sample{Type: HeartRate, Start: at(2, 8), Value: 64},
	))

	sum, err := store.CumulativeSum(ctx, Steps, at(1, 0), at(3, 8))
	require.NoError(t, err)
	assert.Equal(t, 3500.0, sum, "end is exclusive")

	samples, err := store.Samples(ctx, Steps, at(1, 0), at(4, 0))
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.True(t, samples[0].Start.Equal(at(1, 8)))
	assert.Equal(t, 4000.0, samples[2].Value)

	_, err = store.CumulativeSum(ctx, Distance, at(1, 0), at(4, 0))
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestStoreAddSamplesIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	s := Sample{Type: ActiveEnergy, Start: at(1, 8), End: at(1, 9), Value: 120}

	require.NoError(t, store.AddSamples(ctx, s))
	require.NoError(t, store.AddSamples(ctx, s))

	sum, err := store.CumulativeSum(ctx, ActiveEnergy, at(1, 0), at(2, 0))
	require.NoError(t, err)
	assert.Equal(t, 120.0, sum)
}

func TestStoreRejectsBadSampleType(t *testing.T) {
	store, _ := newTestStore(t)

	assert.Error(t, store.AddSamples(context.Background(), Sample{Type: "calories", Start: at(1, 8)}))
	assert.Error(t, store.AddSamples(context.Background(), Sample{Type: Workouts, Start: at(1, 8)}))
}

func TestStoreWorkouts(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddWorkout(ctx, Workout{ID: "b", ActivityType: 57, Start: at(2, 7), End: at(2, 8)}, 80))
	require.NoError(t, store.AddWorkout(ctx, Workout{ID: "a", ActivityType: 37, Start: at(1, 7), End: at(1, 7).Add(30 * time.Minute)}, 250))
	assert.Error(t, store.AddWorkout(ctx, Workout{}, 0))

	workouts, err := store.Workouts(ctx, at(1, 0), at(3, 0))
	require.NoError(t, err)
	require.Len(t, workouts, 2)
	assert.Equal(t, "a", workouts[0].ID)
	assert.Equal(t, 30*time.Minute, workouts[0].Duration())

	energy, err := store.WorkoutEnergy(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 250.0, energy)

	energy, err = store.WorkoutEnergy(ctx, "unknown")
	require.NoError(t, err)
	assert.Zero(t, energy)
}

func TestDataTypeHelpers(t *testing.T) {
	assert.True(t, Steps.Cumulative())
	assert.False(t, HeartRate.Cumulative())
	assert.True(t, Sleep.Valid())
	assert.False(t, DataType("calories").Valid())
	assert.False(t, Sample{Category: SleepAwake}.Asleep())
	assert.True(t, Sample{Category: SleepAsleepREM}.Asleep())
}
