// In file: internal/health/store.go
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	authorizedKey = "health:authorized"
	workoutsKey   = "health:workouts"
)

// Store keeps health samples in Redis sorted sets scored by start time in
// milliseconds, so every query is a single ZRANGEBYSCORE.
type Store struct {
	rdb *redis.Client
}

// NewStore wraps an existing Redis client.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func samplesKey(t DataType) string {
	return fmt.Sprintf("health:samples:%s", t)
}

func workoutEnergyKey(id string) string {
	return fmt.Sprintf("health:workout:%s:energy", id)
}

func scoreRange(start, end time.Time) *redis.ZRangeBy {
	// End is exclusive.
	return &redis.ZRangeBy{
		Min: strconv.FormatInt(start.UnixMilli(), 10),
		Max: "(" + strconv.FormatInt(end.UnixMilli(), 10),
	}
}

// Available reports whether Redis answers a PING.
func (s *Store) Available(ctx context.Context) bool {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Health store unavailable: %v", err)
		return false
	}
	return true
}

// RequestAuthorization checks that every type has been granted. It never
// prompts; grants are recorded ahead of time with Authorize.
func (s *Store) RequestAuthorization(ctx context.Context, types []DataType) error {
	if len(types) == 0 {
		return nil
	}
	members := make([]interface{}, len(types))
	for i, t := range types {
		members[i] = string(t)
	}
	granted, err := s.rdb.SMIsMember(ctx, authorizedKey, members...).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotAvailable, err)
	}
	var denied []string
	for i, ok := range granted {
		if !ok {
			denied = append(denied, string(types[i]))
		}
	}
	if len(denied) > 0 {
		return fmt.Errorf("%w: %s", ErrAuthorizationDenied, strings.Join(denied, ", "))
	}
	return nil
}

// Authorize grants read access to the given types.
func (s *Store) Authorize(ctx context.Context, types ...DataType) error {
	if len(types) == 0 {
		return nil
	}
	members := make([]interface{}, len(types))
	for i, t := range types {
		members[i] = string(t)
	}
	if err := s.rdb.SAdd(ctx, authorizedKey, members...).Err(); err != nil {
		return fmt.Errorf("failed to record authorization: %w", err)
	}
	return nil
}

// Samples returns the samples of type t that start in [start, end), oldest first.
func (s *Store) Samples(ctx context.Context, t DataType, start, end time.Time) ([]Sample, error) {
	members, err := s.rdb.ZRangeByScore(ctx, samplesKey(t), scoreRange(start, end)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s samples: %w", t, err)
	}
	samples := make([]Sample, 0, len(members))
	for _, m := range members {
		var sample Sample
		if err := json.Unmarshal([]byte(m), &sample); err != nil {
			return nil, fmt.Errorf("failed to decode %s sample: %w", t, err)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// CumulativeSum adds up the values of type t in [start, end). It returns
// ErrNoData when nothing matched, so a zero total is never confused with
// missing data.
func (s *Store) CumulativeSum(ctx context.Context, t DataType, start, end time.Time) (float64, error) {
	samples, err := s.Samples(ctx, t, start, end)
	if err != nil {
		return 0, err
	}
	if len(samples) == 0 {
		return 0, ErrNoData
	}
	var total float64
	for _, sample := range samples {
		total += sample.Value
	}
	return total, nil
}

// Workouts returns the workouts that start in [start, end), oldest first.
func (s *Store) Workouts(ctx context.Context, start, end time.Time) ([]Workout, error) {
	members, err := s.rdb.ZRangeByScore(ctx, workoutsKey, scoreRange(start, end)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query workouts: %w", err)
	}
	workouts := make([]Workout, 0, len(members))
	for _, m := range members {
		var w Workout
		if err := json.Unmarshal([]byte(m), &w); err != nil {
			return nil, fmt.Errorf("failed to decode workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}

// WorkoutEnergy returns the active energy (kcal) burned during a workout,
// or 0 when none was recorded.
func (s *Store) WorkoutEnergy(ctx context.Context, workoutID string) (float64, error) {
	energy, err := s.rdb.Get(ctx, workoutEnergyKey(workoutID)).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read energy for workout %s: %w", workoutID, err)
	}
	return energy, nil
}

// AddSamples stores samples. Re-adding an identical sample is a no-op.
func (s *Store) AddSamples(ctx context.Context, samples ...Sample) error {
	pipe := s.rdb.Pipeline()
	for _, sample := range samples {
		if !sample.Type.Valid() || sample.Type == Workouts {
			return fmt.Errorf("cannot store sample of type %q", sample.Type)
		}
		payload, err := json.Marshal(sample)
		if err != nil {
			return fmt.Errorf("failed to encode %s sample: %w", sample.Type, err)
		}
		pipe.ZAdd(ctx, samplesKey(sample.Type), redis.Z{
			Score:  float64(sample.Start.UnixMilli()),
			Member: string(payload),
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store samples: %w", err)
	}
	return nil
}

// AddWorkout stores a workout and the energy burned during it.
func (s *Store) AddWorkout(ctx context.Context, w Workout, energyKcal float64) error {
	if w.ID == "" {
		return errors.New("workout ID cannot be empty")
	}
	payload, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to encode workout %s: %w", w.ID, err)
	}
	pipe := s.rdb.Pipeline()
	pipe.ZAdd(ctx, workoutsKey, redis.Z{
		Score:  float64(w.Start.UnixMilli()),
		Member: string(payload),
	})
	pipe.Set(ctx, workoutEnergyKey(w.ID), energyKcal, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store workout %s: %w", w.ID, err)
	}
	return nil
}
