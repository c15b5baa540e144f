// In file: internal/calendar/store.go
package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const eventsKey = "calendar:events"

// Store keeps events in one sorted set scored by start time in milliseconds.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Available reports whether Redis answers a PING.
func (s *Store) Available(ctx context.Context) bool {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Calendar store unavailable: %v", err)
		return false
	}
	return true
}

// Events returns the events that start in [start, end), earliest first.
func (s *Store) Events(ctx context.Context, start, end time.Time) ([]Event, error) {
	members, err := s.rdb.ZRangeByScore(ctx, eventsKey, &redis.ZRangeBy{
		Min: strconv.FormatInt(start.UnixMilli(), 10),
		Max: "(" + strconv.FormatInt(end.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	events := make([]Event, 0, len(members))
	for _, m := range members {
		var e Event
		if err := json.Unmarshal([]byte(m), &e); err != nil {
			return nil, fmt.Errorf("failed to decode event: %w", err)
		}
		events = append(events, e)
	}
	return events, nil
}

// AddEvent stores e and returns it with its ID filled in. A new ID is
// generated when e has none.
func (s *Store) AddEvent(ctx context.Context, e Event) (Event, error) {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return Event{}, errors.New("event title cannot be empty")
	}
	if e.End.Before(e.Start) {
		return Event{}, fmt.Errorf("event %q ends before it starts", e.Title)
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return Event{}, fmt.Errorf("failed to encode event %s: %w", e.ID, err)
	}
	if err := s.rdb.ZAdd(ctx, eventsKey, redis.Z{
		Score:  float64(e.Start.UnixMilli()),
		Member: string(payload),
	}).Err(); err != nil {
		return Event{}, fmt.Errorf("failed to store event %s: %w", e.ID, err)
	}
	return e, nil
}
