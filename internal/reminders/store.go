// In file: internal/reminders/store.go
package reminders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const itemsKey = "reminders:items"

// Store keeps reminders as JSON values in one hash keyed by reminder ID.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Available reports whether Redis answers a PING.
func (s *Store) Available(ctx context.Context) bool {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Reminder store unavailable: %v", err)
		return false
	}
	return true
}

// List returns reminders ordered by due date, undated ones last, then by
// creation time. Completed reminders are skipped unless includeCompleted.
func (s *Store) List(ctx context.Context, includeCompleted bool) ([]Reminder, error) {
	values, err := s.rdb.HVals(ctx, itemsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	items := make([]Reminder, 0, len(values))
	for _, v := range values {
		var r Reminder
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return nil, fmt.Errorf("failed to decode reminder: %w", err)
		}
		if r.Completed && !includeCompleted {
			continue
		}
		items = append(items, r)
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.Due != nil && b.Due != nil && !a.Due.Equal(*b.Due):
			return a.Due.Before(*b.Due)
		case a.Due != nil && b.Due == nil:
			return true
		case a.Due == nil && b.Due != nil:
			return false
		case !a.Created.Equal(b.Created):
			return a.Created.Before(b.Created)
		}
		return a.ID < b.ID
	})
	return items, nil
}

// Add stores a new reminder and returns it with its ID and defaults filled in.
func (s *Store) Add(ctx context.Context, r Reminder) (Reminder, error) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return Reminder{}, errors.New("reminder title cannot be empty")
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Priority == "" {
		r.Priority = PriorityNone
	}
	if r.Created.IsZero() {
		r.Created = time.Now()
	}
	if err := s.put(ctx, r); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

// Complete marks the reminder done at the given time. Completing a reminder
// twice keeps the first completion time.
func (s *Store) Complete(ctx context.Context, id string, at time.Time) (Reminder, error) {
	raw, err := s.rdb.HGet(ctx, itemsKey, id).Result()
	if errors.Is(err, redis.Nil) {
		return Reminder{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Reminder{}, fmt.Errorf("failed to read reminder %s: %w", id, err)
	}
	var r Reminder
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return Reminder{}, fmt.Errorf("failed to decode reminder %s: %w", id, err)
	}
	if r.Completed {
		return r, nil
	}
	r.Completed = true
	r.CompletedAt = &at
	if err := s.put(ctx, r); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

func (s *Store) put(ctx context.Context, r Reminder) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode reminder %s: %w", r.ID, err)
	}
	if err := s.rdb.HSet(ctx, itemsKey, r.ID, string(payload)).Err(); err != nil {
		return fmt.Errorf("failed to store reminder %s: %w", r.ID, err)
	}
	return nil
}
