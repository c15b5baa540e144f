// In file: internal/settings/settings.go

// Package settings reads and writes the small set of persisted values the
// tools need, kept in one Redis hash.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	hashKey = "settings"

	// ExaAPIKey is the field holding the web search API key.
	ExaAPIKey = "exa_api_key"

	accessPrefix  = "access:"
	accessGranted = "granted"
	accessDenied  = "denied"
)

// Personal data domains gated by RequestAccess.
const (
	AccessCalendar  = "calendar"
	AccessReminders = "reminders"
	AccessContacts  = "contacts"
)

// ErrAccessDenied means the user turned access to a domain off.
var ErrAccessDenied = errors.New("access denied")

// Store is a Redis-backed settings hash.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get returns the trimmed value of field, or "" when it is unset.
func (s *Store) Get(ctx context.Context, field string) (string, error) {
	value, err := s.rdb.HGet(ctx, hashKey, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", field, err)
	}
	return strings.TrimSpace(value), nil
}

// Set stores value under field. An empty value removes the field.
func (s *Store) Set(ctx context.Context, field, value string) error {
	value = strings.TrimSpace(value)
	var err error
	if value == "" {
		err = s.rdb.HDel(ctx, hashKey, field).Err()
	} else {
		err = s.rdb.HSet(ctx, hashKey, field, value).Err()
	}
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", field, err)
	}
	return nil
}

// Resolve returns override when it is non-empty and the stored field
// otherwise. A store failure with no override is returned as an error.
func (s *Store) Resolve(ctx context.Context, field, override string) (string, error) {
	if v := strings.TrimSpace(override); v != "" {
		return v, nil
	}
	return s.Get(ctx, field)
}

// RequestAccess checks the user's decision for domain. The first request
// for an undecided domain records a grant, the way a device permission
// prompt is only shown once; a recorded denial stays until SetAccess
// changes it.
func (s *Store) RequestAccess(ctx context.Context, domain string) error {
	field := accessPrefix + domain
	if err := s.rdb.HSetNX(ctx, hashKey, field, accessGranted).Err(); err != nil {
		return fmt.Errorf("failed to record %s access: %w", domain, err)
	}
	state, err := s.rdb.HGet(ctx, hashKey, field).Result()
	if err != nil {
		return fmt.Errorf("failed to read %s access: %w", domain, err)
	}
	if state == accessDenied {
		return fmt.Errorf("%w: %s", ErrAccessDenied, domain)
	}
	return nil
}

// SetAccess records the user's decision for domain.
func (s *Store) SetAccess(ctx context.Context, domain string, granted bool) error {
	state := accessDenied
	if granted {
		state = accessGranted
	}
	if err := s.rdb.HSet(ctx, hashKey, accessPrefix+domain, state).Err(); err != nil {
		return fmt.Errorf("failed to write %s access: %w", domain, err)
	}
	return nil
}
