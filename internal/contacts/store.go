// In file: internal/contacts/store.go
package contacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cardsKey = "contacts:cards"

// Store keeps contacts as JSON values in one hash keyed by contact ID.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Available reports whether Redis answers a PING.
func (s *Store) Available(ctx context.Context) bool {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Contact store unavailable: %v", err)
		return false
	}
	return true
}

// Search returns up to limit contacts matching query case-insensitively,
// sorted by full name. A limit of 0 or less means no limit.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Contact, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, errors.New("search query cannot be empty")
	}
	values, err := s.rdb.HVals(ctx, cardsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts: %w", err)
	}
	var matches []Contact
	for _, v := range values {
		var c Contact
		if err := json.Unmarshal([]byte(v), &c); err != nil {
			return nil, fmt.Errorf("failed to decode contact: %w", err)
		}
		if c.Matches(query) {
			matches = append(matches, c)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := strings.ToLower(matches[i].FullName()), strings.ToLower(matches[j].FullName())
		if a != b {
			return a < b
		}
		return matches[i].ID < matches[j].ID
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Add stores contacts, generating IDs for those without one. Re-adding a
// contact with the same ID replaces it.
func (s *Store) Add(ctx context.Context, cards ...Contact) ([]Contact, error) {
	stored := make([]Contact, len(cards))
	pipe := s.rdb.Pipeline()
	for i, c := range cards {
		if c.FullName() == "" {
			return nil, fmt.Errorf("contact %d has no name or organization", i)
		}
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		payload, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("failed to encode contact %s: %w", c.ID, err)
		}
		pipe.HSet(ctx, cardsKey, c.ID, string(payload))
		stored[i] = c
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to store contacts: %w", err)
	}
	return stored, nil
}
