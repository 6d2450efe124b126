package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/itinerary"
	"github.com/pkordes/trip-builder/internal/observability"
)

// DraftStore keeps draft sessions in Redis under draft:<id>. Every load and
// save pushes the expiry out by ttl, so a draft lives ttl past its last use.
type DraftStore struct {
	c   *redis.Client
	ttl time.Duration
}

// NewDraftStore constructs a DraftStore.
func NewDraftStore(c *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{c: c, ttl: ttl}
}

func draftKey(id uuid.UUID) string { return "draft:" + id.String() }

// Load returns domain.ErrNotFound for an unknown or expired draft.
func (s *DraftStore) Load(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error) {
	b, err := s.c.GetEx(ctx, draftKey(id), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache("drafts", "miss")
		return nil, fmt.Errorf("draft %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("cache.DraftStore.Load: %w", err)
	}
	observability.ObserveCache("drafts", "hit")

	var d itinerary.Draft
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("cache.DraftStore.Load: decode: %w", err)
	}
	return &d, nil
}

// Save writes the whole draft. The last writer wins.
func (s *DraftStore) Save(ctx context.Context, d *itinerary.Draft) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("cache.DraftStore.Save: encode: %w", err)
	}
	observability.ObserveCache("drafts", "set")
	if err := s.c.Set(ctx, draftKey(d.ID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("cache.DraftStore.Save: %w", err)
	}
	return nil
}

// Delete removes a draft. Deleting an unknown draft is not an error.
func (s *DraftStore) Delete(ctx context.Context, id uuid.UUID) error {
	observability.ObserveCache("drafts", "del")
	if err := s.c.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("cache.DraftStore.Delete: %w", err)
	}
	return nil
}
