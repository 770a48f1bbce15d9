// Package cache provides a Redis-backed read-through cache in front of
// the C1-C7 do-now list pipeline, grounded on the teacher's Redis
// StorageAPIImpl: namespaced keys, TTL-bounded Set, redis.Nil as the
// cache-miss signal.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/donow-app/donow/internal/workitems/application/queries"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a do-now list snapshot is trusted before
// a cache miss forces recomputation, independent of explicit invalidation.
const DefaultTTL = 2 * time.Minute

// doNowListHandler is the subset of GetDoNowListHandler the cache wraps.
type doNowListHandler interface {
	Handle(ctx context.Context, query queries.GetDoNowListQuery) ([]queries.ActionDTO, error)
}

// DoNowListCache wraps a GetDoNowListHandler with a Redis read-through
// cache keyed per user. Nothing here can tell a stale entry from a fresh
// one on its own: an entry lives until its TTL expires or Invalidate
// evicts it.
type DoNowListCache struct {
	client *redis.Client
	next   doNowListHandler
	ttl    time.Duration
}

// NewDoNowListCache wraps next with a Redis cache using ttl (DefaultTTL if zero).
func NewDoNowListCache(client *redis.Client, next doNowListHandler, ttl time.Duration) *DoNowListCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DoNowListCache{client: client, next: next, ttl: ttl}
}

func cacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("donow:do_now_list:%s", userID.String())
}

// Handle serves GetDoNowListQuery from cache when present, otherwise
// computes it via next and populates the cache before returning.
func (c *DoNowListCache) Handle(ctx context.Context, query queries.GetDoNowListQuery) ([]queries.ActionDTO, error) {
	key := cacheKey(query.UserID)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var dtos []queries.ActionDTO
		if unmarshalErr := json.Unmarshal(raw, &dtos); unmarshalErr == nil {
			return dtos, nil
		}
		// Corrupt cache entry: fall through and recompute.
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	dtos, err := c.next.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	if raw, marshalErr := json.Marshal(dtos); marshalErr == nil {
		_ = c.client.Set(ctx, key, raw, c.ttl).Err()
	}

	return dtos, nil
}

// Invalidate evicts the cached do-now list for userID. Its caller is
// eventbus.CacheInvalidationConsumer, on the routing keys listed in its
// EventTypes (item finished, event triggered/untriggered, in-the-moment
// priority added); the command handlers do not call it.
func (c *DoNowListCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	err := c.client.Del(ctx, cacheKey(userID)).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
