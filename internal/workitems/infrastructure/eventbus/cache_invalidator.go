// Package eventbus wires workitems domain events into the shared
// outbox/eventbus pipeline, grounded on the teacher's
// shared/infrastructure/eventbus.EventConsumer pattern.
package eventbus

import (
	"context"

	"github.com/donow-app/donow/internal/shared/infrastructure/eventbus"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// invalidator is the subset of cache.DoNowListCache this consumer needs.
// Declared locally so this package does not import the cache package
// back (cache wraps the query handler, this consumer reacts to events
// published after commands run — the dependency only needs to go one way).
type invalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// CacheInvalidationConsumer evicts a user's cached do-now list whenever
// one of the workitems routing keys fires, so the next GetDoNowList
// read recomputes instead of serving a stale snapshot.
type CacheInvalidationConsumer struct {
	cache invalidator
}

// NewCacheInvalidationConsumer creates a consumer that invalidates cache on the workitems routing keys.
func NewCacheInvalidationConsumer(cache invalidator) *CacheInvalidationConsumer {
	return &CacheInvalidationConsumer{cache: cache}
}

// EventTypes returns the routing keys this consumer reacts to.
func (c *CacheInvalidationConsumer) EventTypes() []string {
	return []string{
		domain.RoutingKeyItemFinished,
		domain.RoutingKeyEventTriggered,
		domain.RoutingKeyEventUntriggered,
		domain.RoutingKeyInTheMomentPriorityAdded,
	}
}

// Handle invalidates the cache for the event's user.
func (c *CacheInvalidationConsumer) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	if event.Metadata.UserID == (uuid.UUID{}) {
		return nil
	}
	return c.cache.Invalidate(ctx, event.Metadata.UserID)
}
