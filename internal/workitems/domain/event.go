package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a user-visible flag an item's dependency can wait on,
// independent of the shared/domain.DomainEvent event-sourcing concept.
type Event struct {
	ID          uuid.UUID
	Summary     string
	Triggered   bool
	LastUpdated time.Time
}

// Trigger flips Triggered to true and stamps LastUpdated, per the
// TriggerEvent command (§4.8). No-op, with LastUpdated still advanced,
// if already triggered.
func (e *Event) Trigger(when time.Time) {
	e.Triggered = true
	e.LastUpdated = when
}

// Untrigger flips Triggered to false and stamps LastUpdated, per the
// UntriggerEvent command (§4.8).
func (e *Event) Untrigger(when time.Time) {
	e.Triggered = false
	e.LastUpdated = when
}
