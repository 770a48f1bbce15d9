package domain

import (
	"time"

	"github.com/google/uuid"
)

// Dependency is a tagged sum type: while active, it blocks its owning
// item from being ready. Concrete cases implement isDependency so no
// polymorphic base "dependency" abstraction is needed.
type Dependency interface {
	isDependency()
}

// AfterDateTime is active while now is before t.
type AfterDateTime struct {
	At time.Time
}

func (AfterDateTime) isDependency() {}

// AfterItem is active while the referenced item is unfinished.
type AfterItem struct {
	ItemID uuid.UUID
}

func (AfterItem) isDependency() {}

// AfterEvent is active while the referenced event has not triggered.
type AfterEvent struct {
	EventID uuid.UUID
}

func (AfterEvent) isDependency() {}

// DuringItem is deprecated: stored records may still carry it, but it is
// always treated as AfterItem for readiness. New commands never
// construct one; existing ones are never deleted from the store.
type DuringItem struct {
	ItemID uuid.UUID
}

func (DuringItem) isDependency() {}

// AfterChildItem is synthetic, never stored: C2 derives one per active
// child so an item with active children is never ready (§3 invariant 5).
type AfterChildItem struct {
	ItemID uuid.UUID
}

func (AfterChildItem) isDependency() {}

// WaitingToBeInterrupted is synthetic, never stored: present on every
// Reactive item so it never appears ready (§3 invariant 6).
type WaitingToBeInterrupted struct{}

func (WaitingToBeInterrupted) isDependency() {}

// UntilScheduled is synthetic, never stored: present whenever the
// item's urgency is a Scheduled variant, blocking until its earliest
// start (§3 invariant 7).
type UntilScheduled struct {
	Start time.Time
}

func (UntilScheduled) isDependency() {}

// NormalizeDependency maps the deprecated DuringItem to its AfterItem
// equivalent for readiness purposes, per §9 "Deprecated DuringItem".
func NormalizeDependency(d Dependency) Dependency {
	if during, ok := d.(DuringItem); ok {
		return AfterItem{ItemID: during.ItemID}
	}
	return d
}
