// Package engine implements the pure, synchronous evaluators C3-C7:
// readiness, urgency, review-due, action emission, and priority
// ranking. Every function here takes a snapshot.Snapshot plus now()
// and returns values; nothing here mutates the store or holds state
// across calls, per §5 "all computation in C2-C7 is synchronous and
// pure with respect to a snapshot."
package engine

import (
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/donow-app/donow/internal/workitems/snapshot"
	"github.com/google/uuid"
)

// IsReady implements C3: an item is ready iff every resolved
// dependency is inactive (§4.3).
func IsReady(snap *snapshot.Snapshot, node *snapshot.Node, now time.Time) bool {
	for _, dep := range node.DependenciesResolved {
		if IsDependencyActive(snap, dep, now) {
			return false
		}
	}
	return true
}

// IsDependencyActive implements the per-dependency activity predicate
// of §4.3.
func IsDependencyActive(snap *snapshot.Snapshot, dep domain.Dependency, now time.Time) bool {
	switch d := domain.NormalizeDependency(dep).(type) {
	case domain.AfterDateTime:
		return now.Before(d.At)
	case domain.UntilScheduled:
		return now.Before(d.Start)
	case domain.AfterItem:
		item, ok := snap.Items[d.ItemID]
		return ok && !item.IsFinished()
	case domain.AfterChildItem:
		item, ok := snap.Items[d.ItemID]
		return ok && !item.IsFinished()
	case domain.AfterEvent:
		ev, ok := snap.Events[d.EventID]
		return ok && !ev.Triggered
	case domain.WaitingToBeInterrupted:
		return true
	default:
		return false
	}
}

// IsReadyByID is a convenience wrapper for callers holding only an id.
func IsReadyByID(snap *snapshot.Snapshot, nodes map[uuid.UUID]*snapshot.Node, id uuid.UUID, now time.Time) bool {
	node, ok := nodes[id]
	if !ok {
		return false
	}
	return IsReady(snap, node, now)
}
