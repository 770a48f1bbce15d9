package snapshot

import (
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// Node is the per-item structure C2 builds: parent/child chains
// (cycle-safe), the dependency list enriched with synthetic entries
// (§3 invariants 5-7), and the urgency plan with each trigger's
// is_triggered evaluated as of the snapshot's now().
type Node struct {
	ItemID uuid.UUID

	// Parents are items whose Children list contains ItemID — derived,
	// never stored (§4.2).
	Parents []uuid.UUID

	// ParentChain is the growing tree up to roots, cycle-safe: each
	// ancestor id appears at most once per traversal.
	ParentChain []uuid.UUID

	// ChildrenNodes is the recursive shrinking tree of descendant ids
	// in children-list order, cycle-safe.
	ChildrenNodes []uuid.UUID

	// DependenciesResolved is the stored Dependency set plus synthetic
	// entries: AfterChildItem per active (unfinished) child,
	// WaitingToBeInterrupted if Reactive, UntilScheduled if the item's
	// urgency plan currently resolves to a Scheduled variant.
	DependenciesResolved []domain.Dependency

	// UrgencyPlanResolved is nil when the item has no urgency plan.
	UrgencyPlanResolved *domain.ResolvedUrgencyPlan
}

// HasActiveParent reports whether any direct parent is not finished,
// i.e. this item is not a root for the purposes of C6's
// ParentBackToAMotivation rule and C7's importance walk.
func (n *Node) HasActiveParent(items map[uuid.UUID]*domain.Item) bool {
	for _, pid := range n.Parents {
		if p, ok := items[pid]; ok && !p.IsFinished() {
			return true
		}
	}
	return false
}

// ActiveChildren returns the subset of direct children (in order) that
// are not finished, per the "active child" meaning used throughout §3
// (mirroring "AfterItem is active iff not finished").
func ActiveChildren(items map[uuid.UUID]*domain.Item, itemID uuid.UUID) []uuid.UUID {
	item, ok := items[itemID]
	if !ok {
		return nil
	}
	var active []uuid.UUID
	for _, childID := range item.Children() {
		if child, ok := items[childID]; ok && !child.IsFinished() {
			active = append(active, childID)
		}
	}
	return active
}
