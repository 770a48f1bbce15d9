package engine

import (
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/donow-app/donow/internal/workitems/snapshot"
	"github.com/google/uuid"
)

// EmitActions implements C6: for each active (unfinished) item, emits
// the urgent actions owed to it, per §4.6. Finished items emit none.
func EmitActions(snap *snapshot.Snapshot, nodes map[uuid.UUID]*snapshot.Node, itemID uuid.UUID, now time.Time) []domain.Action {
	item := snap.Items[itemID]
	if item == nil || item.IsFinished() {
		return nil
	}
	node := nodes[itemID]

	if item.Type() != domain.MotivationType && !node.HasActiveParent(snap.Items) {
		return []domain.Action{domain.ParentBackToAMotivation{ItemID: itemID}}
	}

	var actions []domain.Action

	if NeedsReviewFrequency(snap.Items, node, item) {
		actions = append(actions, domain.PickItemReviewFrequency{ItemID: itemID})
	}
	if NeedsReview(item, now) {
		actions = append(actions, domain.ReviewItem{ItemID: itemID})
	}

	urgency, hasPlan := CurrentUrgency(node)
	if !hasPlan {
		if len(ActiveChildren(snap.Items, itemID)) == 0 && !item.IsReactive() {
			actions = append(actions, domain.SetReadyAndUrgency{ItemID: itemID})
		}
		return actions
	}

	ready := IsReady(snap, node, now)
	switch u := urgency.(type) {
	case domain.InTheModeMaybeUrgent, domain.InTheModeDefinitelyUrgent,
		domain.MoreUrgentThanMode, domain.MoreUrgentThanAnythingIncludingScheduled:
		if ready {
			actions = append(actions, domain.MakeProgress{ItemID: itemID})
		}
	case domain.InTheModeScheduled:
		if ready && u.Schedule.HasArrived(now) {
			actions = append(actions, domain.MakeProgress{ItemID: itemID})
		}
	case domain.ScheduledAnyMode:
		if ready && u.Schedule.HasArrived(now) {
			actions = append(actions, domain.MakeProgress{ItemID: itemID})
		}
	case domain.InTheModeByImportance:
		// Not urgent: the Ranker discovers these via the importance walk.
	}

	return actions
}

// ActiveChildren is re-exported from snapshot for engine callers.
func ActiveChildren(items map[uuid.UUID]*domain.Item, itemID uuid.UUID) []uuid.UUID {
	return snapshot.ActiveChildren(items, itemID)
}
