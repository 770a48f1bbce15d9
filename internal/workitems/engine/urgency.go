package engine

import (
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/donow-app/donow/internal/workitems/snapshot"
)

// CurrentUrgency implements C4: collapses an item's resolved urgency
// plan to a single current Urgency. Items without a plan return
// (nil, false) — they are candidates for SetReadyAndUrgency (§4.6)
// rather than ranked as "do now" (§4.4).
func CurrentUrgency(node *snapshot.Node) (domain.Urgency, bool) {
	if node.UrgencyPlanResolved == nil {
		return nil, false
	}
	u := node.UrgencyPlanResolved.Current()
	if u == nil {
		return nil, false
	}
	return u, true
}

// HasScheduledTimeArrived implements the §4.4 "scheduled time has
// arrived" predicate for a Scheduled-carrying Urgency.
func HasScheduledTimeArrived(u domain.Urgency, now time.Time) bool {
	sched, ok := domain.ScheduleOf(u)
	if !ok {
		return false
	}
	return sched.HasArrived(now)
}
