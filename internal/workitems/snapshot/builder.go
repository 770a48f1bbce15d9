package snapshot

import (
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// BuildNodes runs C2 over every item in snap, resolving parent/child
// chains and dependencies/urgency plans as of now. The result is a
// read-only map consumed by C3-C7; no further mutation or reference to
// snap.Items is required by callers.
func BuildNodes(snap *Snapshot, now time.Time) map[uuid.UUID]*Node {
	parentsOf := directParents(snap.Items)

	nodes := make(map[uuid.UUID]*Node, len(snap.Items))
	for id := range snap.Items {
		nodes[id] = &Node{
			ItemID:  id,
			Parents: parentsOf[id],
		}
	}

	for id, node := range nodes {
		node.ParentChain = walkParentChain(id, parentsOf)
		node.ChildrenNodes = walkChildrenChain(id, snap.Items)
		node.UrgencyPlanResolved = resolveUrgencyPlan(snap, id, now)
		node.DependenciesResolved = resolveDependencies(snap, id, node.UrgencyPlanResolved)
	}

	return nodes
}

// directParents derives, for every item id, the set of items whose
// Children list contains it (§4.2).
func directParents(items map[uuid.UUID]*domain.Item) map[uuid.UUID][]uuid.UUID {
	parentsOf := make(map[uuid.UUID][]uuid.UUID)
	for parentID, item := range items {
		for _, childID := range item.Children() {
			parentsOf[childID] = append(parentsOf[childID], parentID)
		}
	}
	return parentsOf
}

// walkParentChain collects every ancestor of id, guarding against
// cycles with a per-traversal visited set (§4.2 "Cycle policy").
func walkParentChain(id uuid.UUID, parentsOf map[uuid.UUID][]uuid.UUID) []uuid.UUID {
	visited := map[uuid.UUID]bool{id: true}
	var chain []uuid.UUID
	queue := append([]uuid.UUID{}, parentsOf[id]...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		chain = append(chain, cur)
		queue = append(queue, parentsOf[cur]...)
	}
	return chain
}

// walkChildrenChain collects every descendant of id in children-list
// order, guarding against cycles the same way as walkParentChain.
func walkChildrenChain(id uuid.UUID, items map[uuid.UUID]*domain.Item) []uuid.UUID {
	visited := map[uuid.UUID]bool{id: true}
	var chain []uuid.UUID
	var walk func(uuid.UUID)
	walk = func(cur uuid.UUID) {
		item, ok := items[cur]
		if !ok {
			return
		}
		for _, childID := range item.Children() {
			if visited[childID] {
				continue
			}
			visited[childID] = true
			chain = append(chain, childID)
			walk(childID)
		}
	}
	walk(id)
	return chain
}

// resolveDependencies returns the item's stored dependencies
// (DuringItem normalized to AfterItem) plus the synthetic dependencies
// described by §3 invariants 5-7.
func resolveDependencies(snap *Snapshot, id uuid.UUID, plan *domain.ResolvedUrgencyPlan) []domain.Dependency {
	item := snap.Items[id]
	resolved := make([]domain.Dependency, 0, len(item.Dependencies())+2)
	for _, d := range item.Dependencies() {
		resolved = append(resolved, domain.NormalizeDependency(d))
	}

	for _, childID := range ActiveChildren(snap.Items, id) {
		resolved = append(resolved, domain.AfterChildItem{ItemID: childID})
	}

	if item.IsReactive() {
		resolved = append(resolved, domain.WaitingToBeInterrupted{})
	}

	if plan != nil {
		if sched, ok := domain.ScheduleOf(plan.Current()); ok {
			resolved = append(resolved, domain.UntilScheduled{Start: sched.EarliestStart()})
		}
	}

	return resolved
}

// resolveUrgencyPlan enriches the item's stored UrgencyPlan with each
// trigger's is_triggered evaluation as of now, per §4.2.
func resolveUrgencyPlan(snap *Snapshot, id uuid.UUID, now time.Time) *domain.ResolvedUrgencyPlan {
	item := snap.Items[id]
	plan := item.UrgencyPlan()
	if plan == nil {
		return nil
	}

	escalating, ok := plan.(domain.WillEscalate)
	if !ok {
		return &domain.ResolvedUrgencyPlan{Plan: plan}
	}

	resolvedTriggers := make([]domain.ResolvedTrigger, len(escalating.Triggers))
	for i, t := range escalating.Triggers {
		resolvedTriggers[i] = domain.ResolvedTrigger{
			Trigger:     t,
			IsTriggered: EvaluateTrigger(snap, t, now),
		}
	}
	return &domain.ResolvedUrgencyPlan{Plan: plan, Triggers: resolvedTriggers}
}

// EvaluateTrigger implements the per-Trigger is_triggered predicate of
// §4.2, consulting the snapshot's time-spent log for the logged-work
// variants.
func EvaluateTrigger(snap *Snapshot, t domain.Trigger, now time.Time) bool {
	switch v := t.(type) {
	case domain.WallClockDateTime:
		return !now.Before(v.At)
	case domain.LoggedInvocationCount:
		return countLoggedEntries(snap, v.Starting, v.Scope) >= v.Count
	case domain.LoggedAmountOfTime:
		return sumLoggedDuration(snap, v.Starting, v.Scope) >= v.Duration
	default:
		return false
	}
}

func countLoggedEntries(snap *Snapshot, starting time.Time, scope domain.Scope) int {
	count := 0
	for _, entry := range snap.TimeSpentLog {
		if entry.StartedAt.Before(starting) {
			continue
		}
		if scope.Counts(entry.WorkedOn) {
			count++
		}
	}
	return count
}

func sumLoggedDuration(snap *Snapshot, starting time.Time, scope domain.Scope) time.Duration {
	var total time.Duration
	for _, entry := range snap.TimeSpentLog {
		if entry.StartedAt.Before(starting) {
			continue
		}
		if scope.Counts(entry.WorkedOn) {
			total += entry.StoppedAt.Sub(entry.StartedAt)
		}
	}
	return total
}
