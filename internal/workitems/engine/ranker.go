package engine

import (
	"sort"
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/donow-app/donow/internal/workitems/snapshot"
	"github.com/google/uuid"
)

// bucketIndex names the six urgency buckets of §4.7, in emission order.
type bucketIndex int

const (
	bucketMoreUrgentThanAnythingIncludingScheduled bucketIndex = iota
	bucketScheduledAnyMode
	bucketMoreUrgentThanMode
	bucketInTheModeScheduled
	bucketInTheModeDefinitelyUrgent
	bucketInTheModeMaybeUrgentOrByImportance
	bucketCount
)

// Rank implements C7: buckets every action the snapshot's active items
// emit, runs the B6 importance walk, applies in-the-moment priority
// overrides per bucket, and concatenates B1..B6 into the ordered
// do-now list.
func Rank(snap *snapshot.Snapshot, nodes map[uuid.UUID]*snapshot.Node, now time.Time) []domain.Action {
	buckets := make([][]domain.Action, bucketCount)

	for id, item := range snap.Items {
		if item.IsFinished() {
			continue
		}
		for _, action := range EmitActions(snap, nodes, id, now) {
			b := bucketFor(snap, nodes, action)
			buckets[b] = append(buckets[b], action)
		}
	}

	buckets[bucketInTheModeMaybeUrgentOrByImportance] = append(
		buckets[bucketInTheModeMaybeUrgentOrByImportance],
		importanceWalk(snap, nodes, now)...,
	)

	resolved := resolveActivePriorities(snap, now)

	result := make([]domain.Action, 0)
	for b := bucketIndex(0); b < bucketCount; b++ {
		sortActionsDeterministically(buckets[b])
		result = append(result, applyPriorities(buckets[b], resolved)...)
	}
	return result
}

// sortActionsDeterministically orders a bucket's actions so Rank's
// output does not depend on Go's randomized map iteration order
// (§8 "Ranker output is stable").
func sortActionsDeterministically(actions []domain.Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		ki, ti := actionSortKey(actions[i])
		kj, tj := actionSortKey(actions[j])
		if ki != kj {
			return ki < kj
		}
		return ti.String() < tj.String()
	})
}

func actionSortKey(a domain.Action) (int, uuid.UUID) {
	switch a.(type) {
	case domain.SetReadyAndUrgency:
		return 0, a.TargetItemID()
	case domain.ParentBackToAMotivation:
		return 1, a.TargetItemID()
	case domain.ReviewItem:
		return 2, a.TargetItemID()
	case domain.PickItemReviewFrequency:
		return 3, a.TargetItemID()
	case domain.MakeProgress:
		return 4, a.TargetItemID()
	default:
		return 5, a.TargetItemID()
	}
}

// bucketFor places an action in its urgency bucket, per the fixed
// elevation table of §4.7: review/set-urgency/parent actions use a
// fixed elevation rather than their item's raw urgency.
func bucketFor(snap *snapshot.Snapshot, nodes map[uuid.UUID]*snapshot.Node, action domain.Action) bucketIndex {
	switch action.(type) {
	case domain.ReviewItem, domain.PickItemReviewFrequency:
		return bucketInTheModeMaybeUrgentOrByImportance
	case domain.ParentBackToAMotivation:
		return bucketMoreUrgentThanMode
	case domain.SetReadyAndUrgency:
		return bucketInTheModeDefinitelyUrgent
	}

	node := nodes[action.TargetItemID()]
	if node == nil {
		return bucketInTheModeMaybeUrgentOrByImportance
	}
	urgency, ok := CurrentUrgency(node)
	if !ok {
		return bucketInTheModeMaybeUrgentOrByImportance
	}
	switch urgency.(type) {
	case domain.MoreUrgentThanAnythingIncludingScheduled:
		return bucketMoreUrgentThanAnythingIncludingScheduled
	case domain.ScheduledAnyMode:
		return bucketScheduledAnyMode
	case domain.MoreUrgentThanMode:
		return bucketMoreUrgentThanMode
	case domain.InTheModeScheduled:
		return bucketInTheModeScheduled
	case domain.InTheModeDefinitelyUrgent:
		return bucketInTheModeDefinitelyUrgent
	default:
		return bucketInTheModeMaybeUrgentOrByImportance
	}
}

// importanceWalk implements §4.7 Step 2: from each root, recursively
// pick the single most-important ready descendant by walking the
// children list in order. Each root contributes at most one
// MakeProgress action; blocked subtrees (no ready descendant) are
// dropped here, surfaced only in search views per spec.
//
// Only a descendant whose own current urgency is
// InTheModeByImportance is a valid pick: items with no urgency plan
// are already asking for one via SetReadyAndUrgency (§4.6), and items
// whose plan resolves to anything more urgent already emit their own
// MakeProgress in their own bucket — picking either here would
// duplicate an action across buckets, which §8's invariant forbids.
func importanceWalk(snap *snapshot.Snapshot, nodes map[uuid.UUID]*snapshot.Node, now time.Time) []domain.Action {
	var actions []domain.Action
	for id, item := range snap.Items {
		if item.IsFinished() {
			continue
		}
		node := nodes[id]
		if node.HasActiveParent(snap.Items) {
			continue
		}
		if picked, ok := pickMostImportantReadyDescendant(snap, nodes, id, now, map[uuid.UUID]bool{id: true}); ok {
			actions = append(actions, domain.MakeProgress{ItemID: picked})
		}
	}
	return actions
}

// isByImportanceCandidate reports whether node's current urgency
// resolves to InTheModeByImportance, the only urgency eligible for a
// walk-discovered MakeProgress.
func isByImportanceCandidate(node *snapshot.Node) bool {
	u, ok := CurrentUrgency(node)
	if !ok {
		return false
	}
	_, isByImportance := u.(domain.InTheModeByImportance)
	return isByImportance
}

// pickMostImportantReadyDescendant walks down from itemID preferring
// the first active, ready child in children-list order; if that child
// itself has active children, recursion continues into it; otherwise
// the child itself is the pick, provided it is urgency-eligible
// (isByImportanceCandidate). visited guards against cycles within a
// single root traversal (§4.2 "Cycle policy").
func pickMostImportantReadyDescendant(
	snap *snapshot.Snapshot,
	nodes map[uuid.UUID]*snapshot.Node,
	itemID uuid.UUID,
	now time.Time,
	visited map[uuid.UUID]bool,
) (uuid.UUID, bool) {
	activeChildren := ActiveChildren(snap.Items, itemID)
	for _, childID := range activeChildren {
		if visited[childID] {
			continue
		}
		visited[childID] = true

		childNode := nodes[childID]
		if !IsReady(snap, childNode, now) {
			continue
		}
		childActiveChildren := ActiveChildren(snap.Items, childID)
		if len(childActiveChildren) > 0 {
			if picked, ok := pickMostImportantReadyDescendant(snap, nodes, childID, now, visited); ok {
				return picked, true
			}
			continue
		}
		if isByImportanceCandidate(childNode) {
			return childID, true
		}
	}

	// No children (or none panned out): the item itself may be the pick
	// if it has no active children, is ready, and is urgency-eligible.
	if len(activeChildren) == 0 {
		if node := nodes[itemID]; node != nil && IsReady(snap, node, now) && isByImportanceCandidate(node) {
			return itemID, true
		}
	}
	return uuid.Nil, false
}

// resolvedPriority pairs an active declaration with its choice/not-chosen
// actions for the apply-priorities pass.
type resolvedPriority struct {
	priority domain.InTheMomentPriority
}

// resolveActivePriorities filters the snapshot's in-the-moment
// priorities to those still in effect (§3: active while no
// in_effect_until trigger has fired), in declaration order.
func resolveActivePriorities(snap *snapshot.Snapshot, now time.Time) []resolvedPriority {
	var active []resolvedPriority
	for _, p := range snap.InTheMomentPriorities {
		expiry := make([]domain.ResolvedTrigger, len(p.InEffectUntil))
		for i, t := range p.InEffectUntil {
			expiry[i] = domain.ResolvedTrigger{Trigger: t, IsTriggered: snapshot.EvaluateTrigger(snap, t, now)}
		}
		resolved := domain.ResolvedInTheMomentPriority{Priority: p, Expiry: expiry}
		if resolved.Active() {
			active = append(active, resolvedPriority{priority: p})
		}
	}
	return active
}

// applyPriorities implements §4.7 Step 3 for a single bucket's action
// set A, then Step 3's aftermath: |A|=1 emits that action, |A|>1
// synthesizes PickWhatShouldBeDoneFirst, |A|=0 yields nothing.
func applyPriorities(actions []domain.Action, priorities []resolvedPriority) []domain.Action {
	if len(actions) == 0 {
		return nil
	}
	a := append([]domain.Action{}, actions...)

	// Pass 1: Lowest priorities drop their choice if any not_chosen
	// member is absent from the bucket.
	for _, rp := range priorities {
		p := rp.priority
		if p.Kind != domain.Lowest {
			continue
		}
		if !containsAction(a, p.Choice) {
			continue
		}
		if anyMissing(a, p.NotChosen) {
			a = removeAction(a, p.Choice)
		}
	}

	// Pass 2: every Highest priority whose not_chosen intersects A drops
	// its not_chosen members from A, unless one of them is itself some
	// other declaration's own choice (so two picks never clobber each
	// other).
	for _, rp := range priorities {
		p := rp.priority
		if p.Kind != domain.Highest {
			continue
		}
		if !anyPresent(a, p.NotChosen) {
			continue
		}
		var filtered []domain.Action
		for _, act := range a {
			if containsAction(p.NotChosen, act) && !isChoiceOfOtherPriority(act, p, priorities) {
				continue
			}
			filtered = append(filtered, act)
		}
		a = filtered
	}

	switch len(a) {
	case 0:
		return nil
	case 1:
		return a
	default:
		return []domain.Action{domain.PickWhatShouldBeDoneFirst{Choices: a}}
	}
}

func containsAction(actions []domain.Action, target domain.Action) bool {
	for _, a := range actions {
		if domain.ActionsEqual(a, target) {
			return true
		}
	}
	return false
}

func anyMissing(actions []domain.Action, candidates []domain.Action) bool {
	for _, c := range candidates {
		if !containsAction(actions, c) {
			return true
		}
	}
	return false
}

func anyPresent(actions []domain.Action, candidates []domain.Action) bool {
	for _, c := range candidates {
		if containsAction(actions, c) {
			return true
		}
	}
	return false
}

func removeAction(actions []domain.Action, target domain.Action) []domain.Action {
	var out []domain.Action
	for _, a := range actions {
		if domain.ActionsEqual(a, target) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// isChoiceOfOtherPriority reports whether act is some other active
// declaration's own choice, per §4.7 Step 3.2's "also appears as a
// choice for some other ... declaration" retention rule.
func isChoiceOfOtherPriority(act domain.Action, current domain.InTheMomentPriority, all []resolvedPriority) bool {
	for _, rp := range all {
		if rp.priority.ID == current.ID {
			continue
		}
		if domain.ActionsEqual(act, rp.priority.Choice) {
			return true
		}
	}
	return false
}
