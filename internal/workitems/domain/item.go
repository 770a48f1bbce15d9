package domain

import (
	"time"

	shareddomain "github.com/donow-app/donow/internal/shared/domain"
	"github.com/google/uuid"
)

// ItemAggregateType names the aggregate for domain-event routing,
// following the teacher's task.AggregateType constant pattern.
const ItemAggregateType = "workitem.item"

const (
	RoutingKeyItemFinished              = "workitem.item.finished"
	RoutingKeyEventTriggered            = "workitem.event.triggered"
	RoutingKeyEventUntriggered          = "workitem.event.untriggered"
	RoutingKeyInTheMomentPriorityAdded  = "workitem.priority.declared"
)

// ItemFinishedEvent is raised when FinishItem sets finished for the
// first time, for publication via the eventbus/outbox.
type ItemFinishedEvent struct {
	shareddomain.BaseEvent
	FinishedAt time.Time
}

// NewItemFinishedEvent constructs an ItemFinishedEvent.
func NewItemFinishedEvent(itemID uuid.UUID, finishedAt time.Time) *ItemFinishedEvent {
	return &ItemFinishedEvent{
		BaseEvent:  shareddomain.NewBaseEvent(itemID, ItemAggregateType, RoutingKeyItemFinished),
		FinishedAt: finishedAt,
	}
}

// Item is the central entity (§3). It embeds the shared domain kernel's
// BaseAggregateRoot for identity/versioning and so that Finish can raise
// ItemFinishedEvent; every other field patch is a plain setter with no
// event. The event trigger/untrigger and in-the-moment priority events
// are built by their command handlers, not raised by Item.
type Item struct {
	shareddomain.BaseAggregateRoot

	summary        string
	created        time.Time
	finished       *time.Time
	itemType       ItemType
	goalControl    GoalControl
	motivationKind MotivationKind
	responsibility Responsibility

	children     []uuid.UUID
	dependencies []Dependency
	urgencyPlan  UrgencyPlan

	reviewFrequency Frequency
	reviewGuidance  ReviewGuidance
	lastReviewed    *time.Time

	notesLocation *string
	facing        Facing
	permanence    Permanence
}

// NewItem creates a freshly Undeclared item, per §3 "Items are created
// Undeclared; typed by a later command."
func NewItem(summary string) *Item {
	now := time.Now().UTC()
	return &Item{
		BaseAggregateRoot: shareddomain.NewBaseAggregateRoot(),
		summary:           summary,
		created:           now,
		itemType:          Undeclared,
		responsibility:    ProactiveActionToTake,
		children:          []uuid.UUID{},
		dependencies:      []Dependency{},
	}
}

// RehydrateItem recreates an Item from persisted fields.
func RehydrateItem(
	entity shareddomain.BaseEntity,
	version int,
	summary string,
	created time.Time,
	finished *time.Time,
	itemType ItemType,
	goalControl GoalControl,
	motivationKind MotivationKind,
	responsibility Responsibility,
	children []uuid.UUID,
	dependencies []Dependency,
	urgencyPlan UrgencyPlan,
	reviewFrequency Frequency,
	reviewGuidance ReviewGuidance,
	lastReviewed *time.Time,
	notesLocation *string,
	facing Facing,
	permanence Permanence,
) *Item {
	return &Item{
		BaseAggregateRoot: shareddomain.RehydrateBaseAggregateRoot(entity, version),
		summary:           summary,
		created:           created,
		finished:          finished,
		itemType:          itemType,
		goalControl:       goalControl,
		motivationKind:    motivationKind,
		responsibility:    responsibility,
		children:          children,
		dependencies:      dependencies,
		urgencyPlan:       urgencyPlan,
		reviewFrequency:   reviewFrequency,
		reviewGuidance:    reviewGuidance,
		lastReviewed:      lastReviewed,
		notesLocation:     notesLocation,
		facing:            facing,
		permanence:        permanence,
	}
}

// Accessors.

func (i *Item) Summary() string             { return i.summary }
func (i *Item) Created() time.Time          { return i.created }
func (i *Item) Finished() *time.Time        { return i.finished }
func (i *Item) IsFinished() bool            { return i.finished != nil }
func (i *Item) Type() ItemType              { return i.itemType }
func (i *Item) GoalControl() GoalControl    { return i.goalControl }
func (i *Item) MotivationKind() MotivationKind { return i.motivationKind }
func (i *Item) Responsibility() Responsibility { return i.responsibility }
func (i *Item) Children() []uuid.UUID       { return i.children }
func (i *Item) Dependencies() []Dependency  { return i.dependencies }
func (i *Item) UrgencyPlan() UrgencyPlan    { return i.urgencyPlan }
func (i *Item) ReviewFrequency() Frequency  { return i.reviewFrequency }
func (i *Item) ReviewGuidance() ReviewGuidance { return i.reviewGuidance }
func (i *Item) LastReviewed() *time.Time    { return i.lastReviewed }
func (i *Item) NotesLocation() *string      { return i.notesLocation }
func (i *Item) Facing() Facing              { return i.facing }
func (i *Item) Permanence() Permanence      { return i.permanence }

// IsTypeGoal and IsGoal are kept as synonymous aliasing methods per
// §9's open question: the source defines both names with no behavior
// difference.
func (i *Item) IsTypeGoal() bool { return i.itemType == GoalType }
func (i *Item) IsGoal() bool     { return i.itemType == GoalType }

// IsTypeMotivationKind reports whether the item is a Motivation,
// another aliasing synonym per §9.
func (i *Item) IsTypeMotivationKind() bool { return i.itemType == MotivationType }

func (i *Item) IsReactive() bool { return i.responsibility == ReactiveBeAvailableToAct }

// Mutators. Items are mutated freely (summary, type, dependencies,
// urgency plan, children order, review fields) until finished, per §3
// "Lifecycles". Callers are expected to reject mutation against a
// finished item with ErrAlreadyFinished before reaching these, except
// where the command itself is defined to remain legal post-finish.

func (i *Item) SetSummary(summary string) error {
	if i.IsFinished() {
		return ErrAlreadyFinished
	}
	i.summary = summary
	i.Touch()
	return nil
}

func (i *Item) SetType(t ItemType) error {
	if i.IsFinished() {
		return ErrAlreadyFinished
	}
	i.itemType = t
	i.Touch()
	return nil
}

func (i *Item) SetGoalControl(c GoalControl) error {
	if i.IsFinished() {
		return ErrAlreadyFinished
	}
	i.goalControl = c
	i.Touch()
	return nil
}

func (i *Item) SetMotivationKind(k MotivationKind) error {
	if i.IsFinished() {
		return ErrAlreadyFinished
	}
	i.motivationKind = k
	i.Touch()
	return nil
}

func (i *Item) SetResponsibility(r Responsibility) error {
	if i.IsFinished() {
		return ErrAlreadyFinished
	}
	i.responsibility = r
	i.Touch()
	return nil
}

func (i *Item) SetUrgencyPlan(p UrgencyPlan) error {
	if i.IsFinished() {
		return ErrAlreadyFinished
	}
	i.urgencyPlan = p
	i.Touch()
	return nil
}

func (i *Item) SetReviewFrequency(f Frequency) error {
	if i.IsFinished() {
		return ErrAlreadyFinished
	}
	i.reviewFrequency = f
	i.Touch()
	return nil
}

func (i *Item) SetReviewGuidance(g ReviewGuidance) error {
	if i.IsFinished() {
		return ErrAlreadyFinished
	}
	i.reviewGuidance = g
	i.Touch()
	return nil
}

func (i *Item) SetLastReviewed(when time.Time) error {
	if i.IsFinished() {
		return ErrAlreadyFinished
	}
	i.lastReviewed = &when
	i.Touch()
	return nil
}

func (i *Item) SetNotesLocation(location string) error {
	if i.IsFinished() {
		return ErrAlreadyFinished
	}
	i.notesLocation = &location
	i.Touch()
	return nil
}

func (i *Item) SetFacing(f Facing) error {
	if i.IsFinished() {
		return ErrAlreadyFinished
	}
	i.facing = f
	i.Touch()
	return nil
}

func (i *Item) SetPermanence(p Permanence) error {
	if i.IsFinished() {
		return ErrAlreadyFinished
	}
	i.permanence = p
	i.Touch()
	return nil
}

// Finish sets finished, raising ItemFinishedEvent once (§3 invariant
// 3: monotonic, set once). A second call with the same timestamp is a
// no-op per §4.8 FinishItem; a different timestamp overwrites without
// re-raising the event (the aggregate has already announced it is
// finished; only the first transition is news to subscribers).
func (i *Item) Finish(when time.Time) {
	firstTime := i.finished == nil
	i.finished = &when
	i.Touch()
	if firstTime {
		i.AddDomainEvent(NewItemFinishedEvent(i.ID(), when))
	}
}

// AddChild inserts childID into the children list, either before the
// `before` sibling or at the tail, per ParentItemWithExistingItem
// (§4.8). If childID is already present it is first removed, so
// reparenting and reordering share one code path. Returns
// PositionNotFoundError if `before` is non-nil and not already a child.
func (i *Item) AddChild(childID uuid.UUID, before *uuid.UUID) error {
	i.RemoveChild(childID)

	if before == nil {
		i.children = append(i.children, childID)
		i.Touch()
		return nil
	}

	idx := -1
	for pos, id := range i.children {
		if id == *before {
			idx = pos
			break
		}
	}
	if idx == -1 {
		return &PositionNotFoundError{Parent: i.ID(), Before: *before}
	}
	i.children = append(i.children[:idx:idx], append([]uuid.UUID{childID}, i.children[idx:]...)...)
	i.Touch()
	return nil
}

// RemoveChild removes childID from the children list if present.
// Idempotent: a second call is a no-op, matching
// ParentItemRemoveParent's "remove entry" contract.
func (i *Item) RemoveChild(childID uuid.UUID) {
	for idx, id := range i.children {
		if id == childID {
			i.children = append(i.children[:idx], i.children[idx+1:]...)
			i.Touch()
			return
		}
	}
}

// HasChild reports whether childID is currently one of this item's
// children.
func (i *Item) HasChild(childID uuid.UUID) bool {
	for _, id := range i.children {
		if id == childID {
			return true
		}
	}
	return false
}

// AddDependency idempotently adds d to the dependency set, per
// AddItemDependency (§4.8, §8 "Idempotence").
func (i *Item) AddDependency(d Dependency) {
	d = NormalizeDependency(d)
	if i.HasDependency(d) {
		return
	}
	i.dependencies = append(i.dependencies, d)
	i.Touch()
}

// RemoveDependency idempotently removes d from the dependency set.
func (i *Item) RemoveDependency(d Dependency) {
	d = NormalizeDependency(d)
	for idx, existing := range i.dependencies {
		if dependenciesEqual(existing, d) {
			i.dependencies = append(i.dependencies[:idx], i.dependencies[idx+1:]...)
			i.Touch()
			return
		}
	}
}

// HasDependency reports whether d (or its normalized equivalent) is
// already present.
func (i *Item) HasDependency(d Dependency) bool {
	d = NormalizeDependency(d)
	for _, existing := range i.dependencies {
		if dependenciesEqual(existing, d) {
			return true
		}
	}
	return false
}

func dependenciesEqual(a, b Dependency) bool {
	switch av := a.(type) {
	case AfterDateTime:
		bv, ok := b.(AfterDateTime)
		return ok && av.At.Equal(bv.At)
	case AfterItem:
		bv, ok := b.(AfterItem)
		return ok && av.ItemID == bv.ItemID
	case AfterEvent:
		bv, ok := b.(AfterEvent)
		return ok && av.EventID == bv.EventID
	case DuringItem:
		bv, ok := b.(DuringItem)
		return ok && av.ItemID == bv.ItemID
	default:
		return false
	}
}
