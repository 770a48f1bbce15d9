package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimeSpent is an immutable log record of work performed. Append-only:
// no command ever mutates or removes one.
type TimeSpent struct {
	ID               uuid.UUID
	StartedAt        time.Time
	StoppedAt        time.Time
	WorkedOn         []uuid.UUID
	UrgencyAtSelection Urgency
	Dedication       *string
}

// PriorityKind distinguishes whether an in-the-moment declaration
// favors or disfavors its choice relative to the rest of its bucket.
type PriorityKind int

const (
	Highest PriorityKind = iota
	Lowest
)

// InTheMomentPriority is a user-declared, time-bounded override that
// breaks ties between actions in the same urgency bucket. Append-only;
// each carries its own expiry trigger list.
type InTheMomentPriority struct {
	ID              uuid.UUID
	Choice          Action
	Kind            PriorityKind
	NotChosen       []Action
	InEffectUntil   []Trigger
	Created         time.Time
}

// ResolvedInTheMomentPriority pairs a stored priority with its expiry
// triggers' is_triggered evaluation.
type ResolvedInTheMomentPriority struct {
	Priority InTheMomentPriority
	Expiry   []ResolvedTrigger
}

// Active reports whether the override is still in effect: true while
// no InEffectUntil trigger has fired (§3: "An override is active while
// no in_effect_until trigger has fired").
func (r ResolvedInTheMomentPriority) Active() bool {
	for _, t := range r.Expiry {
		if t.IsTriggered {
			return false
		}
	}
	return true
}
