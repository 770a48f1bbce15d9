package domain

import "time"

// Trigger is a predicate over time and/or logged work that flips
// monotonically from false to true.
type Trigger interface {
	isTrigger()
}

// WallClockDateTime triggers once now has reached At.
type WallClockDateTime struct {
	At time.Time
}

func (WallClockDateTime) isTrigger() {}

// LoggedInvocationCount triggers once at least Count time-spent entries
// started on or after Starting fall within Scope.
type LoggedInvocationCount struct {
	Starting time.Time
	Count    int
	Scope    Scope
}

func (LoggedInvocationCount) isTrigger() {}

// LoggedAmountOfTime triggers once the sum of durations of time-spent
// entries started on or after Starting, within Scope, reaches Duration.
type LoggedAmountOfTime struct {
	Starting time.Time
	Duration time.Duration
	Scope    Scope
}

func (LoggedAmountOfTime) isTrigger() {}

// ResolvedTrigger pairs a stored Trigger with its is_triggered
// evaluation as of a given now(), per §4.2.
type ResolvedTrigger struct {
	Trigger    Trigger
	IsTriggered bool
}
