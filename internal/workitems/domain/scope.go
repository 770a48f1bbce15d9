package domain

import "github.com/google/uuid"

// Scope enumerates which items' time-spent entries a Trigger counts.
// A sum type, not a bitmask: Include and Exclude cannot overlap because
// only one variant is ever constructed (§9 "Scope semantics... cannot
// occur because the type is a sum").
type Scope interface {
	isScope()
	// Counts reports whether an entry naming these worked-on item ids
	// should be counted under this scope.
	Counts(workedOn []uuid.UUID) bool
}

// ScopeAll counts every time-spent entry.
type ScopeAll struct{}

func (ScopeAll) isScope() {}

func (ScopeAll) Counts(workedOn []uuid.UUID) bool { return true }

// ScopeInclude counts entries whose worked-on set intersects Items.
type ScopeInclude struct {
	Items []uuid.UUID
}

func (ScopeInclude) isScope() {}

func (s ScopeInclude) Counts(workedOn []uuid.UUID) bool {
	return intersects(s.Items, workedOn)
}

// ScopeExclude counts entries whose worked-on set contains none of Items.
type ScopeExclude struct {
	Items []uuid.UUID
}

func (ScopeExclude) isScope() {}

func (s ScopeExclude) Counts(workedOn []uuid.UUID) bool {
	return !intersects(s.Items, workedOn)
}

func intersects(a, b []uuid.UUID) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
