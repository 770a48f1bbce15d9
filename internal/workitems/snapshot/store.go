// Package snapshot implements the Base Data loader (C1) and the Item
// Node Builder (C2): it turns persisted records into an in-memory,
// read-only Snapshot that the engine package evaluates. No mutable
// store access is threaded through evaluators, per §9 "Snapshot vs.
// mutation".
package snapshot

import (
	"fmt"
	"sort"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// Store is the read side the snapshot loader pulls from. Persistence
// adapters implement this directly against their repositories.
type Store interface {
	AllItems() (map[uuid.UUID]*domain.Item, error)
	AllEvents() (map[uuid.UUID]*domain.Event, error)
	AllTimeSpent() ([]domain.TimeSpent, error)
	AllInTheMomentPriorities() ([]domain.InTheMomentPriority, error)
}

// Snapshot is the Base Data materialization (C1): a read-only copy of
// every record, with O(1) lookup by id.
type Snapshot struct {
	Items                 map[uuid.UUID]*domain.Item
	Events                map[uuid.UUID]*domain.Event
	TimeSpentLog          []domain.TimeSpent // ordered by StartedAt
	InTheMomentPriorities []domain.InTheMomentPriority
}

// Load materializes a Snapshot from Store. Every reference from one
// record to another must resolve, or load fails with
// DanglingReferenceError (§4.1).
func Load(store Store) (*Snapshot, error) {
	items, err := store.AllItems()
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	events, err := store.AllEvents()
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	timeSpent, err := store.AllTimeSpent()
	if err != nil {
		return nil, fmt.Errorf("loading time spent log: %w", err)
	}
	priorities, err := store.AllInTheMomentPriorities()
	if err != nil {
		return nil, fmt.Errorf("loading in-the-moment priorities: %w", err)
	}

	sorted := make([]domain.TimeSpent, len(timeSpent))
	copy(sorted, timeSpent)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartedAt.Before(sorted[j].StartedAt)
	})

	snap := &Snapshot{
		Items:                 items,
		Events:                events,
		TimeSpentLog:          sorted,
		InTheMomentPriorities: priorities,
	}

	if err := snap.validateReferences(); err != nil {
		return nil, err
	}
	return snap, nil
}

// validateReferences walks every stored reference and fails fast with
// DanglingReferenceError the first time one does not resolve (§4.1).
func (s *Snapshot) validateReferences() error {
	for id, item := range s.Items {
		for _, childID := range item.Children() {
			if _, ok := s.Items[childID]; !ok {
				return &domain.DanglingReferenceError{From: id, To: childID}
			}
		}
		for _, dep := range item.Dependencies() {
			if err := s.validateDependencyReference(id, dep); err != nil {
				return err
			}
		}
		if err := s.validateUrgencyPlanReferences(id, item.UrgencyPlan()); err != nil {
			return err
		}
	}
	for _, priority := range s.InTheMomentPriorities {
		if err := s.validateActionReference(priority.Choice); err != nil {
			return err
		}
		for _, a := range priority.NotChosen {
			if err := s.validateActionReference(a); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Snapshot) validateDependencyReference(from uuid.UUID, dep domain.Dependency) error {
	switch d := domain.NormalizeDependency(dep).(type) {
	case domain.AfterItem:
		if _, ok := s.Items[d.ItemID]; !ok {
			return &domain.DanglingReferenceError{From: from, To: d.ItemID}
		}
	case domain.AfterEvent:
		if _, ok := s.Events[d.EventID]; !ok {
			return &domain.DanglingReferenceError{From: from, To: d.EventID}
		}
	}
	return nil
}

func (s *Snapshot) validateUrgencyPlanReferences(from uuid.UUID, plan domain.UrgencyPlan) error {
	escalating, ok := plan.(domain.WillEscalate)
	if !ok {
		return nil
	}
	for _, trig := range escalating.Triggers {
		if err := s.validateTriggerReferences(from, trig); err != nil {
			return err
		}
	}
	return nil
}

func (s *Snapshot) validateTriggerReferences(from uuid.UUID, trig domain.Trigger) error {
	var scope domain.Scope
	switch t := trig.(type) {
	case domain.LoggedInvocationCount:
		scope = t.Scope
	case domain.LoggedAmountOfTime:
		scope = t.Scope
	default:
		return nil
	}
	var ids []uuid.UUID
	switch sc := scope.(type) {
	case domain.ScopeInclude:
		ids = sc.Items
	case domain.ScopeExclude:
		ids = sc.Items
	}
	for _, id := range ids {
		if _, ok := s.Items[id]; !ok {
			return &domain.DanglingReferenceError{From: from, To: id}
		}
	}
	return nil
}

func (s *Snapshot) validateActionReference(a domain.Action) error {
	if a == nil {
		return nil
	}
	if pick, ok := a.(domain.PickWhatShouldBeDoneFirst); ok {
		for _, choice := range pick.Choices {
			if err := s.validateActionReference(choice); err != nil {
				return err
			}
		}
		return nil
	}
	id := a.TargetItemID()
	if id == uuid.Nil {
		return nil
	}
	if _, ok := s.Items[id]; !ok {
		return &domain.DanglingReferenceError{From: id, To: id}
	}
	return nil
}
