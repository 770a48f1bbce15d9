package engine

import (
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// fakeStore is a minimal snapshot.Store double, mirroring the one used
// by the snapshot package's own tests.
type fakeStore struct {
	items      map[uuid.UUID]*domain.Item
	events     map[uuid.UUID]*domain.Event
	timeSpent  []domain.TimeSpent
	priorities []domain.InTheMomentPriority
}

func (f *fakeStore) AllItems() (map[uuid.UUID]*domain.Item, error)  { return f.items, nil }
func (f *fakeStore) AllEvents() (map[uuid.UUID]*domain.Event, error) { return f.events, nil }
func (f *fakeStore) AllTimeSpent() ([]domain.TimeSpent, error)       { return f.timeSpent, nil }
func (f *fakeStore) AllInTheMomentPriorities() ([]domain.InTheMomentPriority, error) {
	return f.priorities, nil
}

func newEmptyStore() *fakeStore {
	return &fakeStore{
		items:  map[uuid.UUID]*domain.Item{},
		events: map[uuid.UUID]*domain.Event{},
	}
}
