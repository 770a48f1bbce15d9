package domain

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository persists and retrieves Item aggregates, grounded on
// the teacher's narrow per-aggregate Repository interface style.
type ItemRepository interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Item, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*Item, error)
	Save(ctx context.Context, userID uuid.UUID, item *Item) error
}

// EventRepository persists and retrieves Event records.
type EventRepository interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Event, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*Event, error)
	Save(ctx context.Context, userID uuid.UUID, event *Event) error
}

// TimeSpentRepository persists the append-only time-spent log.
type TimeSpentRepository interface {
	Append(ctx context.Context, userID uuid.UUID, entry TimeSpent) error
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]TimeSpent, error)
}

// InTheMomentPriorityRepository persists the append-only priority log.
type InTheMomentPriorityRepository interface {
	Append(ctx context.Context, userID uuid.UUID, priority InTheMomentPriority) error
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]InTheMomentPriority, error)
}
