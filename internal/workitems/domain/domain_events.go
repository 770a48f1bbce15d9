package domain

import (
	"time"

	shareddomain "github.com/donow-app/donow/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	EventAggregateType    = "workitem.event"
	PriorityAggregateType = "workitem.priority"
)

// EventTriggeredEvent is raised by TriggerEvent (§4.8).
type EventTriggeredEvent struct {
	shareddomain.BaseEvent
	TriggeredAt time.Time
}

// NewEventTriggeredEvent constructs an EventTriggeredEvent.
func NewEventTriggeredEvent(eventID uuid.UUID, at time.Time) *EventTriggeredEvent {
	return &EventTriggeredEvent{
		BaseEvent:   shareddomain.NewBaseEvent(eventID, EventAggregateType, RoutingKeyEventTriggered),
		TriggeredAt: at,
	}
}

// EventUntriggeredEvent is raised by UntriggerEvent (§4.8).
type EventUntriggeredEvent struct {
	shareddomain.BaseEvent
	UntriggeredAt time.Time
}

// NewEventUntriggeredEvent constructs an EventUntriggeredEvent.
func NewEventUntriggeredEvent(eventID uuid.UUID, at time.Time) *EventUntriggeredEvent {
	return &EventUntriggeredEvent{
		BaseEvent:     shareddomain.NewBaseEvent(eventID, EventAggregateType, RoutingKeyEventUntriggered),
		UntriggeredAt: at,
	}
}

// InTheMomentPriorityDeclaredEvent is raised by
// DeclareInTheMomentPriority (§4.8).
type InTheMomentPriorityDeclaredEvent struct {
	shareddomain.BaseEvent
	PriorityID uuid.UUID
}

// NewInTheMomentPriorityDeclaredEvent constructs an
// InTheMomentPriorityDeclaredEvent.
func NewInTheMomentPriorityDeclaredEvent(priorityID uuid.UUID) *InTheMomentPriorityDeclaredEvent {
	return &InTheMomentPriorityDeclaredEvent{
		BaseEvent:  shareddomain.NewBaseEvent(priorityID, PriorityAggregateType, RoutingKeyInTheMomentPriorityAdded),
		PriorityID: priorityID,
	}
}
