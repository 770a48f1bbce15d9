package commands

import (
	"context"
	"time"

	sharedapp "github.com/donow-app/donow/internal/shared/application"
	shareddomain "github.com/donow-app/donow/internal/shared/domain"
	"github.com/donow-app/donow/internal/shared/infrastructure/outbox"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// EventHandler handles TriggerEvent and UntriggerEvent (§4.8).
type EventHandler struct {
	events     domain.EventRepository
	outboxRepo outbox.Repository
	uow        sharedapp.UnitOfWork
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(events domain.EventRepository, outboxRepo outbox.Repository, uow sharedapp.UnitOfWork) *EventHandler {
	return &EventHandler{events: events, outboxRepo: outboxRepo, uow: uow}
}

// TriggerEventCommand flips an event's triggered flag on.
type TriggerEventCommand struct {
	UserID  uuid.UUID
	EventID uuid.UUID
	When    time.Time
}

// HandleTrigger applies TriggerEventCommand, raising
// EventTriggeredEvent.
func (h *EventHandler) HandleTrigger(ctx context.Context, cmd TriggerEventCommand) error {
	return sharedapp.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		ev, err := h.events.FindByID(txCtx, cmd.UserID, cmd.EventID)
		if err != nil {
			return err
		}
		if ev == nil {
			return domain.ErrEventNotFound
		}

		ev.Trigger(cmd.When)

		if err := h.events.Save(txCtx, cmd.UserID, ev); err != nil {
			return err
		}

		readBack, err := h.events.FindByID(txCtx, cmd.UserID, cmd.EventID)
		if err != nil {
			return err
		}
		if readBack == nil || !readBack.Triggered {
			return &domain.StoreMismatchError{ItemID: cmd.EventID, Reason: "event not triggered after TriggerEvent"}
		}

		return publishEvents(txCtx, h.outboxRepo, cmd.UserID, []shareddomain.DomainEvent{domain.NewEventTriggeredEvent(cmd.EventID, cmd.When)})
	})
}

// UntriggerEventCommand flips an event's triggered flag off.
type UntriggerEventCommand struct {
	UserID  uuid.UUID
	EventID uuid.UUID
	When    time.Time
}

// HandleUntrigger applies UntriggerEventCommand, raising
// EventUntriggeredEvent.
func (h *EventHandler) HandleUntrigger(ctx context.Context, cmd UntriggerEventCommand) error {
	return sharedapp.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		ev, err := h.events.FindByID(txCtx, cmd.UserID, cmd.EventID)
		if err != nil {
			return err
		}
		if ev == nil {
			return domain.ErrEventNotFound
		}

		ev.Untrigger(cmd.When)

		if err := h.events.Save(txCtx, cmd.UserID, ev); err != nil {
			return err
		}

		readBack, err := h.events.FindByID(txCtx, cmd.UserID, cmd.EventID)
		if err != nil {
			return err
		}
		if readBack == nil || readBack.Triggered {
			return &domain.StoreMismatchError{ItemID: cmd.EventID, Reason: "event still triggered after UntriggerEvent"}
		}

		return publishEvents(txCtx, h.outboxRepo, cmd.UserID, []shareddomain.DomainEvent{domain.NewEventUntriggeredEvent(cmd.EventID, cmd.When)})
	})
}
