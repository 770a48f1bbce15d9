package commands

import (
	"context"
	"fmt"

	sharedapp "github.com/donow-app/donow/internal/shared/application"
	"github.com/donow-app/donow/internal/shared/infrastructure/outbox"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// NewItemCommand inserts a fresh Undeclared item, per §4.8 "NewItem(spec)
// → inserts; resolves any AfterEvent(new) dependencies by creating the
// event first."
type NewItemCommand struct {
	UserID     uuid.UUID
	Summary    string
	NewEvent   *NewEventSpec // non-nil when an AfterEvent(new) dependency must be created first
}

// NewEventSpec describes an event to create atomically alongside the
// item, for an AfterEvent dependency on a not-yet-existing event.
type NewEventSpec struct {
	Summary string
}

// NewItemResult reports the ids created.
type NewItemResult struct {
	ItemID  uuid.UUID
	EventID *uuid.UUID
}

// NewItemHandler handles NewItemCommand.
type NewItemHandler struct {
	items      domain.ItemRepository
	events     domain.EventRepository
	outboxRepo outbox.Repository
	uow        sharedapp.UnitOfWork
}

// NewNewItemHandler constructs a NewItemHandler.
func NewNewItemHandler(items domain.ItemRepository, events domain.EventRepository, outboxRepo outbox.Repository, uow sharedapp.UnitOfWork) *NewItemHandler {
	return &NewItemHandler{items: items, events: events, outboxRepo: outboxRepo, uow: uow}
}

// Handle creates the item, optionally creating its new dependency
// event first, then asserts the write by re-reading the item.
func (h *NewItemHandler) Handle(ctx context.Context, cmd NewItemCommand) (*NewItemResult, error) {
	var result *NewItemResult

	err := sharedapp.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		var eventID *uuid.UUID
		if cmd.NewEvent != nil {
			ev := &domain.Event{ID: uuid.New(), Summary: cmd.NewEvent.Summary}
			if err := h.events.Save(txCtx, cmd.UserID, ev); err != nil {
				return fmt.Errorf("creating dependency event: %w", err)
			}
			eventID = &ev.ID
		}

		item := domain.NewItem(cmd.Summary)
		if eventID != nil {
			item.AddDependency(domain.AfterEvent{EventID: *eventID})
		}

		if err := h.items.Save(txCtx, cmd.UserID, item); err != nil {
			return err
		}

		readBack, err := h.items.FindByID(txCtx, cmd.UserID, item.ID())
		if err != nil {
			return err
		}
		if readBack == nil || readBack.Summary() != item.Summary() {
			return &domain.StoreMismatchError{ItemID: item.ID(), Reason: "summary mismatch after NewItem"}
		}

		if err := publishEvents(txCtx, h.outboxRepo, cmd.UserID, item.DomainEvents()); err != nil {
			return err
		}

		result = &NewItemResult{ItemID: item.ID(), EventID: eventID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
