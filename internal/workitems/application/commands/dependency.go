package commands

import (
	"context"
	"fmt"

	sharedapp "github.com/donow-app/donow/internal/shared/application"
	"github.com/donow-app/donow/internal/shared/infrastructure/outbox"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// DependencyHandler handles the §4.8 dependency-set commands:
// AddItemDependency, RemoveItemDependency, and
// AddItemDependencyNewEvent.
type DependencyHandler struct {
	items      domain.ItemRepository
	events     domain.EventRepository
	outboxRepo outbox.Repository
	uow        sharedapp.UnitOfWork
}

// NewDependencyHandler constructs a DependencyHandler.
func NewDependencyHandler(items domain.ItemRepository, events domain.EventRepository, outboxRepo outbox.Repository, uow sharedapp.UnitOfWork) *DependencyHandler {
	return &DependencyHandler{items: items, events: events, outboxRepo: outboxRepo, uow: uow}
}

// AddItemDependencyCommand adds a dependency to an existing item,
// idempotently (§8).
type AddItemDependencyCommand struct {
	UserID     uuid.UUID
	ItemID     uuid.UUID
	Dependency domain.Dependency
}

// HandleAdd applies AddItemDependencyCommand.
func (h *DependencyHandler) HandleAdd(ctx context.Context, cmd AddItemDependencyCommand) error {
	return sharedapp.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		item, err := itemNotFoundOrErr(h.items.FindByID(txCtx, cmd.UserID, cmd.ItemID))
		if err != nil {
			return err
		}

		item.AddDependency(cmd.Dependency)

		if err := h.items.Save(txCtx, cmd.UserID, item); err != nil {
			return err
		}

		readBack, err := itemNotFoundOrErr(h.items.FindByID(txCtx, cmd.UserID, cmd.ItemID))
		if err != nil {
			return err
		}
		if !readBack.HasDependency(cmd.Dependency) {
			return &domain.StoreMismatchError{ItemID: cmd.ItemID, Reason: "dependency missing after AddItemDependency"}
		}
		return nil
	})
}

// RemoveItemDependencyCommand removes a dependency idempotently (§8).
type RemoveItemDependencyCommand struct {
	UserID     uuid.UUID
	ItemID     uuid.UUID
	Dependency domain.Dependency
}

// HandleRemove applies RemoveItemDependencyCommand.
func (h *DependencyHandler) HandleRemove(ctx context.Context, cmd RemoveItemDependencyCommand) error {
	return sharedapp.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		item, err := itemNotFoundOrErr(h.items.FindByID(txCtx, cmd.UserID, cmd.ItemID))
		if err != nil {
			return err
		}

		item.RemoveDependency(cmd.Dependency)

		if err := h.items.Save(txCtx, cmd.UserID, item); err != nil {
			return err
		}

		readBack, err := itemNotFoundOrErr(h.items.FindByID(txCtx, cmd.UserID, cmd.ItemID))
		if err != nil {
			return err
		}
		if readBack.HasDependency(cmd.Dependency) {
			return &domain.StoreMismatchError{ItemID: cmd.ItemID, Reason: "dependency still present after RemoveItemDependency"}
		}
		return nil
	})
}

// AddItemDependencyNewEventCommand creates a new event and adds an
// AfterEvent dependency on it atomically (§4.8, mirroring NewItem's
// NewEvent path).
type AddItemDependencyNewEventCommand struct {
	UserID       uuid.UUID
	ItemID       uuid.UUID
	EventSummary string
}

// AddItemDependencyNewEventResult reports the created event's id.
type AddItemDependencyNewEventResult struct {
	EventID uuid.UUID
}

// HandleAddNewEvent applies AddItemDependencyNewEventCommand.
func (h *DependencyHandler) HandleAddNewEvent(ctx context.Context, cmd AddItemDependencyNewEventCommand) (*AddItemDependencyNewEventResult, error) {
	var result *AddItemDependencyNewEventResult

	err := sharedapp.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		item, err := itemNotFoundOrErr(h.items.FindByID(txCtx, cmd.UserID, cmd.ItemID))
		if err != nil {
			return err
		}

		ev := &domain.Event{ID: uuid.New(), Summary: cmd.EventSummary}
		if err := h.events.Save(txCtx, cmd.UserID, ev); err != nil {
			return fmt.Errorf("creating dependency event: %w", err)
		}

		dep := domain.AfterEvent{EventID: ev.ID}
		item.AddDependency(dep)

		if err := h.items.Save(txCtx, cmd.UserID, item); err != nil {
			return err
		}

		readBack, err := itemNotFoundOrErr(h.items.FindByID(txCtx, cmd.UserID, cmd.ItemID))
		if err != nil {
			return err
		}
		if !readBack.HasDependency(dep) {
			return &domain.StoreMismatchError{ItemID: cmd.ItemID, Reason: "dependency missing after AddItemDependencyNewEvent"}
		}

		result = &AddItemDependencyNewEventResult{EventID: ev.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
