package commands

import (
	"context"

	sharedapp "github.com/donow-app/donow/internal/shared/application"
	"github.com/donow-app/donow/internal/shared/infrastructure/outbox"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// ParentItemWithExistingItemCommand removes child from parent.children
// if present, then inserts it either before `Before` or at the tail
// (§4.8).
type ParentItemWithExistingItemCommand struct {
	UserID   uuid.UUID
	ChildID  uuid.UUID
	ParentID uuid.UUID
	Before   *uuid.UUID
}

// ParentItemRemoveParentCommand removes child from parent.children (§4.8).
type ParentItemRemoveParentCommand struct {
	UserID   uuid.UUID
	ChildID  uuid.UUID
	ParentID uuid.UUID
}

// ParentItemHandler handles both reparenting commands.
type ParentItemHandler struct {
	items      domain.ItemRepository
	outboxRepo outbox.Repository
	uow        sharedapp.UnitOfWork
}

// NewParentItemHandler constructs a ParentItemHandler.
func NewParentItemHandler(items domain.ItemRepository, outboxRepo outbox.Repository, uow sharedapp.UnitOfWork) *ParentItemHandler {
	return &ParentItemHandler{items: items, outboxRepo: outboxRepo, uow: uow}
}

// HandleWithExistingItem parents child under parent at the given
// position.
func (h *ParentItemHandler) HandleWithExistingItem(ctx context.Context, cmd ParentItemWithExistingItemCommand) error {
	return sharedapp.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if _, err := itemNotFoundOrErr(h.items.FindByID(txCtx, cmd.UserID, cmd.ChildID)); err != nil {
			return err
		}
		parent, err := itemNotFoundOrErr(h.items.FindByID(txCtx, cmd.UserID, cmd.ParentID))
		if err != nil {
			return err
		}

		if err := parent.AddChild(cmd.ChildID, cmd.Before); err != nil {
			return err
		}

		if err := h.items.Save(txCtx, cmd.UserID, parent); err != nil {
			return err
		}

		readBack, err := itemNotFoundOrErr(h.items.FindByID(txCtx, cmd.UserID, cmd.ParentID))
		if err != nil {
			return err
		}
		if !readBack.HasChild(cmd.ChildID) {
			return &domain.StoreMismatchError{ItemID: cmd.ParentID, Reason: "child missing after ParentItemWithExistingItem"}
		}
		return nil
	})
}

// HandleRemoveParent removes child from parent.children.
func (h *ParentItemHandler) HandleRemoveParent(ctx context.Context, cmd ParentItemRemoveParentCommand) error {
	return sharedapp.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		parent, err := itemNotFoundOrErr(h.items.FindByID(txCtx, cmd.UserID, cmd.ParentID))
		if err != nil {
			return err
		}

		parent.RemoveChild(cmd.ChildID)

		if err := h.items.Save(txCtx, cmd.UserID, parent); err != nil {
			return err
		}

		readBack, err := itemNotFoundOrErr(h.items.FindByID(txCtx, cmd.UserID, cmd.ParentID))
		if err != nil {
			return err
		}
		if readBack.HasChild(cmd.ChildID) {
			return &domain.StoreMismatchError{ItemID: cmd.ParentID, Reason: "child still present after ParentItemRemoveParent"}
		}
		return nil
	})
}

// UpdateRelativeImportanceCommand moves child within parent.children
// to a new position, sharing ParentItemWithExistingItem's semantics
// (§4.8 "same semantics as reparenting").
type UpdateRelativeImportanceCommand = ParentItemWithExistingItemCommand

// HandleUpdateRelativeImportance is an alias entry point documenting
// the distinct command name from §4.8; it delegates to
// HandleWithExistingItem.
func (h *ParentItemHandler) HandleUpdateRelativeImportance(ctx context.Context, cmd UpdateRelativeImportanceCommand) error {
	return h.HandleWithExistingItem(ctx, cmd)
}
