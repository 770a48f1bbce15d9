package commands

import (
	"context"

	sharedapp "github.com/donow-app/donow/internal/shared/application"
	"github.com/donow-app/donow/internal/shared/infrastructure/outbox"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// CoverItemWithNewItemCommand creates a new covering item and adds an
// AfterItem dependency from the covered item onto it (§4.8).
type CoverItemWithNewItemCommand struct {
	UserID         uuid.UUID
	CoveredItemID  uuid.UUID
	NewItemSummary string
}

// CoverItemWithExistingItemCommand adds an AfterItem dependency from
// the covered item onto an already-existing covering item (§4.8).
type CoverItemWithExistingItemCommand struct {
	UserID        uuid.UUID
	CoveredItemID uuid.UUID
	CoveringID    uuid.UUID
}

// CoverItemResult reports the covering item's id.
type CoverItemResult struct {
	CoveringItemID uuid.UUID
}

// CoverItemHandler handles both CoverItemWithNewItem and
// CoverItemWithExistingItem: insert-if-needed, then add the AfterItem
// dependency.
type CoverItemHandler struct {
	items      domain.ItemRepository
	outboxRepo outbox.Repository
	uow        sharedapp.UnitOfWork
}

// NewCoverItemHandler constructs a CoverItemHandler.
func NewCoverItemHandler(items domain.ItemRepository, outboxRepo outbox.Repository, uow sharedapp.UnitOfWork) *CoverItemHandler {
	return &CoverItemHandler{items: items, outboxRepo: outboxRepo, uow: uow}
}

// HandleWithNewItem inserts a new covering item, then depends the
// covered item on it.
func (h *CoverItemHandler) HandleWithNewItem(ctx context.Context, cmd CoverItemWithNewItemCommand) (*CoverItemResult, error) {
	var result *CoverItemResult

	err := sharedapp.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		covering := domain.NewItem(cmd.NewItemSummary)
		if err := h.items.Save(txCtx, cmd.UserID, covering); err != nil {
			return err
		}

		if err := h.addCoverDependency(txCtx, cmd.UserID, cmd.CoveredItemID, covering.ID()); err != nil {
			return err
		}

		if err := publishEvents(txCtx, h.outboxRepo, cmd.UserID, covering.DomainEvents()); err != nil {
			return err
		}

		result = &CoverItemResult{CoveringItemID: covering.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// HandleWithExistingItem depends the covered item on an existing
// covering item.
func (h *CoverItemHandler) HandleWithExistingItem(ctx context.Context, cmd CoverItemWithExistingItemCommand) error {
	return sharedapp.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if _, err := itemNotFoundOrErr(h.items.FindByID(txCtx, cmd.UserID, cmd.CoveringID)); err != nil {
			return err
		}
		return h.addCoverDependency(txCtx, cmd.UserID, cmd.CoveredItemID, cmd.CoveringID)
	})
}

func (h *CoverItemHandler) addCoverDependency(ctx context.Context, userID, coveredID, coveringID uuid.UUID) error {
	covered, err := itemNotFoundOrErr(h.items.FindByID(ctx, userID, coveredID))
	if err != nil {
		return err
	}

	dep := domain.AfterItem{ItemID: coveringID}
	covered.AddDependency(dep)

	if err := h.items.Save(ctx, userID, covered); err != nil {
		return err
	}

	readBack, err := itemNotFoundOrErr(h.items.FindByID(ctx, userID, coveredID))
	if err != nil {
		return err
	}
	if !readBack.HasDependency(dep) {
		return &domain.StoreMismatchError{ItemID: coveredID, Reason: "cover dependency missing after write"}
	}
	return nil
}
