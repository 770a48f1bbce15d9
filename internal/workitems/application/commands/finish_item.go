package commands

import (
	"context"
	"time"

	sharedapp "github.com/donow-app/donow/internal/shared/application"
	"github.com/donow-app/donow/internal/shared/infrastructure/outbox"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// FinishItemCommand sets finished, per §4.8: no-op if already finished
// with the same timestamp, overwrites otherwise.
type FinishItemCommand struct {
	UserID uuid.UUID
	ItemID uuid.UUID
	When   time.Time
}

// FinishItemHandler handles FinishItemCommand.
type FinishItemHandler struct {
	items      domain.ItemRepository
	outboxRepo outbox.Repository
	uow        sharedapp.UnitOfWork
}

// NewFinishItemHandler constructs a FinishItemHandler.
func NewFinishItemHandler(items domain.ItemRepository, outboxRepo outbox.Repository, uow sharedapp.UnitOfWork) *FinishItemHandler {
	return &FinishItemHandler{items: items, outboxRepo: outboxRepo, uow: uow}
}

// Handle applies Finish and asserts the stored finished timestamp
// matches.
func (h *FinishItemHandler) Handle(ctx context.Context, cmd FinishItemCommand) error {
	return sharedapp.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		item, err := itemNotFoundOrErr(h.items.FindByID(txCtx, cmd.UserID, cmd.ItemID))
		if err != nil {
			return err
		}

		item.Finish(cmd.When)

		if err := h.items.Save(txCtx, cmd.UserID, item); err != nil {
			return err
		}

		readBack, err := itemNotFoundOrErr(h.items.FindByID(txCtx, cmd.UserID, cmd.ItemID))
		if err != nil {
			return err
		}
		if readBack.Finished() == nil || !readBack.Finished().Equal(*item.Finished()) {
			return &domain.StoreMismatchError{ItemID: cmd.ItemID, Reason: "finished timestamp mismatch after FinishItem"}
		}

		return publishEvents(txCtx, h.outboxRepo, cmd.UserID, item.DomainEvents())
	})
}
