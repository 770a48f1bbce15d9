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

// DeclareInTheMomentPriorityCommand appends an in-the-moment priority
// override (§3, §4.7).
type DeclareInTheMomentPriorityCommand struct {
	UserID        uuid.UUID
	Choice        domain.Action
	Kind          domain.PriorityKind
	NotChosen     []domain.Action
	InEffectUntil []domain.Trigger
}

// DeclarePriorityResult reports the created priority's id.
type DeclarePriorityResult struct {
	PriorityID uuid.UUID
}

// DeclarePriorityHandler handles DeclareInTheMomentPriorityCommand.
type DeclarePriorityHandler struct {
	priorities domain.InTheMomentPriorityRepository
	outboxRepo outbox.Repository
	uow        sharedapp.UnitOfWork
}

// NewDeclarePriorityHandler constructs a DeclarePriorityHandler.
func NewDeclarePriorityHandler(priorities domain.InTheMomentPriorityRepository, outboxRepo outbox.Repository, uow sharedapp.UnitOfWork) *DeclarePriorityHandler {
	return &DeclarePriorityHandler{priorities: priorities, outboxRepo: outboxRepo, uow: uow}
}

// Handle appends the priority record and asserts it reads back by id
// among the user's priorities (the log is append-only, so there is no
// field to overwrite and re-check beyond presence).
func (h *DeclarePriorityHandler) Handle(ctx context.Context, cmd DeclareInTheMomentPriorityCommand) (*DeclarePriorityResult, error) {
	var result *DeclarePriorityResult

	err := sharedapp.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		priority := domain.InTheMomentPriority{
			ID:            uuid.New(),
			Choice:        cmd.Choice,
			Kind:          cmd.Kind,
			NotChosen:     cmd.NotChosen,
			InEffectUntil: cmd.InEffectUntil,
			Created:       time.Now().UTC(),
		}

		if err := h.priorities.Append(txCtx, cmd.UserID, priority); err != nil {
			return err
		}

		all, err := h.priorities.FindAllByUser(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		found := false
		for _, p := range all {
			if p.ID == priority.ID {
				found = true
				break
			}
		}
		if !found {
			return &domain.StoreMismatchError{ItemID: priority.ID, Reason: "priority missing after DeclareInTheMomentPriority"}
		}

		event := domain.NewInTheMomentPriorityDeclaredEvent(priority.ID)
		if err := publishEvents(txCtx, h.outboxRepo, cmd.UserID, []shareddomain.DomainEvent{event}); err != nil {
			return err
		}

		result = &DeclarePriorityResult{PriorityID: priority.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
