package commands

import (
	"context"
	"reflect"
	"time"

	sharedapp "github.com/donow-app/donow/internal/shared/application"
	"github.com/donow-app/donow/internal/shared/infrastructure/outbox"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// FieldHandler handles the §4.8 plain field-patch commands: each
// fetches the item, applies one setter, saves, and asserts the
// touched field reads back correctly.
type FieldHandler struct {
	items      domain.ItemRepository
	outboxRepo outbox.Repository
	uow        sharedapp.UnitOfWork
}

// NewFieldHandler constructs a FieldHandler.
func NewFieldHandler(items domain.ItemRepository, outboxRepo outbox.Repository, uow sharedapp.UnitOfWork) *FieldHandler {
	return &FieldHandler{items: items, outboxRepo: outboxRepo, uow: uow}
}

// UpdateSummaryCommand renames an item.
type UpdateSummaryCommand struct {
	UserID  uuid.UUID
	ItemID  uuid.UUID
	Summary string
}

// HandleUpdateSummary applies UpdateSummaryCommand.
func (h *FieldHandler) HandleUpdateSummary(ctx context.Context, cmd UpdateSummaryCommand) error {
	return h.patch(ctx, cmd.UserID, cmd.ItemID, func(item *domain.Item) error {
		return item.SetSummary(cmd.Summary)
	}, func(readBack *domain.Item) bool {
		return readBack.Summary() == cmd.Summary
	}, "summary mismatch after UpdateSummary")
}

// UpdateResponsibilityAndItemTypeCommand sets both responsibility and
// item type together, per §4.8 (the two are declared in the same
// command since typing an item also declares who owns acting on it).
type UpdateResponsibilityAndItemTypeCommand struct {
	UserID         uuid.UUID
	ItemID         uuid.UUID
	Responsibility domain.Responsibility
	ItemType       domain.ItemType
}

// HandleUpdateResponsibilityAndItemType applies both setters in one
// transaction.
func (h *FieldHandler) HandleUpdateResponsibilityAndItemType(ctx context.Context, cmd UpdateResponsibilityAndItemTypeCommand) error {
	return h.patch(ctx, cmd.UserID, cmd.ItemID, func(item *domain.Item) error {
		if err := item.SetResponsibility(cmd.Responsibility); err != nil {
			return err
		}
		return item.SetType(cmd.ItemType)
	}, func(readBack *domain.Item) bool {
		return readBack.Responsibility() == cmd.Responsibility && readBack.Type() == cmd.ItemType
	}, "responsibility/type mismatch after UpdateResponsibilityAndItemType")
}

// UpdateUrgencyPlanCommand replaces an item's urgency plan (§4.4).
type UpdateUrgencyPlanCommand struct {
	UserID uuid.UUID
	ItemID uuid.UUID
	Plan   domain.UrgencyPlan
}

// HandleUpdateUrgencyPlan applies UpdateUrgencyPlanCommand.
func (h *FieldHandler) HandleUpdateUrgencyPlan(ctx context.Context, cmd UpdateUrgencyPlanCommand) error {
	return h.patch(ctx, cmd.UserID, cmd.ItemID, func(item *domain.Item) error {
		return item.SetUrgencyPlan(cmd.Plan)
	}, func(readBack *domain.Item) bool {
		return reflect.DeepEqual(readBack.UrgencyPlan(), cmd.Plan)
	}, "urgency plan mismatch after UpdateUrgencyPlan")
}

// UpdateItemReviewFrequencyCommand sets an item's own review frequency
// and guidance (§4.5).
type UpdateItemReviewFrequencyCommand struct {
	UserID    uuid.UUID
	ItemID    uuid.UUID
	Frequency domain.Frequency
	Guidance  domain.ReviewGuidance
}

// HandleUpdateItemReviewFrequency applies both setters.
func (h *FieldHandler) HandleUpdateItemReviewFrequency(ctx context.Context, cmd UpdateItemReviewFrequencyCommand) error {
	return h.patch(ctx, cmd.UserID, cmd.ItemID, func(item *domain.Item) error {
		if err := item.SetReviewFrequency(cmd.Frequency); err != nil {
			return err
		}
		return item.SetReviewGuidance(cmd.Guidance)
	}, func(readBack *domain.Item) bool {
		return reflect.DeepEqual(readBack.ReviewFrequency(), cmd.Frequency) && readBack.ReviewGuidance() == cmd.Guidance
	}, "review frequency mismatch after UpdateItemReviewFrequency")
}

// UpdateItemLastReviewedDateCommand stamps last_reviewed, clearing the
// Review Evaluator's "due" verdict (§4.5).
type UpdateItemLastReviewedDateCommand struct {
	UserID uuid.UUID
	ItemID uuid.UUID
	When   time.Time
}

// HandleUpdateItemLastReviewedDate applies UpdateItemLastReviewedDateCommand.
func (h *FieldHandler) HandleUpdateItemLastReviewedDate(ctx context.Context, cmd UpdateItemLastReviewedDateCommand) error {
	return h.patch(ctx, cmd.UserID, cmd.ItemID, func(item *domain.Item) error {
		return item.SetLastReviewed(cmd.When)
	}, func(readBack *domain.Item) bool {
		return readBack.LastReviewed() != nil && readBack.LastReviewed().Equal(cmd.When)
	}, "last reviewed mismatch after UpdateItemLastReviewedDate")
}

// patch is the shared fetch/mutate/save/assert body every field-patch
// command follows, keeping the per-command handlers to their setter
// call and their read-after-write predicate.
func (h *FieldHandler) patch(
	ctx context.Context,
	userID, itemID uuid.UUID,
	mutate func(*domain.Item) error,
	matches func(*domain.Item) bool,
	mismatchReason string,
) error {
	return sharedapp.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		item, err := itemNotFoundOrErr(h.items.FindByID(txCtx, userID, itemID))
		if err != nil {
			return err
		}

		if err := mutate(item); err != nil {
			return err
		}

		if err := h.items.Save(txCtx, userID, item); err != nil {
			return err
		}

		readBack, err := itemNotFoundOrErr(h.items.FindByID(txCtx, userID, itemID))
		if err != nil {
			return err
		}
		if !matches(readBack) {
			return &domain.StoreMismatchError{ItemID: itemID, Reason: mismatchReason}
		}

		return publishEvents(txCtx, h.outboxRepo, userID, item.DomainEvents())
	})
}
