// Package commands implements C8, the Command Processor: one handler
// type per command in §4.8, each wrapped in a unit of work and ending
// with the read-after-write assertion the spec requires.
package commands

import (
	"context"

	sharedapp "github.com/donow-app/donow/internal/shared/application"
	shareddomain "github.com/donow-app/donow/internal/shared/domain"
	"github.com/donow-app/donow/internal/shared/infrastructure/outbox"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// publishEvents turns an aggregate's uncommitted domain events into
// outbox messages tagged with command-scoped metadata, following the
// teacher's create_habit.go pattern.
func publishEvents(ctx context.Context, outboxRepo outbox.Repository, userID uuid.UUID, events []shareddomain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	sharedapp.ApplyEventMetadata(events, sharedapp.NewEventMetadata(userID))

	msgs := make([]*outbox.Message, 0, len(events))
	for _, event := range events {
		msg, err := outbox.NewMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return outboxRepo.SaveBatch(ctx, msgs)
}

// itemNotFoundOrErr normalizes a missing-item lookup into
// domain.ErrItemNotFound when the repository signals absence with a
// nil, nil return, matching the teacher's repository contract.
func itemNotFoundOrErr(item *domain.Item, err error) (*domain.Item, error) {
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}
