package commands

import (
	"context"
	"time"

	sharedapp "github.com/donow-app/donow/internal/shared/application"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// RecordTimeSpentCommand appends an immutable work-log entry (§3).
type RecordTimeSpentCommand struct {
	UserID             uuid.UUID
	StartedAt          time.Time
	StoppedAt          time.Time
	WorkedOn           []uuid.UUID
	UrgencyAtSelection domain.Urgency
	Dedication         *string
}

// RecordTimeSpentResult reports the created log entry's id.
type RecordTimeSpentResult struct {
	TimeSpentID uuid.UUID
}

// RecordTimeSpentHandler handles RecordTimeSpentCommand. No outbox
// publication: the time-spent log has no subscribers per §4.8, only
// the trigger evaluators in C2 that read it directly off the
// snapshot.
type RecordTimeSpentHandler struct {
	timeSpent domain.TimeSpentRepository
	uow       sharedapp.UnitOfWork
}

// NewRecordTimeSpentHandler constructs a RecordTimeSpentHandler.
func NewRecordTimeSpentHandler(timeSpent domain.TimeSpentRepository, uow sharedapp.UnitOfWork) *RecordTimeSpentHandler {
	return &RecordTimeSpentHandler{timeSpent: timeSpent, uow: uow}
}

// Handle appends the entry and asserts it reads back among the user's
// time-spent log.
func (h *RecordTimeSpentHandler) Handle(ctx context.Context, cmd RecordTimeSpentCommand) (*RecordTimeSpentResult, error) {
	var result *RecordTimeSpentResult

	err := sharedapp.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		entry := domain.TimeSpent{
			ID:                 uuid.New(),
			StartedAt:          cmd.StartedAt,
			StoppedAt:          cmd.StoppedAt,
			WorkedOn:           cmd.WorkedOn,
			UrgencyAtSelection: cmd.UrgencyAtSelection,
			Dedication:         cmd.Dedication,
		}

		if err := h.timeSpent.Append(txCtx, cmd.UserID, entry); err != nil {
			return err
		}

		all, err := h.timeSpent.FindAllByUser(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		found := false
		for _, e := range all {
			if e.ID == entry.ID {
				found = true
				break
			}
		}
		if !found {
			return &domain.StoreMismatchError{ItemID: entry.ID, Reason: "time-spent entry missing after RecordTimeSpent"}
		}

		result = &RecordTimeSpentResult{TimeSpentID: entry.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
