package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"

	sharedPersistence "github.com/donow-app/donow/internal/shared/infrastructure/persistence"
)

// SQLiteInTheMomentPriorityRepository implements
// domain.InTheMomentPriorityRepository using SQLite. Also append-only.
type SQLiteInTheMomentPriorityRepository struct {
	db *sql.DB
}

// NewSQLiteInTheMomentPriorityRepository creates a new SQLite
// in-the-moment priority repository.
func NewSQLiteInTheMomentPriorityRepository(db *sql.DB) *SQLiteInTheMomentPriorityRepository {
	return &SQLiteInTheMomentPriorityRepository{db: db}
}

func (r *SQLiteInTheMomentPriorityRepository) querier(ctx context.Context) querier {
	if info, ok := sharedPersistence.SQLiteTxInfoFromContext(ctx); ok {
		return info.Tx
	}
	return r.db
}

// Append inserts a new in-the-moment priority declaration.
func (r *SQLiteInTheMomentPriorityRepository) Append(ctx context.Context, userID uuid.UUID, priority domain.InTheMomentPriority) error {
	choiceJSON, err := encodeAction(priority.Choice)
	if err != nil {
		return err
	}
	notChosen, err := encodeActions(priority.NotChosen)
	if err != nil {
		return err
	}
	notChosenJSON, err := json.Marshal(notChosen)
	if err != nil {
		return err
	}
	triggers, err := encodeTriggers(priority.InEffectUntil)
	if err != nil {
		return err
	}
	triggersJSON, err := json.Marshal(triggers)
	if err != nil {
		return err
	}

	_, err = r.querier(ctx).ExecContext(ctx, `
		INSERT INTO in_the_moment_priorities (id, user_id, choice, kind, not_chosen, in_effect_until, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		priority.ID.String(), userID.String(), string(choiceJSON), int(priority.Kind),
		string(notChosenJSON), string(triggersJSON), formatTime(priority.Created),
	)
	return err
}

// FindAllByUser retrieves every in-the-moment priority belonging to userID.
func (r *SQLiteInTheMomentPriorityRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.InTheMomentPriority, error) {
	rows, err := r.querier(ctx).QueryContext(ctx, `
		SELECT id, choice, kind, not_chosen, in_effect_until, created_at
		FROM in_the_moment_priorities WHERE user_id = ?
	`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var priorities []domain.InTheMomentPriority
	for rows.Next() {
		var (
			id, choice, notChosen, inEffectUntil, createdAt string
			kind                                             int
		)
		if err := rows.Scan(&id, &choice, &kind, &notChosen, &inEffectUntil, &createdAt); err != nil {
			return nil, err
		}

		priorityID, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		choiceVal, err := decodeAction([]byte(choice))
		if err != nil {
			return nil, err
		}

		var notChosenRaws []json.RawMessage
		if err := json.Unmarshal([]byte(notChosen), &notChosenRaws); err != nil {
			return nil, err
		}
		notChosenVals, err := decodeActions(notChosenRaws)
		if err != nil {
			return nil, err
		}

		var triggerRaws []json.RawMessage
		if err := json.Unmarshal([]byte(inEffectUntil), &triggerRaws); err != nil {
			return nil, err
		}
		triggerVals, err := decodeTriggers(triggerRaws)
		if err != nil {
			return nil, err
		}

		created, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, err
		}

		priorities = append(priorities, domain.InTheMomentPriority{
			ID:            priorityID,
			Choice:        choiceVal,
			Kind:          domain.PriorityKind(kind),
			NotChosen:     notChosenVals,
			InEffectUntil: triggerVals,
			Created:       created,
		})
	}
	return priorities, rows.Err()
}
