package persistence

import (
	"context"
	"encoding/json"
	"time"

	sharedPersistence "github.com/donow-app/donow/internal/shared/infrastructure/persistence"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresInTheMomentPriorityRepository implements
// domain.InTheMomentPriorityRepository using PostgreSQL. Also append-only.
type PostgresInTheMomentPriorityRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresInTheMomentPriorityRepository creates a new PostgreSQL
// in-the-moment priority repository.
func NewPostgresInTheMomentPriorityRepository(pool *pgxpool.Pool) *PostgresInTheMomentPriorityRepository {
	return &PostgresInTheMomentPriorityRepository{pool: pool}
}

func (r *PostgresInTheMomentPriorityRepository) executor(ctx context.Context) sharedPersistence.DBExecutor {
	return sharedPersistence.Executor(ctx, r.pool)
}

// Append inserts a new in-the-moment priority declaration.
func (r *PostgresInTheMomentPriorityRepository) Append(ctx context.Context, userID uuid.UUID, priority domain.InTheMomentPriority) error {
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

	_, err = r.executor(ctx).Exec(ctx, `
		INSERT INTO in_the_moment_priorities (id, user_id, choice, kind, not_chosen, in_effect_until, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, priority.ID, userID, string(choiceJSON), int(priority.Kind), string(notChosenJSON), string(triggersJSON), priority.Created)
	return err
}

// FindAllByUser retrieves every in-the-moment priority belonging to userID.
func (r *PostgresInTheMomentPriorityRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.InTheMomentPriority, error) {
	rows, err := r.executor(ctx).Query(ctx, `
		SELECT id, choice, kind, not_chosen, in_effect_until, created_at
		FROM in_the_moment_priorities WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var priorities []domain.InTheMomentPriority
	for rows.Next() {
		var (
			id                                  uuid.UUID
			choice, notChosen, inEffectUntil    string
			kind                                int
			created                             time.Time
		)
		if err := rows.Scan(&id, &choice, &kind, &notChosen, &inEffectUntil, &created); err != nil {
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

		priorities = append(priorities, domain.InTheMomentPriority{
			ID:            id,
			Choice:        choiceVal,
			Kind:          domain.PriorityKind(kind),
			NotChosen:     notChosenVals,
			InEffectUntil: triggerVals,
			Created:       created,
		})
	}
	return priorities, rows.Err()
}
