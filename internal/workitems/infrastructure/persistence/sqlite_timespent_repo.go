package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"

	sharedPersistence "github.com/donow-app/donow/internal/shared/infrastructure/persistence"
)

// SQLiteTimeSpentRepository implements domain.TimeSpentRepository
// using SQLite. The log is append-only, per §3, so there is no update
// path to mirror the item/event repositories' upsert.
type SQLiteTimeSpentRepository struct {
	db *sql.DB
}

// NewSQLiteTimeSpentRepository creates a new SQLite time-spent repository.
func NewSQLiteTimeSpentRepository(db *sql.DB) *SQLiteTimeSpentRepository {
	return &SQLiteTimeSpentRepository{db: db}
}

func (r *SQLiteTimeSpentRepository) querier(ctx context.Context) querier {
	if info, ok := sharedPersistence.SQLiteTxInfoFromContext(ctx); ok {
		return info.Tx
	}
	return r.db
}

// Append inserts a new time-spent entry.
func (r *SQLiteTimeSpentRepository) Append(ctx context.Context, userID uuid.UUID, entry domain.TimeSpent) error {
	workedOnJSON, err := encodeUUIDs(entry.WorkedOn)
	if err != nil {
		return err
	}
	urgencyJSON, err := encodeUrgency(entry.UrgencyAtSelection)
	if err != nil {
		return err
	}

	_, err = r.querier(ctx).ExecContext(ctx, `
		INSERT INTO time_spent (id, user_id, started_at, stopped_at, worked_on, urgency_at_selection, dedication)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID.String(), userID.String(), formatTime(entry.StartedAt), formatTime(entry.StoppedAt),
		workedOnJSON, string(urgencyJSON), nullableTextPtr(entry.Dedication),
	)
	return err
}

// FindAllByUser retrieves every time-spent entry belonging to userID.
func (r *SQLiteTimeSpentRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.TimeSpent, error) {
	rows, err := r.querier(ctx).QueryContext(ctx, `
		SELECT id, started_at, stopped_at, worked_on, urgency_at_selection, dedication
		FROM time_spent WHERE user_id = ?
	`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.TimeSpent
	for rows.Next() {
		var (
			id, startedAt, stoppedAt, workedOn, urgency string
			dedication                                  sql.NullString
		)
		if err := rows.Scan(&id, &startedAt, &stoppedAt, &workedOn, &urgency, &dedication); err != nil {
			return nil, err
		}

		entryID, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		started, err := time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, err
		}
		stopped, err := time.Parse(time.RFC3339, stoppedAt)
		if err != nil {
			return nil, err
		}
		workedOnIDs, err := decodeUUIDs(workedOn)
		if err != nil {
			return nil, err
		}
		urgencyVal, err := decodeUrgency([]byte(urgency))
		if err != nil {
			return nil, err
		}

		var dedicationPtr *string
		if dedication.Valid {
			d := dedication.String
			dedicationPtr = &d
		}

		entries = append(entries, domain.TimeSpent{
			ID:                 entryID,
			StartedAt:          started,
			StoppedAt:          stopped,
			WorkedOn:           workedOnIDs,
			UrgencyAtSelection: urgencyVal,
			Dedication:         dedicationPtr,
		})
	}
	return entries, rows.Err()
}
