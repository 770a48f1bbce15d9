package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"

	sharedPersistence "github.com/donow-app/donow/internal/shared/infrastructure/persistence"
)

// SQLiteEventRepository implements domain.EventRepository using SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

// NewSQLiteEventRepository creates a new SQLite event repository.
func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) querier(ctx context.Context) querier {
	if info, ok := sharedPersistence.SQLiteTxInfoFromContext(ctx); ok {
		return info.Tx
	}
	return r.db
}

// Save persists an event, inserting or updating depending on whether
// the row already exists.
func (r *SQLiteEventRepository) Save(ctx context.Context, userID uuid.UUID, event *domain.Event) error {
	q := r.querier(ctx)

	var existingID string
	err := q.QueryRowContext(ctx, `SELECT id FROM events WHERE id = ?`, event.ID.String()).Scan(&existingID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = q.ExecContext(ctx, `
			INSERT INTO events (id, user_id, summary, triggered, last_updated)
			VALUES (?, ?, ?, ?, ?)
		`, event.ID.String(), userID.String(), event.Summary, boolToInt(event.Triggered), formatTime(event.LastUpdated))
		return err
	case err != nil:
		return err
	default:
		_, err = q.ExecContext(ctx, `
			UPDATE events SET summary = ?, triggered = ?, last_updated = ?
			WHERE id = ?
		`, event.Summary, boolToInt(event.Triggered), formatTime(event.LastUpdated), event.ID.String())
		return err
	}
}

// FindByID retrieves an event by id, scoped to userID.
func (r *SQLiteEventRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.Event, error) {
	row := r.querier(ctx).QueryRowContext(ctx,
		`SELECT id, summary, triggered, last_updated FROM events WHERE id = ? AND user_id = ?`,
		id.String(), userID.String())
	ev, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return ev, err
}

// FindAllByUser retrieves every event belonging to userID.
func (r *SQLiteEventRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error) {
	rows, err := r.querier(ctx).QueryContext(ctx,
		`SELECT id, summary, triggered, last_updated FROM events WHERE user_id = ?`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	var (
		id, summary, lastUpdated string
		triggered                int
	)
	if err := s.Scan(&id, &summary, &triggered, &lastUpdated); err != nil {
		return nil, err
	}
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	updated, err := time.Parse(time.RFC3339, lastUpdated)
	if err != nil {
		return nil, err
	}
	return &domain.Event{
		ID:          eventID,
		Summary:     summary,
		Triggered:   triggered != 0,
		LastUpdated: updated,
	}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
