package persistence

import (
	"context"
	"time"

	sharedPersistence "github.com/donow-app/donow/internal/shared/infrastructure/persistence"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresEventRepository implements domain.EventRepository using PostgreSQL.
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgreSQL event repository.
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

func (r *PostgresEventRepository) executor(ctx context.Context) sharedPersistence.DBExecutor {
	return sharedPersistence.Executor(ctx, r.pool)
}

// Save upserts an event.
func (r *PostgresEventRepository) Save(ctx context.Context, userID uuid.UUID, event *domain.Event) error {
	_, err := r.executor(ctx).Exec(ctx, `
		INSERT INTO events (id, user_id, summary, triggered, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			summary = EXCLUDED.summary,
			triggered = EXCLUDED.triggered,
			last_updated = EXCLUDED.last_updated
	`, event.ID, userID, event.Summary, event.Triggered, event.LastUpdated)
	return err
}

// FindByID retrieves an event by id, scoped to userID.
func (r *PostgresEventRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.Event, error) {
	row := r.executor(ctx).QueryRow(ctx,
		`SELECT id, summary, triggered, last_updated FROM events WHERE id = $1 AND user_id = $2`, id, userID)
	ev, err := scanPostgresEvent(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return ev, err
}

// FindAllByUser retrieves every event belonging to userID.
func (r *PostgresEventRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error) {
	rows, err := r.executor(ctx).Query(ctx,
		`SELECT id, summary, triggered, last_updated FROM events WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		ev, err := scanPostgresEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func scanPostgresEvent(row pgxRow) (*domain.Event, error) {
	var (
		id          uuid.UUID
		summary     string
		triggered   bool
		lastUpdated time.Time
	)
	if err := row.Scan(&id, &summary, &triggered, &lastUpdated); err != nil {
		return nil, err
	}
	return &domain.Event{
		ID:          id,
		Summary:     summary,
		Triggered:   triggered,
		LastUpdated: lastUpdated,
	}, nil
}
