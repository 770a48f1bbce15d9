package persistence

import (
	"context"
	"time"

	sharedPersistence "github.com/donow-app/donow/internal/shared/infrastructure/persistence"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTimeSpentRepository implements domain.TimeSpentRepository
// using PostgreSQL. The log is append-only, per §3.
type PostgresTimeSpentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTimeSpentRepository creates a new PostgreSQL time-spent repository.
func NewPostgresTimeSpentRepository(pool *pgxpool.Pool) *PostgresTimeSpentRepository {
	return &PostgresTimeSpentRepository{pool: pool}
}

func (r *PostgresTimeSpentRepository) executor(ctx context.Context) sharedPersistence.DBExecutor {
	return sharedPersistence.Executor(ctx, r.pool)
}

// Append inserts a new time-spent entry.
func (r *PostgresTimeSpentRepository) Append(ctx context.Context, userID uuid.UUID, entry domain.TimeSpent) error {
	urgencyJSON, err := encodeUrgency(entry.UrgencyAtSelection)
	if err != nil {
		return err
	}

	_, err = r.executor(ctx).Exec(ctx, `
		INSERT INTO time_spent (id, user_id, started_at, stopped_at, worked_on, urgency_at_selection, dedication)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, userID, entry.StartedAt, entry.StoppedAt, entry.WorkedOn, string(urgencyJSON), entry.Dedication)
	return err
}

// FindAllByUser retrieves every time-spent entry belonging to userID.
func (r *PostgresTimeSpentRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.TimeSpent, error) {
	rows, err := r.executor(ctx).Query(ctx, `
		SELECT id, started_at, stopped_at, worked_on, urgency_at_selection, dedication
		FROM time_spent WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.TimeSpent
	for rows.Next() {
		var (
			id                  uuid.UUID
			started, stopped    time.Time
			workedOn            []uuid.UUID
			urgencyText         string
			dedication          *string
		)
		if err := rows.Scan(&id, &started, &stopped, &workedOn, &urgencyText, &dedication); err != nil {
			return nil, err
		}
		urgencyVal, err := decodeUrgency([]byte(urgencyText))
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.TimeSpent{
			ID:                 id,
			StartedAt:          started,
			StoppedAt:          stopped,
			WorkedOn:           workedOn,
			UrgencyAtSelection: urgencyVal,
			Dedication:         dedication,
		})
	}
	return entries, rows.Err()
}
