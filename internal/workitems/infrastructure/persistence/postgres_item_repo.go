package persistence

import (
	"context"
	"time"

	shareddomain "github.com/donow-app/donow/internal/shared/domain"
	sharedPersistence "github.com/donow-app/donow/internal/shared/infrastructure/persistence"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresItemRepository implements domain.ItemRepository using
// PostgreSQL, grounded on the teacher's PostgresHabitRepository: an
// upsert plus a row-scanning read path, swapping in the ambient
// transaction from context when one is present.
type PostgresItemRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresItemRepository creates a new PostgreSQL item repository.
func NewPostgresItemRepository(pool *pgxpool.Pool) *PostgresItemRepository {
	return &PostgresItemRepository{pool: pool}
}

func (r *PostgresItemRepository) executor(ctx context.Context) sharedPersistence.DBExecutor {
	return sharedPersistence.Executor(ctx, r.pool)
}

// Save upserts an item.
func (r *PostgresItemRepository) Save(ctx context.Context, userID uuid.UUID, item *domain.Item) error {
	urgencyPlanJSON, err := encodeUrgencyPlan(item.UrgencyPlan())
	if err != nil {
		return err
	}
	frequencyJSON, err := encodeFrequency(item.ReviewFrequency())
	if err != nil {
		return err
	}
	depsJSON, err := encodeDependencies(item.Dependencies())
	if err != nil {
		return err
	}
	facingJSON, err := encodeFacing(item.Facing())
	if err != nil {
		return err
	}
	permanenceJSON, err := encodePermanence(item.Permanence())
	if err != nil {
		return err
	}

	query := `
		INSERT INTO items (
			id, user_id, summary, created_at, finished_at, item_type, goal_control,
			motivation_kind, responsibility, children, dependencies, urgency_plan,
			review_frequency, review_guidance, last_reviewed, notes_location,
			facing, permanence, version, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (id) DO UPDATE SET
			summary = EXCLUDED.summary,
			finished_at = EXCLUDED.finished_at,
			item_type = EXCLUDED.item_type,
			goal_control = EXCLUDED.goal_control,
			motivation_kind = EXCLUDED.motivation_kind,
			responsibility = EXCLUDED.responsibility,
			children = EXCLUDED.children,
			dependencies = EXCLUDED.dependencies,
			urgency_plan = EXCLUDED.urgency_plan,
			review_frequency = EXCLUDED.review_frequency,
			review_guidance = EXCLUDED.review_guidance,
			last_reviewed = EXCLUDED.last_reviewed,
			notes_location = EXCLUDED.notes_location,
			facing = EXCLUDED.facing,
			permanence = EXCLUDED.permanence,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.executor(ctx).Exec(ctx, query,
		item.ID(), userID, item.Summary(), item.Created(), item.Finished(), int(item.Type()),
		int(item.GoalControl()), int(item.MotivationKind()), int(item.Responsibility()),
		item.Children(), string(depsJSON), string(urgencyPlanJSON), string(frequencyJSON),
		int(item.ReviewGuidance()), item.LastReviewed(), item.NotesLocation(), facingJSON, permanenceJSON,
		item.Version(), item.UpdatedAt(),
	)
	return err
}

const postgresItemColumns = `
	id, summary, created_at, finished_at, item_type, goal_control, motivation_kind,
	responsibility, children, dependencies, urgency_plan, review_frequency,
	review_guidance, last_reviewed, notes_location, facing, permanence, version, updated_at
`

// FindByID retrieves an item by id, scoped to userID.
func (r *PostgresItemRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.Item, error) {
	row := r.executor(ctx).QueryRow(ctx, `SELECT `+postgresItemColumns+` FROM items WHERE id = $1 AND user_id = $2`, id, userID)
	item, err := r.scanItem(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return item, err
}

// FindAllByUser retrieves every item belonging to userID.
func (r *PostgresItemRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Item, error) {
	rows, err := r.executor(ctx).Query(ctx, `SELECT `+postgresItemColumns+` FROM items WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// pgxRow is satisfied by both pgx.Row and pgx.Rows.
type pgxRow interface {
	Scan(dest ...any) error
}

func (r *PostgresItemRepository) scanItem(row pgxRow) (*domain.Item, error) {
	var (
		id                                                     uuid.UUID
		summary                                                string
		facing, permanence                                     *string
		depsText, urgencyPlanText, frequencyText               string
		created, updatedAt                                     time.Time
		finished, lastReviewed                                 *time.Time
		itemType, goalControl, motivationKind, responsibility  int
		children                                               []uuid.UUID
		reviewGuidance, version                                int
		notesLocation                                          *string
	)

	if err := row.Scan(
		&id, &summary, &created, &finished, &itemType, &goalControl, &motivationKind,
		&responsibility, &children, &depsText, &urgencyPlanText, &frequencyText,
		&reviewGuidance, &lastReviewed, &notesLocation, &facing, &permanence, &version, &updatedAt,
	); err != nil {
		return nil, err
	}

	deps, err := decodeDependencies(depsText)
	if err != nil {
		return nil, err
	}
	plan, err := decodeUrgencyPlan([]byte(urgencyPlanText))
	if err != nil {
		return nil, err
	}
	freq, err := decodeFrequency([]byte(frequencyText))
	if err != nil {
		return nil, err
	}
	facingVal, err := decodeFacing(derefString(facing))
	if err != nil {
		return nil, err
	}
	permanenceVal, err := decodePermanence(derefString(permanence))
	if err != nil {
		return nil, err
	}

	entity := shareddomain.RehydrateBaseEntity(id, created, updatedAt)
	return domain.RehydrateItem(
		entity, version, summary, created, finished, domain.ItemType(itemType),
		domain.GoalControl(goalControl), domain.MotivationKind(motivationKind),
		domain.Responsibility(responsibility), children, deps, plan, freq,
		domain.ReviewGuidance(reviewGuidance), lastReviewed, notesLocation, facingVal, permanenceVal,
	), nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
