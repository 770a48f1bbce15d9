package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	shareddomain "github.com/donow-app/donow/internal/shared/domain"
	sharedPersistence "github.com/donow-app/donow/internal/shared/infrastructure/persistence"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// querier is satisfied by both *sql.DB and *sql.Tx, letting every
// repository in this package transparently run inside or outside a
// transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteItemRepository implements domain.ItemRepository using SQLite,
// grounded on the teacher's SQLiteHabitRepository: a thin wrapper over
// *sql.DB that swaps in the ambient transaction from context when one
// is present.
type SQLiteItemRepository struct {
	db *sql.DB
}

// NewSQLiteItemRepository creates a new SQLite item repository.
func NewSQLiteItemRepository(db *sql.DB) *SQLiteItemRepository {
	return &SQLiteItemRepository{db: db}
}

func (r *SQLiteItemRepository) querier(ctx context.Context) querier {
	if info, ok := sharedPersistence.SQLiteTxInfoFromContext(ctx); ok {
		return info.Tx
	}
	return r.db
}

const itemColumns = `
	id, summary, created_at, finished_at, item_type, goal_control,
	motivation_kind, responsibility, children, dependencies, urgency_plan,
	review_frequency, review_guidance, last_reviewed, notes_location,
	facing, permanence, version, updated_at
`

const itemColumnsForInsert = `
	id, user_id, summary, created_at, finished_at, item_type, goal_control,
	motivation_kind, responsibility, children, dependencies, urgency_plan,
	review_frequency, review_guidance, last_reviewed, notes_location,
	facing, permanence, version, updated_at
`

// Save persists an item, inserting or updating depending on whether
// the row already exists.
func (r *SQLiteItemRepository) Save(ctx context.Context, userID uuid.UUID, item *domain.Item) error {
	q := r.querier(ctx)

	childrenJSON, err := encodeUUIDs(item.Children())
	if err != nil {
		return err
	}
	depsJSON, err := encodeDependencies(item.Dependencies())
	if err != nil {
		return err
	}
	urgencyPlanJSON, err := encodeUrgencyPlan(item.UrgencyPlan())
	if err != nil {
		return err
	}
	frequencyJSON, err := encodeFrequency(item.ReviewFrequency())
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

	var existingID string
	err = q.QueryRowContext(ctx, `SELECT id FROM items WHERE id = ?`, item.ID().String()).Scan(&existingID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = q.ExecContext(ctx, `
			INSERT INTO items (`+itemColumnsForInsert+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			item.ID().String(), userID.String(), item.Summary(), formatTime(item.Created()),
			formatTimePtr(item.Finished()), int(item.Type()), int(item.GoalControl()),
			int(item.MotivationKind()), int(item.Responsibility()), childrenJSON, depsJSON,
			string(urgencyPlanJSON), string(frequencyJSON), int(item.ReviewGuidance()),
			formatTimePtr(item.LastReviewed()), nullableTextPtr(item.NotesLocation()),
			facingJSON, permanenceJSON, item.Version(), formatTime(item.UpdatedAt()),
		)
		return err
	case err != nil:
		return err
	default:
		_, err = q.ExecContext(ctx, `
			UPDATE items SET
				summary = ?, finished_at = ?, item_type = ?, goal_control = ?,
				motivation_kind = ?, responsibility = ?, children = ?, dependencies = ?,
				urgency_plan = ?, review_frequency = ?, review_guidance = ?,
				last_reviewed = ?, notes_location = ?, facing = ?, permanence = ?,
				version = ?, updated_at = ?
			WHERE id = ?
		`,
			item.Summary(), formatTimePtr(item.Finished()), int(item.Type()), int(item.GoalControl()),
			int(item.MotivationKind()), int(item.Responsibility()), childrenJSON, depsJSON,
			string(urgencyPlanJSON), string(frequencyJSON), int(item.ReviewGuidance()),
			formatTimePtr(item.LastReviewed()), nullableTextPtr(item.NotesLocation()),
			facingJSON, permanenceJSON, item.Version(), formatTime(item.UpdatedAt()),
			item.ID().String(),
		)
		return err
	}
}

// FindByID retrieves an item by id, scoped to userID. Returns (nil,
// nil) when absent, per the repository interface's documented
// not-found contract.
func (r *SQLiteItemRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.Item, error) {
	row := r.querier(ctx).QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	item, err := r.scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return item, err
}

// FindAllByUser retrieves every item belonging to userID.
func (r *SQLiteItemRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Item, error) {
	rows, err := r.querier(ctx).QueryContext(ctx, `SELECT `+itemColumns+` FROM items WHERE user_id = ?`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		item, err := r.scanItemRows(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteItemRepository) scanItem(row *sql.Row) (*domain.Item, error) {
	return r.scan(row)
}

func (r *SQLiteItemRepository) scanItemRows(rows *sql.Rows) (*domain.Item, error) {
	return r.scan(rows)
}

func (r *SQLiteItemRepository) scan(s rowScanner) (*domain.Item, error) {
	var (
		id, createdAt, summary                                      string
		finishedAt, lastReviewed                                    sql.NullString
		itemType, goalControl, motivationKind, responsibility       int
		reviewGuidance, version                                     int
		children, dependencies, urgencyPlan, reviewFrequency        string
		notesLocation, facing, permanence                           sql.NullString
		updatedAt                                                   string
	)

	if err := s.Scan(
		&id, &summary, &createdAt, &finishedAt, &itemType, &goalControl,
		&motivationKind, &responsibility, &children, &dependencies, &urgencyPlan,
		&reviewFrequency, &reviewGuidance, &lastReviewed, &notesLocation,
		&facing, &permanence, &version, &updatedAt,
	); err != nil {
		return nil, err
	}

	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, err
	}
	finished, err := parseTimePtr(finishedAt)
	if err != nil {
		return nil, err
	}
	lastRev, err := parseTimePtr(lastReviewed)
	if err != nil {
		return nil, err
	}

	childIDs, err := decodeUUIDs(children)
	if err != nil {
		return nil, err
	}
	deps, err := decodeDependencies(dependencies)
	if err != nil {
		return nil, err
	}
	plan, err := decodeUrgencyPlan([]byte(urgencyPlan))
	if err != nil {
		return nil, err
	}
	freq, err := decodeFrequency([]byte(reviewFrequency))
	if err != nil {
		return nil, err
	}
	facingVal, err := decodeFacing(facing.String)
	if err != nil {
		return nil, err
	}
	permanenceVal, err := decodePermanence(permanence.String)
	if err != nil {
		return nil, err
	}

	var notesPtr *string
	if notesLocation.Valid {
		notes := notesLocation.String
		notesPtr = &notes
	}

	entity := shareddomain.RehydrateBaseEntity(itemID, created, updated)
	return domain.RehydrateItem(
		entity, version, summary, created, finished, domain.ItemType(itemType),
		domain.GoalControl(goalControl), domain.MotivationKind(motivationKind),
		domain.Responsibility(responsibility), childIDs, deps, plan, freq,
		domain.ReviewGuidance(reviewGuidance), lastRev, notesPtr, facingVal, permanenceVal,
	), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseTimePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullableTextPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
