package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	KindView     = "view"
	KindFavorite = "favorite"
	KindContact  = "contact"
	KindCompare  = "compare"
)

// Each visitor keeps at most this many events; older ones are evicted.
const retentionPerVisitor = 250

type InteractionEvent struct {
	ID         int64
	VisitorID  string
	Kind       string
	PropertyID uuid.UUID
	OccurredAt time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type RecordEventParams struct {
	VisitorID  string
	Kind       string
	PropertyID uuid.UUID
}

// Record appends the event and trims the visitor's log back to the retention
// cap, evicting the oldest rows first. Serial ids preserve insertion order.
func (r *Repository) Record(ctx context.Context, params RecordEventParams) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO interaction_events (visitor_id, kind, property_id, occurred_at)
		VALUES ($1, $2, $3, now())
	`, params.VisitorID, params.Kind, params.PropertyID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM interaction_events
		WHERE visitor_id = $1
		  AND id NOT IN (
			SELECT id FROM interaction_events
			WHERE visitor_id = $1
			ORDER BY id DESC
			LIMIT $2
		  )
	`, params.VisitorID, retentionPerVisitor)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListByVisitor returns the visitor's events oldest first, the order the
// scorer expects.
func (r *Repository) ListByVisitor(ctx context.Context, visitorID string) ([]InteractionEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, visitor_id, kind, property_id, occurred_at
		FROM interaction_events
		WHERE visitor_id = $1
		ORDER BY id ASC
	`, visitorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]InteractionEvent, 0)
	for rows.Next() {
		var ev InteractionEvent
		if err := rows.Scan(&ev.ID, &ev.VisitorID, &ev.Kind, &ev.PropertyID, &ev.OccurredAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

// Prune drops events older than the cutoff across all visitors. The per-write
// trim already bounds each log; this is the scheduled backstop.
func (r *Repository) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM interaction_events WHERE occurred_at < $1
	`, olderThan)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
