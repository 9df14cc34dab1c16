package repository

import (
	"context"
	"errors"

	"atlascasa_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Begin opens the transaction lead creation commits under.
func (r *Repository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// InsertLead writes the lead row and its timeline inside tx. Activities are
// stored oldest first so the serial seq reflects chronology; reads reverse it.
func (r *Repository) InsertLead(ctx context.Context, tx pgx.Tx, lead domain.Lead) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO leads (
			id, created_at, name, email, phone, message, property_id,
			preferred_district, preferred_municipality, preferred_typology,
			max_budget_eur, stage, temperature, assigned_agent_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, lead.ID, lead.CreatedAt, lead.Name, lead.Email, lead.Phone, lead.Message, lead.PropertyID,
		lead.PreferredDistrict, lead.PreferredMunicipality, lead.PreferredTypology,
		lead.MaxBudgetEur, lead.Stage, lead.Temperature, lead.AssignedAgentID)
	if err != nil {
		return err
	}

	for i := len(lead.Activities) - 1; i >= 0; i-- {
		if err := insertActivity(ctx, tx, lead.ID, lead.Activities[i]); err != nil {
			return err
		}
	}
	return nil
}

func insertActivity(ctx context.Context, tx pgx.Tx, leadID uuid.UUID, a domain.Activity) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO lead_activities (id, lead_id, kind, occurred_at, title, detail)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, a.ID, leadID, a.Kind, a.OccurredAt, a.Title, a.Detail)
	return err
}

// AddActivity appends one entry to a lead's timeline outside any transaction.
func (r *Repository) AddActivity(ctx context.Context, leadID uuid.UUID, a domain.Activity) error {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO lead_activities (id, lead_id, kind, occurred_at, title, detail)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE EXISTS (SELECT 1 FROM leads WHERE id = $2)
	`, a.ID, leadID, a.Kind, a.OccurredAt, a.Title, a.Detail)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStage overwrites the stage and records the transition activity
// atomically.
func (r *Repository) UpdateStage(ctx context.Context, leadID uuid.UUID, stage domain.Stage, a domain.Activity) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE leads SET stage = $1 WHERE id = $2`, stage, leadID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := insertActivity(ctx, tx, leadID, a); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const leadColumns = `id, created_at, name, email, phone, message, property_id,
	preferred_district, preferred_municipality, preferred_typology,
	max_budget_eur, stage, temperature, assigned_agent_id`

func scanLead(row pgx.Row) (domain.Lead, error) {
	var l domain.Lead
	err := row.Scan(
		&l.ID, &l.CreatedAt, &l.Name, &l.Email, &l.Phone, &l.Message, &l.PropertyID,
		&l.PreferredDistrict, &l.PreferredMunicipality, &l.PreferredTypology,
		&l.MaxBudgetEur, &l.Stage, &l.Temperature, &l.AssignedAgentID,
	)
	return l, err
}

// Get loads one lead with its full timeline, newest activity first.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM leads WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	if err != nil {
		return domain.Lead{}, err
	}

	lead.Activities, err = r.listActivities(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}
	return lead, nil
}

// List returns every lead newest first, each with its timeline. The pipeline
// is a single team's book of business, so no paging.
func (r *Repository) List(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		index[l.ID] = len(leads)
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	actRows, err := r.pool.Query(ctx, `
		SELECT lead_id, id, kind, occurred_at, title, detail
		FROM lead_activities
		ORDER BY seq DESC
	`)
	if err != nil {
		return nil, err
	}
	defer actRows.Close()

	for actRows.Next() {
		var leadID uuid.UUID
		var a domain.Activity
		if err := actRows.Scan(&leadID, &a.ID, &a.Kind, &a.OccurredAt, &a.Title, &a.Detail); err != nil {
			return nil, err
		}
		if i, ok := index[leadID]; ok {
			leads[i].Activities = append(leads[i].Activities, a)
		}
	}

	return leads, actRows.Err()
}

func (r *Repository) listActivities(ctx context.Context, leadID uuid.UUID) ([]domain.Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, kind, occurred_at, title, detail
		FROM lead_activities
		WHERE lead_id = $1
		ORDER BY seq DESC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]domain.Activity, 0)
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.Kind, &a.OccurredAt, &a.Title, &a.Detail); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}

	return activities, rows.Err()
}
