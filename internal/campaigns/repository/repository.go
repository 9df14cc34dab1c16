package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("campaign not found")

// Segment narrows the lead audience. Empty slices and nil bounds match
// everything.
type Segment struct {
	Districts      []string `json:"districts,omitempty"`
	Municipalities []string `json:"municipalities,omitempty"`
	Typologies     []string `json:"typologies,omitempty"`
	PriceMin       *float64 `json:"priceMin,omitempty"`
	PriceMax       *float64 `json:"priceMax,omitempty"`
}

type Stats struct {
	Sent   int `json:"sent"`
	Opens  int `json:"opens"`
	Clicks int `json:"clicks"`
}

type Campaign struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Name      string
	Subject   string
	FromName  string
	FromEmail string
	HTML      string
	Segment   Segment
	Stats     Stats
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const campaignColumns = `id, created_at, name, subject, from_name, from_email,
	html, segment, sent, opens, clicks`

func scanCampaign(row pgx.Row) (Campaign, error) {
	var c Campaign
	var segmentRaw []byte
	err := row.Scan(
		&c.ID, &c.CreatedAt, &c.Name, &c.Subject, &c.FromName, &c.FromEmail,
		&c.HTML, &segmentRaw, &c.Stats.Sent, &c.Stats.Opens, &c.Stats.Clicks,
	)
	if err != nil {
		return Campaign{}, err
	}
	if len(segmentRaw) > 0 {
		if err := json.Unmarshal(segmentRaw, &c.Segment); err != nil {
			return Campaign{}, err
		}
	}
	return c, nil
}

func (r *Repository) List(ctx context.Context) ([]Campaign, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+campaignColumns+`
		FROM email_campaigns
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := make([]Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}

	return campaigns, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `
		SELECT `+campaignColumns+`
		FROM email_campaigns
		WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Campaign{}, ErrNotFound
	}
	return c, err
}

type SaveCampaignParams struct {
	Name      string
	Subject   string
	FromName  string
	FromEmail string
	HTML      string
	Segment   Segment
}

func (r *Repository) Create(ctx context.Context, params SaveCampaignParams) (Campaign, error) {
	segmentRaw, err := json.Marshal(params.Segment)
	if err != nil {
		return Campaign{}, err
	}

	id := uuid.New()
	_, err = r.pool.Exec(ctx, `
		INSERT INTO email_campaigns (id, created_at, name, subject, from_name, from_email, html, segment)
		VALUES ($1, now(), $2, $3, $4, $5, $6, $7)
	`, id, params.Name, params.Subject, params.FromName, params.FromEmail, params.HTML, segmentRaw)
	if err != nil {
		return Campaign{}, err
	}

	return r.Get(ctx, id)
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params SaveCampaignParams) (Campaign, error) {
	segmentRaw, err := json.Marshal(params.Segment)
	if err != nil {
		return Campaign{}, err
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE email_campaigns
		SET name = $1, subject = $2, from_name = $3, from_email = $4, html = $5, segment = $6
		WHERE id = $7
	`, params.Name, params.Subject, params.FromName, params.FromEmail, params.HTML, segmentRaw, id)
	if err != nil {
		return Campaign{}, err
	}
	if tag.RowsAffected() == 0 {
		return Campaign{}, ErrNotFound
	}

	return r.Get(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM email_campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetSent records the delivered count after a send completes.
func (r *Repository) SetSent(ctx context.Context, id uuid.UUID, sent int) error {
	tag, err := r.pool.Exec(ctx, `UPDATE email_campaigns SET sent = $1 WHERE id = $2`, sent, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
