package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("property not found")

// Property kind, purpose and typology use the Portuguese market vocabulary
// of the storefront (Apartamento/Moradia, Venda/Arrendamento, T1..T5).
type Property struct {
	ID           uuid.UUID
	Title        string
	Slug         string
	Kind         string
	Purpose      string
	Typology     string
	PriceEur     float64
	District     string
	Municipality string
	Parish       string
	AreaM2       float64
	Bedrooms     int
	Bathrooms    int
	Parking      int
	EnergyRating string
	Featured     bool
	CreatedAt    time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const propertyColumns = `id, title, slug, kind, purpose, typology, price_eur,
	district, municipality, parish, area_m2, bedrooms, bathrooms, parking,
	energy_rating, featured, created_at`

func scanProperty(row pgx.Row) (Property, error) {
	var p Property
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Kind, &p.Purpose, &p.Typology, &p.PriceEur,
		&p.District, &p.Municipality, &p.Parish, &p.AreaM2, &p.Bedrooms, &p.Bathrooms, &p.Parking,
		&p.EnergyRating, &p.Featured, &p.CreatedAt,
	)
	return p, err
}

// List returns the full catalog in stable creation order. The catalog is
// small (a storefront inventory, not a listings aggregator), so no paging.
func (r *Repository) List(ctx context.Context) ([]Property, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+propertyColumns+`
		FROM properties
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}

	return items, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Property, error) {
	p, err := scanProperty(r.pool.QueryRow(ctx, `
		SELECT `+propertyColumns+`
		FROM properties WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Property{}, ErrNotFound
	}
	if err != nil {
		return Property{}, err
	}
	return p, nil
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (Property, error) {
	p, err := scanProperty(r.pool.QueryRow(ctx, `
		SELECT `+propertyColumns+`
		FROM properties WHERE slug = $1
	`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return Property{}, ErrNotFound
	}
	if err != nil {
		return Property{}, err
	}
	return p, nil
}

// ListFeatured returns featured properties, newest first.
func (r *Repository) ListFeatured(ctx context.Context, limit int) ([]Property, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+propertyColumns+`
		FROM properties
		WHERE featured = true
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Property, 0, limit)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}

	return items, rows.Err()
}
