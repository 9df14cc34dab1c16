package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CounterRepository is the persisted assignment.CounterStore. The upsert
// returns the pre-increment value, so concurrent callers each get a distinct
// rotation slot.
type CounterRepository struct {
	pool *pgxpool.Pool
}

func NewCounterRepository(pool *pgxpool.Pool) *CounterRepository {
	return &CounterRepository{pool: pool}
}

func (r *CounterRepository) Next(ctx context.Context, key string) (int64, error) {
	var value int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO assignment_counters (key, value)
		VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET value = assignment_counters.value + 1
		RETURNING value - 1
	`, key).Scan(&value)
	return value, err
}
