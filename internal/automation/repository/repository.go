package repository

import (
	"context"
	"errors"
	"time"

	"atlascasa_backend/internal/automation/engine"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrRuleNotFound = errors.New("automation rule not found")

// Only the most recent run records are kept.
const runRetention = 250

// Execer is satisfied by both *pgxpool.Pool and pgx.Tx, so run inserts can
// join the lead creation transaction.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Pool exposes the underlying pool as an Execer for callers inserting runs
// outside any transaction.
func (r *Repository) Pool() Execer { return r.pool }

// ListRules returns every rule in its authored position. Position is the
// evaluation order, so it is part of the rule set's meaning.
func (r *Repository) ListRules(ctx context.Context) ([]engine.Rule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, enabled, trigger, actions
		FROM automation_rules
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make([]engine.Rule, 0)
	for rows.Next() {
		var rule engine.Rule
		var actionsRaw []byte
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.Enabled, &rule.Trigger, &actionsRaw); err != nil {
			return nil, err
		}
		actions, err := engine.ActionsFromJSON(actionsRaw)
		if err != nil {
			return nil, err
		}
		rule.Actions = actions
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

func (r *Repository) GetRule(ctx context.Context, id uuid.UUID) (engine.Rule, error) {
	var rule engine.Rule
	var actionsRaw []byte
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, enabled, trigger, actions
		FROM automation_rules
		WHERE id = $1
	`, id).Scan(&rule.ID, &rule.Name, &rule.Enabled, &rule.Trigger, &actionsRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return engine.Rule{}, ErrRuleNotFound
	}
	if err != nil {
		return engine.Rule{}, err
	}

	actions, err := engine.ActionsFromJSON(actionsRaw)
	if err != nil {
		return engine.Rule{}, err
	}
	rule.Actions = actions
	return rule, nil
}

// ReplaceRules swaps the whole rule set atomically. The CRM edits rules as
// one document, so partial updates are not a thing.
func (r *Repository) ReplaceRules(ctx context.Context, rules []engine.Rule) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM automation_rules`); err != nil {
		return err
	}

	for i, rule := range rules {
		actionsRaw, err := engine.ActionsJSON(rule.Actions)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO automation_rules (id, name, enabled, trigger, actions, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, rule.ID, rule.Name, rule.Enabled, rule.Trigger, actionsRaw, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// InsertRuns writes the audit records through the given executor, which may
// be the lead creation transaction.
func (r *Repository) InsertRuns(ctx context.Context, exec Execer, runs []engine.Run) error {
	for _, run := range runs {
		_, err := exec.Exec(ctx, `
			INSERT INTO automation_runs (id, rule_id, lead_id, occurred_at, summary)
			VALUES ($1, $2, $3, $4, $5)
		`, run.ID, run.RuleID, run.LeadID, run.Timestamp, run.Summary)
		if err != nil {
			return err
		}
	}
	return nil
}

// TrimRuns evicts the oldest records past the retention cap. Called outside
// the creation transaction; trimming is housekeeping, not part of the commit.
func (r *Repository) TrimRuns(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM automation_runs
		WHERE id NOT IN (
			SELECT id FROM automation_runs
			ORDER BY occurred_at DESC, id DESC
			LIMIT $1
		)
	`, runRetention)
	return err
}

// ListRuns returns the newest run records first.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]engine.Run, error) {
	if limit <= 0 || limit > runRetention {
		limit = runRetention
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, rule_id, lead_id, occurred_at, summary
		FROM automation_runs
		ORDER BY occurred_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]engine.Run, 0, limit)
	for rows.Next() {
		var run engine.Run
		var ts time.Time
		if err := rows.Scan(&run.ID, &run.RuleID, &run.LeadID, &ts, &run.Summary); err != nil {
			return nil, err
		}
		run.Timestamp = ts
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
