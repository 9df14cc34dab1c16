package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("agent not found")

// Role values for agents.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleConsultant = "consultant"
)

// Agent is a CRM team member. Municipalities list the geographic coverage
// used by the assignment policy.
type Agent struct {
	ID             uuid.UUID
	Name           string
	Role           string
	Municipalities []string
	WhatsAppPhone  string
	Email          string
	CreatedAt      time.Time
}

// Covers reports whether the agent's coverage includes the municipality.
func (a Agent) Covers(municipality string) bool {
	for _, m := range a.Municipalities {
		if m == municipality {
			return true
		}
	}
	return false
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all agents in creation order. The roster is the assignment
// pool, so a stable order matters for round-robin determinism.
func (r *Repository) List(ctx context.Context) ([]Agent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, role, municipalities, whatsapp_phone, email, created_at
		FROM agents
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agents := make([]Agent, 0)
	for rows.Next() {
		var a Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Role, &a.Municipalities, &a.WhatsAppPhone, &a.Email, &a.CreatedAt); err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}

	return agents, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Agent, error) {
	var a Agent
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, role, municipalities, whatsapp_phone, email, created_at
		FROM agents WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.Role, &a.Municipalities, &a.WhatsAppPhone, &a.Email, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Agent{}, ErrNotFound
	}
	if err != nil {
		return Agent{}, err
	}
	return a, nil
}

type CreateAgentParams struct {
	Name           string
	Role           string
	Municipalities []string
	WhatsAppPhone  string
	Email          string
}

func (r *Repository) Create(ctx context.Context, params CreateAgentParams) (Agent, error) {
	var a Agent
	err := r.pool.QueryRow(ctx, `
		INSERT INTO agents (name, role, municipalities, whatsapp_phone, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, role, municipalities, whatsapp_phone, email, created_at
	`, params.Name, params.Role, params.Municipalities, params.WhatsAppPhone, params.Email).Scan(
		&a.ID, &a.Name, &a.Role, &a.Municipalities, &a.WhatsAppPhone, &a.Email, &a.CreatedAt,
	)
	if err != nil {
		return Agent{}, err
	}
	return a, nil
}

type UpdateAgentParams struct {
	Name           *string
	Role           *string
	Municipalities []string
	WhatsAppPhone  *string
	Email          *string
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateAgentParams) (Agent, error) {
	var a Agent
	err := r.pool.QueryRow(ctx, `
		UPDATE agents SET
			name = COALESCE($2, name),
			role = COALESCE($3, role),
			municipalities = COALESCE($4, municipalities),
			whatsapp_phone = COALESCE($5, whatsapp_phone),
			email = COALESCE($6, email)
		WHERE id = $1
		RETURNING id, name, role, municipalities, whatsapp_phone, email, created_at
	`, id, params.Name, params.Role, params.Municipalities, params.WhatsAppPhone, params.Email).Scan(
		&a.ID, &a.Name, &a.Role, &a.Municipalities, &a.WhatsAppPhone, &a.Email, &a.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Agent{}, ErrNotFound
	}
	if err != nil {
		return Agent{}, err
	}
	return a, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
