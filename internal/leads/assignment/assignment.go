// Package assignment decides which agent a new lead lands on. Selection is a
// round-robin over the non-admin roster, narrowed by municipality coverage
// when possible, driven by a persisted counter so the rotation survives
// restarts.
package assignment

import (
	"context"
	"sort"
	"strings"

	agentrepo "atlascasa_backend/internal/agents/repository"
	catalogrepo "atlascasa_backend/internal/catalog/repository"
)

// CounterStore hands out monotonically increasing values per key. Next
// returns the value before the increment and always advances, even when the
// caller ends up not assigning anyone.
type CounterStore interface {
	Next(ctx context.Context, key string) (int64, error)
}

// CursorStrategy names the counter a pool draws from.
type CursorStrategy interface {
	Key(pool []agentrepo.Agent) string
}

// GlobalCursor shares one counter across every assignment. Pools narrowed
// differently between calls still advance the same cursor, so an agent can be
// skipped in a rotation. This matches the established behavior and is the
// default.
type GlobalCursor struct{}

func (GlobalCursor) Key([]agentrepo.Agent) string { return "global" }

// PerPoolCursor keys the counter by pool membership, giving each distinct
// pool its own fair rotation.
type PerPoolCursor struct{}

func (PerPoolCursor) Key(pool []agentrepo.Agent) string {
	ids := make([]string, len(pool))
	for i, a := range pool {
		ids[i] = a.ID.String()
	}
	sort.Strings(ids)
	return "pool:" + strings.Join(ids, ",")
}

type Policy struct {
	counters CounterStore
	cursor   CursorStrategy
}

func NewPolicy(counters CounterStore, cursor CursorStrategy) *Policy {
	if cursor == nil {
		cursor = GlobalCursor{}
	}
	return &Policy{counters: counters, cursor: cursor}
}

// Input carries the lead fields assignment cares about.
type Input struct {
	PreferredMunicipality string
	Property              *catalogrepo.Property
}

// TargetMunicipality resolves where the lead wants to be, preferring the
// explicit preference over the linked property's location.
func TargetMunicipality(in Input) string {
	if in.PreferredMunicipality != "" {
		return in.PreferredMunicipality
	}
	if in.Property != nil {
		return in.Property.Municipality
	}
	return ""
}

// Assign picks an agent for the lead, or nil when no candidate exists. An
// empty pool is not an error; the lead simply stays unassigned. The counter
// advances on every call regardless of the outcome.
func (p *Policy) Assign(ctx context.Context, agents []agentrepo.Agent, in Input) (*agentrepo.Agent, error) {
	pool := candidatePool(agents, TargetMunicipality(in))

	n, err := p.counters.Next(ctx, p.cursor.Key(pool))
	if err != nil {
		return nil, err
	}

	if len(pool) == 0 {
		return nil, nil
	}

	picked := pool[int(n%int64(len(pool)))]
	return &picked, nil
}

// candidatePool drops admins, then narrows to coverage of the target
// municipality. Geography never blocks assignment: an empty narrowing falls
// back to the full non-admin pool.
func candidatePool(agents []agentrepo.Agent, municipality string) []agentrepo.Agent {
	pool := make([]agentrepo.Agent, 0, len(agents))
	for _, a := range agents {
		if a.Role != agentrepo.RoleAdmin {
			pool = append(pool, a)
		}
	}

	if municipality == "" {
		return pool
	}

	covered := make([]agentrepo.Agent, 0, len(pool))
	for _, a := range pool {
		if a.Covers(municipality) {
			covered = append(covered, a)
		}
	}
	if len(covered) == 0 {
		return pool
	}
	return covered
}
