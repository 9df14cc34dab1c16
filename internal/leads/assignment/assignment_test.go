package assignment

import (
	"context"
	"testing"

	agentrepo "atlascasa_backend/internal/agents/repository"
	catalogrepo "atlascasa_backend/internal/catalog/repository"

	"github.com/google/uuid"
)

func agent(name, role string, municipalities ...string) agentrepo.Agent {
	return agentrepo.Agent{
		ID:             uuid.New(),
		Name:           name,
		Role:           role,
		Municipalities: municipalities,
	}
}

func TestAssignRoundRobinCycles(t *testing.T) {
	roster := []agentrepo.Agent{
		agent("Ana", agentrepo.RoleConsultant),
		agent("Bruno", agentrepo.RoleConsultant),
		agent("Carla", agentrepo.RoleManager),
	}
	policy := NewPolicy(NewMemoryCounterStore(), GlobalCursor{})

	want := []string{"Ana", "Bruno", "Carla", "Ana", "Bruno"}
	for i, name := range want {
		got, err := policy.Assign(context.Background(), roster, Input{})
		if err != nil {
			t.Fatalf("assign %d: %v", i, err)
		}
		if got == nil || got.Name != name {
			t.Fatalf("assign %d: got %v, want %s", i, got, name)
		}
	}
}

func TestAssignExcludesAdmins(t *testing.T) {
	roster := []agentrepo.Agent{
		agent("Admin", agentrepo.RoleAdmin),
		agent("Ana", agentrepo.RoleConsultant),
	}
	policy := NewPolicy(NewMemoryCounterStore(), GlobalCursor{})

	for i := 0; i < 3; i++ {
		got, err := policy.Assign(context.Background(), roster, Input{})
		if err != nil {
			t.Fatal(err)
		}
		if got == nil || got.Name != "Ana" {
			t.Fatalf("assign %d: expected Ana, got %v", i, got)
		}
	}
}

func TestAssignNarrowsByCoverage(t *testing.T) {
	roster := []agentrepo.Agent{
		agent("Ana", agentrepo.RoleConsultant, "Lisboa"),
		agent("Bruno", agentrepo.RoleConsultant, "Porto"),
	}
	policy := NewPolicy(NewMemoryCounterStore(), GlobalCursor{})

	got, err := policy.Assign(context.Background(), roster, Input{PreferredMunicipality: "Porto"})
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Name != "Bruno" {
		t.Fatalf("expected coverage narrowing to pick Bruno, got %v", got)
	}
}

func TestAssignFallsBackToFullPoolWhenNobodyCovers(t *testing.T) {
	roster := []agentrepo.Agent{
		agent("Ana", agentrepo.RoleConsultant, "Lisboa"),
		agent("Bruno", agentrepo.RoleConsultant, "Porto"),
	}
	policy := NewPolicy(NewMemoryCounterStore(), GlobalCursor{})

	got, err := policy.Assign(context.Background(), roster, Input{PreferredMunicipality: "Faro"})
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("geography must never block assignment")
	}
	if got.Name != "Ana" {
		t.Errorf("expected first of the fallback pool, got %s", got.Name)
	}
}

func TestAssignUsesPropertyMunicipalityAsFallbackTarget(t *testing.T) {
	roster := []agentrepo.Agent{
		agent("Ana", agentrepo.RoleConsultant, "Lisboa"),
		agent("Bruno", agentrepo.RoleConsultant, "Cascais"),
	}
	policy := NewPolicy(NewMemoryCounterStore(), GlobalCursor{})

	property := &catalogrepo.Property{Municipality: "Cascais"}
	got, err := policy.Assign(context.Background(), roster, Input{Property: property})
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Name != "Bruno" {
		t.Fatalf("expected property municipality to drive narrowing, got %v", got)
	}
}

func TestAssignEmptyPoolLeavesUnassignedButAdvancesCursor(t *testing.T) {
	store := NewMemoryCounterStore()
	policy := NewPolicy(store, GlobalCursor{})

	onlyAdmins := []agentrepo.Agent{agent("Admin", agentrepo.RoleAdmin)}
	got, err := policy.Assign(context.Background(), onlyAdmins, Input{})
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("expected no assignment from an admin-only roster, got %s", got.Name)
	}

	// The rotation advanced even though nobody was picked, so the next call
	// over a two-agent pool starts at index 1.
	roster := []agentrepo.Agent{
		agent("Ana", agentrepo.RoleConsultant),
		agent("Bruno", agentrepo.RoleConsultant),
	}
	got, err = policy.Assign(context.Background(), roster, Input{})
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Name != "Bruno" {
		t.Fatalf("expected the cursor to have advanced past Ana, got %v", got)
	}
}

func TestGlobalCursorSharesRotationAcrossPools(t *testing.T) {
	policy := NewPolicy(NewMemoryCounterStore(), GlobalCursor{})

	lisboa := []agentrepo.Agent{
		agent("Ana", agentrepo.RoleConsultant, "Lisboa"),
		agent("Bruno", agentrepo.RoleConsultant, "Lisboa"),
	}
	porto := []agentrepo.Agent{
		agent("Carla", agentrepo.RoleConsultant, "Porto"),
		agent("Diogo", agentrepo.RoleConsultant, "Porto"),
	}

	first, _ := policy.Assign(context.Background(), lisboa, Input{PreferredMunicipality: "Lisboa"})
	second, _ := policy.Assign(context.Background(), porto, Input{PreferredMunicipality: "Porto"})

	if first.Name != "Ana" {
		t.Errorf("expected Ana first, got %s", first.Name)
	}
	// A single shared counter means the Porto pool starts mid-rotation.
	if second.Name != "Diogo" {
		t.Errorf("expected Diogo from the shared cursor, got %s", second.Name)
	}
}

func TestPerPoolCursorIsolatesRotations(t *testing.T) {
	policy := NewPolicy(NewMemoryCounterStore(), PerPoolCursor{})

	lisboa := []agentrepo.Agent{
		agent("Ana", agentrepo.RoleConsultant, "Lisboa"),
		agent("Bruno", agentrepo.RoleConsultant, "Lisboa"),
	}
	porto := []agentrepo.Agent{
		agent("Carla", agentrepo.RoleConsultant, "Porto"),
		agent("Diogo", agentrepo.RoleConsultant, "Porto"),
	}

	first, _ := policy.Assign(context.Background(), lisboa, Input{PreferredMunicipality: "Lisboa"})
	second, _ := policy.Assign(context.Background(), porto, Input{PreferredMunicipality: "Porto"})

	if first.Name != "Ana" || second.Name != "Carla" {
		t.Errorf("expected each pool to start its own rotation, got %s and %s", first.Name, second.Name)
	}
}
