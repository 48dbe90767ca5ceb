package world

import (
	"testing"

	"github.com/talgya/citadel/internal/entropy"
	"github.com/talgya/citadel/internal/geometry"
	"github.com/talgya/citadel/internal/ids"
	"github.com/talgya/citadel/internal/resources"
	"github.com/talgya/citadel/internal/team"
)

func TestAddSubtractConservesTotals(t *testing.T) {
	g := NewGrid(geometry.Size{W: 4, H: 4})
	p := geometry.Position{X: 1, Y: 1}
	g.AddResource(p, resources.Food, 3)
	if g.Totals[resources.Food] != 3 {
		t.Fatalf("expected total 3, got %d", g.Totals[resources.Food])
	}
	if !g.TrySubtractResource(p, resources.Food, 2) {
		t.Fatal("expected subtract to succeed")
	}
	if g.Totals[resources.Food] != 1 {
		t.Fatalf("expected total 1 after subtract, got %d", g.Totals[resources.Food])
	}
	if g.TrySubtractResource(p, resources.Food, 5) {
		t.Fatal("expected subtract beyond available to fail")
	}
}

func TestRefillReachesTarget(t *testing.T) {
	g := NewGrid(geometry.Size{W: 10, H: 10})
	src := entropy.NewSource(7)
	g.Refill(src)
	area := 100
	for _, kind := range resources.WireOrder {
		target := int(RefillDensity[kind] * float64(area))
		if g.Totals[kind] != target {
			t.Fatalf("kind %v: expected total %d, got %d", kind, target, g.Totals[kind])
		}
	}
	// A second refill with nothing consumed should be a no-op.
	before := g.Totals
	g.Refill(src)
	if g.Totals != before {
		t.Fatalf("expected stable refill, got %+v vs %+v", g.Totals, before)
	}
}

func TestEggRegistryDropAndBreak(t *testing.T) {
	r := NewEggRegistry()
	gen := ids.NewGenerator(1)
	src := entropy.NewSource(3)
	pos := geometry.Position{X: 2, Y: 2}
	r.Spawn(gen.Next(), team.Id(0), pos)
	r.Spawn(gen.Next(), team.Id(0), pos)
	r.Spawn(gen.Next(), team.Id(1), geometry.Position{X: 9, Y: 9})

	if c := r.CountForTeam(team.Id(0)); c != 2 {
		t.Fatalf("expected 2 eggs for team 0, got %d", c)
	}
	egg, ok := r.Drop(team.Id(0), src)
	if !ok || egg.Team != team.Id(0) {
		t.Fatalf("expected to drop a team-0 egg, got %+v ok=%v", egg, ok)
	}
	if c := r.CountForTeam(team.Id(0)); c != 1 {
		t.Fatalf("expected 1 remaining team-0 egg, got %d", c)
	}

	broken := r.BreakAt(pos)
	if len(broken) != 1 {
		t.Fatalf("expected exactly 1 egg broken at pos, got %d", len(broken))
	}
	if len(r.All()) != 1 {
		t.Fatalf("expected 1 egg left overall, got %d", len(r.All()))
	}
}

func TestDropFromEmptyTeamFails(t *testing.T) {
	r := NewEggRegistry()
	src := entropy.NewSource(1)
	if _, ok := r.Drop(team.Id(5), src); ok {
		t.Fatal("expected drop on team with no eggs to fail")
	}
}
