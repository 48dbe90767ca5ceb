package player

import (
	"testing"

	"github.com/talgya/citadel/internal/geometry"
	"github.com/talgya/citadel/internal/resources"
)

func TestTickDecaysAndEatsFood(t *testing.T) {
	p := New(1, 0, geometry.Position{}, geometry.North)
	p.Satiety = 1
	p.Inventory.Add(resources.Food, 1)
	if r := p.Tick(); r != DecayAteFood {
		t.Fatalf("expected DecayAteFood, got %v", r)
	}
	if p.Satiety != StartingSatiety {
		t.Fatalf("expected satiety refilled to %d, got %d", StartingSatiety, p.Satiety)
	}
}

func TestTickDiesWithoutFood(t *testing.T) {
	p := New(1, 0, geometry.Position{}, geometry.North)
	p.Satiety = 1
	if r := p.Tick(); r != DecayDied {
		t.Fatalf("expected DecayDied, got %v", r)
	}
}

func TestTickOrdinaryDecrement(t *testing.T) {
	p := New(1, 0, geometry.Position{}, geometry.North)
	p.Satiety = 10
	if r := p.Tick(); r != DecayOk {
		t.Fatalf("expected DecayOk, got %v", r)
	}
	if p.Satiety != 9 {
		t.Fatalf("expected satiety 9, got %d", p.Satiety)
	}
}

func TestElevateCapsAtMax(t *testing.T) {
	p := New(1, 0, geometry.Position{}, geometry.North)
	p.Elevation = MaxElevation
	p.Elevate()
	if p.Elevation != MaxElevation {
		t.Fatalf("expected elevation capped at %d, got %d", MaxElevation, p.Elevation)
	}
}

func TestVisionCellCount(t *testing.T) {
	p := New(1, 0, geometry.Position{}, geometry.North)
	p.Elevation = 1
	if c := p.VisionCellCount(); c != 4 {
		t.Fatalf("expected 4 cells at elevation 1, got %d", c)
	}
}
