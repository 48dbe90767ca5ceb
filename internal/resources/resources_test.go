package resources

import "testing"

func TestTrySubtractConservesTotal(t *testing.T) {
	var cell, inv Bag
	cell.Add(Food, 3)
	if !cell.TrySubtract(Food, 1) {
		t.Fatal("expected subtract to succeed")
	}
	inv.Add(Food, 1)
	if cell[Food] != 2 {
		t.Fatalf("expected cell food=2, got %d", cell[Food])
	}
	if inv[Food] != 1 {
		t.Fatalf("expected inventory food=1, got %d", inv[Food])
	}
}

func TestTrySubtractFailsWhenInsufficient(t *testing.T) {
	var b Bag
	b.Add(Linemate, 1)
	if b.TrySubtract(Linemate, 2) {
		t.Fatal("expected subtract of more than held to fail")
	}
	if b[Linemate] != 1 {
		t.Fatalf("bag should be unchanged on failed subtract, got %d", b[Linemate])
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range WireOrder {
		parsed, ok := ParseKind(k.Name())
		if !ok || parsed != k {
			t.Fatalf("round trip failed for %v", k)
		}
	}
	if _, ok := ParseKind("gold"); ok {
		t.Fatal("expected unknown resource name to fail")
	}
}

func TestCoversAndSubtractAll(t *testing.T) {
	var cell Bag
	cell.Add(Linemate, 2)
	cell.Add(Sibur, 1)
	need := Bag{Linemate: 1, Sibur: 1}
	if !cell.Covers(need) {
		t.Fatal("expected cell to cover requirement")
	}
	cell.SubtractAll(need)
	if cell[Linemate] != 1 || cell[Sibur] != 0 {
		t.Fatalf("unexpected bag after subtract: %+v", cell)
	}
}
