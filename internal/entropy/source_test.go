package entropy

import "testing"

func TestSameSeedReproduces(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)
	for i := 0; i < 20; i++ {
		if a.IntN(1000) != b.IntN(1000) {
			t.Fatal("expected identical sequences from identical seeds")
		}
	}
}
