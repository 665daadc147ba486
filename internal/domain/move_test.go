package domain

import "testing"

func TestMoveRoundTrip(t *testing.T) {
	for _, m := range Moves {
		parsed, err := ParseMove(m.String())
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", m.String(), err)
		}
		if parsed != m {
			t.Fatalf("ParseMove(%q) = %v, want %v", m.String(), parsed, m)
		}
	}
	if _, err := ParseMove("SIDEWAYS"); err == nil {
		t.Fatal("ParseMove accepted an unknown direction")
	}
}

func TestMoveOpposite(t *testing.T) {
	for _, m := range Moves {
		dr, dc := m.Delta()
		or, oc := m.Opposite().Delta()
		if dr+or != 0 || dc+oc != 0 {
			t.Fatalf("%s and %s are not opposite deltas", m, m.Opposite())
		}
	}
}
