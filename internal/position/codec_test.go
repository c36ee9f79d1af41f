package position

import "testing"

func TestCodecRoundTrip(t *testing.T) {
	spec, err := ParseID("WQ")
	if err != nil {
		t.Fatal(err)
	}

	// Index -> position -> index over the whole space.
	if err := spec.VerifyCodec(); err != nil {
		t.Fatal(err)
	}

	// Position -> index -> position for hand-picked positions.
	positions := [][]int{
		{0, 0, 2, 0},
		{0, 56, 42, 41},
		{1, 63, 0, Dead},
		{1, 7, 49, 64},
	}
	got := make([]int, spec.Len()+1)
	for _, pos := range positions {
		idx := spec.ToIndex(pos)
		if idx < 0 || idx >= spec.Positions() {
			t.Fatalf("ToIndex(%v) = %d out of range", pos, idx)
		}
		spec.FromIndex(idx, got)
		for i := range pos {
			if got[i] != pos[i] {
				t.Errorf("round trip %v -> %d -> %v", pos, idx, got)
				break
			}
		}
	}
}

func TestCodecOrdering(t *testing.T) {
	spec, _ := ParseID("WQ")

	// The turn is the most significant digit.
	white := spec.ToIndex([]int{0, 63, 63, 64})
	black := spec.ToIndex([]int{1, 0, 0, 0})
	if white >= black {
		t.Errorf("white max index %d should precede black min index %d", white, black)
	}
	if spec.Turn(white) != White {
		t.Errorf("Turn(%d) = %v, expected white", white, spec.Turn(white))
	}
	if spec.Turn(black) != Black {
		t.Errorf("Turn(%d) = %v, expected black", black, spec.Turn(black))
	}
}

func TestCheckIndex(t *testing.T) {
	spec, _ := ParseID("WQ")

	if _, err := spec.CheckIndex([]int{0, 56, 42, 41}); err != nil {
		t.Errorf("valid position rejected: %v", err)
	}
	if _, err := spec.CheckIndex([]int{0, 56, 42, Dead}); err != nil {
		t.Errorf("dead queen rejected: %v", err)
	}

	bad := [][]int{
		{0, 56, 42},        // too short
		{2, 56, 42, 41},    // bad turn
		{0, 64, 42, 41},    // king off the board
		{0, 56, Dead, 41},  // king cannot be dead
		{0, 56, 42, 65},    // square out of range
		{0, -1, 42, 41},    // negative square
		{0, 56, 42, 41, 0}, // too long
	}
	for _, pos := range bad {
		if _, err := spec.CheckIndex(pos); err == nil {
			t.Errorf("CheckIndex(%v) should fail", pos)
		}
	}
}
