package attack

import (
	"testing"

	"github.com/yourusername/egtb/internal/position"
)

func spec(t *testing.T, id string) *position.Spec {
	t.Helper()
	s, err := position.ParseID(id)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRookAttacks(t *testing.T) {
	wr := spec(t, "WR")

	tests := []struct {
		name string
		pos  []int
		want bool
	}{
		// Rook a1, black king a8, white king off the file.
		{"open file", []int{0, 56, 10, 0}, true},
		// White king a4 blocks the file.
		{"blocked by own king", []int{0, 56, 24, 0}, false},
		// Same rank.
		{"open rank", []int{0, 63, 10, 56}, true},
		// No alignment.
		{"off line", []int{0, 63, 10, 9}, false},
		// Captured rook.
		{"dead rook", []int{0, 56, 10, position.Dead}, false},
	}

	for _, tt := range tests {
		if got := AttacksEnemyKing(wr.Pieces, tt.pos, 2); got != tt.want {
			t.Errorf("%s: AttacksEnemyKing = %v, expected %v", tt.name, got, tt.want)
		}
	}
}

func TestBishopAttacks(t *testing.T) {
	wb := spec(t, "WB")

	tests := []struct {
		name string
		pos  []int
		want bool
	}{
		// Bishop a1, black king h8, long diagonal clear.
		{"open diagonal", []int{0, 63, 16, 0}, true},
		// White king d4 sits on the diagonal.
		{"blocked by own king", []int{0, 63, 27, 0}, false},
		// Bishop h1, black king a8 on the anti-diagonal.
		{"anti-diagonal", []int{0, 56, 8, 7}, true},
		{"anti-diagonal blocked", []int{0, 56, 35, 7}, false},
		// No shared diagonal.
		{"off line", []int{0, 62, 16, 0}, false},
		{"dead bishop", []int{0, 63, 16, position.Dead}, false},
	}

	for _, tt := range tests {
		if got := AttacksEnemyKing(wb.Pieces, tt.pos, 2); got != tt.want {
			t.Errorf("%s: AttacksEnemyKing = %v, expected %v", tt.name, got, tt.want)
		}
	}
}

func TestQueenAttacks(t *testing.T) {
	wq := spec(t, "WQ")

	// Queen combines rook and bishop lines.
	if !AttacksEnemyKing(wq.Pieces, []int{0, 56, 10, 0}, 2) {
		t.Error("queen should attack along the file")
	}
	if !AttacksEnemyKing(wq.Pieces, []int{0, 63, 10, 0}, 2) {
		t.Error("queen should attack along the diagonal")
	}
	if AttacksEnemyKing(wq.Pieces, []int{0, 62, 10, 1}, 2) {
		t.Error("queen on b1 should not attack g8")
	}
}

func TestKnightAttacks(t *testing.T) {
	wn := spec(t, "WN")

	tests := []struct {
		king int
		want bool
	}{
		{17, true},  // b3 from a1
		{10, true},  // c2 from a1
		{16, false}, // a3 is not a knight move
		{9, false},  // b2 is not a knight move
	}
	for _, tt := range tests {
		pos := []int{0, tt.king, 40, 0} // knight a1, white king a6
		if got := AttacksEnemyKing(wn.Pieces, pos, 2); got != tt.want {
			t.Errorf("knight a1 vs king %d: got %v, expected %v", tt.king, got, tt.want)
		}
	}

	// Knights jump over blockers.
	pos := []int{0, 17, 9, 0} // white king b2 sits between
	if !AttacksEnemyKing(wn.Pieces, pos, 2) {
		t.Error("knight attack should not be blockable")
	}
}

func TestPawnAttacks(t *testing.T) {
	wp := spec(t, "WP")
	// White pawn a2 covers b3 only.
	if !AttacksEnemyKing(wp.Pieces, []int{0, 17, 40, 8}, 2) {
		t.Error("white pawn a2 should attack b3")
	}
	if AttacksEnemyKing(wp.Pieces, []int{0, 16, 40, 8}, 2) {
		t.Error("white pawn should not attack straight ahead")
	}
	if AttacksEnemyKing(wp.Pieces, []int{0, 1, 40, 8}, 2) {
		t.Error("white pawn should not attack backward")
	}

	bp := spec(t, "BP")
	// Black pawn b7 covers a6 and c6; it attacks the white king.
	if !AttacksEnemyKing(bp.Pieces, []int{0, 63, 40, 49}, 2) {
		t.Error("black pawn b7 should attack a6")
	}
	if AttacksEnemyKing(bp.Pieces, []int{0, 63, 57, 49}, 2) {
		t.Error("black pawn should not attack upward")
	}
}
