package status

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

func TestKingsAdjacentAt(t *testing.T) {
	tests := []struct {
		bk, wk int
		want   bool
	}{
		{0, 1, true},
		{0, 9, true},
		{0, 8, true},
		{0, 2, false},
		{27, 36, true},
		{27, 45, false},
	}
	for _, tt := range tests {
		pos := []int{0, tt.bk, tt.wk, position.Dead}
		if got := KingsAdjacentAt(pos); got != tt.want {
			t.Errorf("KingsAdjacentAt(bk=%d, wk=%d) = %v, expected %v", tt.bk, tt.wk, got, tt.want)
		}
	}
}

func TestOnTopAt(t *testing.T) {
	if !OnTopAt([]int{0, 0, 18, 18}) {
		t.Error("piece on the white king's square should be on top")
	}
	if OnTopAt([]int{0, 0, 18, 20}) {
		t.Error("distinct squares are not on top")
	}
	// Two dead pieces share the sentinel without overlapping.
	if OnTopAt([]int{0, 0, 18, position.Dead, position.Dead}) {
		t.Error("dead pieces never overlap")
	}
}

func TestBadPawnAt(t *testing.T) {
	wp := spec(t, "WP")
	if !BadPawnAt(wp.Pieces, []int{0, 56, 10, 3}) {
		t.Error("white pawn on row 0 is a bad pawn")
	}
	if BadPawnAt(wp.Pieces, []int{0, 56, 10, 11}) {
		t.Error("white pawn on row 1 is fine")
	}
	if BadPawnAt(wp.Pieces, []int{0, 56, 10, position.Dead}) {
		t.Error("dead pawn is never bad")
	}

	bp := spec(t, "BP")
	if !BadPawnAt(bp.Pieces, []int{0, 7, 10, 59}) {
		t.Error("black pawn on row 7 is a bad pawn")
	}
	if BadPawnAt(bp.Pieces, []int{0, 7, 10, 51}) {
		t.Error("black pawn on row 6 is fine")
	}
}

// A white rook aiming at the black king is a normal check on Black's
// turn and an unreachable position on White's turn.
func TestCheckBitsByTurn(t *testing.T) {
	wr := spec(t, "WR")
	// Rook e8, black king e1, white king far off the file.
	blackToMove := []int{1, 4, 17, 60}
	whiteToMove := []int{0, 4, 17, 60}

	if got := CheckBits(wr.Pieces, blackToMove); got != InCheck {
		t.Errorf("black to move: CheckBits = %d, expected InCheck", got)
	}
	if got := CheckBits(wr.Pieces, whiteToMove); got != BadCheck {
		t.Errorf("white to move: CheckBits = %d, expected BadCheck", got)
	}

	if got := IllegalBits(wr.Pieces, whiteToMove); got != BadCheck {
		t.Errorf("IllegalBits = %d, expected BadCheck", got)
	}
	if got := IllegalBits(wr.Pieces, blackToMove); got != 0 {
		t.Errorf("IllegalBits = %d, expected legal", got)
	}
}

func TestIllegalBitsDominance(t *testing.T) {
	wq := spec(t, "WQ")

	// Adjacent kings dominate everything else.
	if got := IllegalBits(wq.Pieces, []int{0, 0, 1, 1}); got != KingsAdjacent {
		t.Errorf("IllegalBits = %d, expected KingsAdjacent", got)
	}
	// Overlapping queen reports on-top once the kings are apart.
	if got := IllegalBits(wq.Pieces, []int{0, 0, 18, 18}); got != OnTop {
		t.Errorf("IllegalBits = %d, expected OnTop", got)
	}
}

func TestInsufficientBase(t *testing.T) {
	tests := []struct {
		id   string
		pos  []int
		want bool
	}{
		{"WB", []int{0, 0, 18, 27}, true},            // lone bishop
		{"WN", []int{0, 0, 18, 27}, true},            // lone knight
		{"WQ", []int{0, 0, 18, 27}, false},           // queen mates
		{"WQ", []int{0, 0, 18, position.Dead}, true}, // bare kings
		{"WR", []int{0, 0, 18, 27}, false},           // rook mates
		{"WBWN", []int{0, 0, 18, 27, 30}, false},     // two minors
		{"WBWN", []int{0, 0, 18, position.Dead, 30}, true},
	}
	for _, tt := range tests {
		s := spec(t, tt.id)
		if got := InsufficientBase(s.Pieces, tt.pos); got != tt.want {
			t.Errorf("InsufficientBase(%s, %v) = %v, expected %v", tt.id, tt.pos, got, tt.want)
		}
	}
}
