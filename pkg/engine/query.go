package engine

import (
	"fmt"

	"github.com/yourusername/egtb/internal/movegen"
	"github.com/yourusername/egtb/internal/position"
	"github.com/yourusername/egtb/internal/status"
)

// index validates a query position array and returns its encoded
// index. Malformed queries report false; callers answer them with the
// Illegal/NoColor sentinels rather than an error.
func (t *Table) index(pos []int) (int, bool) {
	p, err := t.spec.CheckIndex(pos)
	if err != nil {
		return 0, false
	}
	return p, true
}

// Value returns V at the encoded index, or Illegal for malformed
// queries.
func (t *Table) Value(pos []int) int8 {
	p, ok := t.index(pos)
	if !ok {
		return Illegal
	}
	return t.v[p]
}

// Status returns S at the encoded index. It is zero when the status
// array was not loaded or the query is malformed.
func (t *Table) Status(pos []int) uint8 {
	p, ok := t.index(pos)
	if !ok || t.s == nil {
		return 0
	}
	return t.s[p]
}

// ExpectedWinner derives the winning side from V and S: illegal,
// drawn-terminal and unforceable positions have no winner; a positive
// value wins for White and a negative one for Black; value zero means
// the side to move is checkmated, so the opponent wins.
func (t *Table) ExpectedWinner(pos []int) position.Color {
	p, ok := t.index(pos)
	if !ok || !t.legalIndex(p) {
		return position.NoColor
	}
	v := t.v[p]
	if t.s == nil {
		// Loaded without S: the rewrite already folded the drawn
		// terminals into Unforceable.
		if v == Unforceable {
			return position.NoColor
		}
	} else if t.s[p]&(status.InsufficientMaterial|status.InStaleMate) != 0 {
		return position.NoColor
	}
	switch {
	case v == Unknown || v == Unforceable:
		return position.NoColor
	case v > 0:
		return position.White
	case v < 0:
		return position.Black
	}
	return t.turnOf(p).Other()
}

// queryGenerator judges successors by classifying them directly, so
// legal-move queries need neither the move cache nor the status array.
func (t *Table) queryGenerator() *movegen.Generator {
	return movegen.NewGenerator(t.spec, func(pos []int) bool {
		return status.IllegalBits(t.spec.Pieces, pos) == 0
	})
}

// LegalMoves computes the legal moves of a position on demand. Illegal
// or malformed positions have none.
func (t *Table) LegalMoves(pos []int) []movegen.Move {
	p, ok := t.index(pos)
	if !ok || !t.legalIndex(p) {
		return nil
	}
	return t.queryGenerator().Append(nil, pos)
}

// Apply produces the successor of a legal move, including captures. It
// fails if the originating position or the produced position is not
// legal.
func (t *Table) Apply(pos []int, m movegen.Move) ([]int, error) {
	p, ok := t.index(pos)
	if !ok || !t.legalIndex(p) {
		return nil, fmt.Errorf("apply from an illegal position")
	}
	succ := make([]int, len(pos))
	movegen.Successor(pos, m, succ)
	if status.IllegalBits(t.spec.Pieces, succ) != 0 {
		return nil, fmt.Errorf("move %d:%d-%d yields an illegal position", m.Slot, m.From, m.To)
	}
	return succ, nil
}
