package engine

import (
	"github.com/yourusername/egtb/internal/position"
	"github.com/yourusername/egtb/internal/status"
)

// classifyIllegal marks the board-shape illegal kinds. Each pass skips
// positions already found illegal so every illegal index reports a
// single kind, with kings-adjacent dominating.
func (t *Table) classifyIllegal() {
	pos := make([]int, t.spec.Len()+1)
	var adjacent, onTop, badPawn int

	for p := 0; p < t.n; p++ {
		t.spec.FromIndex(p, pos)
		if status.KingsAdjacentAt(pos) {
			t.s[p] |= status.KingsAdjacent
			adjacent++
			continue
		}
		if status.OnTopAt(pos) {
			t.s[p] |= status.OnTop
			onTop++
			continue
		}
		if status.BadPawnAt(t.spec.Pieces, pos) {
			t.s[p] |= status.BadPawn
			badPawn++
		}
	}

	t.log.Info().
		Int("kings_adjacent", adjacent).
		Int("on_top", onTop).
		Int("bad_pawn", badPawn).
		Msg("classified illegal configurations")
	t.progress("illegal", 0, adjacent+onTop+badPawn)
}

// classifyChecks marks IN_CHECK and BAD_CHECK on the remaining legal
// positions. A piece attacking the side-to-move's king is a check; one
// attacking the side that just moved makes the position unreachable.
func (t *Table) classifyChecks() {
	pos := make([]int, t.spec.Len()+1)
	var checks, badChecks int

	for p := 0; p < t.n; p++ {
		if !t.legalIndex(p) {
			continue
		}
		t.spec.FromIndex(p, pos)
		bits := status.CheckBits(t.spec.Pieces, pos)
		if bits == 0 {
			continue
		}
		t.s[p] |= bits
		if bits&status.InCheck != 0 {
			checks++
		}
		if bits&status.BadCheck != 0 {
			badChecks++
		}
	}

	t.log.Info().
		Int("in_check", checks).
		Int("bad_check", badChecks).
		Msg("classified checks")
	t.progress("checks", 0, checks+badChecks)
}

// classifyInsufficient marks the immediate insufficient-material
// terminals: value 0, bit set.
func (t *Table) classifyInsufficient() {
	pos := make([]int, t.spec.Len()+1)
	count := 0

	for p := 0; p < t.n; p++ {
		if !t.legalIndex(p) {
			continue
		}
		t.spec.FromIndex(p, pos)
		if status.InsufficientBase(t.spec.Pieces, pos) {
			t.s[p] |= status.InsufficientMaterial
			t.v[p] = 0
			count++
		}
	}

	t.log.Info().Int("positions", count).Msg("classified insufficient material")
	t.progress("insufficient_material", 0, count)
}

// classifyEndings marks stalemates and checkmates: legal positions
// with no legal moves, split on the check bit. Both are terminal with
// value 0.
func (t *Table) classifyEndings() {
	var stale, mate int

	for p := 0; p < t.n; p++ {
		if !t.legalIndex(p) || t.moveCount(p) != 0 {
			continue
		}
		if t.s[p]&status.InCheck != 0 {
			t.s[p] |= status.InCheckMate
			mate++
		} else {
			t.s[p] |= status.InStaleMate
			stale++
		}
		t.v[p] = 0
	}

	t.log.Info().
		Int("stalemates", stale).
		Int("checkmates", mate).
		Msg("classified endings")
	t.progress("endings", 0, stale+mate)
}

// turnOf is the fast path for the side to move of an index: the turn
// is the most significant digit of the codec.
func (t *Table) turnOf(p int) position.Color {
	if p < t.n/2 {
		return position.White
	}
	return position.Black
}
