package engine

import (
	"errors"
	"fmt"

	"github.com/yourusername/egtb/internal/movegen"
)

// ErrArenaFull is returned when the successor arena overflows its
// configured bound.
var ErrArenaFull = errors.New("move cache arena full")

// buildMoveCache fills the CSR legal-move cache: a dense offsets array
// of length N+1 and a flat arena of successor indices. Illegal
// positions contribute no successors. The arena is pre-sized from
// Options.SuccessorsPerPosition and the build fails cleanly when the
// bound is exceeded.
func (t *Table) buildMoveCache() error {
	capacity := int64(t.n) * int64(t.opts.SuccessorsPerPosition)
	t.offsets = make([]int64, t.n+1)
	t.succ = make([]uint32, capacity)

	gen := t.newGenerator()
	pos := make([]int, t.spec.Len()+1)
	succPos := make([]int, t.spec.Len()+1)
	moves := make([]movegen.Move, 0, movegen.MaxMoves)

	var used int64
	for p := 0; p < t.n; p++ {
		t.offsets[p] = used
		if !t.legalIndex(p) {
			continue
		}
		t.spec.FromIndex(p, pos)
		moves = gen.Append(moves[:0], pos)
		if used+int64(len(moves)) > capacity {
			return fmt.Errorf("%w: %d entries for %d positions (factor %d)",
				ErrArenaFull, used+int64(len(moves)), t.n, t.opts.SuccessorsPerPosition)
		}
		for _, m := range moves {
			movegen.Successor(pos, m, succPos)
			t.succ[used] = uint32(t.spec.ToIndex(succPos))
			used++
		}
	}
	t.offsets[t.n] = used
	t.succ = t.succ[:used]

	t.log.Info().
		Int64("successors", used).
		Int64("arena_capacity", capacity).
		Msg("cached legal moves")
	t.progress("move_cache", 0, int(used))
	return nil
}

// successors returns the cached successor indices of p.
func (t *Table) successors(p int) []uint32 {
	return t.succ[t.offsets[p]:t.offsets[p+1]]
}

// moveCount returns the cached legal move count of p.
func (t *Table) moveCount(p int) int {
	return int(t.offsets[p+1] - t.offsets[p])
}
