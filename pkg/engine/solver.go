package engine

import (
	"github.com/yourusername/egtb/internal/position"
	"github.com/yourusername/egtb/internal/status"
)

func abs8(v int8) int {
	if v < 0 {
		return -int(v)
	}
	return int(v)
}

// isDepth reports a real forced-outcome value (not a sentinel).
func isDepth(v int8) bool {
	return v > Unforceable
}

// noteDepth keeps maxDepth covering every assigned magnitude so the
// sweeps know how deep to look.
func (t *Table) noteDepth(n int) {
	if n > t.maxDepth {
		t.maxDepth = n
	}
}

// primeDepth seeds maxDepth from values already present, such as those
// inherited through the promotion bridge.
func (t *Table) primeDepth() {
	for p := 0; p < t.n; p++ {
		if isDepth(t.v[p]) {
			t.noteDepth(abs8(t.v[p]))
		}
	}
}

// solve runs the two interleaved fixed points. Each round runs the
// mate sweeps to exhaustion and then the insufficient-material sweeps;
// rounds repeat until one adds no label, so progress of either kind
// can unblock the other. Within a round the mate sweeps come first:
// when a side could force either outcome, the win takes precedence.
func (t *Table) solve() {
	t.primeDepth()
	for round := 1; ; round++ {
		labeled := t.solveMate()
		labeled += t.solveInsufficient()
		t.log.Info().
			Int("round", round).
			Int("labeled", labeled).
			Msg("retrograde round complete")
		if labeled == 0 {
			break
		}
	}
}

// solveMate iterates mate-in-n and response-mate-in-n for n = 1, 2, …
// until a whole iteration past the deepest known value adds nothing.
func (t *Table) solveMate() int {
	total := 0
	for n := 1; n <= MaxDepth; n++ {
		c := t.mateIn(n) + t.responseMateIn(n)
		total += c
		if c == 0 && n > t.maxDepth {
			break
		}
	}
	return total
}

// solveInsufficient runs the structurally identical sweeps for forced
// insufficient-material draws.
func (t *Table) solveInsufficient() int {
	total := 0
	for n := 1; n <= MaxDepth; n++ {
		c := t.insufficientIn(n) + t.responseInsufficientIn(n)
		total += c
		if c == 0 && n > t.maxDepth {
			break
		}
	}
	return total
}

// mateIn labels positions where the side to move has a winning move:
// for n = 1 a successor that is checkmate, for n > 1 a successor
// already labelled n-1 with the mover's sign. Stalemate and
// insufficient-material successors are drawn and never help.
func (t *Table) mateIn(n int) int {
	count := 0
	want := int8(n - 1)
	for p := 0; p < t.n; p++ {
		if t.v[p] != Unknown || !t.legalIndex(p) {
			continue
		}
		white := t.turnOf(p) == position.White
		found := false
		for _, q := range t.successors(p) {
			vq, sq := t.v[q], t.s[q]
			if n == 1 {
				if sq&status.InCheckMate != 0 {
					found = true
					break
				}
				continue
			}
			if vq == Unknown || sq&(status.InStaleMate|status.InsufficientMaterial) != 0 {
				continue
			}
			if (white && vq == want) || (!white && vq == -want) {
				found = true
				break
			}
		}
		if found {
			if white {
				t.v[p] = int8(n)
			} else {
				t.v[p] = int8(-n)
			}
			count++
		}
	}
	if count > 0 {
		t.noteDepth(n)
	}
	t.logPass("mate_in", n, count)
	return count
}

// responseMateIn labels losing positions: every successor is already
// labelled with the winner's sign and magnitude at most n, none is a
// draw terminal and none switches the winner. Positions with any
// undecided successor wait for a later sweep.
func (t *Table) responseMateIn(n int) int {
	count := 0
	for p := 0; p < t.n; p++ {
		if t.v[p] != Unknown || !t.legalIndex(p) {
			continue
		}
		signed := int8(n)
		if t.turnOf(p) == position.White {
			signed = int8(-n)
		}
		ok := true
		moves := 0
		for _, q := range t.successors(p) {
			vq, sq := t.v[q], t.s[q]
			if !isDepth(vq) {
				ok = false
				break
			}
			if sq&(status.InStaleMate|status.InsufficientMaterial) != 0 ||
				abs8(vq) > n || int(signed)*int(vq) < 0 {
				ok = false
				break
			}
			moves++
		}
		if ok && moves >= 1 {
			t.v[p] = signed
			count++
		}
	}
	if count > 0 {
		t.noteDepth(n)
	}
	t.logPass("response_mate_in", n, count)
	return count
}

// insufficientIn labels positions where the side to move can force the
// game toward an insufficient-material draw: for n = 1 a successor
// with the bit already set, for n > 1 a successor labelled n-1 with
// the mover's sign and the bit set. Newly labelled positions inherit
// the bit.
func (t *Table) insufficientIn(n int) int {
	count := 0
	want := int8(n - 1)
	for p := 0; p < t.n; p++ {
		if t.v[p] != Unknown || !t.legalIndex(p) {
			continue
		}
		white := t.turnOf(p) == position.White
		found := false
		for _, q := range t.successors(p) {
			vq, sq := t.v[q], t.s[q]
			if n == 1 {
				if sq&status.InsufficientMaterial != 0 {
					found = true
					break
				}
				continue
			}
			if vq == Unknown || sq&status.InsufficientMaterial == 0 {
				continue
			}
			if (white && vq == want) || (!white && vq == -want) {
				found = true
				break
			}
		}
		if found {
			t.s[p] |= status.InsufficientMaterial
			if white {
				t.v[p] = int8(n)
			} else {
				t.v[p] = int8(-n)
			}
			count++
		}
	}
	if count > 0 {
		t.noteDepth(n)
	}
	t.logPass("insufficient_in", n, count)
	return count
}

// responseInsufficientIn labels positions whose every successor is a
// known stalemate or insufficient-material outcome of magnitude at
// most n for the same drawing side.
func (t *Table) responseInsufficientIn(n int) int {
	count := 0
	for p := 0; p < t.n; p++ {
		if t.v[p] != Unknown || !t.legalIndex(p) {
			continue
		}
		signed := int8(-n)
		if t.turnOf(p) == position.Black {
			signed = int8(n)
		}
		ok := true
		moves := 0
		for _, q := range t.successors(p) {
			vq, sq := t.v[q], t.s[q]
			if !isDepth(vq) {
				ok = false
				break
			}
			if sq&(status.InStaleMate|status.InsufficientMaterial) == 0 ||
				abs8(vq) > n || int(signed)*int(vq) < 0 {
				ok = false
				break
			}
			moves++
		}
		if ok && moves >= 1 {
			t.s[p] |= status.InsufficientMaterial
			t.v[p] = signed
			count++
		}
	}
	if count > 0 {
		t.noteDepth(n)
	}
	t.logPass("response_insufficient_in", n, count)
	return count
}

func (t *Table) logPass(stage string, n, count int) {
	if count > 0 {
		t.log.Debug().Int("n", n).Int("labeled", count).Msg(stage)
	}
	t.progress(stage, n, count)
}
