// Package movegen enumerates legal successor moves for the side to
// move, respecting blockers, captures and self-check avoidance.
//
// Candidate legality is delegated to a callback over the tentative
// successor position: the table builder answers it from the status
// array, the query path from a freshly computed classification. A
// candidate whose successor is of any illegal kind (which covers
// moving into or staying in check) is discarded.
package movegen

import "github.com/yourusername/egtb/internal/position"

// MaxMoves bounds the legal move count for any position with up to
// four pieces (king 8 + two queens 27+25).
const MaxMoves = 60

// Move is one legal move: the moving slot with its from/to squares,
// plus the captured slot when the destination held an enemy piece.
// CapturedFrom equals To; the captured slot moves to Dead.
type Move struct {
	Slot    int
	From    int
	To      int
	Capture bool

	CapturedSlot int
	CapturedFrom int
}

// Generator produces legal moves for one piece set.
type Generator struct {
	pieces []position.Piece
	legal  func(pos []int) bool

	succ []int // scratch successor position
}

// NewGenerator returns a Generator for the spec's piece list. legal
// judges a tentative successor position.
func NewGenerator(spec *position.Spec, legal func(pos []int) bool) *Generator {
	return &Generator{
		pieces: spec.Pieces,
		legal:  legal,
		succ:   make([]int, spec.Len()+1),
	}
}

// Append gathers all legal moves for the side to move in pos and
// appends them to dst. The caller must already know pos is legal:
// Append does not check pos itself, and the callers give illegal
// positions no moves.
func (g *Generator) Append(dst []Move, pos []int) []Move {
	turn := position.Color(pos[0])
	for slot := range g.pieces {
		if g.pieces[slot].Color() != turn {
			continue
		}
		if pos[slot+1] == position.Dead {
			continue
		}
		switch g.pieces[slot].Kind() {
		case position.King:
			dst = g.kingMoves(dst, pos, slot)
		case position.Queen:
			dst = g.slideMoves(dst, pos, slot, bishopDirs[:])
			dst = g.slideMoves(dst, pos, slot, rookDirs[:])
		case position.Rook:
			dst = g.slideMoves(dst, pos, slot, rookDirs[:])
		case position.Bishop:
			dst = g.slideMoves(dst, pos, slot, bishopDirs[:])
		case position.Knight:
			dst = g.knightMoves(dst, pos, slot)
		case position.Pawn:
			dst = g.pawnMoves(dst, pos, slot)
		}
	}
	return dst
}

var (
	rookDirs   = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

var knightOffsets = [8][2]int{
	{1, -2}, {1, 2}, {-1, -2}, {-1, 2},
	{2, -1}, {2, 1}, {-2, -1}, {-2, 1},
}

// occupant finds the live slot on square sq, other than mover.
func (g *Generator) occupant(pos []int, sq, mover int) (int, bool) {
	for slot := range g.pieces {
		if slot == mover {
			continue
		}
		if pos[slot+1] == sq {
			return slot, true
		}
	}
	return 0, false
}

// tryMove builds the tentative successor for moving slot to (r, c) and
// appends the move when the successor is legal. The returned stop is
// true when the destination holds any piece, ending a sliding ray. An
// own-colour piece blocks without a move; an enemy non-king piece is a
// capture. The enemy king is never capturable.
func (g *Generator) tryMove(dst []Move, pos []int, slot, r, c int) ([]Move, bool) {
	if r < 0 || r > 7 || c < 0 || c > 7 {
		return dst, true
	}
	to := r*8 + c
	capture := false
	captured := 0
	if occ, ok := g.occupant(pos, to, slot); ok {
		if g.pieces[occ].Color() == g.pieces[slot].Color() {
			return dst, true
		}
		if g.pieces[occ].Kind() == position.King {
			// Unreachable from a legal position; the ray still stops.
			return dst, true
		}
		capture = true
		captured = occ
	}

	copy(g.succ, pos)
	g.succ[0] = 1 - g.succ[0]
	g.succ[slot+1] = to
	if capture {
		g.succ[captured+1] = position.Dead
	}
	if g.legal(g.succ) {
		m := Move{Slot: slot, From: pos[slot+1], To: to, Capture: capture}
		if capture {
			m.CapturedSlot = captured
			m.CapturedFrom = to
		}
		dst = append(dst, m)
	}
	return dst, capture
}

func (g *Generator) kingMoves(dst []Move, pos []int, slot int) []Move {
	from := pos[slot+1]
	row, col := position.Row(from), position.Col(from)
	for r := row - 1; r <= row+1; r++ {
		for c := col - 1; c <= col+1; c++ {
			if r == row && c == col {
				continue
			}
			dst, _ = g.tryMove(dst, pos, slot, r, c)
		}
	}
	return dst
}

func (g *Generator) slideMoves(dst []Move, pos []int, slot int, dirs [][2]int) []Move {
	from := pos[slot+1]
	row, col := position.Row(from), position.Col(from)
	for _, d := range dirs {
		for r, c := row+d[0], col+d[1]; r >= 0 && r <= 7 && c >= 0 && c <= 7; r, c = r+d[0], c+d[1] {
			var stop bool
			dst, stop = g.tryMove(dst, pos, slot, r, c)
			if stop {
				break
			}
		}
	}
	return dst
}

func (g *Generator) knightMoves(dst []Move, pos []int, slot int) []Move {
	from := pos[slot+1]
	row, col := position.Row(from), position.Col(from)
	for _, o := range knightOffsets {
		dst, _ = g.tryMove(dst, pos, slot, row+o[0], col+o[1])
	}
	return dst
}

// empty reports no live piece on (r, c).
func (g *Generator) empty(pos []int, r, c int) bool {
	sq := r*8 + c
	for slot := range g.pieces {
		if pos[slot+1] == sq {
			return false
		}
	}
	return true
}

// enemyAt reports a live enemy non-king piece of mover on (r, c).
func (g *Generator) enemyAt(pos []int, mover, r, c int) bool {
	sq := r*8 + c
	if occ, ok := g.occupant(pos, sq, mover); ok {
		return g.pieces[occ].Color() != g.pieces[mover].Color() &&
			g.pieces[occ].Kind() != position.King
	}
	return false
}

func (g *Generator) pawnMoves(dst []Move, pos []int, slot int) []Move {
	from := pos[slot+1]
	row, col := position.Row(from), position.Col(from)
	dir, startRow := 1, 1
	if g.pieces[slot].Color() == position.Black {
		dir, startRow = -1, 6
	}

	// Single push, and the double push from the start rank when both
	// squares are empty.
	if r := row + dir; r >= 0 && r <= 7 && g.empty(pos, r, col) {
		dst, _ = g.tryMove(dst, pos, slot, r, col)
		if r2 := row + 2*dir; row == startRow && r2 >= 0 && r2 <= 7 && g.empty(pos, r2, col) {
			dst, _ = g.tryMove(dst, pos, slot, r2, col)
		}
	}

	// Diagonal captures only onto an enemy piece. No en passant.
	for _, dc := range [2]int{1, -1} {
		r, c := row+dir, col+dc
		if r >= 0 && r <= 7 && c >= 0 && c <= 7 && g.enemyAt(pos, slot, r, c) {
			dst, _ = g.tryMove(dst, pos, slot, r, c)
		}
	}
	return dst
}

// Successor writes the position after m into succ: the mover's slot is
// set, the turn flips and a captured slot is marked Dead. succ must
// have the same length as pos.
func Successor(pos []int, m Move, succ []int) {
	copy(succ, pos)
	succ[0] = 1 - succ[0]
	succ[m.Slot+1] = m.To
	if m.Capture {
		succ[m.CapturedSlot+1] = position.Dead
	}
}
