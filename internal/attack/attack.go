// Package attack decides whether a piece attacks the enemy king in a
// given position, independent of whose turn it is.
package attack

import "github.com/yourusername/egtb/internal/position"

// AttacksEnemyKing reports whether the piece in the given non-king
// slot attacks the opposing king. Dead pieces attack nothing. Sliding
// attacks are blocked by any live piece of either colour strictly
// between attacker and king.
func AttacksEnemyKing(pieces []position.Piece, pos []int, slot int) bool {
	from := pos[slot+1]
	if from == position.Dead {
		return false
	}
	piece := pieces[slot]
	// Slot 0 is the black king, slot 1 the white king. A white piece
	// attacks the black king and vice versa.
	target := pos[1]
	if piece.Color() == position.Black {
		target = pos[2]
	}

	switch piece.Kind() {
	case position.Queen:
		return rookAttacks(pos, from, target) || bishopAttacks(pos, from, target)
	case position.Rook:
		return rookAttacks(pos, from, target)
	case position.Bishop:
		return bishopAttacks(pos, from, target)
	case position.Knight:
		return knightAttacks(from, target)
	case position.Pawn:
		return pawnAttacks(piece.Color(), from, target)
	}
	return false
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// occupied reports whether any live piece sits on sq. The kings count
// as blockers too.
func occupied(pos []int, sq int) bool {
	for i := 1; i < len(pos); i++ {
		if pos[i] == sq {
			return true
		}
	}
	return false
}

// rayClear walks from from toward target and reports whether every
// strictly intermediate square is empty.
func rayClear(pos []int, from, target, dr, dc int) bool {
	r, c := position.Row(from)+dr, position.Col(from)+dc
	tr, tc := position.Row(target), position.Col(target)
	for r != tr || c != tc {
		if occupied(pos, r*8+c) {
			return false
		}
		r += dr
		c += dc
	}
	return true
}

func rookAttacks(pos []int, from, target int) bool {
	fr, fc := position.Row(from), position.Col(from)
	tr, tc := position.Row(target), position.Col(target)
	if fr != tr && fc != tc {
		return false
	}
	return rayClear(pos, from, target, sign(tr-fr), sign(tc-fc))
}

func bishopAttacks(pos []int, from, target int) bool {
	fr, fc := position.Row(from), position.Col(from)
	tr, tc := position.Row(target), position.Col(target)
	dr, dc := tr-fr, tc-fc
	if dr != dc && dr != -dc {
		return false
	}
	return rayClear(pos, from, target, sign(dr), sign(dc))
}

var knightOffsets = [8][2]int{
	{1, -2}, {1, 2}, {-1, -2}, {-1, 2},
	{2, -1}, {2, 1}, {-2, -1}, {-2, 1},
}

func knightAttacks(from, target int) bool {
	fr, fc := position.Row(from), position.Col(from)
	tr, tc := position.Row(target), position.Col(target)
	for _, o := range knightOffsets {
		if fr+o[0] == tr && fc+o[1] == tc {
			return true
		}
	}
	return false
}

// pawnAttacks covers the two diagonal squares one rank forward for the
// pawn's colour; white moves toward higher rows. Pawns never attack
// straight ahead.
func pawnAttacks(c position.Color, from, target int) bool {
	fr, fc := position.Row(from), position.Col(from)
	tr, tc := position.Row(target), position.Col(target)
	dir := 1
	if c == position.Black {
		dir = -1
	}
	return tr == fr+dir && (tc == fc+1 || tc == fc-1)
}
