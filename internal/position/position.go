// Package position defines piece sets and the dense index codec for
// endgame tables.
//
// A piece set is an ordered list of slots: slot 0 is always the black
// king, slot 1 the white king, and the remaining slots hold arbitrary
// non-king pieces. A position is the side to move followed by one
// square per slot; non-king slots may hold Dead (64) for a captured
// piece.
package position

import (
	"errors"
	"fmt"
	"strings"
)

// Board geometry. Squares are row*8+column with row 0 the first rank.
const (
	KingSquares  = 64
	OtherSquares = 65
	// Dead marks a captured non-king piece.
	Dead = 64
)

// Row returns the rank of a square.
func Row(sq int) int { return sq / 8 }

// Col returns the file of a square.
func Col(sq int) int { return sq % 8 }

// Color is a piece colour, also used for the side to move.
type Color uint8

const (
	White Color = iota
	Black
	// NoColor marks an unused slot or a drawish query result.
	NoColor
)

// Other returns the opposing colour.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// Kind is a piece kind independent of colour.
type Kind uint8

const (
	King Kind = iota
	Queen
	Bishop
	Knight
	Rook
	Pawn
)

// Piece is a coloured piece.
type Piece uint8

const (
	WhiteKing Piece = iota
	WhiteQueen
	WhiteBishop
	WhiteKnight
	WhiteRook
	WhitePawn
	BlackKing
	BlackQueen
	BlackBishop
	BlackKnight
	BlackRook
	BlackPawn
	None
)

// Color returns the piece colour, or NoColor for None.
func (p Piece) Color() Color {
	if p < BlackKing {
		return White
	}
	if p < None {
		return Black
	}
	return NoColor
}

// Kind returns the piece kind. Only valid for real pieces.
func (p Piece) Kind() Kind {
	switch p {
	case WhiteKing, BlackKing:
		return King
	case WhiteQueen, BlackQueen:
		return Queen
	case WhiteBishop, BlackBishop:
		return Bishop
	case WhiteKnight, BlackKnight:
		return Knight
	case WhiteRook, BlackRook:
		return Rook
	}
	return Pawn
}

var pieceCodes = [None + 1]string{
	"WK", "WQ", "WB", "WN", "WR", "WP",
	"BK", "BQ", "BB", "BN", "BR", "BP",
	"--",
}

// Code returns the two-letter persistence code; the knight uses N.
func (p Piece) Code() string {
	if p > None {
		return "??"
	}
	return pieceCodes[p]
}

func (p Piece) String() string { return p.Code() }

// PieceFromCode parses a two-letter piece code.
func PieceFromCode(code string) (Piece, error) {
	for p := WhiteKing; p < None; p++ {
		if pieceCodes[p] == code {
			return p, nil
		}
	}
	return None, fmt.Errorf("%w: unknown piece code %q", ErrBadSpec, code)
}

// ErrBadSpec is returned for malformed piece sets.
var ErrBadSpec = errors.New("invalid piece set")

// Spec is an ordered piece set. Slot 0 is the black king and slot 1
// the white king; the remaining slots are non-king pieces.
type Spec struct {
	Pieces []Piece
}

// NewSpec validates the slot ordering and returns a Spec.
func NewSpec(pieces ...Piece) (*Spec, error) {
	if len(pieces) < 2 {
		return nil, fmt.Errorf("%w: need at least the two kings, got %d slots", ErrBadSpec, len(pieces))
	}
	if pieces[0] != BlackKing || pieces[1] != WhiteKing {
		return nil, fmt.Errorf("%w: slot 0 must be BK and slot 1 WK", ErrBadSpec)
	}
	for i, p := range pieces[2:] {
		if p >= None {
			return nil, fmt.Errorf("%w: slot %d holds no piece", ErrBadSpec, i+2)
		}
		if p.Kind() == King {
			return nil, fmt.Errorf("%w: extra king in slot %d", ErrBadSpec, i+2)
		}
	}
	return &Spec{Pieces: pieces}, nil
}

// ParseID builds a Spec from a table ID such as "WQ" or "WBWN". The
// two kings are implied.
func ParseID(id string) (*Spec, error) {
	if len(id)%2 != 0 {
		return nil, fmt.Errorf("%w: odd-length id %q", ErrBadSpec, id)
	}
	pieces := []Piece{BlackKing, WhiteKing}
	for i := 0; i < len(id); i += 2 {
		p, err := PieceFromCode(strings.ToUpper(id[i : i+2]))
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, p)
	}
	return NewSpec(pieces...)
}

// Len returns the slot count k.
func (s *Spec) Len() int { return len(s.Pieces) }

// ID is the filename stem derived from the non-king slots.
func (s *Spec) ID() string {
	var b strings.Builder
	for _, p := range s.Pieces[2:] {
		b.WriteString(p.Code())
	}
	return b.String()
}

// Positions returns the index-space size N = 2*64*64*65^(k-2).
func (s *Spec) Positions() int {
	n := 2 * KingSquares * KingSquares
	for i := 2; i < len(s.Pieces); i++ {
		n *= OtherSquares
	}
	return n
}

// Promoted returns the companion spec with the first pawn of the given
// colour replaced by that colour's queen. The second result is false
// when the spec holds no such pawn.
func (s *Spec) Promoted(c Color) (*Spec, bool) {
	pawn, queen := WhitePawn, WhiteQueen
	if c == Black {
		pawn, queen = BlackPawn, BlackQueen
	}
	for i := 2; i < len(s.Pieces); i++ {
		if s.Pieces[i] == pawn {
			pieces := make([]Piece, len(s.Pieces))
			copy(pieces, s.Pieces)
			pieces[i] = queen
			return &Spec{Pieces: pieces}, true
		}
	}
	return nil, false
}

// HasPawn reports whether the spec holds a pawn of the given colour.
func (s *Spec) HasPawn(c Color) bool {
	_, ok := s.Promoted(c)
	return ok
}
