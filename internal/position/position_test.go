package position

import (
	"testing"
)

func TestPieceColorKind(t *testing.T) {
	tests := []struct {
		piece Piece
		color Color
		kind  Kind
	}{
		{WhiteKing, White, King},
		{WhitePawn, White, Pawn},
		{BlackKing, Black, King},
		{BlackQueen, Black, Queen},
		{BlackKnight, Black, Knight},
		{None, NoColor, Pawn},
	}

	for _, tt := range tests {
		if got := tt.piece.Color(); got != tt.color {
			t.Errorf("%v.Color() = %v, expected %v", tt.piece, got, tt.color)
		}
		if tt.piece == None {
			continue
		}
		if got := tt.piece.Kind(); got != tt.kind {
			t.Errorf("%v.Kind() = %v, expected %v", tt.piece, got, tt.kind)
		}
	}
}

func TestPieceCodes(t *testing.T) {
	tests := []struct {
		piece Piece
		code  string
	}{
		{WhiteQueen, "WQ"},
		{WhiteKnight, "WN"},
		{BlackBishop, "BB"},
		{BlackPawn, "BP"},
	}

	for _, tt := range tests {
		if got := tt.piece.Code(); got != tt.code {
			t.Errorf("%v.Code() = %q, expected %q", tt.piece, got, tt.code)
		}
		back, err := PieceFromCode(tt.code)
		if err != nil {
			t.Fatalf("PieceFromCode(%q): %v", tt.code, err)
		}
		if back != tt.piece {
			t.Errorf("PieceFromCode(%q) = %v, expected %v", tt.code, back, tt.piece)
		}
	}

	if _, err := PieceFromCode("XX"); err == nil {
		t.Error("PieceFromCode(XX) should fail")
	}
}

func TestNewSpecValidation(t *testing.T) {
	if _, err := NewSpec(BlackKing, WhiteKing, WhiteQueen); err != nil {
		t.Errorf("valid spec rejected: %v", err)
	}
	if _, err := NewSpec(WhiteKing, BlackKing, WhiteQueen); err == nil {
		t.Error("swapped kings should be rejected")
	}
	if _, err := NewSpec(BlackKing); err == nil {
		t.Error("single slot should be rejected")
	}
	if _, err := NewSpec(BlackKing, WhiteKing, WhiteKing); err == nil {
		t.Error("extra king should be rejected")
	}
	if _, err := NewSpec(BlackKing, WhiteKing, None); err == nil {
		t.Error("empty slot should be rejected")
	}
}

func TestSpecID(t *testing.T) {
	tests := []struct {
		id     string
		pieces []Piece
		n      int
	}{
		{"WQ", []Piece{BlackKing, WhiteKing, WhiteQueen}, 2 * 64 * 64 * 65},
		{"WBWN", []Piece{BlackKing, WhiteKing, WhiteBishop, WhiteKnight}, 2 * 64 * 64 * 65 * 65},
	}

	for _, tt := range tests {
		spec, err := ParseID(tt.id)
		if err != nil {
			t.Fatalf("ParseID(%q): %v", tt.id, err)
		}
		if spec.ID() != tt.id {
			t.Errorf("ID round trip: got %q, expected %q", spec.ID(), tt.id)
		}
		if len(spec.Pieces) != len(tt.pieces) {
			t.Fatalf("ParseID(%q) slot count = %d, expected %d", tt.id, len(spec.Pieces), len(tt.pieces))
		}
		for i, p := range tt.pieces {
			if spec.Pieces[i] != p {
				t.Errorf("ParseID(%q) slot %d = %v, expected %v", tt.id, i, spec.Pieces[i], p)
			}
		}
		if got := spec.Positions(); got != tt.n {
			t.Errorf("Positions(%q) = %d, expected %d", tt.id, got, tt.n)
		}
	}

	if _, err := ParseID("W"); err == nil {
		t.Error("odd-length id should fail")
	}
	if _, err := ParseID("WKWQ"); err == nil {
		t.Error("id containing a king should fail")
	}
}

func TestPromoted(t *testing.T) {
	spec, err := ParseID("WP")
	if err != nil {
		t.Fatal(err)
	}

	promoted, ok := spec.Promoted(White)
	if !ok {
		t.Fatal("WP spec should promote for white")
	}
	if promoted.ID() != "WQ" {
		t.Errorf("promoted id = %q, expected WQ", promoted.ID())
	}
	// The original spec is untouched.
	if spec.ID() != "WP" {
		t.Errorf("source spec mutated to %q", spec.ID())
	}

	if _, ok := spec.Promoted(Black); ok {
		t.Error("WP spec should not promote for black")
	}

	noPawn, _ := ParseID("WQ")
	if _, ok := noPawn.Promoted(White); ok {
		t.Error("WQ spec should not promote")
	}
}
