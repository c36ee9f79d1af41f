package engine

import (
	"fmt"

	"github.com/yourusername/egtb/internal/position"
)

// assignPromotions substitutes companion-table values for every legal
// position in which a pawn stands on its promotion rank. The companion
// describes the post-promotion piece set (first pawn of the colour
// replaced by a queen) and shares this table's index space, so values
// copy across at the same index. Companions must already be built and
// on disk; a missing one is a fatal configuration error.
func (t *Table) assignPromotions(reg *Registry) error {
	for _, c := range []position.Color{position.White, position.Black} {
		if err := t.assignPromotion(reg, c); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) assignPromotion(reg *Registry, c position.Color) error {
	promoted, ok := t.spec.Promoted(c)
	if !ok {
		return nil
	}
	if reg == nil {
		return fmt.Errorf("table %s promotes into %s but no registry is configured",
			t.spec.ID(), promoted.ID())
	}
	companion, err := reg.Load(promoted, true)
	if err != nil {
		return fmt.Errorf("companion table %s: %w", promoted.ID(), err)
	}

	pawn := position.WhitePawn
	promotionRow := 7
	if c == position.Black {
		pawn = position.BlackPawn
		promotionRow = 0
	}

	pos := make([]int, t.spec.Len()+1)
	count := 0
	for p := 0; p < t.n; p++ {
		if !t.legalIndex(p) {
			continue
		}
		t.spec.FromIndex(p, pos)
		for slot := 2; slot < t.spec.Len(); slot++ {
			if t.spec.Pieces[slot] != pawn {
				continue
			}
			if position.Row(pos[slot+1]) == promotionRow {
				t.v[p] = companion.v[p]
				t.s[p] = companion.s[p]
				count++
				break
			}
		}
	}

	t.log.Info().
		Str("companion", promoted.ID()).
		Str("color", c.String()).
		Int("positions", count).
		Msg("assigned pawn promotions")
	t.progress("promotions", 0, count)
	return nil
}
