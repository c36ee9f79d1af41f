package engine

import (
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/yourusername/egtb/internal/status"
)

// Summary aggregates a built (or status-loaded) table by outcome
// category, with mate-depth histograms split between the winning side
// to move and the losing side to move.
type Summary struct {
	Total   int
	Illegal int

	WhiteCheckmates int
	BlackCheckmates int

	MateIn         []int // depth histogram, winner to move
	ResponseMateIn []int // depth histogram, loser to move

	// Insufficient counts insufficient-material positions valued 0 or
	// Unforceable. The rewrite gives every insufficient-flagged
	// position Unforceable, so on a built or loaded table this covers
	// immediate and forced ones alike and InsufficientForced, which
	// counts those still holding a depth value, is zero.
	Insufficient       int
	InsufficientForced int
	Stalemates         int

	Unforceable int
	Unknown     int

	MaxDepth  int
	MeanDepth float64
}

// Summarize scans the whole table. The status array must be present.
func (t *Table) Summarize() Summary {
	sum := Summary{
		Total:          t.n,
		MateIn:         make([]int, MaxDepth+1),
		ResponseMateIn: make([]int, MaxDepth+1),
	}

	for p := 0; p < t.n; p++ {
		s, v := t.s[p], t.v[p]
		switch {
		case !t.legalIndex(p):
			sum.Illegal++
		case s&status.InsufficientMaterial != 0:
			if v == 0 || v == Unforceable {
				sum.Insufficient++
			} else {
				sum.InsufficientForced++
			}
		case s&status.InStaleMate != 0:
			sum.Stalemates++
		case v == Unknown:
			sum.Unknown++
		case v == Unforceable:
			sum.Unforceable++
		case v == 0:
			if p < t.n/2 {
				sum.WhiteCheckmates++
			} else {
				sum.BlackCheckmates++
			}
		default:
			d := abs8(v)
			if d > sum.MaxDepth {
				sum.MaxDepth = d
			}
			winnerToMove := (v > 0) == (p < t.n/2)
			if winnerToMove {
				sum.MateIn[d]++
			} else {
				sum.ResponseMateIn[d]++
			}
		}
	}

	depths := make([]float64, sum.MaxDepth+1)
	counts := make([]float64, sum.MaxDepth+1)
	for d := 1; d <= sum.MaxDepth; d++ {
		depths[d] = float64(d)
		counts[d] = float64(sum.MateIn[d] + sum.ResponseMateIn[d])
	}
	if total := floats.Sum(counts); total > 0 {
		sum.MeanDepth = floats.Dot(depths, counts) / total
	}
	sum.MateIn = sum.MateIn[:sum.MaxDepth+1]
	sum.ResponseMateIn = sum.ResponseMateIn[:sum.MaxDepth+1]
	return sum
}

// Log emits the summary through the given logger.
func (s Summary) Log(log zerolog.Logger) {
	log.Info().
		Int("total", s.Total).
		Int("illegal", s.Illegal).
		Int("white_checkmates", s.WhiteCheckmates).
		Int("black_checkmates", s.BlackCheckmates).
		Int("insufficient", s.Insufficient).
		Int("insufficient_forced", s.InsufficientForced).
		Int("stalemates", s.Stalemates).
		Int("unforceable", s.Unforceable).
		Int("max_depth", s.MaxDepth).
		Float64("mean_depth", s.MeanDepth).
		Msg("table summary")
	for d := 1; d <= s.MaxDepth; d++ {
		if s.MateIn[d] == 0 && s.ResponseMateIn[d] == 0 {
			continue
		}
		log.Info().
			Int("n", d).
			Int("mate_in", s.MateIn[d]).
			Int("response_mate_in", s.ResponseMateIn[d]).
			Msg("depth histogram")
	}
}
