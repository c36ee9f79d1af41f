// Package engine builds and queries endgame tablebases.
//
// A Table owns two dense arrays over the whole index space of its
// piece set: V holds the game value of each position and S its status
// bits. Construction classifies every index, caches the legal-move
// graph, runs the retrograde fixed point and persists the arrays;
// loading restores them for read-only queries.
package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/egtb/internal/movegen"
	"github.com/yourusername/egtb/internal/position"
	"github.com/yourusername/egtb/internal/status"
)

// Value sentinels stored in V. Real values are signed mate (or forced
// insufficient-material) distances; positive means White forces the
// outcome, negative Black.
const (
	Unknown     int8 = -128 // not yet determined; rewritten before save
	Illegal     int8 = -127
	Unforceable int8 = -126
)

// MaxDepth caps the retrograde iteration so values stay clear of the
// sentinel range.
const MaxDepth = 120

// DefaultSuccessorsPerPosition sizes the move-cache arena relative to
// the index space.
const DefaultSuccessorsPerPosition = 15

// ProgressFunc receives per-pass progress during a build.
type ProgressFunc func(stage string, n int, labeled int)

// Options configure table construction and loading.
type Options struct {
	// Dir is where tables are saved and companion tables are found.
	Dir string
	// SuccessorsPerPosition pre-sizes the successor arena. The build
	// fails cleanly when the arena overflows.
	SuccessorsPerPosition int
	// Logger receives build progress. Defaults to a disabled logger.
	Logger zerolog.Logger
	// Progress, when set, additionally receives per-pass label counts.
	Progress ProgressFunc
}

func (o Options) withDefaults() Options {
	if o.SuccessorsPerPosition <= 0 {
		o.SuccessorsPerPosition = DefaultSuccessorsPerPosition
	}
	return o
}

// Table is one endgame tablebase.
type Table struct {
	spec *position.Spec
	n    int

	v []int8
	s []uint8

	// Legal-move cache in CSR form: the successors of p occupy
	// succ[offsets[p]:offsets[p+1]]. Built only for table
	// construction, never persisted.
	offsets []int64
	succ    []uint32

	// Largest |V| assigned so far, including values inherited through
	// the promotion bridge. Bounds the retrograde iteration.
	maxDepth int

	opts Options
	log  zerolog.Logger
}

// New allocates the value and status arrays for a build.
func New(spec *position.Spec, opts Options) (*Table, error) {
	opts = opts.withDefaults()
	n := spec.Positions()
	t := &Table{
		spec: spec,
		n:    n,
		v:    make([]int8, n),
		s:    make([]uint8, n),
		opts: opts,
		log:  opts.Logger,
	}
	return t, nil
}

// Spec returns the table's piece set.
func (t *Table) Spec() *position.Spec { return t.spec }

// Positions returns the index-space size N.
func (t *Table) Positions() int { return t.n }

// HasStatus reports whether the status array is present.
func (t *Table) HasStatus() bool { return t.s != nil }

// legalIndex follows the original convention: with S present, legal
// means no illegal bit; after a load without S, the rewritten V
// carries the information.
func (t *Table) legalIndex(p int) bool {
	if t.s != nil {
		return t.s[p]&status.IllegalMask == 0
	}
	return t.v[p] != Illegal
}

func (t *Table) progress(stage string, n, labeled int) {
	if t.opts.Progress != nil {
		t.opts.Progress(stage, n, labeled)
	}
}

// Build constructs the table. The registry supplies companion tables
// for pawn promotion; it may be nil for piece sets without pawns.
func (t *Table) Build(reg *Registry) error {
	start := time.Now()
	t.log.Info().
		Str("table", t.spec.ID()).
		Int("positions", t.n).
		Msg("building table")

	for p := range t.v {
		t.v[p] = Unknown
	}
	for p := range t.s {
		t.s[p] = 0
	}

	if err := t.spec.VerifyCodec(); err != nil {
		return fmt.Errorf("index codec: %w", err)
	}

	t.classifyIllegal()
	t.classifyChecks()
	if err := t.buildMoveCache(); err != nil {
		return err
	}
	t.classifyInsufficient()
	t.classifyEndings()
	if err := t.assignPromotions(reg); err != nil {
		return err
	}
	t.solve()
	t.rewrite()

	t.log.Info().
		Str("table", t.spec.ID()).
		Dur("elapsed", time.Since(start)).
		Msg("table complete")
	return nil
}

// DropMoveCache releases the successor arena once construction is
// done; queries regenerate moves on demand.
func (t *Table) DropMoveCache() {
	t.offsets = nil
	t.succ = nil
}

// newGenerator returns a move generator whose successor legality is
// answered from the status array.
func (t *Table) newGenerator() *movegen.Generator {
	return movegen.NewGenerator(t.spec, func(pos []int) bool {
		return t.legalIndex(t.spec.ToIndex(pos))
	})
}

// rewrite replaces working values with the persisted encoding: every
// illegal position becomes Illegal; stalemate- or insufficient-flagged
// positions and anything still Unknown become Unforceable. Query
// results about exactly when material becomes insufficient are
// deliberately lost here.
func (t *Table) rewrite() {
	for p := 0; p < t.n; p++ {
		if !t.legalIndex(p) {
			t.v[p] = Illegal
		}
		if t.s[p]&(status.InsufficientMaterial|status.InStaleMate) != 0 || t.v[p] == Unknown {
			t.v[p] = Unforceable
		}
	}
}
