package engine

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/yourusername/egtb/internal/position"
)

// Registry caches loaded tables by piece-set ID. Concurrent loads of
// the same table are deduplicated so a burst of queries (or a build
// with several pawns) reads each companion from disk once.
type Registry struct {
	opts Options

	mu     sync.RWMutex
	tables map[string]*Table

	group singleflight.Group
}

// NewRegistry creates a registry rooted at opts.Dir.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts:   opts.withDefaults(),
		tables: make(map[string]*Table),
	}
}

// Options returns a copy of the registry's load options.
func (r *Registry) Options() Options { return r.opts }

// Put registers an already-built table, replacing any cached load.
func (r *Registry) Put(t *Table) {
	r.mu.Lock()
	r.tables[t.spec.ID()] = t
	r.mu.Unlock()
}

// Get returns a cached table without touching disk.
func (r *Registry) Get(id string) (*Table, bool) {
	r.mu.RLock()
	t, ok := r.tables[id]
	r.mu.RUnlock()
	return t, ok
}

// IDs lists the cached table IDs, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.tables))
	for id := range r.tables {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Load returns the table for spec, reading it from disk on first use.
// A cached table that lacks the status array is reloaded when the
// caller asks for it.
func (r *Registry) Load(spec *position.Spec, withStatus bool) (*Table, error) {
	id := spec.ID()
	if t, ok := r.Get(id); ok && (t.HasStatus() || !withStatus) {
		return t, nil
	}

	key := id
	if withStatus {
		key += "+s"
	}
	result, err, _ := r.group.Do(key, func() (interface{}, error) {
		if t, ok := r.Get(id); ok && (t.HasStatus() || !withStatus) {
			return t, nil
		}
		t, err := Load(spec, r.opts, withStatus)
		if err != nil {
			return nil, err
		}
		r.Put(t)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Table), nil
}

// BuildAll builds the given specs in order with a shared registry, so
// earlier tables serve as promotion companions for later ones. Each
// table is saved (and optionally archived) before the next build
// starts.
func BuildAll(specs []*position.Spec, opts Options, archive bool) (*Registry, error) {
	opts = opts.withDefaults()
	reg := NewRegistry(opts)
	for _, spec := range specs {
		t, err := New(spec, opts)
		if err != nil {
			return nil, err
		}
		if err := t.Build(reg); err != nil {
			return nil, fmt.Errorf("build %s: %w", spec.ID(), err)
		}
		if err := t.Save(opts.Dir); err != nil {
			return nil, err
		}
		if archive {
			if err := t.SaveArchive(opts.Dir); err != nil {
				return nil, err
			}
		}
		t.DropMoveCache()
		reg.Put(t)
	}
	return reg, nil
}
