package api

import (
	"context"
	"sync/atomic"
	"time"
)

// WorkerPool manages concurrent request processing with configurable
// limits. Queries are cheap array lookups and get a wide pool; builds
// scan the whole index space and are held to a narrow one.
type WorkerPool struct {
	querySem chan struct{}
	buildSem chan struct{}

	queuedQueries int64
	queuedBuilds  int64
	activeQueries int64
	activeBuilds  int64
	totalQueries  int64
	totalBuilds   int64
}

// PoolConfig configures the worker pool.
type PoolConfig struct {
	MaxQueryWorkers int // Max concurrent queries (default: 100)
	MaxBuildWorkers int // Max concurrent table builds (default: 1)
}

// DefaultPoolConfig returns a PoolConfig with sensible defaults.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxQueryWorkers: 100,
		MaxBuildWorkers: 1,
	}
}

// NewWorkerPool creates a new worker pool with the given configuration.
func NewWorkerPool(config PoolConfig) *WorkerPool {
	if config.MaxQueryWorkers <= 0 {
		config.MaxQueryWorkers = 100
	}
	if config.MaxBuildWorkers <= 0 {
		config.MaxBuildWorkers = 1
	}
	return &WorkerPool{
		querySem: make(chan struct{}, config.MaxQueryWorkers),
		buildSem: make(chan struct{}, config.MaxBuildWorkers),
	}
}

// AcquireQuery acquires a slot for a query. Returns an error if the
// context is cancelled while waiting.
func (p *WorkerPool) AcquireQuery(ctx context.Context) error {
	atomic.AddInt64(&p.queuedQueries, 1)
	defer atomic.AddInt64(&p.queuedQueries, -1)

	select {
	case p.querySem <- struct{}{}:
		atomic.AddInt64(&p.activeQueries, 1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReleaseQuery releases a query slot.
func (p *WorkerPool) ReleaseQuery() {
	atomic.AddInt64(&p.activeQueries, -1)
	atomic.AddInt64(&p.totalQueries, 1)
	<-p.querySem
}

// AcquireBuild acquires a slot for a table build.
func (p *WorkerPool) AcquireBuild(ctx context.Context) error {
	atomic.AddInt64(&p.queuedBuilds, 1)
	defer atomic.AddInt64(&p.queuedBuilds, -1)

	select {
	case p.buildSem <- struct{}{}:
		atomic.AddInt64(&p.activeBuilds, 1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReleaseBuild releases a build slot.
func (p *WorkerPool) ReleaseBuild() {
	atomic.AddInt64(&p.activeBuilds, -1)
	atomic.AddInt64(&p.totalBuilds, 1)
	<-p.buildSem
}

// TryAcquireBuild tries to acquire a build slot without blocking.
func (p *WorkerPool) TryAcquireBuild() bool {
	select {
	case p.buildSem <- struct{}{}:
		atomic.AddInt64(&p.activeBuilds, 1)
		return true
	default:
		return false
	}
}

// AcquireBuildWithTimeout tries to acquire a build slot with a timeout.
func (p *WorkerPool) AcquireBuildWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return p.AcquireBuild(ctx)
}

// PoolStats reports current pool statistics.
type PoolStats struct {
	ActiveQueries int64 `json:"active_queries"`
	ActiveBuilds  int64 `json:"active_builds"`
	QueuedQueries int64 `json:"queued_queries"`
	QueuedBuilds  int64 `json:"queued_builds"`
	TotalQueries  int64 `json:"total_queries"`
	TotalBuilds   int64 `json:"total_builds"`
	MaxQueries    int   `json:"max_queries"`
	MaxBuilds     int   `json:"max_builds"`
}

// Stats returns current pool statistics.
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{
		ActiveQueries: atomic.LoadInt64(&p.activeQueries),
		ActiveBuilds:  atomic.LoadInt64(&p.activeBuilds),
		QueuedQueries: atomic.LoadInt64(&p.queuedQueries),
		QueuedBuilds:  atomic.LoadInt64(&p.queuedBuilds),
		TotalQueries:  atomic.LoadInt64(&p.totalQueries),
		TotalBuilds:   atomic.LoadInt64(&p.totalBuilds),
		MaxQueries:    cap(p.querySem),
		MaxBuilds:     cap(p.buildSem),
	}
}
