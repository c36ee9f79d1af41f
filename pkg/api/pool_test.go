package api

import (
	"context"
	"testing"
	"time"
)

func TestPoolDefaults(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{})
	stats := pool.Stats()
	if stats.MaxQueries != 100 {
		t.Errorf("MaxQueries = %d, expected 100", stats.MaxQueries)
	}
	if stats.MaxBuilds != 1 {
		t.Errorf("MaxBuilds = %d, expected 1", stats.MaxBuilds)
	}
}

func TestPoolAcquireRelease(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{MaxQueryWorkers: 2, MaxBuildWorkers: 1})
	ctx := context.Background()

	if err := pool.AcquireQuery(ctx); err != nil {
		t.Fatal(err)
	}
	if got := pool.Stats().ActiveQueries; got != 1 {
		t.Errorf("ActiveQueries = %d, expected 1", got)
	}
	pool.ReleaseQuery()

	stats := pool.Stats()
	if stats.ActiveQueries != 0 {
		t.Errorf("ActiveQueries = %d, expected 0", stats.ActiveQueries)
	}
	if stats.TotalQueries != 1 {
		t.Errorf("TotalQueries = %d, expected 1", stats.TotalQueries)
	}
}

func TestPoolBuildLimit(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{MaxBuildWorkers: 1})

	if !pool.TryAcquireBuild() {
		t.Fatal("first build slot should be free")
	}
	if pool.TryAcquireBuild() {
		t.Error("second build slot should be refused")
	}
	pool.ReleaseBuild()
	if !pool.TryAcquireBuild() {
		t.Error("released slot should be free again")
	}
	pool.ReleaseBuild()
}

func TestPoolAcquireCancellation(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{MaxBuildWorkers: 1})
	if !pool.TryAcquireBuild() {
		t.Fatal("first build slot should be free")
	}

	if err := pool.AcquireBuildWithTimeout(20 * time.Millisecond); err == nil {
		t.Error("acquire on a full pool should time out")
	}
	pool.ReleaseBuild()
}
