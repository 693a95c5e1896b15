package mlpack

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// Pool limits how many dispatches of one binding run at the same time.
// Native bindings are CPU bound; a Pool keeps many goroutines from
// oversubscribing the machine while each still uses its own Params.
//
// Example:
//
//	pool, err := mlpack.NewPool(knn, runtime.NumCPU())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	// Safe to call from many goroutines, each with its own Params:
//	err = pool.Run(ctx, params, nil)
type Pool[T any] struct {
	binding *Binding[T]
	slots   chan struct{}
	closed  atomic.Bool

	// metrics
	totalRuns    atomic.Int64
	totalErrors  atomic.Int64
	totalLatency atomic.Int64 // nanoseconds
	totalWait    atomic.Int64 // nanoseconds
}

// NewPool creates a pool running at most n dispatches of b concurrently.
func NewPool[T any](b *Binding[T], n int) (*Pool[T], error) {
	if b == nil {
		return nil, fmt.Errorf("binding cannot be nil")
	}
	if n <= 0 {
		return nil, fmt.Errorf("pool size must be positive, got %d", n)
	}
	slots := make(chan struct{}, n)
	for range n {
		slots <- struct{}{}
	}
	return &Pool[T]{binding: b, slots: slots}, nil
}

// Run waits for a free slot and dispatches the binding against p.
// ctx only bounds the wait: once started, a dispatch runs to completion.
func (pl *Pool[T]) Run(ctx context.Context, p *Params, t *Timers) error {
	if pl.closed.Load() {
		return fmt.Errorf("dispatch pool is closed")
	}

	waitStart := time.Now()
	select {
	case <-pl.slots:
	case <-ctx.Done():
		return ctx.Err()
	}
	pl.totalWait.Add(int64(time.Since(waitStart)))
	defer func() { pl.slots <- struct{}{} }()

	start := time.Now()
	err := pl.binding.Run(p, t)
	elapsed := time.Since(start)

	pl.totalRuns.Add(1)
	pl.totalLatency.Add(int64(elapsed))
	if err != nil {
		pl.totalErrors.Add(1)
	}
	return err
}

// Binding returns the pooled binding.
func (pl *Pool[T]) Binding() *Binding[T] {
	return pl.binding
}

// Size returns the maximum number of concurrent dispatches.
func (pl *Pool[T]) Size() int {
	return cap(pl.slots)
}

// Available returns the number of idle slots.
func (pl *Pool[T]) Available() int {
	return len(pl.slots)
}

// Stats returns pool usage statistics.
func (pl *Pool[T]) Stats() PoolStats {
	return PoolStats{
		DispatchStats: DispatchStats{
			TotalRuns:    pl.totalRuns.Load(),
			TotalErrors:  pl.totalErrors.Load(),
			TotalLatency: time.Duration(pl.totalLatency.Load()),
		},
		TotalWait:      time.Duration(pl.totalWait.Load()),
		PoolSize:       cap(pl.slots),
		AvailableSlots: len(pl.slots),
	}
}

// ResetStats clears the collected statistics.
func (pl *Pool[T]) ResetStats() {
	pl.totalRuns.Store(0)
	pl.totalErrors.Store(0)
	pl.totalLatency.Store(0)
	pl.totalWait.Store(0)
}

// PoolStats contains pool usage statistics.
type PoolStats struct {
	DispatchStats
	// TotalWait is the time spent waiting for a free slot.
	TotalWait      time.Duration
	PoolSize       int
	AvailableSlots int
}

// Close rejects further dispatches. Dispatches already running complete.
// It is safe to call Close multiple times.
func (pl *Pool[T]) Close() {
	pl.closed.Store(true)
}
