package mlpack

import (
	"sync/atomic"
	"time"
)

// Hook provides callbacks around a dispatch for observability.
// Implement this interface to add metrics, logging, or tracing.
//
// Example:
//
//	type metricsHook struct {
//	    histogram prometheus.Histogram
//	}
//
//	func (h *metricsHook) BeforeDispatch(info *DispatchInfo) {}
//	func (h *metricsHook) AfterDispatch(info *DispatchInfo) {
//	    h.histogram.Observe(info.Duration.Seconds())
//	}
type Hook interface {
	// BeforeDispatch is called after validation, before the algorithm runs.
	BeforeDispatch(info *DispatchInfo)

	// AfterDispatch is called after the algorithm returns (or fails).
	// Duration, Error, and Outputs are populated.
	AfterDispatch(info *DispatchInfo)
}

// DispatchInfo contains information about one dispatch.
// Binding and Inputs are set before the run; Duration, Error and Outputs after.
type DispatchInfo struct {
	Binding  string
	Inputs   []string
	Outputs  []string
	Duration time.Duration
	Error    error
}

type hookFunc struct {
	fn func(*DispatchInfo)
}

func (h *hookFunc) BeforeDispatch(_ *DispatchInfo)   {}
func (h *hookFunc) AfterDispatch(info *DispatchInfo) { h.fn(info) }

// AfterDispatchHook creates a Hook that calls fn after every dispatch.
func AfterDispatchHook(fn func(*DispatchInfo)) Hook {
	return &hookFunc{fn: fn}
}

// StatsHook accumulates dispatch statistics. It is safe for concurrent use,
// so one StatsHook may be shared by bindings running on many goroutines.
type StatsHook struct {
	totalRuns    atomic.Int64
	totalErrors  atomic.Int64
	totalLatency atomic.Int64 // nanoseconds
}

// NewStatsHook creates an empty StatsHook.
func NewStatsHook() *StatsHook {
	return &StatsHook{}
}

func (h *StatsHook) BeforeDispatch(_ *DispatchInfo) {}

func (h *StatsHook) AfterDispatch(info *DispatchInfo) {
	h.totalRuns.Add(1)
	h.totalLatency.Add(int64(info.Duration))
	if info.Error != nil {
		h.totalErrors.Add(1)
	}
}

// Stats returns the statistics collected so far.
func (h *StatsHook) Stats() DispatchStats {
	return DispatchStats{
		TotalRuns:    h.totalRuns.Load(),
		TotalErrors:  h.totalErrors.Load(),
		TotalLatency: time.Duration(h.totalLatency.Load()),
	}
}

// ResetStats clears the collected statistics.
func (h *StatsHook) ResetStats() {
	h.totalRuns.Store(0)
	h.totalErrors.Store(0)
	h.totalLatency.Store(0)
}

// DispatchStats contains dispatch statistics.
type DispatchStats struct {
	TotalRuns    int64
	TotalErrors  int64
	TotalLatency time.Duration
}

// AvgLatency returns the average dispatch latency, or 0 if nothing ran.
func (s DispatchStats) AvgLatency() time.Duration {
	if s.TotalRuns == 0 {
		return 0
	}
	return s.TotalLatency / time.Duration(s.TotalRuns)
}
