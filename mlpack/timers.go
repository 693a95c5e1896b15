package mlpack

import (
	"maps"
	"slices"
	"time"
)

// Timers is the auxiliary context of a dispatch: named phase timers used for
// instrumentation only. A nil *Timers is valid and records nothing.
//
// Timers is NOT safe for concurrent use.
type Timers struct {
	elapsed map[string]time.Duration
	running map[string]time.Time
}

// NewTimers creates an empty timer set.
func NewTimers() *Timers {
	return &Timers{
		elapsed: make(map[string]time.Duration),
		running: make(map[string]time.Time),
	}
}

// Start starts (or restarts) the named timer. Time accumulates across
// Start/Stop pairs.
func (t *Timers) Start(name string) {
	if t == nil {
		return
	}
	t.running[name] = time.Now()
}

// Stop stops the named timer and adds the elapsed time to its total.
// Stopping a timer that is not running does nothing.
func (t *Timers) Stop(name string) {
	if t == nil {
		return
	}
	start, ok := t.running[name]
	if !ok {
		return
	}
	delete(t.running, name)
	t.elapsed[name] += time.Since(start)
}

// Elapsed returns the accumulated time of the named timer, including the
// current run if it is still running.
func (t *Timers) Elapsed(name string) time.Duration {
	if t == nil {
		return 0
	}
	d := t.elapsed[name]
	if start, ok := t.running[name]; ok {
		d += time.Since(start)
	}
	return d
}

// Names returns the names of all timers that were ever started, sorted.
func (t *Timers) Names() []string {
	if t == nil {
		return nil
	}
	names := make(map[string]struct{}, len(t.elapsed)+len(t.running))
	for name := range t.elapsed {
		names[name] = struct{}{}
	}
	for name := range t.running {
		names[name] = struct{}{}
	}
	return slices.Sorted(maps.Keys(names))
}

// Reset clears every timer.
func (t *Timers) Reset() {
	if t == nil {
		return
	}
	clear(t.elapsed)
	clear(t.running)
}
