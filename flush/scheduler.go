// Package flush implements FlushScheduler: the recurring ADR-window flush
// that guarantees every dirty PCB entry is durable within flush_interval
// ticks. Unlike the sim.TickingComponent pattern used by WriteQueue, this
// component fires unconditionally at a fixed interval rather than only
// while there is pending work — flush_interval is itself the durability
// contract, so it must keep firing even when the PCB is empty.
package flush

import (
	"github.com/sarchlab/secmeta/sim"
)

// Flushable is the subset of the PCB's surface FlushScheduler drives.
type Flushable interface {
	Flush()
	DiscardStale(now, staleThreshold uint64)
	Now() uint64
}

// FlushScheduler periodically drains a PCB, described in spec §4.F.
type FlushScheduler struct {
	*sim.ComponentBase

	engine   sim.Engine
	interval sim.VTimeInSec

	// staleThresholdEnabled and staleThreshold implement the optional
	// staleness behavior: once enabled, entries older than the threshold
	// (zero included) are discarded instead of flushed.
	staleThresholdEnabled bool
	staleThreshold        uint64

	pcb Flushable
}

// New creates a FlushScheduler named name that fires every interval ticks
// against pcb.
func New(name string, engine sim.Engine, interval sim.VTimeInSec, pcb Flushable) *FlushScheduler {
	return &FlushScheduler{
		ComponentBase: sim.NewComponentBase(name),
		engine:        engine,
		interval:      interval,
		pcb:           pcb,
	}
}

// WithStaleThreshold enables the optional staleness discard path: entries
// whose LastUpdate is older than threshold at flush time are discarded
// instead of flushed.
func (f *FlushScheduler) WithStaleThreshold(threshold uint64) *FlushScheduler {
	f.staleThresholdEnabled = true
	f.staleThreshold = threshold
	return f
}

// Start schedules the first flush event.
func (f *FlushScheduler) Start() {
	f.scheduleNext(f.engine.CurrentTime())
}

func (f *FlushScheduler) scheduleNext(now sim.VTimeInSec) {
	evt := &flushEvent{EventBase: sim.NewEventBase(now+f.interval, f)}
	f.engine.Schedule(evt)
}

// Handle fires one ADR-window flush: optionally discard stale entries,
// flush everything remaining, then reschedule unconditionally.
func (f *FlushScheduler) Handle(e sim.Event) error {
	if f.staleThresholdEnabled {
		f.pcb.DiscardStale(f.pcb.Now(), f.staleThreshold)
	}

	f.pcb.Flush()
	f.scheduleNext(e.Time())

	return nil
}

type flushEvent struct {
	*sim.EventBase
}
