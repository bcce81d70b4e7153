// Package nvm implements the NVMSink external contract: a component that
// accepts aligned write records and read requests and acknowledges them
// after a modeled read or write latency, applying back-pressure while a
// request is in flight.
package nvm

import (
	"log"

	"github.com/sarchlab/secmeta/sim"
)

// WriteRecord is a single (addr, value) pair accepted by an NVMSink. addr
// is always 8-byte aligned; it need not be block aligned, since both
// coalesced emissions and PLUB overflow submit at partial granularity.
type WriteRecord struct {
	Addr uint64
	Data uint64
}

// NVMSink is the external contract every write eventually drains into.
type NVMSink interface {
	sim.Named

	// Ready reports whether the sink can accept a new request right now.
	// Callers must poll this before Submit*; submitting while not ready is
	// a protocol violation.
	Ready() bool

	// SubmitWrite accepts rec, invoking onAck once tWR ticks have passed.
	SubmitWrite(rec WriteRecord, onAck func())

	// SubmitRead requests the value stored at addr, invoking onAck with
	// that value once tRCD+tCL ticks have passed.
	SubmitRead(addr uint64, onAck func(data uint64))
}

// Timing holds the latency model an NVMSink implementation uses.
type Timing struct {
	TRCD sim.VTimeInSec
	TCL  sim.VTimeInSec
	TWR  sim.VTimeInSec
}

// ReadLatency returns the total ticks a read takes to acknowledge.
func (t Timing) ReadLatency() sim.VTimeInSec {
	return t.TRCD + t.TCL
}

// WriteLatency returns the total ticks a write takes to acknowledge.
func (t Timing) WriteLatency() sim.VTimeInSec {
	return t.TWR
}

// TimingSink is the reference NVMSink: a single-request-in-flight device
// that stores every write it accepts and can echo it back on read, so
// round-trip tests can assert on the value the pipeline actually wrote.
type TimingSink struct {
	*sim.ComponentBase

	engine sim.Engine
	timing Timing

	busy    bool
	storage map[uint64]uint64
}

// NewTimingSink creates a TimingSink named name, driven by engine, using
// the given latency model.
func NewTimingSink(name string, engine sim.Engine, timing Timing) *TimingSink {
	return &TimingSink{
		ComponentBase: sim.NewComponentBase(name),
		engine:        engine,
		timing:        timing,
		storage:       make(map[uint64]uint64),
	}
}

// Ready reports whether the sink can accept a new request.
func (s *TimingSink) Ready() bool {
	return !s.busy
}

// SubmitWrite accepts rec if the sink is ready, and panics otherwise: a
// caller submitting to a busy sink is a protocol violation the WriteQueue
// must never trigger (§4.G's Ready-gated dequeue).
func (s *TimingSink) SubmitWrite(rec WriteRecord, onAck func()) {
	if s.busy {
		log.Panic("nvm: write submitted while sink is not ready")
	}

	s.busy = true
	evt := &sinkEvent{
		EventBase: sim.NewEventBase(
			s.engine.CurrentTime()+s.timing.WriteLatency(), s),
		write: &rec,
		onAck: func(any) { onAck() },
	}
	s.engine.Schedule(evt)
}

// SubmitRead accepts a read for addr if the sink is ready.
func (s *TimingSink) SubmitRead(addr uint64, onAck func(data uint64)) {
	if s.busy {
		log.Panic("nvm: read submitted while sink is not ready")
	}

	s.busy = true
	evt := &sinkEvent{
		EventBase: sim.NewEventBase(
			s.engine.CurrentTime()+s.timing.ReadLatency(), s),
		readAddr: &addr,
		onAck:    func(v any) { onAck(v.(uint64)) },
	}
	s.engine.Schedule(evt)
}

// Handle processes the acknowledgement for one in-flight request.
func (s *TimingSink) Handle(e sim.Event) error {
	evt := e.(*sinkEvent)
	s.busy = false

	if evt.write != nil {
		s.storage[evt.write.Addr] = evt.write.Data
		evt.onAck(nil)
		return nil
	}

	data := s.storage[*evt.readAddr]
	evt.onAck(data)
	return nil
}

// Peek returns the value stored at addr, bypassing the timing model. Tests
// use it to assert on state without waiting for a read round trip.
func (s *TimingSink) Peek(addr uint64) uint64 {
	return s.storage[addr]
}

type sinkEvent struct {
	*sim.EventBase
	write    *WriteRecord
	readAddr *uint64
	onAck    func(any)
}
