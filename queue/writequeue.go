// Package queue implements WriteQueue: a bounded FIFO that feeds NVMSink
// with backpressure, draining one record at a time whenever the sink
// signals it is ready. It is built on the teacher's sim.Buffer +
// sim.TickingComponent pattern: Enqueue pushes into a bounded buffer and
// wakes the component, and Tick drains one entry per firing while the sink
// is ready.
package queue

import (
	"github.com/sarchlab/secmeta/metrics"
	"github.com/sarchlab/secmeta/nvm"
	"github.com/sarchlab/secmeta/sim"
)

// WriteQueue is the bounded FIFO described in spec §4.G.
type WriteQueue struct {
	*sim.TickingComponent

	buffer   sim.Buffer
	sink     nvm.NVMSink
	counters *metrics.Counters
}

// New creates a WriteQueue named name, of the given capacity, draining
// into sink at frequency freq on engine.
func New(
	name string,
	engine sim.Engine,
	freq sim.Freq,
	capacity int,
	sink nvm.NVMSink,
	counters *metrics.Counters,
) *WriteQueue {
	q := &WriteQueue{
		buffer:   sim.NewBuffer(name+".buffer", capacity),
		sink:     sink,
		counters: counters,
	}
	q.TickingComponent = sim.NewTickingComponent(name, engine, freq, q)
	return q
}

// Enqueue pushes rec into the buffer, returning false and incrementing
// write_queue_full if the buffer has no room. On success it wakes the
// component so the drain loop notices the new entry.
func (q *WriteQueue) Enqueue(rec nvm.WriteRecord) bool {
	if !q.buffer.CanPush() {
		q.counters.WriteQueueFull++
		return false
	}

	q.buffer.Push(rec)
	q.NotifyWorkAvailable()
	return true
}

// Tick drains the head of the buffer into the sink if the sink is ready,
// reporting whether it made progress so the TickingComponent knows
// whether to re-arm itself.
func (q *WriteQueue) Tick() bool {
	if q.buffer.Size() == 0 {
		return false
	}

	if !q.sink.Ready() {
		return false
	}

	rec := q.buffer.Pop().(nvm.WriteRecord)
	q.sink.SubmitWrite(rec, func() {
		q.NotifyWorkAvailable()
	})

	return true
}

// Len reports how many records are currently queued.
func (q *WriteQueue) Len() int {
	return q.buffer.Size()
}

// Capacity reports the configured queue depth.
func (q *WriteQueue) Capacity() int {
	return q.buffer.Capacity()
}
