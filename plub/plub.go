// Package plub implements the Partial-Log Update Buffer: the overflow path
// a PCB routes new bases to when it is at capacity. It is a direct
// pass-through, forwarding each partial as a single 8-byte write.
package plub

import (
	"github.com/sarchlab/secmeta/metrics"
	"github.com/sarchlab/secmeta/nvm"
)

// Sink is where PLUB pushes the individual partial writes it forwards.
type Sink interface {
	Enqueue(rec nvm.WriteRecord) bool
}

// PLUB is the overflow path described in spec §4.E.
type PLUB struct {
	sink     Sink
	counters *metrics.Counters
}

// New creates a PLUB that pushes forwarded partials into sink.
func New(sink Sink, counters *metrics.Counters) *PLUB {
	return &PLUB{sink: sink, counters: counters}
}

// Forward pushes (addr, data) into the write queue as a single 8-byte
// write. If the queue is full the write is dropped for accounting
// purposes: this is a modeled stall, not a correctness path. A real
// controller must convert this into upstream back-pressure instead.
func (b *PLUB) Forward(addr, data uint64) {
	b.counters.PLUBPartials++

	if !b.sink.Enqueue(nvm.WriteRecord{Addr: addr, Data: data}) {
		return
	}

	b.counters.NVMWrites++
	b.counters.NVMBytesWritten += 8
}
