// Package pcb implements the Partial Coalescing Buffer: it merges a stream
// of 8-byte partial writes sharing a 64-byte block base into aligned block
// writes, emitting each block to the WriteQueue the moment it fills.
//
// This is grounded on the teacher's write-coalescing pattern
// (mem/cache/writeevict's request coalescer, which merges units sharing a
// cache-line address and eager-emits on completion) generalized from
// byte-range merge units to fixed 8-bit valid masks over 64-byte blocks.
package pcb

import (
	"math/bits"

	"github.com/sarchlab/secmeta/metadata"
	"github.com/sarchlab/secmeta/metrics"
	"github.com/sarchlab/secmeta/nvm"
)

// Entry is one staged block: the bytes coalesced so far and a bitmask of
// which of the 8 partial slots have been written.
type Entry struct {
	BaseAddr   uint64
	Data       [metadata.BlockSize]byte
	ValidMask  uint8
	LastUpdate uint64
	Dirty      bool
}

// IsFull reports whether every partial slot of the entry has been written.
func (e *Entry) IsFull() bool {
	return e.ValidMask == metadata.FullMask
}

// NumPartials returns how many of the 8 slots are populated.
func (e *Entry) NumPartials() int {
	return bits.OnesCount8(e.ValidMask)
}

// Overflow is where a PCB routes partials it cannot admit: a new base
// arriving while the map is already at capacity.
type Overflow interface {
	Forward(addr, data uint64)
}

// Sink is where a PCB pushes the individual partial writes of an emitted
// block.
type Sink interface {
	Enqueue(rec nvm.WriteRecord) bool
}

// PCB is the Partial Coalescing Buffer described in spec §4.D.
type PCB struct {
	capacity int
	entries  map[uint64]*Entry

	overflow Overflow
	sink     Sink
	counters *metrics.Counters

	clock uint64
}

// New creates a PCB bounded to capacity distinct staged bases, overflowing
// new bases to overflow and pushing emitted partials into sink.
func New(capacity int, overflow Overflow, sink Sink, counters *metrics.Counters) *PCB {
	return &PCB{
		capacity: capacity,
		entries:  make(map[uint64]*Entry),
		overflow: overflow,
		sink:     sink,
		counters: counters,
	}
}

func (p *PCB) tick() uint64 {
	p.clock++
	return p.clock
}

// Coalesce merges one partial write into the entry for its block base,
// admitting a new base only if the map has room, and eagerly emitting the
// entry the instant it becomes full.
func (p *PCB) Coalesce(addr, data uint64) {
	base := metadata.Base(addr)
	i := metadata.PartialIndex(addr)

	p.counters.PCBTotalPartials++

	entry, exists := p.entries[base]
	if !exists && len(p.entries) >= p.capacity {
		p.counters.PCBOverflows++
		p.overflow.Forward(addr, data)
		return
	}

	if !exists {
		entry = &Entry{BaseAddr: base}
		p.entries[base] = entry
	}

	putPartial(entry, i, data)
	entry.ValidMask |= 1 << uint(i)
	entry.Dirty = true
	entry.LastUpdate = p.tick()

	if entry.IsFull() {
		p.emit(entry)
		delete(p.entries, base)
		p.counters.PCBCoalescedBlocks++
	}
}

// emit pushes every valid partial of entry into the write queue as an
// individual (addr, u64) record, then records the coalesced-block
// accounting for the emission as a whole.
func (p *PCB) emit(entry *Entry) {
	for i := 0; i < metadata.PartialsPerBlock; i++ {
		if entry.ValidMask&(1<<uint(i)) == 0 {
			continue
		}

		rec := nvm.WriteRecord{
			Addr: metadata.PartialAddr(entry.BaseAddr, i),
			Data: getPartial(entry, i),
		}
		p.sink.Enqueue(rec)
	}

	p.counters.NVMWrites++
	p.counters.NVMBytesWritten += uint64(entry.NumPartials() * 8)
}

// Flush drains every dirty, non-empty entry in the map — full or
// partial — recording each as a coalesced block or a partial flush, then
// clears the map. FlushScheduler calls this on every ADR-window tick.
func (p *PCB) Flush() {
	for base, entry := range p.entries {
		if entry.Dirty && entry.ValidMask != 0 {
			p.emit(entry)
			if entry.IsFull() {
				p.counters.PCBCoalescedBlocks++
			} else {
				p.counters.PCBPartialFlushes++
			}
		}
		delete(p.entries, base)
	}
}

// DiscardStale removes and discards, without emitting, every entry whose
// LastUpdate is older than now-staleThreshold ticks. This is the optional
// staleness behavior of spec §4.F.
func (p *PCB) DiscardStale(now, staleThreshold uint64) {
	for base, entry := range p.entries {
		if now-entry.LastUpdate > staleThreshold {
			delete(p.entries, base)
			p.counters.StaleBlocksDiscarded++
		}
	}
}

// Now returns the PCB's internal logical clock, which advances once per
// partial Coalesce admits; a partial routed to the overflow path does not
// advance it. FlushScheduler uses this as the "now" argument to
// DiscardStale so stale_threshold is measured in the same units as
// LastUpdate.
func (p *PCB) Now() uint64 {
	return p.clock
}

// Len reports how many distinct bases are currently staged.
func (p *PCB) Len() int {
	return len(p.entries)
}

// Capacity reports the configured maximum number of staged bases.
func (p *PCB) Capacity() int {
	return p.capacity
}

func putPartial(entry *Entry, i int, data uint64) {
	for b := 0; b < 8; b++ {
		entry.Data[i*8+b] = byte(data >> (8 * b))
	}
}

func getPartial(entry *Entry, i int) uint64 {
	var v uint64
	for b := 0; b < 8; b++ {
		v |= uint64(entry.Data[i*8+b]) << (8 * b)
	}
	return v
}
