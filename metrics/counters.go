// Package metrics holds the accounting surface for the pipeline: the raw
// counters every component increments, and the derived ratios computed on
// read from them.
package metrics

// Counters is the full metrics surface named by the external interface.
// Every field is a plain counter; NVMWrites and NVMBytesWritten are
// incremented by both the PCB and the PLUB, every other field by a single
// component. Nothing here computes derived values, so a snapshot is always
// a cheap struct copy.
type Counters struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64

	WriteQueueFull uint64

	PCBCoalescedBlocks   uint64
	PCBPartialFlushes    uint64
	PCBOverflows         uint64
	PCBTotalPartials     uint64
	PLUBPartials         uint64
	NVMWrites            uint64
	NVMBytesWritten      uint64
	StaleBlocksDiscarded uint64
}

// Snapshot returns a copy of the current counters, safe for the caller to
// retain across further mutation of c.
func (c *Counters) Snapshot() Counters {
	return *c
}

// LookupCount returns the total number of cache lookups observed.
func (c *Counters) LookupCount() uint64 {
	return c.Hits + c.Misses
}

// HitRate is hits / (hits + misses), 0 on an empty history.
func (c *Counters) HitRate() float64 {
	total := c.Hits + c.Misses
	if total == 0 {
		return 0
	}
	return float64(c.Hits) / float64(total)
}

// PCBCoalescingRate is (8 * coalesced_blocks) / total_partials, 0 on an
// empty history.
func (c *Counters) PCBCoalescingRate() float64 {
	if c.PCBTotalPartials == 0 {
		return 0
	}
	return float64(8*c.PCBCoalescedBlocks) / float64(c.PCBTotalPartials)
}

// OverflowRate is overflows / total_partials, 0 on an empty history.
func (c *Counters) OverflowRate() float64 {
	if c.PCBTotalPartials == 0 {
		return 0
	}
	return float64(c.PCBOverflows) / float64(c.PCBTotalPartials)
}

// WriteAmplification is nvm_writes / (total_partials * 8 / B), 0 on an
// empty history.
func (c *Counters) WriteAmplification(blockSize uint64) float64 {
	denom := float64(c.PCBTotalPartials*8) / float64(blockSize)
	if denom == 0 {
		return 0
	}
	return float64(c.NVMWrites) / denom
}

// PLUBOverhead is plub_partials / total_partials, 0 on an empty history.
func (c *Counters) PLUBOverhead() float64 {
	if c.PCBTotalPartials == 0 {
		return 0
	}
	return float64(c.PLUBPartials) / float64(c.PCBTotalPartials)
}
