// Package cache implements MetadataCache: an N-way set-associative array of
// 8-byte metadata entries grouped into 64-byte lines, with strict-LRU
// eviction. It is a generalization of the teacher's tagging.TagArray (an
// explicit LRUQueue per set) to this domain's 8-entry lines and eviction
// forwarding into a coalescing buffer.
package cache

import (
	"log"

	"github.com/sarchlab/secmeta/metadata"
	"github.com/sarchlab/secmeta/metrics"
)

// Coalescer is the subset of the PCB's surface the cache needs: a place to
// forward partials on eviction. Defined here, not in package pcb, so cache
// depends on a narrow interface instead of the whole PCB type.
type Coalescer interface {
	Coalesce(addr, data uint64)
}

// Line is one way of one set: an 8-entry, 64-byte-aligned block of
// metadata partials.
type Line struct {
	Valid      bool
	Tag        uint64
	Data       [metadata.PartialsPerBlock]uint64
	LastAccess uint64
	Dirty      bool
}

// Set is one row of the cache: numWays independently tagged lines.
type Set struct {
	Lines []Line
}

// MetadataCache is the N-way set-associative cache over 8-byte metadata
// entries described in spec §4.C.
type MetadataCache struct {
	numSets int
	numWays int
	sets    []Set

	pcb      Coalescer
	counters *metrics.Counters

	clock uint64
}

// New creates a MetadataCache with numSets sets of numWays lines each,
// forwarding evicted dirty partials to pcb and recording hit/miss/eviction
// counters into counters.
func New(numSets, numWays int, pcb Coalescer, counters *metrics.Counters) *MetadataCache {
	if numSets <= 0 || numWays <= 0 {
		log.Panic("cache: num_sets and num_ways must be positive")
	}

	sets := make([]Set, numSets)
	for i := range sets {
		sets[i] = Set{Lines: make([]Line, numWays)}
	}

	return &MetadataCache{
		numSets:  numSets,
		numWays:  numWays,
		sets:     sets,
		pcb:      pcb,
		counters: counters,
	}
}

func (c *MetadataCache) tick() uint64 {
	c.clock++
	return c.clock
}

// Lookup scans the addressed set for a valid line with a matching tag. It
// returns the stored partial and true on a hit, or (0, false) on a miss.
func (c *MetadataCache) Lookup(addr uint64) (uint64, bool) {
	setIdx := metadata.SetIndex(addr, c.numSets)
	tag := metadata.Tag(addr, c.numSets)
	offset := metadata.PartialIndex(addr)

	set := &c.sets[setIdx]
	for i := range set.Lines {
		line := &set.Lines[i]
		if line.Valid && line.Tag == tag {
			line.LastAccess = c.tick()
			c.counters.Hits++
			return line.Data[offset], true
		}
	}

	c.counters.Misses++
	return 0, false
}

// Insert writes data into the partial at addr, installing or evicting a
// line as needed, and marks the destination line dirty.
func (c *MetadataCache) Insert(addr, data uint64) {
	setIdx := metadata.SetIndex(addr, c.numSets)
	tag := metadata.Tag(addr, c.numSets)
	offset := metadata.PartialIndex(addr)

	set := &c.sets[setIdx]

	for i := range set.Lines {
		line := &set.Lines[i]
		if line.Valid && line.Tag == tag {
			line.Data[offset] = data
			line.Dirty = true
			line.LastAccess = c.tick()
			return
		}
	}

	way := c.firstInvalidWay(set)
	if way < 0 {
		way = c.selectVictim(set)
		c.evict(setIdx, way)
	}

	line := &set.Lines[way]
	*line = Line{
		Valid:      true,
		Tag:        tag,
		Dirty:      true,
		LastAccess: c.tick(),
	}
	line.Data[offset] = data
}

func (c *MetadataCache) firstInvalidWay(set *Set) int {
	for i := range set.Lines {
		if !set.Lines[i].Valid {
			return i
		}
	}
	return -1
}

// selectVictim picks the way with the smallest LastAccess, ties broken by
// lowest way index (strict LRU).
func (c *MetadataCache) selectVictim(set *Set) int {
	victim := 0
	for i := 1; i < len(set.Lines); i++ {
		if set.Lines[i].LastAccess < set.Lines[victim].LastAccess {
			victim = i
		}
	}
	return victim
}

// evict forwards every partial of a dirty line to the PCB, then
// invalidates the way. Every slot of a dirty evicted line is treated as
// potentially modified: the line carries a single Dirty bit, not one per
// partial.
func (c *MetadataCache) evict(setIdx, way int) {
	line := &c.sets[setIdx].Lines[way]
	if !line.Valid {
		return
	}

	c.counters.Evictions++

	if line.Dirty {
		blockBase := c.blockBase(setIdx, line.Tag)
		for i, v := range line.Data {
			c.pcb.Coalesce(metadata.PartialAddr(blockBase, i), v)
		}
	}

	*line = Line{}
}

// blockBase reconstructs the 64-byte-aligned address a line's tag and set
// index correspond to, inverting metadata.SetIndex/metadata.Tag.
func (c *MetadataCache) blockBase(setIdx int, tag uint64) uint64 {
	blockNum := tag*uint64(c.numSets) + uint64(setIdx)
	return blockNum * metadata.BlockSize
}

// NumSets returns the configured set count.
func (c *MetadataCache) NumSets() int {
	return c.numSets
}

// NumWays returns the configured associativity.
func (c *MetadataCache) NumWays() int {
	return c.numWays
}
