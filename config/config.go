// Package config holds the per-instance configuration surface named in
// spec §6, constructed through a chainable Builder in the teacher's cache
// Builder idiom (mem/cache/writeevict.Builder), validated at construction
// per the "Configuration invalid" taxonomy of spec §7.
package config

import (
	"log"

	"github.com/sarchlab/secmeta/sim"
)

// Config is the full set of tunables for one pipeline instance.
type Config struct {
	NumSets             int
	NumWays             int
	BlockSize           uint64
	AccessLatency       sim.VTimeInSec
	WriteQueueCapacity  int
	PCBCapacity         int
	FlushInterval       sim.VTimeInSec
	StaleThresholdTicks uint64
	StaleThresholdSet   bool

	StartCounter   uint64
	KeySeed        [16]byte
	Latency        sim.VTimeInSec
	CounterLatency sim.VTimeInSec

	TRCD sim.VTimeInSec
	TCL  sim.VTimeInSec
	TWR  sim.VTimeInSec
}

// Builder constructs a Config through chainable With* methods, mirroring
// the teacher's cache Builder pattern.
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder seeded with the spec's defaults.
func NewBuilder() Builder {
	return Builder{cfg: Config{
		NumSets:            16,
		NumWays:            4,
		BlockSize:          64,
		AccessLatency:      1,
		WriteQueueCapacity: 64,
		PCBCapacity:        256,
		FlushInterval:      0.01,
		Latency:            1,
		CounterLatency:     0.5,
		TRCD:               1,
		TCL:                1,
		TWR:                2,
	}}
}

// WithNumSets sets the cache set count.
func (b Builder) WithNumSets(n int) Builder { b.cfg.NumSets = n; return b }

// WithNumWays sets the cache associativity.
func (b Builder) WithNumWays(n int) Builder { b.cfg.NumWays = n; return b }

// WithBlockSize sets the bytes per line. It must remain 64 for PCB
// compatibility; validated at Build.
func (b Builder) WithBlockSize(n uint64) Builder { b.cfg.BlockSize = n; return b }

// WithAccessLatency sets the ticks per cache access.
func (b Builder) WithAccessLatency(t sim.VTimeInSec) Builder {
	b.cfg.AccessLatency = t
	return b
}

// WithWriteQueueCapacity sets the FIFO depth to NVM.
func (b Builder) WithWriteQueueCapacity(n int) Builder {
	b.cfg.WriteQueueCapacity = n
	return b
}

// WithPCBCapacity sets the max distinct bases staged.
func (b Builder) WithPCBCapacity(n int) Builder { b.cfg.PCBCapacity = n; return b }

// WithFlushInterval sets the ticks between ADR flushes.
func (b Builder) WithFlushInterval(t sim.VTimeInSec) Builder {
	b.cfg.FlushInterval = t
	return b
}

// WithStaleThreshold enables the optional PCB staleness discard path.
func (b Builder) WithStaleThreshold(ticks uint64) Builder {
	b.cfg.StaleThresholdTicks = ticks
	b.cfg.StaleThresholdSet = true
	return b
}

// WithStartCounter sets the PartialGenerator's initial counter value.
func (b Builder) WithStartCounter(n uint64) Builder { b.cfg.StartCounter = n; return b }

// WithKeySeed sets the PartialGenerator's AES-CTR key.
func (b Builder) WithKeySeed(seed [16]byte) Builder { b.cfg.KeySeed = seed; return b }

// WithGeneratorLatency sets the PartialGenerator's per-invocation latency.
func (b Builder) WithGeneratorLatency(latency, counterLatency sim.VTimeInSec) Builder {
	b.cfg.Latency = latency
	b.cfg.CounterLatency = counterLatency
	return b
}

// WithNVMTiming sets the NVMSink's tRCD/tCL/tWR latencies.
func (b Builder) WithNVMTiming(trcd, tcl, twr sim.VTimeInSec) Builder {
	b.cfg.TRCD = trcd
	b.cfg.TCL = tcl
	b.cfg.TWR = twr
	return b
}

// Build validates the accumulated configuration and returns it. Invalid
// configuration is a fatal, construction-time error per spec §7:
// non-positive latencies, a block size that isn't a PCB-compatible 64, or
// zero associativity all panic.
func (b Builder) Build() Config {
	cfg := b.cfg

	if cfg.NumSets <= 0 {
		log.Panic("config: num_sets must be positive")
	}
	if cfg.NumWays <= 0 {
		log.Panic("config: num_ways must be positive (zero associativity)")
	}
	if cfg.BlockSize != 64 {
		log.Panic("config: block_size must be 64 for PCB compatibility")
	}
	if cfg.AccessLatency <= 0 {
		log.Panic("config: access_latency must be positive")
	}
	if cfg.WriteQueueCapacity <= 0 {
		log.Panic("config: write_queue_capacity must be positive")
	}
	if cfg.PCBCapacity <= 0 {
		log.Panic("config: pcb_capacity must be positive")
	}
	if cfg.FlushInterval <= 0 {
		log.Panic("config: flush_interval must be positive")
	}
	if cfg.Latency < 0 || cfg.CounterLatency < 0 {
		log.Panic("config: generator latencies must be non-negative")
	}
	if cfg.TRCD <= 0 || cfg.TCL <= 0 || cfg.TWR <= 0 {
		log.Panic("config: NVM timing latencies must be positive")
	}

	return cfg
}
