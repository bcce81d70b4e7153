// Package pipeline wires the MetadataCache, PCB, PLUB, FlushScheduler,
// WriteQueue and NVMSink into the write-side datapath described in spec
// §2's "Data flow for a metadata write". It is the composition root every
// caller (the CLI, workload generators, integration tests) uses instead of
// constructing each component by hand.
package pipeline

import (
	"github.com/sarchlab/secmeta/cache"
	"github.com/sarchlab/secmeta/config"
	"github.com/sarchlab/secmeta/flush"
	"github.com/sarchlab/secmeta/keygen"
	"github.com/sarchlab/secmeta/metrics"
	"github.com/sarchlab/secmeta/nvm"
	"github.com/sarchlab/secmeta/pcb"
	"github.com/sarchlab/secmeta/plub"
	"github.com/sarchlab/secmeta/queue"
	"github.com/sarchlab/secmeta/sim"
)

// Pipeline is one fully wired instance of the write-side datapath.
type Pipeline struct {
	Engine    sim.Engine
	Cache     *cache.MetadataCache
	PCB       *pcb.PCB
	PLUB      *plub.PLUB
	Queue     *queue.WriteQueue
	Sink      nvm.NVMSink
	Flush     *flush.FlushScheduler
	Generator keygen.PartialGenerator
	Counters  *metrics.Counters
}

// Build constructs a Pipeline from cfg, running on a fresh sim.SerialEngine.
func Build(cfg config.Config) *Pipeline {
	engine := sim.NewSerialEngine()
	counters := &metrics.Counters{}

	sink := nvm.NewTimingSink("nvm", engine, nvm.Timing{
		TRCD: cfg.TRCD, TCL: cfg.TCL, TWR: cfg.TWR,
	})

	wq := queue.New(
		"write_queue", engine, sim.GHz, cfg.WriteQueueCapacity, sink, counters)

	pl := plub.New(wq, counters)
	buf := pcb.New(cfg.PCBCapacity, pl, wq, counters)

	mc := cache.New(cfg.NumSets, cfg.NumWays, buf, counters)

	scheduler := flush.New("flush_scheduler", engine, cfg.FlushInterval, buf)
	if cfg.StaleThresholdSet {
		scheduler = scheduler.WithStaleThreshold(cfg.StaleThresholdTicks)
	}
	scheduler.Start()

	gen := keygen.NewAESCTRGenerator(cfg.KeySeed, cfg.Latency, cfg.CounterLatency)

	return &Pipeline{
		Engine:    engine,
		Cache:     mc,
		PCB:       buf,
		PLUB:      pl,
		Queue:     wq,
		Sink:      sink,
		Flush:     scheduler,
		Generator: gen,
		Counters:  counters,
	}
}

// Write performs one metadata write: it updates the cache line and marks
// it dirty, then forwards the same partial to the PCB, matching spec §2's
// data-flow description exactly ("update cache line and mark dirty, and
// forward (addr,data) to PCB.coalesce()").
func (p *Pipeline) Write(addr, data uint64) {
	p.Cache.Insert(addr, data)
	p.PCB.Coalesce(addr, data)
}

// Read performs one metadata lookup, falling through to a miss on the
// cache; a real frontend would fetch from NVM on a miss, which is outside
// this subsystem's scope (§1's "out of scope" NVM timing model).
func (p *Pipeline) Read(addr uint64) (uint64, bool) {
	return p.Cache.Lookup(addr)
}

// RunUntil advances the simulation through every event scheduled at or
// before until. FlushScheduler reschedules itself forever, so callers
// drive the pipeline for a bounded amount of simulated time instead of
// running the engine to completion.
func (p *Pipeline) RunUntil(until sim.VTimeInSec) error {
	return p.Engine.RunUntil(until)
}
