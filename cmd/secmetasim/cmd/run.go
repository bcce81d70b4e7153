package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/secmeta/config"
	"github.com/sarchlab/secmeta/monitoring"
	"github.com/sarchlab/secmeta/pipeline"
	"github.com/sarchlab/secmeta/sim"
	"github.com/sarchlab/secmeta/tracing"
	"github.com/sarchlab/secmeta/workload"
)

var runFlags struct {
	numSets            int
	numWays            int
	writeQueueCapacity int
	pcbCapacity        int
	flushInterval      float64
	staleThreshold     uint64
	keySeed            string

	workloadKind string
	base         uint64
	rangeBytes   uint64
	count        int
	until        float64

	monitor     bool
	monitorPort int
	open        bool

	tracePath string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a synthetic workload against the pipeline.",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.IntVar(&runFlags.numSets, "num-sets", 16, "cache set count")
	f.IntVar(&runFlags.numWays, "num-ways", 4, "cache associativity")
	f.IntVar(&runFlags.writeQueueCapacity, "write-queue-capacity", 64, "write queue depth")
	f.IntVar(&runFlags.pcbCapacity, "pcb-capacity", 256, "PCB distinct-base capacity")
	f.Float64Var(&runFlags.flushInterval, "flush-interval", 0.01, "ticks between ADR flushes")
	f.Uint64Var(&runFlags.staleThreshold, "stale-threshold", 0, "ticks of PCB staleness before discard (0 disables)")
	f.StringVar(&runFlags.keySeed, "key-seed", "", "32 hex chars AES-CTR key seed")

	f.StringVar(&runFlags.workloadKind, "workload", "btree", "btree|hashmap|rbtree|swap")
	f.Uint64Var(&runFlags.base, "base", 0x1000, "workload base address")
	f.Uint64Var(&runFlags.rangeBytes, "range", 0x10000, "workload address range in bytes")
	f.IntVar(&runFlags.count, "count", 1000, "number of addresses to write")
	f.Float64Var(&runFlags.until, "until", 1000, "simulated seconds to advance after issuing the workload")

	f.BoolVar(&runFlags.monitor, "monitor", false, "serve the monitoring dashboard while running")
	f.IntVar(&runFlags.monitorPort, "monitor-port", 0, "monitoring dashboard port (0 = random)")
	f.BoolVar(&runFlags.open, "open", false, "open the monitoring dashboard in a browser")

	f.StringVar(&runFlags.tracePath, "trace", "", "record counter snapshots to this SQLite database")
}

func runRun(_ *cobra.Command, _ []string) error {
	var keySeed [16]byte
	if runFlags.keySeed != "" {
		b, err := hex.DecodeString(runFlags.keySeed)
		if err != nil || len(b) != 16 {
			return fmt.Errorf("--key-seed must be 32 hex characters")
		}
		copy(keySeed[:], b)
	}

	builder := config.NewBuilder().
		WithNumSets(runFlags.numSets).
		WithNumWays(runFlags.numWays).
		WithWriteQueueCapacity(runFlags.writeQueueCapacity).
		WithPCBCapacity(runFlags.pcbCapacity).
		WithFlushInterval(sim.VTimeInSec(runFlags.flushInterval)).
		WithKeySeed(keySeed)

	if runFlags.staleThreshold > 0 {
		builder = builder.WithStaleThreshold(runFlags.staleThreshold)
	}

	p := pipeline.Build(builder.Build())

	if runFlags.monitor {
		m := monitoring.NewMonitor().WithPortNumber(runFlags.monitorPort).WithBlockSize(64)
		m.RegisterCounters(p.Counters)
		m.RegisterPCB(p.PCB)
		addr := m.StartServer()

		if runFlags.open {
			openBrowser(addr)
		}
	}

	var rec *tracing.Recorder
	if runFlags.tracePath != "" {
		rec = tracing.NewRecorder(runFlags.tracePath)
		rec.Init()
		defer rec.Flush()
	}

	w := buildWorkload()
	for {
		addr, ok := w.Next()
		if !ok {
			break
		}
		p.Write(addr, addr)
	}

	if err := p.RunUntil(sim.VTimeInSec(runFlags.until)); err != nil {
		return err
	}

	if rec != nil {
		rec.Record(runFlags.until, p.Counters)
	}

	printSummary(p)

	return nil
}

func buildWorkload() workload.Workload {
	switch runFlags.workloadKind {
	case "hashmap":
		return workload.NewHashMap(runFlags.base, runFlags.rangeBytes, runFlags.count)
	case "rbtree":
		return workload.NewRBTree(runFlags.base, runFlags.rangeBytes, runFlags.count, 3)
	case "swap":
		return workload.NewSwap(runFlags.base, runFlags.base+runFlags.rangeBytes, runFlags.rangeBytes, runFlags.count/2)
	default:
		return workload.NewBTree(runFlags.base, runFlags.rangeBytes, runFlags.count)
	}
}

func printSummary(p *pipeline.Pipeline) {
	c := p.Counters.Snapshot()
	fmt.Printf("hits=%d misses=%d hit_rate=%.4f\n", c.Hits, c.Misses, p.Counters.HitRate())
	fmt.Printf("pcb_coalesced_blocks=%d pcb_partial_flushes=%d pcb_overflows=%d\n",
		c.PCBCoalescedBlocks, c.PCBPartialFlushes, c.PCBOverflows)
	fmt.Printf("nvm_writes=%d nvm_bytes_written=%d write_amplification=%.4f\n",
		c.NVMWrites, c.NVMBytesWritten, p.Counters.WriteAmplification(64))
	fmt.Printf("plub_partials=%d plub_overhead=%.4f write_queue_full=%d\n",
		c.PLUBPartials, p.Counters.PLUBOverhead(), c.WriteQueueFull)
}
