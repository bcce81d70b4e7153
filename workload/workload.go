// Package workload provides deterministic address-stream generators used
// as stimulus for the pipeline. They are not part of the design (spec §1
// treats traffic generators as external collaborators), but a runnable
// repository ships them so the pipeline is exercisable end to end.
package workload

// Workload produces a deterministic stream of metadata-write addresses.
type Workload interface {
	// Next returns the next address to write, or ok=false once the
	// workload is exhausted.
	Next() (addr uint64, ok bool)
}

const blockSize = 64
