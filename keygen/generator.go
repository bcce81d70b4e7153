// Package keygen implements the PartialGenerator external contract: a pure,
// deterministic function from a monotonically increasing counter to a
// 64-bit partial value, plus a reference AES-CTR keystream implementation.
package keygen

import (
	"github.com/sarchlab/secmeta/sim"
)

// PartialGenerator produces the 64-bit metadata payload for a counter. It
// must be pure and side-effect free: the same counter always yields the
// same value.
type PartialGenerator interface {
	Generate(counter uint64) uint64
}

// Timing exposes the simulated pacing of a generator invocation, so a
// caller can add Latency() to its own event schedule instead of the
// generator scheduling anything itself.
type Timing interface {
	Latency() sim.VTimeInSec
}
