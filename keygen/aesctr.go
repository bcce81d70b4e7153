package keygen

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"log"

	"github.com/sarchlab/secmeta/sim"
)

// AESCTRGenerator is the reference PartialGenerator: it derives a keystream
// block from a fixed key seed and the requested counter, then masks the
// first 8 bytes of that block down to a uint64. Cryptographic strength is
// explicitly out of scope; only determinism and side-effect freedom are
// required of it.
type AESCTRGenerator struct {
	keySeed        [16]byte
	latency        sim.VTimeInSec
	counterLatency sim.VTimeInSec

	block cipher.Block

	generatedCounters uint64
	generatedPartials uint64
	lastCounter       uint64
	lastPartial       uint64
}

// NewAESCTRGenerator builds a generator keyed by keySeed. latency models
// the fixed cost of one keystream block derivation; counterLatency models
// the additional per-counter pacing cost.
func NewAESCTRGenerator(
	keySeed [16]byte,
	latency, counterLatency sim.VTimeInSec,
) *AESCTRGenerator {
	block, err := aes.NewCipher(keySeed[:])
	if err != nil {
		log.Panicf("keygen: invalid AES key: %v", err)
	}

	return &AESCTRGenerator{
		keySeed:        keySeed,
		latency:        latency,
		counterLatency: counterLatency,
		block:          block,
	}
}

// Generate derives the keystream word for counter. It is pure: calling it
// twice with the same counter returns the same value.
func (g *AESCTRGenerator) Generate(counter uint64) uint64 {
	var iv [16]byte
	binary.BigEndian.PutUint64(iv[8:], counter)

	stream := cipher.NewCTR(g.block, iv[:])

	var keystream [16]byte
	stream.XORKeyStream(keystream[:], keystream[:])

	partial := binary.BigEndian.Uint64(keystream[:8])

	g.generatedCounters++
	g.generatedPartials++
	g.lastCounter = counter
	g.lastPartial = partial

	return partial
}

// Latency returns the simulated ticks a single Generate call costs.
func (g *AESCTRGenerator) Latency() sim.VTimeInSec {
	return g.latency + g.counterLatency
}

// GeneratedCounters reports how many counters have been consumed so far.
func (g *AESCTRGenerator) GeneratedCounters() uint64 {
	return g.generatedCounters
}

// GeneratedPartials reports how many partials have been produced so far.
func (g *AESCTRGenerator) GeneratedPartials() uint64 {
	return g.generatedPartials
}

// LastCounter returns the most recently requested counter value.
func (g *AESCTRGenerator) LastCounter() uint64 {
	return g.lastCounter
}

// LastPartial returns the most recently produced partial value.
func (g *AESCTRGenerator) LastPartial() uint64 {
	return g.lastPartial
}
