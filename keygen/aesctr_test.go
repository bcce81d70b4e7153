package keygen_test

import (
	"testing"

	"github.com/sarchlab/secmeta/keygen"
	"github.com/sarchlab/secmeta/sim"
	"github.com/stretchr/testify/assert"
)

func TestAESCTRGeneratorIsDeterministic(t *testing.T) {
	seed := [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	g1 := keygen.NewAESCTRGenerator(seed, 1, 0.5)
	g2 := keygen.NewAESCTRGenerator(seed, 1, 0.5)

	assert.Equal(t, g1.Generate(42), g2.Generate(42))
}

func TestAESCTRGeneratorVariesByCounter(t *testing.T) {
	seed := [16]byte{}
	g := keygen.NewAESCTRGenerator(seed, 1, 0.5)

	assert.NotEqual(t, g.Generate(0), g.Generate(1))
}

func TestAESCTRGeneratorTracksStats(t *testing.T) {
	seed := [16]byte{}
	g := keygen.NewAESCTRGenerator(seed, 1, 0.5)

	v := g.Generate(7)

	assert.Equal(t, uint64(1), g.GeneratedCounters())
	assert.Equal(t, uint64(1), g.GeneratedPartials())
	assert.Equal(t, uint64(7), g.LastCounter())
	assert.Equal(t, v, g.LastPartial())
	assert.Equal(t, sim.VTimeInSec(1.5), g.Latency())
}
