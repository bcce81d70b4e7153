package metadata_test

import (
	"testing"

	"github.com/sarchlab/secmeta/metadata"
	"github.com/stretchr/testify/assert"
)

func TestBase(t *testing.T) {
	assert.Equal(t, uint64(0x0), metadata.Base(0x08))
	assert.Equal(t, uint64(0x40), metadata.Base(0x40))
	assert.Equal(t, uint64(0x40), metadata.Base(0x7F))
}

func TestPartialIndex(t *testing.T) {
	assert.Equal(t, 0, metadata.PartialIndex(0x0))
	assert.Equal(t, 1, metadata.PartialIndex(0x8))
	assert.Equal(t, 7, metadata.PartialIndex(0x38))
	assert.Equal(t, 7, metadata.PartialIndex(0x78))
}

func TestSetIndexAndTag(t *testing.T) {
	numSets := 4

	assert.Equal(t, 0, metadata.SetIndex(0x0, numSets))
	assert.Equal(t, uint64(0), metadata.Tag(0x0, numSets))

	// One block per set walks the sets before the tag increments.
	blockStride := uint64(metadata.BlockSize)
	addr := blockStride * uint64(numSets)
	assert.Equal(t, 0, metadata.SetIndex(addr, numSets))
	assert.Equal(t, uint64(1), metadata.Tag(addr, numSets))
}

func TestPartialAddr(t *testing.T) {
	assert.Equal(t, uint64(0x18), metadata.PartialAddr(0x0, 3))
	assert.Equal(t, uint64(0x400), metadata.PartialAddr(0x400, 0))
}
