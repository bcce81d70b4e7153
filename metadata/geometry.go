// Package metadata holds the address-geometry arithmetic shared by the
// cache and PCB packages, so the block/partial math has exactly one home.
package metadata

// BlockSize is the number of bytes in an NVM-aligned block. The PCB and
// MetadataCache both assume this value.
const BlockSize = 64

// PartialSize is the width, in bytes, of a single metadata update.
const PartialSize = 8

// PartialsPerBlock is the number of 8-byte partials packed into one block.
const PartialsPerBlock = BlockSize / PartialSize

// FullMask is the valid_mask value once every partial slot in a block has
// been written.
const FullMask uint8 = 0xFF

// Base returns the block-aligned base address that addr falls within.
func Base(addr uint64) uint64 {
	return (addr / BlockSize) * BlockSize
}

// PartialIndex returns the 0..7 slot addr occupies within its block.
func PartialIndex(addr uint64) int {
	return int((addr % BlockSize) / PartialSize)
}

// SetIndex returns the cache set addr maps to, given numSets sets.
func SetIndex(addr uint64, numSets int) int {
	return int((addr / BlockSize) % uint64(numSets))
}

// Tag returns the tag portion of addr, given numSets sets.
func Tag(addr uint64, numSets int) uint64 {
	return addr / (BlockSize * uint64(numSets))
}

// PartialAddr reconstructs the address of partial i within the block
// based at base.
func PartialAddr(base uint64, i int) uint64 {
	return base + uint64(i)*PartialSize
}
