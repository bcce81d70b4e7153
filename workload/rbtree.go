package workload

// RBTree generates a sequential insert pattern with occasional
// rotation-induced revisits: every rotationPeriod-th touch re-writes the
// most recently touched address instead of advancing, mirroring a
// red-black tree's rebalancing rewrites of a recently inserted node.
type RBTree struct {
	base           uint64
	rangeBytes     uint64
	count          int
	rotationPeriod int

	emitted int
	cursor  uint64
	last    uint64
}

// NewRBTree creates an RBTree workload emitting count addresses within
// [base, base+rangeBytes), revisiting the last address once every
// rotationPeriod touches.
func NewRBTree(base, rangeBytes uint64, count, rotationPeriod int) *RBTree {
	if rotationPeriod <= 0 {
		rotationPeriod = 1
	}
	return &RBTree{
		base:           base,
		rangeBytes:     rangeBytes,
		count:          count,
		rotationPeriod: rotationPeriod,
	}
}

// Next returns the next address in the sequential-with-revisits sequence.
func (w *RBTree) Next() (uint64, bool) {
	if w.emitted >= w.count {
		return 0, false
	}

	if w.emitted > 0 && w.emitted%w.rotationPeriod == 0 {
		w.emitted++
		return w.last, true
	}

	addr := w.base + (w.cursor % w.rangeBytes)
	w.cursor += 8
	w.last = addr

	w.emitted++
	return addr, true
}
