package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/secmeta/sim"
)

// countingTicker reports progress for the first n ticks, then stalls.
type countingTicker struct {
	remaining int
	ticks     int
}

func (t *countingTicker) Tick() bool {
	t.ticks++
	if t.remaining <= 0 {
		return false
	}
	t.remaining--
	return true
}

var _ = Describe("TickingComponent", func() {
	var (
		engine *sim.SerialEngine
		ticker *countingTicker
		tc     *sim.TickingComponent
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		ticker = &countingTicker{remaining: 2}
		tc = sim.NewTickingComponent("tc", engine, 1*sim.Hz, ticker)
	})

	It("should re-arm itself while it makes progress", func() {
		tc.TickNow()
		Expect(engine.Run()).NotTo(HaveOccurred())

		Expect(ticker.ticks).To(Equal(3))
	})

	It("should allow external callers to wake it back up", func() {
		tc.TickNow()
		Expect(engine.Run()).NotTo(HaveOccurred())

		ticker.remaining = 1
		tc.NotifyWorkAvailable()
		Expect(engine.Run()).NotTo(HaveOccurred())

		Expect(ticker.ticks).To(Equal(5))
	})

	It("should carry the name it was constructed with", func() {
		Expect(tc.Name()).To(Equal("tc"))
	})
})
