package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/secmeta/sim"
)

var _ = Describe("Freq", func() {
	It("should compute the period from the frequency", func() {
		f := sim.Freq(1 * sim.GHz)
		Expect(float64(f.Period())).To(BeNumerically("~", 1e-9, 1e-15))
	})

	It("should panic on a zero frequency period", func() {
		f := sim.Freq(0)
		Expect(func() { f.Period() }).To(Panic())
	})

	It("should snap to the next tick", func() {
		f := sim.Freq(1 * sim.Hz)
		next := f.NextTick(0)
		Expect(float64(next)).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("should advance by whole cycles", func() {
		f := sim.Freq(1 * sim.Hz)
		later := f.NCyclesLater(3, 0)
		Expect(float64(later)).To(BeNumerically("~", 3.0, 1e-9))
	})
})
