package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/secmeta/sim"
)

var _ = Describe("SerialEngine", func() {
	var (
		engine *sim.SerialEngine
		h      *fakeHandler
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		h = &fakeHandler{}
	})

	It("should run events in time order and advance the clock", func() {
		engine.Schedule(sim.NewEventBase(2, h))
		engine.Schedule(sim.NewEventBase(1, h))

		err := engine.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(h.handled).To(HaveLen(2))
		Expect(h.handled[0].Time()).To(Equal(sim.VTimeInSec(1)))
		Expect(h.handled[1].Time()).To(Equal(sim.VTimeInSec(2)))
		Expect(engine.CurrentTime()).To(Equal(sim.VTimeInSec(2)))
	})

	It("should panic when scheduling an event in the past", func() {
		engine.Schedule(sim.NewEventBase(5, h))
		_ = engine.Run()

		Expect(func() {
			engine.Schedule(sim.NewEventBase(1, h))
		}).To(Panic())
	})

	It("should invoke registered simulation end handlers", func() {
		var endedAt sim.VTimeInSec = -1
		engine.RegisterSimulationEndHandler(endHandlerFunc(func(now sim.VTimeInSec) {
			endedAt = now
		}))

		engine.Schedule(sim.NewEventBase(3, h))
		_ = engine.Run()
		engine.Finished()

		Expect(endedAt).To(Equal(sim.VTimeInSec(3)))
	})
})

type endHandlerFunc func(now sim.VTimeInSec)

func (f endHandlerFunc) Handle(now sim.VTimeInSec) {
	f(now)
}
