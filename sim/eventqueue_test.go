package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/secmeta/sim"
)

var _ = Describe("EventQueue", func() {
	It("should pop events in time order", func() {
		q := sim.NewEventQueue()
		q.Push(sim.NewEventBase(3, nil))
		q.Push(sim.NewEventBase(1, nil))
		q.Push(sim.NewEventBase(2, nil))

		Expect(q.Len()).To(Equal(3))
		Expect(q.Pop().Time()).To(Equal(sim.VTimeInSec(1)))
		Expect(q.Pop().Time()).To(Equal(sim.VTimeInSec(2)))
		Expect(q.Pop().Time()).To(Equal(sim.VTimeInSec(3)))
		Expect(q.Len()).To(Equal(0))
	})

	It("should peek without removing", func() {
		q := sim.NewEventQueue()
		q.Push(sim.NewEventBase(5, nil))
		Expect(q.Peek().Time()).To(Equal(sim.VTimeInSec(5)))
		Expect(q.Len()).To(Equal(1))
	})
})

var _ = Describe("InsertionQueue", func() {
	It("should pop events in time order", func() {
		q := sim.NewInsertionQueue()
		q.Push(sim.NewEventBase(3, nil))
		q.Push(sim.NewEventBase(1, nil))
		q.Push(sim.NewEventBase(2, nil))

		Expect(q.Pop().Time()).To(Equal(sim.VTimeInSec(1)))
		Expect(q.Pop().Time()).To(Equal(sim.VTimeInSec(2)))
		Expect(q.Pop().Time()).To(Equal(sim.VTimeInSec(3)))
	})
})
