package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/secmeta/sim"
)

var _ = Describe("Buffer", func() {
	var buf sim.Buffer

	BeforeEach(func() {
		buf = sim.NewBuffer("test_buffer", 2)
	})

	It("should report capacity and size", func() {
		Expect(buf.Capacity()).To(Equal(2))
		Expect(buf.Size()).To(Equal(0))
		Expect(buf.CanPush()).To(BeTrue())
	})

	It("should push and pop in FIFO order", func() {
		buf.Push(1)
		buf.Push(2)
		Expect(buf.CanPush()).To(BeFalse())
		Expect(buf.Peek()).To(Equal(1))
		Expect(buf.Pop()).To(Equal(1))
		Expect(buf.Pop()).To(Equal(2))
		Expect(buf.Pop()).To(BeNil())
	})

	It("should panic on overflow", func() {
		buf.Push(1)
		buf.Push(2)
		Expect(func() { buf.Push(3) }).To(Panic())
	})

	It("should invoke hooks with the correct position on push and pop", func() {
		var positions []string
		buf.AcceptHook(&fakeHook{f: func(ctx sim.HookCtx) {
			positions = append(positions, ctx.Pos.Name)
		}})

		buf.Push(1)
		buf.Pop()

		Expect(positions).To(Equal([]string{
			sim.HookPosBufPush.Name,
			sim.HookPosBufPop.Name,
		}))
	})

	It("should clear all elements", func() {
		buf.Push(1)
		buf.Clear()
		Expect(buf.Size()).To(Equal(0))
	})
})
