package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/secmeta/sim"
)

var _ = Describe("ComponentBase", func() {
	It("should carry its name", func() {
		c := sim.NewComponentBase("test_comp")
		Expect(c.Name()).To(Equal("test_comp"))
	})

	It("should accept and invoke hooks", func() {
		c := sim.NewComponentBase("test_comp")
		invoked := false
		c.AcceptHook(&fakeHook{f: func(ctx sim.HookCtx) { invoked = true }})
		c.InvokeHook(sim.HookCtx{Domain: c})
		Expect(invoked).To(BeTrue())
		Expect(c.NumHooks()).To(Equal(1))
	})
})

type fakeHook struct {
	f func(ctx sim.HookCtx)
}

func (h *fakeHook) Func(ctx sim.HookCtx) {
	h.f(ctx)
}
