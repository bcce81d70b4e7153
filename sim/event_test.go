package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/secmeta/sim"
)

type fakeHandler struct {
	handled []sim.Event
}

func (h *fakeHandler) Handle(e sim.Event) error {
	h.handled = append(h.handled, e)
	return nil
}

var _ = Describe("EventBase", func() {
	It("should carry its scheduled time and handler", func() {
		h := &fakeHandler{}
		e := sim.NewEventBase(1.5, h)

		Expect(e.Time()).To(Equal(sim.VTimeInSec(1.5)))
		Expect(e.Handler()).To(Equal(h))
		Expect(e.IsSecondary()).To(BeFalse())
	})
})
