package pcb_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/secmeta/metrics"
	"github.com/sarchlab/secmeta/pcb"
)

var _ = Describe("PCB", func() {
	var (
		overflow *fakeOverflow
		sink     *fakeSink
		counters *metrics.Counters
		p        *pcb.PCB
	)

	BeforeEach(func() {
		overflow = &fakeOverflow{}
		sink = &fakeSink{}
		counters = &metrics.Counters{}
	})

	Describe("full-block coalescing", func() {
		BeforeEach(func() {
			p = pcb.New(8, overflow, sink, counters)
			for i := uint64(0); i < 8; i++ {
				p.Coalesce(i*8, i+1)
			}
		})

		It("emits one eagerly-coalesced block", func() {
			Expect(counters.PCBCoalescedBlocks).To(Equal(uint64(1)))
			Expect(counters.PCBPartialFlushes).To(Equal(uint64(0)))
			Expect(counters.PCBOverflows).To(Equal(uint64(0)))
			Expect(counters.NVMWrites).To(Equal(uint64(1)))
			Expect(counters.NVMBytesWritten).To(Equal(uint64(64)))
			Expect(sink.records).To(HaveLen(8))
			Expect(p.Len()).To(Equal(0))
		})
	})

	Describe("partial flush", func() {
		BeforeEach(func() {
			p = pcb.New(8, overflow, sink, counters)
			p.Coalesce(0x0, 0xA)
			p.Coalesce(0x8, 0xB)
			p.Coalesce(0x10, 0xC)
			p.Flush()
		})

		It("flushes the partial entry and accounts it as a partial flush", func() {
			Expect(counters.PCBCoalescedBlocks).To(Equal(uint64(0)))
			Expect(counters.PCBPartialFlushes).To(Equal(uint64(1)))
			Expect(sink.records).To(HaveLen(3))
			Expect(p.Len()).To(Equal(0))
		})
	})

	Describe("overflow admission rule", func() {
		BeforeEach(func() {
			p = pcb.New(2, overflow, sink, counters)
			p.Coalesce(0x0, 1)
			p.Coalesce(0x40, 2)
			p.Coalesce(0x80, 3)
		})

		It("routes the third distinct base to the overflow path", func() {
			Expect(counters.PCBOverflows).To(Equal(uint64(1)))
			Expect(overflow.forwarded).To(HaveLen(1))
			Expect(overflow.forwarded[0].addr).To(Equal(uint64(0x80)))
			Expect(p.Len()).To(Equal(2))
		})

		It("still admits updates to already-staged bases", func() {
			p.Coalesce(0x8, 4)
			Expect(counters.PCBOverflows).To(Equal(uint64(1)))
			Expect(p.Len()).To(Equal(2))
		})
	})

	Describe("last-writer-wins", func() {
		It("keeps the most recent value for a repeated address", func() {
			p = pcb.New(8, overflow, sink, counters)
			p.Coalesce(0x8, 0x11)
			p.Coalesce(0x8, 0x22)
			p.Flush()

			Expect(sink.records).To(HaveLen(1))
			Expect(sink.records[0].Data).To(Equal(uint64(0x22)))
		})
	})
})
