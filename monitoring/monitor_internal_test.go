package monitoring

import (
	"encoding/json"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/secmeta/metrics"
	"github.com/sarchlab/secmeta/pcb"
)

func newTestPCB() *pcb.PCB {
	return pcb.New(4, nil, nil, &metrics.Counters{})
}

var _ = Describe("Monitor", func() {
	var (
		m *Monitor
		c *metrics.Counters
	)

	BeforeEach(func() {
		c = &metrics.Counters{Hits: 3, Misses: 1, PCBTotalPartials: 8, PCBCoalescedBlocks: 1, NVMWrites: 1}
		m = NewMonitor().WithBlockSize(64)
		m.RegisterCounters(c)
		m.RegisterPCB(newTestPCB())
	})

	It("should serve metrics as JSON with derived ratios", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/metrics", nil)

		m.listMetrics(rec, req)

		Expect(rec.Code).To(Equal(200))

		var rsp metricsRsp
		err := json.Unmarshal(rec.Body.Bytes(), &rsp)
		Expect(err).To(BeNil())
		Expect(rsp.Hits).To(Equal(uint64(3)))
		Expect(rsp.HitRate).To(BeNumerically("~", 0.75, 1e-9))
	})

	It("should serve PCB occupancy as JSON", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/pcb", nil)

		m.listPCB(rec, req)

		Expect(rec.Code).To(Equal(200))

		var rsp pcbRsp
		err := json.Unmarshal(rec.Body.Bytes(), &rsp)
		Expect(err).To(BeNil())
		Expect(rsp.Capacity).To(Equal(4))
		Expect(rsp.Len).To(Equal(0))
	})
})
