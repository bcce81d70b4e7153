package pcb_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/secmeta/nvm"
)

func TestPCB(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "PCB Suite")
}

type overflowRecord struct {
	addr, data uint64
}

type fakeOverflow struct {
	forwarded []overflowRecord
}

func (f *fakeOverflow) Forward(addr, data uint64) {
	f.forwarded = append(f.forwarded, overflowRecord{addr, data})
}

type fakeSink struct {
	records  []nvm.WriteRecord
	fullFrom int // if > 0, Enqueue calls at or after this index (0-based) fail
	calls    int
}

func (f *fakeSink) Enqueue(rec nvm.WriteRecord) bool {
	idx := f.calls
	f.calls++
	if f.fullFrom > 0 && idx >= f.fullFrom {
		return false
	}
	f.records = append(f.records, rec)
	return true
}
