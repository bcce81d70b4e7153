// Package monitoring exposes a running pipeline's counters and host
// resource usage over HTTP, for the research accounting use named in
// the project's overview: bounding worst-case overflow and write
// amplification across large workload sweeps without instrumenting the
// datapath itself.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	// Enable profiling.
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"

	"github.com/sarchlab/secmeta/metrics"
	"github.com/sarchlab/secmeta/pcb"
)

// Monitor turns a running pipeline into an HTTP-observable server. It
// never mutates simulation state; every handler reads a snapshot.
type Monitor struct {
	counters   *metrics.Counters
	pcb        *pcb.PCB
	blockSize  uint64
	portNumber int
}

// NewMonitor creates a Monitor with nothing registered yet.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port the dashboard listens on. Ports below
// 1000 are rejected in favor of an OS-assigned port, matching the
// convention of not squatting on privileged ports.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitoring server, "+
				"using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterCounters registers the counters to expose at /api/metrics.
func (m *Monitor) RegisterCounters(c *metrics.Counters) {
	m.counters = c
}

// RegisterPCB registers the PCB to expose occupancy for at /api/pcb.
func (m *Monitor) RegisterPCB(p *pcb.PCB) {
	m.pcb = p
}

// WithBlockSize sets the block size used to compute write amplification
// in the /api/metrics response.
func (m *Monitor) WithBlockSize(blockSize uint64) *Monitor {
	m.blockSize = blockSize
	return m
}

// StartServer starts the monitor as a background web server and returns
// once it is listening.
func (m *Monitor) StartServer() string {
	r := mux.NewRouter()
	r.HandleFunc("/api/metrics", m.listMetrics)
	r.HandleFunc("/api/pcb", m.listPCB)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber >= 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	addr := fmt.Sprintf("http://localhost:%d", listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring dashboard at %s\n", addr)

	go func() {
		err := http.Serve(listener, nil)
		if err != nil && err != http.ErrServerClosed {
			dieOnErr(err)
		}
	}()

	return addr
}

type metricsRsp struct {
	metrics.Counters
	HitRate            float64 `json:"hit_rate"`
	PCBCoalescingRate  float64 `json:"pcb_coalescing_rate"`
	OverflowRate       float64 `json:"overflow_rate"`
	WriteAmplification float64 `json:"write_amplification"`
	PLUBOverhead       float64 `json:"plub_overhead"`
}

func (m *Monitor) listMetrics(w http.ResponseWriter, _ *http.Request) {
	snap := m.counters.Snapshot()

	rsp := metricsRsp{
		Counters:           snap,
		HitRate:            m.counters.HitRate(),
		PCBCoalescingRate:  m.counters.PCBCoalescingRate(),
		OverflowRate:       m.counters.OverflowRate(),
		WriteAmplification: m.counters.WriteAmplification(m.blockSize),
		PLUBOverhead:       m.counters.PLUBOverhead(),
	}

	writeJSON(w, rsp)
}

type pcbRsp struct {
	Len      int `json:"len"`
	Capacity int `json:"capacity"`
}

func (m *Monitor) listPCB(w http.ResponseWriter, _ *http.Request) {
	rsp := pcbRsp{Len: m.pcb.Len(), Capacity: m.pcb.Capacity()}
	writeJSON(w, rsp)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memorySize, err := proc.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{CPUPercent: cpuPercent, MemorySize: memorySize.RSS}
	writeJSON(w, rsp)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	b, err := json.Marshal(v)
	dieOnErr(err)

	_, err = w.Write(b)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
