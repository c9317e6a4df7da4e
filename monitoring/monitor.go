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
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/monitoring/web"
	"github.com/sarchlab/cachesim/sim/hooking"
	"github.com/sarchlab/cachesim/sim/id"
)

// occupancyRefreshInterval is the number of accesses between two updates of
// the bank occupancy of a snapshot.
const occupancyRefreshInterval = 1024

// A Snapshot is a copy of the observable state of a cache.
type Snapshot struct {
	Name       string           `json:"name"`
	Spec       cache.Spec       `json:"spec"`
	Statistics cache.Statistics `json:"statistics"`
	Banks      []BankSnapshot   `json:"banks"`
}

// A BankSnapshot is a copy of the observable state of a bank.
type BankSnapshot struct {
	Name      string `json:"name"`
	NumBlocks int    `json:"num_blocks"`
	Occupancy int    `json:"occupancy"`

	kind cache.AccessKind
}

type watchedCache struct {
	monitor  *Monitor
	comp     *cache.Comp
	bar      *ProgressBar
	snapshot Snapshot
}

// Func updates the snapshot after an access. It runs on the goroutine that
// drives the cache.
func (w *watchedCache) Func(ctx hooking.HookCtx) {
	if ctx.Pos != cache.HookPosAccess {
		return
	}

	result := ctx.Detail.(cache.AccessResult)
	stats := w.comp.Statistics()

	w.monitor.lock.Lock()
	w.snapshot.Statistics = stats
	if result.Seq%occupancyRefreshInterval == 0 {
		w.refreshOccupancy()
	}
	w.monitor.lock.Unlock()

	w.bar.IncrementFinished(1)
}

// refreshOccupancy must be called with the monitor lock held.
func (w *watchedCache) refreshOccupancy() {
	for i := range w.snapshot.Banks {
		b := &w.snapshot.Banks[i]
		b.Occupancy = w.comp.Occupancy(b.kind)
	}
}

// Monitor turns a run into a server that allows external monitoring of the
// caches.
type Monitor struct {
	portNumber  int
	idGenerator id.IDGenerator

	lock   sync.Mutex
	caches []*watchedCache

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		idGenerator: id.NewIDGenerator(),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterComponent registers a cache to be monitored. It must be called
// before the cache handles any access.
func (m *Monitor) RegisterComponent(c *cache.Comp) {
	w := &watchedCache{
		monitor: m,
		comp:    c,
		bar:     m.CreateProgressBar(c.Name(), 0),
		snapshot: Snapshot{
			Name:       c.Name(),
			Spec:       c.Spec(),
			Statistics: c.Statistics(),
		},
	}

	for _, b := range c.Banks() {
		w.snapshot.Banks = append(w.snapshot.Banks, BankSnapshot{
			Name:      b.Name,
			NumBlocks: b.NumBlocks,
			Occupancy: b.Occupancy,
			kind:      b.Kinds[0],
		})
	}

	m.lock.Lock()
	m.caches = append(m.caches, w)
	m.lock.Unlock()

	c.AcceptHook(w)
}

// Refresh brings every snapshot up to date. It must be called from the
// goroutine that drives the caches.
func (m *Monitor) Refresh() {
	m.lock.Lock()
	defer m.lock.Unlock()

	for _, w := range m.caches {
		w.snapshot.Statistics = w.comp.Statistics()
		w.refreshOccupancy()
	}
}

// Snapshots returns a copy of the snapshot of every cache.
func (m *Monitor) Snapshots() []Snapshot {
	m.lock.Lock()
	defer m.lock.Unlock()

	snapshots := make([]Snapshot, 0, len(m.caches))
	for _, w := range m.caches {
		s := w.snapshot
		s.Banks = append([]BankSnapshot(nil), w.snapshot.Banks...)
		snapshots = append(snapshots, s)
	}

	return snapshots
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        m.idGenerator.Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/list_components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.listComponentDetails)
	r.HandleFunc("/api/stats", m.listStats)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server and returns its address.
func (m *Monitor) StartServer() string {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	r := m.router()
	go func() {
		err := http.Serve(listener, r)
		dieOnErr(err)
	}()

	return url
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	names := make([]string, 0, len(m.caches))
	for _, c := range m.caches {
		names = append(names, c.snapshot.Name)
	}
	m.lock.Unlock()

	bytes, err := json.Marshal(names)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listComponentDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	snapshot := m.findSnapshotOr404(w, name)
	if snapshot == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(snapshot)
	serializer.SetMaxDepth(3)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) findSnapshotOr404(
	w http.ResponseWriter,
	name string,
) *Snapshot {
	for _, s := range m.Snapshots() {
		if s.Name == name {
			return &s
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Component not found"))
	dieOnErr(err)

	return nil
}

func (m *Monitor) listStats(w http.ResponseWriter, _ *http.Request) {
	bytes, err := json.Marshal(m.Snapshots())
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]progressBarRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.snapshot())
	}
	m.progressBarsLock.Unlock()

	bytes, err := json.Marshal(bars)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
