// Package perf samples per-module and dashboard-wide resource estimates
// once per tick.
package perf

import (
	"runtime"
	"sync"
	"time"

	"github.com/driftlab/pulseboard/internal/module"
)

// DashboardMetrics aggregates resource estimates for the whole dashboard.
type DashboardMetrics struct {
	FPS             float64       `json:"fps"`
	TickDuration    time.Duration `json:"tick_duration"`
	ModuleCount     int           `json:"module_count"`
	ConnectionCount int           `json:"connection_count"`
	HeapAllocBytes  uint64        `json:"heap_alloc_bytes"`
	Goroutines      int           `json:"goroutines"`
}

// memStatsEvery controls how often the (comparatively expensive) runtime
// memory stats are refreshed, in ticks.
const memStatsEvery = 30

// fpsSmoothing is the EWMA weight given to the newest tick interval.
const fpsSmoothing = 0.1

// Monitor keeps a rolling view of tick timing and apportions process-level
// estimates across modules. Renders happen outside this process, so
// per-module CPU and render time are heuristics, weighted by connection
// fan-in.
type Monitor struct {
	mu        sync.Mutex
	lastTick  time.Time
	avgTick   time.Duration
	tickCount uint64
	heapAlloc uint64
	dashboard DashboardMetrics
}

// NewMonitor creates a monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// Sample records one tick. connFor reports the connection count for a
// module id; total is the dashboard-wide connection count.
func (m *Monitor) Sample(now time.Time, modules []*module.Module, total int, connFor func(id string) int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.lastTick.IsZero() {
		dt := now.Sub(m.lastTick)
		if m.avgTick == 0 {
			m.avgTick = dt
		} else {
			m.avgTick = time.Duration(float64(m.avgTick)*(1-fpsSmoothing) + float64(dt)*fpsSmoothing)
		}
	}
	m.lastTick = now
	m.tickCount++

	if m.tickCount%memStatsEvery == 1 {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		m.heapAlloc = ms.HeapAlloc
	}

	fps := 0.0
	if m.avgTick > 0 {
		fps = float64(time.Second) / float64(m.avgTick)
	}

	m.dashboard = DashboardMetrics{
		FPS:             fps,
		TickDuration:    m.avgTick,
		ModuleCount:     len(modules),
		ConnectionCount: total,
		HeapAllocBytes:  m.heapAlloc,
		Goroutines:      runtime.NumGoroutine(),
	}

	if len(modules) == 0 {
		return
	}

	memShare := float64(m.heapAlloc) / float64(len(modules))
	for _, mod := range modules {
		conns := connFor(mod.ID)
		weight := 1.0 + float64(conns)

		mod.Metrics.CPU = weight / float64(len(modules)+total)
		mod.Metrics.Memory = memShare
		mod.Metrics.RenderTime = m.avgTick.Seconds() * 1000 / float64(len(modules))
		mod.Metrics.UpdateFrequency = fps
		mod.Metrics.DataProcessed += float64(conns)
		mod.Metrics.ConnectionCount = conns
	}
}

// Dashboard returns the latest dashboard-wide metrics.
func (m *Monitor) Dashboard() DashboardMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dashboard
}

// Reset clears sampling history, used when the update loop restarts.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastTick = time.Time{}
	m.avgTick = 0
	m.tickCount = 0
}
