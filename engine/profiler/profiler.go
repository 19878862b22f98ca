package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
)

// StatsSource reports renderer resource usage. renderer.Renderer satisfies it.
type StatsSource interface {
	Stats() renderer.Stats
}

// Sample is one profiling report.
type Sample struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
	Renderer    renderer.Stats
}

// Profiler tracks frame rate, memory and renderer statistics for performance monitoring.
// Reports stats to the shared logger at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	source         StatsSource
	last           Sample
}

// ProfilerOption configures a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often the profiler reports. Non-positive values report every tick.
//
// Parameters:
//   - d: the report interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = max(d, 0)
	}
}

// WithStatsSource includes renderer resource counts in each report.
//
// Parameters:
//   - src: the renderer to sample
//
// Returns:
//   - ProfilerOption: option function to apply
func WithStatsSource(src StatsSource) ProfilerOption {
	return func(p *Profiler) {
		p.source = src
	}
}

// NewProfiler creates a new Profiler. Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory,
// and live renderer resources when a stats source is attached.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	s := Sample{}
	if secs := elapsed.Seconds(); secs > 0 {
		s.FPS = float64(p.frameCount) / secs
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// TotalAlloc: Cumulative bytes allocated for heap objects (tracks churn)
	// Sys: Total bytes of memory obtained from the OS
	s.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	s.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	if secs := elapsed.Seconds(); secs > 0 {
		allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
		s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / secs
	}

	s.GCCount = p.memStats.NumGC
	if s.GCCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	attrs := []any{
		"fps", s.FPS,
		"heap_mb", s.HeapMB,
		"alloc_rate_mb", s.AllocRateMB,
		"gc", s.GCCount,
		"gc_last_us", s.LastPauseUs,
		"gc_max_us", s.MaxPauseUs,
		"sys_mb", s.SysMB,
	}
	if p.source != nil {
		s.Renderer = p.source.Stats()
		attrs = append(attrs,
			"meshes", s.Renderer.Meshes,
			"materials", s.Renderer.Materials,
			"draws", s.Renderer.LastDraws,
			"frames", s.Renderer.Frames,
		)
	}
	common.Logger().Info("profile", attrs...)

	p.last = s
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recent report.
//
// Returns:
//   - Sample: the last sample, zero before the first report
func (p *Profiler) Last() Sample {
	return p.last
}
