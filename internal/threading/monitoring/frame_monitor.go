package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// FrameMonitor tracks frame and raycast timings. Timers may be ended from
// any goroutine.
type FrameMonitor struct {
	frameCount  atomic.Uint64
	frameTime   atomic.Uint64 // nanoseconds, last frame
	raycastTime atomic.Uint64 // nanoseconds, last cast

	mutex          sync.RWMutex
	avgFrameTime   float64 // exponential moving average, nanoseconds
	avgRaycastTime float64
	startTime      time.Time
}

// smoothing is the weight of the newest sample in the moving averages.
const smoothing = 0.1

// NewFrameMonitor creates a new monitor.
func NewFrameMonitor() *FrameMonitor {
	return &FrameMonitor{startTime: time.Now()}
}

// FrameTimer measures one frame.
type FrameTimer struct {
	monitor   *FrameMonitor
	startTime time.Time
}

// StartFrame begins frame timing.
func (fm *FrameMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{monitor: fm, startTime: time.Now()}
}

// EndFrame completes frame timing.
func (ft *FrameTimer) EndFrame() {
	ft.monitor.RecordFrame(time.Since(ft.startTime))
}

// RecordFrame adds one frame sample.
func (fm *FrameMonitor) RecordFrame(d time.Duration) {
	ns := uint64(d.Nanoseconds())
	fm.frameTime.Store(ns)
	n := fm.frameCount.Add(1)

	fm.mutex.Lock()
	fm.avgFrameTime = average(fm.avgFrameTime, float64(ns), n)
	fm.mutex.Unlock()
}

// RaycastTimer measures one wall pass.
type RaycastTimer struct {
	monitor   *FrameMonitor
	startTime time.Time
}

// StartRaycast begins raycast timing.
func (fm *FrameMonitor) StartRaycast() *RaycastTimer {
	return &RaycastTimer{monitor: fm, startTime: time.Now()}
}

// EndRaycast completes raycast timing.
func (rt *RaycastTimer) EndRaycast() {
	ns := uint64(time.Since(rt.startTime).Nanoseconds())
	rt.monitor.raycastTime.Store(ns)

	rt.monitor.mutex.Lock()
	rt.monitor.avgRaycastTime = average(rt.monitor.avgRaycastTime, float64(ns), rt.monitor.frameCount.Load()+1)
	rt.monitor.mutex.Unlock()
}

func average(avg, sample float64, n uint64) float64 {
	if n <= 1 || avg == 0 {
		return sample
	}
	return avg + smoothing*(sample-avg)
}

// FrameMetrics is a snapshot of the monitor.
type FrameMetrics struct {
	Frames         uint64
	FramesPerSec   float64 // from the moving average
	AvgFrameTime   time.Duration
	LastFrameTime  time.Duration
	AvgRaycastTime time.Duration
	Uptime         time.Duration
	Goroutines     int
	MemoryAllocMB  uint64
}

// Metrics returns the current snapshot.
func (fm *FrameMonitor) Metrics() FrameMetrics {
	fm.mutex.RLock()
	avgFrame := fm.avgFrameTime
	avgRay := fm.avgRaycastTime
	start := fm.startTime
	fm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	fps := 0.0
	if avgFrame > 0 {
		fps = float64(time.Second) / avgFrame
	}
	return FrameMetrics{
		Frames:         fm.frameCount.Load(),
		FramesPerSec:   fps,
		AvgFrameTime:   time.Duration(avgFrame),
		LastFrameTime:  time.Duration(fm.frameTime.Load()),
		AvgRaycastTime: time.Duration(avgRay),
		Uptime:         time.Since(start),
		Goroutines:     runtime.NumGoroutine(),
		MemoryAllocMB:  memStats.Alloc / 1024 / 1024,
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
}

// CheckAlerts reports a low_fps alert when the average frame rate is
// under minFPS.
func (fm *FrameMonitor) CheckAlerts(minFPS float64) []PerformanceAlert {
	var alerts []PerformanceAlert
	m := fm.Metrics()
	if m.Frames > 0 && m.FramesPerSec > 0 && m.FramesPerSec < minFPS {
		alerts = append(alerts, PerformanceAlert{
			Type:      "low_fps",
			Message:   "Frame rate is below target",
			Value:     m.FramesPerSec,
			Threshold: minFPS,
		})
	}
	return alerts
}

// Reset clears all counters.
func (fm *FrameMonitor) Reset() {
	fm.frameCount.Store(0)
	fm.frameTime.Store(0)
	fm.raycastTime.Store(0)

	fm.mutex.Lock()
	fm.avgFrameTime = 0
	fm.avgRaycastTime = 0
	fm.startTime = time.Now()
	fm.mutex.Unlock()
}
