package monitoring

import (
	"sync"
	"testing"
	"time"
)

func TestFrameMonitor_RecordFrame(t *testing.T) {
	fm := NewFrameMonitor()
	fm.RecordFrame(20 * time.Millisecond)

	m := fm.Metrics()
	if m.Frames != 1 {
		t.Errorf("frames = %d, want 1", m.Frames)
	}
	if m.AvgFrameTime != 20*time.Millisecond || m.LastFrameTime != 20*time.Millisecond {
		t.Errorf("avg=%v last=%v, want 20ms", m.AvgFrameTime, m.LastFrameTime)
	}
	if m.FramesPerSec < 49.9 || m.FramesPerSec > 50.1 {
		t.Errorf("fps = %v, want 50", m.FramesPerSec)
	}

	// The average moves a tenth of the way toward a new sample.
	fm.RecordFrame(30 * time.Millisecond)
	if got := fm.Metrics().AvgFrameTime; got != 21*time.Millisecond {
		t.Errorf("avg = %v, want 21ms", got)
	}
}

func TestFrameMonitor_Timers(t *testing.T) {
	fm := NewFrameMonitor()

	ft := fm.StartFrame()
	rt := fm.StartRaycast()
	time.Sleep(2 * time.Millisecond)
	rt.EndRaycast()
	ft.EndFrame()

	m := fm.Metrics()
	if m.LastFrameTime < 2*time.Millisecond {
		t.Errorf("frame time %v shorter than the sleep", m.LastFrameTime)
	}
	if m.AvgRaycastTime <= 0 || m.AvgRaycastTime > m.LastFrameTime {
		t.Errorf("raycast time %v outside (0, %v]", m.AvgRaycastTime, m.LastFrameTime)
	}
}

func TestFrameMonitor_CheckAlerts(t *testing.T) {
	fm := NewFrameMonitor()
	if alerts := fm.CheckAlerts(30); len(alerts) != 0 {
		t.Errorf("alerts before any frame: %v", alerts)
	}

	fm.RecordFrame(100 * time.Millisecond)
	alerts := fm.CheckAlerts(30)
	if len(alerts) != 1 || alerts[0].Type != "low_fps" {
		t.Fatalf("alerts = %+v, want one low_fps", alerts)
	}
	t.Logf("alert: %s (%.1f < %.0f)", alerts[0].Message, alerts[0].Value, alerts[0].Threshold)

	fm.Reset()
	fm.RecordFrame(10 * time.Millisecond)
	if alerts := fm.CheckAlerts(30); len(alerts) != 0 {
		t.Errorf("alerts at 100 fps: %v", alerts)
	}
}

func TestFrameMonitor_Concurrent(t *testing.T) {
	fm := NewFrameMonitor()
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				fm.StartFrame().EndFrame()
			}
		}()
	}
	wg.Wait()

	if got := fm.Metrics().Frames; got != 100 {
		t.Errorf("frames = %d, want 100", got)
	}
}
