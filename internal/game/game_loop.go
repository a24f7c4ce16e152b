package game

import (
	"time"
)

// FrameRenderer draws a session. It must not mutate it.
type FrameRenderer interface {
	RenderFrame(s *GameSession)
}

// GameLoop turns wall-clock frames into capped simulation steps.
type GameLoop struct {
	session  *GameSession
	renderer FrameRenderer
	maxDelta time.Duration
	last     time.Time
	frames   int
}

// NewGameLoop creates a new game loop manager. renderer may be nil for
// frontends that draw from their own callback.
func NewGameLoop(session *GameSession, renderer FrameRenderer) *GameLoop {
	maxDelta := time.Duration(session.config.Loop.MaxFrameDelta * float64(time.Second))
	return &GameLoop{
		session:  session,
		renderer: renderer,
		maxDelta: maxDelta,
	}
}

// Frames counts Frame calls.
func (gl *GameLoop) Frames() int {
	return gl.frames
}

// Advance computes the capped delta since the previous call and steps the
// session with it. The first call only records the clock. It returns the dt
// used, in seconds.
func (gl *GameLoop) Advance(now time.Time, in *Input) float64 {
	var elapsed time.Duration
	if !gl.last.IsZero() {
		elapsed = now.Sub(gl.last)
	}
	gl.last = now

	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > gl.maxDelta {
		elapsed = gl.maxDelta
	}
	dt := elapsed.Seconds()
	gl.session.Step(dt, in)
	return dt
}

// Frame advances the simulation and then always renders, whatever the mode.
func (gl *GameLoop) Frame(now time.Time, in *Input) float64 {
	dt := gl.Advance(now, in)
	gl.frames++
	if gl.renderer != nil {
		gl.renderer.RenderFrame(gl.session)
	}
	return dt
}

// Start forwards to the session and resets the clock so time spent in
// menus does not leak into the first step.
func (gl *GameLoop) Start() error {
	gl.last = time.Time{}
	return gl.session.Start()
}

// TogglePause forwards to the session.
func (gl *GameLoop) TogglePause() {
	gl.last = time.Time{}
	gl.session.TogglePause()
}
