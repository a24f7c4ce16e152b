// Package desktop runs a game session in an ebiten window.
package desktop

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"hellgrid/internal/config"
	"hellgrid/internal/game"
	"hellgrid/internal/game/keytracker"
	"hellgrid/internal/render"
	"hellgrid/internal/threading/monitoring"
)

// CuePlayer consumes drained presentation cues.
type CuePlayer interface {
	Play(cues []game.Cue)
}

// Options wires optional collaborators into the window.
type Options struct {
	Caster  render.ColumnCaster // nil casts serially
	Audio   CuePlayer           // nil runs silent
	Monitor *monitoring.FrameMonitor
	Logger  *log.Logger
}

// Game adapts a game loop to ebiten's Update/Draw/Layout cycle.
type Game struct {
	config  *config.Config
	loop    *game.GameLoop
	session *game.GameSession
	opts    Options
	monitor *monitoring.FrameMonitor
	sprites *SpriteManager
	logger  *log.Logger

	input     game.Input
	startKey  *keytracker.KeyStateTracker
	pauseKey  *keytracker.KeyStateTracker
	useKey    *keytracker.KeyStateTracker
	reloadKey *keytracker.KeyStateTracker
	debugKey  *keytracker.KeyStateTracker
	quitKey   *keytracker.KeyStateTracker

	mouseLook   bool
	lastCursorX int
	showDebug   bool
	lastAlert   time.Time
	lastUpdate  time.Time
	lastMode    game.Mode
}

// New creates the ebiten game for a session.
func New(session *game.GameSession, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	monitor := opts.Monitor
	if monitor == nil {
		monitor = monitoring.NewFrameMonitor()
	}

	return &Game{
		config:    session.Config(),
		loop:      game.NewGameLoop(session, nil),
		session:   session,
		opts:      opts,
		monitor:   monitor,
		sprites:   NewSpriteManager(logger),
		logger:    logger,
		startKey:  keytracker.New(ebiten.KeyEnter, ebiten.KeyNumpadEnter),
		pauseKey:  keytracker.New(ebiten.KeyEscape, ebiten.KeyP),
		useKey:    keytracker.New(ebiten.KeyE),
		reloadKey: keytracker.New(ebiten.KeyR),
		debugKey:  keytracker.New(ebiten.KeyF3),
		quitKey:   keytracker.New(ebiten.KeyQ),
		lastMode:  session.Mode(),
	}
}

// Run opens the window and blocks until it closes.
func (g *Game) Run() error {
	cfg := g.config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.Display.TargetFPS > 0 {
		ebiten.SetTPS(cfg.Display.TargetFPS)
	}

	err := ebiten.RunGame(g)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

// Update handles input and advances the simulation by one frame.
func (g *Game) Update() error {
	now := time.Now()
	if !g.lastUpdate.IsZero() {
		g.monitor.RecordFrame(now.Sub(g.lastUpdate))
	}
	g.lastUpdate = now

	mode := g.session.Mode()
	if g.quitKey.IsJustPressed() && mode != game.ModeRunning {
		return ebiten.Termination
	}
	if g.debugKey.IsJustPressed() {
		g.showDebug = !g.showDebug
	}
	if g.startKey.IsJustPressed() {
		if err := g.loop.Start(); err != nil {
			return err
		}
	}
	if g.pauseKey.IsJustPressed() {
		g.loop.TogglePause()
	}
	g.updateMouseLook()

	g.readInput()
	g.loop.Advance(now, &g.input)

	if cues := g.session.DrainCues(); len(cues) > 0 && g.opts.Audio != nil {
		g.opts.Audio.Play(cues)
	}
	g.trackMode()
	g.checkPerformance()
	return nil
}

// Draw composes the scene and paints it.
func (g *Game) Draw(screen *ebiten.Image) {
	raycastTimer := g.monitor.StartRaycast()
	scene := render.Compose(g.session, render.View{
		Width:  g.config.GetScreenWidth(),
		Height: g.config.GetScreenHeight(),
		Caster: g.opts.Caster,
	})
	raycastTimer.EndRaycast()

	g.drawScene(screen, scene)
}

// Layout returns the logical screen size from config.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.config.GetScreenWidth(), g.config.GetScreenHeight()
}

// readInput samples held keys every frame and latches edge actions until
// the session consumes them.
func (g *Game) readInput() {
	in := &g.input
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}

	in.Forward = pressed(ebiten.KeyW, ebiten.KeyUp)
	in.Back = pressed(ebiten.KeyS, ebiten.KeyDown)
	in.StrafeLeft = pressed(ebiten.KeyA)
	in.StrafeRight = pressed(ebiten.KeyD)
	in.TurnLeft = pressed(ebiten.KeyLeft)
	in.TurnRight = pressed(ebiten.KeyRight)
	in.Sprint = pressed(ebiten.KeyShiftLeft, ebiten.KeyShiftRight)
	in.Fire = pressed(ebiten.KeySpace, ebiten.KeyControlLeft) ||
		(g.mouseLook && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))

	if g.useKey.IsJustPressed() {
		in.Interact = true
	}
	if g.reloadKey.IsJustPressed() || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		in.Reload = true
	}
}

// updateMouseLook captures the cursor while running and turns the view by
// the horizontal cursor delta.
func (g *Game) updateMouseLook() {
	running := g.session.Mode() == game.ModeRunning && ebiten.IsFocused()
	if running != g.mouseLook {
		g.mouseLook = running
		if running {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		}
		g.lastCursorX, _ = ebiten.CursorPosition()
		return
	}
	if !g.mouseLook {
		return
	}
	x, _ := ebiten.CursorPosition()
	g.input.TurnDelta += float64(x-g.lastCursorX) * 0.003
	g.lastCursorX = x
}

func (g *Game) trackMode() {
	mode := g.session.Mode()
	if mode == g.lastMode {
		return
	}
	g.lastMode = mode
	ebiten.SetWindowTitle(g.config.Display.WindowTitle + hudModeLabel(mode))
}

func (g *Game) checkPerformance() {
	if time.Since(g.lastAlert) < 5*time.Second {
		return
	}
	for _, alert := range g.monitor.CheckAlerts(g.config.Threads.MinFPS) {
		g.logger.Warn(alert.Message, "type", alert.Type, "fps", alert.Value, "threshold", alert.Threshold)
		g.lastAlert = time.Now()
	}
}
