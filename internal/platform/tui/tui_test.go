package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"hellgrid/internal/config"
	"hellgrid/internal/game"
	"hellgrid/internal/mathutil"
	"hellgrid/internal/render"
	"hellgrid/internal/world"
)

const corridor = "#######\n#S....#\n#######"

func newSession(t *testing.T) *game.GameSession {
	t.Helper()
	s, err := game.NewGameSession(config.Default(), []world.LevelDef{{Name: "test", Grid: corridor}},
		game.WithRand(mathutil.NewRand(1)), game.WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newModel(t *testing.T) Model {
	t.Helper()
	return NewModel(newSession(t), Options{TickRate: 30, Width: 60, Height: 24, Logger: log.New(io.Discard)})
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func tick(m Model, at time.Time) Model {
	next, _ := m.Update(TickMsg(at))
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestRasterise_Corridor(t *testing.T) {
	s := newSession(t)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	cols, rows := 40, 20
	w, h := sceneSize(cols, rows)
	g := Rasterise(render.Compose(s, render.View{Width: w, Height: h}), s.Config().Graphics.FogDistance)

	if g.Cols != cols || g.Rows != rows {
		t.Fatalf("grid %dx%d, want %dx%d", g.Cols, g.Rows, cols, rows)
	}
	if r := g.At(cols/2, rows/2).Rune; r != '+' {
		t.Errorf("crosshair = %q", r)
	}
	if r := g.At(cols/2-3, rows/2).Rune; !strings.ContainsRune(string(wallRamp), r) {
		t.Errorf("centre row shows %q, want a wall glyph", r)
	}
	if r := g.At(cols/2, 0).Rune; r != ' ' {
		t.Errorf("top row = %q, want ceiling", r)
	}
	if r := g.At(cols/2, rows-1).Rune; r != ':' {
		t.Errorf("bottom row = %q, want near floor", r)
	}
}

func TestWallRune(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		side     int
		fog      float64
		want     rune
	}{
		{"near x-side", 0.5, 0, 16, '█'},
		{"near y-side", 0.5, 1, 16, '▓'},
		{"mid", 9, 0, 16, '▒'},
		{"beyond fog", 40, 1, 16, '░'},
		{"no fog", 40, 0, 0, '█'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wallRune(tt.distance, tt.side, tt.fog); got != tt.want {
				t.Errorf("wallRune(%v, %d, %v) = %q, want %q", tt.distance, tt.side, tt.fog, got, tt.want)
			}
		})
	}
}

func TestModel_HeldKeyMovesUntilWindowExpires(t *testing.T) {
	m := newModel(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.session.Mode() != game.ModeRunning {
		t.Fatalf("mode = %v after enter", m.session.Mode())
	}

	t0 := time.Unix(1000, 0)
	m = tick(m, t0)
	startX := m.session.Player().X

	m, _ = press(m, runes("w"))
	m = tick(m, t0.Add(40*time.Millisecond))
	moved := m.session.Player().X
	if moved <= startX {
		t.Fatalf("x = %v, want > %v", moved, startX)
	}
	t.Logf("moved %.3f in one frame", moved-startX)

	// Past the hold window with no repeat the key counts as released.
	m = tick(m, t0.Add(40*time.Millisecond+holdWindow))
	settled := m.session.Player().X
	m = tick(m, t0.Add(80*time.Millisecond+holdWindow))
	if got := m.session.Player().X; got != settled {
		t.Errorf("still moving after release: %v -> %v", settled, got)
	}
}

func TestModel_EdgeActionsLatch(t *testing.T) {
	m := newModel(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = press(m, runes("r"))
	m, _ = press(m, runes("e"))
	if !m.input.Reload || !m.input.Interact {
		t.Fatalf("edge flags not latched: %+v", *m.input)
	}
	m = tick(m, time.Unix(1000, 0))
	if m.input.Reload || m.input.Interact {
		t.Errorf("edge flags survived the step: %+v", *m.input)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if _, cmd := press(m, runes("q")); isQuit(cmd) {
		t.Error("q quit while running")
	}

	m, _ = press(m, runes("p"))
	if m.session.Mode() != game.ModePaused {
		t.Fatalf("mode = %v, want paused", m.session.Mode())
	}
	next, cmd := press(m, runes("q"))
	if !isQuit(cmd) {
		t.Error("q did not quit while paused")
	}
	if next.View() != "" {
		t.Error("view not blank after quitting")
	}

	if _, cmd := press(newModel(t), tea.KeyMsg{Type: tea.KeyCtrlC}); !isQuit(cmd) {
		t.Error("ctrl+c did not quit")
	}
}

func TestModel_View(t *testing.T) {
	m := newModel(t)
	menu := m.View()
	if !strings.Contains(menu, "HELLGRID") {
		t.Errorf("menu view missing title:\n%s", menu)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	running := m.View()
	if !strings.Contains(running, "AMMO") || !strings.Contains(running, "SCORE") {
		t.Errorf("running view missing HUD:\n%s", running)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 8, Height: 4})
	if got := next.(Model).View(); got != "terminal too small" {
		t.Errorf("tiny view = %q", got)
	}
}
