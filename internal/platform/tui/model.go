package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"hellgrid/internal/game"
	"hellgrid/internal/render"
)

// Rows below the view: two HUD lines and the key help.
const chromeRows = 3

var (
	hudStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	hudWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	hudKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	hudDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	overlayTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	overlayBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 4).Align(lipgloss.Center)
)

// Options configures the terminal frontend.
type Options struct {
	TickRate      int
	Width, Height int // terminal size until the first resize message
	Caster        render.ColumnCaster
	Logger        *log.Logger
}

// Model is the Bubble Tea model driving one session.
type Model struct {
	loop    *game.GameLoop
	session *game.GameSession
	opts    Options
	keys    KeyMap
	help    help.Model
	styles  styleCache
	logger  *log.Logger

	input    *game.Input
	held     *heldKeys
	lastTick time.Time
	width    int
	height   int
	quitting bool
}

// NewModel creates the model for a session in menu mode.
func NewModel(session *game.GameSession, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = 80, 24
	}
	h := help.New()
	h.Width = width

	return Model{
		loop:    game.NewGameLoop(session, nil),
		session: session,
		opts:    opts,
		keys:    DefaultKeyMap(),
		help:    h,
		styles:  make(styleCache),
		logger:  logger,
		input:   &game.Input{},
		held:    &heldKeys{},
		width:   width,
		height:  height,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

func (m Model) now() time.Time {
	if m.lastTick.IsZero() {
		return time.Now()
	}
	return m.lastTick
}

// handleKey latches edge actions into the input and refreshes held ones.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mode := m.session.Mode()
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Quit) && mode != game.ModeRunning:
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		if err := m.loop.Start(); err != nil {
			m.logger.Error("start failed", "err", err)
		}
		m.held.clear()
		return m, nil
	case key.Matches(msg, m.keys.Pause):
		m.loop.TogglePause()
		m.held.clear()
		return m, nil
	case key.Matches(msg, m.keys.Use):
		m.input.Interact = true
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		m.input.Reload = true
		return m, nil
	}

	if a, ok := m.keys.heldFor(msg); ok {
		now := m.now()
		m.held.press(a, now)
		if isSprint(msg) {
			m.held.press(holdSprint, now)
		}
	}
	return m, nil
}

// handleTick steps the simulation with the held keys as of this frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.lastTick = now
	m.held.apply(m.input, now)
	m.loop.Advance(now, m.input)

	// No audio in the terminal; keep the queue from growing.
	for _, c := range m.session.DrainCues() {
		m.logger.Debug("cue", "cue", c)
	}
	return m, tickCmd(m.opts.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	cols := m.width
	rows := m.height - chromeRows
	if cols < 10 || rows < 5 {
		return "terminal too small"
	}

	w, h := sceneSize(cols, rows)
	sc := render.Compose(m.session, render.View{Width: w, Height: h, Caster: m.opts.Caster})

	var view string
	if sc.Overlay != nil {
		view = m.renderOverlay(sc.Overlay, cols, rows)
	} else {
		view = Rasterise(sc, m.session.Config().Graphics.FogDistance).String(m.styles)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		view,
		m.renderHUD(sc.HUD, cols),
		m.help.View(m.keys),
	)
}

func (m Model) renderOverlay(o *render.Overlay, cols, rows int) string {
	body := overlayTitleStyle.Render(strings.ToUpper(o.Title))
	if len(o.Lines) > 0 {
		body += "\n\n" + strings.Join(o.Lines, "\n")
	}
	return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, overlayBoxStyle.Render(body))
}

func (m Model) renderHUD(h game.HUD, cols int) string {
	hp := hudStyle
	if h.Health <= h.MaxHealth/4 {
		hp = hudWarnStyle
	}
	ammo := fmt.Sprintf("AMMO %d/%d", h.Clip, h.Reserve)
	if h.Reloading {
		ammo = fmt.Sprintf("RELOADING %3.0f%%", h.ReloadProgress*100)
	}
	parts := []string{
		hp.Render(fmt.Sprintf("HP %d", h.Health)),
		hudStyle.Render(fmt.Sprintf("AR %d", h.Armor)),
		hudStyle.Render(ammo),
		hudStyle.Render(fmt.Sprintf("SCORE %d", h.Score)),
		hudStyle.Render(fmt.Sprintf("KILLS %d", h.Kills)),
	}
	if h.Combo > 0 {
		parts = append(parts, hudWarnStyle.Render(fmt.Sprintf("COMBO x%d", h.Combo+1)))
	}
	if h.HasKey {
		parts = append(parts, hudKeyStyle.Render("KEYCARD"))
	}
	status := strings.Join(parts, "  ")

	info := hudDimStyle.Render(fmt.Sprintf("L%d/%d %s  %s  %s  [%d/%d]",
		h.LevelNumber, h.LevelCount, h.LevelName, h.PlayTime, h.Objective,
		h.TotalEnemies-h.EnemiesLeft, h.TotalEnemies))
	if h.Message != "" {
		info += "  " + messageStyle.Render(h.Message)
	}

	line := lipgloss.NewStyle().MaxWidth(cols)
	return line.Render(status) + "\n" + line.Render(info)
}

// Run starts the Bubble Tea program for a session and blocks until the
// player quits.
func Run(session *game.GameSession, opts Options) error {
	p := tea.NewProgram(NewModel(session, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
