package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"hellgrid/internal/game"
)

// Terminals report presses and auto-repeats but never releases, so a held
// action stays down for holdWindow after its last key event.
const holdWindow = 220 * time.Millisecond

type heldAction int

const (
	holdForward heldAction = iota
	holdBack
	holdStrafeLeft
	holdStrafeRight
	holdTurnLeft
	holdTurnRight
	holdFire
	holdSprint
	heldActionCount
)

// KeyMap holds the terminal bindings. It satisfies help.KeyMap.
type KeyMap struct {
	Forward     key.Binding
	Back        key.Binding
	StrafeLeft  key.Binding
	StrafeRight key.Binding
	TurnLeft    key.Binding
	TurnRight   key.Binding
	Fire        key.Binding
	Use         key.Binding
	Reload      key.Binding
	Start       key.Binding
	Pause       key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

// DefaultKeyMap returns the standard bindings. Upper-case movement keys
// (shift held) sprint.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Forward:     key.NewBinding(key.WithKeys("w", "W", "up"), key.WithHelp("w/↑", "forward")),
		Back:        key.NewBinding(key.WithKeys("s", "S", "down"), key.WithHelp("s/↓", "back")),
		StrafeLeft:  key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a", "strafe left")),
		StrafeRight: key.NewBinding(key.WithKeys("d", "D"), key.WithHelp("d", "strafe right")),
		TurnLeft:    key.NewBinding(key.WithKeys("left", "j"), key.WithHelp("←/j", "turn left")),
		TurnRight:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "turn right")),
		Fire:        key.NewBinding(key.WithKeys(" ", "space", "f"), key.WithHelp("space", "fire")),
		Use:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "use")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Start:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Pause:       key.NewBinding(key.WithKeys("p", "esc"), key.WithHelp("p", "pause")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.TurnLeft, k.TurnRight, k.StrafeLeft, k.StrafeRight, k.Fire, k.Use, k.Reload, k.Pause, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Back, k.StrafeLeft, k.StrafeRight},
		{k.TurnLeft, k.TurnRight, k.Fire, k.Use, k.Reload},
		{k.Start, k.Pause, k.Quit},
	}
}

// heldFor maps a key message to the held action it refreshes.
func (k KeyMap) heldFor(msg tea.KeyMsg) (heldAction, bool) {
	switch {
	case key.Matches(msg, k.Forward):
		return holdForward, true
	case key.Matches(msg, k.Back):
		return holdBack, true
	case key.Matches(msg, k.StrafeLeft):
		return holdStrafeLeft, true
	case key.Matches(msg, k.StrafeRight):
		return holdStrafeRight, true
	case key.Matches(msg, k.TurnLeft):
		return holdTurnLeft, true
	case key.Matches(msg, k.TurnRight):
		return holdTurnRight, true
	case key.Matches(msg, k.Fire):
		return holdFire, true
	}
	return 0, false
}

// isSprint reports a shifted movement key.
func isSprint(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "W", "A", "S", "D":
		return true
	}
	return false
}

// heldKeys tracks the release deadline of each held action.
type heldKeys [heldActionCount]time.Time

func (h *heldKeys) press(a heldAction, now time.Time) {
	h[a] = now.Add(holdWindow)
}

func (h *heldKeys) down(a heldAction, now time.Time) bool {
	return now.Before(h[a])
}

// apply writes the held state at now into the input snapshot.
func (h *heldKeys) apply(in *game.Input, now time.Time) {
	in.Forward = h.down(holdForward, now)
	in.Back = h.down(holdBack, now)
	in.StrafeLeft = h.down(holdStrafeLeft, now)
	in.StrafeRight = h.down(holdStrafeRight, now)
	in.TurnLeft = h.down(holdTurnLeft, now)
	in.TurnRight = h.down(holdTurnRight, now)
	in.Fire = h.down(holdFire, now)
	in.Sprint = h.down(holdSprint, now)
}

func (h *heldKeys) clear() {
	*h = heldKeys{}
}
