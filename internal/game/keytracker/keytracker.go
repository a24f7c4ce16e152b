// Package keytracker turns ebiten's level-triggered key state into
// press edges for the actions that must fire once per press.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker remembers whether any of its keys was down last frame.
type KeyStateTracker struct {
	keys        []ebiten.Key
	prevPressed bool
}

// New tracks a set of keys that trigger the same action.
func New(keys ...ebiten.Key) *KeyStateTracker {
	return &KeyStateTracker{keys: keys}
}

// IsJustPressed polls ebiten and reports a new press.
func (k *KeyStateTracker) IsJustPressed() bool {
	pressed := false
	for _, key := range k.keys {
		if ebiten.IsKeyPressed(key) {
			pressed = true
			break
		}
	}
	return k.Observe(pressed)
}

// Observe feeds one frame of key state and returns true on the frame the
// keys go from released to pressed.
func (k *KeyStateTracker) Observe(pressed bool) bool {
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}
