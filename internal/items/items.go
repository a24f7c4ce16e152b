package items

import (
	"fmt"

	"hellgrid/internal/config"
)

// Kind identifies what a pickup gives.
type Kind int

const (
	Health Kind = iota
	Armor
	Ammo
	Key
	Treasure
)

func (k Kind) String() string {
	switch k {
	case Health:
		return "health"
	case Armor:
		return "armor"
	case Ammo:
		return "ammo"
	case Key:
		return "keycard"
	case Treasure:
		return "treasure"
	default:
		return fmt.Sprintf("pickup(%d)", int(k))
	}
}

// Amount is the quantity a pickup of this kind grants. Keys grant nothing
// countable.
func (k Kind) Amount(cfg config.PickupConfig) int {
	switch k {
	case Health:
		return cfg.Health
	case Armor:
		return cfg.Armor
	case Ammo:
		return cfg.Ammo
	case Treasure:
		return cfg.Treasure
	default:
		return 0
	}
}

// Pickup is a collectible lying on the floor.
type Pickup struct {
	X, Y    float64
	Kind    Kind
	Active  bool
	Phase   float64 // bob animation, seconds
	Dropped bool    // spawned by a kill rather than placed in the level
}

// NewPickup creates an active pickup.
func NewPickup(x, y float64, kind Kind) *Pickup {
	return &Pickup{X: x, Y: y, Kind: kind, Active: true, Phase: x + y}
}

// Collect deactivates the pickup. It reports false if it was already gone,
// so a pickup can only ever be applied once.
func (p *Pickup) Collect() bool {
	if !p.Active {
		return false
	}
	p.Active = false
	return true
}

// Update advances the bob animation.
func (p *Pickup) Update(dt float64) {
	if p.Active {
		p.Phase += dt
	}
}
