package game

import (
	"fmt"

	"hellgrid/internal/items"
	"hellgrid/internal/mathutil"
)

func (s *GameSession) updatePickups(dt float64) {
	p := s.player
	radius := s.config.Pickups.Radius
	for _, pk := range s.pickups {
		if !pk.Active {
			continue
		}
		pk.Update(dt)
		if mathutil.Distance(p.X, p.Y, pk.X, pk.Y) > radius {
			continue
		}
		s.applyPickup(pk)
	}
}

// applyPickup grants a pickup's effect. Health and armor at their caps
// leave the pickup on the floor.
func (s *GameSession) applyPickup(pk *items.Pickup) {
	p := s.player
	amount := pk.Kind.Amount(s.config.Pickups)

	switch pk.Kind {
	case items.Health:
		if p.Health >= p.MaxHealth || !pk.Collect() {
			return
		}
		p.Heal(amount)
	case items.Armor:
		if p.Armor >= p.MaxArmor || !pk.Collect() {
			return
		}
		p.AddArmor(amount)
	case items.Ammo:
		if !pk.Collect() {
			return
		}
		p.AddAmmo(amount)
	case items.Key:
		if !pk.Collect() {
			return
		}
		p.HasKey = true
	case items.Treasure:
		if !pk.Collect() {
			return
		}
		s.score += amount
	default:
		return
	}

	s.emit(CuePickup)
	if amount > 0 {
		s.pushMessage(fmt.Sprintf("+%d %s", amount, pk.Kind))
	} else {
		s.pushMessage(fmt.Sprintf("Picked up the %s", pk.Kind))
	}
}
