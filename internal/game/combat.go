package game

import (
	"fmt"
	"math"

	"hellgrid/internal/character"
	"hellgrid/internal/items"
	"hellgrid/internal/monster"
)

func (s *GameSession) fireWeapon() {
	p := s.player
	switch p.TryFire() {
	case character.FireOK:
		s.emit(CueShot)
		s.resolveHitscan()
	case character.FireEmpty:
		s.emit(CueEmpty)
		if p.Reserve > 0 {
			s.pushMessage("Clip empty. Press R to reload")
		} else {
			s.pushMessage("Out of ammo")
		}
	}
}

// resolveHitscan traces one shot. The wall the ray meets bounds the search;
// the nearest living monster whose body the ray passes through takes the
// hit.
func (s *GameSession) resolveHitscan() {
	p := s.player
	w := s.config.Weapon

	angle := p.Angle + (s.rng.Float64()*2-1)*w.Spread
	dirX, dirY := math.Cos(angle), math.Sin(angle)

	wall := s.collision.CastRay(p.X, p.Y, angle, s.config.Camera.MaxDepth)
	target := nearestTarget(s.monsters, p.X, p.Y, dirX, dirY, wall.Distance, w.HitTolerance)
	if target == nil {
		return
	}

	raw := w.DamageMin + s.rng.Intn(w.DamageMax-w.DamageMin)
	dealt, killed := target.TakeDamage(raw)
	s.emit(CueHit)
	s.logger.Debug("hit", "kind", target.Kind, "id", target.ID, "damage", dealt, "hp", target.HitPoints)
	if killed {
		s.onKill(target)
	}
}

// nearestTarget returns the closest living monster hit by a ray from
// (ox, oy) along the unit vector (dirX, dirY), no farther than maxDist.
func nearestTarget(monsters []*monster.Monster3D, ox, oy, dirX, dirY, maxDist, tolerance float64) *monster.Monster3D {
	best := maxDist
	var target *monster.Monster3D
	for _, m := range monsters {
		if !m.IsAlive() {
			continue
		}
		vx, vy := m.X-ox, m.Y-oy
		along := vx*dirX + vy*dirY
		if along <= 0 || along >= best {
			continue
		}
		perp := math.Abs(vx*dirY - vy*dirX)
		if perp > m.Stats.Radius+tolerance {
			continue
		}
		best = along
		target = m
	}
	return target
}

func (s *GameSession) onKill(m *monster.Monster3D) {
	cb := s.config.Combat

	if s.sinceLastKill <= cb.ComboWindow {
		s.combo++
	} else {
		s.combo = 0
	}
	s.sinceLastKill = 0

	points := KillScore(m.Stats.Score, s.combo, cb.ComboBonus)
	s.score += points
	s.kills++
	s.emit(CueKill)

	if s.combo > 0 {
		s.pushMessage(fmt.Sprintf("%s down +%d (combo x%d)", m.Kind, points, s.combo+1))
	} else {
		s.pushMessage(fmt.Sprintf("%s down +%d", m.Kind, points))
	}
	s.logger.Debug("kill", "kind", m.Kind, "points", points, "combo", s.combo, "alive", s.AliveMonsters())

	if s.level.RequireClear && s.AliveMonsters() == 0 {
		s.pushMessage("Sector clear. Exit unlocked")
	}

	if s.rng.Float64() < cb.DropChance {
		kind := items.Ammo
		if s.rng.Float64() >= 0.5 {
			kind = items.Health
		}
		drop := items.NewPickup(m.X, m.Y, kind)
		drop.Dropped = true
		s.pickups = append(s.pickups, drop)
	}
}
