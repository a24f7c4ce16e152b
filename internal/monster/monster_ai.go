package monster

import (
	"math"

	"hellgrid/internal/mathutil"
)

// CollisionChecker interface for checking movement validity
type CollisionChecker interface {
	CheckLineOfSight(x1, y1, x2, y2 float64) bool
	TryMove(x, y, dx, dy, radius float64) (float64, float64)
}

// Attack is the outcome of a monster's turn.
type Attack struct {
	Damage int
	Hit    bool
}

// Update advances the monster's AI by dt seconds. Seeing the player (within
// the detect radius and with clear line of sight) keeps it alerted; once the
// player is out of sight the alert countdown runs down and it goes back to
// wandering.
func (m *Monster3D) Update(dt float64, cc CollisionChecker, playerX, playerY float64, rng mathutil.Rand) Attack {
	if !m.Alive {
		return Attack{}
	}

	m.Phase += dt
	m.HitFlash = math.Max(0, m.HitFlash-dt)
	m.AttackCooldown = math.Max(0, m.AttackCooldown-dt)

	dist := m.DistanceTo(playerX, playerY)
	sees := dist <= m.config.AI.DetectRadius && cc.CheckLineOfSight(m.X, m.Y, playerX, playerY)

	if sees {
		m.alert()
	} else if m.State == StateAlerted {
		m.AlertTimer -= dt
		if m.AlertTimer <= 0 {
			m.AlertTimer = 0
			m.State = StateWandering
			m.WanderTimer = 0
		}
	}

	switch m.State {
	case StateAlerted:
		return m.updateAlerted(dt, cc, playerX, playerY, dist, sees, rng)
	default:
		m.updateWandering(dt, cc, rng)
		return Attack{}
	}
}

func (m *Monster3D) updateAlerted(dt float64, cc CollisionChecker, playerX, playerY, dist float64, sees bool, rng mathutil.Rand) Attack {
	inRange := dist <= m.Stats.AttackRange

	// Inside attack range it holds position and fires.
	if !inRange && dist > 0 {
		step := m.Stats.Speed * dt
		dx := (playerX - m.X) / dist * step
		dy := (playerY - m.Y) / dist * step
		m.X, m.Y = cc.TryMove(m.X, m.Y, dx, dy, m.Stats.Radius)
	}

	if sees && inRange && m.AttackCooldown <= 0 {
		m.AttackCooldown = m.Stats.AttackCooldown
		return Attack{Damage: m.GetAttackDamage(rng), Hit: true}
	}
	return Attack{}
}

func (m *Monster3D) updateWandering(dt float64, cc CollisionChecker, rng mathutil.Rand) {
	m.WanderTimer -= dt
	if m.WanderTimer <= 0 {
		m.WanderAngle = rng.Float64() * mathutil.TwoPi
		m.WanderTimer = mathutil.RandRange(rng, m.config.AI.WanderMinTime, m.config.AI.WanderMaxTime)
	}

	step := m.Stats.Speed * m.config.AI.WanderSpeedFactor * dt
	dx := math.Cos(m.WanderAngle) * step
	dy := math.Sin(m.WanderAngle) * step
	nx, ny := cc.TryMove(m.X, m.Y, dx, dy, m.Stats.Radius)
	if nx == m.X && ny == m.Y && step > 0 {
		// Walked into a wall: choose a new heading next tick.
		m.WanderTimer = 0
	}
	m.X, m.Y = nx, ny
}
