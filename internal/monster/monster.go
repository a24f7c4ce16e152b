package monster

import (
	"math"

	"hellgrid/internal/config"
	"hellgrid/internal/mathutil"
)

// Monster3D is a billboarded enemy living on the tile grid.
type Monster3D struct {
	ID    int // index within its level, assigned by the owner
	X, Y  float64
	Kind  Kind
	Stats config.EnemyStats

	HitPoints    int
	MaxHitPoints int
	Alive        bool

	// AI behavior
	State          MonsterState
	AlertTimer     float64
	AttackCooldown float64
	WanderAngle    float64
	WanderTimer    float64

	// Visuals
	HitFlash float64
	Phase    float64

	config *config.Config
}

// NewMonster3D spawns a monster of the given kind with a random initial
// heading.
func NewMonster3D(x, y float64, kind Kind, cfg *config.Config, rng mathutil.Rand) *Monster3D {
	stats := kind.Stats(cfg)
	return &Monster3D{
		X:            x,
		Y:            y,
		Kind:         kind,
		Stats:        stats,
		HitPoints:    stats.HitPoints,
		MaxHitPoints: stats.HitPoints,
		Alive:        true,
		State:        StateWandering,
		WanderAngle:  rng.Float64() * mathutil.TwoPi,
		WanderTimer:  mathutil.RandRange(rng, cfg.AI.WanderMinTime, cfg.AI.WanderMaxTime),
		Phase:        rng.Float64() * mathutil.TwoPi,
		config:       cfg,
	}
}

// IsAlive reports whether the monster still takes part in the simulation.
func (m *Monster3D) IsAlive() bool {
	return m.Alive
}

// TakeDamage applies a raw weapon hit scaled by the kind's damage factor.
// It returns the damage dealt and whether the hit was fatal. Hits on a dead
// monster are ignored.
func (m *Monster3D) TakeDamage(raw int) (dealt int, killed bool) {
	if !m.Alive {
		return 0, false
	}

	factor := m.Stats.DamageTaken
	if factor <= 0 {
		factor = 1
	}
	dealt = int(math.Round(float64(raw) * factor))
	if dealt < 1 {
		dealt = 1
	}

	m.HitPoints -= dealt
	m.HitFlash = m.config.Combat.EnemyHitFlash
	m.alert()

	if m.HitPoints <= 0 {
		m.HitPoints = 0
		m.Alive = false
		return dealt, true
	}
	return dealt, false
}

// GetAttackDamage rolls the damage of one attack: the kind's damage with a
// symmetric integer jitter, never below 1.
func (m *Monster3D) GetAttackDamage(rng mathutil.Rand) int {
	jitter := m.config.AI.DamageJitter
	damage := m.Stats.Damage
	if jitter > 0 {
		damage += rng.Intn(2*jitter+1) - jitter
	}
	return mathutil.IntMax(1, damage)
}

// DistanceTo returns the distance from the monster to a point.
func (m *Monster3D) DistanceTo(x, y float64) float64 {
	return mathutil.Distance(m.X, m.Y, x, y)
}

func (m *Monster3D) alert() {
	m.State = StateAlerted
	m.AlertTimer = m.config.AI.AlertDuration
}
