package character

import (
	"math"

	"hellgrid/internal/config"
	"hellgrid/internal/mathutil"
)

// Player is the marine: position, vitals, ammunition and the transient
// timers that drive weapon and damage feedback.
type Player struct {
	X, Y  float64
	Angle float64

	Health    int
	Armor     int
	MaxHealth int
	MaxArmor  int
	Dead      bool
	HasKey    bool

	Clip     int
	Reserve  int
	ClipSize int

	Reloading       bool
	ReloadTimer     float64
	PendingTransfer int

	FireCooldown    float64
	SpawnProtection float64

	// Visual timers
	HurtFlash   float64
	Kick        float64
	MuzzleFlash float64
	BobPhase    float64

	config *config.Config
}

// NewPlayer creates a player with fresh run stats.
func NewPlayer(cfg *config.Config) *Player {
	p := &Player{config: cfg}
	p.Reset()
	return p
}

// Reset restores run-start stats. Position is left alone.
func (p *Player) Reset() {
	cfg := p.config
	p.MaxHealth = cfg.Player.MaxHealth
	p.MaxArmor = cfg.Player.MaxArmor
	p.Health = mathutil.IntClamp(cfg.Player.StartHealth, 0, p.MaxHealth)
	p.Armor = mathutil.IntClamp(cfg.Player.StartArmor, 0, p.MaxArmor)
	p.Dead = false
	p.HasKey = false
	p.ClipSize = cfg.Weapon.ClipSize
	p.Clip = cfg.Weapon.ClipSize
	p.Reserve = cfg.Weapon.StartReserve
	p.cancelReload()
	p.FireCooldown = 0
	p.clearVisuals()
}

// PlaceAt moves the player to a level spawn and grants spawn protection.
func (p *Player) PlaceAt(x, y, angle float64) {
	p.X = x
	p.Y = y
	p.Angle = mathutil.NormalizeAngle(angle)
	p.SpawnProtection = p.config.Player.SpawnProtection
	p.cancelReload()
	p.FireCooldown = 0
	p.clearVisuals()
}

// CarryOver applies the between-level boost and drops the keycard.
func (p *Player) CarryOver(health, armor, reserve int) {
	p.Health = mathutil.IntClamp(p.Health+health, 0, p.MaxHealth)
	p.Armor = mathutil.IntClamp(p.Armor+armor, 0, p.MaxArmor)
	p.Reserve += mathutil.IntMax(0, reserve)
	p.HasKey = false
}

// Turn rotates the view, keeping the angle in [0, 2π).
func (p *Player) Turn(delta float64) {
	p.Angle = mathutil.NormalizeAngle(p.Angle + delta)
}

// Facing returns the unit view direction.
func (p *Player) Facing() (float64, float64) {
	return math.Cos(p.Angle), math.Sin(p.Angle)
}

// DamageResult reports how a hit was split between armor and health.
type DamageResult struct {
	Absorbed int
	Taken    int
	Killed   bool
	Ignored  bool
}

// ApplyDamage routes a hit through armor first: armor soaks up
// ceil(amount*absorb) capped by the armor left, health takes the rest.
func (p *Player) ApplyDamage(amount int) DamageResult {
	if p.Dead || amount <= 0 || p.SpawnProtection > 0 {
		return DamageResult{Ignored: true}
	}

	absorbed := int(math.Ceil(float64(amount)*p.config.Player.ArmorAbsorb - 1e-9))
	absorbed = mathutil.IntMin(absorbed, p.Armor)
	taken := amount - absorbed

	p.Armor -= absorbed
	p.Health = mathutil.IntMax(0, p.Health-taken)
	p.HurtFlash = p.config.Player.HurtFlash

	if p.Health <= 0 {
		p.Dead = true
	}
	return DamageResult{Absorbed: absorbed, Taken: taken, Killed: p.Dead}
}

// Heal adds health up to the cap. It reports false when already full.
func (p *Player) Heal(amount int) bool {
	if p.Health >= p.MaxHealth {
		return false
	}
	p.Health = mathutil.IntMin(p.MaxHealth, p.Health+amount)
	return true
}

// AddArmor adds armor up to the cap. It reports false when already full.
func (p *Player) AddArmor(amount int) bool {
	if p.Armor >= p.MaxArmor {
		return false
	}
	p.Armor = mathutil.IntMin(p.MaxArmor, p.Armor+amount)
	return true
}

// AddAmmo puts rounds into the reserve.
func (p *Player) AddAmmo(amount int) {
	p.Reserve += mathutil.IntMax(0, amount)
}

// UpdateTimers decays every countdown by dt.
func (p *Player) UpdateTimers(dt float64) {
	p.FireCooldown = decay(p.FireCooldown, dt)
	p.SpawnProtection = decay(p.SpawnProtection, dt)
	p.HurtFlash = decay(p.HurtFlash, dt)
	p.Kick = decay(p.Kick, dt)
	p.MuzzleFlash = decay(p.MuzzleFlash, dt)
}

func (p *Player) clearVisuals() {
	p.HurtFlash = 0
	p.Kick = 0
	p.MuzzleFlash = 0
	p.BobPhase = 0
}

func decay(v, dt float64) float64 {
	return math.Max(0, v-dt)
}
