package character

import "hellgrid/internal/mathutil"

// ReloadResult is the outcome of a reload request.
type ReloadResult int

const (
	ReloadStarted ReloadResult = iota
	ReloadBusy                 // already reloading
	ReloadFull                 // clip already full
	ReloadEmpty                // nothing in reserve
)

// FireResult is the outcome of a trigger pull.
type FireResult int

const (
	FireOK FireResult = iota
	FireCooling
	FireReloading
	FireEmpty
)

// StartReload begins a timed reload. The rounds to move are fixed now and
// committed once when the timer ends.
func (p *Player) StartReload() ReloadResult {
	switch {
	case p.Reloading:
		return ReloadBusy
	case p.Clip >= p.ClipSize:
		return ReloadFull
	case p.Reserve <= 0:
		return ReloadEmpty
	}

	p.Reloading = true
	p.ReloadTimer = p.config.Weapon.ReloadTime
	p.PendingTransfer = mathutil.IntMin(p.ClipSize-p.Clip, p.Reserve)
	return ReloadStarted
}

// UpdateReload advances a reload in progress and reports true on the tick
// the rounds land in the clip.
func (p *Player) UpdateReload(dt float64) bool {
	if !p.Reloading {
		return false
	}
	p.ReloadTimer -= dt
	if p.ReloadTimer > 0 {
		return false
	}

	transfer := mathutil.IntMin(p.PendingTransfer, p.Reserve)
	p.Clip += transfer
	p.Reserve -= transfer
	p.cancelReload()
	return true
}

// ReloadProgress is 0 at the start of a reload and 1 when it completes.
func (p *Player) ReloadProgress() float64 {
	if !p.Reloading || p.config.Weapon.ReloadTime <= 0 {
		return 0
	}
	return 1 - p.ReloadTimer/p.config.Weapon.ReloadTime
}

// TryFire spends one round if the weapon is ready.
func (p *Player) TryFire() FireResult {
	switch {
	case p.Reloading:
		return FireReloading
	case p.FireCooldown > 0:
		return FireCooling
	case p.Clip <= 0:
		p.FireCooldown = p.config.Weapon.FireCooldown
		return FireEmpty
	}

	p.Clip--
	p.FireCooldown = p.config.Weapon.FireCooldown
	p.Kick = p.config.Weapon.KickTime
	p.MuzzleFlash = p.config.Weapon.MuzzleTime
	return FireOK
}

func (p *Player) cancelReload() {
	p.Reloading = false
	p.ReloadTimer = 0
	p.PendingTransfer = 0
}
