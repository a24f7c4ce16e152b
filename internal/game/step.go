package game

import (
	"math"

	"hellgrid/internal/character"
)

// Step advances the simulation by dt seconds. It does nothing outside
// running mode. The Interact and Reload edges of in are consumed exactly
// once per call.
func (s *GameSession) Step(dt float64, in *Input) {
	if in == nil {
		in = &Input{}
	}
	interact := in.ConsumeInteract()
	reload := in.ConsumeReload()
	turn := in.ConsumeTurn()

	if s.mode != ModeRunning || dt <= 0 {
		return
	}

	s.elapsed += dt
	s.sinceLastKill += dt
	s.promptCooldown = math.Max(0, s.promptCooldown-dt)

	p := s.player
	p.UpdateTimers(dt)
	s.updateMessages(dt)

	s.movePlayer(dt, in, turn)

	if reload {
		s.requestReload()
	}
	if p.UpdateReload(dt) {
		s.emit(CueReloadEnd)
	}
	if in.Fire {
		s.fireWeapon()
	}

	s.updateMonsters(dt)
	if s.mode != ModeRunning {
		return
	}

	s.updatePickups(dt)
	s.updateExit(interact)
}

func (s *GameSession) movePlayer(dt float64, in *Input, mouseTurn float64) {
	p := s.player
	mv := s.config.Movement

	turn := mouseTurn
	if in.TurnLeft {
		turn -= mv.TurnSpeed * dt
	}
	if in.TurnRight {
		turn += mv.TurnSpeed * dt
	}
	if turn != 0 {
		p.Turn(turn)
	}

	var forward, strafe float64
	if in.Forward {
		forward++
	}
	if in.Back {
		forward--
	}
	if in.StrafeRight {
		strafe++
	}
	if in.StrafeLeft {
		strafe--
	}
	if forward == 0 && strafe == 0 {
		return
	}

	fx, fy := p.Facing()
	rx, ry := -fy, fx
	dx := fx*forward + rx*strafe
	dy := fy*forward + ry*strafe
	if l := math.Hypot(dx, dy); l > 1 {
		dx /= l
		dy /= l
	}

	speed := mv.MoveSpeed
	if in.Sprint {
		speed *= mv.SprintMultiplier
	}
	p.X, p.Y = s.collision.TryMove(p.X, p.Y, dx*speed*dt, dy*speed*dt, mv.PlayerRadius)
	p.BobPhase += dt * mv.BobRate
}

func (s *GameSession) requestReload() {
	switch s.player.StartReload() {
	case character.ReloadStarted:
		s.emit(CueReloadStart)
	case character.ReloadEmpty:
		s.emit(CueEmpty)
		s.pushMessage("No ammo in reserve")
	}
}

func (s *GameSession) updateMonsters(dt float64) {
	p := s.player
	for _, m := range s.monsters {
		attack := m.Update(dt, s.collision, p.X, p.Y, s.rng)
		if !attack.Hit {
			continue
		}
		res := p.ApplyDamage(attack.Damage)
		if res.Ignored {
			continue
		}
		s.emit(CueHurt)
		if res.Killed {
			s.logger.Info("player killed", "by", m.Kind, "level", s.levelIndex+1, "score", s.score)
			s.pushMessage("You are dead. Press Enter to retry")
			s.setMode(ModeDead)
			return
		}
	}
}
