package game

import (
	"fmt"

	"hellgrid/internal/mathutil"
)

// ExitBlockedReason explains why the exit would refuse the player right
// now, or returns "" when it is open.
func (s *GameSession) ExitBlockedReason() string {
	if s.level.RequireKey && !s.player.HasKey {
		return "Keycard required"
	}
	if s.level.RequireClear {
		if n := s.AliveMonsters(); n > 0 {
			return fmt.Sprintf("Lift locked: %d hostiles remain", n)
		}
	}
	return ""
}

// ObjectiveText is the current goal shown on the HUD.
func (s *GameSession) ObjectiveText() string {
	switch {
	case s.level.RequireKey && !s.player.HasKey:
		return "Find the keycard"
	case s.level.RequireClear && s.AliveMonsters() > 0:
		return fmt.Sprintf("Eliminate hostiles: %d left", s.AliveMonsters())
	default:
		return "Reach the exit"
	}
}

// updateExit handles the player standing at the exit. Walking up only
// shows a prompt, at most once per prompt interval; using the exit takes
// an interact press and passes the level's gates.
func (s *GameSession) updateExit(interact bool) {
	lvl := s.level
	p := s.player
	if !lvl.HasExit {
		return
	}
	if mathutil.Distance(p.X, p.Y, lvl.Exit.X, lvl.Exit.Y) > s.config.Level.ExitRadius {
		return
	}

	if !interact {
		if s.promptCooldown <= 0 {
			s.pushMessage("Press E to use the lift")
			s.promptCooldown = s.config.Level.PromptInterval
		}
		return
	}

	if reason := s.ExitBlockedReason(); reason != "" {
		s.emit(CueGate)
		s.pushMessage(reason)
		return
	}
	s.completeLevel()
}
