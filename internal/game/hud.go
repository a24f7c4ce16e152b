package game

import (
	"github.com/jinzhu/copier"
)

// HUD is a value snapshot of everything the overlay shows. Frontends hold
// it without touching the session.
type HUD struct {
	// Copied by name from the player.
	Health         int
	MaxHealth      int
	Armor          int
	MaxArmor       int
	Clip           int
	ClipSize       int
	Reserve        int
	HasKey         bool
	Reloading      bool
	ReloadProgress float64
	HurtFlash      float64

	Mode         Mode
	Score        int
	Kills        int
	Combo        int
	EnemiesLeft  int
	TotalEnemies int
	LevelNumber  int
	LevelCount   int
	LevelName    string
	Objective    string
	Message      string
	PlayTime     string
}

// HUD builds the overlay snapshot.
func (s *GameSession) HUD() HUD {
	var h HUD
	if err := copier.Copy(&h, s.player); err != nil {
		s.logger.Warn("hud copy failed", "error", err)
	}
	h.ReloadProgress = s.player.ReloadProgress()

	h.Mode = s.mode
	h.Score = s.score
	h.Kills = s.kills
	h.Combo = s.combo
	h.EnemiesLeft = s.AliveMonsters()
	h.TotalEnemies = s.level.TotalEnemies
	h.LevelNumber = s.levelIndex + 1
	h.LevelCount = len(s.campaign)
	h.LevelName = s.level.Name
	h.Objective = s.ObjectiveText()
	h.Message = s.LatestMessage()
	h.PlayTime = FormatPlayTime(s.PlayTime())
	return h
}
