package game

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"hellgrid/internal/character"
	"hellgrid/internal/collision"
	"hellgrid/internal/config"
	"hellgrid/internal/items"
	"hellgrid/internal/mathutil"
	"hellgrid/internal/monster"
	"hellgrid/internal/world"
)

// Mode is the top-level state of a run.
type Mode int

const (
	ModeMenu Mode = iota
	ModeRunning
	ModePaused
	ModeDead
	ModeWin
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeRunning:
		return "running"
	case ModePaused:
		return "paused"
	case ModeDead:
		return "dead"
	case ModeWin:
		return "win"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// GameSession owns everything that changes during a run: the current
// level, the player, live monsters and pickups, score and presentation
// events. Frontends read it; only Step and the mode transitions write it.
type GameSession struct {
	config   *config.Config
	logger   *log.Logger
	rng      mathutil.Rand
	campaign []world.LevelDef

	levelIndex int
	level      *world.Level
	collision  *collision.CollisionSystem
	player     *character.Player
	monsters   []*monster.Monster3D
	pickups    []*items.Pickup

	mode            Mode
	score           int
	levelStartScore int
	kills           int
	combo           int
	sinceLastKill   float64
	promptCooldown  float64
	elapsed         float64

	messages []Message
	cues     []Cue
}

// Option configures a GameSession.
type Option func(*GameSession)

// WithRand injects the random source. Tests use scripted sources.
func WithRand(r mathutil.Rand) Option {
	return func(s *GameSession) { s.rng = r }
}

// WithLogger sets the structured logger.
func WithLogger(l *log.Logger) Option {
	return func(s *GameSession) { s.logger = l }
}

// NewGameSession validates the campaign and loads its first level in menu
// mode so frontends have something to draw behind the title.
func NewGameSession(cfg *config.Config, campaign []world.LevelDef, opts ...Option) (*GameSession, error) {
	if len(campaign) == 0 {
		return nil, world.ErrNoLevels
	}
	for i, def := range campaign {
		if _, err := world.BuildLevel(def); err != nil {
			return nil, fmt.Errorf("campaign level %d: %w", i+1, err)
		}
	}

	s := &GameSession{
		config:   cfg,
		campaign: campaign,
		mode:     ModeMenu,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = mathutil.NewRand(time.Now().UnixNano())
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	s.player = character.NewPlayer(cfg)
	if err := s.loadLevel(0); err != nil {
		return nil, err
	}
	return s, nil
}

// loadLevel builds a campaign level and replaces all per-level state.
func (s *GameSession) loadLevel(idx int) error {
	level, err := world.BuildLevel(s.campaign[idx])
	if err != nil {
		return fmt.Errorf("load level %d: %w", idx+1, err)
	}

	s.levelIndex = idx
	s.level = level
	if s.collision == nil {
		s.collision = collision.NewCollisionSystem(level)
		s.collision.SetSightStep(s.config.AI.SightStep)
	} else {
		s.collision.UpdateTileChecker(level)
	}

	s.monsters = make([]*monster.Monster3D, 0, len(level.Enemies))
	for i, spawn := range level.Enemies {
		m := monster.NewMonster3D(spawn.Position.X, spawn.Position.Y, spawn.Kind, s.config, s.rng)
		m.ID = i + 1
		s.monsters = append(s.monsters, m)
	}
	s.pickups = make([]*items.Pickup, 0, len(level.Pickups))
	for _, spawn := range level.Pickups {
		s.pickups = append(s.pickups, items.NewPickup(spawn.Position.X, spawn.Position.Y, spawn.Kind))
	}

	s.player.PlaceAt(level.Spawn.X, level.Spawn.Y, level.SpawnAngle)
	s.levelStartScore = s.score
	s.combo = 0
	s.sinceLastKill = math.Inf(1)
	s.promptCooldown = 0
	s.messages = nil

	title := fmt.Sprintf("Level %d: %s", idx+1, level.Name)
	s.pushMessage(title)
	if level.Intro != "" {
		s.pushMessage(level.Intro)
	}

	s.logger.Info("level loaded",
		"level", idx+1,
		"name", level.Name,
		"size", fmt.Sprintf("%dx%d", level.Width, level.Height),
		"enemies", level.TotalEnemies,
		"pickups", len(level.Pickups),
	)
	return nil
}

func (s *GameSession) setMode(m Mode) {
	if s.mode == m {
		return
	}
	wasRunning := s.mode == ModeRunning
	s.logger.Debug("mode change", "from", s.mode, "to", m)
	s.mode = m
	switch {
	case m == ModeRunning:
		s.emit(CueAmbientStart)
	case wasRunning:
		s.emit(CueAmbientStop)
	}
}

// Start begins play from the title, win screen or death screen. From the
// death screen the level the player died on is retried with fresh stats and
// the score it was entered with.
func (s *GameSession) Start() error {
	switch s.mode {
	case ModeMenu, ModeWin:
		return s.startRun()
	case ModeDead:
		return s.retryLevel()
	}
	return nil
}

// TogglePause flips between running and paused; other modes ignore it.
func (s *GameSession) TogglePause() {
	switch s.mode {
	case ModeRunning:
		s.setMode(ModePaused)
	case ModePaused:
		s.setMode(ModeRunning)
	}
}

func (s *GameSession) startRun() error {
	s.player.Reset()
	s.score = 0
	s.kills = 0
	s.elapsed = 0
	if err := s.loadLevel(0); err != nil {
		return err
	}
	s.setMode(ModeRunning)
	return nil
}

func (s *GameSession) retryLevel() error {
	s.player.Reset()
	s.score = s.levelStartScore
	if err := s.loadLevel(s.levelIndex); err != nil {
		return err
	}
	s.setMode(ModeRunning)
	return nil
}

// completeLevel moves to the next level with the carry-over boost, or ends
// the run in victory after the last one.
func (s *GameSession) completeLevel() {
	s.emit(CueLevelClear)
	next := s.levelIndex + 1
	if next >= len(s.campaign) {
		s.pushMessage("Breach sealed. You win.")
		s.logger.Info("campaign complete", "score", s.score, "kills", s.kills, "time", FormatPlayTime(s.PlayTime()))
		s.setMode(ModeWin)
		return
	}

	lc := s.config.Level
	s.player.CarryOver(lc.CarryHealth, lc.CarryArmor, lc.CarryReserve)
	if err := s.loadLevel(next); err != nil {
		// Only reachable if the campaign slice changed after construction.
		s.logger.Error("level load failed", "err", err)
		s.setMode(ModeWin)
	}
}

// Accessors for frontends. Callers must treat the returned values as
// read-only.

func (s *GameSession) Config() *config.Config { return s.config }
func (s *GameSession) Mode() Mode { return s.mode }
func (s *GameSession) Level() *world.Level { return s.level }
func (s *GameSession) LevelIndex() int { return s.levelIndex }
func (s *GameSession) LevelCount() int { return len(s.campaign) }
func (s *GameSession) Player() *character.Player { return s.player }
func (s *GameSession) Monsters() []*monster.Monster3D { return s.monsters }
func (s *GameSession) Pickups() []*items.Pickup { return s.pickups }
func (s *GameSession) Collision() *collision.CollisionSystem { return s.collision }
func (s *GameSession) Score() int { return s.score }
func (s *GameSession) Kills() int { return s.kills }
func (s *GameSession) PlayTime() time.Duration { return time.Duration(s.elapsed * float64(time.Second)) }

// AliveMonsters counts monsters still in play.
func (s *GameSession) AliveMonsters() int {
	n := 0
	for _, m := range s.monsters {
		if m.IsAlive() {
			n++
		}
	}
	return n
}
