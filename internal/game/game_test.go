package game

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"hellgrid/internal/config"
	"hellgrid/internal/items"
	"hellgrid/internal/mathutil"
	"hellgrid/internal/world"
)

// scriptedRand replays queued values. Intn queues are keyed by n so weapon
// rolls and monster jitter do not interleave. Float64 defaults to 0.5,
// which means no spread and no drop.
type scriptedRand struct {
	floats []float64
	ints   map[int][]int
}

func newScriptedRand() *scriptedRand {
	return &scriptedRand{ints: make(map[int][]int)}
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	q := r.ints[n]
	if len(q) == 0 {
		return 0
	}
	r.ints[n] = q[1:]
	return q[0]
}

// weaponRolls queues raw damage values for the default [26,42) range.
func (r *scriptedRand) weaponRolls(damage ...int) {
	for _, d := range damage {
		r.ints[16] = append(r.ints[16], d-26)
	}
}

func newTestSession(t *testing.T, cfg *config.Config, rng *scriptedRand, defs ...world.LevelDef) *GameSession {
	t.Helper()
	s, err := NewGameSession(cfg, defs, WithRand(rng), WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("NewGameSession: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.player.SpawnProtection = 0
	s.DrainCues()
	return s
}

func hasCue(cues []Cue, want Cue) bool {
	for _, c := range cues {
		if c == want {
			return true
		}
	}
	return false
}

func countMessages(s *GameSession, substr string) int {
	n := 0
	for _, m := range s.Messages() {
		if strings.Contains(m.Text, substr) {
			n++
		}
	}
	return n
}

func TestNewGameSession_RejectsEmptyCampaign(t *testing.T) {
	if _, err := NewGameSession(config.Default(), nil); err == nil {
		t.Fatal("expected error for empty campaign")
	}
	if _, err := NewGameSession(config.Default(), []world.LevelDef{{Name: "blank"}}); err == nil {
		t.Fatal("expected error for a level without a grid")
	}
}

func TestLoadLevel_AssignsMonsterIDsPerSession(t *testing.T) {
	def := world.LevelDef{Grid: "#######\n#S.EFB#\n#######"}
	for i := 0; i < 2; i++ {
		s := newTestSession(t, config.Default(), newScriptedRand(), def)
		for j, m := range s.Monsters() {
			if m.ID != j+1 {
				t.Errorf("session %d: monster %d has ID %d, want %d", i, j, m.ID, j+1)
			}
		}
	}
}

func TestStep_GruntKilledByThreeShots(t *testing.T) {
	rng := newScriptedRand()
	rng.weaponRolls(26, 30, 26)
	s := newTestSession(t, config.Default(), rng, world.LevelDef{Grid: "#######\n#S..E.#\n#######"})
	grunt := s.monsters[0]

	fire := func() {
		in := &Input{Fire: true}
		s.Step(0.25, in)
	}

	fire()
	fire()
	if !grunt.IsAlive() || grunt.HitPoints != 14 {
		t.Fatalf("after two shots: alive=%v hp=%d, want alive with 14", grunt.IsAlive(), grunt.HitPoints)
	}
	fire()
	if grunt.IsAlive() {
		t.Fatal("grunt survived the third shot")
	}
	if s.Score() != 120 {
		t.Errorf("score = %d, want 120", s.Score())
	}
	if s.Kills() != 1 || s.AliveMonsters() != 0 {
		t.Errorf("kills=%d alive=%d", s.Kills(), s.AliveMonsters())
	}
	if s.player.Clip != 9 {
		t.Errorf("clip = %d, want 9", s.player.Clip)
	}

	cues := s.DrainCues()
	for _, want := range []Cue{CueShot, CueHit, CueKill} {
		if !hasCue(cues, want) {
			t.Errorf("missing cue %v in %v", want, cues)
		}
	}
	if len(s.pickups) != 0 {
		t.Error("drop spawned although the roll missed")
	}
}

func TestStep_ComboBonusWithinWindow(t *testing.T) {
	rng := newScriptedRand()
	rng.weaponRolls(41, 41, 41, 41)
	s := newTestSession(t, config.Default(), rng, world.LevelDef{Grid: "########\n#S.E.E.#\n########"})

	for i := 0; i < 4; i++ {
		s.Step(0.25, &Input{Fire: true})
	}
	if s.AliveMonsters() != 0 {
		t.Fatalf("%d monsters left", s.AliveMonsters())
	}
	// 120 for the first, 120 + 1*11 for the chained second.
	if s.Score() != 251 {
		t.Errorf("score = %d, want 251", s.Score())
	}
}

func TestStep_ComboResetsAfterWindow(t *testing.T) {
	rng := newScriptedRand()
	rng.weaponRolls(41, 41, 41, 41)
	s := newTestSession(t, config.Default(), rng, world.LevelDef{Grid: "########\n#S.E.E.#\n########"})

	s.Step(0.25, &Input{Fire: true})
	s.Step(0.25, &Input{Fire: true})
	for i := 0; i < 10; i++ {
		s.Step(0.25, &Input{})
	}
	s.Step(0.25, &Input{Fire: true})
	s.Step(0.25, &Input{Fire: true})
	if s.Score() != 240 {
		t.Errorf("score = %d, want 240 without combo", s.Score())
	}
}

func TestStep_KillDropsPickup(t *testing.T) {
	cfg := config.Default()
	cfg.Enemies.Grunt.HitPoints = 10
	rng := newScriptedRand()
	s := newTestSession(t, cfg, rng, world.LevelDef{Grid: "######\n#S.E.#\n######"})

	// spread, drop roll (< 0.23), kind roll (>= 0.5 is health)
	rng.floats = []float64{0.5, 0.1, 0.9}
	s.Step(0.25, &Input{Fire: true})

	if len(s.pickups) != 1 {
		t.Fatalf("pickups = %d, want one drop", len(s.pickups))
	}
	drop := s.pickups[0]
	if drop.Kind != items.Health || !drop.Dropped || !drop.Active {
		t.Errorf("drop = %+v", drop)
	}
	if drop.X != 3.5 || drop.Y != 1.5 {
		t.Errorf("drop at (%v,%v), want the kill position", drop.X, drop.Y)
	}
}

func TestStep_WallStopsHitscan(t *testing.T) {
	rng := newScriptedRand()
	rng.weaponRolls(41)
	s := newTestSession(t, config.Default(), rng, world.LevelDef{Grid: "#######\n#S.#E.#\n#######"})

	s.Step(0.25, &Input{Fire: true})
	if s.monsters[0].HitPoints != s.monsters[0].MaxHitPoints {
		t.Error("shot passed through a wall")
	}
	if s.player.Clip != s.player.ClipSize-1 {
		t.Error("shot should still spend a round")
	}
}

func TestStep_PlayerDeathStopsSimulation(t *testing.T) {
	cfg := config.Default()
	cfg.Enemies.Fiend.Damage = 20
	cfg.AI.DamageJitter = 0
	s := newTestSession(t, cfg, newScriptedRand(), world.LevelDef{Grid: "######\n#SF..#\n######"})
	s.player.Health = 5
	s.player.Armor = 0

	s.Step(0.016, &Input{})
	if s.Mode() != ModeDead || !s.player.Dead {
		t.Fatalf("mode = %v dead=%v, want dead", s.Mode(), s.player.Dead)
	}
	if s.player.Health != 0 {
		t.Errorf("health = %d, want 0", s.player.Health)
	}
	if !hasCue(s.DrainCues(), CueHurt) {
		t.Error("missing hurt cue")
	}

	fiend := s.monsters[0]
	x, phase, cooldown := fiend.X, fiend.Phase, fiend.AttackCooldown
	for i := 0; i < 10; i++ {
		s.Step(0.05, &Input{Forward: true, Fire: true})
	}
	if fiend.X != x || fiend.Phase != phase || fiend.AttackCooldown != cooldown {
		t.Error("monster updated after the player died")
	}
	if s.player.Clip != s.player.ClipSize {
		t.Error("dead player fired")
	}
}

func TestStep_RetryAfterDeathRestoresLevelEntryScore(t *testing.T) {
	cfg := config.Default()
	cfg.Enemies.Fiend.Damage = 200
	s := newTestSession(t, cfg, newScriptedRand(),
		world.LevelDef{Name: "one", Grid: "#####\n#SX.#\n#####"},
		world.LevelDef{Name: "two", Grid: "########\n#ST..F.#\n########"},
	)

	s.player.X = 2.5
	s.Step(0.016, &Input{Interact: true})
	if s.LevelIndex() != 1 {
		t.Fatalf("level = %d, want second level", s.LevelIndex())
	}
	s.player.SpawnProtection = 0

	// Treasure raises the score, then the fiend kills the player.
	s.player.X = 2.5
	s.Step(0.016, &Input{})
	if s.Score() != cfg.Pickups.Treasure {
		t.Fatalf("score = %d, want treasure %d", s.Score(), cfg.Pickups.Treasure)
	}
	s.player.X = 4.6
	s.Step(0.016, &Input{})
	if s.Mode() != ModeDead {
		t.Fatalf("mode = %v, want dead", s.Mode())
	}

	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if s.Mode() != ModeRunning || s.LevelIndex() != 1 {
		t.Errorf("retry: mode=%v level=%d", s.Mode(), s.LevelIndex())
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, want level-entry score 0", s.Score())
	}
	if s.player.Health != s.player.MaxHealth || s.player.Dead {
		t.Error("retry should restore the player")
	}
	if !s.pickups[0].Active {
		t.Error("retry should restore the level's pickups")
	}
}

func TestStep_PickupsApplyOnce(t *testing.T) {
	s := newTestSession(t, config.Default(), newScriptedRand(), world.LevelDef{Grid: "#######\n#SHM.H#\n#######"})
	p := s.player
	p.Health = 50
	reserve := p.Reserve

	p.X = 2.5
	s.Step(0.016, &Input{})
	s.Step(0.016, &Input{})
	if p.Health != 75 {
		t.Errorf("health = %d, want 75 after a single pickup", p.Health)
	}
	if !hasCue(s.DrainCues(), CuePickup) {
		t.Error("missing pickup cue")
	}

	p.X = 3.5
	s.Step(0.016, &Input{})
	s.Step(0.016, &Input{})
	if p.Reserve != reserve+12 {
		t.Errorf("reserve = %d, want %d", p.Reserve, reserve+12)
	}

	// Full health leaves the pickup in place.
	p.Health = p.MaxHealth
	p.X = 5.5
	s.Step(0.016, &Input{})
	if !s.pickups[2].Active {
		t.Error("health pickup consumed at full health")
	}
}

func TestStep_KeyGatedExit(t *testing.T) {
	s := newTestSession(t, config.Default(), newScriptedRand(),
		world.LevelDef{Name: "locked", RequireKey: true, Grid: "######\n#S.XK#\n######"},
		world.LevelDef{Name: "next", Grid: "###\n#S#\n###"},
	)
	p := s.player

	p.X = 3.3
	in := &Input{Interact: true}
	s.Step(0.016, in)
	if in.Interact {
		t.Error("interact edge not consumed")
	}
	if s.LevelIndex() != 0 {
		t.Fatal("exit opened without the keycard")
	}
	if !hasCue(s.DrainCues(), CueGate) || countMessages(s, "Keycard required") != 1 {
		t.Error("denied exit should raise a gate cue and message")
	}

	p.X = 4.5
	s.Step(0.016, &Input{})
	if !p.HasKey {
		t.Fatal("keycard not collected")
	}
	p.X = 3.5
	s.Step(0.016, &Input{Interact: true})
	if s.LevelIndex() != 1 {
		t.Errorf("level = %d, want 1 after using the exit with the key", s.LevelIndex())
	}
	if p.HasKey {
		t.Error("keycard should not carry over")
	}
}

func TestStep_ClearGatedExitAndWin(t *testing.T) {
	cfg := config.Default()
	cfg.Enemies.Grunt.HitPoints = 10
	s := newTestSession(t, cfg, newScriptedRand(), world.LevelDef{RequireClear: true, Grid: "#######\n#S.X.E#\n#######"})

	s.player.X = 3.5
	s.Step(0.016, &Input{Interact: true})
	if s.Mode() != ModeRunning {
		t.Fatal("exit opened with hostiles alive")
	}
	if !strings.Contains(s.ExitBlockedReason(), "1 hostiles") {
		t.Errorf("reason = %q", s.ExitBlockedReason())
	}

	s.Step(0.25, &Input{Fire: true})
	if s.AliveMonsters() != 0 {
		t.Fatal("grunt not killed")
	}
	s.Step(0.016, &Input{Interact: true})
	if s.Mode() != ModeWin {
		t.Errorf("mode = %v, want win after the last level", s.Mode())
	}
}

func TestStep_ExitPromptIsRateLimited(t *testing.T) {
	s := newTestSession(t, config.Default(), newScriptedRand(), world.LevelDef{Grid: "#####\n#SX.#\n#####"})
	s.player.X = 2.5

	for i := 0; i < 10; i++ {
		s.Step(0.1, &Input{})
	}
	if n := countMessages(s, "Press E"); n != 1 {
		t.Errorf("prompt shown %d times in 1s, want 1", n)
	}
	if s.Mode() != ModeRunning || s.LevelIndex() != 0 {
		t.Error("standing on the exit should not complete the level")
	}
}

func TestStep_ReloadThroughInput(t *testing.T) {
	s := newTestSession(t, config.Default(), newScriptedRand(), world.LevelDef{Grid: "####\n#S.#\n####"})
	p := s.player
	p.Clip = 3

	in := &Input{Reload: true}
	s.Step(0.016, in)
	if in.Reload || !p.Reloading {
		t.Fatal("reload edge not consumed or reload not started")
	}
	if !hasCue(s.DrainCues(), CueReloadStart) {
		t.Error("missing reload-start cue")
	}
	for i := 0; i < 25; i++ {
		s.Step(0.05, &Input{Reload: true})
	}
	if p.Clip != p.ClipSize || p.Reloading {
		t.Errorf("clip = %d reloading=%v after 1.25s", p.Clip, p.Reloading)
	}
	if !hasCue(s.DrainCues(), CueReloadEnd) {
		t.Error("missing reload-end cue")
	}

	p.Clip, p.Reserve = 4, 0
	s.Step(0.016, &Input{Reload: true})
	if !hasCue(s.DrainCues(), CueEmpty) || p.Reloading {
		t.Error("reload with empty reserve should only raise the empty cue")
	}
}

func TestStep_MovementAndWalls(t *testing.T) {
	cfg := config.Default()
	s := newTestSession(t, cfg, newScriptedRand(), world.LevelDef{Grid: "######\n#S...#\n######"})
	p := s.player

	s.Step(0.1, &Input{Forward: true})
	want := 1.5 + cfg.Movement.MoveSpeed*0.1
	if diff := p.X - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("x = %v, want %v", p.X, want)
	}
	for i := 0; i < 40; i++ {
		s.Step(0.05, &Input{Forward: true, Sprint: true})
	}
	if p.X > 5-cfg.Movement.PlayerRadius {
		t.Errorf("walked into the wall: x = %v", p.X)
	}

	s.Step(0.05, &Input{TurnLeft: true})
	if p.Angle < 0 || p.Angle >= mathutil.TwoPi {
		t.Errorf("angle %v not normalised", p.Angle)
	}
}

func TestStep_IgnoredOutsideRunning(t *testing.T) {
	s, err := NewGameSession(config.Default(), []world.LevelDef{{Grid: "####\n#S.#\n####"}},
		WithRand(newScriptedRand()), WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatal(err)
	}
	x := s.player.X
	in := &Input{Forward: true, Interact: true}
	s.Step(0.5, in)
	if s.player.X != x {
		t.Error("menu mode simulated movement")
	}
	if in.Interact {
		t.Error("edges should be consumed even when not simulating")
	}
}

func TestModeTransitions(t *testing.T) {
	s, err := NewGameSession(config.Default(), []world.LevelDef{{Grid: "####\n#S.#\n####"}},
		WithRand(newScriptedRand()), WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatal(err)
	}
	if s.Mode() != ModeMenu {
		t.Fatalf("initial mode = %v", s.Mode())
	}
	s.TogglePause()
	if s.Mode() != ModeMenu {
		t.Error("pause toggled from menu")
	}

	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if s.Mode() != ModeRunning || !hasCue(s.DrainCues(), CueAmbientStart) {
		t.Error("start should enter running with the ambient cue")
	}
	s.TogglePause()
	if s.Mode() != ModePaused || !hasCue(s.DrainCues(), CueAmbientStop) {
		t.Error("pause should stop the ambient loop")
	}
	if err := s.Start(); err != nil || s.Mode() != ModePaused {
		t.Error("start while paused should be ignored")
	}
	s.TogglePause()
	if s.Mode() != ModeRunning {
		t.Error("unpause failed")
	}
}

func TestHUDSnapshot(t *testing.T) {
	s := newTestSession(t, config.Default(), newScriptedRand(),
		world.LevelDef{Name: "Intake", RequireKey: true, Grid: "#####\n#SE.#\n#####"})
	s.player.Health = 64
	s.player.Clip = 7

	h := s.HUD()
	if h.Health != 64 || h.Clip != 7 || h.MaxHealth != 100 || h.ClipSize != 12 {
		t.Errorf("player fields not copied: %+v", h)
	}
	if h.LevelName != "Intake" || h.LevelNumber != 1 || h.LevelCount != 1 {
		t.Errorf("level fields: %+v", h)
	}
	if h.Objective != "Find the keycard" {
		t.Errorf("objective = %q", h.Objective)
	}
	if h.EnemiesLeft != 1 || h.TotalEnemies != 1 || h.Mode != ModeRunning {
		t.Errorf("enemies/mode: %+v", h)
	}

	// The snapshot is detached from the session.
	h.Health = 1
	if s.player.Health != 64 {
		t.Error("HUD aliases player state")
	}
}
