package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hellgrid/internal/config"
	"hellgrid/internal/game"
	"hellgrid/internal/render"
	"hellgrid/internal/threading/monitoring"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the campaign headlessly with scripted input",
	Long: `Runs a session without a window for a fixed span of game time. The
scripted player holds fire, turns steadily, walks every other second,
reloads when the clip runs dry and tries the lift once a second. Every
frame is composed as if it were drawn. Prints the final HUD, cue counts
and frame timings; useful for smoke-testing tuning changes.

Examples:
  hellgrid sim --seconds 120 --seed 42
  hellgrid sim --config ./hard.yaml --ray-workers -1`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().Float64("seconds", 30, "Game time to simulate")
	//nolint:errcheck // only fails on a nil flag set
	viper.BindPFlags(simCmd.Flags())
}

type simResult struct {
	HUD     game.HUD
	Frames  int
	Cues    map[game.Cue]int
	Metrics monitoring.FrameMetrics
}

// composeRenderer builds a Scene every frame and drops it.
type composeRenderer struct {
	view    render.View
	monitor *monitoring.FrameMonitor
}

func (r *composeRenderer) RenderFrame(s *game.GameSession) {
	timer := r.monitor.StartRaycast()
	render.Compose(s, r.view)
	timer.EndRaycast()
}

// scriptedInput is the input the sim player holds on a frame.
func scriptedInput(s *game.GameSession, frame, fps int) game.Input {
	second := frame / fps
	in := game.Input{
		Fire:      true,
		TurnRight: true,
		Forward:   second%2 == 0,
		Interact:  frame%fps == 0,
	}
	p := s.Player()
	if p.Clip == 0 && !p.Reloading {
		in.Reload = true
	}
	return in
}

// runSimulation steps a fresh run for seconds of game time at fps, on a
// simulated clock. It stops early if the player dies or wins.
func runSimulation(s *game.GameSession, cfg *config.Config, caster render.ColumnCaster, seconds float64) (simResult, error) {
	fps := cfg.Display.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	frame := time.Second / time.Duration(fps)
	monitor := monitoring.NewFrameMonitor()
	renderer := &composeRenderer{
		view:    render.View{Width: cfg.GetScreenWidth(), Height: cfg.GetScreenHeight(), Caster: caster},
		monitor: monitor,
	}
	loop := game.NewGameLoop(s, renderer)
	if err := loop.Start(); err != nil {
		return simResult{}, err
	}

	res := simResult{Cues: make(map[game.Cue]int)}
	clock := time.Unix(0, 0)
	total := int(seconds * float64(fps))
	for i := 0; i < total; i++ {
		in := scriptedInput(s, i, fps)

		ft := monitor.StartFrame()
		loop.Frame(clock, &in)
		ft.EndFrame()
		clock = clock.Add(frame)

		for _, c := range s.DrainCues() {
			res.Cues[c]++
		}
		if m := s.Mode(); m == game.ModeDead || m == game.ModeWin {
			logger.Info("run ended", "mode", m, "frame", i)
			break
		}
	}

	res.Frames = loop.Frames()
	res.HUD = s.HUD()
	res.Metrics = monitor.Metrics()
	return res, nil
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, err := newSession(cfg)
	if err != nil {
		return err
	}
	caster, stop := newCaster(cfg)
	defer stop()

	res, err := runSimulation(session, cfg, caster, viper.GetFloat64("seconds"))
	if err != nil {
		return err
	}
	printSimResult(cmd.OutOrStdout(), res)
	return nil
}

func printSimResult(out io.Writer, res simResult) {
	h := res.HUD
	fmt.Fprintf(out, "Mode:      %s\n", h.Mode)
	fmt.Fprintf(out, "Level:     %d/%d %s\n", h.LevelNumber, h.LevelCount, h.LevelName)
	fmt.Fprintf(out, "Objective: %s (%d/%d down)\n", h.Objective, h.TotalEnemies-h.EnemiesLeft, h.TotalEnemies)
	fmt.Fprintf(out, "Health:    %d/%d  Armor: %d/%d\n", h.Health, h.MaxHealth, h.Armor, h.MaxArmor)
	fmt.Fprintf(out, "Ammo:      %d/%d (+%d)\n", h.Clip, h.ClipSize, h.Reserve)
	fmt.Fprintf(out, "Score:     %d  Kills: %d\n", h.Score, h.Kills)
	fmt.Fprintf(out, "Play time: %s over %d frames\n", h.PlayTime, res.Frames)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cues:")
	for c := game.CueShot; c <= game.CueLevelClear; c++ {
		if n := res.Cues[c]; n > 0 {
			fmt.Fprintf(out, "  %-14s %d\n", c, n)
		}
	}

	m := res.Metrics
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Frame:     avg %v, compose avg %v\n", m.AvgFrameTime, m.AvgRaycastTime)
}
