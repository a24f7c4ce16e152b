package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hellgrid/internal/audio"
	"hellgrid/internal/platform/desktop"
	"hellgrid/internal/threading/monitoring"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in a desktop window",
	Long: `Open a window and play the campaign.

Controls:
  W/S, Up/Down   - Move
  A/D            - Strafe
  Left/Right     - Turn (mouse turns while playing)
  Shift          - Sprint
  Space/Click    - Fire
  R/Right click  - Reload
  E              - Use the lift
  Enter          - Start / retry
  Esc/P          - Pause
  F3             - Frame stats
  Q              - Quit (when not playing)`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Bool("no-audio", false, "Disable sound")
	//nolint:errcheck // only fails on a nil flag set
	viper.BindPFlags(playCmd.Flags())
}

func runPlay(cmd *cobra.Command, args []string) error {
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

	opts := desktop.Options{
		Caster:  caster,
		Monitor: monitoring.NewFrameMonitor(),
		Logger:  logger,
	}
	if cfg.Audio.Enabled && !viper.GetBool("no-audio") {
		mixer := audio.NewMixer(cfg.Audio, logger)
		defer mixer.Close()
		opts.Audio = mixer
	}

	logger.Info("starting", "levels", session.LevelCount(), "width", cfg.GetScreenWidth(), "height", cfg.GetScreenHeight())
	return desktop.New(session, opts).Run()
}
