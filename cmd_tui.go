package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"hellgrid/internal/platform/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Play in the terminal",
	Long: `Play the campaign in the terminal, drawn with shaded characters.

Terminals do not report key releases, so movement keys stay held for a
moment after the last repeat. Shifted movement keys (W/A/S/D) sprint.

Controls:
  w/s, Up/Down   - Move
  a/d            - Strafe
  Left/Right j/l - Turn
  Space/f        - Fire
  r              - Reload
  e              - Use the lift
  Enter          - Start / retry
  p/Esc          - Pause
  q              - Quit (when not playing)
  Ctrl+C         - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().String("log-file", "", "Write logs to this file (the terminal is busy drawing)")
	//nolint:errcheck // only fails on a nil flag set
	viper.BindPFlags(tuiCmd.Flags())
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if path := viper.GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else {
		logger.SetOutput(io.Discard)
	}

	session, err := newSession(cfg)
	if err != nil {
		return err
	}
	caster, stop := newCaster(cfg)
	defer stop()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	return tui.Run(session, tui.Options{
		TickRate: cfg.Display.TargetFPS,
		Width:    width,
		Height:   height,
		Caster:   caster,
		Logger:   logger,
	})
}
