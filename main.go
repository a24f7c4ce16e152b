// hellgrid is a raycasting first-person shooter.
//
// Usage:
//
//	hellgrid play        - Play in a desktop window
//	hellgrid tui         - Play in the terminal
//	hellgrid levels [n]  - List the campaign, or print level n
//	hellgrid sim         - Run the campaign headlessly with scripted input
//
// Global flags (also HELLGRID_* environment variables):
//
//	--config <path>    - Config YAML merged over the built-in defaults
//	--levels <path>    - Campaign YAML (default: built-in campaign)
//	--seed <value>     - RNG seed for reproducible runs
//	--fps <rate>       - Target frame rate
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hellgrid/internal/config"
	"hellgrid/internal/game"
	"hellgrid/internal/mathutil"
	"hellgrid/internal/render"
	"hellgrid/internal/threading/rendering"
	"hellgrid/internal/world"
)

var logger = log.Default()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hellgrid",
	Short: "Hellgrid: Breach - a raycasting shooter",
	Long: `Hellgrid: Breach is a raycasting first-person shooter. Clear each
sector of the grid, find the keycard where the lift demands one and
ride it out.

Examples:
  hellgrid play
  hellgrid play --levels ./my-levels.yaml --seed 7
  hellgrid tui --fps 30
  hellgrid levels 2
  hellgrid sim --seconds 60`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config YAML (merged over built-in defaults)")
	pf.String("levels", "", "Path to campaign YAML (default: built-in campaign)")
	pf.Int64("seed", 0, "RNG seed (0 = random based on time)")
	pf.Int("fps", 0, "Target frame rate (0 = config value)")
	pf.Int("width", 0, "Screen width in pixels (0 = config value)")
	pf.Int("height", 0, "Screen height in pixels (0 = config value)")
	pf.Int("ray-workers", 0, "Ray casting workers (0 = CPU count, -1 = cast on the game goroutine)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	//nolint:errcheck // only fails on a nil flag set
	viper.BindPFlags(pf)

	viper.SetEnvPrefix("HELLGRID")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          "hellgrid",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	log.SetDefault(logger)
	return nil
}

// loadConfig reads the config file, if any, and applies flag and
// environment overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if path := viper.GetString("config"); path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if fps := viper.GetInt("fps"); fps > 0 {
		cfg.Display.TargetFPS = fps
	}
	if w := viper.GetInt("width"); w > 0 {
		cfg.Display.ScreenWidth = w
	}
	if h := viper.GetInt("height"); h > 0 {
		cfg.Display.ScreenHeight = h
	}
	if viper.IsSet("ray-workers") {
		cfg.Threads.RayWorkers = viper.GetInt("ray-workers")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadCampaign() ([]world.LevelDef, error) {
	path := viper.GetString("levels")
	if path == "" {
		return world.DefaultCampaign(), nil
	}
	defs, err := world.LoadLevelFile(path)
	if err != nil {
		return nil, err
	}
	logger.Info("campaign loaded", "path", path, "levels", len(defs))
	return defs, nil
}

// newSession builds a session for the configured campaign and seed.
func newSession(cfg *config.Config) (*game.GameSession, error) {
	defs, err := loadCampaign()
	if err != nil {
		return nil, err
	}
	seed := viper.GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("new session", "seed", seed, "levels", len(defs))
	return game.NewGameSession(cfg, defs, game.WithRand(mathutil.NewRand(seed)), game.WithLogger(logger))
}

// newCaster returns the column caster for the configured worker count and
// a func releasing it. A nil caster casts serially.
func newCaster(cfg *config.Config) (render.ColumnCaster, func()) {
	if cfg.Threads.RayWorkers < 0 {
		return nil, func() {}
	}
	cc := rendering.NewColumnCaster(cfg.Threads.RayWorkers)
	logger.Debug("column caster started", "workers", cfg.Threads.RayWorkers)
	return cc, cc.Stop
}
