package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Config holds all game configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Camera   CameraConfig   `yaml:"camera"`
	Movement MovementConfig `yaml:"movement"`
	Player   PlayerConfig   `yaml:"player"`
	Weapon   WeaponConfig   `yaml:"weapon"`
	Combat   CombatConfig   `yaml:"combat"`
	AI       AIConfig       `yaml:"monster_ai"`
	Enemies  EnemiesConfig  `yaml:"enemies"`
	Pickups  PickupConfig   `yaml:"pickups"`
	Level    LevelConfig    `yaml:"level"`
	Loop     LoopConfig     `yaml:"loop"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Threads  ThreadsConfig  `yaml:"threading"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TargetFPS    int    `yaml:"target_fps"`
}

type CameraConfig struct {
	FieldOfView   float64 `yaml:"field_of_view"` // degrees
	MaxDepth      float64 `yaml:"max_depth"`
	RayColumnStep int     `yaml:"ray_column_step"`
	NearPlane     float64 `yaml:"near_plane"`
	DepthMargin   float64 `yaml:"depth_margin"`
}

type MovementConfig struct {
	MoveSpeed        float64 `yaml:"move_speed"`
	SprintMultiplier float64 `yaml:"sprint_multiplier"`
	TurnSpeed        float64 `yaml:"turn_speed"`
	PlayerRadius     float64 `yaml:"player_radius"`
	BobRate          float64 `yaml:"bob_rate"`
}

type PlayerConfig struct {
	MaxHealth       int     `yaml:"max_health"`
	MaxArmor        int     `yaml:"max_armor"`
	StartHealth     int     `yaml:"start_health"`
	StartArmor      int     `yaml:"start_armor"`
	ArmorAbsorb     float64 `yaml:"armor_absorb"`
	SpawnProtection float64 `yaml:"spawn_protection"`
	HurtFlash       float64 `yaml:"hurt_flash"`
}

type WeaponConfig struct {
	ClipSize     int     `yaml:"clip_size"`
	StartReserve int     `yaml:"start_reserve"`
	FireCooldown float64 `yaml:"fire_cooldown"`
	Spread       float64 `yaml:"spread"`
	HitTolerance float64 `yaml:"hit_tolerance"`
	DamageMin    int     `yaml:"damage_min"` // inclusive
	DamageMax    int     `yaml:"damage_max"` // exclusive
	ReloadTime   float64 `yaml:"reload_time"`
	KickTime     float64 `yaml:"kick_time"`
	MuzzleTime   float64 `yaml:"muzzle_time"`
}

type CombatConfig struct {
	ComboWindow   float64 `yaml:"combo_window"`
	ComboBonus    int     `yaml:"combo_bonus"`
	DropChance    float64 `yaml:"drop_chance"`
	EnemyHitFlash float64 `yaml:"enemy_hit_flash"`
}

type AIConfig struct {
	DetectRadius      float64 `yaml:"detect_radius"`
	SightStep         float64 `yaml:"sight_step"`
	AlertDuration     float64 `yaml:"alert_duration"`
	WanderSpeedFactor float64 `yaml:"wander_speed_factor"`
	WanderMinTime     float64 `yaml:"wander_min_time"`
	WanderMaxTime     float64 `yaml:"wander_max_time"`
	DamageJitter      int     `yaml:"damage_jitter"`
}

// EnemyStats is the immutable template an enemy kind is spawned from.
type EnemyStats struct {
	Name           string  `yaml:"name"`
	HitPoints      int     `yaml:"hit_points"`
	Speed          float64 `yaml:"speed"`
	Damage         int     `yaml:"damage"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
	AttackRange    float64 `yaml:"attack_range"`
	Radius         float64 `yaml:"radius"`
	Score          int     `yaml:"score"`
	DamageTaken    float64 `yaml:"damage_taken"`
}

type EnemiesConfig struct {
	Grunt EnemyStats `yaml:"grunt"`
	Fiend EnemyStats `yaml:"fiend"`
	Brute EnemyStats `yaml:"brute"`
}

type PickupConfig struct {
	Radius   float64 `yaml:"radius"`
	Health   int     `yaml:"health"`
	Armor    int     `yaml:"armor"`
	Ammo     int     `yaml:"ammo"`
	Treasure int     `yaml:"treasure"`
}

type LevelConfig struct {
	ExitRadius      float64 `yaml:"exit_radius"`
	PromptInterval  float64 `yaml:"prompt_interval"`
	MessageDuration float64 `yaml:"message_duration"`
	CarryHealth     int     `yaml:"carry_health"`
	CarryArmor      int     `yaml:"carry_armor"`
	CarryReserve    int     `yaml:"carry_reserve"`
}

type LoopConfig struct {
	MaxFrameDelta float64 `yaml:"max_frame_delta"` // seconds
}

type GraphicsConfig struct {
	MinimapCell   int     `yaml:"minimap_cell"`
	MinimapRadius int     `yaml:"minimap_radius"`
	BobAmplitude  float64 `yaml:"bob_amplitude"`
	FogDistance   float64 `yaml:"fog_distance"`
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // 0..1
}

type ThreadsConfig struct {
	RayWorkers int     `yaml:"ray_workers"` // 0 = CPU count, -1 = cast on the game goroutine
	MinFPS     float64 `yaml:"min_fps"`     // low_fps alert threshold
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic("Failed to parse default config: " + err.Error())
	}
	return &cfg
}

// Parse decodes YAML over the built-in defaults, so a file only needs the
// keys it overrides.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", filename, err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", filename, err)
	}
	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, c.Display.ScreenWidth, c.Display.ScreenHeight)
	case c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180:
		return fmt.Errorf("%w: field_of_view %.1f", ErrInvalid, c.Camera.FieldOfView)
	case c.Camera.MaxDepth <= 0:
		return fmt.Errorf("%w: max_depth %.2f", ErrInvalid, c.Camera.MaxDepth)
	case c.Camera.RayColumnStep < 1:
		return fmt.Errorf("%w: ray_column_step %d", ErrInvalid, c.Camera.RayColumnStep)
	case c.Weapon.ClipSize <= 0:
		return fmt.Errorf("%w: clip_size %d", ErrInvalid, c.Weapon.ClipSize)
	case c.Weapon.DamageMax <= c.Weapon.DamageMin:
		return fmt.Errorf("%w: damage range [%d,%d)", ErrInvalid, c.Weapon.DamageMin, c.Weapon.DamageMax)
	case c.Player.ArmorAbsorb < 0 || c.Player.ArmorAbsorb > 1:
		return fmt.Errorf("%w: armor_absorb %.2f", ErrInvalid, c.Player.ArmorAbsorb)
	case c.Combat.DropChance < 0 || c.Combat.DropChance > 1:
		return fmt.Errorf("%w: drop_chance %.2f", ErrInvalid, c.Combat.DropChance)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio volume %.2f", ErrInvalid, c.Audio.Volume)
	case c.Audio.Enabled && c.Audio.SampleRate <= 0:
		return fmt.Errorf("%w: sample_rate %d", ErrInvalid, c.Audio.SampleRate)
	case c.Loop.MaxFrameDelta <= 0:
		return fmt.Errorf("%w: max_frame_delta %.3f", ErrInvalid, c.Loop.MaxFrameDelta)
	}
	for _, s := range []EnemyStats{c.Enemies.Grunt, c.Enemies.Fiend, c.Enemies.Brute} {
		if s.HitPoints <= 0 || s.Radius <= 0 {
			return fmt.Errorf("%w: enemy %q needs positive hit_points and radius", ErrInvalid, s.Name)
		}
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

// GetFOVRadians returns the horizontal field of view in radians.
func (c *Config) GetFOVRadians() float64 {
	return c.Camera.FieldOfView * math.Pi / 180
}

func (c *Config) GetMaxDepth() float64 {
	return c.Camera.MaxDepth
}
