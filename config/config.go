// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Arena     ArenaConfig     `yaml:"arena"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Monsters  MonsterConfig   `yaml:"monsters"`
	Goals     GoalConfig      `yaml:"goals"`
	Pins      PinConfig       `yaml:"pins"`
	Hints     HintConfig      `yaml:"hints"`
	Progress  ProgressConfig  `yaml:"progress"`
	Levels    LevelsConfig    `yaml:"levels"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Audio     AudioConfig     `yaml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ArenaConfig holds the vertical bounds particles are allowed to occupy.
type ArenaConfig struct {
	Top    float64 `yaml:"top"`    // Steam and gas above this are removed
	Bottom float64 `yaml:"bottom"` // Anything below this is removed
}

// PhysicsConfig holds particle simulation parameters.
// dt is a frame multiplier: 1.0 is one nominal frame of FrameMillis.
type PhysicsConfig struct {
	Backend          string  `yaml:"backend"`           // "integrator" or "ecs"
	FrameMillis      float64 `yaml:"frame_millis"`      // Wall-clock length of dt=1
	MaxDT            float64 `yaml:"max_dt"`            // Frame gaps are clamped to this
	Gravity          float64 `yaml:"gravity"`           // Water acceleration per frame
	LavaGravityScale float64 `yaml:"lava_gravity_scale"` // Lava falls at Gravity * this
	RiseRate         float64 `yaml:"rise_rate"`         // Steam/gas upward acceleration
	Damping          float64 `yaml:"damping"`           // Per-axis velocity multiplier per step
	Restitution      float64 `yaml:"restitution"`       // Velocity kept after an obstacle bounce
	WallMargin       float64 `yaml:"wall_margin"`       // Contact band around obstacle edges
	ReactionRadius   float64 `yaml:"reaction_radius"`   // Water+lava closer than this become steam
	RepulsionRadius  float64 `yaml:"repulsion_radius"`  // Same-type particles closer than this push apart
	RepulsionForce   float64 `yaml:"repulsion_force"`   // Impulse per unit of overlap
	SteamMass        float64 `yaml:"steam_mass"`
	LavaMass         float64 `yaml:"lava_mass"`
	FluidMass        float64 `yaml:"fluid_mass"`
	SpawnJitter      float64 `yaml:"spawn_jitter"` // Initial velocity spread for chamber particles
}

// MonsterConfig holds hazard motion parameters.
type MonsterConfig struct {
	Gravity     float64 `yaml:"gravity"`
	Damping     float64 `yaml:"damping"`
	Restitution float64 `yaml:"restitution"`
}

// GoalConfig holds contact radii for win/lose detection.
type GoalConfig struct {
	TreasureRadius float64 `yaml:"treasure_radius"`
	LavaRadius     float64 `yaml:"lava_radius"`
	MonsterRadius  float64 `yaml:"monster_radius"`
}

// PinConfig holds pin interaction parameters.
type PinConfig struct {
	HitRadius     float64 `yaml:"hit_radius"`     // Pointer must be closer than this to grab a pin
	WallTolerance float64 `yaml:"wall_tolerance"` // Pin anchor must be this close to a wall edge to remove it
}

// HintConfig holds hint advisor thresholds.
type HintConfig struct {
	IdleSeconds           float64 `yaml:"idle_seconds"`
	AttemptThreshold      int     `yaml:"attempt_threshold"`
	ReorderHintAttempts   int     `yaml:"reorder_hint_attempts"`
	ResetAttemptsPerLevel bool    `yaml:"reset_attempts_per_level"`
}

// ProgressConfig holds progress tracking parameters.
type ProgressConfig struct {
	LevelCeiling  int     `yaml:"level_ceiling"`
	MaxHighScores int     `yaml:"max_high_scores"`
	TwoStarFactor float64 `yaml:"two_star_factor"`
	Path          string  `yaml:"path"` // Progress file; empty keeps progress in memory only
}

// LevelsConfig holds level pack settings.
type LevelsConfig struct {
	Path string `yaml:"path"` // Level pack file; empty uses the embedded pack
}

// TelemetryConfig holds session recording parameters.
type TelemetryConfig struct {
	PlayerID string `yaml:"player_id"` // Empty generates a random id per run
}

// AudioConfig holds audio cue parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // 0..1
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameSeconds float64 // Physics.FrameMillis in seconds
	ScreenW32    float32
	ScreenH32    float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects combinations the simulation cannot run with.
func (c *Config) validate() error {
	switch c.Physics.Backend {
	case "", "integrator", "ecs":
	default:
		return fmt.Errorf("physics.backend: unknown backend %q", c.Physics.Backend)
	}
	if c.Physics.RepulsionRadius >= c.Physics.ReactionRadius {
		return fmt.Errorf("physics: repulsion_radius (%g) must be below reaction_radius (%g)",
			c.Physics.RepulsionRadius, c.Physics.ReactionRadius)
	}
	if c.Progress.MaxHighScores < 1 {
		return fmt.Errorf("progress.max_high_scores must be positive, got %d", c.Progress.MaxHighScores)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Physics.Backend == "" {
		c.Physics.Backend = "integrator"
	}
	c.Derived.FrameSeconds = c.Physics.FrameMillis / 1000
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
