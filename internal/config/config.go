// Package config provides YAML-based game configuration loading and
// difficulty management for the runner.
package config

import (
	"errors"
	"fmt"
	"time"
)

// RunnerConfig contains all configuration for the runner game.
type RunnerConfig struct {
	Canvas     RunnerCanvas     `yaml:"canvas"`
	Player     RunnerPlayer     `yaml:"player"`
	Physics    RunnerPhysics    `yaml:"physics"`
	Obstacles  RunnerObstacles  `yaml:"obstacles"`
	Assets     RunnerAssets     `yaml:"assets"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerCanvas defines the fixed logical drawing surface.
type RunnerCanvas struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	GroundY float64 `yaml:"ground_y"` // Ground line, measured from the top
}

// RunnerPlayer defines the player's fixed column and size.
type RunnerPlayer struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RunnerPhysics defines per-tick physics parameters.
// Y grows downward, so JumpVelocity is negative.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	Speed        float64 `yaml:"speed"`
}

// RunnerObstacles defines obstacle size bounds and spacing.
type RunnerObstacles struct {
	MinWidth     float64 `yaml:"min_width"`
	MaxWidth     float64 `yaml:"max_width"`
	MinHeight    float64 `yaml:"min_height"`
	MaxHeight    float64 `yaml:"max_height"`
	Spacing      float64 `yaml:"spacing"` // Gap between consecutive obstacles
	InitialCount int     `yaml:"initial_count"`
}

// RunnerAssets lists the image paths and how long to wait for them.
type RunnerAssets struct {
	Player      string        `yaml:"player"`
	Obstacle    string        `yaml:"obstacle"`
	Background  string        `yaml:"background"`
	LoadTimeout time.Duration `yaml:"load_timeout"` // 0 waits forever
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to the speed factor at max difficulty
}

// Validate reports the first inconsistency in the configuration.
func (c RunnerConfig) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %vx%v", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Canvas.GroundY <= 0 || c.Canvas.GroundY > c.Canvas.Height {
		errs = append(errs, fmt.Errorf("ground_y %v outside canvas", c.Canvas.GroundY))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Physics.JumpVelocity >= 0 {
		errs = append(errs, fmt.Errorf("jump_velocity must be negative (upward), got %v", c.Physics.JumpVelocity))
	}
	if c.Physics.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("gravity must be positive, got %v", c.Physics.Gravity))
	}
	if c.Physics.Speed <= 0 {
		errs = append(errs, fmt.Errorf("speed must be positive, got %v", c.Physics.Speed))
	}
	o := c.Obstacles
	if o.MinWidth <= 0 || o.MaxWidth < o.MinWidth {
		errs = append(errs, fmt.Errorf("obstacle width bounds invalid: [%v, %v]", o.MinWidth, o.MaxWidth))
	}
	if o.MinHeight <= 0 || o.MaxHeight < o.MinHeight {
		errs = append(errs, fmt.Errorf("obstacle height bounds invalid: [%v, %v]", o.MinHeight, o.MaxHeight))
	}
	if o.Spacing <= 0 {
		errs = append(errs, fmt.Errorf("obstacle spacing must be positive, got %v", o.Spacing))
	}
	if o.InitialCount < 1 {
		errs = append(errs, fmt.Errorf("initial_count must be at least 1, got %d", o.InitialCount))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset.
// The empty string means "use the config as loaded".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
