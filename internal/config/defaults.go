package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded runner configuration.
// It mirrors defaults/runner.yaml and is used when the embed cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Canvas: RunnerCanvas{
			Width:   800,
			Height:  400,
			GroundY: 320,
		},
		Player: RunnerPlayer{
			X:      50,
			Width:  40,
			Height: 40,
		},
		Physics: RunnerPhysics{
			Gravity:      1,
			JumpVelocity: -15,
			MaxFallSpeed: 20,
			Speed:        5,
		},
		Obstacles: RunnerObstacles{
			MinWidth:     30,
			MaxWidth:     50,
			MinHeight:    30,
			MaxHeight:    50,
			Spacing:      300,
			InitialCount: 3,
		},
		Assets: RunnerAssets{
			Player:      "assets/sprites/php.png",
			Obstacle:    "assets/sprites/obstacle.png",
			Background:  "assets/sprites/background.png",
			LoadTimeout: 5 * time.Second,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `config dump`.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
