package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the wall-clock length of one tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// Status is the lifecycle phase of a game.
type Status int

const (
	StatusLoading  Status = iota // Waiting for assets
	StatusRunning                // Simulation advancing
	StatusGameOver               // Halted after a collision
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "Loading"
	case StatusRunning:
		return "Running"
	case StatusGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score   int           // Current score
	Status  Status        // Loading, Running or GameOver
	Elapsed time.Duration // Time since the current run started
}

// GameOver reports whether the game has ended.
func (s GameState) GameOver() bool {
	return s.Status == StatusGameOver
}

// Event is a notable transition that happened during a tick.
type Event int

const (
	EventReady     Event = iota // Assets finished loading, first run started
	EventScored                 // An obstacle was passed
	EventCollision              // The player hit an obstacle
	EventRestarted              // A new run started after game over
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventReady:
		return "Ready"
	case EventScored:
		return "Scored"
	case EventCollision:
		return "Collision"
	case EventRestarted:
		return "Restarted"
	default:
		return "Unknown"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether e occurred during the tick.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}
