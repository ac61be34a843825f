// Package runner implements an obstacle-dodging side-scroller.
// The player stays in a fixed column and jumps over obstacles that scroll
// in from the right; passing an obstacle scores a point, touching one ends the run.
package runner

import "github.com/vovakirdan/php-runner/internal/core"

// Player is the jumping character. X never changes during a run.
type Player struct {
	X, Y      float64 // Top-left corner; Y grows downward
	W, H      float64
	VelocityY float64 // Negative while rising
	Jumping   bool
}

// Rect returns the player's collision rectangle.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// Obstacle stands on the ground line and scrolls left.
type Obstacle struct {
	X      float64 // Left edge
	W, H   float64
	Scored bool // Set once the player has passed it
}

// Right returns the x-coordinate of the obstacle's trailing edge.
func (o Obstacle) Right() float64 {
	return o.X + o.W
}

// Rect returns the collision rectangle, spanning upward from the ground line.
func (o Obstacle) Rect(groundY float64) core.Rect {
	return core.NewRect(o.X, groundY-o.H, o.W, o.H)
}

// State is everything the update step mutates and the renderers read.
// Obstacles are kept in spawn order, oldest (leftmost) first.
type State struct {
	Player    Player
	Obstacles []Obstacle
	Score     int
	Status    core.Status
	Ticks     int // Ticks since the current run started
	GroundY   float64
	CanvasW   float64
	CanvasH   float64
}

// Clone returns a deep copy that shares nothing with s.
func (s State) Clone() State {
	c := s
	c.Obstacles = append([]Obstacle(nil), s.Obstacles...)
	return c
}
