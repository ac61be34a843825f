package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/php-runner/internal/config"
	"github.com/vovakirdan/php-runner/internal/core"
)

// Simulation owns the runner state and advances it one tick at a time.
// It has no notion of assets, input devices or wall-clock time.
type Simulation struct {
	state      State
	cfg        config.RunnerConfig
	rng        *rand.Rand
	difficulty *config.DifficultyManager
}

// NewSimulation creates a simulation in the Loading state.
func NewSimulation(cfg config.RunnerConfig, seed int64) *Simulation {
	s := &Simulation{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(seed)),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
	s.state = State{
		Status:  core.StatusLoading,
		GroundY: cfg.Canvas.GroundY,
		CanvasW: cfg.Canvas.Width,
		CanvasH: cfg.Canvas.Height,
		Player:  s.groundedPlayer(),
	}
	return s
}

// State exposes the current state for reading. Callers must not modify it.
func (s *Simulation) State() *State {
	return &s.state
}

// Start leaves Loading and begins the first run.
func (s *Simulation) Start() {
	if s.state.Status != core.StatusLoading {
		return
	}
	s.Restart()
}

// groundTop is where the player's top edge sits when standing.
func (s *Simulation) groundTop() float64 {
	return s.cfg.Canvas.GroundY - s.cfg.Player.Height
}

func (s *Simulation) groundedPlayer() Player {
	return Player{
		X: s.cfg.Player.X,
		Y: s.groundTop(),
		W: s.cfg.Player.Width,
		H: s.cfg.Player.Height,
	}
}

// Restart begins a fresh run from any status: player on the ground,
// obstacles reseeded at fixed spacing from the right edge, score zero.
func (s *Simulation) Restart() {
	s.state.Player = s.groundedPlayer()
	s.state.Obstacles = s.state.Obstacles[:0]
	s.state.Score = 0
	s.state.Ticks = 0
	s.state.Status = core.StatusRunning
	for i := 0; i < s.cfg.Obstacles.InitialCount; i++ {
		s.spawn()
	}
}

// Jump launches the player if it is standing on the ground during a run.
// Returns false when the jump was ignored.
func (s *Simulation) Jump() bool {
	if s.state.Status != core.StatusRunning || s.state.Player.Jumping {
		return false
	}
	s.state.Player.VelocityY = s.cfg.Physics.JumpVelocity
	s.state.Player.Jumping = true
	return true
}

// Speed returns the current obstacle speed in units per tick.
func (s *Simulation) Speed() float64 {
	return s.difficulty.Speed(s.cfg.Physics.Speed, s.state.Score, s.state.Ticks)
}

// Update advances one tick. It does nothing unless the run is active.
// At most one collision is reported; the frame ends at the first one.
func (s *Simulation) Update() []core.Event {
	if s.state.Status != core.StatusRunning {
		return nil
	}
	s.state.Ticks++

	s.applyGravity()

	speed := s.Speed()
	for i := range s.state.Obstacles {
		s.state.Obstacles[i].X -= speed
	}
	s.recycle()

	events := s.score()

	if s.collides() {
		s.state.Status = core.StatusGameOver
		events = append(events, core.EventCollision)
	}
	return events
}

// applyGravity integrates velocity and clamps the player to the ground.
func (s *Simulation) applyGravity() {
	p := &s.state.Player
	p.VelocityY += s.cfg.Physics.Gravity
	if limit := s.cfg.Physics.MaxFallSpeed; limit > 0 && p.VelocityY > limit {
		p.VelocityY = limit
	}
	p.Y += p.VelocityY

	if ground := s.groundTop(); p.Y >= ground {
		p.Y = ground
		p.VelocityY = 0
		p.Jumping = false
	}
}

// recycle drops obstacles that left the screen and spawns replacements.
func (s *Simulation) recycle() {
	for len(s.state.Obstacles) > 0 && s.state.Obstacles[0].Right() < 0 {
		s.state.Obstacles = append(s.state.Obstacles[:0], s.state.Obstacles[1:]...)
		s.spawn()
	}
}

// spawn appends an obstacle one spacing gap behind the rearmost one,
// or at the right canvas edge when there is none.
func (s *Simulation) spawn() {
	x := s.cfg.Canvas.Width
	if n := len(s.state.Obstacles); n > 0 {
		x = s.state.Obstacles[n-1].Right() + s.cfg.Obstacles.Spacing
	}
	o := s.cfg.Obstacles
	s.state.Obstacles = append(s.state.Obstacles, Obstacle{
		X: x,
		W: s.between(o.MinWidth, o.MaxWidth),
		H: s.between(o.MinHeight, o.MaxHeight),
	})
}

// between returns a whole number in [min, max].
func (s *Simulation) between(min, max float64) float64 {
	if max <= min {
		return min
	}
	return math.Round(min + s.rng.Float64()*(max-min))
}

// score marks obstacles whose trailing edge passed the player's leading edge.
func (s *Simulation) score() []core.Event {
	var events []core.Event
	left := s.state.Player.X
	for i := range s.state.Obstacles {
		o := &s.state.Obstacles[i]
		if o.Scored || o.Right() >= left {
			continue
		}
		o.Scored = true
		s.state.Score++
		events = append(events, core.EventScored)
	}
	return events
}

// collides reports whether the player overlaps any obstacle it has not passed.
func (s *Simulation) collides() bool {
	pr := s.state.Player.Rect()
	for _, o := range s.state.Obstacles {
		if o.Scored {
			continue
		}
		if pr.Intersects(o.Rect(s.state.GroundY)) {
			return true
		}
	}
	return false
}
