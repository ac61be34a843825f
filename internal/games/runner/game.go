package runner

import (
	"context"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/php-runner/internal/assets"
	"github.com/vovakirdan/php-runner/internal/config"
	"github.com/vovakirdan/php-runner/internal/core"
	"github.com/vovakirdan/php-runner/internal/registry"
)

// GameID is the registry identifier of the runner.
const GameID = "runner"

// Package-level settings applied by the CLI before the game is created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	assetFS          fs.FS
	logger           *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetAssetFS sets where image paths from the config are resolved.
func SetAssetFS(fsys fs.FS) {
	assetFS = fsys
}

// SetLogger sets the logger used for asset and config warnings.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game adapts a Simulation to the platform: it owns the asset loader,
// holds Loading until images settle, maps actions onto the simulation
// and renders it.
type Game struct {
	cfg     config.RunnerConfig
	fixed   bool // cfg was injected and must not be reloaded
	runtime core.RuntimeConfig
	sim     *Simulation
	loader  *assets.Loader
	sprites spriteCache
	logger  *log.Logger
}

// New creates a runner that loads its config on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a runner with an explicit config and loader.
// A nil loader is built from the config's asset paths on Reset.
func NewWithConfig(cfg config.RunnerConfig, loader *assets.Loader) *Game {
	return &Game{cfg: cfg, fixed: true, loader: loader}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "PHP Runner"
}

// Reset initializes the game for a new session. Images are loaded once
// per Game; later resets reuse them.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.logger = logger
	if g.logger == nil {
		g.logger = log.Default()
	}

	if !g.fixed {
		cfg, err := config.LoadRunner(configPath)
		if err != nil {
			g.logger.Warn("using default runner config", "error", err)
			cfg = config.DefaultRunnerConfig()
		}
		config.ApplyRunnerPreset(&cfg, difficultyPreset)
		g.cfg = cfg
	}

	if g.loader == nil {
		g.loader = assets.NewLoader(assetFS, []assets.Spec{
			{Name: assets.Player, Path: g.cfg.Assets.Player},
			{Name: assets.Obstacle, Path: g.cfg.Assets.Obstacle},
			{Name: assets.Background, Path: g.cfg.Assets.Background},
		}, g.logger)
	}
	g.loader.Start(context.Background(), g.cfg.Assets.LoadTimeout)

	g.sim = NewSimulation(g.cfg, runtime.Seed)
	g.sprites.reset()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	st := g.sim.State()

	switch st.Status {
	case core.StatusLoading:
		if !g.loader.Ready() {
			return core.StepResult{State: g.State()}
		}
		g.sim.Start()
		return core.StepResult{State: g.State(), Events: []core.Event{core.EventReady}}

	case core.StatusGameOver:
		if in.Has(core.ActionRestart) {
			g.sim.Restart()
			return core.StepResult{State: g.State(), Events: []core.Event{core.EventRestarted}}
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.sim.Restart()
		return core.StepResult{State: g.State(), Events: []core.Event{core.EventRestarted}}
	}
	if in.Has(core.ActionJump) {
		g.sim.Jump()
	}
	events := g.sim.Update()
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{Status: core.StatusLoading}
	}
	st := g.sim.State()
	return core.GameState{
		Score:   st.Score,
		Status:  st.Status,
		Elapsed: time.Duration(st.Ticks) * g.runtime.TickDuration(),
	}
}

// Simulation exposes the underlying simulation.
func (g *Game) Simulation() *Simulation {
	return g.sim
}

// Assets exposes the image loader.
func (g *Game) Assets() *assets.Loader {
	return g.loader
}

// Config returns the active runner config.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
