// Package engine drives a game from an external per-frame clock.
// Hosts (terminal, SSH session, desktop window) call Tick once per frame,
// forward raw device input through Dispatch and draw with Render.
package engine

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/php-runner/internal/core"
	"github.com/vovakirdan/php-runner/internal/registry"
)

// Loop owns one game, the input mapper feeding it and the input
// collected since the previous tick. All methods are safe for
// concurrent use; after Close they do nothing.
type Loop struct {
	mu       sync.Mutex
	game     registry.Game
	runtime  core.RuntimeConfig
	mapper   *Mapper
	pending  core.InputFrame
	state    core.GameState
	closed   bool
	reported bool // game over of the current run was handed to onGameOver

	onGameOver func(core.GameState)
	onClose    func()
	logger     *log.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithMapper replaces the default input mapper.
func WithMapper(m *Mapper) Option {
	return func(l *Loop) { l.mapper = m }
}

// WithLogger sets the logger for loop lifecycle messages.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// OnGameOver registers a callback run once per finished run,
// outside the loop lock.
func OnGameOver(fn func(core.GameState)) Option {
	return func(l *Loop) { l.onGameOver = fn }
}

// OnClose registers a callback run once when the loop closes.
func OnClose(fn func()) Option {
	return func(l *Loop) { l.onClose = fn }
}

// New resets game with runtime and binds the key, touch and mouse sources.
func New(game registry.Game, runtime core.RuntimeConfig, opts ...Option) *Loop {
	l := &Loop{
		game:    game,
		runtime: runtime,
		pending: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.mapper == nil {
		l.mapper = NewMapper()
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}

	for _, src := range []Source{SourceKey, SourceTouch, SourceMouse} {
		l.mapper.Bind(src)
	}

	game.Reset(runtime)
	l.state = game.State()
	l.logger.Debug("loop started", "game", game.ID(), "tick_rate", runtime.TickRate)
	return l
}

// Game returns the driven game.
func (l *Loop) Game() registry.Game {
	return l.game
}

// Runtime returns the runtime config the game was reset with.
func (l *Loop) Runtime() core.RuntimeConfig {
	return l.runtime
}

// State returns the state observed after the latest tick.
func (l *Loop) State() core.GameState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Dispatch maps a raw input event for the current status and queues the
// resulting action for the next tick. Returns whether an action was queued.
func (l *Loop) Dispatch(ev Event) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return false
	}
	a := l.mapper.Map(ev, l.game.State().Status)
	if a == core.ActionNone {
		return false
	}
	l.pending.Set(a)
	return true
}

// Trigger queues an action directly, bypassing the mapper.
// Hosts use it for dedicated keys such as an explicit restart.
func (l *Loop) Trigger(a core.Action) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || a == core.ActionNone {
		return
	}
	l.pending.Set(a)
}

// Tick advances the game by one step using the queued input.
// The game-over callback fires on the first tick of a finished run.
func (l *Loop) Tick() core.StepResult {
	l.mu.Lock()
	if l.closed {
		st := l.state
		l.mu.Unlock()
		return core.StepResult{State: st}
	}

	res := l.game.Step(l.pending)
	l.pending.Clear()
	l.state = res.State

	if res.Has(core.EventRestarted) || res.Has(core.EventReady) {
		l.reported = false
	}
	var fire func(core.GameState)
	if res.State.GameOver() && !l.reported {
		l.reported = true
		fire = l.onGameOver
		l.logger.Info("run finished", "game", l.game.ID(), "score", res.State.Score, "elapsed", res.State.Elapsed)
	}
	l.mu.Unlock()

	if fire != nil {
		fire(res.State)
	}
	return res
}

// Render draws the game into dst. It reports false once the loop is closed.
func (l *Loop) Render(dst *core.Screen) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return false
	}
	l.game.Render(dst)
	return true
}

// Close halts the loop: every mapper binding is released, queued input is
// dropped and the close callback runs. Later calls do nothing.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mapper.ReleaseAll()
	l.pending.Clear()
	fn := l.onClose
	l.mu.Unlock()

	l.logger.Debug("loop closed", "game", l.game.ID())
	if fn != nil {
		fn()
	}
}

// Closed reports whether Close was called.
func (l *Loop) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}
