package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/php-runner/internal/core"
	"github.com/vovakirdan/php-runner/internal/engine"
	"github.com/vovakirdan/php-runner/internal/registry"
	"github.com/vovakirdan/php-runner/internal/storage"
)

// GameOptions configures a GameModel.
type GameOptions struct {
	Store  *storage.Store // Optional; finished runs are saved here
	Player string         // Recorded with saved runs
	Logger *log.Logger
}

// GameModel is the Bubble Tea model that hosts one game.
// The engine loop is shared by copies of the model, so the model is a
// thin view over it and never holds game state of its own.
type GameModel struct {
	loop       *engine.Loop
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	tickID     int
	quitting   bool
	backToMenu bool
	standalone bool // Own tea.Program; going back ends it
}

// NewGameModel resets game and wraps it in an engine loop.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	loop := engine.New(game, cfg,
		engine.WithMapper(engine.NewMapper(JumpKeys...)),
		engine.WithLogger(logger),
		engine.OnGameOver(saveRun(opts.Store, game.ID(), opts.Player, logger)),
	)

	return GameModel{
		loop:      loop,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		tickID:    nextTickID(),
	}
}

// saveRun returns the game-over hook that records runs with a score.
func saveRun(store *storage.Store, gameID, player string, logger *log.Logger) func(core.GameState) {
	return func(st core.GameState) {
		if store == nil || st.Score <= 0 {
			return
		}
		_, err := store.SaveRun(storage.Run{
			GameID:   gameID,
			Player:   player,
			Score:    st.Score,
			Duration: st.Elapsed,
		})
		if err != nil {
			// Best-effort save, game continues regardless
			logger.Warn("could not save run", "game", gameID, "error", err)
		}
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.tickID)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := m.keyMapper.MouseEvent(msg); ok {
			m.loop.Dispatch(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		// The viewport rescales the canvas; the run goes on.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.loop.Close()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		if m.loop.State().Status != core.StatusRunning {
			m.loop.Close()
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
		return m, nil

	case action == core.ActionRestart:
		m.loop.Trigger(core.ActionRestart)
		return m, nil
	}

	m.loop.Dispatch(m.keyMapper.KeyEvent(msg))
	return m, nil
}

// handleTick advances the loop once and schedules the next tick.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.ID != m.tickID || m.loop.Closed() {
		return m, nil
	}
	m.loop.Tick()
	return m, tickCmd(m.config.TickRate, m.tickID)
}

// saveScreenshot saves the current screen to a text file.
func (m *GameModel) saveScreenshot() {
	m.loop.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".runner", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.loop.Game().ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	if !m.loop.Render(m.screen) {
		return ""
	}
	return RenderScreen(m.screen)
}

// Loop exposes the engine loop driving the game.
func (m GameModel) Loop() *engine.Loop {
	return m.loop
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the terminal until the player quits or goes back.
// Returns true when the player asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) (backToMenu bool, err error) {
	model := NewGameModel(game, cfg, opts)
	model.standalone = true
	defer model.loop.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
