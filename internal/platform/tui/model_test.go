package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/php-runner/internal/core"
	"github.com/vovakirdan/php-runner/internal/storage"
)

// hopGame is ready immediately; every jump scores and the second one ends the run.
type hopGame struct {
	state core.GameState
}

func (g *hopGame) ID() string    { return "hop" }
func (g *hopGame) Title() string { return "Hop" }

func (g *hopGame) Reset(core.RuntimeConfig) {
	g.state = core.GameState{Status: core.StatusRunning}
}

func (g *hopGame) Step(in core.InputFrame) core.StepResult {
	switch {
	case in.Has(core.ActionRestart):
		g.state = core.GameState{Status: core.StatusRunning}
		return core.StepResult{State: g.state, Events: []core.Event{core.EventRestarted}}
	case g.state.Status != core.StatusRunning:
		return core.StepResult{State: g.state}
	}
	g.state.Elapsed += time.Second
	if in.Has(core.ActionJump) {
		g.state.Score++
		if g.state.Score >= 2 {
			g.state.Status = core.StatusGameOver
		}
	}
	return core.StepResult{State: g.state}
}

func (g *hopGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, g.state.Status.String())
}

func (g *hopGame) State() core.GameState { return g.state }

var testCfg = core.RuntimeConfig{ScreenW: 20, ScreenH: 4, TickRate: 60, Seed: 1}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	m, cmd := update(t, m, TickMsg{ID: m.tickID})
	if cmd == nil && !m.loop.Closed() {
		t.Fatal("tick should schedule the next tick")
	}
	return m
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGameModelSavesFinishedRun(t *testing.T) {
	store := openStore(t)
	m := NewGameModel(&hopGame{}, testCfg, GameOptions{Store: store, Player: "ada"})

	for i := 0; i < 2; i++ {
		m, _ = update(t, m, keyMsg(" "))
		m = tick(t, m)
	}
	if !m.Loop().State().GameOver() {
		t.Fatalf("state = %+v, expected game over", m.Loop().State())
	}
	// Further ticks must not save again.
	for i := 0; i < 3; i++ {
		m = tick(t, m)
	}

	scores, err := store.TopScores("hop", 10)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(scores))
	}
	if scores[0].Player != "ada" || scores[0].Score != 2 || scores[0].Duration != 2*time.Second {
		t.Errorf("saved run = %+v", scores[0])
	}
}

func TestGameModelMouseJumps(t *testing.T) {
	g := &hopGame{}
	m := NewGameModel(g, testCfg, GameOptions{})

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = tick(t, m)
	if g.state.Score != 1 {
		t.Errorf("score = %d, expected mouse press to jump", g.state.Score)
	}
}

func TestGameModelIgnoresStaleTicks(t *testing.T) {
	g := &hopGame{}
	m := NewGameModel(g, testCfg, GameOptions{})

	m, cmd := update(t, m, TickMsg{ID: m.tickID + 1000})
	if cmd != nil {
		t.Error("stale tick should not schedule another tick")
	}
	if g.state.Elapsed != 0 {
		t.Error("stale tick should not step the game")
	}
	_ = m
}

func TestGameModelBackOnlyWhenNotRunning(t *testing.T) {
	m := NewGameModel(&hopGame{}, testCfg, GameOptions{})

	m, _ = update(t, m, keyMsg("esc"))
	if m.BackToMenu() {
		t.Fatal("back should be ignored during a run")
	}

	for i := 0; i < 2; i++ {
		m, _ = update(t, m, keyMsg(" "))
		m = tick(t, m)
	}
	m, cmd := update(t, m, keyMsg("esc"))
	if !m.BackToMenu() {
		t.Fatal("back should work after game over")
	}
	if cmd != nil {
		t.Error("embedded model should not quit the program on back")
	}
	if !m.Loop().Closed() {
		t.Error("going back should close the loop")
	}
	if m.View() != "" {
		t.Error("view should be empty after leaving the game")
	}
}

func TestGameModelRestartKey(t *testing.T) {
	g := &hopGame{}
	m := NewGameModel(g, testCfg, GameOptions{})
	for i := 0; i < 2; i++ {
		m, _ = update(t, m, keyMsg(" "))
		m = tick(t, m)
	}

	m, _ = update(t, m, keyMsg("r"))
	m = tick(t, m)
	if g.state.Status != core.StatusRunning || g.state.Score != 0 {
		t.Errorf("after restart state = %+v", g.state)
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&hopGame{}, testCfg, GameOptions{})
	m, cmd := update(t, m, keyMsg("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	if !m.Loop().Closed() {
		t.Error("quitting should close the loop")
	}
	if _, cmd := update(t, m, TickMsg{ID: m.tickID}); cmd != nil {
		t.Error("closed loop should stop ticking")
	}
}

func TestGameModelResizeKeepsRun(t *testing.T) {
	g := &hopGame{}
	m := NewGameModel(g, testCfg, GameOptions{})
	m, _ = update(t, m, keyMsg(" "))
	m = tick(t, m)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if g.state.Score != 1 {
		t.Error("resize should not reset the game")
	}
	if m.screen.Width() != 40 || m.screen.Height() != 10 {
		t.Errorf("screen = %dx%d, expected 40x10", m.screen.Width(), m.screen.Height())
	}
	if !strings.HasPrefix(m.View(), "Running") {
		t.Errorf("view = %q", m.View())
	}
}
