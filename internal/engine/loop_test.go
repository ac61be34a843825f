package engine

import (
	"strings"
	"sync"
	"testing"

	"github.com/vovakirdan/php-runner/internal/core"
)

// scriptGame is a minimal game: Jump scores a point, a Restart begins a
// new run and the run ends once the score reaches limit.
type scriptGame struct {
	state    core.GameState
	limit    int
	resets   int
	steps    int
	renders  int
	lastStep core.InputFrame
}

func (g *scriptGame) ID() string    { return "script" }
func (g *scriptGame) Title() string { return "Script" }

func (g *scriptGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{Status: core.StatusLoading}
}

func (g *scriptGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.lastStep = in
	switch g.state.Status {
	case core.StatusLoading:
		g.state.Status = core.StatusRunning
		return core.StepResult{State: g.state, Events: []core.Event{core.EventReady}}
	case core.StatusGameOver:
		if in.Has(core.ActionRestart) {
			g.state = core.GameState{Status: core.StatusRunning}
			return core.StepResult{State: g.state, Events: []core.Event{core.EventRestarted}}
		}
		return core.StepResult{State: g.state}
	}

	var events []core.Event
	if in.Has(core.ActionJump) {
		g.state.Score++
		events = append(events, core.EventScored)
	}
	if g.state.Score >= g.limit {
		g.state.Status = core.StatusGameOver
		events = append(events, core.EventCollision)
	}
	return core.StepResult{State: g.state, Events: events}
}

func (g *scriptGame) Render(dst *core.Screen) {
	g.renders++
	dst.DrawText(0, 0, g.state.Status.String())
}

func (g *scriptGame) State() core.GameState { return g.state }

func newTestLoop(t *testing.T, limit int, opts ...Option) (*Loop, *scriptGame) {
	t.Helper()
	g := &scriptGame{limit: limit}
	l := New(g, core.DefaultConfig(), opts...)
	if g.resets != 1 {
		t.Fatalf("New should reset the game once, got %d", g.resets)
	}
	return l, g
}

func TestLoopLoadingIgnoresInput(t *testing.T) {
	l, g := newTestLoop(t, 3)

	if l.Dispatch(KeyEvent(" ")) {
		t.Error("input while loading should not queue an action")
	}
	res := l.Tick()
	if !res.Has(core.EventReady) {
		t.Fatalf("first tick events = %v", res.Events)
	}
	if !g.lastStep.Empty() {
		t.Error("loading tick should receive no input")
	}
}

func TestLoopDispatchFeedsNextTickOnly(t *testing.T) {
	l, g := newTestLoop(t, 10)
	l.Tick()

	if !l.Dispatch(Event{Source: SourceMouse}) {
		t.Fatal("mouse press while running should queue Jump")
	}
	l.Dispatch(Event{Source: SourceTouch})
	l.Tick()
	if !g.lastStep.Has(core.ActionJump) {
		t.Error("tick should consume the queued jump")
	}
	if g.state.Score != 1 {
		t.Errorf("score = %d, coalesced presses should jump once", g.state.Score)
	}

	l.Tick()
	if !g.lastStep.Empty() {
		t.Error("input should be cleared after the tick that consumed it")
	}
}

func TestLoopIgnoresUnboundKeys(t *testing.T) {
	l, _ := newTestLoop(t, 10)
	l.Tick()

	if l.Dispatch(KeyEvent("x")) {
		t.Error("non-jump key should not map to an action")
	}
}

func TestLoopGameOverFiresOncePerRun(t *testing.T) {
	var (
		mu    sync.Mutex
		runs  []core.GameState
		loopR *Loop
	)
	l, _ := newTestLoop(t, 2, OnGameOver(func(st core.GameState) {
		// Reading the loop from the callback must not deadlock.
		_ = loopR.State()
		mu.Lock()
		runs = append(runs, st)
		mu.Unlock()
	}))
	loopR = l

	l.Tick()
	for i := 0; i < 2; i++ {
		l.Dispatch(KeyEvent(" "))
		l.Tick()
	}
	if !l.State().GameOver() {
		t.Fatalf("state = %+v, expected game over", l.State())
	}
	for i := 0; i < 5; i++ {
		l.Tick()
	}
	if len(runs) != 1 || runs[0].Score != 2 {
		t.Fatalf("game over reports = %+v, expected one with score 2", runs)
	}

	// While the run is over the jump key restarts.
	if !l.Dispatch(KeyEvent("space")) {
		t.Fatal("jump key after game over should queue Restart")
	}
	res := l.Tick()
	if !res.Has(core.EventRestarted) {
		t.Fatalf("events = %v, expected Restarted", res.Events)
	}
	for i := 0; i < 2; i++ {
		l.Dispatch(Event{Source: SourceTouch})
		l.Tick()
	}
	if len(runs) != 2 {
		t.Errorf("second run reported %d times in total, expected 2", len(runs))
	}
}

func TestLoopTrigger(t *testing.T) {
	l, g := newTestLoop(t, 1)
	l.Tick()
	l.Trigger(core.ActionJump)
	l.Tick()
	if !g.state.GameOver() {
		t.Fatal("triggered jump should reach the game")
	}

	l.Trigger(core.ActionRestart)
	if res := l.Tick(); !res.Has(core.EventRestarted) {
		t.Errorf("events = %v, expected Restarted", res.Events)
	}
}

func TestLoopClose(t *testing.T) {
	closes := 0
	l, g := newTestLoop(t, 5, OnClose(func() { closes++ }))
	l.Tick()
	l.Dispatch(KeyEvent(" "))

	l.Close()
	l.Close()
	if closes != 1 {
		t.Fatalf("close callback ran %d times, expected 1", closes)
	}
	if !l.Closed() {
		t.Error("Closed() should report true")
	}

	steps, renders := g.steps, g.renders
	if l.Dispatch(KeyEvent(" ")) {
		t.Error("Dispatch after Close should be ignored")
	}
	l.Trigger(core.ActionJump)
	res := l.Tick()
	if g.steps != steps {
		t.Error("Tick after Close should not step the game")
	}
	if res.State.Score != 0 {
		t.Errorf("queued input leaked past Close: %+v", res.State)
	}
	if l.Render(core.NewScreen(10, 2)) || g.renders != renders {
		t.Error("Render after Close should do nothing")
	}
	for _, src := range []Source{SourceKey, SourceTouch, SourceMouse} {
		if l.mapper.Bound(src) {
			t.Errorf("%v still bound after Close", src)
		}
	}
}

func TestLoopRender(t *testing.T) {
	l, _ := newTestLoop(t, 5)
	l.Tick()
	screen := core.NewScreen(10, 2)
	if !l.Render(screen) {
		t.Fatal("Render should succeed while open")
	}
	if got := screen.Row(0); !strings.HasPrefix(got, "Running") {
		t.Errorf("row 0 = %q", got)
	}
}

func TestLoopConcurrentDispatch(t *testing.T) {
	l, g := newTestLoop(t, 1_000_000)
	l.Tick()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Dispatch(Event{Source: SourceMouse})
			}
		}()
	}
	for i := 0; i < 50; i++ {
		l.Tick()
	}
	wg.Wait()
	l.Tick()

	if g.state.Score == 0 || g.state.Score > 51 {
		t.Errorf("score = %d, expected between 1 and 51", g.state.Score)
	}
}
