package engine_test

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/vovakirdan/php-runner/internal/assets"
	"github.com/vovakirdan/php-runner/internal/config"
	"github.com/vovakirdan/php-runner/internal/core"
	"github.com/vovakirdan/php-runner/internal/engine"
	"github.com/vovakirdan/php-runner/internal/games/runner"
)

func TestLoopDrivesRunnerToGameOver(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	loader := assets.NewLoader(fstest.MapFS{}, []assets.Spec{
		{Name: assets.Player, Path: cfg.Assets.Player},
	}, nil)
	game := runner.NewWithConfig(cfg, loader)

	var finished []core.GameState
	l := engine.New(game, core.DefaultConfig(), engine.OnGameOver(func(st core.GameState) {
		finished = append(finished, st)
	}))

	select {
	case <-loader.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("assets never settled")
	}

	// Nobody jumps: the first obstacle reaches the player well within 200 ticks.
	for i := 0; i < 200 && !l.State().GameOver(); i++ {
		l.Tick()
	}
	if !l.State().GameOver() {
		t.Fatal("idle runner should eventually collide")
	}
	for i := 0; i < 10; i++ {
		l.Tick()
	}
	if len(finished) != 1 {
		t.Fatalf("game over reported %d times, expected 1", len(finished))
	}

	if !l.Dispatch(engine.Event{Source: engine.SourceTouch}) {
		t.Fatal("touch after game over should restart")
	}
	res := l.Tick()
	if !res.Has(core.EventRestarted) || res.State.Status != core.StatusRunning {
		t.Fatalf("restart tick = %+v", res)
	}
	if !l.Dispatch(engine.KeyEvent(" ")) {
		t.Fatal("space while running should jump")
	}
	l.Tick()
	if !game.Simulation().State().Player.Jumping {
		t.Error("player should be jumping after space")
	}

	l.Close()
	if l.Dispatch(engine.KeyEvent(" ")) {
		t.Error("input after Close should be dropped")
	}
}
