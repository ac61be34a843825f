package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/php-runner/internal/core"
	"github.com/vovakirdan/php-runner/internal/engine"
	"github.com/vovakirdan/php-runner/internal/games/runner"
	"github.com/vovakirdan/php-runner/internal/platform/raster"
	"github.com/vovakirdan/php-runner/internal/platform/tui"
	"github.com/vovakirdan/php-runner/internal/registry"
	"github.com/vovakirdan/php-runner/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagAssets     string
	flagPlayer     string
	flagWindow     bool
	flagScale      float64
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Space/Up/W     - Jump (restart after game over)
  Mouse click    - Jump (restart after game over)
  R              - Restart
  B/Esc          - Back (when not running)
  Q/Ctrl+C       - Quit
  Ctrl+S         - Save a screenshot

Difficulty options:
  easy   - Start slow, speeds up over time
  normal - Start at 30% difficulty, speeds up over time
  hard   - Start at 70% difficulty, speeds up over time
  fixed  - Constant speed

Examples:
  runner play runner
  runner play runner --difficulty hard
  runner play runner --window --scale 1.5
  runner play runner --assets ./web --config ./my-runner.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagAssets, "assets", env.Assets, "Directory the sprite paths are resolved against")
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Name recorded with your scores")
	playCmd.Flags().BoolVar(&flagWindow, "window", false, "Open a desktop window instead of playing in the terminal")
	playCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window scale factor")
}

// terminalConfig returns runtime settings sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// configureGames applies CLI settings to games before creation.
func configureGames(logger *log.Logger) {
	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)
	runner.SetAssetFS(os.DirFS(flagAssets))
	runner.SetLogger(logger)
}

// openStore opens the score database. Failure is not fatal: games run
// without recording scores.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(!flagWindow)
	if err != nil {
		return err
	}
	defer closeLog()

	configureGames(logger)
	game, err := registry.Create(args[0])
	if err != nil {
		return fmt.Errorf("%w\nRun 'runner list' to see available games", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	if flagWindow {
		return playWindow(game, cfg, store, logger)
	}

	_, err = tui.Run(game, cfg, tui.GameOptions{Store: store, Player: flagPlayer, Logger: logger})
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// playWindow hosts the game in an ebiten window.
func playWindow(game registry.Game, cfg core.RuntimeConfig, store *storage.Store, logger *log.Logger) error {
	rg, ok := game.(*runner.Game)
	if !ok {
		return fmt.Errorf("game %q has no window mode", game.ID())
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	loop := engine.New(rg, cfg,
		engine.WithMapper(engine.NewMapper(raster.JumpKeys...)),
		engine.WithLogger(logger),
		engine.OnGameOver(recordRun(store, rg.ID(), flagPlayer, logger)),
	)
	if err := raster.Run(loop, rg, raster.Options{Scale: flagScale, Logger: logger}); err != nil {
		return fmt.Errorf("error running window: %w", err)
	}
	return nil
}

// recordRun returns a game-over hook saving runs that scored.
func recordRun(store *storage.Store, gameID, player string, logger *log.Logger) func(core.GameState) {
	return func(st core.GameState) {
		if store == nil || st.Score <= 0 {
			return
		}
		run := storage.Run{GameID: gameID, Player: player, Score: st.Score, Duration: st.Elapsed}
		if _, err := store.SaveRun(run); err != nil {
			logger.Warn("could not save run", "game", gameID, "error", err)
			return
		}
		logger.Info("run saved", "game", gameID, "score", st.Score, "time", st.Elapsed.Round(time.Millisecond))
	}
}
