// runner is an obstacle-dodging side-scroller for the terminal, a desktop
// window and SSH.
//
// Usage:
//
//	runner list              - List available games
//	runner play <game>       - Play a game
//	runner menu              - Start menu to pick games interactively
//	runner serve             - Start SSH and HTTP leaderboard servers
//	runner scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.runner/scores.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/php-runner/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/php-runner/internal/games/runner"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	// Defaults for flags, read before any init runs
	env = loadEnv()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "PHP Runner - jump over obstacles in your terminal",
	Long: `PHP Runner is a small side-scroller: the runner stays in place while
obstacles scroll in from the right. Jump over them to score.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH and HTTP leaderboard servers
  scores   - View high scores

Settings can also come from a .env file or the environment:
  RUNNER_DB, RUNNER_ASSETS, RUNNER_SSH_ADDR, RUNNER_HTTP_ADDR, RUNNER_LOG_LEVEL

Examples:
  runner list
  runner play runner
  runner play runner --window
  runner menu
  runner serve --ssh :2222 --http :8080
  runner scores runner`,
	SilenceUsage: true,
}

func loadEnv() config.Env {
	loaded, err := config.LoadEnv(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return loaded
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", env.DBPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the process logger. With fullscreen set and no log
// file, logs are discarded so they do not tear the terminal UI.
func newLogger(fullscreen bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var (
		out     io.Writer = os.Stderr
		cleanup           = func() {}
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		cleanup = func() { f.Close() } //nolint:errcheck
	case fullscreen:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "runner",
		Level:           level,
	})
	return logger, cleanup, nil
}
