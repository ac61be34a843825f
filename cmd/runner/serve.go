package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/php-runner/internal/platform/tui"
	"github.com/vovakirdan/php-runner/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH game server and HTTP leaderboard",
	Long: `Start an SSH server that lets users connect and play, plus an HTTP
API serving the shared leaderboard.

Each SSH connection gets its own session with a game picker menu.
Scores are stored per-server (all users share the same leaderboard).
Pass an empty address to disable either server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.runner/host_key

HTTP endpoints:
  GET /healthz
  GET /api/games
  GET /api/scores/<game>?limit=N
  GET /api/scores/<game>/stats

Examples:
  runner serve                           # SSH on :23234, HTTP on :8080
  runner serve --ssh :2222 --http ""     # SSH only, on port 2222
  runner serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", env.SSHAddr, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", env.HTTPAddr, "HTTP leaderboard address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return fmt.Errorf("nothing to serve: both --ssh and --http are empty")
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	configureGames(logger)
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var servers []func(context.Context) error

	if flagSSHAddr != "" {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = flagSSHAddr
		sshCfg.HostKeyPath = flagHostKey
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		sshCfg.TickRate = flagFPS

		sshServer, err := tui.NewSSHServer(sshCfg, store, logger)
		if err != nil {
			return fmt.Errorf("error creating SSH server: %w", err)
		}
		servers = append(servers, sshServer.ListenAndServe)
	}
	if flagHTTPAddr != "" {
		var scores web.ScoreStore
		if store != nil {
			scores = store
		}
		servers = append(servers, web.NewServer(flagHTTPAddr, scores, logger).ListenAndServe)
	}

	// The first server to fail stops the others
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for _, serve := range servers {
		serve := serve
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := serve(ctx); err != nil {
				errOnce.Do(func() { firstErr = err })
				cancel()
			}
		}()
	}

	logger.Info("press Ctrl+C to stop")
	wg.Wait()
	return firstErr
}
