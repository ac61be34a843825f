package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by the CLI.
const (
	EnvDBPath   = "RUNNER_DB"
	EnvAssets   = "RUNNER_ASSETS"
	EnvSSHAddr  = "RUNNER_SSH_ADDR"
	EnvHTTPAddr = "RUNNER_HTTP_ADDR"
	EnvLogLevel = "RUNNER_LOG_LEVEL"
)

// Env holds process-level settings that are not part of the game config.
type Env struct {
	DBPath   string
	Assets   string
	SSHAddr  string
	HTTPAddr string
	LogLevel string
}

// DefaultEnv returns the settings used when nothing is set.
func DefaultEnv() Env {
	return Env{
		DBPath:   "~/.runner/scores.db",
		Assets:   ".",
		SSHAddr:  ":23234",
		HTTPAddr: ":8080",
		LogLevel: "info",
	}
}

// LoadEnv reads .env style files into the process environment and returns
// the resulting settings. Missing files are skipped; variables already set
// in the environment win over file values.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return DefaultEnv(), fmt.Errorf("config: failed to load %s: %w", f, err)
		}
	}
	return EnvFromProcess(), nil
}

// EnvFromProcess builds settings from the current environment.
func EnvFromProcess() Env {
	env := DefaultEnv()
	env.DBPath = lookup(EnvDBPath, env.DBPath)
	env.Assets = lookup(EnvAssets, env.Assets)
	env.SSHAddr = lookup(EnvSSHAddr, env.SSHAddr)
	env.HTTPAddr = lookup(EnvHTTPAddr, env.HTTPAddr)
	env.LogLevel = lookup(EnvLogLevel, env.LogLevel)
	return env
}

func lookup(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
