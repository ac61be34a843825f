package main

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/php-runner/internal/core"
	"github.com/vovakirdan/php-runner/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestListShowsRunner(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "runner") || !strings.Contains(out, "PHP Runner") {
		t.Errorf("list output missing runner:\n%s", out)
	}
}

func TestScoresUnknownGameSuggests(t *testing.T) {
	_, err := execute(t, "scores", "runer", "--db", filepath.Join(t.TempDir(), "s.db"))
	if err == nil {
		t.Fatal("expected error for unknown game")
	}
	if !strings.Contains(err.Error(), `did you mean "runner"`) {
		t.Errorf("error = %v", err)
	}
}

func TestScoresJSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "s.db")
	store, err := storage.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	hook := recordRun(store, "runner", "ada", log.New(io.Discard))
	hook(core.GameState{Score: 4, Elapsed: 3 * time.Second})
	hook(core.GameState{Score: 0}) // not recorded
	store.Close()

	out, err := execute(t, "scores", "runner", "--db", db, "--json")
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	var entries []storage.ScoreEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(entries) != 1 || entries[0].Player != "ada" || entries[0].Score != 4 {
		t.Errorf("entries = %+v", entries)
	}
	flagJSON = false
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	flagLogLevel = "loud"
	defer func() { flagLogLevel = "info" }()
	if _, _, err := newLogger(false); err == nil {
		t.Error("expected error for invalid level")
	}
}
