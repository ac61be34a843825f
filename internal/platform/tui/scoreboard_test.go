package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/php-runner/internal/storage"
)

func boardUpdate(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestScoreboardViewsAndMarks(t *testing.T) {
	store := openStore(t)
	for _, r := range []storage.Run{
		{GameID: "hop", Player: "ada", Score: 9, Duration: time.Second},
		{GameID: "hop", Player: "bob", Score: 3, Duration: time.Second},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, "ada", 100, 30)
	if m.view != viewTop || len(m.entries) != 2 || m.entries[0].Player != "ada" {
		t.Fatalf("top view entries = %+v", m.entries)
	}
	if rows := m.table.Rows(); rows[0][1] != "ada *" || rows[1][1] != "bob" {
		t.Errorf("player column = %q, %q", rows[0][1], rows[1][1])
	}

	m = boardUpdate(t, m, keyMsg("tab"))
	if m.view != viewRecent || m.entries[0].Player != "bob" {
		t.Errorf("recent view entries = %+v", m.entries)
	}
	if m.stats == nil || m.stats.GamesCount != 2 {
		t.Errorf("stats = %+v", m.stats)
	}
	if v := m.View(); !strings.Contains(v, "Recent runs") || !strings.Contains(v, "Stats") {
		t.Errorf("wide view missing tabs or stats panel:\n%s", v)
	}
}

func TestScoreboardNarrowAndEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, "", 60, 20)
	v := m.View()
	if !strings.Contains(v, "not being recorded") {
		t.Errorf("nil store should say so:\n%s", v)
	}
	if strings.Contains(v, "Stats") {
		t.Error("narrow view should not draw the stats panel")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := boardUpdate(t, NewScoreboardModel(nil, "", 80, 24), keyMsg("b"))
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("b should go back")
	}
	m = boardUpdate(t, NewScoreboardModel(nil, "", 80, 24), keyMsg("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit and blank the view")
	}
}

func TestMenuShowsStats(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveRun(storage.Run{GameID: "hop", Score: 4}); err != nil {
		t.Fatal(err)
	}
	m := NewMenuModel(store, testCfg)
	if m.items[0].HighScore != 4 || m.items[0].Runs != 1 {
		t.Fatalf("item = %+v", m.items[0])
	}
	if !strings.Contains(m.View(), "best 4, 1 runs") {
		t.Errorf("menu view missing stats:\n%s", m.View())
	}
}
