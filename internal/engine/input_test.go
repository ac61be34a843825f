package engine

import (
	"testing"

	"github.com/vovakirdan/php-runner/internal/core"
)

func TestMapperByStatus(t *testing.T) {
	m := NewMapper()
	for _, src := range []Source{SourceKey, SourceTouch, SourceMouse} {
		m.Bind(src)
	}

	tests := []struct {
		name   string
		ev     Event
		status core.Status
		want   core.Action
	}{
		{"space running", KeyEvent(" "), core.StatusRunning, core.ActionJump},
		{"space name running", KeyEvent("space"), core.StatusRunning, core.ActionJump},
		{"touch running", Event{Source: SourceTouch}, core.StatusRunning, core.ActionJump},
		{"mouse running", Event{Source: SourceMouse}, core.StatusRunning, core.ActionJump},
		{"space game over", KeyEvent(" "), core.StatusGameOver, core.ActionRestart},
		{"touch game over", Event{Source: SourceTouch}, core.StatusGameOver, core.ActionRestart},
		{"mouse game over", Event{Source: SourceMouse}, core.StatusGameOver, core.ActionRestart},
		{"space loading", KeyEvent(" "), core.StatusLoading, core.ActionNone},
		{"mouse loading", Event{Source: SourceMouse}, core.StatusLoading, core.ActionNone},
		{"other key", KeyEvent("a"), core.StatusRunning, core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.Map(tc.ev, tc.status); got != tc.want {
				t.Errorf("Map() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestMapperCustomJumpKeys(t *testing.T) {
	m := NewMapper("up", "w")
	m.Bind(SourceKey)

	if got := m.Map(KeyEvent("w"), core.StatusRunning); got != core.ActionJump {
		t.Errorf("w = %v, expected Jump", got)
	}
	if got := m.Map(KeyEvent(" "), core.StatusRunning); got != core.ActionNone {
		t.Errorf("space = %v, default keys should be replaced", got)
	}
	if !m.IsJumpKey("up") || m.IsJumpKey("space") {
		t.Error("IsJumpKey disagrees with configured keys")
	}
}

func TestBindingRelease(t *testing.T) {
	m := NewMapper()
	a := m.Bind(SourceMouse)
	b := m.Bind(SourceMouse)

	if a.Source() != SourceMouse {
		t.Errorf("Source() = %v", a.Source())
	}

	a.Release()
	if !m.Bound(SourceMouse) {
		t.Fatal("second binding should keep the source alive")
	}
	a.Release()
	b.Release()
	if m.Bound(SourceMouse) {
		t.Fatal("source should be unbound after all bindings released")
	}
	if got := m.Map(Event{Source: SourceMouse}, core.StatusRunning); got != core.ActionNone {
		t.Errorf("unbound source mapped to %v", got)
	}
}

func TestReleaseAll(t *testing.T) {
	m := NewMapper()
	keys := m.Bind(SourceKey)
	m.Bind(SourceTouch)

	m.ReleaseAll()
	for _, src := range []Source{SourceKey, SourceTouch, SourceMouse} {
		if m.Bound(src) {
			t.Errorf("%v still bound", src)
		}
	}
	if got := m.Map(KeyEvent(" "), core.StatusRunning); got != core.ActionNone {
		t.Errorf("event after ReleaseAll mapped to %v", got)
	}
	keys.Release() // already gone
}

func TestSourceString(t *testing.T) {
	tests := map[Source]string{
		SourceKey:   "key",
		SourceTouch: "touch",
		SourceMouse: "mouse",
		Source(42):  "unknown",
	}
	for src, want := range tests {
		if got := src.String(); got != want {
			t.Errorf("Source(%d).String() = %q, expected %q", int(src), got, want)
		}
	}
}
