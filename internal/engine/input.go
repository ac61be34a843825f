package engine

import (
	"sync"

	"github.com/vovakirdan/php-runner/internal/core"
)

// Source identifies the kind of device an input event came from.
type Source int

const (
	SourceKey Source = iota
	SourceTouch
	SourceMouse
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case SourceKey:
		return "key"
	case SourceTouch:
		return "touch"
	case SourceMouse:
		return "mouse"
	default:
		return "unknown"
	}
}

// Event is a raw input occurrence reported by a host: a key press,
// a touch start or a mouse button press. Key is only set for SourceKey.
type Event struct {
	Source Source
	Key    string
}

// KeyEvent is shorthand for a key press event.
func KeyEvent(key string) Event {
	return Event{Source: SourceKey, Key: key}
}

// DefaultJumpKeys are the keys that trigger a jump when none are configured.
var DefaultJumpKeys = []string{" ", "space"}

// Mapper turns raw input events into game actions.
// A source only produces actions while it holds at least one Binding.
// Every bound source means the same thing: Jump while running and
// Restart after the run ended. Nothing is mapped while loading.
type Mapper struct {
	mu       sync.Mutex
	jumpKeys map[string]bool
	bindings map[*Binding]struct{}
}

// NewMapper creates a mapper with the given jump keys, or DefaultJumpKeys.
func NewMapper(jumpKeys ...string) *Mapper {
	if len(jumpKeys) == 0 {
		jumpKeys = DefaultJumpKeys
	}
	m := &Mapper{
		jumpKeys: make(map[string]bool, len(jumpKeys)),
		bindings: make(map[*Binding]struct{}),
	}
	for _, k := range jumpKeys {
		m.jumpKeys[k] = true
	}
	return m
}

// Binding is a scoped subscription of one input source.
type Binding struct {
	mapper *Mapper
	source Source
}

// Source returns the bound input source.
func (b *Binding) Source() Source {
	return b.source
}

// Release drops the binding. Releasing twice is harmless.
func (b *Binding) Release() {
	b.mapper.mu.Lock()
	defer b.mapper.mu.Unlock()
	delete(b.mapper.bindings, b)
}

// Bind subscribes a source. Events from it are mapped until the
// returned binding is released.
func (m *Mapper) Bind(src Source) *Binding {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := &Binding{mapper: m, source: src}
	m.bindings[b] = struct{}{}
	return b
}

// ReleaseAll drops every binding; later events map to nothing.
func (m *Mapper) ReleaseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.bindings)
}

// Bound reports whether src currently has a binding.
func (m *Mapper) Bound(src Source) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bound(src)
}

func (m *Mapper) bound(src Source) bool {
	for b := range m.bindings {
		if b.source == src {
			return true
		}
	}
	return false
}

// IsJumpKey reports whether key is one of the configured jump keys.
func (m *Mapper) IsJumpKey(key string) bool {
	return m.jumpKeys[key]
}

// Map returns the action ev stands for while the game is in status.
func (m *Mapper) Map(ev Event, status core.Status) core.Action {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.bound(ev.Source) {
		return core.ActionNone
	}
	if ev.Source == SourceKey && !m.jumpKeys[ev.Key] {
		return core.ActionNone
	}

	switch status {
	case core.StatusRunning:
		return core.ActionJump
	case core.StatusGameOver:
		return core.ActionRestart
	default:
		return core.ActionNone
	}
}
