// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the hosts
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/vovakirdan/php-runner/internal/core"
)

// ErrUnknownGame is returned by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("unknown game")

// Game is the interface every hosted game implements.
// Games hold pure logic; hosts own timing, input devices and output.
type Game interface {
	// ID returns a unique identifier used by the CLI and score storage.
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Reset initializes the game for a new session.
	// The RuntimeConfig provides the screen size, tick rate and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst. It must not change the state.
	Render(dst *core.Screen)

	// State returns the current score, status and elapsed time.
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
// Unknown IDs yield an error wrapping ErrUnknownGame, with a suggestion
// when a registered ID is close enough.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		if s, found := Suggest(id); found {
			return nil, fmt.Errorf("registry: %w %q (did you mean %q?)", ErrUnknownGame, id, s)
		}
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Suggest returns the registered ID closest to id by edit distance.
// Matching is case-insensitive; nothing is returned when the best
// candidate is too far off to be a typo.
func Suggest(id string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(id))
	if needle == "" {
		return "", false
	}

	best, bestDist := "", -1
	for candidate := range factories {
		dist := levenshtein.ComputeDistance(needle, strings.ToLower(candidate))
		if dist > suggestLimit(len(candidate)) {
			continue
		}
		if bestDist < 0 || dist < bestDist || (dist == bestDist && candidate < best) {
			best, bestDist = candidate, dist
		}
	}
	return best, bestDist >= 0
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
