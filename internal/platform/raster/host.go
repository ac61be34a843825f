// Package raster hosts the runner in a desktop window through ebiten.
package raster

import (
	"image"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/php-runner/internal/core"
	"github.com/vovakirdan/php-runner/internal/engine"
	"github.com/vovakirdan/php-runner/internal/games/runner"
	"github.com/vovakirdan/php-runner/internal/platform/raster/scene"
)

// JumpKeys are the engine key names bound to jumping in the window.
var JumpKeys = []string{" ", "up", "w"}

// keyNames maps ebiten keys to the engine's key names. Keys not listed
// use their lower-cased ebiten name.
var keyNames = map[ebiten.Key]string{
	ebiten.KeySpace:     " ",
	ebiten.KeyArrowUp:   "up",
	ebiten.KeyArrowDown: "down",
	ebiten.KeyEscape:    "esc",
	ebiten.KeyEnter:     "enter",
}

// KeyName returns the engine key name for k.
func KeyName(k ebiten.Key) string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return strings.ToLower(k.String())
}

// Options configures the desktop window.
type Options struct {
	Title  string
	Scale  float64 // Window size relative to the canvas
	Logger *log.Logger
}

// Host implements ebiten.Game for one runner driven by an engine loop.
type Host struct {
	loop   *engine.Loop
	game   *runner.Game
	images map[string]*ebiten.Image
	logger *log.Logger
	keys   []ebiten.Key
	// touches is reused between frames to avoid allocations.
	touches []ebiten.TouchID
}

// NewHost creates a window host. The loop must drive game.
func NewHost(loop *engine.Loop, game *runner.Game, logger *log.Logger) *Host {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Host{
		loop:   loop,
		game:   game,
		images: make(map[string]*ebiten.Image),
		logger: logger,
	}
}

// Update polls input and advances the loop by one tick.
func (h *Host) Update() error {
	if ebiten.IsWindowBeingClosed() || h.loop.Closed() {
		h.loop.Close()
		return ebiten.Termination
	}

	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		switch name := KeyName(k); name {
		case "q", "esc":
			h.loop.Close()
			return ebiten.Termination
		case "r":
			h.loop.Trigger(core.ActionRestart)
		default:
			h.loop.Dispatch(engine.KeyEvent(name))
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.loop.Dispatch(engine.Event{Source: engine.SourceMouse})
	}
	h.touches = inpututil.AppendJustPressedTouchIDs(h.touches[:0])
	if len(h.touches) > 0 {
		h.loop.Dispatch(engine.Event{Source: engine.SourceTouch})
	}

	h.loop.Tick()
	return nil
}

// Draw paints the current frame.
func (h *Host) Draw(screen *ebiten.Image) {
	for _, it := range scene.Build(h.game.Snapshot(), h.hasImage) {
		switch it.Kind {
		case scene.ItemImage:
			h.drawImage(screen, it)
		case scene.ItemFill:
			vector.DrawFilledRect(screen, float32(it.Rect.X), float32(it.Rect.Y),
				float32(it.Rect.W), float32(it.Rect.H), it.Color, false)
		case scene.ItemLine:
			vector.StrokeLine(screen, float32(it.Rect.X), float32(it.Rect.Y),
				float32(it.Rect.Right()), float32(it.Rect.Y), float32(it.Rect.H), it.Color, false)
		case scene.ItemText:
			ebitenutil.DebugPrintAt(screen, it.Text, int(it.Rect.X), int(it.Rect.Y))
		}
	}
}

// Layout keeps the logical canvas size; ebiten scales it to the window.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := h.game.Config()
	return int(cfg.Canvas.Width), int(cfg.Canvas.Height)
}

// hasImage reports whether the loader produced the named image.
func (h *Host) hasImage(name string) bool {
	loader := h.game.Assets()
	if loader == nil {
		return false
	}
	_, ok := loader.Image(name)
	return ok
}

// image returns the GPU copy of a loaded image, converting it once.
func (h *Host) image(name string) *ebiten.Image {
	if img, ok := h.images[name]; ok {
		return img
	}
	src, ok := h.game.Assets().Image(name)
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	h.images[name] = img
	return img
}

func (h *Host) drawImage(screen *ebiten.Image, it scene.Item) {
	img := h.image(it.Name)
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(it.Rect.W/float64(b.Dx()), it.Rect.H/float64(b.Dy()))
	if it.Mirror {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(it.Rect.W, 0)
	}
	op.GeoM.Translate(math.Round(it.Rect.X), math.Round(it.Rect.Y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// windowSize returns the initial window size for a canvas and scale.
func windowSize(canvas image.Point, scale float64) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	return int(float64(canvas.X) * scale), int(float64(canvas.Y) * scale)
}

// Run opens a window and drives the loop until the window is closed or
// the player quits. The loop is closed on return.
func Run(loop *engine.Loop, game *runner.Game, opts Options) error {
	defer loop.Close()

	cfg := game.Config()
	w, h := windowSize(image.Pt(int(cfg.Canvas.Width), int(cfg.Canvas.Height)), opts.Scale)
	title := opts.Title
	if title == "" {
		title = game.Title()
	}

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(loop.Runtime().TickRate)

	host := NewHost(loop, game, opts.Logger)
	host.logger.Info("opening window", "title", title, "width", w, "height", h)
	return ebiten.RunGame(host)
}
