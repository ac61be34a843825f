package runner

import (
	"fmt"
	"image"

	"github.com/vovakirdan/php-runner/internal/assets"
	"github.com/vovakirdan/php-runner/internal/core"
)

// Glyphs and fallback colors used when an image is unavailable.
const (
	GroundChar   = '═'
	FallbackChar = '█'

	FallbackBackground = core.ColorNavy
	FallbackObstacle   = core.ColorRed
	FallbackPlayer     = core.ColorBrightYellow
	GroundColor        = core.ColorGray
	HUDColor           = core.ColorBrightWhite
)

// Render draws the current game state to the screen.
// It only reads simulation state; the sprite cache is render-side memory.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}
	st := g.sim.State()
	vp := core.NewViewport(st.CanvasW, st.CanvasH, dst.Width(), dst.Height())

	g.drawBackground(dst)

	if st.Status == core.StatusLoading {
		drawCenteredMessage(dst, "LOADING", "Fetching sprites...")
		return
	}

	groundRow := vp.Y(st.GroundY)
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, GroundColor)

	for _, o := range st.Obstacles {
		g.drawRect(dst, vp.Cells(o.Rect(st.GroundY)), assets.Obstacle, false, FallbackObstacle)
	}
	g.drawRect(dst, vp.Cells(st.Player.Rect()), assets.Player, true, FallbackPlayer)

	state := g.State()
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", state.Score), HUDColor)
	timeText := fmt.Sprintf(" Time: %.1fs ", state.Elapsed.Seconds())
	dst.DrawTextColored(dst.Width()-len(timeText)-2, 0, timeText, HUDColor)

	if st.Status == core.StatusGameOver {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Space/click to restart", st.Score))
	}
}

// drawBackground paints the background image across the whole screen,
// or a solid color when it is unavailable.
func (g *Game) drawBackground(dst *core.Screen) {
	img, ok := g.image(assets.Background)
	if !ok {
		dst.FillBg(FallbackBackground)
		return
	}
	sp := g.sprites.get(assets.Background, img, dst.Width(), dst.Height(), false)
	// Background cells become cell backgrounds so text drawn later stays readable.
	for y := 0; y < sp.H; y++ {
		for x := 0; x < sp.W; x++ {
			c, opaque := sp.At(x, y)
			if !opaque {
				dst.SetBg(x, y, FallbackBackground)
				continue
			}
			dst.SetBg(x, y, c.Fg)
		}
	}
}

// drawRect draws a named sprite into r, or fills r with the fallback color.
func (g *Game) drawRect(dst *core.Screen, r core.CellRect, name string, mirror bool, fallback core.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	if img, ok := g.image(name); ok {
		dst.DrawSprite(r.X, r.Y, g.sprites.get(name, img, r.W, r.H, mirror))
		return
	}
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x, y, FallbackChar, fallback)
		}
	}
}

func (g *Game) image(name string) (image.Image, bool) {
	if g.loader == nil {
		return nil, false
	}
	return g.loader.Image(name)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.CellRect{X: (w - boxW) / 2, Y: (h - boxH) / 2, W: boxW, H: boxH}

	dst.FillRect(box, core.Cell{Rune: ' ', Bg: core.ColorBlack})
	dst.DrawBox(box)

	dst.DrawTextColored(box.X+(boxW-len(title))/2, box.Y+1, title, HUDColor)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}

// spriteKey identifies one scaled rendition of an image.
type spriteKey struct {
	name   string
	w, h   int
	mirror bool
}

// spriteCache keeps scaled cell sprites so images are not resampled every frame.
type spriteCache struct {
	sprites map[spriteKey]core.Sprite
}

func (c *spriteCache) reset() {
	c.sprites = make(map[spriteKey]core.Sprite)
}

func (c *spriteCache) get(name string, img image.Image, w, h int, mirror bool) core.Sprite {
	if c.sprites == nil {
		c.reset()
	}
	key := spriteKey{name: name, w: w, h: h, mirror: mirror}
	if sp, ok := c.sprites[key]; ok {
		return sp
	}
	sp := assets.CellSprite(img, w, h)
	if mirror {
		sp = sp.Mirror()
	}
	c.sprites[key] = sp
	return sp
}
