// Package scene turns a runner frame into a display list of canvas-space
// draw operations. It has no graphics dependency; the window host paints
// the list.
package scene

import (
	"fmt"
	"image/color"

	"github.com/vovakirdan/php-runner/internal/assets"
	"github.com/vovakirdan/php-runner/internal/core"
	"github.com/vovakirdan/php-runner/internal/games/runner"
)

// ItemKind says how a display list item is painted.
type ItemKind int

const (
	ItemImage ItemKind = iota // Named image scaled into Rect
	ItemFill                  // Solid rectangle
	ItemLine                  // Horizontal line along Rect's top edge
	ItemText                  // Debug text at Rect's origin
)

// Item is one draw operation in canvas coordinates.
type Item struct {
	Kind   ItemKind
	Name   string // Image name for ItemImage
	Rect   core.Rect
	Mirror bool // Flip horizontally
	Color  color.RGBA
	Text   string
}

// overlayColor dims the canvas behind loading and game-over notices.
var overlayColor = color.RGBA{0, 0, 0, 0xb0}

const (
	charW       = 6  // Debug font glyph width in pixels
	charH       = 16 // Debug font line height in pixels
	groundWidth = 2.0
)

// Build returns the display list for one frame. hasImage reports which
// named images are available; missing ones become fallback fills.
// Items are ordered back to front.
func Build(f runner.Frame, hasImage func(name string) bool) []Item {
	st := f.State
	canvas := core.NewRect(0, 0, st.CanvasW, st.CanvasH)
	var items []Item

	if hasImage(assets.Background) {
		items = append(items, Item{Kind: ItemImage, Name: assets.Background, Rect: canvas})
	} else {
		items = append(items, Item{Kind: ItemFill, Rect: canvas, Color: runner.FallbackBackground.RGBA()})
	}

	if st.Status == core.StatusLoading {
		return append(items, notice(canvas, "LOADING", "Fetching sprites...")...)
	}

	items = append(items, Item{
		Kind:  ItemLine,
		Rect:  core.NewRect(0, st.GroundY, st.CanvasW, groundWidth),
		Color: runner.GroundColor.RGBA(),
	})

	for _, o := range st.Obstacles {
		items = append(items, sprite(assets.Obstacle, o.Rect(st.GroundY), false, runner.FallbackObstacle, hasImage))
	}
	items = append(items, sprite(assets.Player, st.Player.Rect(), true, runner.FallbackPlayer, hasImage))

	hud := runner.HUDColor.RGBA()
	items = append(items, Item{Kind: ItemText, Rect: core.NewRect(10, 10, 0, 0), Text: fmt.Sprintf("Score: %d", st.Score), Color: hud})
	timeText := fmt.Sprintf("Time: %.1fs", f.Elapsed.Seconds())
	items = append(items, Item{
		Kind:  ItemText,
		Rect:  core.NewRect(st.CanvasW-float64(len(timeText)*charW)-10, 10, 0, 0),
		Text:  timeText,
		Color: hud,
	})

	if st.Status == core.StatusGameOver {
		items = append(items, notice(canvas, "GAME OVER", fmt.Sprintf("Score: %d  -  press space or click to restart", st.Score))...)
	}
	return items
}

func sprite(name string, r core.Rect, mirror bool, fallback core.Color, hasImage func(string) bool) Item {
	if hasImage(name) {
		return Item{Kind: ItemImage, Name: name, Rect: r, Mirror: mirror}
	}
	return Item{Kind: ItemFill, Rect: r, Color: fallback.RGBA()}
}

// notice is a dimmed band across the middle of the canvas with two lines of text.
func notice(canvas core.Rect, title, subtitle string) []Item {
	bandH := float64(charH * 4)
	band := core.NewRect(0, (canvas.H-bandH)/2, canvas.W, bandH)
	centered := func(text string, y float64) Item {
		return Item{
			Kind:  ItemText,
			Rect:  core.NewRect((canvas.W-float64(len(text)*charW))/2, y, 0, 0),
			Text:  text,
			Color: runner.HUDColor.RGBA(),
		}
	}
	return []Item{
		{Kind: ItemFill, Rect: band, Color: overlayColor},
		centered(title, band.Y+charH/2),
		centered(subtitle, band.Y+charH*2),
	}
}
