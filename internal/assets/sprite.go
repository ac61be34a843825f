package assets

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/php-runner/internal/core"
)

// Half-block glyphs: each terminal cell shows two vertically stacked pixels.
const (
	upperHalf = '▀'
	lowerHalf = '▄'
)

// alphaThreshold is the 8-bit alpha below which a pixel counts as transparent.
const alphaThreshold = 128

// CellSprite scales img to w×h cells and quantizes it to terminal colors.
// Each cell packs two source rows using half blocks. Fully transparent cell
// pairs stay transparent; a single transparent half keeps the screen
// background showing through.
func CellSprite(img image.Image, w, h int) core.Sprite {
	sp := core.NewSprite(w, h)
	if img == nil || w <= 0 || h <= 0 {
		return sp
	}

	px := image.NewRGBA(image.Rect(0, 0, w, h*2))
	xdraw.NearestNeighbor.Scale(px, px.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			top, topOK := opaque(px.RGBAAt(x, y*2))
			bottom, bottomOK := opaque(px.RGBAAt(x, y*2+1))
			switch {
			case topOK && bottomOK:
				sp.Set(x, y, core.Cell{Rune: upperHalf, Fg: core.NearestColor(top), Bg: core.NearestColor(bottom)})
			case topOK:
				sp.Set(x, y, core.Cell{Rune: upperHalf, Fg: core.NearestColor(top)})
			case bottomOK:
				sp.Set(x, y, core.Cell{Rune: lowerHalf, Fg: core.NearestColor(bottom)})
			}
		}
	}
	return sp
}

// opaque un-premultiplies c and reports whether it is visible.
func opaque(c color.RGBA) (color.RGBA, bool) {
	if c.A < alphaThreshold {
		return color.RGBA{}, false
	}
	if c.A == 255 {
		return c, true
	}
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * 255 / a),
		G: uint8(uint32(c.G) * 255 / a),
		B: uint8(uint32(c.B) * 255 / a),
		A: 255,
	}, true
}
