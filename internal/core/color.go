package core

import "image/color"

// Color represents a screen cell color.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorNavy
	ColorPurple
)

// ANSI returns the ANSI 256-color code for c, or "" for the terminal default.
func (c Color) ANSI() string {
	if int(c) >= len(ansiCodes) {
		return ""
	}
	return ansiCodes[c]
}

var ansiCodes = [...]string{
	ColorDefault:       "",
	ColorBlack:         "0",
	ColorRed:           "1",
	ColorGreen:         "2",
	ColorYellow:        "3",
	ColorBlue:          "4",
	ColorMagenta:       "5",
	ColorCyan:          "6",
	ColorWhite:         "7",
	ColorBrightRed:     "9",
	ColorBrightGreen:   "10",
	ColorBrightYellow:  "11",
	ColorBrightBlue:    "12",
	ColorBrightMagenta: "13",
	ColorBrightCyan:    "14",
	ColorBrightWhite:   "15",
	ColorOrange:        "208",
	ColorGray:          "245",
	ColorNavy:          "17",
	ColorPurple:        "93",
}

// palette holds the approximate RGB value of every non-default color.
// Used to quantize sprite pixels into terminal cells.
var palette = []struct {
	c   Color
	rgb color.RGBA
}{
	{ColorBlack, color.RGBA{0, 0, 0, 255}},
	{ColorRed, color.RGBA{205, 0, 0, 255}},
	{ColorGreen, color.RGBA{0, 205, 0, 255}},
	{ColorYellow, color.RGBA{205, 205, 0, 255}},
	{ColorBlue, color.RGBA{0, 0, 238, 255}},
	{ColorMagenta, color.RGBA{205, 0, 205, 255}},
	{ColorCyan, color.RGBA{0, 205, 205, 255}},
	{ColorWhite, color.RGBA{229, 229, 229, 255}},
	{ColorBrightRed, color.RGBA{255, 0, 0, 255}},
	{ColorBrightGreen, color.RGBA{0, 255, 0, 255}},
	{ColorBrightYellow, color.RGBA{255, 255, 0, 255}},
	{ColorBrightBlue, color.RGBA{92, 92, 255, 255}},
	{ColorBrightMagenta, color.RGBA{255, 0, 255, 255}},
	{ColorBrightCyan, color.RGBA{0, 255, 255, 255}},
	{ColorBrightWhite, color.RGBA{255, 255, 255, 255}},
	{ColorOrange, color.RGBA{255, 135, 0, 255}},
	{ColorGray, color.RGBA{138, 138, 138, 255}},
	{ColorNavy, color.RGBA{0, 0, 95, 255}},
	{ColorPurple, color.RGBA{135, 0, 255, 255}},
}

// RGBA returns the approximate RGB value of c.
// ColorDefault has no fixed value and reports transparent black.
func (c Color) RGBA() color.RGBA {
	for _, p := range palette {
		if p.c == c {
			return p.rgb
		}
	}
	return color.RGBA{}
}

// NearestColor returns the palette color closest to c (squared RGB distance).
func NearestColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	r8, g8, b8 := int(r>>8), int(g>>8), int(b>>8)

	best := ColorBlack
	bestDist := -1
	for _, p := range palette {
		dr := r8 - int(p.rgb.R)
		dg := g8 - int(p.rgb.G)
		db := b8 - int(p.rgb.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best = p.c
			bestDist = d
		}
	}
	return best
}
