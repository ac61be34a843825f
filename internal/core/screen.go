package core

import (
	"strings"
)

// Cell is one character position on the screen.
type Cell struct {
	Rune rune
	Fg   Color
	Bg   Color
}

// blank is the cleared cell.
var blank = Cell{Rune: ' '}

// Screen is a 2D cell buffer for rendering game graphics.
// Games draw into it; the platform converts it into terminal output.
type Screen struct {
	width  int
	height int
	cells  []Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions and clears it.
func (s *Screen) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == s.width && height == s.height && s.cells != nil {
		return
	}
	s.width = width
	s.height = height
	s.cells = make([]Cell, width*height)
	s.Clear()
}

// Clear fills the entire screen with blank cells.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

// FillBg sets the background color of every cell.
func (s *Screen) FillBg(c Color) {
	for i := range s.cells {
		s.cells[i].Bg = c
	}
}

func (s *Screen) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Set places a rune at the given position, keeping the cell's colors.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y*s.width+x].Rune = r
}

// SetColored places a rune with a foreground color, keeping the background.
func (s *Screen) SetColored(x, y int, r rune, fg Color) {
	if !s.inBounds(x, y) {
		return
	}
	c := &s.cells[y*s.width+x]
	c.Rune = r
	c.Fg = fg
}

// SetCell replaces the cell at the given position.
func (s *Screen) SetCell(x, y int, c Cell) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y*s.width+x] = c
}

// SetBg changes only the background color at the given position.
func (s *Screen) SetBg(x, y int, bg Color) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y*s.width+x].Bg = bg
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inBounds(x, y) {
		return blank
	}
	return s.cells[y*s.width+x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r)
		i++
	}
}

// DrawTextColored writes a string with a foreground color.
func (s *Screen) DrawTextColored(x, y int, text string, fg Color) {
	i := 0
	for _, r := range text {
		s.SetColored(x+i, y, r, fg)
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text)
}

// FillRect fills a rectangular area with the given cell.
func (s *Screen) FillRect(r CellRect, c Cell) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetCell(x, y, c)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r CellRect) {
	s.Set(r.X, r.Y, '┌')
	s.Set(r.Right()-1, r.Y, '┐')
	s.Set(r.X, r.Bottom()-1, '└')
	s.Set(r.Right()-1, r.Bottom()-1, '┘')

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.Set(x, r.Y, '─')
		s.Set(x, r.Bottom()-1, '─')
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.Set(r.X, y, '│')
		s.Set(r.Right()-1, y, '│')
	}
}

// DrawHLine draws a horizontal line from (x, y) with the given length.
func (s *Screen) DrawHLine(x, y, length int, r rune, fg Color) {
	for i := 0; i < length; i++ {
		s.SetColored(x+i, y, r, fg)
	}
}

// DrawSprite blits a sprite with its top-left corner at (x, y).
// Transparent sprite cells leave the screen untouched; opaque cells keep
// the existing background when their own background is ColorDefault.
func (s *Screen) DrawSprite(x, y int, sp Sprite) {
	for sy := 0; sy < sp.H; sy++ {
		for sx := 0; sx < sp.W; sx++ {
			c, ok := sp.At(sx, sy)
			if !ok {
				continue
			}
			if c.Bg == ColorDefault {
				c.Bg = s.GetCell(x+sx, y+sy).Bg
			}
			s.SetCell(x+sx, y+sy, c)
		}
	}
}

// String converts the screen buffer to plain text, rows joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	row := make([]rune, s.width)
	for x := range row {
		row[x] = s.cells[y*s.width+x].Rune
	}
	return string(row)
}

// Sprite is a small rectangular cell image.
// Cells with Rune 0 are transparent.
type Sprite struct {
	W, H  int
	Cells []Cell
}

// NewSprite creates a fully transparent sprite.
func NewSprite(w, h int) Sprite {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Sprite{W: w, H: h, Cells: make([]Cell, w*h)}
}

// SolidSprite creates a sprite filled with one cell.
func SolidSprite(w, h int, c Cell) Sprite {
	sp := NewSprite(w, h)
	for i := range sp.Cells {
		sp.Cells[i] = c
	}
	return sp
}

// At returns the cell at (x, y) and whether it is opaque.
func (sp Sprite) At(x, y int) (Cell, bool) {
	if x < 0 || x >= sp.W || y < 0 || y >= sp.H {
		return Cell{}, false
	}
	c := sp.Cells[y*sp.W+x]
	return c, c.Rune != 0
}

// Set replaces the cell at (x, y).
func (sp Sprite) Set(x, y int, c Cell) {
	if x < 0 || x >= sp.W || y < 0 || y >= sp.H {
		return
	}
	sp.Cells[y*sp.W+x] = c
}

// Mirror returns a horizontally flipped copy of the sprite.
func (sp Sprite) Mirror() Sprite {
	out := NewSprite(sp.W, sp.H)
	for y := 0; y < sp.H; y++ {
		for x := 0; x < sp.W; x++ {
			out.Cells[y*sp.W+(sp.W-1-x)] = sp.Cells[y*sp.W+x]
		}
	}
	return out
}
