package core

import (
	"image/color"
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorRed)
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Fg != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red 'X'", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenSetKeepsBackground(t *testing.T) {
	s := NewScreen(4, 1)
	s.FillBg(ColorNavy)
	s.SetColored(1, 0, '#', ColorRed)

	if c := s.GetCell(1, 0); c.Bg != ColorNavy {
		t.Errorf("SetColored should keep background, got %v", c.Bg)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillRect(CellRect{W: 10, H: 10}, Cell{Rune: 'X', Bg: ColorBlue})
	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("After Clear, expected blank at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 5)
	s.Set(0, 0, 'X')
	s.Resize(20, 8)

	if s.Width() != 20 || s.Height() != 8 {
		t.Fatalf("Resize gave %dx%d, expected 20x8", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Error("Resize should clear the buffer")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawText(2, 1, "Score: 7")

	if got := strings.TrimSpace(s.Row(1)); got != "Score: 7" {
		t.Errorf("Row(1) = %q, expected %q", got, "Score: 7")
	}

	// Clipped at the right edge
	s.DrawText(17, 0, "abcdef")
	if got := s.Row(0)[17:]; got != "abc" {
		t.Errorf("clipped text = %q, expected %q", got, "abc")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(CellRect{W: 5, H: 3})

	expected := "┌───┐\n│   │\n└───┘"
	if s.String() != expected {
		t.Errorf("DrawBox produced:\n%s\nexpected:\n%s", s.String(), expected)
	}
}

func TestScreenDrawSpriteTransparency(t *testing.T) {
	s := NewScreen(3, 1)
	s.FillBg(ColorBlue)

	sp := NewSprite(3, 1)
	sp.Set(0, 0, Cell{Rune: '█', Fg: ColorYellow})
	sp.Set(2, 0, Cell{Rune: '█', Fg: ColorRed, Bg: ColorGreen})
	s.DrawSprite(0, 0, sp)

	if c := s.GetCell(0, 0); c.Fg != ColorYellow || c.Bg != ColorBlue {
		t.Errorf("opaque cell with default bg should keep screen bg, got %+v", c)
	}
	if c := s.GetCell(1, 0); c.Rune != ' ' {
		t.Errorf("transparent cell should not draw, got %+v", c)
	}
	if c := s.GetCell(2, 0); c.Bg != ColorGreen {
		t.Errorf("sprite background should win, got %+v", c)
	}
}

func TestSpriteMirror(t *testing.T) {
	sp := NewSprite(3, 2)
	sp.Set(0, 0, Cell{Rune: 'a'})
	sp.Set(2, 1, Cell{Rune: 'b'})

	m := sp.Mirror()
	if c, ok := m.At(2, 0); !ok || c.Rune != 'a' {
		t.Errorf("mirrored (2,0) = %+v, expected 'a'", c)
	}
	if c, ok := m.At(0, 1); !ok || c.Rune != 'b' {
		t.Errorf("mirrored (0,1) = %+v, expected 'b'", c)
	}
	if _, ok := m.At(0, 0); ok {
		t.Error("mirrored (0,0) should be transparent")
	}
	// Original untouched
	if c, _ := sp.At(0, 0); c.Rune != 'a' {
		t.Error("Mirror should not modify the source sprite")
	}
}

func TestNearestColor(t *testing.T) {
	tests := []struct {
		in   color.Color
		want Color
	}{
		{color.RGBA{250, 5, 5, 255}, ColorBrightRed},
		{color.RGBA{0, 0, 0, 255}, ColorBlack},
		{color.RGBA{255, 255, 250, 255}, ColorBrightWhite},
		{color.RGBA{0, 0, 90, 255}, ColorNavy},
	}

	for _, tc := range tests {
		if got := NearestColor(tc.in); got != tc.want {
			t.Errorf("NearestColor(%v) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() {
		t.Error("zero frame should be empty")
	}

	f.Set(ActionJump)
	f.Set(ActionNone)
	if !f.Has(ActionJump) || f.Has(ActionRestart) || f.Has(ActionNone) {
		t.Errorf("unexpected frame contents: jump=%v restart=%v", f.Has(ActionJump), f.Has(ActionRestart))
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
}
