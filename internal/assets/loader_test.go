package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/vovakirdan/php-runner/internal/core"
)

// encodePNG builds a w×h PNG filled by fill(x, y).
func encodePNG(t *testing.T, w, h int, fill func(x, y int) color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill(x, y))
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	return buf.Bytes()
}

func solid(c color.Color) func(x, y int) color.Color {
	return func(int, int) color.Color { return c }
}

func waitDone(t *testing.T, l *Loader) {
	t.Helper()
	select {
	case <-l.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("loader never settled")
	}
}

func TestLoaderLoadsAllImages(t *testing.T) {
	fsys := fstest.MapFS{
		"sprites/php.png":        {Data: encodePNG(t, 8, 8, solid(color.RGBA{0, 0, 255, 255}))},
		"sprites/obstacle.png":   {Data: encodePNG(t, 4, 4, solid(color.RGBA{255, 0, 0, 255}))},
		"sprites/background.png": {Data: encodePNG(t, 16, 8, solid(color.RGBA{0, 0, 95, 255}))},
	}
	l := NewLoader(fsys, []Spec{
		{Name: Player, Path: "sprites/php.png"},
		{Name: Obstacle, Path: "sprites/obstacle.png"},
		{Name: Background, Path: "sprites/background.png"},
	}, nil)

	if l.Ready() {
		t.Fatal("loader should not be ready before Start")
	}

	l.Start(context.Background(), time.Second)
	waitDone(t, l)

	if !l.Ready() {
		t.Error("Ready() should be true after Done closes")
	}
	for _, name := range []string{Player, Obstacle, Background} {
		img, ok := l.Image(name)
		if !ok {
			t.Errorf("Image(%q) missing: %v", name, l.Err(name))
			continue
		}
		if img.Bounds().Dx() == 0 {
			t.Errorf("Image(%q) is empty", name)
		}
	}
	if failed := l.Failed(); len(failed) != 0 {
		t.Errorf("Failed() = %v, expected none", failed)
	}
}

func TestLoaderFailuresStillSettle(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.png": {Data: []byte("not an image")},
	}
	l := NewLoader(fsys, []Spec{
		{Name: Player, Path: "missing.png"},
		{Name: Obstacle, Path: "broken.png"},
		{Name: Background, Path: ""},
	}, nil)
	l.Start(context.Background(), 0)
	waitDone(t, l)

	if _, ok := l.Image(Player); ok {
		t.Error("missing file should not produce an image")
	}
	if err := l.Err(Player); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Err(player) = %v, expected fs.ErrNotExist", err)
	}
	if err := l.Err(Obstacle); err == nil {
		t.Error("undecodable file should report an error")
	}
	if err := l.Err(Background); !errors.Is(err, ErrNoPath) {
		t.Errorf("Err(background) = %v, expected ErrNoPath", err)
	}
	if got := l.Failed(); len(got) != 3 {
		t.Errorf("Failed() = %v, expected 3 names", got)
	}
	if err := l.Err("music"); !errors.Is(err, ErrUnknownAsset) {
		t.Errorf("Err(unknown) = %v, expected ErrUnknownAsset", err)
	}
}

// blockingFS never returns from Open until release is closed.
type blockingFS struct {
	release chan struct{}
}

func (b blockingFS) Open(name string) (fs.File, error) {
	<-b.release
	return nil, fs.ErrNotExist
}

func TestLoaderTimeout(t *testing.T) {
	fsys := blockingFS{release: make(chan struct{})}
	defer close(fsys.release)

	l := NewLoader(fsys, []Spec{{Name: Player, Path: "php.png"}}, nil)
	l.Start(context.Background(), 20*time.Millisecond)
	waitDone(t, l)

	if err := l.Err(Player); !errors.Is(err, ErrLoadTimeout) {
		t.Errorf("Err(player) = %v, expected ErrLoadTimeout", err)
	}
	if !errors.Is(l.Err(Player), context.DeadlineExceeded) {
		t.Error("timeout error should wrap the context cause")
	}
}

func TestLoaderStartIsIdempotent(t *testing.T) {
	fsys := fstest.MapFS{"a.png": {Data: encodePNG(t, 2, 2, solid(color.White))}}
	l := NewLoader(fsys, []Spec{{Name: Player, Path: "a.png"}}, nil)

	l.Start(context.Background(), 0)
	l.Start(context.Background(), 0) // must not panic on double close
	waitDone(t, l)

	if _, ok := l.Image(Player); !ok {
		t.Error("image should load")
	}
}

func TestLoaderNoSpecs(t *testing.T) {
	l := NewLoader(fstest.MapFS{}, nil, nil)
	l.Start(context.Background(), 0)
	waitDone(t, l)
}

func TestCellSpriteHalfBlocks(t *testing.T) {
	// Top half red, bottom half transparent.
	data := encodePNG(t, 4, 4, func(x, y int) color.Color {
		if y < 2 {
			return color.RGBA{255, 0, 0, 255}
		}
		return color.RGBA{}
	})
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	sp := CellSprite(img, 2, 1)
	if sp.W != 2 || sp.H != 1 {
		t.Fatalf("sprite size = %dx%d, expected 2x1", sp.W, sp.H)
	}
	for x := 0; x < 2; x++ {
		c, ok := sp.At(x, 0)
		if !ok {
			t.Fatalf("cell %d should be opaque", x)
		}
		if c.Rune != upperHalf || c.Fg != core.ColorBrightRed || c.Bg != core.ColorDefault {
			t.Errorf("cell %d = %+v, expected red upper half on default bg", x, c)
		}
	}
}

func TestCellSpriteTransparentAndDegenerate(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4)) // fully transparent
	sp := CellSprite(img, 2, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if _, ok := sp.At(x, y); ok {
				t.Errorf("cell (%d,%d) should be transparent", x, y)
			}
		}
	}

	if got := CellSprite(nil, 3, 3); got.W != 3 || len(got.Cells) != 9 {
		t.Errorf("nil image should give an empty 3x3 sprite, got %+v", got)
	}
	if got := CellSprite(img, 0, 5); len(got.Cells) != 0 {
		t.Error("zero width should give an empty sprite")
	}
}
