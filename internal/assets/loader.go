// Package assets loads the runner's images in the background and converts
// them into forms the renderers can draw.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"io/fs"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Well-known asset names.
const (
	Player     = "player"
	Obstacle   = "obstacle"
	Background = "background"
)

var (
	// ErrLoadTimeout marks assets that were still pending when the load deadline passed.
	ErrLoadTimeout = errors.New("assets: load timed out")
	// ErrNoPath marks assets configured with an empty path.
	ErrNoPath = errors.New("assets: no path configured")
	// ErrUnknownAsset is returned for names the loader was not given.
	ErrUnknownAsset = errors.New("assets: unknown asset")
)

// Spec names one image resource.
type Spec struct {
	Name string
	Path string
}

// Loader fetches a fixed set of images concurrently.
// Done closes once every image has either decoded or failed.
type Loader struct {
	fsys   fs.FS
	specs  []Spec
	logger *log.Logger

	mu      sync.RWMutex
	images  map[string]image.Image
	errs    map[string]error
	pending map[string]bool

	done      chan struct{}
	startOnce sync.Once
	doneOnce  sync.Once
}

// NewLoader creates a loader for specs read from fsys.
// A nil fsys reads from the working directory; a nil logger discards output.
func NewLoader(fsys fs.FS, specs []Spec, logger *log.Logger) *Loader {
	if fsys == nil {
		fsys = os.DirFS(".")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	l := &Loader{
		fsys:    fsys,
		specs:   specs,
		logger:  logger,
		images:  make(map[string]image.Image, len(specs)),
		errs:    make(map[string]error, len(specs)),
		pending: make(map[string]bool, len(specs)),
		done:    make(chan struct{}),
	}
	for _, s := range specs {
		l.pending[s.Name] = true
	}
	return l
}

// Start begins loading every image. Calling it again has no effect.
// A positive timeout fails whatever is still pending once it elapses;
// cancelling ctx does the same.
func (l *Loader) Start(ctx context.Context, timeout time.Duration) {
	l.startOnce.Do(func() {
		var cancel context.CancelFunc
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, timeout)
		} else {
			ctx, cancel = context.WithCancel(ctx)
		}

		var wg sync.WaitGroup
		for _, s := range l.specs {
			wg.Add(1)
			go func(s Spec) {
				defer wg.Done()
				img, err := l.load(s)
				l.finish(s.Name, img, err)
			}(s)
		}

		finished := make(chan struct{})
		go func() {
			wg.Wait()
			close(finished)
		}()

		go func() {
			defer cancel()
			select {
			case <-finished:
			case <-ctx.Done():
				l.expire(ctx.Err())
			}
			l.markDone()
		}()
	})
}

// load reads and decodes one image.
func (l *Loader) load(s Spec) (image.Image, error) {
	if s.Path == "" {
		return nil, ErrNoPath
	}
	f, err := l.fsys.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", s.Path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", s.Path, err)
	}
	l.logger.Debug("asset loaded", "name", s.Name, "path", s.Path, "format", format,
		"size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()))
	return img, nil
}

// finish records the outcome of one load unless the asset already expired.
func (l *Loader) finish(name string, img image.Image, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.pending[name] {
		return
	}
	delete(l.pending, name)
	if err != nil {
		l.errs[name] = err
		l.logger.Warn("asset unavailable, using fallback color", "name", name, "error", err)
		return
	}
	l.images[name] = img
}

// expire fails every asset that is still pending.
func (l *Loader) expire(cause error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for name := range l.pending {
		l.errs[name] = fmt.Errorf("%w: %w", ErrLoadTimeout, cause)
		l.logger.Warn("asset load timed out, using fallback color", "name", name)
	}
	clear(l.pending)
}

func (l *Loader) markDone() {
	l.doneOnce.Do(func() { close(l.done) })
}

// Done returns a channel that is closed once loading has settled.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Ready reports whether loading has settled, without blocking.
func (l *Loader) Ready() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Image returns a decoded image. The second result is false while the image
// is pending, after it failed, or for unknown names.
func (l *Loader) Image(name string) (image.Image, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	img, ok := l.images[name]
	return img, ok
}

// Err returns why an asset is unavailable, or nil if it loaded or is pending.
func (l *Loader) Err(name string) error {
	if !l.known(name) {
		return fmt.Errorf("%w: %q", ErrUnknownAsset, name)
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.errs[name]
}

// Failed returns the sorted names of assets that could not be loaded.
func (l *Loader) Failed() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.errs))
	for name := range l.errs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l *Loader) known(name string) bool {
	for _, s := range l.specs {
		if s.Name == name {
			return true
		}
	}
	return false
}
