package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/sync/errgroup"

	"github.com/Jailior/3dgraphicproject/pkg/render"
)

// maxFrameDelta caps dt so a stalled terminal does not teleport the camera.
const maxFrameDelta = 0.1

// termSize is the terminal size shared between the event reader and the
// frame loop.
type termSize struct {
	mu            sync.Mutex
	width, height int
	changed       bool
}

func (s *termSize) set(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height, s.changed = w, h, true
}

// take returns the current size and whether it changed since the last call.
func (s *termSize) take() (w, h int, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed = s.changed
	s.changed = false
	return s.width, s.height, changed
}

// RunTerminal renders frames into the terminal at opts.FPS until ctx is
// canceled, escape or ctrl+c is pressed, or frame returns an error. Each
// terminal row shows two framebuffer rows.
func RunTerminal(ctx context.Context, opts Options, frame FrameFunc) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		return fmt.Errorf("resize terminal: %w", err)
	}

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		_ = term.Display()
		_ = term.Shutdown(context.Background())
	}()

	keys := NewKeyTracker(opts.KeyHold)
	size := &termSize{}
	size.set(width, height)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readEvents(ctx, term.Events(), keys, size)
	})
	g.Go(func() error {
		return frameLoop(ctx, term, opts, keys, size, frame)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

// readEvents feeds terminal events into keys and size.
func readEvents(ctx context.Context, events <-chan uv.Event, keys *KeyTracker, size *termSize) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return errQuit
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				size.set(ev.Width, ev.Height)
			case uv.KeyPressEvent:
				if ev.MatchString("ctrl+c", string(render.KeyQuit)) {
					return errQuit
				}
				if k, ok := matchControl(ev.MatchString); ok {
					keys.Press(k, ev.IsRepeat)
				}
			case uv.KeyReleaseEvent:
				if k, ok := matchControl(ev.MatchString); ok {
					keys.Release(k)
				}
			}
		}
	}
}

// matchControl finds the control a key event names.
func matchControl(match func(...string) bool) (render.Key, bool) {
	for _, k := range controls {
		if match(string(k)) {
			return k, true
		}
	}
	return "", false
}

func frameLoop(ctx context.Context, term *uv.Terminal, opts Options, keys *KeyTracker, size *termSize, frame FrameFunc) error {
	fb := render.NewFramebuffer(1, 1)
	ticker := time.NewTicker(opts.frameDuration())
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			w, h, changed := size.take()
			if changed {
				term.Erase()
				if err := term.Resize(w, h); err != nil {
					return fmt.Errorf("resize terminal: %w", err)
				}
			}
			if w <= 0 || h <= 0 {
				continue
			}
			fb.Resize(w, h*2)

			dt := min(now.Sub(last).Seconds(), maxFrameDelta)
			last = now

			if err := frame(fb, keys, dt); err != nil {
				return err
			}
			keys.EndFrame()

			var hud string
			if opts.Overlay != nil {
				hud = ansi.Truncate(opts.Overlay(), w, "…")
			}
			term.Draw(uv.DrawableFunc(func(scr uv.Screen, area uv.Rectangle) {
				fb.Draw(scr, area)
				if hud != "" {
					uv.NewStyledString(hud).Draw(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1))
				}
			}))
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
