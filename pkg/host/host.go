// Package host runs a frame callback inside an interactive surface: the
// terminal (half-block cells) or a desktop window.
package host

import (
	"errors"
	"time"

	"github.com/Jailior/3dgraphicproject/pkg/render"
)

// errQuit stops a host loop without reporting an error.
var errQuit = errors.New("quit")

// Input is the per-frame keyboard view handed to a FrameFunc.
type Input interface {
	render.KeyState

	// JustPressed reports a fresh press of k since the previous frame.
	// Auto-repeat does not count.
	JustPressed(k render.Key) bool
}

// FrameFunc renders one frame into fb. dt is the elapsed time in seconds
// since the previous frame. A non-nil error stops the host and is returned
// from Run.
type FrameFunc func(fb *render.Framebuffer, in Input, dt float64) error

// Options configures a host.
type Options struct {
	FPS int

	// KeyHold is how long a terminal key stays held after its last press
	// or repeat. Zero keeps keys held until a release event arrives.
	KeyHold time.Duration

	// Width and Height size the desktop window in pixels.
	Width, Height int
	Title         string

	// Overlay returns one line of HUD text drawn over the frame. May be nil.
	Overlay func() string
}

// controls maps host key names to pipeline keys.
var controls = []render.Key{
	render.KeyUp,
	render.KeyDown,
	render.KeyForward,
	render.KeyBack,
	render.KeyLeft,
	render.KeyRight,
	render.KeySpin,
	render.KeyMode,
}

func (o Options) frameDuration() time.Duration {
	if o.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(o.FPS)
}
