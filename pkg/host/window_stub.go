//go:build !cgo

package host

import "errors"

// ErrNoWindow is returned by RunWindow in builds without cgo.
var ErrNoWindow = errors.New("window host requires cgo")

// RunWindow is unavailable without cgo.
func RunWindow(opts Options, frame FrameFunc) error {
	return ErrNoWindow
}
