package render

// Surface is a drawable pixel target. *Framebuffer implements it.
type Surface interface {
	Width() int
	Height() int
	SetPixel(x, y int, c Color)
	FillRect(x0, y0, x1, y1 int, c Color)
}

// Key names a control the pipeline polls each frame.
type Key string

// Keys polled by the pipeline and hosts.
const (
	KeyUp      Key = "up"     // raise camera
	KeyDown    Key = "down"   // lower camera
	KeyForward Key = "w"      // move along look direction
	KeyBack    Key = "s"      // move against look direction
	KeyLeft    Key = "a"      // turn left
	KeyRight   Key = "d"      // turn right
	KeySpin    Key = "space"  // toggle model spin
	KeyMode    Key = "m"      // cycle draw mode
	KeyQuit    Key = "escape" // leave the render loop
)

// KeyState reports whether a key is currently held.
type KeyState interface {
	IsKeyHeld(k Key) bool
}

// KeyStateFunc adapts a function to KeyState.
type KeyStateFunc func(k Key) bool

// IsKeyHeld calls f(k).
func (f KeyStateFunc) IsKeyHeld(k Key) bool {
	return f(k)
}

// NoKeys is a KeyState with nothing held.
var NoKeys KeyState = KeyStateFunc(func(Key) bool { return false })
