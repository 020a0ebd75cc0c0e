//go:build cgo

package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Jailior/3dgraphicproject/pkg/render"
)

// windowKeys maps controls to physical keys.
var windowKeys = map[render.Key]ebiten.Key{
	render.KeyUp:      ebiten.KeyArrowUp,
	render.KeyDown:    ebiten.KeyArrowDown,
	render.KeyForward: ebiten.KeyW,
	render.KeyBack:    ebiten.KeyS,
	render.KeyLeft:    ebiten.KeyA,
	render.KeyRight:   ebiten.KeyD,
	render.KeySpin:    ebiten.KeySpace,
	render.KeyMode:    ebiten.KeyM,
	render.KeyQuit:    ebiten.KeyEscape,
}

// windowInput reads key state straight from ebiten.
type windowInput struct{}

func (windowInput) IsKeyHeld(k render.Key) bool {
	key, ok := windowKeys[k]
	return ok && ebiten.IsKeyPressed(key)
}

func (windowInput) JustPressed(k render.Key) bool {
	key, ok := windowKeys[k]
	return ok && inpututil.IsKeyJustPressed(key)
}

// RunWindow opens a desktop window and renders frames at opts.FPS until the
// window closes, escape is pressed, or frame returns an error. It blocks
// and must be called from the main goroutine.
func RunWindow(opts Options, frame FrameFunc) error {
	g := &windowGame{
		opts:  opts,
		frame: frame,
		fb:    render.NewFramebuffer(opts.Width, opts.Height),
	}

	title := opts.Title
	if title == "" {
		title = "engine3d"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(max(opts.FPS, 1))

	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return nil
}

type windowGame struct {
	opts  Options
	frame FrameFunc
	fb    *render.Framebuffer
	img   *ebiten.Image
	pix   []byte
}

func (g *windowGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	dt := 1 / float64(ebiten.TPS())
	return g.frame(g.fb, windowInput{}, dt)
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	w, h := g.fb.Width(), g.fb.Height()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(w, h)
		g.pix = make([]byte, w*h*4)
	}

	g.fb.CopyTo(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)

	if g.opts.Overlay != nil {
		ebitenutil.DebugPrint(screen, g.opts.Overlay())
	}
}

// Layout renders at the window's pixel size so the framebuffer follows
// resizes.
func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	g.fb.Resize(w, h)
	return w, h
}
