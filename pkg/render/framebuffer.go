// Package render implements the software rendering pipeline: clipping,
// projection and scanline rasterization into a framebuffer.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"slices"
)

// Framebuffer is the color target a frame is rasterized into. Hosts
// present it: the terminal packs two rows per cell, a window copies it
// into a texture.
type Framebuffer struct {
	width, height int

	// Pixels is row-major, len = width*height.
	Pixels []Color
}

func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

func (fb *Framebuffer) Width() int  { return fb.width }
func (fb *Framebuffer) Height() int { return fb.height }

// Resize changes the dimensions. Pixels are reallocated, and so cleared,
// only when the size actually changes.
func (fb *Framebuffer) Resize(width, height int) {
	if fb.Pixels != nil && width == fb.width && height == fb.height {
		return
	}
	fb.width, fb.height = width, height
	fb.Pixels = make([]Color, max(width*height, 0))
}

func (fb *Framebuffer) Clear(c Color) {
	if len(fb.Pixels) == 0 {
		return
	}
	// Seed one pixel and double the filled prefix.
	fb.Pixels[0] = c
	for n := 1; n < len(fb.Pixels); n *= 2 {
		copy(fb.Pixels[n:], fb.Pixels[:n])
	}
}

func (fb *Framebuffer) contains(x, y int) bool {
	return uint(x) < uint(fb.width) && uint(y) < uint(fb.height)
}

// SetPixel ignores coordinates outside the buffer.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if fb.contains(x, y) {
		fb.Pixels[y*fb.width+x] = c
	}
}

// GetPixel returns transparent black outside the buffer.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if !fb.contains(x, y) {
		return Color{}
	}
	return fb.Pixels[y*fb.width+x]
}

// FillRect fills the half-open rectangle [x0, x1) × [y0, y1), clipped to the
// framebuffer.
func (fb *Framebuffer) FillRect(x0, y0, x1, y1 int, c Color) {
	x0, x1 = max(x0, 0), min(x1, fb.width)
	y0, y1 = max(y0, 0), min(y1, fb.height)
	for py := y0; py < y1; py++ {
		row := fb.Pixels[py*fb.width : (py+1)*fb.width]
		for px := x0; px < x1; px++ {
			row[px] = c
		}
	}
}

// DrawLine draws a one pixel wide line including both end points.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	drawLine(fb, x0, y0, x1, y1, c)
}

// drawLine is Bresenham's algorithm over any Surface, stepping in all
// octants with a single error term.
func drawLine(dst Surface, x0, y0, x1, y1 int, c Color) {
	dx, sx := abs(x1-x0), sign(x1-x0)
	dy, sy := -abs(y1-y0), sign(y1-y0)
	e := dx + dy

	for x, y := x0, y0; ; {
		dst.SetPixel(x, y, c)
		if x == x1 && y == y1 {
			return
		}
		if e2 := 2 * e; e2 >= dy {
			e += dy
			x += sx
			if e2 <= dx {
				e += dx
				y += sy
			}
		} else {
			e += dx
			y += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x < 0 {
		return -1
	}
	return 1
}

// ToImage returns a copy of the pixels as an *image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	fb.CopyTo(img.Pix)
	return img
}

// CopyTo packs the pixels as RGBA bytes into dst, which must hold at least
// 4·width·height bytes.
func (fb *Framebuffer) CopyTo(dst []byte) {
	for i, p := range fb.Pixels {
		px := dst[i*4 : i*4+4 : i*4+4]
		px[0], px[1], px[2], px[3] = p.R, p.G, p.B, p.A
	}
}

// Equal reports whether both buffers have the same size and pixels.
func (fb *Framebuffer) Equal(o *Framebuffer) bool {
	return fb.width == o.width && fb.height == o.height && slices.Equal(fb.Pixels, o.Pixels)
}

// SavePNG writes the framebuffer to path as a PNG.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	return nil
}
