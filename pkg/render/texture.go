package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp" // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Sampler returns the color of a surface at texture coordinates (u, v).
type Sampler interface {
	Sample(u, v float64) Color
}

// WrapMode selects how coordinates outside [0,1] map onto texels.
type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapClamp
)

// FilterMode selects how a texel is chosen for a coordinate.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

// MaxTextureSide bounds the larger side of a decoded texture. Bigger images
// are downscaled on load; a terminal never shows that much detail.
const MaxTextureSide = 2048

// Texture is a row-major grid of texels sampled with (u, v) in [0,1],
// v = 0 being the top row.
type Texture struct {
	Width      int
	Height     int
	Pixels     []Color
	WrapU      WrapMode
	WrapV      WrapMode
	FilterMode FilterMode
}

// NewTexture creates a transparent black texture that repeats and samples
// nearest.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// LoadTexture decodes a PNG, JPEG, BMP, TIFF or WebP file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", filepath.Base(path), err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage copies img into a texture, downscaling it first when a
// side exceeds MaxTextureSide.
func TextureFromImage(img image.Image) *Texture {
	src := img.Bounds()
	w, h := fitSide(src.Dx(), src.Dy(), MaxTextureSide)

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == src.Dx() && h == src.Dy() {
		draw.Draw(rgba, rgba.Bounds(), img, src.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, src, draw.Src, nil)
	}

	tex := NewTexture(w, h)
	for i := range tex.Pixels {
		p := rgba.Pix[i*4 : i*4+4 : i*4+4]
		tex.Pixels[i] = Color{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	return tex
}

// fitSide scales (w, h) so neither exceeds limit, keeping the aspect ratio.
func fitSide(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	s := float64(limit) / float64(max(w, h))
	return max(1, int(float64(w)*s)), max(1, int(float64(h)*s))
}

// NewSolidTexture creates a 1x1 texture that samples as c everywhere.
func NewSolidTexture(c Color) *Texture {
	tex := NewTexture(1, 1)
	tex.Pixels[0] = c
	return tex
}

// NewCheckerTexture creates a checkerboard of size-pixel squares, c1 in
// the top-left corner.
func NewCheckerTexture(width, height, size int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	for i := range tex.Pixels {
		x, y := i%width, i/width
		if (x/size+y/size)&1 == 0 {
			tex.Pixels[i] = c1
		} else {
			tex.Pixels[i] = c2
		}
	}
	return tex
}

func (t *Texture) inBounds(x, y int) bool {
	return x >= 0 && x < t.Width && y >= 0 && y < t.Height
}

// SetPixel sets a texel; out of range writes are dropped.
func (t *Texture) SetPixel(x, y int, c Color) {
	if t.inBounds(x, y) {
		t.Pixels[y*t.Width+x] = c
	}
}

// GetPixel returns a texel, or the zero color out of range.
func (t *Texture) GetPixel(x, y int) Color {
	if !t.inBounds(x, y) {
		return Color{}
	}
	return t.Pixels[y*t.Width+x]
}

// Sample returns the color at (u, v). Loaders flip V where their format
// puts the origin at the bottom.
func (t *Texture) Sample(u, v float64) Color {
	if t.Width == 0 || t.Height == 0 {
		return Color{}
	}
	if t.FilterMode == FilterBilinear {
		return t.sampleBilinear(u, v)
	}
	x := texelIndex(int(math.Floor(u*float64(t.Width))), t.Width, t.WrapU)
	y := texelIndex(int(math.Floor(v*float64(t.Height))), t.Height, t.WrapV)
	return t.Pixels[y*t.Width+x]
}

// sampleBilinear blends the four texels around (u, v), measured from texel
// centers.
func (t *Texture) sampleBilinear(u, v float64) Color {
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5
	bx, by := math.Floor(fx), math.Floor(fy)

	x0 := texelIndex(int(bx), t.Width, t.WrapU)
	x1 := texelIndex(int(bx)+1, t.Width, t.WrapU)
	y0 := texelIndex(int(by), t.Height, t.WrapV)
	y1 := texelIndex(int(by)+1, t.Height, t.WrapV)

	row0, row1 := t.Pixels[y0*t.Width:], t.Pixels[y1*t.Width:]
	top := lerpColor(row0[x0], row0[x1], fx-bx)
	bot := lerpColor(row1[x0], row1[x1], fx-bx)
	return lerpColor(top, bot, fy-by)
}

// texelIndex maps an unbounded texel index into [0, size).
func texelIndex(i, size int, mode WrapMode) int {
	if mode == WrapClamp {
		return min(max(i, 0), size-1)
	}
	i %= size
	if i < 0 {
		i += size
	}
	return i
}

func lerpColor(a, b Color, t float64) Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// MultiplyColor scales the RGB channels of c by intensity, saturating at
// 255. Alpha is kept.
func MultiplyColor(c Color, intensity float64) Color {
	scale := func(x uint8) uint8 {
		return uint8(min(255, float64(x)*intensity))
	}
	return Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
