package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// quadTexture is 2x2: red, green on the top row; blue, white below.
func quadTexture() *Texture {
	tex := NewTexture(2, 2)
	tex.SetPixel(0, 0, ColorRed)
	tex.SetPixel(1, 0, ColorGreen)
	tex.SetPixel(0, 1, ColorBlue)
	tex.SetPixel(1, 1, ColorWhite)
	return tex
}

func TestTextureSample(t *testing.T) {
	tests := []struct {
		name string
		wrap WrapMode
		u, v float64
		want Color
	}{
		{"top left", WrapRepeat, 0.25, 0.25, ColorRed},
		{"top right", WrapRepeat, 0.75, 0.25, ColorGreen},
		{"bottom left", WrapRepeat, 0.25, 0.75, ColorBlue},
		{"bottom right", WrapRepeat, 0.75, 0.75, ColorWhite},
		{"repeat past one", WrapRepeat, 1.25, 0.25, ColorRed},
		{"repeat negative", WrapRepeat, -0.25, 0.25, ColorGreen},
		{"clamp past one", WrapClamp, 1.5, 0.25, ColorGreen},
		{"clamp negative", WrapClamp, -3, 0.75, ColorBlue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex := quadTexture()
			tex.WrapU, tex.WrapV = tt.wrap, tt.wrap
			if got := tex.Sample(tt.u, tt.v); got != tt.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestTextureBilinear(t *testing.T) {
	tex := NewTexture(2, 1)
	tex.SetPixel(0, 0, RGB(0, 0, 0))
	tex.SetPixel(1, 0, RGB(200, 200, 200))
	tex.FilterMode = FilterBilinear
	tex.WrapU, tex.WrapV = WrapClamp, WrapClamp

	got := tex.Sample(0.5, 0.5)
	if got.R < 90 || got.R > 110 {
		t.Errorf("midpoint = %v, want about 100", got)
	}
}

func TestNewSolidTexture(t *testing.T) {
	tex := NewSolidTexture(ColorMagenta)
	for _, uv := range [][2]float64{{0, 0}, {0.5, 0.5}, {1, 1}, {-7.3, 42}} {
		if got := tex.Sample(uv[0], uv[1]); got != ColorMagenta {
			t.Errorf("Sample%v = %v", uv, got)
		}
	}
}

func TestNewCheckerTexture(t *testing.T) {
	tex := NewCheckerTexture(4, 4, 2, ColorBlack, ColorWhite)
	if tex.GetPixel(0, 0) != ColorBlack || tex.GetPixel(2, 0) != ColorWhite || tex.GetPixel(2, 2) != ColorBlack {
		t.Errorf("unexpected checker layout: %v", tex.Pixels)
	}
}

func TestLoadTexturePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(ColorBlue)
	fb.SetPixel(2, 1, ColorYellow)

	path := filepath.Join(t.TempDir(), "tex.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if tex.Width != 3 || tex.Height != 2 {
		t.Fatalf("size = %dx%d, want 3x2", tex.Width, tex.Height)
	}
	if got := tex.GetPixel(2, 1); got != ColorYellow {
		t.Errorf("pixel = %v, want yellow", got)
	}
	if got := tex.GetPixel(0, 0); got != ColorBlue {
		t.Errorf("pixel = %v, want blue", got)
	}
}

func TestLoadTextureBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	path := filepath.Join(t.TempDir(), "tex.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if got := tex.GetPixel(1, 0); got != (Color{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("pixel = %v, want {10 20 30 255}", got)
	}
}

func TestLoadTextureErrors(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(path); err == nil {
		t.Error("expected error for undecodable file")
	}
}

func TestTextureFromImageDownscales(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, MaxTextureSide*2, 8))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 255, 255
	}

	tex := TextureFromImage(img)
	if tex.Width != MaxTextureSide || tex.Height != 4 {
		t.Fatalf("size = %dx%d, want %dx4", tex.Width, tex.Height, MaxTextureSide)
	}
	if got := tex.GetPixel(10, 2); got != ColorRed {
		t.Errorf("pixel = %v, want red", got)
	}
}

func TestTextureFromImageOffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 7, 6))
	img.Set(6, 5, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	tex := TextureFromImage(img)
	if tex.Width != 2 || tex.Height != 1 {
		t.Fatalf("size = %dx%d, want 2x1", tex.Width, tex.Height)
	}
	if got := tex.GetPixel(1, 0); got != (Color{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("pixel = %v, want {1 2 3 255}", got)
	}
}

func TestTexelIndex(t *testing.T) {
	tests := []struct {
		i, size int
		mode    WrapMode
		want    int
	}{
		{3, 4, WrapRepeat, 3},
		{4, 4, WrapRepeat, 0},
		{-1, 4, WrapRepeat, 3},
		{-9, 4, WrapRepeat, 3},
		{7, 4, WrapClamp, 3},
		{-2, 4, WrapClamp, 0},
	}
	for _, tt := range tests {
		if got := texelIndex(tt.i, tt.size, tt.mode); got != tt.want {
			t.Errorf("texelIndex(%d, %d, %v) = %d, want %d", tt.i, tt.size, tt.mode, got, tt.want)
		}
	}
}
