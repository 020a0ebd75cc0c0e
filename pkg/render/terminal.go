package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// upperHalf paints its foreground over the top half of a cell and leaves
// the background showing below, so one cell carries two pixel rows.
const upperHalf = "▀"

// Draw paints the framebuffer into area, two pixel rows per terminal row.
// Pixel row 2r is the foreground and 2r+1 the background of cell row r,
// counted from area.Min.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	cols := min(area.Dx(), fb.width)
	for r := range area.Dy() {
		top, bot := 2*r, 2*r+1
		for x := range cols {
			scr.SetCell(area.Min.X+x, area.Min.Y+r, &uv.Cell{
				Content: upperHalf,
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(x, top)),
					Bg: cellColor(fb.GetPixel(x, bot)),
				},
			})
		}
	}
}

// cellColor maps fully transparent pixels to the terminal default.
func cellColor(c Color) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// Color is the pixel and texel type.
type Color = color.RGBA

var (
	ColorBlack    = RGB(0, 0, 0)
	ColorWhite    = RGB(255, 255, 255)
	ColorRed      = RGB(255, 0, 0)
	ColorGreen    = RGB(0, 255, 0)
	ColorBlue     = RGB(0, 0, 255)
	ColorYellow   = RGB(255, 255, 0)
	ColorCyan     = RGB(0, 255, 255)
	ColorMagenta  = RGB(255, 0, 255)
	ColorGray     = RGB(128, 128, 128)
	ColorDarkCyan = RGB(0, 128, 128)
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}
