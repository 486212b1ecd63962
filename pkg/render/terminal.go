package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw blits the framebuffer onto a terminal screen using upper
// half-block cells, packing two framebuffer rows into each terminal row:
// the top pixel becomes the foreground of the ▀ glyph, the bottom pixel
// its background. The framebuffer is expected to be twice as tall as the
// area it fills.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	maxX := min(area.Max.X, fb.Width)

	for row := area.Min.Y; row < area.Max.Y; row++ {
		top := row * 2
		if top >= fb.Height {
			break
		}
		topOff := top * fb.Width
		botOff := -1
		if top+1 < fb.Height {
			botOff = topOff + fb.Width
		}

		for col := area.Min.X; col < maxX; col++ {
			cell := uv.Cell{
				Content: "▀",
				Width:   1,
				Style:   uv.Style{Fg: cellColor(fb.Pixels[topOff+col])},
			}
			if botOff >= 0 {
				cell.Style.Bg = cellColor(fb.Pixels[botOff+col])
			}
			scr.SetCell(col, row, &cell)
		}
	}
}

// cellColor widens a pixel for the cell style; fully transparent pixels
// leave the terminal's own color in place.
func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// The palette the grapher draws with.
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorRed   = color.RGBA{255, 0, 0, 255}
	ColorGreen = color.RGBA{0, 255, 0, 255}
	ColorBlue  = color.RGBA{0, 0, 255, 255}
	ColorAxis  = color.RGBA{180, 180, 180, 255}
	ColorNight = color.RGBA{16, 16, 24, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}
