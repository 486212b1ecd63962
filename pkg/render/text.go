package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements image.Image.
func (fb *Framebuffer) At(x, y int) color.Color {
	return fb.GetPixel(x, y)
}

// Set implements draw.Image so font rendering can target the
// framebuffer directly.
func (fb *Framebuffer) Set(x, y int, c color.Color) {
	fb.SetPixel(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

// DrawText renders text with the 7x13 bitmap face, baseline at (x, y).
// The text ignores the depth buffer; it is meant for axis tick labels
// drawn after the 3D passes.
func (fb *Framebuffer) DrawText(text string, x, y int, col color.RGBA) {
	d := &font.Drawer{
		Dst:  fb,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(text)
}

// TextWidth returns the pixel width of text in the label face.
func (fb *Framebuffer) TextWidth(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Ceil()
}
